package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/elibhq/bookvault/pkg/bookvault"
)

// ErrorResponse is the uniform error body
type ErrorResponse struct {
	Message string `json:"message"`
}

// renderError translates a core error into an HTTP status and a uniform
// {message} body. The core never writes responses itself.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusCode(err)

	message := err.Error()
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		message = "internal server error"
	}

	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Message: message})
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, bookvault.ErrMissingAssetFile),
		errors.Is(err, bookvault.ErrMissingUserFields),
		errors.Is(err, bookvault.ErrEmailTaken):
		return http.StatusBadRequest
	case errors.Is(err, bookvault.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, bookvault.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, bookvault.ErrBookNotFound), errors.Is(err, bookvault.ErrUserNotFound):
		return http.StatusNotFound
	default:
		// UploadError, StorageError, RepositoryError and anything unknown
		return http.StatusInternalServerError
	}
}
