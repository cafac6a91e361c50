package api

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/elibhq/bookvault/pkg/bookvault"
)

// Uploaded parts above this size spill to disk while parsing.
const maxUploadMemory = 32 << 20

// Multipart field names, matching the public API contract.
const (
	fieldCoverImage = "coverImage"
	fieldFile       = "file"
)

// BookHandler handles HTTP requests for books
type BookHandler struct {
	service   bookvault.Service
	tokens    *jwtauth.JWTAuth
	uploadDir string
}

// NewBookHandler creates a new book handler. Uploaded files are spooled
// into uploadDir before the service pushes them to object storage.
func NewBookHandler(service bookvault.Service, tokens *jwtauth.JWTAuth, uploadDir string) (*BookHandler, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, err
	}
	return &BookHandler{
		service:   service,
		tokens:    tokens,
		uploadDir: uploadDir,
	}, nil
}

// Routes returns the routes for books
func (h *BookHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListBooks)
	r.Get("/{bookID}", h.GetBook)

	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(h.tokens))
		r.Use(jwtauth.Authenticator)

		r.Post("/", h.CreateBook)
		r.Get("/mine", h.ListMyBooks)
		r.Patch("/{bookID}", h.UpdateBook)
		r.Delete("/{bookID}", h.DeleteBook)
	})

	return r
}

// CreateBookResponse is the response body for a created book
type CreateBookResponse struct {
	ID string `json:"id"`
}

// CreateBook publishes a new book from a multipart request with text
// fields title, genre, description and file parts coverImage and file.
func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Message: "invalid multipart request"})
		return
	}

	coverFile, err := h.spoolFile(r, fieldCoverImage)
	if err != nil {
		renderError(w, r, err)
		return
	}
	contentFile, err := h.spoolFile(r, fieldFile)
	if err != nil {
		renderError(w, r, err)
		return
	}

	book, _, err := h.service.CreateBook(r.Context(), bookvault.CreateBookRequest{
		ActorID:     actorID(r),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Genre:       r.FormValue("genre"),
		CoverFile:   coverFile,
		ContentFile: contentFile,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, CreateBookResponse{ID: book.ID})
}

// UpdateBook updates text fields and optionally replaces either asset.
func (h *BookHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{Message: "invalid multipart request"})
		return
	}

	coverFile, err := h.spoolFile(r, fieldCoverImage)
	if err != nil {
		renderError(w, r, err)
		return
	}
	contentFile, err := h.spoolFile(r, fieldFile)
	if err != nil {
		renderError(w, r, err)
		return
	}

	book, _, err := h.service.UpdateBook(r.Context(), bookvault.UpdateBookRequest{
		BookID:      chi.URLParam(r, "bookID"),
		ActorID:     actorID(r),
		Title:       optionalField(r, "title"),
		Description: optionalField(r, "description"),
		Genre:       optionalField(r, "genre"),
		CoverFile:   coverFile,
		ContentFile: contentFile,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, book)
}

// GetBook returns a single book
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	book, err := h.service.GetBook(r.Context(), chi.URLParam(r, "bookID"))
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, book)
}

// DeleteBook deletes a book and both of its assets
func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	err := h.service.DeleteBook(r.Context(), chi.URLParam(r, "bookID"), actorID(r))
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.NoContent(w, r)
}

// ListBooks pages through all books
func (h *BookHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListBooks(r.Context(), listRequest(r))
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, page)
}

// ListMyBooks pages through the authenticated author's books, newest first
func (h *BookHandler) ListMyBooks(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListUserBooks(r.Context(), actorID(r), listRequest(r))
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, page)
}

// spoolFile copies an uploaded part into the local upload directory and
// describes it for the service. A missing part yields a nil file, not an
// error; the service decides whether that is acceptable.
func (h *BookHandler) spoolFile(r *http.Request, field string) (*bookvault.AssetFile, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	name := uuid.NewString() + filepath.Ext(header.Filename)
	localPath := filepath.Join(h.uploadDir, name)

	dst, err := os.Create(localPath)
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(localPath)
		return nil, err
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	return &bookvault.AssetFile{
		LocalPath: localPath,
		FileName:  name,
		MimeType:  mimeType,
	}, nil
}

// actorID extracts the authenticated user id from the verified token.
func actorID(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	sub, _ := claims["sub"].(string)
	return sub
}

// listRequest parses page/limit query params. Absent or non-numeric values
// are left at zero for the service to default.
func listRequest(r *http.Request) bookvault.ListBooksRequest {
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	return bookvault.ListBooksRequest{Page: page, Limit: limit}
}

// optionalField distinguishes an absent multipart text field from an empty
// one; only supplied fields overwrite stored values.
func optionalField(r *http.Request, name string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	values, ok := r.MultipartForm.Value[name]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}
