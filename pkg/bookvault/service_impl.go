package bookvault

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/elibhq/bookvault/pkg/bookvault/objectkey"
)

// service implements the Service interface
type service struct {
	books  BookRepository
	assets AssetStore
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithBookRepository sets the book metadata repository
func WithBookRepository(repo BookRepository) Option {
	return func(s *service) {
		s.books = repo
	}
}

// WithAssetStore sets the object-storage client
func WithAssetStore(store AssetStore) Option {
	return func(s *service) {
		s.assets = store
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{}

	for _, option := range options {
		option(s)
	}

	if s.books == nil {
		return nil, fmt.Errorf("book repository is required")
	}
	if s.assets == nil {
		return nil, fmt.Errorf("asset store is required")
	}

	return s, nil
}

func (s *service) CreateBook(ctx context.Context, req CreateBookRequest) (*BookRecord, []Warning, error) {
	if req.CoverFile == nil || req.ContentFile == nil {
		return nil, nil, ErrMissingAssetFile
	}

	coverResult, err := s.assets.Upload(ctx, req.CoverFile.LocalPath, UploadParams{
		Folder:           FolderBookCovers,
		FilenameOverride: req.CoverFile.FileName,
		Format:           formatFromMime(req.CoverFile.MimeType),
		ResourceType:     ResourceImage,
	})
	if err != nil {
		return nil, nil, &UploadError{Kind: AssetCover, Err: err}
	}

	contentResult, err := s.assets.Upload(ctx, req.ContentFile.LocalPath, UploadParams{
		Folder:           FolderBookFiles,
		FilenameOverride: req.ContentFile.FileName,
		Format:           ContentFormat,
		ResourceType:     ResourceRaw,
	})
	if err != nil {
		// Creation produces both assets or neither: take the already
		// uploaded cover back down, best effort.
		key := objectkey.Derive(coverResult.SecureURL)
		if derr := s.assets.Destroy(ctx, key, ResourceImage); derr != nil {
			slog.Error("failed to destroy cover after content upload failure",
				"key", key, "error", derr)
		}
		return nil, nil, &UploadError{Kind: AssetContent, Err: err}
	}

	now := time.Now().UTC()
	book := &BookRecord{
		Title:         req.Title,
		Description:   req.Description,
		Genre:         req.Genre,
		AuthorID:      req.ActorID,
		CoverImageURL: coverResult.SecureURL,
		FileURL:       contentResult.SecureURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.books.CreateBook(ctx, book); err != nil {
		return nil, nil, &RepositoryError{Op: "create_book", Err: err}
	}

	warnings := removeTempFiles(req.CoverFile, req.ContentFile)
	return book, warnings, nil
}

func (s *service) UpdateBook(ctx context.Context, req UpdateBookRequest) (*BookRecord, []Warning, error) {
	book, err := s.books.GetBook(ctx, req.BookID)
	if err != nil {
		return nil, nil, repoError("get_book", err)
	}
	if book.AuthorID != req.ActorID {
		return nil, nil, ErrNotOwner
	}

	coverURL := book.CoverImageURL
	var supersededCoverKey string
	if req.CoverFile != nil {
		if coverURL != "" {
			supersededCoverKey = objectkey.Derive(coverURL)
		}
		result, err := s.assets.Upload(ctx, req.CoverFile.LocalPath, UploadParams{
			Folder:           FolderBookCovers,
			FilenameOverride: req.CoverFile.FileName,
			Format:           formatFromMime(req.CoverFile.MimeType),
			ResourceType:     ResourceImage,
		})
		if err != nil {
			return nil, nil, &UploadError{Kind: AssetCover, Err: err}
		}
		coverURL = result.SecureURL
	}

	fileURL := book.FileURL
	var supersededFileKey string
	if req.ContentFile != nil {
		if fileURL != "" {
			supersededFileKey = objectkey.Derive(fileURL)
		}
		result, err := s.assets.Upload(ctx, req.ContentFile.LocalPath, UploadParams{
			Folder:           FolderBookFiles,
			FilenameOverride: req.ContentFile.FileName,
			Format:           ContentFormat,
			ResourceType:     ResourceRaw,
		})
		if err != nil {
			return nil, nil, &UploadError{Kind: AssetContent, Err: err}
		}
		fileURL = result.SecureURL
	}

	updated, err := s.books.UpdateBook(ctx, req.BookID, BookPatch{
		Title:         req.Title,
		Description:   req.Description,
		Genre:         req.Genre,
		CoverImageURL: coverURL,
		FileURL:       fileURL,
	})
	if err != nil {
		return nil, nil, repoError("update_book", err)
	}

	// Metadata is committed; the record points at the new assets. Anything
	// below is cleanup and must not fail the operation.
	var warnings []Warning
	if supersededCoverKey != "" {
		if err := s.assets.Destroy(ctx, supersededCoverKey, ResourceImage); err != nil {
			slog.Warn("failed to destroy superseded cover asset",
				"key", supersededCoverKey, "error", err)
			warnings = append(warnings, Warning{Op: "destroy_superseded_asset", Ref: supersededCoverKey, Err: err})
		}
	}
	if supersededFileKey != "" {
		if err := s.assets.Destroy(ctx, supersededFileKey, ResourceRaw); err != nil {
			slog.Warn("failed to destroy superseded content asset",
				"key", supersededFileKey, "error", err)
			warnings = append(warnings, Warning{Op: "destroy_superseded_asset", Ref: supersededFileKey, Err: err})
		}
	}
	warnings = append(warnings, removeTempFiles(req.CoverFile, req.ContentFile)...)

	return updated, warnings, nil
}

func (s *service) DeleteBook(ctx context.Context, bookID, actorID string) error {
	book, err := s.books.GetBook(ctx, bookID)
	if err != nil {
		return repoError("get_book", err)
	}
	if book.AuthorID != actorID {
		return ErrNotOwner
	}

	// Unlike update, a failed destroy aborts here: once the record is gone
	// there is no reference left to retry the cleanup with.
	coverKey := objectkey.Derive(book.CoverImageURL)
	if err := s.assets.Destroy(ctx, coverKey, ResourceImage); err != nil {
		return &StorageError{Key: coverKey, Op: "destroy", Err: err}
	}
	fileKey := objectkey.Derive(book.FileURL)
	if err := s.assets.Destroy(ctx, fileKey, ResourceRaw); err != nil {
		return &StorageError{Key: fileKey, Op: "destroy", Err: err}
	}

	if err := s.books.DeleteBook(ctx, bookID); err != nil {
		return repoError("delete_book", err)
	}
	return nil
}

func (s *service) GetBook(ctx context.Context, bookID string) (*BookRecord, error) {
	book, err := s.books.GetBook(ctx, bookID)
	if err != nil {
		return nil, repoError("get_book", err)
	}
	return book, nil
}

func (s *service) ListBooks(ctx context.Context, req ListBooksRequest) (*BookPage, error) {
	return s.listPage(ctx, "", false, req)
}

func (s *service) ListUserBooks(ctx context.Context, actorID string, req ListBooksRequest) (*BookPage, error) {
	return s.listPage(ctx, actorID, true, req)
}

func (s *service) listPage(ctx context.Context, authorID string, newestFirst bool, req ListBooksRequest) (*BookPage, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = 10
	}

	books, err := s.books.ListBooks(ctx, BookQuery{
		AuthorID:    authorID,
		Skip:        (page - 1) * limit,
		Limit:       limit,
		NewestFirst: newestFirst,
	})
	if err != nil {
		return nil, &RepositoryError{Op: "list_books", Err: err}
	}
	total, err := s.books.CountBooks(ctx, BookQuery{AuthorID: authorID})
	if err != nil {
		return nil, &RepositoryError{Op: "count_books", Err: err}
	}

	var totalPages int64
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	if books == nil {
		books = []*BookRecord{}
	}
	return &BookPage{
		Books:       books,
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalBooks:  total,
	}, nil
}

// repoError passes through ErrBookNotFound and wraps everything else as a
// metadata-store failure.
func repoError(op string, err error) error {
	if errors.Is(err, ErrBookNotFound) {
		return ErrBookNotFound
	}
	return &RepositoryError{Op: op, Err: err}
}

// formatFromMime extracts the storage format from a mime type, e.g.
// "image/jpeg" -> "jpeg".
func formatFromMime(mimeType string) string {
	if i := strings.LastIndex(mimeType, "/"); i >= 0 {
		return mimeType[i+1:]
	}
	return mimeType
}

// removeTempFiles unlinks the locally spooled upload files. Failures are
// advisory: the files are left for external cleanup.
func removeTempFiles(files ...*AssetFile) []Warning {
	var warnings []Warning
	for _, f := range files {
		if f == nil {
			continue
		}
		if err := os.Remove(f.LocalPath); err != nil {
			slog.Warn("failed to remove temporary upload file",
				"path", f.LocalPath, "error", err)
			warnings = append(warnings, Warning{Op: "remove_temp_file", Ref: f.LocalPath, Err: err})
		}
	}
	return warnings
}
