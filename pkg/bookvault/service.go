package bookvault

import "context"

// Service orchestrates the lifecycle of books and their storage assets.
//
// CreateBook and UpdateBook return advisory warnings alongside the primary
// result: best-effort cleanup misses (temp files, superseded assets) that
// did not fail the operation. Callers may log or surface them but the
// returned record is authoritative either way.
//
// No operation serializes concurrent access to the same record. Two
// concurrent updates, or an update racing a delete, can lose a write; that
// is an accepted limitation of the metadata store's single-document model.
type Service interface {
	// CreateBook uploads both assets and persists the record only if both
	// uploads succeed. Missing files fail with ErrMissingAssetFile before
	// any network call.
	CreateBook(ctx context.Context, req CreateBookRequest) (*BookRecord, []Warning, error)

	// UpdateBook re-uploads any supplied replacement assets, persists the
	// metadata update, then best-effort destroys the superseded assets.
	UpdateBook(ctx context.Context, req UpdateBookRequest) (*BookRecord, []Warning, error)

	// DeleteBook destroys both assets and then the metadata record. A
	// storage failure aborts before the record is touched so the asset
	// references remain available for a retry.
	DeleteBook(ctx context.Context, bookID, actorID string) error

	// GetBook returns a single record by id.
	GetBook(ctx context.Context, bookID string) (*BookRecord, error)

	// ListBooks pages through all books.
	ListBooks(ctx context.Context, req ListBooksRequest) (*BookPage, error)

	// ListUserBooks pages through one author's books, newest first.
	ListUserBooks(ctx context.Context, actorID string, req ListBooksRequest) (*BookPage, error)
}
