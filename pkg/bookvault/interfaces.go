package bookvault

import (
	"context"
)

// UploadParams contains parameters for uploading an asset.
type UploadParams struct {
	Folder           string
	FilenameOverride string
	Format           string
	ResourceType     ResourceType
}

// UploadResult is the outcome of a successful asset upload.
type UploadResult struct {
	SecureURL string
}

// AssetStore defines the interface to the remote object-storage service.
type AssetStore interface {
	// Upload pushes the file at localPath to the storage service and
	// returns its durable URL.
	Upload(ctx context.Context, localPath string, params UploadParams) (*UploadResult, error)

	// Destroy removes the asset addressed by the storage key (as derived by
	// objectkey.Derive: folder/filename, no extension).
	Destroy(ctx context.Context, key string, resourceType ResourceType) error
}

// BookQuery scopes listing and counting operations.
type BookQuery struct {
	AuthorID    string // empty means all authors
	Skip        int64
	Limit       int64
	NewestFirst bool
}

// BookPatch describes a single metadata update. Text fields are optional;
// nil leaves the stored value unchanged. Asset URLs are always written, the
// caller passes the existing URL when an asset is not being replaced.
type BookPatch struct {
	Title         *string
	Description   *string
	Genre         *string
	CoverImageURL string
	FileURL       string
}

// BookRepository defines the interface for book metadata persistence.
type BookRepository interface {
	CreateBook(ctx context.Context, book *BookRecord) error
	GetBook(ctx context.Context, id string) (*BookRecord, error)
	UpdateBook(ctx context.Context, id string, patch BookPatch) (*BookRecord, error)
	DeleteBook(ctx context.Context, id string) error
	ListBooks(ctx context.Context, q BookQuery) ([]*BookRecord, error)
	CountBooks(ctx context.Context, q BookQuery) (int64, error)
}

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}
