package bookvault

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrBookNotFound indicates no book exists for the given id
	ErrBookNotFound = errors.New("book not found")

	// ErrUserNotFound indicates no user exists for the given id or email
	ErrUserNotFound = errors.New("user not found")

	// ErrNotOwner indicates the acting user does not own the book
	ErrNotOwner = errors.New("actor is not the owner of this book")

	// ErrMissingAssetFile indicates a required upload file was not supplied
	ErrMissingAssetFile = errors.New("cover image and book file are required")

	// ErrMissingUserFields indicates a registration attempt with missing fields
	ErrMissingUserFields = errors.New("name, email and password are required")

	// ErrEmailTaken indicates a registration attempt with an email already in use
	ErrEmailTaken = errors.New("user already exists with this email")

	// ErrInvalidCredentials indicates a failed login attempt
	ErrInvalidCredentials = errors.New("email or password is incorrect")
)

// UploadError indicates the object-storage service rejected or failed an
// asset upload. No metadata record is created when creation hits one.
type UploadError struct {
	Kind AssetKind
	Err  error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload of %s asset failed: %v", e.Kind, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// StorageError indicates a non-upload storage operation (destroy) failed.
type StorageError struct {
	Key string
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed for key %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// RepositoryError indicates a metadata-store operation failed for a reason
// other than a missing document.
type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository operation %s failed: %v", e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}
