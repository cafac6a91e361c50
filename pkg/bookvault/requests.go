package bookvault

// Request DTOs

// CreateBookRequest contains parameters for publishing a new book.
// CoverFile and ContentFile are both required.
type CreateBookRequest struct {
	ActorID     string
	Title       string
	Description string
	Genre       string
	CoverFile   *AssetFile
	ContentFile *AssetFile
}

// UpdateBookRequest contains parameters for updating an existing book.
// Nil text fields keep the stored values; nil files keep the stored assets.
type UpdateBookRequest struct {
	BookID      string
	ActorID     string
	Title       *string
	Description *string
	Genre       *string
	CoverFile   *AssetFile
	ContentFile *AssetFile
}

// ListBooksRequest contains pagination parameters for listings.
// Zero or negative values fall back to page 1 and limit 10.
type ListBooksRequest struct {
	Page  int64
	Limit int64
}
