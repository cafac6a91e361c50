package bookvault

import "time"

// AssetKind identifies which of a book's two assets is being handled.
type AssetKind string

// Asset kind constants (typed).
const (
	AssetCover   AssetKind = "cover"
	AssetContent AssetKind = "content"
)

// ResourceType is the storage-service resource classification for an asset.
type ResourceType string

// Resource type constants (typed).
const (
	ResourceImage ResourceType = "image"
	ResourceRaw   ResourceType = "raw"
)

// Storage folders for the two asset categories.
const (
	FolderBookCovers = "book-covers"
	FolderBookFiles  = "book-pdfs"
)

// ContentFormat is the fixed format the content asset is stored as.
const ContentFormat = "pdf"

// BookRecord is the metadata record for a published book.
//
// CoverImageURL and FileURL are the durable locator URLs issued by the
// object-storage service; both are non-empty for every persisted record.
// AuthorID is set at creation and never reassigned.
type BookRecord struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	Title         string    `json:"title" bson:"title"`
	Description   string    `json:"description" bson:"description"`
	Genre         string    `json:"genre" bson:"genre"`
	AuthorID      string    `json:"author_id" bson:"author_id"`
	CoverImageURL string    `json:"cover_image" bson:"cover_image"`
	FileURL       string    `json:"file" bson:"file"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}

// User is a registered author. Password holds the bcrypt hash, never the
// plain text; it is excluded from JSON output.
type User struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Password  string    `json:"-" bson:"password"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// AssetFile describes a file spooled to local disk by the HTTP layer,
// awaiting upload to the object-storage service.
type AssetFile struct {
	LocalPath string
	FileName  string
	MimeType  string
}

// BookPage is one page of a book listing.
type BookPage struct {
	Books       []*BookRecord `json:"books"`
	CurrentPage int64         `json:"currentPage"`
	TotalPages  int64         `json:"totalPages"`
	TotalBooks  int64         `json:"totalBooks"`
}

// Warning is an advisory failure: a best-effort cleanup that missed.
// Operations return warnings alongside their primary result so callers can
// tell "succeeded with an orphan" apart from "failed".
type Warning struct {
	Op  string // e.g. "remove_temp_file", "destroy_superseded_asset"
	Ref string // local path or storage key involved
	Err error
}

func (w Warning) String() string {
	return w.Op + " " + w.Ref + ": " + w.Err.Error()
}
