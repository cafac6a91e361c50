package s3

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elibhq/bookvault/pkg/bookvault"
	"github.com/elibhq/bookvault/pkg/bookvault/objectkey"
)

func TestObjectKeyFor(t *testing.T) {
	key := objectKeyFor(bookvault.UploadParams{
		Folder:           bookvault.FolderBookCovers,
		FilenameOverride: "8f14e45f.png",
		Format:           "jpeg",
	})
	assert.Equal(t, "book-covers/8f14e45f.jpeg", key)

	key = objectKeyFor(bookvault.UploadParams{
		Folder:           bookvault.FolderBookFiles,
		FilenameOverride: "my book?.pdf",
		Format:           "pdf",
	})
	assert.Equal(t, "book-pdfs/my_book_.pdf", key)
}

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   string
	}{
		{
			name:   "aws virtual-hosted",
			config: Config{Bucket: "elib-assets", Region: "eu-west-1"},
			want:   "https://elib-assets.s3.eu-west-1.amazonaws.com/book-covers/abc.jpeg",
		},
		{
			name:   "custom endpoint path-style",
			config: Config{Bucket: "elib-assets", Endpoint: "http://localhost:9000/", UsePathStyle: true},
			want:   "http://localhost:9000/elib-assets/book-covers/abc.jpeg",
		},
		{
			name:   "cdn base url",
			config: Config{Bucket: "elib-assets", PublicBaseURL: "https://cdn.elib.example/"},
			want:   "https://cdn.elib.example/book-covers/abc.jpeg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &Store{bucket: tt.config.Bucket, config: tt.config}
			assert.Equal(t, tt.want, store.publicURL("book-covers/abc.jpeg"))
		})
	}
}

// The key embedded in an issued URL must survive the codec round trip, or
// replaced and deleted assets could never be addressed again.
func TestIssuedURLRoundTripsThroughCodec(t *testing.T) {
	store := &Store{bucket: "elib-assets", config: Config{Bucket: "elib-assets", Region: "us-east-1"}}

	objectKey := objectKeyFor(bookvault.UploadParams{
		Folder:           bookvault.FolderBookCovers,
		FilenameOverride: "8f14e45f.png",
		Format:           "jpeg",
	})
	url := store.publicURL(objectKey)

	assert.Equal(t, "book-covers/8f14e45f", objectkey.Derive(url))
}

func TestNewRequiresBucket(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}
