package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elibhq/bookvault/pkg/bookvault"
)

func writeTempFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("payload"), 0o644))
	return path
}

func TestUploadAndDestroy(t *testing.T) {
	store := New()
	ctx := context.Background()

	result, err := store.Upload(ctx, writeTempFile(t, "cover.jpg"), bookvault.UploadParams{
		Folder:           bookvault.FolderBookCovers,
		FilenameOverride: "cover.jpg",
		Format:           "jpeg",
		ResourceType:     bookvault.ResourceImage,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://assets.test/book-covers/cover.jpeg", result.SecureURL)
	assert.True(t, store.Has("book-covers/cover"))

	require.NoError(t, store.Destroy(ctx, "book-covers/cover", bookvault.ResourceImage))
	assert.False(t, store.Has("book-covers/cover"))
	assert.Equal(t, 1, store.DestroyCount("book-covers/cover"))

	assert.Error(t, store.Destroy(ctx, "book-covers/cover", bookvault.ResourceImage),
		"destroying a missing object must fail")
}

func TestInjectedFailures(t *testing.T) {
	store := New()
	ctx := context.Background()

	uploadErr := errors.New("upload down")
	store.FailUploadsTo(bookvault.FolderBookFiles, uploadErr)

	_, err := store.Upload(ctx, writeTempFile(t, "book.pdf"), bookvault.UploadParams{
		Folder:           bookvault.FolderBookFiles,
		FilenameOverride: "book.pdf",
		Format:           bookvault.ContentFormat,
		ResourceType:     bookvault.ResourceRaw,
	})
	assert.ErrorIs(t, err, uploadErr)
	assert.Zero(t, store.Len())

	_, err = store.Upload(ctx, writeTempFile(t, "cover.jpg"), bookvault.UploadParams{
		Folder:           bookvault.FolderBookCovers,
		FilenameOverride: "cover.jpg",
		Format:           "jpeg",
		ResourceType:     bookvault.ResourceImage,
	})
	require.NoError(t, err, "other folders are unaffected")

	destroyErr := errors.New("destroy down")
	store.FailDestroyOf("book-covers/cover", destroyErr)
	assert.ErrorIs(t, store.Destroy(ctx, "book-covers/cover", bookvault.ResourceImage), destroyErr)
	assert.True(t, store.Has("book-covers/cover"), "failed destroy leaves the object")
}
