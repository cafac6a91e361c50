package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elibhq/bookvault/pkg/bookvault"
)

func newBook(author, title string, createdAt time.Time) *bookvault.BookRecord {
	return &bookvault.BookRecord{
		Title:         title,
		Genre:         "scifi",
		AuthorID:      author,
		CoverImageURL: "https://assets.example.com/book-covers/" + title + ".jpg",
		FileURL:       "https://assets.example.com/book-pdfs/" + title + ".pdf",
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
}

func TestBookRepository_CreateAndGet(t *testing.T) {
	repo := NewBookRepository()
	ctx := context.Background()

	book := newBook("u1", "dune", time.Now().UTC())
	require.NoError(t, repo.CreateBook(ctx, book))
	assert.NotEmpty(t, book.ID)

	got, err := repo.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, book.Title, got.Title)
	assert.Equal(t, book.AuthorID, got.AuthorID)

	// Mutating the returned copy must not leak into the store
	got.Title = "mutated"
	again, err := repo.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "dune", again.Title)
}

func TestBookRepository_GetMissing(t *testing.T) {
	repo := NewBookRepository()

	_, err := repo.GetBook(context.Background(), "nope")
	assert.ErrorIs(t, err, bookvault.ErrBookNotFound)
}

func TestBookRepository_UpdatePatchSemantics(t *testing.T) {
	repo := NewBookRepository()
	ctx := context.Background()

	book := newBook("u1", "dune", time.Now().UTC())
	require.NoError(t, repo.CreateBook(ctx, book))

	title := "dune messiah"
	updated, err := repo.UpdateBook(ctx, book.ID, bookvault.BookPatch{
		Title:         &title,
		CoverImageURL: book.CoverImageURL,
		FileURL:       book.FileURL,
	})
	require.NoError(t, err)

	assert.Equal(t, "dune messiah", updated.Title)
	// Nil patch fields keep stored values
	assert.Equal(t, "scifi", updated.Genre)
	assert.Equal(t, book.CoverImageURL, updated.CoverImageURL)
}

func TestBookRepository_Delete(t *testing.T) {
	repo := NewBookRepository()
	ctx := context.Background()

	book := newBook("u1", "dune", time.Now().UTC())
	require.NoError(t, repo.CreateBook(ctx, book))
	require.NoError(t, repo.DeleteBook(ctx, book.ID))

	_, err := repo.GetBook(ctx, book.ID)
	assert.ErrorIs(t, err, bookvault.ErrBookNotFound)
	assert.ErrorIs(t, repo.DeleteBook(ctx, book.ID), bookvault.ErrBookNotFound)
}

func TestBookRepository_ListSkipLimitAndScope(t *testing.T) {
	repo := NewBookRepository()
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	for i, title := range []string{"a", "b", "c", "d"} {
		author := "u1"
		if i == 3 {
			author = "u2"
		}
		require.NoError(t, repo.CreateBook(ctx, newBook(author, title, base.Add(time.Duration(i)*time.Hour))))
	}

	all, err := repo.ListBooks(ctx, bookvault.BookQuery{Skip: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].Title)
	assert.Equal(t, "c", all[1].Title)

	mine, err := repo.ListBooks(ctx, bookvault.BookQuery{AuthorID: "u1", Limit: 10, NewestFirst: true})
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, "c", mine[0].Title)
	assert.Equal(t, "a", mine[2].Title)

	past, err := repo.ListBooks(ctx, bookvault.BookQuery{Skip: 100, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, past)

	count, err := repo.CountBooks(ctx, bookvault.BookQuery{AuthorID: "u1"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func TestUserRepository(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	user := &bookvault.User{Name: "Paul", Email: "paul@arrakis.example", Password: "hash"}
	require.NoError(t, repo.CreateUser(ctx, user))
	assert.NotEmpty(t, user.ID)

	byID, err := repo.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Paul", byID.Name)

	byEmail, err := repo.GetUserByEmail(ctx, "paul@arrakis.example")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.GetUserByEmail(ctx, "other@example.com")
	assert.ErrorIs(t, err, bookvault.ErrUserNotFound)
}
