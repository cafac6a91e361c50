package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/elibhq/bookvault/pkg/bookvault"
)

// BookRepository implements bookvault.BookRepository using in-memory storage
type BookRepository struct {
	mu    sync.RWMutex
	books map[string]*bookvault.BookRecord
	order []string // insertion order, stands in for the store's natural order
}

// NewBookRepository creates a new in-memory book repository
func NewBookRepository() *BookRepository {
	return &BookRepository{
		books: make(map[string]*bookvault.BookRecord),
	}
}

func (r *BookRepository) CreateBook(ctx context.Context, book *bookvault.BookRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if book.ID == "" {
		book.ID = uuid.NewString()
	}
	// Store a copy to avoid external modifications
	bookCopy := *book
	r.books[book.ID] = &bookCopy
	r.order = append(r.order, book.ID)

	return nil
}

func (r *BookRepository) GetBook(ctx context.Context, id string) (*bookvault.BookRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	book, exists := r.books[id]
	if !exists {
		return nil, bookvault.ErrBookNotFound
	}

	bookCopy := *book
	return &bookCopy, nil
}

func (r *BookRepository) UpdateBook(ctx context.Context, id string, patch bookvault.BookPatch) (*bookvault.BookRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	book, exists := r.books[id]
	if !exists {
		return nil, bookvault.ErrBookNotFound
	}

	if patch.Title != nil {
		book.Title = *patch.Title
	}
	if patch.Description != nil {
		book.Description = *patch.Description
	}
	if patch.Genre != nil {
		book.Genre = *patch.Genre
	}
	book.CoverImageURL = patch.CoverImageURL
	book.FileURL = patch.FileURL
	book.UpdatedAt = time.Now().UTC()

	bookCopy := *book
	return &bookCopy, nil
}

func (r *BookRepository) DeleteBook(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.books[id]; !exists {
		return bookvault.ErrBookNotFound
	}
	delete(r.books, id)
	for i, bookID := range r.order {
		if bookID == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *BookRepository) ListBooks(ctx context.Context, q bookvault.BookQuery) ([]*bookvault.BookRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*bookvault.BookRecord
	for _, id := range r.order {
		book := r.books[id]
		if q.AuthorID != "" && book.AuthorID != q.AuthorID {
			continue
		}
		bookCopy := *book
		result = append(result, &bookCopy)
	}

	if q.NewestFirst {
		sort.Slice(result, func(i, j int) bool {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		})
	}

	// Apply skip/limit after filtering and ordering
	if q.Skip > 0 {
		if q.Skip >= int64(len(result)) {
			return nil, nil
		}
		result = result[q.Skip:]
	}
	if q.Limit > 0 && int64(len(result)) > q.Limit {
		result = result[:q.Limit]
	}

	return result, nil
}

func (r *BookRepository) CountBooks(ctx context.Context, q bookvault.BookQuery) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, book := range r.books {
		if q.AuthorID != "" && book.AuthorID != q.AuthorID {
			continue
		}
		count++
	}
	return count, nil
}

// UserRepository implements bookvault.UserRepository using in-memory storage
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*bookvault.User
}

// NewUserRepository creates a new in-memory user repository
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[string]*bookvault.User),
	}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *bookvault.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	userCopy := *user
	r.users[user.ID] = &userCopy
	return nil
}

func (r *UserRepository) GetUser(ctx context.Context, id string) (*bookvault.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return nil, bookvault.ErrUserNotFound
	}
	userCopy := *user
	return &userCopy, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*bookvault.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			userCopy := *user
			return &userCopy, nil
		}
	}
	return nil, bookvault.ErrUserNotFound
}
