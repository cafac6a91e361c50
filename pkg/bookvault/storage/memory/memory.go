package memory

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/elibhq/bookvault/pkg/bookvault"
)

const urlPrefix = "https://assets.test"

// Store is an in-memory implementation of the bookvault.AssetStore
// interface. Uploads read the local file like a real backend would, and
// failures can be injected per folder or per key for exercising the
// partial-failure paths.
type Store struct {
	mu          sync.RWMutex
	objects     map[string][]byte // storage key -> content
	destroyed   []string
	uploadFail  map[string]error // folder -> error
	destroyFail map[string]error // storage key -> error
}

// New creates a new in-memory asset store
func New() *Store {
	return &Store{
		objects:     make(map[string][]byte),
		uploadFail:  make(map[string]error),
		destroyFail: make(map[string]error),
	}
}

// FailUploadsTo makes every upload into folder fail with err.
func (s *Store) FailUploadsTo(folder string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploadFail[folder] = err
}

// FailDestroyOf makes destroying the given storage key fail with err.
func (s *Store) FailDestroyOf(key string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destroyFail[key] = err
}

func (s *Store) Upload(ctx context.Context, localPath string, params bookvault.UploadParams) (*bookvault.UploadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.uploadFail[params.Folder]; err != nil {
		return nil, err
	}

	data, err := os.ReadFile(localPath)
	if err != nil {
		return nil, err
	}

	name := params.FilenameOverride
	if dot := strings.LastIndex(name, "."); dot > 0 {
		name = name[:dot]
	}
	key := params.Folder + "/" + name
	s.objects[key] = data

	return &bookvault.UploadResult{
		SecureURL: fmt.Sprintf("%s/%s.%s", urlPrefix, key, params.Format),
	}, nil
}

func (s *Store) Destroy(ctx context.Context, key string, resourceType bookvault.ResourceType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.destroyFail[key]; err != nil {
		return err
	}
	if _, exists := s.objects[key]; !exists {
		return errors.New("object not found")
	}
	delete(s.objects, key)
	s.destroyed = append(s.destroyed, key)
	return nil
}

// Has reports whether an object is currently stored under key.
func (s *Store) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.objects[key]
	return exists
}

// DestroyCount returns how many times key has been successfully destroyed.
func (s *Store) DestroyCount(key string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, k := range s.destroyed {
		if k == key {
			n++
		}
	}
	return n
}

// Len returns the number of stored objects.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
