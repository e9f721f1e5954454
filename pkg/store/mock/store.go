// The mock package defines an in-memory ResultStore, safe for concurrent use.
package mock

import (
	"context"
	"slices"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/vertex-lab/ssppr/pkg/models"
)

// ResultStore fulfills the ResultStore interface defined in models.
type ResultStore struct {
	results *xsync.MapOf[string, models.Vector]
}

// NewResultStore() returns an empty ResultStore.
func NewResultStore() *ResultStore {
	return &ResultStore{results: xsync.NewMapOf[string, models.Vector]()}
}

// Validate() returns the appropriate error if the store is nil.
func (s *ResultStore) Validate() error {
	if s == nil || s.results == nil {
		return models.ErrNilStore
	}
	return nil
}

// Contains() returns whether a vector is stored under key (ignores errors).
func (s *ResultStore) Contains(ctx context.Context, key string) bool {
	_ = ctx
	if s.Validate() != nil {
		return false
	}

	_, exists := s.results.Load(key)
	return exists
}

// Save() stores a copy of the vector under key.
func (s *ResultStore) Save(ctx context.Context, key string, vector models.Vector) error {
	_ = ctx
	if err := s.Validate(); err != nil {
		return err
	}

	s.results.Store(key, slices.Clone(vector))
	return nil
}

// Load() returns a copy of the vector stored under key.
func (s *ResultStore) Load(ctx context.Context, key string) (models.Vector, error) {
	_ = ctx
	if err := s.Validate(); err != nil {
		return nil, err
	}

	vector, exists := s.results.Load(key)
	if !exists {
		return nil, models.ErrResultNotFound
	}

	return slices.Clone(vector), nil
}

// Size() returns the number of stored vectors (ignores errors).
func (s *ResultStore) Size() int {
	if s.Validate() != nil {
		return 0
	}
	return s.results.Size()
}

// SetupStore() returns a ResultStore based on the storeType, used for testing.
func SetupStore(storeType string) *ResultStore {
	switch storeType {

	case "nil":
		return nil

	case "empty":
		return NewResultStore()

	case "one-result":
		s := NewResultStore()
		s.results.Store("ppr:path:0:forwardpush", models.Vector{0.2, 0.16, 0.128, 0.512})
		return s

	default:
		return nil // default to nil
	}
}
