// The redistore package defines a ResultStore backed by Redis, where every vector
// is a string key that expires after the configured TTL.
package redistore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vertex-lab/ssppr/pkg/models"
	"github.com/vertex-lab/ssppr/pkg/utils/redisutils"
)

const KeyResultPrefix string = "result:"

// ResultStore fulfills the ResultStore interface defined in models.
type ResultStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResultStore() returns a ResultStore using the client. A ttl of zero means the results never expire.
func NewResultStore(cl *redis.Client, ttl time.Duration) (*ResultStore, error) {
	if cl == nil {
		return nil, models.ErrNilClientPointer
	}

	if ttl < 0 {
		return nil, fmt.Errorf("%w: negative ttl %v", models.ErrInvalidArgument, ttl)
	}

	return &ResultStore{client: cl, ttl: ttl}, nil
}

// Validate() returns the appropriate error if the store or its client are nil.
func (s *ResultStore) Validate() error {
	if s == nil {
		return models.ErrNilStore
	}

	if s.client == nil {
		return models.ErrNilClientPointer
	}

	return nil
}

// Contains() returns whether a vector is stored under key (ignores errors).
func (s *ResultStore) Contains(ctx context.Context, key string) bool {
	if s.Validate() != nil {
		return false
	}

	exists, err := s.client.Exists(ctx, KeyResult(key)).Result()
	return err == nil && exists > 0
}

// Save() stores the vector under key, overwriting any previous value.
func (s *ResultStore) Save(ctx context.Context, key string, vector models.Vector) error {
	if err := s.Validate(); err != nil {
		return err
	}

	if err := s.client.Set(ctx, KeyResult(key), redisutils.FormatVector(vector), s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save the result %s: %w", key, err)
	}

	return nil
}

// Load() returns the vector stored under key, or models.ErrResultNotFound.
func (s *ResultStore) Load(ctx context.Context, key string) (models.Vector, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	strVector, err := s.client.Get(ctx, KeyResult(key)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, models.ErrResultNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load the result %s: %w", key, err)
	}

	return redisutils.ParseVector(strVector)
}

// KeyResult() returns the Redis key of the result with the specified key
func KeyResult(key string) string {
	return KeyResultPrefix + key
}
