package models

import (
	"context"
	"errors"
)

// ResultStore caches PPR vectors under a key that identifies graph, source, method and parameters.
type ResultStore interface {
	// Validate() returns the appropriate error if the store is nil or unusable.
	Validate() error

	// Contains() returns whether a vector is stored under key (ignores errors).
	Contains(ctx context.Context, key string) bool

	// Save() stores the vector under key, overwriting any previous value.
	Save(ctx context.Context, key string, vector Vector) error

	// Load() returns the vector stored under key, or ErrResultNotFound.
	Load(ctx context.Context, key string) (Vector, error)
}

//--------------------------ERROR-CODES--------------------------

var ErrNilStore = errors.New("result store pointer is nil")
var ErrResultNotFound = errors.New("result not found in the store")
var ErrNilClientPointer = errors.New("nil client pointer")
