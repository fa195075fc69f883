// Package store persists whole collections as single JSON documents.
//
// Every backend follows the same contract: a collection is read and written
// in full, there are no partial updates.
package store

import (
	"context"
	"errors"
	"sync"
)

var ErrMalformed = errors.New("malformed collection document")

type Store interface {
	// Load decodes the collection into dst. dst is left untouched when the
	// collection does not exist yet.
	Load(ctx context.Context, collection string, dst any) error
	// Save replaces the collection with v.
	Save(ctx context.Context, collection string, v any) error
	Ping(ctx context.Context) error
	Close() error
}

var (
	locks   = make(map[string]*sync.Mutex)
	locksMu sync.Mutex
)

func lockCollection(collection string) func() {
	locksMu.Lock()
	mu, ok := locks[collection]
	if !ok {
		mu = &sync.Mutex{}
		locks[collection] = mu
	}
	locksMu.Unlock()

	mu.Lock()
	return mu.Unlock
}

// LoadAll returns every record of a collection, or an empty slice.
func LoadAll[T any](ctx context.Context, st Store, collection string) ([]T, error) {
	records := []T{}

	if err := st.Load(ctx, collection, &records); err != nil {
		return nil, err
	}

	if records == nil {
		records = []T{}
	}

	return records, nil
}

// Update runs a read-modify-write cycle on a collection while holding the
// collection lock. Nothing is saved when fn returns an error.
func Update[T any](ctx context.Context, st Store, collection string, fn func([]T) ([]T, error)) error {
	unlock := lockCollection(collection)
	defer unlock()

	records, err := LoadAll[T](ctx, st, collection)

	if err != nil {
		return err
	}

	records, err = fn(records)

	if err != nil {
		return err
	}

	if records == nil {
		records = []T{}
	}

	return st.Save(ctx, collection, records)
}
