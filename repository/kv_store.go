package repository

import (
	"context"
	"encoding/json"
	"time"
)

// KVStore is the persistence primitive behind carts, sessions and address books.
// Get returns (nil, nil) when the key is absent.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// SaveJSON encodes v and stores it under key.
func SaveJSON(ctx context.Context, store KVStore, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return store.Set(ctx, key, data, ttl)
}
