// Package storage persists the mood collection and auth token as whole
// values under fixed keys, the way the browser client uses local storage.
package storage

import (
	"context"
	"errors"
)

var (
	ErrKeyNotFound = errors.New("key not found")
)

const (
	// KeyMoodData holds the JSON array of every mood entry.
	KeyMoodData = "moodData"
	// KeyToken holds the auth token exactly as returned by the auth API.
	KeyToken = "token"
)

// KV is a string key-value store with whole-value replace semantics.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
