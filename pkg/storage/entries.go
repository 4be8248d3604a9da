package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/unowned-ai/moodflow/pkg/moods"
)

// Store is the persistence port for the mood collection. Both operations
// work on the whole collection; there are no partial updates.
type Store interface {
	Load(ctx context.Context) ([]moods.Entry, error)
	Save(ctx context.Context, entries []moods.Entry) error
}

// EntryStore keeps the collection as a single JSON array under KeyMoodData.
type EntryStore struct {
	kv KV
}

func NewEntryStore(kv KV) *EntryStore {
	return &EntryStore{kv: kv}
}

// Load returns the stored entries in their stored order. A missing key is an
// empty collection.
func (s *EntryStore) Load(ctx context.Context) ([]moods.Entry, error) {
	raw, err := s.kv.Get(ctx, KeyMoodData)
	if errors.Is(err, ErrKeyNotFound) {
		return []moods.Entry{}, nil
	}
	if err != nil {
		return nil, err
	}

	var entries []moods.Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", KeyMoodData, err)
	}
	if entries == nil {
		entries = []moods.Entry{}
	}
	return entries, nil
}

func (s *EntryStore) Save(ctx context.Context, entries []moods.Entry) error {
	if entries == nil {
		entries = []moods.Entry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", KeyMoodData, err)
	}
	return s.kv.Put(ctx, KeyMoodData, string(raw))
}
