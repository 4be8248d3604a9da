// Package journal adds, lists and deletes mood entries on top of a
// storage.Store. Every mutation loads the whole collection, changes it and
// saves it back while holding the journal's lock.
package journal

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/unowned-ai/moodflow/pkg/moods"
	"github.com/unowned-ai/moodflow/pkg/stats"
	"github.com/unowned-ai/moodflow/pkg/storage"
)

var (
	ErrEntryNotFound = errors.New("entry not found")
)

// Journal is safe for concurrent use within one process.
type Journal struct {
	mu    sync.Mutex
	store storage.Store
}

func New(store storage.Store) *Journal {
	return &Journal{store: store}
}

// Add records a new entry created at now and returns it. activities is the
// raw comma-separated form input.
func (j *Journal) Add(ctx context.Context, mood string, activities, notes string, now time.Time) (moods.Entry, error) {
	m, err := moods.ParseMood(mood)
	if err != nil {
		return moods.Entry{}, err
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	entries, err := j.store.Load(ctx)
	if err != nil {
		return moods.Entry{}, err
	}

	entry := moods.NewEntry(m, moods.ParseActivities(activities), notes, now)
	// Ids must stay unique and increasing even for two saves within the
	// same millisecond or after a clock step backwards.
	if newest := newestID(entries); entry.ID <= newest {
		entry.ID = newest + 1
	}

	if err := j.store.Save(ctx, append(entries, entry)); err != nil {
		return moods.Entry{}, err
	}
	return entry, nil
}

// Delete removes the entry with the given id.
func (j *Journal) Delete(ctx context.Context, id int64) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	entries, err := j.store.Load(ctx)
	if err != nil {
		return err
	}

	kept := slices.DeleteFunc(slices.Clone(entries), func(e moods.Entry) bool {
		return e.ID == id
	})
	if len(kept) == len(entries) {
		return ErrEntryNotFound
	}
	return j.store.Save(ctx, kept)
}

func (j *Journal) Get(ctx context.Context, id int64) (moods.Entry, error) {
	entries, err := j.store.Load(ctx)
	if err != nil {
		return moods.Entry{}, err
	}
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
	}
	return moods.Entry{}, ErrEntryNotFound
}

// List returns every entry in creation order.
func (j *Journal) List(ctx context.Context) ([]moods.Entry, error) {
	return j.store.Load(ctx)
}

// ListNewestFirst returns every entry, most recently created first.
func (j *Journal) ListNewestFirst(ctx context.Context) ([]moods.Entry, error) {
	entries, err := j.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	slices.Reverse(entries)
	return entries, nil
}

// Summary computes the dashboard statistics over the stored collection.
func (j *Journal) Summary(ctx context.Context, now time.Time) (stats.Summary, error) {
	entries, err := j.store.Load(ctx)
	if err != nil {
		return stats.Summary{}, err
	}
	return stats.Summarize(entries, now), nil
}

func newestID(entries []moods.Entry) int64 {
	var newest int64
	for _, e := range entries {
		if e.ID > newest {
			newest = e.ID
		}
	}
	return newest
}
