package journal

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	pkgdb "github.com/unowned-ai/moodflow/pkg/db"
	"github.com/unowned-ai/moodflow/pkg/moods"
	"github.com/unowned-ai/moodflow/pkg/storage"
)

var baseTime = time.Date(2026, time.October, 18, 8, 0, 0, 0, time.UTC)

func setupJournal(t *testing.T) *Journal {
	t.Helper()

	conn, err := pkgdb.OpenDBConnection(":memory:", false, "NORMAL")
	if err != nil {
		t.Fatalf("OpenDBConnection failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := pkgdb.UpgradeDB(conn, ":memory:", pkgdb.TargetSchemaVersion); err != nil {
		t.Fatalf("UpgradeDB failed: %v", err)
	}
	return New(storage.NewEntryStore(storage.NewSQLite(conn)))
}

// Helper to add an entry during test setup
func addTestEntry(t *testing.T, j *Journal, mood, activities, notes string, at time.Time) moods.Entry {
	t.Helper()
	entry, err := j.Add(context.Background(), mood, activities, notes, at)
	if err != nil {
		t.Fatalf("Add failed in addTestEntry: %v", err)
	}
	return entry
}

func TestAdd(t *testing.T) {
	j := setupJournal(t)
	ctx := context.Background()

	entry, err := j.Add(ctx, "Happy", "exercise, reading,  ", "went for a run", baseTime)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if entry.ID != baseTime.UnixMilli() {
		t.Errorf("Expected ID %d, got %d", baseTime.UnixMilli(), entry.ID)
	}
	if entry.Mood != moods.Happy {
		t.Errorf("Expected mood happy, got %s", entry.Mood)
	}
	if len(entry.Activities) != 2 || entry.Activities[0] != "exercise" || entry.Activities[1] != "reading" {
		t.Errorf("Unexpected activities: %#v", entry.Activities)
	}
	if entry.Notes != "went for a run" {
		t.Errorf("Expected notes to be kept, got %q", entry.Notes)
	}

	stored, err := j.Get(ctx, entry.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if stored.Date != entry.Date || stored.Mood != entry.Mood {
		t.Errorf("Stored entry doesn't match created entry: %#v vs %#v", stored, entry)
	}

	if _, err := j.Add(ctx, "furious", "", "", baseTime); !errors.Is(err, moods.ErrInvalidMood) {
		t.Errorf("Expected ErrInvalidMood, got %v", err)
	}
	all, _ := j.List(ctx)
	if len(all) != 1 {
		t.Errorf("Expected a rejected entry not to be stored, got %d entries", len(all))
	}
}

func TestAddKeepsIDsIncreasing(t *testing.T) {
	j := setupJournal(t)

	first := addTestEntry(t, j, "sad", "", "", baseTime)
	sameMillisecond := addTestEntry(t, j, "sad", "", "", baseTime)
	clockWentBack := addTestEntry(t, j, "sad", "", "", baseTime.Add(-time.Hour))

	if sameMillisecond.ID != first.ID+1 {
		t.Errorf("Expected ID %d, got %d", first.ID+1, sameMillisecond.ID)
	}
	if clockWentBack.ID != first.ID+2 {
		t.Errorf("Expected ID %d, got %d", first.ID+2, clockWentBack.ID)
	}
}

func TestListOrdering(t *testing.T) {
	j := setupJournal(t)
	ctx := context.Background()

	a := addTestEntry(t, j, "happy", "", "a", baseTime)
	b := addTestEntry(t, j, "neutral", "", "b", baseTime.Add(time.Hour))
	c := addTestEntry(t, j, "sad", "", "c", baseTime.Add(2*time.Hour))

	list, err := j.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 3 || list[0].ID != a.ID || list[1].ID != b.ID || list[2].ID != c.ID {
		t.Errorf("Expected creation order a, b, c; got %#v", list)
	}

	newest, err := j.ListNewestFirst(ctx)
	if err != nil {
		t.Fatalf("ListNewestFirst failed: %v", err)
	}
	if newest[0].ID != c.ID || newest[2].ID != a.ID {
		t.Errorf("Expected newest first c, b, a; got %#v", newest)
	}
}

func TestDelete(t *testing.T) {
	j := setupJournal(t)
	ctx := context.Background()

	keep := addTestEntry(t, j, "happy", "", "", baseTime)
	drop := addTestEntry(t, j, "sad", "", "", baseTime.Add(time.Minute))

	if err := j.Delete(ctx, drop.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := j.Get(ctx, drop.ID); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("Expected ErrEntryNotFound for deleted entry, got %v", err)
	}
	if _, err := j.Get(ctx, keep.ID); err != nil {
		t.Errorf("Expected other entry to survive, got %v", err)
	}

	if err := j.Delete(ctx, 42); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("Expected ErrEntryNotFound for unknown id, got %v", err)
	}
}

func TestSummary(t *testing.T) {
	j := setupJournal(t)
	ctx := context.Background()

	addTestEntry(t, j, "happy", "", "", baseTime.AddDate(0, 0, -1))
	addTestEntry(t, j, "happy", "", "", baseTime)
	addTestEntry(t, j, "sad", "", "", baseTime.Add(time.Hour))

	summary, err := j.Summary(ctx, baseTime.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.Totals.Count != 3 {
		t.Errorf("Expected 3 entries, got %d", summary.Totals.Count)
	}
	if summary.HappyPercentage != 67 {
		t.Errorf("Expected 67%% happy, got %d", summary.HappyPercentage)
	}
	if summary.Streak != 2 {
		t.Errorf("Expected a 2 day streak, got %d", summary.Streak)
	}
}

func TestSummaryCountsEntryAddedInLocalEvening(t *testing.T) {
	j := setupJournal(t)
	ctx := context.Background()

	la, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Skipf("time zone data unavailable: %v", err)
	}
	// 18:00 local is 01:00 on the next day in UTC.
	now := time.Date(2026, time.October, 18, 18, 0, 0, 0, la)

	entry := addTestEntry(t, j, "happy", "", "", now)
	if entry.Day() != "2026-10-18" {
		t.Errorf("Expected entry on 2026-10-18, got date %s", entry.Date)
	}

	summary, err := j.Summary(ctx, now)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.Streak != 1 {
		t.Errorf("Expected a 1 day streak, got %d", summary.Streak)
	}
	today := summary.Week[len(summary.Week)-1]
	if today.Date != "2026-10-18" || today.Mood != moods.Happy {
		t.Errorf("Expected happy today in weekly window, got %+v", today)
	}
}

// slowKV delays reads so that unsynchronized writers would interleave.
type slowKV struct {
	storage.KV
}

func (s slowKV) Get(ctx context.Context, key string) (string, error) {
	time.Sleep(2 * time.Millisecond)
	return s.KV.Get(ctx, key)
}

func TestConcurrentAddKeepsEveryEntry(t *testing.T) {
	j := New(storage.NewEntryStore(slowKV{KV: storage.NewMemory()}))
	ctx := context.Background()

	const writers = 20
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := j.Add(ctx, "neutral", "", fmt.Sprintf("entry %d", i), baseTime); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("Add failed: %v", err)
	}

	all, err := j.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != writers {
		t.Fatalf("Expected %d entries, got %d", writers, len(all))
	}
	seen := make(map[int64]bool)
	for _, e := range all {
		if seen[e.ID] {
			t.Errorf("Duplicate id %d", e.ID)
		}
		seen[e.ID] = true
	}

	// Concurrent deletes must not resurrect each other's victims.
	for _, e := range all[:writers/2] {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			if err := j.Delete(ctx, id); err != nil {
				t.Errorf("Delete(%d) failed: %v", id, err)
			}
		}(e.ID)
	}
	wg.Wait()
	if left, _ := j.List(ctx); len(left) != writers-writers/2 {
		t.Errorf("Expected %d entries after deletes, got %d", writers-writers/2, len(left))
	}
}
