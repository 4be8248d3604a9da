package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/unowned-ai/moodflow/pkg/journal"
	"github.com/unowned-ai/moodflow/pkg/moods"
	"github.com/unowned-ai/moodflow/pkg/stats"
	"github.com/unowned-ai/moodflow/pkg/storage"
)

var fixedNow = time.Date(2026, time.October, 18, 20, 15, 0, 0, time.UTC)

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func setupServer(t *testing.T) (*Server, *journal.Journal) {
	t.Helper()
	j := journal.New(storage.NewEntryStore(storage.NewMemory()))
	return NewServer(j, fakePinger{}, func() time.Time { return fixedNow }), j
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		pinger     Pinger
		wantStatus int
		wantState  string
	}{
		{name: "Healthy", pinger: fakePinger{}, wantStatus: http.StatusOK, wantState: "ok"},
		{name: "StorageDown", pinger: fakePinger{err: errors.New("boom")}, wantStatus: http.StatusServiceUnavailable, wantState: "degraded"},
		{name: "NoPinger", pinger: nil, wantStatus: http.StatusOK, wantState: "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := journal.New(storage.NewEntryStore(storage.NewMemory()))
			srv := NewServer(j, tt.pinger, func() time.Time { return fixedNow })

			rec := doRequest(t, srv, http.MethodGet, "/health", "")
			if rec.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if got := decode[Health](t, rec); got.Status != tt.wantState {
				t.Errorf("Expected status %q, got %q", tt.wantState, got.Status)
			}
		})
	}
}

func TestCreateAndGetEntry(t *testing.T) {
	srv, _ := setupServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/entries", `{"mood":"happy","activities":"walk, tea","notes":"good day"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	created := decode[moods.Entry](t, rec)
	if created.Mood != moods.Happy || len(created.Activities) != 2 || created.ID != fixedNow.UnixMilli() {
		t.Errorf("Unexpected created entry: %#v", created)
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/entries/"+strconv.FormatInt(created.ID, 10), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if got := decode[moods.Entry](t, rec); got.Notes != "good day" {
		t.Errorf("Expected stored notes, got %#v", got)
	}
}

func TestCreateEntryErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "NoMood", body: `{"notes":"x"}`, wantMsg: "Please select a mood"},
		{name: "UnknownMood", body: `{"mood":"grumpy"}`, wantMsg: "Please select a mood"},
		{name: "BadJSON", body: `{mood`, wantMsg: "Invalid JSON body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, j := setupServer(t)
			rec := doRequest(t, srv, http.MethodPost, "/api/entries", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rec.Code)
			}
			if got := decode[errorResponse](t, rec); got.Msg != tt.wantMsg {
				t.Errorf("Expected msg %q, got %q", tt.wantMsg, got.Msg)
			}
			if entries, _ := j.List(context.Background()); len(entries) != 0 {
				t.Errorf("Expected nothing stored, got %d entries", len(entries))
			}
		})
	}
}

func TestListAndDeleteEntries(t *testing.T) {
	srv, j := setupServer(t)
	ctx := context.Background()
	older, _ := j.Add(ctx, "sad", "", "", fixedNow.Add(-time.Hour))
	newer, _ := j.Add(ctx, "neutral", "", "", fixedNow)

	rec := doRequest(t, srv, http.MethodGet, "/api/entries", "")
	list := decode[[]moods.Entry](t, rec)
	if len(list) != 2 || list[0].ID != newer.ID || list[1].ID != older.ID {
		t.Errorf("Expected newest first, got %#v", list)
	}

	rec = doRequest(t, srv, http.MethodDelete, "/api/entries/"+strconv.FormatInt(older.ID, 10), "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", rec.Code)
	}
	rec = doRequest(t, srv, http.MethodDelete, "/api/entries/"+strconv.FormatInt(older.ID, 10), "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 on second delete, got %d", rec.Code)
	}
	rec = doRequest(t, srv, http.MethodGet, "/api/entries/not-a-number", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for a bad id, got %d", rec.Code)
	}
}

func TestEmptyListIsArray(t *testing.T) {
	srv, _ := setupServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/api/entries", "")
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("Expected [], got %q", got)
	}
}

func TestStatsEndpoints(t *testing.T) {
	srv, j := setupServer(t)
	ctx := context.Background()
	j.Add(ctx, "happy", "", "", fixedNow.AddDate(0, 0, -2))
	j.Add(ctx, "happy", "", "", fixedNow.AddDate(0, 0, -1))
	j.Add(ctx, "sad", "", "", fixedNow)

	summary := decode[stats.Summary](t, doRequest(t, srv, http.MethodGet, "/api/stats", ""))
	if summary.Totals.Count != 3 || summary.HappyPercentage != 67 || summary.Streak != 3 {
		t.Errorf("Unexpected summary: %+v", summary)
	}

	week := decode[[]stats.DayCell](t, doRequest(t, srv, http.MethodGet, "/api/stats/weekly", ""))
	if len(week) != 7 || week[6].Weekday != "Sun" || week[6].Mood != moods.Sad || week[4].Mood != moods.Happy {
		t.Errorf("Unexpected week: %+v", week)
	}

	month := decode[MonthlyResponse](t, doRequest(t, srv, http.MethodGet, "/api/stats/monthly", ""))
	if month.Month != "October 2026" || len(month.Days) != 35 || month.Days[0] != nil {
		t.Errorf("Unexpected month: %s with %d cells", month.Month, len(month.Days))
	}
}

func TestWeeklyEmptyDaysAreNull(t *testing.T) {
	srv, j := setupServer(t)
	j.Add(context.Background(), "happy", "", "", fixedNow)

	var week []map[string]any
	if err := json.NewDecoder(doRequest(t, srv, http.MethodGet, "/api/stats/weekly", "").Body).Decode(&week); err != nil {
		t.Fatalf("Failed to decode week: %v", err)
	}
	if len(week) != 7 {
		t.Fatalf("Expected 7 days, got %d", len(week))
	}
	mood, ok := week[0]["mood"]
	if !ok || mood != nil {
		t.Errorf("Expected explicit null mood for an empty day, got %v (present %v)", mood, ok)
	}
	if week[6]["mood"] != "happy" {
		t.Errorf("Expected happy today, got %v", week[6]["mood"])
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

func TestConcurrentCreateKeepsEveryEntry(t *testing.T) {
	j := journal.New(storage.NewEntryStore(slowKV{KV: storage.NewMemory()}))
	srv := NewServer(j, fakePinger{}, func() time.Time { return fixedNow })

	const requests = 20
	var wg sync.WaitGroup
	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := doRequest(t, srv, http.MethodPost, "/api/entries", `{"mood":"neutral"}`)
			if rec.Code != http.StatusCreated {
				t.Errorf("Expected 201, got %d", rec.Code)
			}
		}()
	}
	wg.Wait()

	all, err := j.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != requests {
		t.Errorf("Expected %d stored entries, got %d", requests, len(all))
	}
}

func TestRequestID(t *testing.T) {
	srv, _ := setupServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/health", "")
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("Expected a generated request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("Expected client request id to be echoed, got %q", got)
	}
}

func TestNotFound(t *testing.T) {
	srv, _ := setupServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
	if got := decode[errorResponse](t, rec); got.Msg != "Not found" {
		t.Errorf("Expected JSON error body, got %q", got.Msg)
	}
}
