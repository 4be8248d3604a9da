package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	pkgdb "github.com/unowned-ai/moodflow/pkg/db"
	"github.com/unowned-ai/moodflow/pkg/moods"
	"github.com/unowned-ai/moodflow/pkg/storage"
)

var fixedNow = time.Date(2026, time.October, 18, 20, 15, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	initCmd()
	os.Exit(m.Run())
}

// executeCommand runs the root command with args against a fresh set of
// command flags and returns what it printed to stdout.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	moodFlag, activitiesFlag, notesFlag = "", "", ""
	limitFlag, jsonFlag, statsJSONFlag = 0, false, false
	usernameFlag, passwordFlag = "", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func setClock(t *testing.T, at time.Time) {
	t.Helper()
	prev := timeNow
	timeNow = func() time.Time { return at }
	t.Cleanup(func() { timeNow = prev })
}

func tempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "moods.db")
}

func TestVersion(t *testing.T) {
	out, err := executeCommand(t, "", "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if strings.TrimSpace(out) == "" {
		t.Error("Expected a version number")
	}
}

func TestEntriesLifecycle(t *testing.T) {
	db := tempDB(t)
	setClock(t, fixedNow)

	out, err := executeCommand(t, "", "entries", "add", "--db", db, "--mood", "Happy", "--activities", "walk, tea", "--notes", "sunny")
	if err != nil {
		t.Fatalf("entries add failed: %v", err)
	}
	if !strings.Contains(out, "Entry saved!") || !strings.Contains(out, "Happy") {
		t.Errorf("Unexpected add output:\n%s", out)
	}

	out, err = executeCommand(t, "", "entries", "list", "--db", db, "--json")
	if err != nil {
		t.Fatalf("entries list failed: %v", err)
	}
	var entries []moods.Entry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("list output is not JSON: %v\n%s", err, out)
	}
	if len(entries) != 1 || entries[0].ID != fixedNow.UnixMilli() {
		t.Fatalf("Unexpected entries: %#v", entries)
	}
	id := strconv.FormatInt(entries[0].ID, 10)

	out, err = executeCommand(t, "", "entries", "get", id, "--db", db)
	if err != nil {
		t.Fatalf("entries get failed: %v", err)
	}
	if !strings.Contains(out, "walk, tea") || !strings.Contains(out, "sunny") || !strings.Contains(out, "Sun, Oct 18 20:15") {
		t.Errorf("Unexpected get output:\n%s", out)
	}

	out, err = executeCommand(t, "", "entries", "delete", id, "--db", db)
	if err != nil {
		t.Fatalf("entries delete failed: %v", err)
	}
	if !strings.Contains(out, "Entry deleted successfully!") {
		t.Errorf("Unexpected delete output:\n%s", out)
	}

	if _, err := executeCommand(t, "", "entries", "get", id, "--db", db); err == nil || !strings.Contains(err.Error(), "entry not found") {
		t.Errorf("Expected entry not found, got %v", err)
	}

	out, err = executeCommand(t, "", "entries", "list", "--db", db)
	if err != nil {
		t.Fatalf("entries list failed: %v", err)
	}
	if !strings.Contains(out, "No entries yet.") {
		t.Errorf("Expected empty list message, got:\n%s", out)
	}
}

func TestAddRejectsUnknownMood(t *testing.T) {
	_, err := executeCommand(t, "", "entries", "add", "--db", tempDB(t), "--mood", "furious")
	if err == nil || !strings.Contains(err.Error(), "unknown mood") {
		t.Errorf("Expected unknown mood error, got %v", err)
	}
}

func TestInvalidConfigIsRejected(t *testing.T) {
	_, err := executeCommand(t, "", "entries", "list", "--db", tempDB(t), "--store", "redis")
	t.Cleanup(func() { cfg.Store = "sqlite" })
	if err == nil || !strings.Contains(err.Error(), "unknown store") {
		t.Errorf("Expected unknown store error, got %v", err)
	}
}

func TestStatsCommands(t *testing.T) {
	db := tempDB(t)

	setClock(t, fixedNow.AddDate(0, 0, -1))
	if _, err := executeCommand(t, "", "entries", "add", "--db", db, "--mood", "happy"); err != nil {
		t.Fatalf("entries add failed: %v", err)
	}
	setClock(t, fixedNow)
	if _, err := executeCommand(t, "", "entries", "add", "--db", db, "--mood", "sad"); err != nil {
		t.Fatalf("entries add failed: %v", err)
	}

	out, err := executeCommand(t, "", "stats", "summary", "--db", db)
	if err != nil {
		t.Fatalf("stats summary failed: %v", err)
	}
	for _, want := range []string{"Total entries: 2", "Day streak:    2", "Happiness:     50%"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected summary to contain %q, got:\n%s", want, out)
		}
	}

	out, err = executeCommand(t, "", "stats", "week", "--db", db)
	if err != nil {
		t.Fatalf("stats week failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 7 || !strings.HasPrefix(lines[6], "Sun 2026-10-18") || !strings.Contains(lines[6], "Sad") || !strings.Contains(lines[5], "Happy") {
		t.Errorf("Unexpected week output:\n%s", out)
	}

	out, err = executeCommand(t, "", "stats", "month", "--db", db)
	if err != nil {
		t.Fatalf("stats month failed: %v", err)
	}
	if !strings.HasPrefix(out, "October 2026\n") || !strings.Contains(out, "31") {
		t.Errorf("Unexpected month output:\n%s", out)
	}
}

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var creds struct{ Username, Password string }
		json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"msg":"Invalid credentials"}`))
			return
		}
		w.Write([]byte(`{"token":"tok-` + creds.Username + `"}`))
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { cfg.AuthURL = "http://localhost:5000" })

	db := tempDB(t)

	_, err := executeCommand(t, "", "login", "--db", db, "--auth-url", srv.URL, "-u", "me", "-p", "wrong")
	if err == nil || err.Error() != "Invalid credentials" {
		t.Errorf("Expected the server message as error, got %v", err)
	}

	// Password read from stdin.
	out, err := executeCommand(t, "secret\n", "login", "--db", db, "--auth-url", srv.URL, "-u", "me")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if strings.TrimSpace(out) != "Login successful!" {
		t.Errorf("Expected success message, got %q", out)
	}
	if token := storedToken(t, db); token != "tok-me" {
		t.Errorf("Expected stored token tok-me, got %q", token)
	}

	if _, err := executeCommand(t, "", "logout", "--db", db); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if token := storedToken(t, db); token != "" {
		t.Errorf("Expected token to be cleared, got %q", token)
	}
}

func storedToken(t *testing.T, path string) string {
	t.Helper()
	conn, err := pkgdb.Open(path, false, "FULL")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer conn.Close()

	token, err := storage.NewTokenStore(storage.NewSQLite(conn)).Token(context.Background())
	if err != nil {
		return ""
	}
	return token
}
