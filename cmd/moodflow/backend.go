package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/unowned-ai/moodflow/pkg/config"
	pkgdb "github.com/unowned-ai/moodflow/pkg/db"
	"github.com/unowned-ai/moodflow/pkg/journal"
	"github.com/unowned-ai/moodflow/pkg/storage"
	"github.com/unowned-ai/moodflow/pkg/utils"
)

// timeNow is replaced in tests.
var timeNow = time.Now

// backend is the opened storage plus the services built on it.
type backend struct {
	kv      storage.KV
	pinger  interface{ Ping(context.Context) error }
	journal *journal.Journal
	tokens  *storage.TokenStore
	source  string
	closeFn func()
}

func (b *backend) Close() {
	if b.closeFn != nil {
		b.closeFn()
	}
}

// openBackend opens the configured store, creating or upgrading the local
// schema when needed.
func openBackend(ctx context.Context) (*backend, error) {
	switch cfg.Store {
	case config.StorePostgres:
		pg, err := storage.NewPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		log.Debug("Opened PostgreSQL storage")
		return newBackend(pg, pg, "postgres", pg.Close), nil

	default:
		path, err := utils.ResolveAndEnsureDBPath(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		dbConn, err := pkgdb.Open(path, cfg.WAL, cfg.SyncMode)
		if err != nil {
			return nil, fmt.Errorf("failed to open database '%s': %w", path, err)
		}
		log.Debug("Opened SQLite storage", "path", path, "wal", cfg.WAL, "sync", cfg.SyncMode)
		kv := storage.NewSQLite(dbConn)
		return newBackend(kv, kv, path, func() { closeSQLite(dbConn) }), nil
	}
}

func newBackend(kv storage.KV, pinger interface{ Ping(context.Context) error }, source string, closeFn func()) *backend {
	return &backend{
		kv:      kv,
		pinger:  pinger,
		journal: journal.New(storage.NewEntryStore(kv)),
		tokens:  storage.NewTokenStore(kv),
		source:  source,
		closeFn: closeFn,
	}
}

func closeSQLite(dbConn *sql.DB) {
	if cfg.WAL {
		// TRUNCATE mode waits for transactions and writes the WAL back to the main DB.
		if _, err := dbConn.Exec("PRAGMA wal_checkpoint(TRUNCATE);"); err != nil {
			log.Warn("WAL checkpoint failed during close", "err", err)
		}
	}
	if err := dbConn.Close(); err != nil {
		log.Warn("Failed to close database", "err", err)
	}
}

// clock returns the reference-time source in the configured time zone.
func clock() (func() time.Time, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return func() time.Time { return timeNow().In(loc) }, nil
}
