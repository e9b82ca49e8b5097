// Package sqlitestore persists closed sessions in a SQLite database. Point
// series are stored column-wise as compressed blobs; the analysis is stored both
// as a JSON document and as one queryable row per region.
package sqlitestore

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"

	"github.com/joeydtaylor/tensilerig/pkg/internal/seriescodec"
	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
	"github.com/joeydtaylor/tensilerig/pkg/internal/utils"

	_ "modernc.org/sqlite" // SQLite driver.
)

const driverName = "sqlite"

// Store implements types.SessionStore.
type Store struct {
	componentMetadata types.ComponentMetadata
	db                *sql.DB
	compression       seriescodec.Compression

	loggers     []types.Logger
	loggersLock sync.Mutex
}

// Open opens or creates the database at path and applies migrations.
func Open(ctx context.Context, path string, options ...types.Option[*Store]) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, err
	}
	// modernc sqlite serialises writers; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	s := &Store{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "SQLITE_STORE",
		},
		db:          db,
		compression: seriescodec.CompressZstd,
		loggers:     make([]types.Logger, 0),
	}
	for _, opt := range options {
		opt(s)
	}

	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	s.NotifyLoggers(types.InfoLevel, "session store opened",
		"component", s.componentMetadata,
		"event", "Open",
		"result", "SUCCESS",
		"path", path,
		"compression", string(s.compression),
	)
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			number INTEGER NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			material TEXT NOT NULL,
			metadata TEXT NOT NULL,
			point_count INTEGER NOT NULL,
			overruns INTEGER NOT NULL,
			status TEXT NOT NULL DEFAULT '',
			analysis TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS session_series (
			session_id TEXT NOT NULL,
			channel TEXT NOT NULL,
			data BLOB NOT NULL,
			PRIMARY KEY (session_id, channel)
		);`,
		`CREATE TABLE IF NOT EXISTS session_regions (
			session_id TEXT NOT NULL,
			region TEXT NOT NULL,
			outcome TEXT NOT NULL,
			start_idx INTEGER,
			end_idx INTEGER,
			stress_mpa REAL,
			strain REAL,
			PRIMARY KEY (session_id, region)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_number ON sessions(number);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
