/*
SQLite-backed implementation of the timing-sample store.

Uses modernc.org/sqlite (pure Go, CGo-free). If the database cannot be
opened the store degrades gracefully: writes become no-ops and reads
return ErrUnavailable, so a broken disk never fails a tool call.
*/
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db       *sql.DB
	dbPath   string
	enabled  bool
	logger   *zap.Logger
	mu       sync.Mutex
	initOnce sync.Once
}

// NewSQLiteStore creates a store backed by the database at dbPath.
// The parent directory is created on Init if missing.
func NewSQLiteStore(dbPath string, logger *zap.Logger) *SQLiteStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SQLiteStore{
		dbPath:  dbPath,
		enabled: dbPath != "",
		logger:  logger,
	}
}

// Init opens the database and runs migrations.
//
// If initialization fails the store is disabled and subsequent writes
// become no-ops (graceful degradation); reads return ErrUnavailable.
func (s *SQLiteStore) Init() error {
	if !s.enabled {
		return nil
	}

	var initErr error
	s.initOnce.Do(func() {
		if err := os.MkdirAll(filepath.Dir(s.dbPath), 0o755); err != nil {
			initErr = fmt.Errorf("failed to create db directory: %w", err)
			s.disable(initErr)
			return
		}

		db, err := sql.Open("sqlite", s.dbPath)
		if err != nil {
			initErr = fmt.Errorf("failed to open database: %w", err)
			s.disable(initErr)
			return
		}
		s.db = db

		if err := db.Ping(); err != nil {
			initErr = fmt.Errorf("failed to ping database: %w", err)
			s.disable(initErr)
			return
		}

		if err := s.runMigrations(); err != nil {
			initErr = fmt.Errorf("failed to run migrations: %w", err)
			s.disable(initErr)
			return
		}
	})

	return initErr
}

// disable marks the store unusable and logs why.
func (s *SQLiteStore) disable(err error) {
	s.enabled = false
	s.logger.Warn("timing store disabled", zap.Error(err))
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if !s.enabled || s.db == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	s.db = nil
	return nil
}

// runMigrations executes database schema migrations.
func (s *SQLiteStore) runMigrations() error {
	if err := s.createMigrationsTable(); err != nil {
		return err
	}

	version, err := s.currentMigrationVersion()
	if err != nil {
		return err
	}

	migrations := []migration{
		{version: 1, name: "timing_samples", up: s.migration001TimingSamples},
	}

	for _, m := range migrations {
		if version < m.version {
			s.logger.Info("running migration", zap.Int("version", m.version), zap.String("name", m.name))
			if err := m.up(); err != nil {
				return fmt.Errorf("migration %d failed: %w", m.version, err)
			}
			if err := s.setMigrationVersion(m.version, m.name); err != nil {
				return err
			}
		}
	}

	return nil
}

// migration represents a single database migration.
type migration struct {
	version int
	name    string
	up      func() error
}

func (s *SQLiteStore) createMigrationsTable() error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`
	_, err := s.db.Exec(query)
	return err
}

func (s *SQLiteStore) currentMigrationVersion() (int, error) {
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")

	var version int
	if err := row.Scan(&version); err != nil {
		return 0, err
	}
	return version, nil
}

func (s *SQLiteStore) setMigrationVersion(version int, name string) error {
	_, err := s.db.Exec("INSERT INTO schema_migrations (version, name) VALUES (?, ?)", version, name)
	return err
}

// migration001TimingSamples creates the timing_samples table.
func (s *SQLiteStore) migration001TimingSamples() error {
	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS timing_samples (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			tool_name TEXT NOT NULL,
			feature_bucket TEXT NOT NULL,
			features_json TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create timing_samples table: %w", err)
	}

	if _, err := s.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_timing_samples_tool_bucket
		ON timing_samples(tool_name, feature_bucket)
	`); err != nil {
		return fmt.Errorf("failed to create timing_samples tool/bucket index: %w", err)
	}

	if _, err := s.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_timing_samples_timestamp
		ON timing_samples(timestamp DESC)
	`); err != nil {
		return fmt.Errorf("failed to create timing_samples timestamp index: %w", err)
	}

	return nil
}
