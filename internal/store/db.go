package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// DB wraps a SQLite database connection for the profile-owned minda.db.
type DB struct {
	*sql.DB
}

// Open creates a new SQLite connection with WAL mode and recommended pragmas.
// The parent directory is created when missing.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// Verify connection.
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return &DB{db}, nil
}

// OpenMigrated opens the database at path and brings its schema up to date.
func OpenMigrated(path string, opts MigrateOptions, logger *zap.Logger) (*DB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	result, err := db.Migrate(opts)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	switch {
	case result.Recreated:
		logger.Warn("schema was recreated after a failed migration", zap.Uint("version", result.Version))
	case result.Changed:
		logger.Info("migrations applied", zap.Uint("version", result.Version))
	default:
		logger.Info("migrations up to date", zap.Uint("version", result.Version))
	}
	return db, nil
}
