package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/matheus3301/minda/internal/store/migrations"
)

// MigrateOptions controls schema migration.
type MigrateOptions struct {
	// DestructiveFallback drops every table and rebuilds the schema when
	// migrating an existing database fails. Entries are lost.
	DestructiveFallback bool
}

// MigrateResult describes what happened during migration.
type MigrateResult struct {
	Version   uint
	Dirty     bool
	Changed   bool
	Recreated bool
}

// Migrate runs all pending migrations on the database.
func (db *DB) Migrate(opts MigrateOptions) (*MigrateResult, error) {
	m, err := db.migrator()
	if err != nil {
		return nil, err
	}

	result := &MigrateResult{Changed: true}
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		result.Changed = false
		err = nil
	}
	if err != nil && opts.DestructiveFallback {
		if dropErr := db.dropTables(); dropErr != nil {
			return nil, fmt.Errorf("migration drop after %v: %w", err, dropErr)
		}
		// The version table is gone too; start over with a fresh instance.
		if m, err = db.migrator(); err != nil {
			return nil, err
		}
		err = m.Up()
		result.Recreated = true
	}
	if err != nil {
		return nil, fmt.Errorf("migration up: %w", err)
	}

	result.Version, result.Dirty, _ = m.Version()
	return result, nil
}

// dropTables removes every user table in one transaction. SQLite-internal
// tables such as sqlite_sequence cannot be dropped and are skipped; their
// rows for dropped tables go with them.
func (db *DB) dropTables() error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.Query(`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`)
	if err != nil {
		return err
	}
	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			_ = rows.Close()
			return err
		}
		tables = append(tables, name)
	}
	if err := rows.Close(); err != nil {
		return err
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, name := range tables {
		if _, err := tx.Exec(fmt.Sprintf(`DROP TABLE IF EXISTS "%s"`, strings.ReplaceAll(name, `"`, `""`))); err != nil {
			return fmt.Errorf("drop %s: %w", name, err)
		}
	}
	return tx.Commit()
}

func (db *DB) migrator() (*migrate.Migrate, error) {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("migration source: %w", err)
	}

	driver, err := sqlite3.WithInstance(db.DB, &sqlite3.Config{})
	if err != nil {
		return nil, fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return nil, fmt.Errorf("migration instance: %w", err)
	}
	return m, nil
}
