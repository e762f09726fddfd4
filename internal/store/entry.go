package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Entry is one diary record. Timestamp is the creation time in epoch
// milliseconds and is never changed by edits.
type Entry struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Mood      string `json:"mood"`
	Timestamp int64  `json:"timestamp"`
}

var (
	// ErrNotFound is returned when an id does not reference a stored entry.
	ErrNotFound = errors.New("entry not found")
	// ErrUnavailable is returned when the database cannot be read or written.
	ErrUnavailable = errors.New("storage unavailable")
)

// unavailable wraps a driver error so callers can match ErrUnavailable.
// Context errors are passed through as-is.
func unavailable(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}

// InsertEntry stores e under a freshly assigned id and returns it. e.ID is ignored.
func (db *DB) InsertEntry(ctx context.Context, e *Entry) (int64, error) {
	res, err := db.ExecContext(ctx, `
		INSERT INTO diary_entries (title, content, mood, timestamp)
		VALUES (?, ?, ?, ?)`,
		e.Title, e.Content, e.Mood, e.Timestamp)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateEntry overwrites title, content and mood of the entry with e.ID.
// Reports whether a row matched.
func (db *DB) UpdateEntry(ctx context.Context, e *Entry) (bool, error) {
	res, err := db.ExecContext(ctx, `
		UPDATE diary_entries SET title = ?, content = ?, mood = ?
		WHERE id = ?`,
		e.Title, e.Content, e.Mood, e.ID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// DeleteEntry removes the entry with the given id. Reports whether a row matched.
func (db *DB) DeleteEntry(ctx context.Context, id int64) (bool, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM diary_entries WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ListEntries returns every entry, most recent first. Equal timestamps are
// ordered by id descending.
func (db *DB) ListEntries(ctx context.Context) ([]Entry, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, title, content, mood, timestamp
		FROM diary_entries
		ORDER BY timestamp DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	entries := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Title, &e.Content, &e.Mood, &e.Timestamp); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetEntry returns a single entry by id, or nil when it does not exist.
func (db *DB) GetEntry(ctx context.Context, id int64) (*Entry, error) {
	var e Entry
	err := db.QueryRowContext(ctx, `
		SELECT id, title, content, mood, timestamp
		FROM diary_entries WHERE id = ?`, id).
		Scan(&e.ID, &e.Title, &e.Content, &e.Mood, &e.Timestamp)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// EntryCount returns the total number of entries.
func (db *DB) EntryCount(ctx context.Context) (int64, error) {
	var count int64
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM diary_entries`).Scan(&count)
	return count, err
}
