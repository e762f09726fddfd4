package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/matheus3301/minda/internal/bus"
	"go.uber.org/zap"
)

// EntryStore is the live record store. Writes are serialized and every
// successful mutation publishes the full ordered snapshot on the bus.
type EntryStore struct {
	db     *DB
	bus    *bus.Bus
	logger *zap.Logger

	// mu serializes writes together with their notification.
	mu sync.Mutex
}

// NewEntryStore creates the live store over an opened database.
func NewEntryStore(db *DB, b *bus.Bus, logger *zap.Logger) *EntryStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EntryStore{db: db, bus: b, logger: logger}
}

// Add inserts e under a fresh id. The id carried by e is ignored.
func (s *EntryStore) Add(ctx context.Context, e Entry) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.db.InsertEntry(ctx, &e)
	if err != nil {
		return 0, unavailable("add entry", err)
	}
	s.publishLocked(ctx)
	return id, nil
}

// AddIfEmpty inserts e only when the store holds no entries. It reports
// whether the entry was inserted.
func (s *EntryStore) AddIfEmpty(ctx context.Context, e Entry) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.db.EntryCount(ctx)
	if err != nil {
		return false, unavailable("count entries", err)
	}
	if n > 0 {
		return false, nil
	}
	if _, err := s.db.InsertEntry(ctx, &e); err != nil {
		return false, unavailable("add entry", err)
	}
	s.publishLocked(ctx)
	return true, nil
}

// Update overwrites title, content and mood of an existing entry.
// The stored timestamp is left untouched.
func (s *EntryStore) Update(ctx context.Context, e Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.db.UpdateEntry(ctx, &e)
	if err != nil {
		return unavailable("update entry", err)
	}
	if !ok {
		return fmt.Errorf("update entry %d: %w", e.ID, ErrNotFound)
	}
	s.publishLocked(ctx)
	return nil
}

// Delete removes the entry with the given id.
func (s *EntryStore) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.db.DeleteEntry(ctx, id)
	if err != nil {
		return unavailable("delete entry", err)
	}
	if !ok {
		return fmt.Errorf("delete entry %d: %w", id, ErrNotFound)
	}
	s.publishLocked(ctx)
	return nil
}

// All returns a snapshot of every entry, most recent first.
func (s *EntryStore) All(ctx context.Context) ([]Entry, error) {
	entries, err := s.db.ListEntries(ctx)
	if err != nil {
		return nil, unavailable("list entries", err)
	}
	return entries, nil
}

// Get returns the entry with the given id.
func (s *EntryStore) Get(ctx context.Context, id int64) (Entry, error) {
	e, err := s.db.GetEntry(ctx, id)
	if err != nil {
		return Entry{}, unavailable("get entry", err)
	}
	if e == nil {
		return Entry{}, fmt.Errorf("get entry %d: %w", id, ErrNotFound)
	}
	return *e, nil
}

// Count returns the number of stored entries.
func (s *EntryStore) Count(ctx context.Context) (int64, error) {
	n, err := s.db.EntryCount(ctx)
	if err != nil {
		return 0, unavailable("count entries", err)
	}
	return n, nil
}

// Watch emits the current snapshot immediately and again after every
// successful mutation. The channel is closed once ctx is done; nothing is
// delivered after that.
func (s *EntryStore) Watch(ctx context.Context) (<-chan []Entry, error) {
	// Holding mu pins the initial snapshot between two writes so no
	// notification can be missed or duplicated.
	s.mu.Lock()
	initial, err := s.db.ListEntries(ctx)
	if err != nil {
		s.mu.Unlock()
		return nil, unavailable("list entries", err)
	}
	events, unsubscribe := s.bus.Subscribe(bus.KindEntriesChanged, 16)
	s.mu.Unlock()

	out := make(chan []Entry)
	go func() {
		defer close(out)
		defer unsubscribe()

		if !deliver(ctx, out, initial) {
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				snapshot, _ := evt.Payload.([]Entry)
				if !deliver(ctx, out, cloneEntries(snapshot)) {
					return
				}
			}
		}
	}()
	return out, nil
}

// Subscribe registers fn to run synchronously after every successful write,
// in subscription order. fn must not call write methods on the store.
func (s *EntryStore) Subscribe(fn func([]Entry)) (unsubscribe func()) {
	return s.bus.SubscribeFunc(bus.KindEntriesChanged, func(evt bus.Event) {
		snapshot, _ := evt.Payload.([]Entry)
		fn(cloneEntries(snapshot))
	})
}

// publishLocked must be called with mu held, after a successful write.
func (s *EntryStore) publishLocked(ctx context.Context) {
	snapshot, err := s.db.ListEntries(context.WithoutCancel(ctx))
	if err != nil {
		s.logger.Error("failed to read snapshot after write", zap.Error(err))
		return
	}
	s.bus.Publish(bus.Event{
		Kind:      bus.KindEntriesChanged,
		Timestamp: time.Now(),
		Payload:   snapshot,
	})
}

func deliver(ctx context.Context, out chan<- []Entry, entries []Entry) bool {
	if ctx.Err() != nil {
		return false
	}
	select {
	case out <- entries:
		return true
	case <-ctx.Done():
		return false
	}
}

func cloneEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
