package diary

import (
	"context"
	"time"

	"github.com/matheus3301/minda/internal/store"
	"go.uber.org/zap"
)

// Repository is the storage seam the service depends on.
// store.EntryStore satisfies it.
type Repository interface {
	Add(ctx context.Context, e store.Entry) (int64, error)
	AddIfEmpty(ctx context.Context, e store.Entry) (bool, error)
	Update(ctx context.Context, e store.Entry) error
	Delete(ctx context.Context, id int64) error
	All(ctx context.Context) ([]store.Entry, error)
	Get(ctx context.Context, id int64) (store.Entry, error)
	Watch(ctx context.Context) (<-chan []store.Entry, error)
}

var _ Repository = (*store.EntryStore)(nil)

// Service exposes diary operations under domain names.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a diary service over repo.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// AddEntry stores a new entry and returns its assigned id.
func (s *Service) AddEntry(ctx context.Context, e store.Entry) (int64, error) {
	return s.repo.Add(ctx, e)
}

// EditEntry replaces title, content and mood of an existing entry.
func (s *Service) EditEntry(ctx context.Context, e store.Entry) error {
	return s.repo.Update(ctx, e)
}

// RemoveEntry deletes the entry with the given id.
func (s *Service) RemoveEntry(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// ListAllEntries returns every entry, most recent first.
func (s *Service) ListAllEntries(ctx context.Context) ([]store.Entry, error) {
	return s.repo.All(ctx)
}

// FindByID returns a single entry.
func (s *Service) FindByID(ctx context.Context, id int64) (store.Entry, error) {
	return s.repo.Get(ctx, id)
}

// WatchAllEntries streams the ordered snapshot until ctx is done.
func (s *Service) WatchAllEntries(ctx context.Context) (<-chan []store.Entry, error) {
	return s.repo.Watch(ctx)
}

// SeedIfEmpty inserts the sample entry when the diary has no entries yet.
// It reports whether the sample was inserted.
func (s *Service) SeedIfEmpty(ctx context.Context, now time.Time) (bool, error) {
	seeded, err := s.repo.AddIfEmpty(ctx, SampleEntry(now))
	if err != nil {
		return false, err
	}
	if seeded {
		s.logger.Info("seeded sample entry")
	}
	return seeded, nil
}
