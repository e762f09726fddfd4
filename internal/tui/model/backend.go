package model

import (
	"context"

	"github.com/matheus3301/minda/internal/api"
	"github.com/matheus3301/minda/internal/prefs"
	"github.com/matheus3301/minda/internal/store"
	"github.com/matheus3301/minda/internal/tui/client"
)

// EntryFeed yields entry snapshots.
type EntryFeed interface {
	Recv() (api.WatchEnvelope, error)
}

// PreferenceFeed yields preference snapshots.
type PreferenceFeed interface {
	Recv() (prefs.Preferences, error)
}

// Backend is the daemon surface the view model needs.
type Backend interface {
	AddEntry(ctx context.Context, e store.Entry) (int64, error)
	EditEntry(ctx context.Context, e store.Entry) error
	RemoveEntry(ctx context.Context, id int64) error
	WatchEntries(ctx context.Context) (EntryFeed, error)
	SetUserName(ctx context.Context, name string) error
	SetOnboardingCompleted(ctx context.Context, done bool) error
	SetDarkMode(ctx context.Context, dark bool) error
	ClearDarkMode(ctx context.Context) error
	WatchPreferences(ctx context.Context) (PreferenceFeed, error)
	Status(ctx context.Context) (api.DaemonStatus, error)
}

// ClientBackend adapts a daemon client.
func ClientBackend(c *client.Client) Backend {
	return clientBackend{c}
}

type clientBackend struct {
	*client.Client
}

func (b clientBackend) WatchEntries(ctx context.Context) (EntryFeed, error) {
	return b.Client.WatchEntries(ctx)
}

func (b clientBackend) WatchPreferences(ctx context.Context) (PreferenceFeed, error) {
	return b.Client.WatchPreferences(ctx)
}
