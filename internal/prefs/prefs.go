// Package prefs persists the three user preferences, one file per key.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"sync"
	"time"

	"github.com/matheus3301/minda/internal/bus"
	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"
)

// Preference keys. Each is stored as its own file.
const (
	KeyUserName            = "user_name"
	KeyOnboardingCompleted = "onboarding_completed"
	KeyDarkMode            = "is_dark_mode"
)

// ErrUnavailable is returned when preferences cannot be read or written.
var ErrUnavailable = errors.New("preferences unavailable")

// Preferences is a point-in-time copy of every key.
// A nil UserName means unset; a nil DarkMode means follow the system.
type Preferences struct {
	UserName            *string `json:"user_name,omitempty"`
	OnboardingCompleted bool    `json:"onboarding_completed"`
	DarkMode            *bool   `json:"is_dark_mode,omitempty"`
}

// Store is a diskv-backed preference store.
type Store struct {
	d      *diskv.Diskv
	bus    *bus.Bus
	logger *zap.Logger

	// mu serializes writes together with their notification.
	mu sync.Mutex
}

// Open creates a store rooted at dir.
func Open(dir string, b *bus.Bus, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:     dir,
			Transform:    func(string) []string { return nil },
			CacheSizeMax: 4 * 1024,
			FilePerm:     0600,
			PathPerm:     0700,
		}),
		bus:    b,
		logger: logger,
	}
}

// UserName returns the stored name, or nil when unset.
func (s *Store) UserName() (*string, error) {
	v, ok, err := s.read(KeyUserName)
	if err != nil || !ok {
		return nil, err
	}
	return &v, nil
}

// OnboardingCompleted reports whether onboarding finished. Defaults to false.
func (s *Store) OnboardingCompleted() (bool, error) {
	v, ok, err := s.readBool(KeyOnboardingCompleted)
	if err != nil || !ok {
		return false, err
	}
	return v, nil
}

// DarkMode returns the explicit theme choice, or nil to follow the system.
func (s *Store) DarkMode() (*bool, error) {
	v, ok, err := s.readBool(KeyDarkMode)
	if err != nil || !ok {
		return nil, err
	}
	return &v, nil
}

// Snapshot reads every key.
func (s *Store) Snapshot() (Preferences, error) {
	var p Preferences
	var err error
	if p.UserName, err = s.UserName(); err != nil {
		return Preferences{}, err
	}
	if p.OnboardingCompleted, err = s.OnboardingCompleted(); err != nil {
		return Preferences{}, err
	}
	if p.DarkMode, err = s.DarkMode(); err != nil {
		return Preferences{}, err
	}
	return p, nil
}

// SetUserName stores the user's name.
func (s *Store) SetUserName(name string) error {
	return s.write(KeyUserName, name)
}

// SetOnboardingCompleted stores the onboarding flag.
func (s *Store) SetOnboardingCompleted(done bool) error {
	return s.write(KeyOnboardingCompleted, strconv.FormatBool(done))
}

// ResetOnboarding sends the user back to the welcome screen.
func (s *Store) ResetOnboarding() error {
	return s.SetOnboardingCompleted(false)
}

// SetDarkMode stores an explicit theme choice.
func (s *Store) SetDarkMode(dark bool) error {
	return s.write(KeyDarkMode, strconv.FormatBool(dark))
}

// ClearDarkMode removes the theme choice so the system setting applies.
func (s *Store) ClearDarkMode() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.d.Erase(KeyDarkMode); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear %s: %w: %w", KeyDarkMode, ErrUnavailable, err)
	}
	s.publishLocked(KeyDarkMode)
	return nil
}

// WatchUserName emits the current name and again after every change to it.
func (s *Store) WatchUserName(ctx context.Context) (<-chan *string, error) {
	return watch(ctx, s, KeyUserName, func(p Preferences) *string { return p.UserName })
}

// WatchOnboardingCompleted emits the current flag and again after every change.
func (s *Store) WatchOnboardingCompleted(ctx context.Context) (<-chan bool, error) {
	return watch(ctx, s, KeyOnboardingCompleted, func(p Preferences) bool { return p.OnboardingCompleted })
}

// WatchDarkMode emits the current theme choice and again after every change.
func (s *Store) WatchDarkMode(ctx context.Context) (<-chan *bool, error) {
	return watch(ctx, s, KeyDarkMode, func(p Preferences) *bool { return p.DarkMode })
}

// Watch emits a full snapshot now and after a change to any key.
func (s *Store) Watch(ctx context.Context) (<-chan Preferences, error) {
	return watch(ctx, s, "", func(p Preferences) Preferences { return p })
}

func (s *Store) read(key string) (string, bool, error) {
	val, err := s.d.Read(key)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w: %w", key, ErrUnavailable, err)
	}
	return string(val), true, nil
}

func (s *Store) readBool(key string) (bool, bool, error) {
	raw, ok, err := s.read(key)
	if err != nil || !ok {
		return false, ok, err
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false, fmt.Errorf("read %s: %w: %w", key, ErrUnavailable, err)
	}
	return v, true, nil
}

func (s *Store) write(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.d.Write(key, []byte(value)); err != nil {
		return fmt.Errorf("write %s: %w: %w", key, ErrUnavailable, err)
	}
	s.publishLocked(key)
	return nil
}

// publishLocked must be called with mu held.
func (s *Store) publishLocked(key string) {
	snap, err := s.Snapshot()
	if err != nil {
		s.logger.Error("failed to read preferences after write", zap.String("key", key), zap.Error(err))
		return
	}
	s.bus.Publish(bus.Event{
		Kind:      bus.KindPrefChanged + key,
		Timestamp: time.Now(),
		Payload:   snap,
	})
}

func watch[T any](ctx context.Context, s *Store, key string, pick func(Preferences) T) (<-chan T, error) {
	s.mu.Lock()
	initial, err := s.Snapshot()
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	events, unsubscribe := s.bus.Subscribe(bus.KindPrefChanged+key, 8)
	s.mu.Unlock()

	out := make(chan T)
	go func() {
		defer close(out)
		defer unsubscribe()

		send := func(v T) bool {
			if ctx.Err() != nil {
				return false
			}
			select {
			case out <- v:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !send(pick(initial)) {
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
				snap, _ := evt.Payload.(Preferences)
				if !send(pick(snap)) {
					return
				}
			}
		}
	}()
	return out, nil
}
