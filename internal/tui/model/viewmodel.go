package model

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/matheus3301/minda/internal/api"
	"github.com/matheus3301/minda/internal/diary"
	"github.com/matheus3301/minda/internal/insights"
	"github.com/matheus3301/minda/internal/prefs"
	"github.com/matheus3301/minda/internal/store"
)

// LoadState tracks whether a screen's data is usable.
type LoadState int

const (
	Loading LoadState = iota
	Ready
	Failed
)

func (s LoadState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	default:
		return "failed"
	}
}

// retryDelay is the pause before a broken watch is reopened.
const retryDelay = time.Second

// pendingWait bounds how long a freshly added entry may be missing from the
// snapshot before lookups report it as not found.
const pendingWait = 5 * time.Second

// ViewModel caches the daemon's live snapshots and signals UI refreshes.
// A failed or broken feed drops its snapshot so no screen renders stale data.
type ViewModel struct {
	mu sync.RWMutex

	backend Backend
	loc     *time.Location
	now     func() time.Time
	retry   time.Duration

	entriesState LoadState
	entries      []store.Entry
	entriesErr   error
	// pending holds ids returned by AddEntry that no snapshot has shown yet,
	// with the time after which they count as missing.
	pending map[int64]time.Time

	prefsState LoadState
	prefs      prefs.Preferences
	prefsErr   error

	refreshCh chan struct{}
}

// NewViewModel creates a view model reading from b. Dates are grouped in loc.
func NewViewModel(b Backend, loc *time.Location) *ViewModel {
	if loc == nil {
		loc = time.Local
	}
	return &ViewModel{
		backend:   b,
		loc:       loc,
		now:       time.Now,
		retry:     retryDelay,
		pending:   make(map[int64]time.Time),
		refreshCh: make(chan struct{}, 1),
	}
}

// RefreshCh returns the channel that signals UI refresh.
func (vm *ViewModel) RefreshCh() <-chan struct{} {
	return vm.refreshCh
}

func (vm *ViewModel) signalRefresh() {
	select {
	case vm.refreshCh <- struct{}{}:
	default:
	}
}

// Location returns the time zone used for dates.
func (vm *ViewModel) Location() *time.Location { return vm.loc }

// Start attaches the entry and preference watches. They run until ctx is
// cancelled and reopen after a failure.
func (vm *ViewModel) Start(ctx context.Context) {
	go vm.watchEntries(ctx)
	go vm.watchPreferences(ctx)
}

func (vm *ViewModel) watchEntries(ctx context.Context) {
	for ctx.Err() == nil {
		err := vm.followEntries(ctx)
		if ctx.Err() != nil {
			return
		}
		vm.mu.Lock()
		vm.entriesState, vm.entries, vm.entriesErr = Failed, nil, err
		vm.mu.Unlock()
		vm.signalRefresh()
		if !sleep(ctx, vm.retry) {
			return
		}
	}
}

func (vm *ViewModel) followEntries(ctx context.Context) error {
	feed, err := vm.backend.WatchEntries(ctx)
	if err != nil {
		return err
	}
	for {
		env, err := feed.Recv()
		if err != nil {
			return streamErr(err)
		}
		vm.mu.Lock()
		vm.entriesState, vm.entries, vm.entriesErr = Ready, env.Entries, nil
		for _, e := range env.Entries {
			delete(vm.pending, e.ID)
		}
		vm.mu.Unlock()
		vm.signalRefresh()
	}
}

func (vm *ViewModel) watchPreferences(ctx context.Context) {
	for ctx.Err() == nil {
		err := vm.followPreferences(ctx)
		if ctx.Err() != nil {
			return
		}
		vm.mu.Lock()
		vm.prefsState, vm.prefs, vm.prefsErr = Failed, prefs.Preferences{}, err
		vm.mu.Unlock()
		vm.signalRefresh()
		if !sleep(ctx, vm.retry) {
			return
		}
	}
}

func (vm *ViewModel) followPreferences(ctx context.Context) error {
	feed, err := vm.backend.WatchPreferences(ctx)
	if err != nil {
		return err
	}
	for {
		p, err := feed.Recv()
		if err != nil {
			return streamErr(err)
		}
		vm.mu.Lock()
		vm.prefsState, vm.prefs, vm.prefsErr = Ready, p, nil
		vm.mu.Unlock()
		vm.signalRefresh()
	}
}

func streamErr(err error) error {
	if errors.Is(err, io.EOF) {
		return errors.New("daemon closed the stream")
	}
	return err
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// Entries returns the current snapshot, newest first.
func (vm *ViewModel) Entries() (LoadState, []store.Entry, error) {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.entriesState, vm.entries, vm.entriesErr
}

// Preferences returns the current preference snapshot.
func (vm *ViewModel) Preferences() (LoadState, prefs.Preferences, error) {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.prefsState, vm.prefs, vm.prefsErr
}

// Search returns the entries matching query.
func (vm *ViewModel) Search(query string) (LoadState, []store.Entry, error) {
	state, entries, err := vm.Entries()
	if state != Ready {
		return state, nil, err
	}
	return state, insights.Filter(entries, query), nil
}

// Entry looks id up in the current snapshot.
func (vm *ViewModel) Entry(id int64) (LoadState, store.Entry, error) {
	state, entries, err := vm.Entries()
	if state != Ready {
		return state, store.Entry{}, err
	}
	for _, e := range entries {
		if e.ID == id {
			return Ready, e, nil
		}
	}
	vm.mu.RLock()
	until, ok := vm.pending[id]
	vm.mu.RUnlock()
	if ok && vm.now().Before(until) {
		return Loading, store.Entry{}, nil
	}
	return Failed, store.Entry{}, fmt.Errorf("entry %d: %w", id, store.ErrNotFound)
}

// CalendarView is the data behind the calendar screen.
type CalendarView struct {
	Month    insights.Month
	Selected insights.Date
	Entries  []store.Entry
}

// Calendar lays out the month containing day and lists day's entries.
func (vm *ViewModel) Calendar(day insights.Date) (LoadState, CalendarView, error) {
	state, entries, err := vm.Entries()
	if state != Ready {
		return state, CalendarView{}, err
	}
	groups := insights.GroupByDate(entries, vm.loc)
	return Ready, CalendarView{
		Month:    insights.MonthGrid(groups, day.Year, day.Month),
		Selected: day,
		Entries:  groups[day],
	}, nil
}

// Today returns the current date in the view model's zone.
func (vm *ViewModel) Today() insights.Date {
	return insights.DateOf(vm.now().In(vm.loc))
}

// InsightsView is the data behind the insights screen.
type InsightsView struct {
	Summary insights.Summary
	Bars    []insights.Bar
}

// Insights computes the headline numbers and the mood chart.
func (vm *ViewModel) Insights() (LoadState, InsightsView, error) {
	state, entries, err := vm.Entries()
	if state != Ready {
		return state, InsightsView{}, err
	}
	return Ready, InsightsView{
		Summary: insights.Summarize(entries, vm.now()),
		Bars:    insights.Bars(insights.MoodCounts(entries)),
	}, nil
}

// Save validates e and adds it, or edits it when e.ID is set. New entries
// are stamped with the current time.
func (vm *ViewModel) Save(ctx context.Context, e store.Entry) (int64, error) {
	if err := diary.Validate(e); err != nil {
		return 0, err
	}
	if e.ID != 0 {
		return e.ID, vm.backend.EditEntry(ctx, e)
	}
	e.Timestamp = vm.now().UnixMilli()
	id, err := vm.backend.AddEntry(ctx, e)
	if err != nil {
		return 0, err
	}
	vm.mu.Lock()
	if !vm.inSnapshotLocked(id) {
		vm.pending[id] = vm.now().Add(pendingWait)
	}
	vm.mu.Unlock()
	return id, nil
}

func (vm *ViewModel) inSnapshotLocked(id int64) bool {
	for _, e := range vm.entries {
		if e.ID == id {
			return true
		}
	}
	return false
}

// Remove deletes an entry.
func (vm *ViewModel) Remove(ctx context.Context, id int64) error {
	vm.mu.Lock()
	delete(vm.pending, id)
	vm.mu.Unlock()
	return vm.backend.RemoveEntry(ctx, id)
}

// SetUserName stores the trimmed, non-empty name.
func (vm *ViewModel) SetUserName(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name is required: %w", diary.ErrValidation)
	}
	return vm.backend.SetUserName(ctx, name)
}

// CompleteOnboarding marks the wizard as done.
func (vm *ViewModel) CompleteOnboarding(ctx context.Context) error {
	return vm.backend.SetOnboardingCompleted(ctx, true)
}

// ResetOnboarding sends the user back to the welcome screen.
func (vm *ViewModel) ResetOnboarding(ctx context.Context) error {
	return vm.backend.SetOnboardingCompleted(ctx, false)
}

// ToggleDarkMode cycles unset → dark → light → unset.
func (vm *ViewModel) ToggleDarkMode(ctx context.Context) error {
	_, p, _ := vm.Preferences()
	switch {
	case p.DarkMode == nil:
		return vm.backend.SetDarkMode(ctx, true)
	case *p.DarkMode:
		return vm.backend.SetDarkMode(ctx, false)
	default:
		return vm.backend.ClearDarkMode(ctx)
	}
}

// Status fetches daemon status.
func (vm *ViewModel) Status(ctx context.Context) (api.DaemonStatus, error) {
	return vm.backend.Status(ctx)
}
