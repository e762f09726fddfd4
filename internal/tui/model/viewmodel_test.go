package model

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/matheus3301/minda/internal/api"
	"github.com/matheus3301/minda/internal/diary"
	"github.com/matheus3301/minda/internal/prefs"
	"github.com/matheus3301/minda/internal/store"
)

type entryMsg struct {
	entries []store.Entry
	err     error
}

type prefsMsg struct {
	prefs prefs.Preferences
	err   error
}

type entryFeed struct {
	ctx context.Context
	ch  chan entryMsg
}

func (f *entryFeed) Recv() (api.WatchEnvelope, error) {
	select {
	case m := <-f.ch:
		return api.WatchEnvelope{Entries: m.entries}, m.err
	case <-f.ctx.Done():
		return api.WatchEnvelope{}, f.ctx.Err()
	}
}

type prefsFeed struct {
	ctx context.Context
	ch  chan prefsMsg
}

func (f *prefsFeed) Recv() (prefs.Preferences, error) {
	select {
	case m := <-f.ch:
		return m.prefs, m.err
	case <-f.ctx.Done():
		return prefs.Preferences{}, f.ctx.Err()
	}
}

type fakeBackend struct {
	mu      sync.Mutex
	calls   []string
	added   []store.Entry
	edited  []store.Entry
	dark    *bool
	entries chan entryMsg
	prefs   chan prefsMsg
	watches int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{entries: make(chan entryMsg), prefs: make(chan prefsMsg)}
}

func (f *fakeBackend) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeBackend) AddEntry(_ context.Context, e store.Entry) (int64, error) {
	f.record("add")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.added = append(f.added, e)
	return int64(len(f.added)), nil
}

func (f *fakeBackend) EditEntry(_ context.Context, e store.Entry) error {
	f.record("edit")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edited = append(f.edited, e)
	return nil
}

func (f *fakeBackend) RemoveEntry(context.Context, int64) error {
	f.record("remove")
	return nil
}

func (f *fakeBackend) WatchEntries(ctx context.Context) (EntryFeed, error) {
	f.mu.Lock()
	f.watches++
	f.mu.Unlock()
	return &entryFeed{ctx: ctx, ch: f.entries}, nil
}

func (f *fakeBackend) SetUserName(context.Context, string) error {
	f.record("set-name")
	return nil
}

func (f *fakeBackend) SetOnboardingCompleted(_ context.Context, done bool) error {
	if done {
		f.record("onboarding-on")
	} else {
		f.record("onboarding-off")
	}
	return nil
}

func (f *fakeBackend) SetDarkMode(_ context.Context, dark bool) error {
	f.record("dark")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dark = &dark
	return nil
}

func (f *fakeBackend) ClearDarkMode(context.Context) error {
	f.record("clear-dark")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dark = nil
	return nil
}

func (f *fakeBackend) WatchPreferences(ctx context.Context) (PreferenceFeed, error) {
	return &prefsFeed{ctx: ctx, ch: f.prefs}, nil
}

func (f *fakeBackend) Status(context.Context) (api.DaemonStatus, error) {
	return api.DaemonStatus{Profile: "test", Status: "READY"}, nil
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestEntriesFeed(t *testing.T) {
	fb := newFakeBackend()
	vm := NewViewModel(fb, time.UTC)
	vm.retry = 10 * time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if state, _, _ := vm.Entries(); state != Loading {
		t.Fatalf("initial state = %s, want loading", state)
	}
	vm.Start(ctx)

	fb.entries <- entryMsg{entries: []store.Entry{{ID: 1, Title: "A"}}}
	waitFor(t, "ready", func() bool { s, _, _ := vm.Entries(); return s == Ready })
	if _, entries, _ := vm.Entries(); len(entries) != 1 {
		t.Fatalf("entries = %+v", entries)
	}

	boom := errors.New("boom")
	fb.entries <- entryMsg{err: boom}
	waitFor(t, "failed", func() bool { s, _, _ := vm.Entries(); return s == Failed })
	_, entries, err := vm.Entries()
	if entries != nil {
		t.Errorf("failed feed kept stale entries: %+v", entries)
	}
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}

	// The watch is reopened and recovers on the next snapshot.
	fb.entries <- entryMsg{entries: []store.Entry{{ID: 2}, {ID: 1}}}
	waitFor(t, "recovered", func() bool { s, e, _ := vm.Entries(); return s == Ready && len(e) == 2 })
	fb.mu.Lock()
	watches := fb.watches
	fb.mu.Unlock()
	if watches < 2 {
		t.Errorf("watches = %d, want a reopen", watches)
	}
}

func TestPreferencesFeed(t *testing.T) {
	fb := newFakeBackend()
	vm := NewViewModel(fb, time.UTC)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	vm.Start(ctx)

	name := "Ana"
	fb.prefs <- prefsMsg{prefs: prefs.Preferences{UserName: &name, OnboardingCompleted: true}}
	waitFor(t, "prefs", func() bool { s, _, _ := vm.Preferences(); return s == Ready })
	_, p, _ := vm.Preferences()
	if p.UserName == nil || *p.UserName != "Ana" || !p.OnboardingCompleted {
		t.Errorf("prefs = %+v", p)
	}
}

func TestRefreshSignal(t *testing.T) {
	fb := newFakeBackend()
	vm := NewViewModel(fb, time.UTC)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	vm.Start(ctx)

	fb.entries <- entryMsg{entries: []store.Entry{}}
	select {
	case <-vm.RefreshCh():
	case <-time.After(2 * time.Second):
		t.Fatal("no refresh after snapshot")
	}
}

func readyVM(entries []store.Entry, now time.Time) *ViewModel {
	vm := NewViewModel(newFakeBackend(), time.UTC)
	vm.now = func() time.Time { return now }
	vm.entriesState, vm.entries = Ready, entries
	return vm
}

func TestDerivedViewsRequireReady(t *testing.T) {
	vm := NewViewModel(newFakeBackend(), time.UTC)
	if state, got, _ := vm.Search("x"); state != Loading || got != nil {
		t.Errorf("Search while loading = %s %v", state, got)
	}
	if state, _, _ := vm.Insights(); state != Loading {
		t.Errorf("Insights while loading = %s", state)
	}

	boom := errors.New("disk gone")
	vm.entriesState, vm.entriesErr = Failed, boom
	if state, _, err := vm.Calendar(vm.Today()); state != Failed || !errors.Is(err, boom) {
		t.Errorf("Calendar after failure = %s %v", state, err)
	}
}

func TestDerivedViews(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour
	entries := []store.Entry{
		{ID: 3, Title: "Hike", Content: "Mountains", Mood: "🤩", Timestamp: now.UnixMilli()},
		{ID: 2, Title: "Work", Content: "long day", Mood: "😴", Timestamp: now.Add(-day).UnixMilli()},
		{ID: 1, Title: "Old", Content: "hike notes", Mood: "🤩", Timestamp: now.Add(-8 * day).UnixMilli()},
	}
	vm := readyVM(entries, now)

	_, found, _ := vm.Search("HIKE")
	if len(found) != 2 || found[0].ID != 3 || found[1].ID != 1 {
		t.Errorf("Search = %+v", found)
	}

	_, e, err := vm.Entry(2)
	if err != nil || e.Title != "Work" {
		t.Errorf("Entry(2) = %+v, %v", e, err)
	}
	if state, _, err := vm.Entry(99); state != Failed || !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Entry(99) = %s, %v", state, err)
	}

	_, cal, _ := vm.Calendar(vm.Today())
	if cal.Month.Month != time.March || cal.Month.Counts[9] != 1 || cal.Month.Counts[8] != 1 {
		t.Errorf("month counts = %v", cal.Month.Counts)
	}
	if len(cal.Entries) != 1 || cal.Entries[0].ID != 3 {
		t.Errorf("day entries = %+v", cal.Entries)
	}

	_, in, _ := vm.Insights()
	if in.Summary.Total != 3 || in.Summary.LastSevenDays != 2 {
		t.Errorf("summary = %+v", in.Summary)
	}
	if len(in.Bars) != 2 || in.Bars[0].Mood != "🤩" || in.Bars[0].Fraction != 1 || in.Bars[1].Fraction != 0.5 {
		t.Errorf("bars = %+v", in.Bars)
	}
}

func TestSave(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	fb := newFakeBackend()
	vm := NewViewModel(fb, time.UTC)
	vm.now = func() time.Time { return now }
	ctx := context.Background()

	if _, err := vm.Save(ctx, store.Entry{Title: " ", Content: "x"}); !errors.Is(err, diary.ErrValidation) {
		t.Errorf("blank title error = %v, want ErrValidation", err)
	}
	if len(fb.calls) != 0 {
		t.Fatalf("invalid entry reached the backend: %v", fb.calls)
	}

	id, err := vm.Save(ctx, store.Entry{Title: "T", Content: "C", Mood: "😀", Timestamp: 5})
	if err != nil || id != 1 {
		t.Fatalf("add = %d, %v", id, err)
	}
	if fb.added[0].Timestamp != now.UnixMilli() {
		t.Errorf("new entry timestamp = %d, want now", fb.added[0].Timestamp)
	}

	if _, err := vm.Save(ctx, store.Entry{ID: 1, Title: "T2", Content: "C", Timestamp: 5}); err != nil {
		t.Fatal(err)
	}
	if len(fb.edited) != 1 || fb.edited[0].Timestamp != 5 {
		t.Errorf("edited = %+v, want original timestamp kept", fb.edited)
	}
}

func TestAddedEntryLoadsUntilSnapshotShowsIt(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	fb := newFakeBackend()
	vm := NewViewModel(fb, time.UTC)
	vm.now = func() time.Time { return now }
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	vm.Start(ctx)

	fb.entries <- entryMsg{entries: []store.Entry{}}
	waitFor(t, "ready", func() bool { s, _, _ := vm.Entries(); return s == Ready })

	id, err := vm.Save(ctx, store.Entry{Title: "T", Content: "C"})
	if err != nil {
		t.Fatal(err)
	}
	if state, _, err := vm.Entry(id); state != Loading || err != nil {
		t.Errorf("Entry before snapshot = %s, %v, want loading", state, err)
	}
	if state, _, err := vm.Entry(id + 1); state != Failed || !errors.Is(err, store.ErrNotFound) {
		t.Errorf("unknown id = %s, %v, want not found", state, err)
	}

	fb.entries <- entryMsg{entries: []store.Entry{{ID: id, Title: "T", Content: "C"}}}
	waitFor(t, "snapshot with new entry", func() bool { s, e, _ := vm.Entry(id); return s == Ready && e.Title == "T" })

	// A pending id that never shows up is reported missing once the wait is over.
	id, err = vm.Save(ctx, store.Entry{Title: "U", Content: "C"})
	if err != nil {
		t.Fatal(err)
	}
	if state, _, _ := vm.Entry(id); state != Loading {
		t.Errorf("second entry state = %s, want loading", state)
	}
	now = now.Add(pendingWait)
	if state, _, err := vm.Entry(id); state != Failed || !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expired pending = %s, %v, want not found", state, err)
	}
}

func TestToggleDarkMode(t *testing.T) {
	fb := newFakeBackend()
	vm := NewViewModel(fb, time.UTC)
	ctx := context.Background()

	// unset → dark → light → unset
	want := []string{"dark", "dark", "clear-dark"}
	for range want {
		if err := vm.ToggleDarkMode(ctx); err != nil {
			t.Fatal(err)
		}
		vm.mu.Lock()
		vm.prefs.DarkMode = fb.dark
		vm.mu.Unlock()
	}
	for i, call := range want {
		if fb.calls[i] != call {
			t.Errorf("call %d = %s, want %s", i, fb.calls[i], call)
		}
	}
	if fb.dark != nil {
		t.Errorf("dark mode should be back to unset, got %v", *fb.dark)
	}
}

func TestSetUserName(t *testing.T) {
	fb := newFakeBackend()
	vm := NewViewModel(fb, time.UTC)
	if err := vm.SetUserName(context.Background(), "   "); !errors.Is(err, diary.ErrValidation) {
		t.Errorf("blank name error = %v", err)
	}
	if err := vm.SetUserName(context.Background(), " Ana "); err != nil {
		t.Fatal(err)
	}
	if len(fb.calls) != 1 || fb.calls[0] != "set-name" {
		t.Errorf("calls = %v", fb.calls)
	}
}

func TestLoadStateString(t *testing.T) {
	for s, want := range map[LoadState]string{Loading: "loading", Ready: "ready", Failed: "failed"} {
		if s.String() != want {
			t.Errorf("%d.String() = %q", s, s.String())
		}
	}
}
