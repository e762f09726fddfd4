package prefs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matheus3301/minda/internal/bus"
)

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "prefs")
	return Open(dir, bus.New(), nil), dir
}

func next[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		if !ok {
			t.Fatal("channel closed unexpectedly")
		}
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for value")
	}
	var zero T
	return zero
}

func TestDefaults(t *testing.T) {
	s, _ := testStore(t)

	p, err := s.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	if p.UserName != nil || p.OnboardingCompleted || p.DarkMode != nil {
		t.Errorf("defaults = %+v, want all unset", p)
	}
}

func TestSetAndGet(t *testing.T) {
	s, dir := testStore(t)

	if err := s.SetUserName("Ana"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetOnboardingCompleted(true); err != nil {
		t.Fatal(err)
	}
	if err := s.SetDarkMode(false); err != nil {
		t.Fatal(err)
	}

	// A fresh store over the same directory sees the values.
	s2 := Open(dir, bus.New(), nil)
	p, err := s2.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	if p.UserName == nil || *p.UserName != "Ana" {
		t.Errorf("UserName = %v, want Ana", p.UserName)
	}
	if !p.OnboardingCompleted {
		t.Error("OnboardingCompleted = false, want true")
	}
	if p.DarkMode == nil || *p.DarkMode {
		t.Errorf("DarkMode = %v, want explicit false", p.DarkMode)
	}

	for _, key := range []string{KeyUserName, KeyOnboardingCompleted, KeyDarkMode} {
		if _, err := os.Stat(filepath.Join(dir, key)); err != nil {
			t.Errorf("expected file for %s: %v", key, err)
		}
	}
}

func TestClearDarkModeAndResetOnboarding(t *testing.T) {
	s, _ := testStore(t)

	// Clearing an unset key is fine.
	if err := s.ClearDarkMode(); err != nil {
		t.Fatal(err)
	}
	if err := s.SetDarkMode(true); err != nil {
		t.Fatal(err)
	}
	if err := s.ClearDarkMode(); err != nil {
		t.Fatal(err)
	}
	if v, err := s.DarkMode(); err != nil || v != nil {
		t.Errorf("DarkMode = %v, %v; want nil, nil", v, err)
	}

	_ = s.SetOnboardingCompleted(true)
	if err := s.ResetOnboarding(); err != nil {
		t.Fatal(err)
	}
	if done, _ := s.OnboardingCompleted(); done {
		t.Error("onboarding should be reset")
	}
}

func TestCorruptValueIsUnavailable(t *testing.T) {
	s, dir := testStore(t)
	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, KeyDarkMode), []byte("maybe"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := s.DarkMode(); !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
	if _, err := s.Snapshot(); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Snapshot err = %v, want ErrUnavailable", err)
	}
}

func TestWatchUserName(t *testing.T) {
	s, _ := testStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := s.WatchUserName(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if v := next(t, ch); v != nil {
		t.Fatalf("initial = %v, want nil", *v)
	}

	// Changes to other keys are not delivered.
	_ = s.SetDarkMode(true)
	_ = s.SetUserName("Ana")
	_ = s.SetUserName("Bo")

	if v := next(t, ch); v == nil || *v != "Ana" {
		t.Fatalf("got %v, want Ana", v)
	}
	if v := next(t, ch); v == nil || *v != "Bo" {
		t.Fatalf("got %v, want Bo", v)
	}

	cancel()
	for range ch {
	}
}

func TestWatchDarkModeAndOnboarding(t *testing.T) {
	s, _ := testStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dark, err := s.WatchDarkMode(ctx)
	if err != nil {
		t.Fatal(err)
	}
	onboard, err := s.WatchOnboardingCompleted(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if v := next(t, dark); v != nil {
		t.Fatalf("initial dark = %v, want nil", *v)
	}
	if v := next(t, onboard); v {
		t.Fatal("initial onboarding = true, want false")
	}

	_ = s.SetDarkMode(true)
	_ = s.ClearDarkMode()
	_ = s.SetOnboardingCompleted(true)

	if v := next(t, dark); v == nil || !*v {
		t.Fatalf("dark = %v, want true", v)
	}
	if v := next(t, dark); v != nil {
		t.Fatalf("dark after clear = %v, want nil", *v)
	}
	if v := next(t, onboard); !v {
		t.Fatal("onboarding = false, want true")
	}
}

func TestWatchAllKeys(t *testing.T) {
	s, _ := testStore(t)
	ctx, cancel := context.WithCancel(context.Background())

	ch, err := s.Watch(ctx)
	if err != nil {
		t.Fatal(err)
	}
	next(t, ch)

	_ = s.SetUserName("Ana")
	_ = s.SetOnboardingCompleted(true)

	if p := next(t, ch); p.UserName == nil || p.OnboardingCompleted {
		t.Fatalf("first change = %+v", p)
	}
	if p := next(t, ch); !p.OnboardingCompleted {
		t.Fatalf("second change = %+v", p)
	}

	cancel()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("watch not closed after cancel")
		}
	}
}
