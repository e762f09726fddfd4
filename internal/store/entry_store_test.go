package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/matheus3301/minda/internal/bus"
)

func testEntryStore(t *testing.T) *EntryStore {
	t.Helper()
	return NewEntryStore(testDB(t), bus.New(), nil)
}

func receive(t *testing.T, ch <-chan []Entry) []Entry {
	t.Helper()
	select {
	case entries, ok := <-ch:
		if !ok {
			t.Fatal("watch channel closed unexpectedly")
		}
		return entries
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for snapshot")
	}
	return nil
}

func waitClosed(t *testing.T, ch <-chan []Entry) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("watch channel not closed after cancel")
		}
	}
}

func ids(entries []Entry) []int64 {
	out := make([]int64, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAddThenAllOrdersByTimestamp(t *testing.T) {
	s := testEntryStore(t)
	ctx := context.Background()
	const T = int64(1_700_000_000_000)

	id1, err := s.Add(ctx, Entry{Title: "A", Content: "B", Mood: "😀", Timestamp: T})
	if err != nil {
		t.Fatal(err)
	}
	all, err := s.All(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 || all[0] != (Entry{ID: 1, Title: "A", Content: "B", Mood: "😀", Timestamp: T}) {
		t.Fatalf("All() = %+v", all)
	}

	id2, err := s.Add(ctx, Entry{Title: "C", Content: "D", Mood: "😢", Timestamp: T + 1000})
	if err != nil {
		t.Fatal(err)
	}
	all, _ = s.All(ctx)
	if got := ids(all); !equalIDs(got, []int64{id2, id1}) || id2 != 2 {
		t.Errorf("ids = %v, want [2 1]", got)
	}
}

func TestAddThenGetReturnsEqualEntry(t *testing.T) {
	s := testEntryStore(t)
	ctx := context.Background()

	in := Entry{Title: "Morning", Content: "Coffee ☕ and rain", Mood: "😴", Timestamp: 42}
	id, err := s.Add(ctx, in)
	if err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	in.ID = id
	if got != in {
		t.Errorf("Get() = %+v, want %+v", got, in)
	}
}

func TestUpdateKeepsIDAndTimestamp(t *testing.T) {
	s := testEntryStore(t)
	ctx := context.Background()

	id, _ := s.Add(ctx, Entry{Title: "A", Content: "B", Mood: "😀", Timestamp: 1000})
	if err := s.Update(ctx, Entry{ID: id, Title: "A2", Content: "B2", Mood: "🤯", Timestamp: 9999}); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	want := Entry{ID: id, Title: "A2", Content: "B2", Mood: "🤯", Timestamp: 1000}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestMissingIDIsNotFound(t *testing.T) {
	s := testEntryStore(t)
	ctx := context.Background()

	if _, err := s.Get(ctx, 5); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get: err = %v, want ErrNotFound", err)
	}
	if err := s.Update(ctx, Entry{ID: 5, Title: "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update: err = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, 5); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete: err = %v, want ErrNotFound", err)
	}
}

func TestDeleteThenGetIsAbsent(t *testing.T) {
	s := testEntryStore(t)
	ctx := context.Background()

	id, _ := s.Add(ctx, Entry{Title: "A", Content: "B", Timestamp: 1})
	if err := s.Delete(ctx, id); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestOperationSequenceMatchesModel(t *testing.T) {
	s := testEntryStore(t)
	ctx := context.Background()

	model := map[int64]Entry{}
	add := func(title string, ts int64) int64 {
		e := Entry{Title: title, Content: title + " body", Mood: "😀", Timestamp: ts}
		id, err := s.Add(ctx, e)
		if err != nil {
			t.Fatal(err)
		}
		e.ID = id
		model[id] = e
		return id
	}

	a := add("a", 300)
	b := add("b", 100)
	c := add("c", 200)
	_ = add("d", 50)

	e := model[b]
	e.Title, e.Mood = "b edited", "😡"
	if err := s.Update(ctx, e); err != nil {
		t.Fatal(err)
	}
	model[b] = e

	if err := s.Delete(ctx, c); err != nil {
		t.Fatal(err)
	}
	delete(model, c)
	_ = add("e", 300)

	all, err := s.All(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != len(model) {
		t.Fatalf("len = %d, want %d", len(all), len(model))
	}
	for i, got := range all {
		if want := model[got.ID]; got != want {
			t.Errorf("entry %d = %+v, want %+v", got.ID, got, want)
		}
		if i > 0 {
			prev := all[i-1]
			if prev.Timestamp < got.Timestamp || (prev.Timestamp == got.Timestamp && prev.ID < got.ID) {
				t.Errorf("order broken at %d: %+v before %+v", i, prev, got)
			}
		}
	}
	if all[1].ID != a {
		t.Errorf("tie on timestamp 300 should place id %d second, got %d", a, all[1].ID)
	}
}

func TestAddIfEmpty(t *testing.T) {
	s := testEntryStore(t)
	ctx := context.Background()

	added, err := s.AddIfEmpty(ctx, Entry{Title: "seed", Content: "x", Timestamp: 1})
	if err != nil || !added {
		t.Fatalf("first AddIfEmpty = %v, %v; want true, nil", added, err)
	}
	added, err = s.AddIfEmpty(ctx, Entry{Title: "seed", Content: "x", Timestamp: 2})
	if err != nil || added {
		t.Fatalf("second AddIfEmpty = %v, %v; want false, nil", added, err)
	}
	if n, _ := s.Count(ctx); n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}

func TestWatchEmitsInitialThenPerMutation(t *testing.T) {
	s := testEntryStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first, _ := s.Add(ctx, Entry{Title: "A", Content: "B", Timestamp: 1000})

	ch, err := s.Watch(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got := ids(receive(t, ch)); !equalIDs(got, []int64{first}) {
		t.Fatalf("initial = %v, want [%d]", got, first)
	}

	second, _ := s.Add(ctx, Entry{Title: "C", Content: "D", Timestamp: 2000})
	if got := ids(receive(t, ch)); !equalIDs(got, []int64{second, first}) {
		t.Fatalf("after add = %v", got)
	}

	if err := s.Update(ctx, Entry{ID: first, Title: "A2", Content: "B"}); err != nil {
		t.Fatal(err)
	}
	snap := receive(t, ch)
	if snap[1].Title != "A2" {
		t.Fatalf("after update = %+v", snap)
	}

	if err := s.Delete(ctx, second); err != nil {
		t.Fatal(err)
	}
	if got := ids(receive(t, ch)); !equalIDs(got, []int64{first}) {
		t.Fatalf("after delete = %v", got)
	}

	// A failed write publishes nothing.
	_ = s.Delete(ctx, second)
	select {
	case snap := <-ch:
		t.Fatalf("unexpected snapshot after failed delete: %+v", snap)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestWatchOrderUnderConcurrentWrites(t *testing.T) {
	s := testEntryStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := s.Watch(ctx)
	if err != nil {
		t.Fatal(err)
	}
	receive(t, ch)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := s.Add(ctx, Entry{Title: "x", Content: "y", Timestamp: int64(i)}); err != nil {
				t.Error(err)
			}
		}(i)
	}

	// Every snapshot has exactly one more entry than the previous one.
	for want := 1; want <= n; want++ {
		if got := len(receive(t, ch)); got != want {
			t.Fatalf("snapshot size = %d, want %d", got, want)
		}
	}
	wg.Wait()
}

func TestWatchCancelCloses(t *testing.T) {
	s := testEntryStore(t)
	ctx, cancel := context.WithCancel(context.Background())

	ch, err := s.Watch(ctx)
	if err != nil {
		t.Fatal(err)
	}
	receive(t, ch)
	cancel()

	waitClosed(t, ch)

	// The bus subscription is released once the watcher exits.
	for i := 0; i < 100 && s.bus.Subscribers() != 0; i++ {
		time.Sleep(10 * time.Millisecond)
	}
	if got := s.bus.Subscribers(); got != 0 {
		t.Errorf("subscribers = %d, want 0", got)
	}
	if _, err := s.Add(context.Background(), Entry{Title: "late", Content: "x", Timestamp: 1}); err != nil {
		t.Fatal(err)
	}
}

func TestIndependentWatchers(t *testing.T) {
	s := testEntryStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, _ := s.Watch(ctx)
	b, _ := s.Watch(ctx)
	receive(t, a)
	receive(t, b)

	if _, err := s.Add(ctx, Entry{Title: "x", Content: "y", Timestamp: 1}); err != nil {
		t.Fatal(err)
	}
	sa, sb := receive(t, a), receive(t, b)
	if len(sa) != 1 || len(sb) != 1 {
		t.Fatalf("got %d and %d entries, want 1 each", len(sa), len(sb))
	}
	sa[0].Title = "mutated"
	if sb[0].Title != "x" {
		t.Error("watchers share the same backing slice")
	}
}

func TestSubscribeRunsSynchronouslyInOrder(t *testing.T) {
	s := testEntryStore(t)
	ctx := context.Background()

	var calls []string
	unsubA := s.Subscribe(func(entries []Entry) { calls = append(calls, "a") })
	unsubB := s.Subscribe(func(entries []Entry) { calls = append(calls, "b") })

	if _, err := s.Add(ctx, Entry{Title: "x", Content: "y", Timestamp: 1}); err != nil {
		t.Fatal(err)
	}
	// Callbacks have run by the time Add returns.
	if len(calls) != 2 || calls[0] != "a" || calls[1] != "b" {
		t.Fatalf("calls = %v, want [a b]", calls)
	}

	unsubA()
	unsubA()
	if _, err := s.Add(ctx, Entry{Title: "x", Content: "y", Timestamp: 2}); err != nil {
		t.Fatal(err)
	}
	if len(calls) != 3 || calls[2] != "b" {
		t.Fatalf("calls = %v, want [a b b]", calls)
	}
	unsubB()
}

func TestCancelledContextHasNoEffect(t *testing.T) {
	s := testEntryStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Add(ctx, Entry{Title: "x", Content: "y", Timestamp: 1}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if n, _ := s.Count(context.Background()); n != 0 {
		t.Errorf("count = %d, want 0", n)
	}
}

func TestClosedDatabaseIsUnavailable(t *testing.T) {
	db := testDB(t)
	s := NewEntryStore(db, bus.New(), nil)
	_ = db.Close()

	ctx := context.Background()
	if _, err := s.All(ctx); !errors.Is(err, ErrUnavailable) {
		t.Errorf("All: err = %v, want ErrUnavailable", err)
	}
	if _, err := s.Add(ctx, Entry{Title: "x", Timestamp: 1}); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Add: err = %v, want ErrUnavailable", err)
	}
	if _, err := s.Watch(ctx); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Watch: err = %v, want ErrUnavailable", err)
	}
}
