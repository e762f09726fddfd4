package views

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/matheus3301/minda/internal/diary"
	"github.com/matheus3301/minda/internal/insights"
	"github.com/matheus3301/minda/internal/store"
	"github.com/matheus3301/minda/internal/tui/model"
	"github.com/matheus3301/minda/internal/tui/ui"
)

func TestSanitizeForTerminal(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"👍🏻", "👍"},
		{"☹️", "☹"},
		{"👨‍👩‍👧", "👨👩👧"},
		{"😀", "😀"},
	}
	for _, tt := range tests {
		if got := sanitizeForTerminal(tt.in); got != tt.want {
			t.Errorf("sanitizeForTerminal(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStateMessage(t *testing.T) {
	if got := stateMessage(model.Ready, "entries", nil); got != "" {
		t.Errorf("ready = %q", got)
	}
	if got := stateMessage(model.Loading, "entries", nil); !strings.HasPrefix(got, "Loading entries") {
		t.Errorf("loading = %q", got)
	}
	got := stateMessage(model.Failed, "entries", errors.New("disk gone"))
	if !strings.Contains(got, "disk gone") {
		t.Errorf("failed = %q", got)
	}
}

func TestEntryFormNewEntry(t *testing.T) {
	f := NewEntryForm(ui.DarkTheme())
	f.Load(store.Entry{})
	if f.Name() != "New entry" {
		t.Errorf("Name() = %q", f.Name())
	}
	if got := f.Entry(); got.Mood != diary.DefaultMood || got.ID != 0 {
		t.Errorf("new entry = %+v, want default mood", got)
	}
}

func TestEntryFormKeepsIdentity(t *testing.T) {
	f := NewEntryForm(ui.DarkTheme())
	var saved store.Entry
	f.SetOnSave(func(e store.Entry) { saved = e })

	f.Load(store.Entry{ID: 4, Title: "Old", Content: "body", Mood: "", Timestamp: 99})
	if f.Name() != "Edit entry" {
		t.Errorf("Name() = %q", f.Name())
	}
	f.title.SetText("New title")
	f.save()

	if saved.ID != 4 || saved.Timestamp != 99 {
		t.Errorf("saved = %+v, want id and timestamp kept", saved)
	}
	if saved.Title != "New title" || saved.Content != "body" || saved.Mood != "" {
		t.Errorf("saved = %+v", saved)
	}
}

func TestCalendarDayAt(t *testing.T) {
	c := NewCalendar(ui.DarkTheme())
	groups := map[insights.Date][]store.Entry{
		{Year: 2026, Month: time.March, Day: 10}: {{ID: 1, Title: "x", Timestamp: 1}},
	}
	view := model.CalendarView{
		Month:    insights.MonthGrid(groups, 2026, time.March),
		Selected: insights.Date{Year: 2026, Month: time.March, Day: 10},
		Entries:  groups[insights.Date{Year: 2026, Month: time.March, Day: 10}],
	}
	c.Update(model.Ready, view, nil, time.UTC)

	// March 2026 starts on a Sunday.
	if got := c.dayAt(1, 0); got != 1 {
		t.Errorf("dayAt(1,0) = %d, want 1", got)
	}
	if got := c.dayAt(2, 2); got != 10 {
		t.Errorf("dayAt(2,2) = %d, want 10", got)
	}
	if got := c.dayAt(0, 0); got != 0 {
		t.Errorf("header row = %d, want 0", got)
	}
	if row, col := c.grid.GetSelection(); row != 2 || col != 2 {
		t.Errorf("selection = %d,%d, want the 10th", row, col)
	}
	if len(c.ids) != 1 || c.ids[0] != 1 {
		t.Errorf("listed ids = %v", c.ids)
	}
}

func TestDarkModeLabel(t *testing.T) {
	on, off := true, false
	if DarkModeLabel(nil) != "System default" || DarkModeLabel(&on) != "On" || DarkModeLabel(&off) != "Off" {
		t.Error("unexpected dark mode labels")
	}
}
