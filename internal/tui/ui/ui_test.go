package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rivo/tview"
)

func pageOf(path string) string {
	name, _, _ := strings.Cut(path, "/")
	return name
}

func newTestPages(names ...string) *Pages {
	p := NewPages(pageOf)
	for _, n := range names {
		p.AddPage(n, tview.NewBox(), true, false)
	}
	return p
}

func TestPagesStack(t *testing.T) {
	p := newTestPages("home", "detail", "edit")
	var changes [][]string
	p.SetOnChange(func(stack []string) { changes = append(changes, stack) })

	p.Reset("home")
	p.Push("detail/3")
	p.Push("edit/3")
	if got := p.Current(); got != "edit/3" {
		t.Fatalf("Current() = %q", got)
	}
	if name, _ := p.GetFrontPage(); name != "edit" {
		t.Errorf("front page = %q, want edit", name)
	}

	p.Replace("detail/3")
	if p.Depth() != 3 || p.Current() != "detail/3" {
		t.Errorf("after Replace stack = %v", p.Stack())
	}

	if got := p.Pop(); got != "detail/3" {
		t.Errorf("Pop() = %q", got)
	}
	if got := p.Pop(); got != "detail/3" {
		t.Errorf("Pop() = %q", got)
	}
	if got := p.Pop(); got != "" {
		t.Errorf("popping the root = %q, want empty", got)
	}
	if p.Current() != "home" {
		t.Errorf("Current() = %q, want home", p.Current())
	}
	if name, _ := p.GetFrontPage(); name != "home" {
		t.Errorf("front page = %q, want home", name)
	}
	if len(changes) != 6 {
		t.Errorf("got %d change notifications, want 6", len(changes))
	}
}

func TestPagesStackIsCopy(t *testing.T) {
	p := newTestPages("home")
	p.Reset("home")
	s := p.Stack()
	s[0] = "mutated"
	if p.Current() != "home" {
		t.Error("Stack() exposed internal slice")
	}
}

func TestFlashModel(t *testing.T) {
	f := NewFlashModel()
	if f.GetMessage() != nil {
		t.Fatal("new flash should be empty")
	}
	f.Err("save entry", errors.New("disk full"))
	msg := f.GetMessage()
	if msg == nil || msg.Level != FlashErr || msg.Text != "save entry failed: disk full" {
		t.Fatalf("GetMessage() = %+v", msg)
	}
	select {
	case got := <-f.Watch():
		if got.Text != msg.Text {
			t.Errorf("watched %q", got.Text)
		}
	case <-time.After(time.Second):
		t.Fatal("no flash on watch channel")
	}

	f.set("gone", FlashInfo, -time.Second)
	if f.GetMessage() != nil {
		t.Error("expired flash still shown")
	}
}

func TestThemeFor(t *testing.T) {
	dark, light := true, false
	if !ThemeFor(nil).Dark {
		t.Error("unset dark mode should use the dark theme")
	}
	if !ThemeFor(&dark).Dark {
		t.Error("dark mode on should use the dark theme")
	}
	if ThemeFor(&light).Dark {
		t.Error("dark mode off should use the light theme")
	}
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0m"},
		{5 * time.Minute, "5m"},
		{65 * time.Minute, "1h5m"},
	}
	for _, tt := range tests {
		if got := FormatUptime(tt.d); got != tt.want {
			t.Errorf("FormatUptime(%s) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
