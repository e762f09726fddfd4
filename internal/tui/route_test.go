package tui

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		path string
		want Destination
	}{
		{"home", To(RouteHome)},
		{"/calendar/", To(RouteCalendar)},
		{"onboarding/askname", To(RouteAskName)},
		{"new", To(RouteNew)},
		{"detail/42", Detail(42)},
		{"edit/7", Edit(7)},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := Parse(tt.path)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.path, got, tt.want)
			}
		})
	}
}

func TestParseRejects(t *testing.T) {
	for _, path := range []string{"", "nowhere", "detail", "detail/", "detail/abc", "detail/0", "detail/1/2", "onboarding"} {
		if _, err := Parse(path); !errors.Is(err, ErrUnknownRoute) {
			t.Errorf("Parse(%q) error = %v, want ErrUnknownRoute", path, err)
		}
	}
}

func TestPathRoundTrip(t *testing.T) {
	for _, info := range Routes {
		d := Destination{Route: info.Route, EntryID: 9}
		got, err := Parse(d.Path())
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", d.Path(), err)
		}
		if got.Route != info.Route {
			t.Errorf("Parse(%q).Route = %s, want %s", d.Path(), got.Route, info.Route)
		}
	}
	if got := Detail(12).Path(); got != "detail/12" {
		t.Errorf("Detail(12).Path() = %q", got)
	}
}

func TestTabs(t *testing.T) {
	want := []Route{RouteHome, RouteCalendar, RouteInsights, RouteSettings}
	tabs := Tabs()
	if len(tabs) != len(want) {
		t.Fatalf("got %d tabs, want %d", len(tabs), len(want))
	}
	for i, info := range tabs {
		if info.Route != want[i] {
			t.Errorf("tab %d = %s, want %s", i, info.Route, want[i])
		}
		if !info.Route.IsTab() {
			t.Errorf("%s should show the tab bar", info.Route)
		}
	}
	for _, r := range []Route{RouteNew, RouteDetail, RouteEdit, RouteWelcome} {
		if r.IsTab() {
			t.Errorf("%s should not show the tab bar", r)
		}
	}
}

func TestStartRoute(t *testing.T) {
	if got := StartRoute(true); got != RouteHome {
		t.Errorf("StartRoute(true) = %s", got)
	}
	if got := StartRoute(false); got != RouteWelcome {
		t.Errorf("StartRoute(false) = %s", got)
	}
}

func TestOnboardingSequence(t *testing.T) {
	var seen []Route
	for r := RouteWelcome; r.IsOnboarding(); r = NextOnboarding(r) {
		seen = append(seen, r)
		if len(seen) > 10 {
			t.Fatal("onboarding never ends")
		}
	}
	want := []Route{RouteWelcome, RouteAskName, RouteHello, RouteCTA}
	if len(seen) != len(want) {
		t.Fatalf("steps = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("step %d = %s, want %s", i, seen[i], want[i])
		}
	}
	if NextOnboarding(RouteCTA) != RouteHome {
		t.Error("last step should lead home")
	}
}

func TestCommandDestination(t *testing.T) {
	tests := []struct {
		input   string
		want    Destination
		wantErr bool
	}{
		{"home", To(RouteHome), false},
		{"Calendar", To(RouteCalendar), false},
		{"new", To(RouteNew), false},
		{"show 3", Detail(3), false},
		{"edit  5 ", Edit(5), false},
		{"detail/8", Detail(8), false},
		{"show", Destination{}, true},
		{"edit x", Destination{}, true},
		{"bogus", Destination{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCommand(tt.input).Destination()
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseCommand(t *testing.T) {
	c := ParseCommand("  QUIT now ")
	if c.Name != "quit" || c.Args != "now" || !c.IsQuit() {
		t.Errorf("ParseCommand = %+v", c)
	}
	if !ParseCommand("h").IsHelp() {
		t.Error("h should be help")
	}
}
