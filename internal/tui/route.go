package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Route is a route pattern. Parameterized routes carry an {entryId} segment.
type Route string

const (
	RouteHome     Route = "home"
	RouteCalendar Route = "calendar"
	RouteInsights Route = "insights"
	RouteSettings Route = "settings"
	RouteWelcome  Route = "onboarding/welcome"
	RouteAskName  Route = "onboarding/askname"
	RouteHello    Route = "onboarding/hello"
	RouteCTA      Route = "onboarding/cta"
	RouteNew      Route = "new"
	RouteDetail   Route = "detail/{entryId}"
	RouteEdit     Route = "edit/{entryId}"
)

const entryIDParam = "{entryId}"

// RouteInfo describes one entry of the route table.
type RouteInfo struct {
	Route Route
	Title string
	// Tab routes are top-level destinations shown in the tab bar.
	Tab bool
}

// Routes is the static route table. Tab routes appear in tab-bar order.
var Routes = []RouteInfo{
	{Route: RouteHome, Title: "Home", Tab: true},
	{Route: RouteCalendar, Title: "Calendar", Tab: true},
	{Route: RouteInsights, Title: "Insights", Tab: true},
	{Route: RouteSettings, Title: "Settings", Tab: true},
	{Route: RouteWelcome, Title: "Welcome"},
	{Route: RouteAskName, Title: "Your name"},
	{Route: RouteHello, Title: "Hello"},
	{Route: RouteCTA, Title: "All set"},
	{Route: RouteNew, Title: "New entry"},
	{Route: RouteDetail, Title: "Entry"},
	{Route: RouteEdit, Title: "Edit entry"},
}

// ErrUnknownRoute is returned by Parse for paths outside the route table.
var ErrUnknownRoute = errors.New("unknown route")

// Info looks r up in the route table.
func (r Route) Info() (RouteInfo, bool) {
	for _, info := range Routes {
		if info.Route == r {
			return info, true
		}
	}
	return RouteInfo{}, false
}

// IsTab reports whether r shows the tab bar.
func (r Route) IsTab() bool {
	info, ok := r.Info()
	return ok && info.Tab
}

// IsOnboarding reports whether r is a step of the onboarding wizard.
func (r Route) IsOnboarding() bool {
	return strings.HasPrefix(string(r), "onboarding/")
}

// Tabs returns the tab routes in display order.
func Tabs() []RouteInfo {
	var tabs []RouteInfo
	for _, info := range Routes {
		if info.Tab {
			tabs = append(tabs, info)
		}
	}
	return tabs
}

// Destination is a resolved route with its parameter.
type Destination struct {
	Route   Route
	EntryID int64
}

// To returns the destination of a route without parameters.
func To(r Route) Destination { return Destination{Route: r} }

// Detail returns the detail destination for an entry.
func Detail(id int64) Destination { return Destination{Route: RouteDetail, EntryID: id} }

// Edit returns the edit destination for an entry.
func Edit(id int64) Destination { return Destination{Route: RouteEdit, EntryID: id} }

// Path renders d as a concrete path, e.g. "detail/42".
func (d Destination) Path() string {
	return strings.Replace(string(d.Route), entryIDParam, strconv.FormatInt(d.EntryID, 10), 1)
}

func (d Destination) String() string { return d.Path() }

// Parse resolves a concrete path against the route table.
func Parse(path string) (Destination, error) {
	path = strings.Trim(strings.TrimSpace(path), "/")
	for _, info := range Routes {
		pattern := string(info.Route)
		prefix, hasParam := strings.CutSuffix(pattern, entryIDParam)
		if !hasParam {
			if path == pattern {
				return To(info.Route), nil
			}
			continue
		}
		raw, ok := strings.CutPrefix(path, prefix)
		if !ok || raw == "" || strings.Contains(raw, "/") {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return Destination{}, fmt.Errorf("%w: bad entry id in %q", ErrUnknownRoute, path)
		}
		return Destination{Route: info.Route, EntryID: id}, nil
	}
	return Destination{}, fmt.Errorf("%w: %q", ErrUnknownRoute, path)
}

// StartRoute picks the first screen: home once onboarding is done,
// otherwise the start of the onboarding wizard.
func StartRoute(onboardingCompleted bool) Route {
	if onboardingCompleted {
		return RouteHome
	}
	return RouteWelcome
}

// NextOnboarding returns the step after r, or home after the last step.
func NextOnboarding(r Route) Route {
	switch r {
	case RouteWelcome:
		return RouteAskName
	case RouteAskName:
		return RouteHello
	case RouteHello:
		return RouteCTA
	default:
		return RouteHome
	}
}
