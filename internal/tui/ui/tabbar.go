package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// TabBar shows the top-level destinations with the active one highlighted.
type TabBar struct {
	*tview.TextView
	theme *Theme
}

// NewTabBar creates an empty tab bar.
func NewTabBar(theme *Theme) *TabBar {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(theme.BgColor)

	return &TabBar{
		TextView: tv,
		theme:    theme,
	}
}

// Update renders tabs numbered from 1; active is an index into tabs, or -1.
func (tb *TabBar) Update(tabs []string, active int) {
	tb.Clear()
	tb.SetBackgroundColor(tb.theme.BgColor)

	parts := make([]string, 0, len(tabs))
	for i, name := range tabs {
		fg, bg, attr := tb.theme.TabInactiveFg, tb.theme.TabInactiveBg, ""
		if i == active {
			fg, bg, attr = tb.theme.TabActiveFg, tb.theme.TabActiveBg, "b"
		}
		parts = append(parts, fmt.Sprintf("[%s:%s:%s] %d %s [-:-:-]",
			colorName(fg), colorName(bg), attr, i+1, name))
	}
	_, _ = fmt.Fprint(tb, strings.Join(parts, " "))
}

// colorName returns a tview-compatible color name string.
func colorName(c tcell.Color) string {
	for name, val := range tcell.ColorNames {
		if val == c {
			return name
		}
	}
	return fmt.Sprintf("#%06x", c.Hex())
}

// ColorTag returns c as a tview color tag, e.g. "[plum]".
func ColorTag(c tcell.Color) string {
	return "[" + colorName(c) + "]"
}
