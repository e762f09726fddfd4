package ui

import (
	"fmt"

	"github.com/rivo/tview"
)

// Menu displays keyboard shortcut hints on a single line.
type Menu struct {
	*tview.TextView
	theme *Theme
}

// NewMenu creates a new menu hint bar.
func NewMenu(theme *Theme) *Menu {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetBorderPadding(0, 0, 1, 0)

	return &Menu{
		TextView: tv,
		theme:    theme,
	}
}

// Update renders screen hints followed by the global ones.
func (m *Menu) Update(hints ...[]MenuHint) {
	m.Clear()
	m.SetBackgroundColor(m.theme.BgColor)

	keyColor := colorName(m.theme.MenuKeyColor)
	fg := colorName(m.theme.MutedColor)
	for _, group := range hints {
		for _, h := range group {
			_, _ = fmt.Fprintf(m, "[%s::b]<%s>[-:-:-] [%s]%s[-]  ", keyColor, tview.Escape(h.Key), fg, h.Description)
		}
	}
}
