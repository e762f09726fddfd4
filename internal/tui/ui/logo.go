package ui

import (
	"fmt"

	"github.com/rivo/tview"
)

// Logo displays a compact ASCII art logo.
type Logo struct {
	*tview.TextView
	theme *Theme
}

// NewLogo creates a new logo component.
func NewLogo(theme *Theme) *Logo {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	l := &Logo{
		TextView: tv,
		theme:    theme,
	}
	l.Render()
	return l
}

// Render redraws the logo in the current theme.
func (l *Logo) Render() {
	l.Clear()
	l.SetBackgroundColor(l.theme.BgColor)
	titleColor := colorName(l.theme.TitleColor)
	fgColor := colorName(l.theme.MutedColor)

	_, _ = fmt.Fprintf(l,
		"[%s::b]╔╦╗╦╔╗╔╔╦╗╔═╗[-:-:-]\n"+
			"[%s::b]║║║║║║║ ║║╠═╣[-:-:-]\n"+
			"[%s::b]╩ ╩╩╝╚╝═╩╝╩ ╩[-:-:-]\n"+
			"[%s]your offline journal[-:-:-]",
		titleColor, titleColor, titleColor, fgColor,
	)
}
