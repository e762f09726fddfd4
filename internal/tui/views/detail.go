package views

import (
	"fmt"
	"time"

	"github.com/matheus3301/minda/internal/insights"
	"github.com/matheus3301/minda/internal/store"
	"github.com/matheus3301/minda/internal/tui/model"
	"github.com/matheus3301/minda/internal/tui/ui"
	"github.com/rivo/tview"
)

// Detail shows a single entry in full.
type Detail struct {
	*tview.TextView
	theme *ui.Theme
}

// NewDetail creates the entry detail screen.
func NewDetail(theme *ui.Theme) *Detail {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWordWrap(true)
	tv.SetBorder(true)
	tv.SetBorderPadding(1, 1, 2, 2)

	d := &Detail{TextView: tv, theme: theme}
	d.Restyle()
	return d
}

// Name implements Component.
func (d *Detail) Name() string { return "Entry" }

// Hints implements Component.
func (d *Detail) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "e", Description: "Edit"},
		{Key: "d", Description: "Delete"},
		{Key: "Esc", Description: "Back"},
	}
}

// Restyle reapplies the theme colors.
func (d *Detail) Restyle() {
	d.SetBackgroundColor(d.theme.BgColor)
	d.SetBorderColor(d.theme.BorderColor)
	d.SetTitleColor(d.theme.TitleColor)
	d.SetTextColor(d.theme.FgColor)
}

// Update renders e, or the reason it cannot be shown.
func (d *Detail) Update(state model.LoadState, e store.Entry, err error, loc *time.Location) {
	d.Clear()
	d.ScrollToBeginning()
	if msg := stateMessage(state, "entry", err); msg != "" {
		d.SetTitle(" Entry ")
		color := d.theme.MutedColor
		if state == model.Failed {
			color = d.theme.FlashErrColor
		}
		_, _ = fmt.Fprintf(d, "%s%s[-]", ui.ColorTag(color), tview.Escape(msg))
		return
	}

	d.SetTitle(fmt.Sprintf(" %s ", tview.Escape(sanitizeForTerminal(e.Title))))
	_, _ = fmt.Fprintf(d, "%s  %s%s[-]\n\n%s",
		insights.MoodLabel(sanitizeForTerminal(e.Mood)),
		ui.ColorTag(d.theme.CounterColor), insights.FormatTimestamp(e.Timestamp, loc),
		tview.Escape(sanitizeForTerminal(e.Content)),
	)
}
