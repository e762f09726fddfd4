package views

import (
	"fmt"
	"strings"

	"github.com/matheus3301/minda/internal/tui/model"
	"github.com/matheus3301/minda/internal/tui/ui"
	"github.com/rivo/tview"
)

// barWidth is the length of a full mood bar in cells.
const barWidth = 30

// Insights shows headline numbers and the mood chart.
type Insights struct {
	*tview.TextView
	theme *ui.Theme
}

// NewInsights creates the insights screen.
func NewInsights(theme *ui.Theme) *Insights {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	tv.SetBorder(true)
	tv.SetTitle(" Insights ")
	tv.SetBorderPadding(1, 1, 2, 2)

	in := &Insights{TextView: tv, theme: theme}
	in.Restyle()
	return in
}

// Name implements Component.
func (in *Insights) Name() string { return "Insights" }

// Hints implements Component.
func (in *Insights) Hints() []ui.MenuHint { return nil }

// Restyle reapplies the theme colors.
func (in *Insights) Restyle() {
	in.SetBackgroundColor(in.theme.BgColor)
	in.SetBorderColor(in.theme.BorderColor)
	in.SetTitleColor(in.theme.TitleColor)
	in.SetTextColor(in.theme.FgColor)
}

// Update renders the statistics.
func (in *Insights) Update(state model.LoadState, view model.InsightsView, err error) {
	in.Clear()
	if msg := stateMessage(state, "insights", err); msg != "" {
		color := in.theme.MutedColor
		if state == model.Failed {
			color = in.theme.FlashErrColor
		}
		_, _ = fmt.Fprintf(in, "%s%s[-]", ui.ColorTag(color), tview.Escape(msg))
		return
	}

	title := ui.ColorTag(in.theme.TitleColor)
	counter := ui.ColorTag(in.theme.CounterColor)
	muted := ui.ColorTag(in.theme.MutedColor)

	var b strings.Builder
	fmt.Fprintf(&b, "%s[::b]This journal[-:-:-]\n\n", title)
	fmt.Fprintf(&b, "  %s%d[-] %s\n", counter, view.Summary.Total, plural(view.Summary.Total, "entry total", "entries total"))
	fmt.Fprintf(&b, "  %s%d[-] in the last 7 days\n\n", counter, view.Summary.LastSevenDays)
	fmt.Fprintf(&b, "%s[::b]Mood overview[-:-:-]\n\n", title)

	if len(view.Bars) == 0 {
		fmt.Fprintf(&b, "  %sNo mood data yet. Start journaling to see your patterns.[-]\n", muted)
		_, _ = fmt.Fprint(in, b.String())
		return
	}
	bar := ui.ColorTag(in.theme.BarColor)
	for _, row := range view.Bars {
		n := int(row.Fraction*barWidth + 0.5)
		if n == 0 && row.Count > 0 {
			n = 1
		}
		fmt.Fprintf(&b, "  %s  %s%s[-]%s %s%d[-]\n",
			sanitizeForTerminal(row.Label),
			bar, strings.Repeat("█", n), strings.Repeat(" ", barWidth-n),
			counter, row.Count)
	}
	_, _ = fmt.Fprint(in, b.String())
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
