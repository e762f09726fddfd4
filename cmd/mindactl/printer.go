package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/matheus3301/minda/internal/api"
	"github.com/matheus3301/minda/internal/insights"
	"github.com/matheus3301/minda/internal/prefs"
	"github.com/matheus3301/minda/internal/store"
)

const (
	barWidth = 30
	// an example week
	weekWidth = len("Su Mo Tu We Th Fr Sa")
)

var (
	bold    = color.New(color.Bold)
	heading = color.New(color.Bold, color.Underline)
	faint   = color.New(color.Faint)
	marked  = color.New(color.Bold, color.FgHiCyan)
	success = color.New(color.FgGreen)
	barInk  = color.New(color.FgMagenta)
)

type printer struct {
	w   io.Writer
	loc *time.Location
}

func newPrinter(w io.Writer, loc *time.Location) *printer {
	if loc == nil {
		loc = time.Local
	}
	return &printer{w: w, loc: loc}
}

func (p *printer) Done(format string, args ...any) {
	success.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) Status(st api.DaemonStatus) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Profile:"), st.Profile)
	tbl.AddRow(bold.Sprint("Status:"), st.Status)
	tbl.AddRow(bold.Sprint("Uptime:"), (time.Duration(st.UptimeMs) * time.Millisecond).Round(time.Second))
	tbl.AddRow(bold.Sprint("Entries:"), st.EntryCount)
	fmt.Fprintln(p.w, tbl)
}

func (p *printer) Entries(entries []store.Entry) {
	if len(entries) == 0 {
		faint.Fprintln(p.w, "No entries yet.")
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 50
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("MOOD"), bold.Sprint("TITLE"), bold.Sprint("PREVIEW"), bold.Sprint("DATE"))
	for _, e := range entries {
		tbl.AddRow(
			e.ID,
			insights.MoodLabel(e.Mood),
			e.Title,
			oneLine(insights.Preview(e.Content)),
			faint.Sprint(insights.FormatTimestamp(e.Timestamp, p.loc)),
		)
	}
	tbl.RightAlign(0)
	fmt.Fprintln(p.w, tbl)
}

func (p *printer) Entry(e store.Entry) {
	heading.Fprintf(p.w, "%s %s\n", insights.MoodLabel(e.Mood), e.Title)
	faint.Fprintf(p.w, "#%d  %s\n\n", e.ID, insights.FormatTimestamp(e.Timestamp, p.loc))
	fmt.Fprintln(p.w, e.Content)
}

// Calendar prints the month grid, marking days with entries, followed by
// the entries of each of those days in date order.
func (p *printer) Calendar(m insights.Month, groups map[insights.Date][]store.Entry) {
	title := fmt.Sprintf("%s %d", m.Month, m.Year)
	mid := (weekWidth - len(title)) / 2
	bold.Fprintf(p.w, "%s%s\n", strings.Repeat(" ", max(mid, 0)), title)
	faint.Fprintln(p.w, "Su Mo Tu We Th Fr Sa")

	for _, week := range m.Weeks() {
		cells := make([]string, 0, len(week))
		for _, day := range week {
			switch {
			case day == 0:
				cells = append(cells, "  ")
			case m.Counts[day-1] > 0:
				cells = append(cells, marked.Sprintf("%2d", day))
			default:
				cells = append(cells, faint.Sprintf("%2d", day))
			}
		}
		fmt.Fprintln(p.w, strings.TrimRight(strings.Join(cells, " "), " "))
	}

	for _, d := range insights.Dates(groups) {
		if d.Year != m.Year || d.Month != m.Month {
			continue
		}
		fmt.Fprintln(p.w)
		heading.Fprintf(p.w, "Entries for %s\n", d.Time(p.loc).Format("2 Jan 2006"))
		for _, e := range groups[d] {
			fmt.Fprintf(p.w, "%s %s %s\n", faint.Sprintf("%4d", e.ID), insights.MoodLabel(e.Mood), e.Title)
		}
	}
}

func (p *printer) Insights(s insights.Summary, bars []insights.Bar) {
	heading.Fprintln(p.w, "This journal")
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("Total entries", s.Total)
	tbl.AddRow("Last 7 days", s.LastSevenDays)
	tbl.RightAlign(1)
	fmt.Fprintln(p.w, tbl)
	fmt.Fprintln(p.w)

	heading.Fprintln(p.w, "Mood overview")
	if len(bars) == 0 {
		faint.Fprintln(p.w, "No mood data yet. Start journaling to see your patterns.")
		return
	}
	tbl = uitable.New()
	tbl.Separator = "  "
	for _, b := range bars {
		n := int(math.Round(b.Fraction * barWidth))
		tbl.AddRow(b.Label, barInk.Sprint(strings.Repeat("█", n)), b.Count)
	}
	fmt.Fprintln(p.w, tbl)
}

func (p *printer) Preferences(pr prefs.Preferences) {
	name := faint.Sprint("(not set)")
	if pr.UserName != nil {
		name = *pr.UserName
	}
	theme := "system"
	if pr.DarkMode != nil {
		theme = "light"
		if *pr.DarkMode {
			theme = "dark"
		}
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Name:"), name)
	tbl.AddRow(bold.Sprint("Onboarding completed:"), pr.OnboardingCompleted)
	tbl.AddRow(bold.Sprint("Theme:"), theme)
	fmt.Fprintln(p.w, tbl)
}

func (p *printer) Snapshot(env api.WatchEnvelope) {
	fmt.Fprintf(p.w, "%s %s %d entries\n",
		faint.Sprint(env.OccurredAt.In(p.loc).Format(time.DateTime)),
		bold.Sprint(env.EventID),
		len(env.Entries))
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}
