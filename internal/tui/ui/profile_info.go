package ui

import (
	"fmt"
	"time"

	"github.com/matheus3301/minda/internal/api"
	"github.com/rivo/tview"
)

// ProfileInfo shows which journal the TUI is attached to.
type ProfileInfo struct {
	*tview.TextView
	theme *Theme
}

// NewProfileInfo creates a new profile info panel.
func NewProfileInfo(theme *Theme) *ProfileInfo {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBorderPadding(0, 0, 1, 1)

	return &ProfileInfo{
		TextView: tv,
		theme:    theme,
	}
}

// Update renders daemon status, or err when it could not be fetched.
func (pi *ProfileInfo) Update(st api.DaemonStatus, err error) {
	pi.Clear()
	pi.SetBackgroundColor(pi.theme.BgColor)

	fgColor := colorName(pi.theme.FgColor)
	counterColor := colorName(pi.theme.CounterColor)
	if err != nil {
		_, _ = fmt.Fprintf(pi, "[%s]Daemon unreachable:[-] %s", colorName(pi.theme.FlashErrColor), tview.Escape(err.Error()))
		return
	}

	entries := "-"
	if st.EntryCount >= 0 {
		entries = fmt.Sprint(st.EntryCount)
	}
	_, _ = fmt.Fprintf(pi,
		"[%s::b]Profile:[-:-:-] [%s]%s[-]\n"+
			"[%s::b]Daemon:[-:-:-]  [%s]%s[-]\n"+
			"[%s::b]Entries:[-:-:-] [%s]%s[-]\n"+
			"[%s::b]Uptime:[-:-:-]  [%s]%s[-]",
		fgColor, counterColor, st.Profile,
		fgColor, counterColor, st.Status,
		fgColor, counterColor, entries,
		fgColor, counterColor, FormatUptime(time.Duration(st.UptimeMs)*time.Millisecond),
	)
}

// FormatUptime renders d as "1h5m" or "5m".
func FormatUptime(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
