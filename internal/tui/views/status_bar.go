package views

import (
	"fmt"
	"time"

	"github.com/matheus3301/minda/internal/tui/ui"
	"github.com/rivo/tview"
)

// StatusBar displays the profile, daemon status and clock.
type StatusBar struct {
	*tview.TextView
	theme   *ui.Theme
	profile string
	status  string
	count   int64
}

// NewStatusBar creates a new status bar.
func NewStatusBar(theme *ui.Theme) *StatusBar {
	tv := tview.NewTextView().
		SetDynamicColors(true)

	sb := &StatusBar{TextView: tv, theme: theme, count: -1}
	sb.render()
	return sb
}

// SetProfile updates the profile name display.
func (sb *StatusBar) SetProfile(name string) {
	sb.profile = name
	sb.render()
}

// SetStatus updates the daemon status and entry count. A negative count
// is not shown.
func (sb *StatusBar) SetStatus(status string, count int64) {
	sb.status = status
	sb.count = count
	sb.render()
}

// Restyle reapplies the theme colors.
func (sb *StatusBar) Restyle() { sb.render() }

func (sb *StatusBar) render() {
	sb.Clear()
	sb.SetBackgroundColor(sb.theme.TabInactiveBg)
	sb.SetTextColor(sb.theme.TabInactiveFg)

	status := sb.status
	if status == "" {
		status = "CONNECTING"
	}
	line := fmt.Sprintf(" [::b]%s[-:-:-] | %s", sb.profile, status)
	if sb.count >= 0 {
		line += fmt.Sprintf(" | %d entries", sb.count)
	}
	line += " | " + time.Now().Format("15:04")
	_, _ = fmt.Fprint(sb, line)
}
