package views

import (
	"fmt"

	"github.com/matheus3301/minda/internal/tui/ui"
	"github.com/rivo/tview"
)

// HelpView displays key binding reference.
type HelpView struct {
	*tview.TextView
	theme *ui.Theme
}

// NewHelpView creates a new help view.
func NewHelpView(theme *ui.Theme) *HelpView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	tv.SetBorder(true)
	tv.SetTitle(" Help ")

	hv := &HelpView{
		TextView: tv,
		theme:    theme,
	}
	hv.Restyle()
	return hv
}

// Name implements Component.
func (hv *HelpView) Name() string { return "Help" }

// Hints implements Component.
func (hv *HelpView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Esc", Description: "Back"},
	}
}

// Restyle reapplies the theme colors and redraws.
func (hv *HelpView) Restyle() {
	hv.SetBorderColor(hv.theme.BorderColor)
	hv.SetBackgroundColor(hv.theme.BgColor)
	hv.SetTextColor(hv.theme.FgColor)
	hv.SetTitleColor(hv.theme.TitleColor)
	hv.render()
}

func (hv *HelpView) render() {
	hv.Clear()
	kc := ui.ColorTag(hv.theme.MenuKeyColor)

	help := fmt.Sprintf(`
  [::b]Global Keys[-:-:-]

  %[1]s1-4[-]      Home, Calendar, Insights, Settings
  %[1]s:[-]        Command mode         %[1]sEsc[-]     Go back
  %[1]s?[-]        Help                 %[1]sq[-]       Quit

  [::b]Home[-:-:-]

  %[1]sEnter[-]    Open entry           %[1]sn[-]       New entry
  %[1]s/[-]        Search your entries  %[1]sj/k[-]     Move down / up

  [::b]Entry[-:-:-]

  %[1]se[-]        Edit                 %[1]sd[-]       Delete

  [::b]Calendar[-:-:-]

  %[1]s[ / ][-]    Previous / next month
  %[1]st[-]        Jump to today        %[1]sTab[-]     Switch between grid and list

  [::b]Settings[-:-:-]

  %[1]su[-]        Edit name            %[1]sd[-]       Cycle dark mode
  %[1]sr[-]        Reset onboarding

  [::b]Commands (: mode)[-:-:-]

  %[1]s:home[-]  %[1]s:calendar[-]  %[1]s:insights[-]  %[1]s:settings[-]  %[1]s:new[-]
  %[1]s:show <id>[-]   Open an entry
  %[1]s:edit <id>[-]   Edit an entry
  %[1]s:help[-] / %[1]s:h[-]      Show this help
  %[1]s:quit[-] / %[1]s:q[-]      Quit application
`, kc)

	_, _ = fmt.Fprint(hv, help)
}
