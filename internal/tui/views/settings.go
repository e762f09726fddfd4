package views

import (
	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/minda/internal/api"
	"github.com/matheus3301/minda/internal/prefs"
	"github.com/matheus3301/minda/internal/tui/model"
	"github.com/matheus3301/minda/internal/tui/ui"
	"github.com/rivo/tview"
)

// Settings edits the preferences and shows which profile is attached.
type Settings struct {
	*tview.Flex
	theme   *ui.Theme
	name    *tview.InputField
	list    *tview.List
	info    *ui.ProfileInfo
	onName  func(name string)
	onDark  func()
	onReset func()
	onLeave func()
	saved   string
}

// NewSettings creates the settings screen.
func NewSettings(theme *ui.Theme) *Settings {
	s := &Settings{
		theme: theme,
		name:  tview.NewInputField().SetLabel(" Name: ").SetFieldWidth(30),
		list:  tview.NewList(),
		info:  ui.NewProfileInfo(theme),
	}
	s.list.SetBorder(true)
	s.list.SetTitle(" Settings ")
	s.Flex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(s.name, 1, 0, false).
		AddItem(s.list, 0, 1, true).
		AddItem(s.info, 4, 0, false)

	s.name.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEnter:
			if s.onName != nil {
				s.onName(s.name.GetText())
			}
		case tcell.KeyEscape:
			s.name.SetText(s.saved)
		}
		if s.onLeave != nil {
			s.onLeave()
		}
	})
	s.Restyle()
	return s
}

// Name implements Component.
func (s *Settings) Name() string { return "Settings" }

// Hints implements Component.
func (s *Settings) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "u", Description: "Edit name"},
		{Key: "d", Description: "Dark mode"},
		{Key: "r", Description: "Reset"},
	}
}

// Restyle reapplies the theme colors.
func (s *Settings) Restyle() {
	s.SetBackgroundColor(s.theme.BgColor)
	styleInput(s.name, s.theme)
	s.list.SetBackgroundColor(s.theme.BgColor)
	s.list.SetBorderColor(s.theme.BorderColor)
	s.list.SetTitleColor(s.theme.TitleColor)
	s.list.SetMainTextColor(s.theme.FgColor)
	s.list.SetSecondaryTextColor(s.theme.MutedColor)
	s.list.SetShortcutColor(s.theme.MenuKeyColor)
	s.list.SetSelectedTextColor(s.theme.TableCursorFg)
	s.list.SetSelectedBackgroundColor(s.theme.TableCursorBg)
}

// SetHandlers sets the callbacks for renaming, toggling dark mode,
// resetting onboarding and leaving the name field.
func (s *Settings) SetHandlers(onName func(string), onDark, onReset, onLeave func()) {
	s.onName, s.onDark, s.onReset, s.onLeave = onName, onDark, onReset, onLeave
}

// NameInput returns the name field.
func (s *Settings) NameInput() *tview.InputField { return s.name }

// List returns the settings list.
func (s *Settings) List() *tview.List { return s.list }

// Update renders the preferences.
func (s *Settings) Update(state model.LoadState, p prefs.Preferences, err error) {
	current := s.list.GetCurrentItem()
	s.list.Clear()

	if msg := stateMessage(state, "preferences", err); msg != "" {
		s.name.SetText("")
		s.list.AddItem(tview.Escape(msg), "", 0, nil)
		return
	}

	s.saved = ""
	if p.UserName != nil {
		s.saved = *p.UserName
	}
	if s.name.GetText() != s.saved {
		s.name.SetText(s.saved)
	}
	s.list.AddItem("Dark mode", DarkModeLabel(p.DarkMode), 'd', s.onDark)
	s.list.AddItem("Reset Application", "Go back to the welcome screen", 'r', s.onReset)
	if current < s.list.GetItemCount() {
		s.list.SetCurrentItem(current)
	}
}

// UpdateStatus renders the daemon panel.
func (s *Settings) UpdateStatus(st api.DaemonStatus, err error) {
	s.info.Update(st, err)
}

// DarkModeLabel describes a dark-mode preference.
func DarkModeLabel(dark *bool) string {
	switch {
	case dark == nil:
		return "System default"
	case *dark:
		return "On"
	default:
		return "Off"
	}
}
