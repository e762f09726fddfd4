package views

import (
	"slices"

	"github.com/matheus3301/minda/internal/diary"
	"github.com/matheus3301/minda/internal/insights"
	"github.com/matheus3301/minda/internal/store"
	"github.com/matheus3301/minda/internal/tui/ui"
	"github.com/rivo/tview"
)

// EntryForm creates or edits an entry. Editing keeps the entry's id and
// timestamp; only title, content and mood change.
type EntryForm struct {
	*tview.Form
	theme    *ui.Theme
	title    *tview.InputField
	content  *tview.TextArea
	mood     *tview.DropDown
	moods    []string
	entry    store.Entry
	onSave   func(e store.Entry)
	onCancel func()
}

// NewEntryForm creates the new/edit form.
func NewEntryForm(theme *ui.Theme) *EntryForm {
	f := &EntryForm{
		Form:    tview.NewForm(),
		theme:   theme,
		title:   tview.NewInputField().SetLabel("Title").SetFieldWidth(0),
		content: tview.NewTextArea().SetLabel("Content"),
		mood:    tview.NewDropDown().SetLabel("Mood"),
	}
	f.content.SetSize(10, 0)
	f.AddFormItem(f.title).
		AddFormItem(f.content).
		AddFormItem(f.mood).
		AddButton("Save", f.save).
		AddButton("Cancel", f.cancel)
	f.SetBorder(true)
	f.SetCancelFunc(f.cancel)
	f.Restyle()
	return f
}

// Name implements Component.
func (f *EntryForm) Name() string {
	if f.entry.ID != 0 {
		return "Edit entry"
	}
	return "New entry"
}

// Hints implements Component.
func (f *EntryForm) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Esc", Description: "Cancel"},
	}
}

// Restyle reapplies the theme colors.
func (f *EntryForm) Restyle() {
	f.SetBackgroundColor(f.theme.BgColor)
	f.SetBorderColor(f.theme.BorderColor)
	f.SetTitleColor(f.theme.TitleColor)
	f.SetLabelColor(f.theme.MenuKeyColor)
	f.SetFieldBackgroundColor(f.theme.TabInactiveBg)
	f.SetFieldTextColor(f.theme.FgColor)
	f.SetButtonBackgroundColor(f.theme.TabActiveBg)
	f.SetButtonTextColor(f.theme.TabActiveFg)
}

// SetOnSave sets the callback receiving the edited entry.
func (f *EntryForm) SetOnSave(fn func(e store.Entry)) { f.onSave = fn }

// SetOnCancel sets the callback for leaving without saving.
func (f *EntryForm) SetOnCancel(fn func()) { f.onCancel = fn }

// Load fills the form from e. A zero ID starts a new entry.
func (f *EntryForm) Load(e store.Entry) {
	f.entry = e
	if e.ID == 0 && e.Mood == "" {
		e.Mood = diary.DefaultMood
	}
	f.SetTitle(" " + f.Name() + " ")
	f.title.SetText(e.Title)
	f.content.SetText(e.Content, false)

	f.moods = slices.Clone(insights.Moods)
	if !slices.Contains(f.moods, e.Mood) {
		f.moods = append(f.moods, e.Mood)
	}
	labels := make([]string, len(f.moods))
	for i, m := range f.moods {
		labels[i] = insights.MoodLabel(m)
	}
	f.mood.SetOptions(labels, nil)
	f.mood.SetCurrentOption(slices.Index(f.moods, e.Mood))
	f.SetFocus(0)
}

// Entry returns the entry as currently edited.
func (f *EntryForm) Entry() store.Entry {
	e := f.entry
	e.Title = f.title.GetText()
	e.Content = f.content.GetText()
	if i, _ := f.mood.GetCurrentOption(); i >= 0 && i < len(f.moods) {
		e.Mood = f.moods[i]
	}
	return e
}

func (f *EntryForm) save() {
	if f.onSave != nil {
		f.onSave(f.Entry())
	}
}

func (f *EntryForm) cancel() {
	if f.onCancel != nil {
		f.onCancel()
	}
}
