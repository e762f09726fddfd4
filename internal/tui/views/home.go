package views

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/minda/internal/store"
	"github.com/matheus3301/minda/internal/tui/model"
	"github.com/matheus3301/minda/internal/tui/ui"
	"github.com/rivo/tview"
)

// Home is the entry feed with a search box.
type Home struct {
	*tview.Flex
	theme   *ui.Theme
	search  *tview.InputField
	table   *tview.Table
	ids     []int64
	onQuery func(query string)
	onOpen  func(id int64)
}

// NewHome creates the home feed.
func NewHome(theme *ui.Theme) *Home {
	search := tview.NewInputField().
		SetLabel(" Search your entries: ").
		SetPlaceholder("title or content").
		SetFieldWidth(0)

	table := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false)
	table.SetBorder(true)
	table.SetTitle(" Minda ")

	h := &Home{
		Flex: tview.NewFlex().
			SetDirection(tview.FlexRow).
			AddItem(search, 1, 0, false).
			AddItem(table, 0, 1, true),
		theme:  theme,
		search: search,
		table:  table,
	}
	h.Restyle()

	search.SetChangedFunc(func(text string) {
		if h.onQuery != nil {
			h.onQuery(text)
		}
	})
	table.SetSelectedFunc(func(row, _ int) {
		if row >= 0 && row < len(h.ids) && h.onOpen != nil {
			h.onOpen(h.ids[row])
		}
	})
	return h
}

// Name implements Component.
func (h *Home) Name() string { return "Home" }

// Hints implements Component.
func (h *Home) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Enter", Description: "Open"},
		{Key: "/", Description: "Search"},
		{Key: "n", Description: "New entry"},
	}
}

// Restyle reapplies the theme colors.
func (h *Home) Restyle() {
	h.SetBackgroundColor(h.theme.BgColor)
	styleInput(h.search, h.theme)
	styleTable(h.table, h.theme)
}

// SetOnQuery sets the callback for search text changes.
func (h *Home) SetOnQuery(fn func(query string)) { h.onQuery = fn }

// SetOnOpen sets the callback for opening an entry.
func (h *Home) SetOnOpen(fn func(id int64)) { h.onOpen = fn }

// Query returns the current search text.
func (h *Home) Query() string { return h.search.GetText() }

// Search returns the search input field.
func (h *Home) Search() *tview.InputField { return h.search }

// Table returns the entry list.
func (h *Home) Table() *tview.Table { return h.table }

// SetDoneSearching sets what happens when Enter or Esc leaves the search box.
func (h *Home) SetDoneSearching(fn func()) {
	h.search.SetDoneFunc(func(tcell.Key) { fn() })
}

// Update renders the feed. name personalizes the title when set.
func (h *Home) Update(state model.LoadState, entries []store.Entry, err error, name *string, loc *time.Location) {
	h.table.Clear()
	h.ids = nil

	title := " Minda "
	if name != nil && *name != "" {
		title = fmt.Sprintf(" Hi, %s! ", tview.Escape(*name))
	}
	h.table.SetTitle(title)

	if msg := stateMessage(state, "entries", err); msg != "" {
		placeholder(h.table, h.theme, msg, state == model.Failed)
		return
	}
	if len(entries) == 0 {
		text := "No entries yet. Press n to write one."
		if h.Query() != "" {
			text = fmt.Sprintf("Nothing matches %q.", h.Query())
		}
		placeholder(h.table, h.theme, text, false)
		return
	}
	h.ids = entryRows(h.table, h.theme, entries, loc)
	row, _ := h.table.GetSelection()
	if row >= len(h.ids) {
		h.table.Select(len(h.ids)-1, 0)
	}
}

// SelectedID returns the id of the highlighted entry.
func (h *Home) SelectedID() (int64, bool) {
	row, _ := h.table.GetSelection()
	if row < 0 || row >= len(h.ids) {
		return 0, false
	}
	return h.ids[row], true
}
