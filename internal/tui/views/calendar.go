package views

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/minda/internal/tui/model"
	"github.com/matheus3301/minda/internal/tui/ui"
	"github.com/rivo/tview"
)

var weekdays = [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// Calendar shows a month grid next to the entries of the selected day.
type Calendar struct {
	*tview.Flex
	theme  *ui.Theme
	grid   *tview.Table
	list   *tview.Table
	weeks  [][7]int
	ids    []int64
	onDay  func(day int)
	onOpen func(id int64)
}

// NewCalendar creates the calendar screen.
func NewCalendar(theme *ui.Theme) *Calendar {
	grid := tview.NewTable().
		SetSelectable(true, true).
		SetBorders(false)
	grid.SetBorder(true)

	list := tview.NewTable().
		SetSelectable(true, false)
	list.SetBorder(true)

	c := &Calendar{
		Flex: tview.NewFlex().
			AddItem(grid, 24, 0, true).
			AddItem(list, 0, 1, false),
		theme: theme,
		grid:  grid,
		list:  list,
	}
	c.Restyle()

	grid.SetSelectedFunc(func(row, col int) {
		if day := c.dayAt(row, col); day > 0 && c.onDay != nil {
			c.onDay(day)
		}
	})
	list.SetSelectedFunc(func(row, _ int) {
		if row >= 0 && row < len(c.ids) && c.onOpen != nil {
			c.onOpen(c.ids[row])
		}
	})
	return c
}

// Name implements Component.
func (c *Calendar) Name() string { return "Calendar" }

// Hints implements Component.
func (c *Calendar) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Enter", Description: "Pick day / Open"},
		{Key: "Tab", Description: "Switch pane"},
		{Key: "[ ]", Description: "Month"},
		{Key: "t", Description: "Today"},
	}
}

// Restyle reapplies the theme colors.
func (c *Calendar) Restyle() {
	c.SetBackgroundColor(c.theme.BgColor)
	styleTable(c.grid, c.theme)
	styleTable(c.list, c.theme)
}

// SetOnDay sets the callback for picking a day of the shown month.
func (c *Calendar) SetOnDay(fn func(day int)) { c.onDay = fn }

// SetOnOpen sets the callback for opening an entry.
func (c *Calendar) SetOnOpen(fn func(id int64)) { c.onOpen = fn }

// Grid returns the month grid.
func (c *Calendar) Grid() *tview.Table { return c.grid }

// List returns the day's entry list.
func (c *Calendar) List() *tview.Table { return c.list }

func (c *Calendar) dayAt(row, col int) int {
	week := row - 1
	if week < 0 || week >= len(c.weeks) || col < 0 || col > 6 {
		return 0
	}
	return c.weeks[week][col]
}

// Update renders the month and the selected day's entries.
func (c *Calendar) Update(state model.LoadState, view model.CalendarView, err error, loc *time.Location) {
	c.grid.Clear()
	c.list.Clear()
	c.weeks, c.ids = nil, nil

	if msg := stateMessage(state, "calendar", err); msg != "" {
		c.grid.SetTitle(" Calendar ")
		c.list.SetTitle("")
		placeholder(c.grid, c.theme, msg, state == model.Failed)
		return
	}

	m := view.Month
	c.grid.SetTitle(fmt.Sprintf(" %s %d ", m.Month, m.Year))
	for col, name := range weekdays {
		c.grid.SetCell(0, col, tview.NewTableCell(name).
			SetSelectable(false).
			SetAlign(tview.AlignCenter).
			SetTextColor(c.theme.TableHeaderFg).
			SetAttributes(tcell.AttrBold))
	}

	c.weeks = m.Weeks()
	for w, week := range c.weeks {
		for col, day := range week {
			cell := tview.NewTableCell("   ").SetSelectable(day > 0)
			if day > 0 {
				color := c.theme.FgColor
				text := fmt.Sprintf("%2d ", day)
				if m.Counts[day-1] > 0 {
					color = c.theme.MarkedDayColor
					text = fmt.Sprintf("%2d•", day)
				}
				cell.SetText(text).SetTextColor(color)
				if view.Selected.Year == m.Year && view.Selected.Month == m.Month && view.Selected.Day == day {
					c.grid.Select(w+1, col)
				}
			}
			c.grid.SetCell(w+1, col, cell)
		}
	}

	sel := view.Selected
	c.list.SetTitle(fmt.Sprintf(" Entries for %d %s %d ", sel.Day, sel.Month.String()[:3], sel.Year))
	if len(view.Entries) == 0 {
		placeholder(c.list, c.theme, "No entries yet.", false)
		return
	}
	c.ids = entryRows(c.list, c.theme, view.Entries, loc)
}
