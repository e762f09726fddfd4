package views

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/minda/internal/insights"
	"github.com/matheus3301/minda/internal/store"
	"github.com/matheus3301/minda/internal/tui/model"
	"github.com/matheus3301/minda/internal/tui/ui"
	"github.com/rivo/tview"
)

// stateMessage is the placeholder shown instead of data that is not ready.
// It returns "" when state is Ready.
func stateMessage(state model.LoadState, what string, err error) string {
	switch state {
	case model.Loading:
		return "Loading " + what + "…"
	case model.Failed:
		if err == nil {
			return "Could not load " + what + "."
		}
		return fmt.Sprintf("Could not load %s: %v", what, err)
	}
	return ""
}

// placeholder fills table with a single non-selectable message row.
func placeholder(table *tview.Table, theme *ui.Theme, text string, failed bool) {
	color := theme.MutedColor
	if failed {
		color = theme.FlashErrColor
	}
	table.SetCell(0, 0, tview.NewTableCell(" "+tview.Escape(text)).
		SetSelectable(false).
		SetExpansion(1).
		SetTextColor(color))
}

// entryRows renders entries as mood | title | preview | date rows from row
// 0 and returns their ids in row order.
func entryRows(table *tview.Table, theme *ui.Theme, entries []store.Entry, loc *time.Location) []int64 {
	ids := make([]int64, 0, len(entries))
	for i, e := range entries {
		table.SetCell(i, 0, tview.NewTableCell(" "+insights.MoodLabel(sanitizeForTerminal(e.Mood))).
			SetTextColor(theme.FgColor))
		table.SetCell(i, 1, tview.NewTableCell(tview.Escape(sanitizeForTerminal(e.Title))).
			SetMaxWidth(30).
			SetAttributes(tcell.AttrBold).
			SetTextColor(theme.FgColor))
		table.SetCell(i, 2, tview.NewTableCell(tview.Escape(sanitizeForTerminal(insights.Preview(e.Content)))).
			SetExpansion(1).
			SetTextColor(theme.MutedColor))
		table.SetCell(i, 3, tview.NewTableCell(insights.FormatTimestamp(e.Timestamp, loc)+" ").
			SetAlign(tview.AlignRight).
			SetTextColor(theme.CounterColor))
		ids = append(ids, e.ID)
	}
	return ids
}

// styleTable applies the theme to a selectable list table.
func styleTable(table *tview.Table, theme *ui.Theme) {
	table.SetBorderColor(theme.BorderColor)
	table.SetBackgroundColor(theme.BgColor)
	table.SetTitleColor(theme.TitleColor)
	table.SetSelectedStyle(tcell.StyleDefault.
		Foreground(theme.TableCursorFg).
		Background(theme.TableCursorBg))
}

func styleInput(input *tview.InputField, theme *ui.Theme) {
	input.SetBackgroundColor(theme.BgColor)
	input.SetFieldBackgroundColor(theme.BgColor)
	input.SetFieldTextColor(theme.FgColor)
	input.SetLabelColor(theme.MenuKeyColor)
	input.SetPlaceholderTextColor(theme.MutedColor)
}
