package insights

import (
	"fmt"
	"slices"
	"time"

	"github.com/matheus3301/minda/internal/store"
)

// Date is a calendar day in some location.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// EntryDate returns the local calendar date of an entry's timestamp in loc.
func EntryDate(e store.Entry, loc *time.Location) Date {
	return DateOf(time.UnixMilli(e.Timestamp).In(loc))
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Time returns midnight of d in loc.
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Compare orders dates chronologically.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return d.Year - o.Year
	case d.Month != o.Month:
		return int(d.Month) - int(o.Month)
	default:
		return d.Day - o.Day
	}
}

// GroupByDate partitions entries by the calendar date of their timestamp
// in loc. Each bucket keeps the input order; dates without entries are absent.
func GroupByDate(entries []store.Entry, loc *time.Location) map[Date][]store.Entry {
	if loc == nil {
		loc = time.Local
	}
	groups := make(map[Date][]store.Entry)
	for _, e := range entries {
		d := EntryDate(e, loc)
		groups[d] = append(groups[d], e)
	}
	return groups
}

// Dates returns the keys of groups in chronological order.
func Dates(groups map[Date][]store.Entry) []Date {
	dates := make([]Date, 0, len(groups))
	for d := range groups {
		dates = append(dates, d)
	}
	slices.SortFunc(dates, Date.Compare)
	return dates
}

// Month is the calendar layout of one month with per-day entry counts.
type Month struct {
	Year  int
	Month time.Month
	// Offset is the weekday of the 1st, Sunday = 0.
	Offset int
	// Counts[i] is the number of entries on day i+1.
	Counts []int
}

// MonthGrid builds the layout for year/month from grouped entries.
func MonthGrid(groups map[Date][]store.Entry, year int, month time.Month) Month {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()

	m := Month{Year: year, Month: month, Offset: int(first.Weekday()), Counts: make([]int, days)}
	for i := range m.Counts {
		m.Counts[i] = len(groups[Date{Year: year, Month: month, Day: i + 1}])
	}
	return m
}

// Weeks lays the days out in Sunday-first rows. Blank cells are 0.
func (m Month) Weeks() [][7]int {
	var weeks [][7]int
	var week [7]int
	col := m.Offset
	for day := 1; day <= len(m.Counts); day++ {
		week[col] = day
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week, col = [7]int{}, 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}

// Prev returns the previous month.
func (m Month) Prev() (int, time.Month) {
	t := time.Date(m.Year, m.Month-1, 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

// Next returns the following month.
func (m Month) Next() (int, time.Month) {
	t := time.Date(m.Year, m.Month+1, 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

// FormatTimestamp renders an entry timestamp the way entry cards show it.
func FormatTimestamp(ts int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(ts).In(loc).Format("02 Jan, 2006, 03:04 PM")
}
