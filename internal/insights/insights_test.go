package insights

import (
	"strings"
	"testing"
	"time"

	"github.com/matheus3301/minda/internal/store"
)

func titles(entries []store.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Title
	}
	return out
}

func TestFilterBlankQueryIsIdentity(t *testing.T) {
	entries := []store.Entry{{ID: 2, Title: "b"}, {ID: 1, Title: "a"}}
	for _, q := range []string{"", "   ", "\t\n"} {
		got := Filter(entries, q)
		if len(got) != len(entries) || &got[0] != &entries[0] {
			t.Errorf("Filter(%q) did not return the input unchanged", q)
		}
	}
}

func TestFilter(t *testing.T) {
	entries := []store.Entry{
		{ID: 4, Title: "Morning Run", Content: "legs tired"},
		{ID: 3, Title: "Lunch", Content: "Ramen with a friend"},
		{ID: 2, Title: "Straße", Content: "walked home"},
		{ID: 1, Title: "Evening", Content: "RAN some errands"},
	}
	tests := []struct {
		query string
		want  []string
	}{
		{"run", []string{"Morning Run"}},
		{"RA", []string{"Lunch", "Straße", "Evening"}},
		{"friend", []string{"Lunch"}},
		{"STRASSE", []string{"Straße"}},
		{"nothing", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := titles(Filter(entries, tt.query))
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("Filter(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestGroupByDateIsPartition(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*60*60)
	base := time.Date(2024, 3, 10, 0, 0, 0, 0, loc)
	entries := []store.Entry{
		{ID: 5, Title: "late", Timestamp: base.Add(23*time.Hour + 59*time.Minute).UnixMilli()},
		{ID: 4, Title: "early", Timestamp: base.Add(time.Minute).UnixMilli()},
		// 23:30 on the 9th in UTC+7 is still the 9th there.
		{ID: 3, Title: "prev", Timestamp: base.Add(-30 * time.Minute).UnixMilli()},
		{ID: 2, Title: "same title", Timestamp: base.AddDate(0, 0, -5).UnixMilli()},
		{ID: 1, Title: "same title", Timestamp: base.AddDate(0, 0, -6).UnixMilli()},
	}

	groups := GroupByDate(entries, loc)

	total := 0
	seen := map[int64]bool{}
	for d, bucket := range groups {
		if len(bucket) == 0 {
			t.Errorf("empty bucket for %s", d)
		}
		for _, e := range bucket {
			if seen[e.ID] {
				t.Errorf("entry %d in more than one bucket", e.ID)
			}
			seen[e.ID] = true
			if EntryDate(e, loc) != d {
				t.Errorf("entry %d filed under %s", e.ID, d)
			}
		}
		total += len(bucket)
	}
	if total != len(entries) {
		t.Errorf("buckets hold %d entries, want %d", total, len(entries))
	}

	day := groups[Date{2024, time.March, 10}]
	if got := titles(day); len(got) != 2 || got[0] != "late" || got[1] != "early" {
		t.Errorf("March 10 = %v, want [late early]", got)
	}
	if got := groups[Date{2024, time.March, 9}]; len(got) != 1 || got[0].ID != 3 {
		t.Errorf("March 9 = %v, want entry 3", got)
	}

	dates := Dates(groups)
	want := []string{"2024-03-04", "2024-03-05", "2024-03-09", "2024-03-10"}
	if len(dates) != len(want) {
		t.Fatalf("Dates = %v", dates)
	}
	for i := range want {
		if dates[i].String() != want[i] {
			t.Errorf("Dates[%d] = %s, want %s", i, dates[i], want[i])
		}
	}
}

func TestSummarize(t *testing.T) {
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour
	entries := []store.Entry{
		{Timestamp: now.UnixMilli()},
		{Timestamp: now.Add(-day).UnixMilli()},
		{Timestamp: now.Add(-8 * day).UnixMilli()},
	}
	got := Summarize(entries, now)
	if got.Total != 3 || got.LastSevenDays != 2 {
		t.Errorf("Summarize = %+v, want {Total:3 LastSevenDays:2}", got)
	}

	// Exactly seven days old is outside the window.
	edge := []store.Entry{{Timestamp: now.Add(-Week).UnixMilli()}, {Timestamp: now.Add(-Week).UnixMilli() + 1}}
	if got := Summarize(edge, now); got.LastSevenDays != 1 {
		t.Errorf("boundary LastSevenDays = %d, want 1", got.LastSevenDays)
	}

	if got := Summarize(nil, now); got != (Summary{}) {
		t.Errorf("Summarize(nil) = %+v", got)
	}
}

func TestMoodCountsAndBars(t *testing.T) {
	counts := MoodCounts([]store.Entry{{Mood: "😀"}, {Mood: "😀"}, {Mood: ""}})
	if len(counts) != 2 || counts["😀"] != 2 || counts[""] != 1 {
		t.Fatalf("MoodCounts = %v, want map[😀:2 :1]", counts)
	}

	bars := Bars(counts)
	if len(bars) != 2 {
		t.Fatalf("Bars = %+v", bars)
	}
	if bars[0].Mood != "😀" || bars[0].Fraction != 1.0 {
		t.Errorf("first bar = %+v, want 😀 at 1.0", bars[0])
	}
	if bars[1].Mood != "" || bars[1].Label != UnknownMood || bars[1].Fraction != 0.5 {
		t.Errorf("second bar = %+v, want unknown at 0.5", bars[1])
	}
}

func TestMoodCountsFoldsWhitespaceIntoUnknown(t *testing.T) {
	counts := MoodCounts([]store.Entry{{Mood: " "}, {Mood: ""}, {Mood: "🤩"}})
	if counts[""] != 2 || counts["🤩"] != 1 || len(counts) != 2 {
		t.Errorf("MoodCounts = %v", counts)
	}
}

func TestBarsOrdering(t *testing.T) {
	bars := Bars(map[string]int{"🤯": 3, "😢": 3, "🙂": 3, "": 3, "😀": 1})
	var got []string
	for _, b := range bars {
		got = append(got, b.Label)
	}
	want := []string{"😢", "🤯", "🙂", UnknownMood, "😀"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("order = %v, want %v", got, want)
	}
	if bars[4].Fraction != 1.0/3.0 {
		t.Errorf("fraction = %v, want 1/3", bars[4].Fraction)
	}
}

func TestBarsEmptyAndZero(t *testing.T) {
	if bars := Bars(nil); len(bars) != 0 {
		t.Errorf("Bars(nil) = %+v, want none", bars)
	}
	bars := Bars(map[string]int{"😀": 0})
	if len(bars) != 1 || bars[0].Fraction != 0 {
		t.Errorf("Bars(zero) = %+v, want fraction 0", bars)
	}
}

func TestMoodLabel(t *testing.T) {
	if MoodLabel("") != UnknownMood || MoodLabel("  ") != UnknownMood {
		t.Error("blank mood should render as unknown")
	}
	if MoodLabel("😴") != "😴" {
		t.Error("mood should render as itself")
	}
}

func TestPreview(t *testing.T) {
	short := "hello"
	if got := Preview(short); got != short {
		t.Errorf("Preview(short) = %q", got)
	}

	exact := strings.Repeat("a", PreviewLength)
	if got := Preview(exact); got != exact {
		t.Errorf("Preview(exact) was cut")
	}

	long := strings.Repeat("a", PreviewLength+1)
	if got := Preview(long); got != strings.Repeat("a", PreviewLength)+"..." {
		t.Errorf("Preview(long) = %q", got)
	}

	// Family emoji is one character built from several code points.
	family := "👨‍👩‍👧"
	emoji := strings.Repeat(family, PreviewLength+5)
	got := Preview(emoji)
	if got != strings.Repeat(family, PreviewLength)+"..." {
		t.Errorf("Preview split a multi-code-point character: %q", got)
	}
}

func TestMonthGrid(t *testing.T) {
	groups := map[Date][]store.Entry{
		{2024, time.February, 1}:  {{ID: 1}},
		{2024, time.February, 29}: {{ID: 2}, {ID: 3}},
		{2024, time.March, 1}:     {{ID: 4}},
	}
	m := MonthGrid(groups, 2024, time.February)
	if len(m.Counts) != 29 {
		t.Fatalf("days = %d, want 29 (leap year)", len(m.Counts))
	}
	if m.Offset != int(time.Thursday) {
		t.Errorf("offset = %d, want Thursday", m.Offset)
	}
	if m.Counts[0] != 1 || m.Counts[28] != 2 || m.Counts[10] != 0 {
		t.Errorf("counts = %v", m.Counts)
	}

	weeks := m.Weeks()
	if len(weeks) != 5 {
		t.Fatalf("weeks = %d, want 5", len(weeks))
	}
	if weeks[0][3] != 0 || weeks[0][4] != 1 {
		t.Errorf("first week = %v", weeks[0])
	}
	if weeks[4][4] != 29 || weeks[4][5] != 0 {
		t.Errorf("last week = %v", weeks[4])
	}

	if y, mo := m.Prev(); y != 2024 || mo != time.January {
		t.Errorf("Prev = %d-%v", y, mo)
	}
	jan := MonthGrid(nil, 2025, time.January)
	if y, mo := jan.Prev(); y != 2024 || mo != time.December {
		t.Errorf("Prev across year = %d-%v", y, mo)
	}
	dec := MonthGrid(nil, 2024, time.December)
	if y, mo := dec.Next(); y != 2025 || mo != time.January {
		t.Errorf("Next across year = %d-%v", y, mo)
	}
}

func TestParseDateAndFormat(t *testing.T) {
	d, err := ParseDate("2024-07-04")
	if err != nil {
		t.Fatal(err)
	}
	if d != (Date{2024, time.July, 4}) {
		t.Errorf("ParseDate = %+v", d)
	}
	if _, err := ParseDate("July 4"); err == nil {
		t.Error("expected error for malformed date")
	}

	ts := time.Date(2024, 7, 4, 15, 4, 0, 0, time.UTC).UnixMilli()
	if got := FormatTimestamp(ts, time.UTC); got != "04 Jul, 2024, 03:04 PM" {
		t.Errorf("FormatTimestamp = %q", got)
	}
}
