package insights

import (
	"slices"
	"strings"

	"github.com/matheus3301/minda/internal/store"
)

// UnknownMood is shown for entries without a mood.
const UnknownMood = "❓"

// Moods is the canonical mood set, in display order.
var Moods = []string{"😀", "😢", "😡", "😴", "🤩", "🤯"}

// MoodLabel returns the display label for a mood tag.
func MoodLabel(mood string) string {
	if strings.TrimSpace(mood) == "" {
		return UnknownMood
	}
	return mood
}

// MoodCounts tallies entries per mood. Blank moods share the "" bucket.
func MoodCounts(entries []store.Entry) map[string]int {
	counts := make(map[string]int)
	for _, e := range entries {
		mood := e.Mood
		if strings.TrimSpace(mood) == "" {
			mood = ""
		}
		counts[mood]++
	}
	return counts
}

// Bar is one row of the mood chart.
type Bar struct {
	Mood     string
	Label    string
	Count    int
	Fraction float64
}

// Bars scales a histogram against its largest bucket. Rows are sorted by
// count, highest first; ties follow the canonical mood order, then other
// moods, with unknown last.
func Bars(counts map[string]int) []Bar {
	if len(counts) == 0 {
		return nil
	}
	maxCount := 0
	for _, c := range counts {
		maxCount = max(maxCount, c)
	}

	bars := make([]Bar, 0, len(counts))
	for mood, c := range counts {
		b := Bar{Mood: mood, Label: MoodLabel(mood), Count: c}
		if maxCount > 0 {
			b.Fraction = float64(c) / float64(maxCount)
		}
		bars = append(bars, b)
	}
	slices.SortFunc(bars, func(a, b Bar) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		ra, rb := moodRank(a.Mood), moodRank(b.Mood)
		if ra != rb {
			return ra - rb
		}
		return strings.Compare(a.Mood, b.Mood)
	})
	return bars
}

func moodRank(mood string) int {
	if mood == "" {
		return len(Moods) + 1
	}
	if i := slices.Index(Moods, mood); i >= 0 {
		return i
	}
	return len(Moods)
}
