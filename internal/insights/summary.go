package insights

import (
	"time"

	"github.com/matheus3301/minda/internal/store"
)

// Week is the window counted by Summary.LastSevenDays.
const Week = 7 * 24 * time.Hour

// Summary holds headline numbers for the insights screen.
type Summary struct {
	Total         int
	LastSevenDays int
}

// Summarize counts all entries and those written strictly within the last
// seven days before now. An entry exactly seven days old is excluded.
func Summarize(entries []store.Entry, now time.Time) Summary {
	cutoff := now.UnixMilli() - Week.Milliseconds()
	s := Summary{Total: len(entries)}
	for _, e := range entries {
		if e.Timestamp > cutoff {
			s.LastSevenDays++
		}
	}
	return s
}
