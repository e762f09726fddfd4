package diary

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/matheus3301/minda/internal/store"
)

// ErrValidation is returned for entries that must not be persisted.
var ErrValidation = errors.New("invalid entry")

// DefaultMood is preselected for new entries.
const DefaultMood = "😀"

// Validate rejects entries with a blank title or blank content.
func Validate(e store.Entry) error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(e.Content) == "" {
		return fmt.Errorf("%w: content is required", ErrValidation)
	}
	return nil
}

// SampleEntry is the placeholder written into an empty diary.
func SampleEntry(now time.Time) store.Entry {
	return store.Entry{
		Title:     "Gratitude journal",
		Content:   "What am I thankful for today?\nWho made my day better?",
		Mood:      DefaultMood,
		Timestamp: now.UnixMilli(),
	}
}
