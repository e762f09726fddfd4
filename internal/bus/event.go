package bus

import "time"

// Event kinds published by the stores.
const (
	KindEntriesChanged = "entries.changed"
	KindPrefChanged    = "prefs.changed."
	KindStatusChanged  = "daemon.status_changed"
)

// Event represents a domain event published on the bus.
type Event struct {
	Kind      string
	Timestamp time.Time
	Payload   any
}
