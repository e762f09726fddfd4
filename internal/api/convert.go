package api

import (
	"fmt"
	"math"
	"time"

	"github.com/matheus3301/minda/internal/prefs"
	"github.com/matheus3301/minda/internal/store"
	"google.golang.org/protobuf/types/known/structpb"
)

// Entry fields on the wire. Integers travel as JSON numbers, exact up to 2^53.
const (
	fieldID        = "id"
	fieldTitle     = "title"
	fieldContent   = "content"
	fieldMood      = "mood"
	fieldTimestamp = "timestamp"
)

// EntryToStruct encodes an entry.
func EntryToStruct(e store.Entry) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldID:        structpb.NewNumberValue(float64(e.ID)),
		fieldTitle:     structpb.NewStringValue(e.Title),
		fieldContent:   structpb.NewStringValue(e.Content),
		fieldMood:      structpb.NewStringValue(e.Mood),
		fieldTimestamp: structpb.NewNumberValue(float64(e.Timestamp)),
	}}
}

// EntryFromStruct decodes an entry. Missing fields stay zero.
func EntryFromStruct(s *structpb.Struct) (store.Entry, error) {
	var e store.Entry
	var err error
	f := s.GetFields()
	if e.ID, err = intField(f, fieldID); err != nil {
		return store.Entry{}, err
	}
	if e.Timestamp, err = intField(f, fieldTimestamp); err != nil {
		return store.Entry{}, err
	}
	if e.Title, err = stringField(f, fieldTitle); err != nil {
		return store.Entry{}, err
	}
	if e.Content, err = stringField(f, fieldContent); err != nil {
		return store.Entry{}, err
	}
	if e.Mood, err = stringField(f, fieldMood); err != nil {
		return store.Entry{}, err
	}
	return e, nil
}

// EntriesToList encodes an ordered snapshot.
func EntriesToList(entries []store.Entry) *structpb.ListValue {
	values := make([]*structpb.Value, len(entries))
	for i, e := range entries {
		values[i] = structpb.NewStructValue(EntryToStruct(e))
	}
	return &structpb.ListValue{Values: values}
}

// EntriesFromList decodes an ordered snapshot, keeping its order.
func EntriesFromList(l *structpb.ListValue) ([]store.Entry, error) {
	entries := make([]store.Entry, 0, len(l.GetValues()))
	for i, v := range l.GetValues() {
		s := v.GetStructValue()
		if s == nil {
			return nil, fmt.Errorf("entry %d: not an object", i)
		}
		e, err := EntryFromStruct(s)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// WatchEnvelope wraps one snapshot pushed on a watch stream.
type WatchEnvelope struct {
	EventID    string
	OccurredAt time.Time
	Entries    []store.Entry
}

// ToStruct encodes the envelope.
func (w WatchEnvelope) ToStruct() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"event_id":            structpb.NewStringValue(w.EventID),
		"occurred_at_unix_ms": structpb.NewNumberValue(float64(w.OccurredAt.UnixMilli())),
		"entries":             structpb.NewListValue(EntriesToList(w.Entries)),
	}}
}

// WatchEnvelopeFromStruct decodes an envelope.
func WatchEnvelopeFromStruct(s *structpb.Struct) (WatchEnvelope, error) {
	f := s.GetFields()
	id, err := stringField(f, "event_id")
	if err != nil {
		return WatchEnvelope{}, err
	}
	ms, err := intField(f, "occurred_at_unix_ms")
	if err != nil {
		return WatchEnvelope{}, err
	}
	entries, err := EntriesFromList(f["entries"].GetListValue())
	if err != nil {
		return WatchEnvelope{}, err
	}
	return WatchEnvelope{EventID: id, OccurredAt: time.UnixMilli(ms), Entries: entries}, nil
}

// PreferencesToStruct encodes preferences. Unset values are null.
func PreferencesToStruct(p prefs.Preferences) *structpb.Struct {
	fields := map[string]*structpb.Value{
		prefs.KeyUserName:            structpb.NewNullValue(),
		prefs.KeyOnboardingCompleted: structpb.NewBoolValue(p.OnboardingCompleted),
		prefs.KeyDarkMode:            structpb.NewNullValue(),
	}
	if p.UserName != nil {
		fields[prefs.KeyUserName] = structpb.NewStringValue(*p.UserName)
	}
	if p.DarkMode != nil {
		fields[prefs.KeyDarkMode] = structpb.NewBoolValue(*p.DarkMode)
	}
	return &structpb.Struct{Fields: fields}
}

// PreferencesFromStruct decodes preferences.
func PreferencesFromStruct(s *structpb.Struct) (prefs.Preferences, error) {
	var p prefs.Preferences
	f := s.GetFields()
	switch v := f[prefs.KeyUserName].GetKind().(type) {
	case nil, *structpb.Value_NullValue:
	case *structpb.Value_StringValue:
		name := v.StringValue
		p.UserName = &name
	default:
		return prefs.Preferences{}, fmt.Errorf("%s: want string or null", prefs.KeyUserName)
	}
	switch v := f[prefs.KeyDarkMode].GetKind().(type) {
	case nil, *structpb.Value_NullValue:
	case *structpb.Value_BoolValue:
		dark := v.BoolValue
		p.DarkMode = &dark
	default:
		return prefs.Preferences{}, fmt.Errorf("%s: want bool or null", prefs.KeyDarkMode)
	}
	switch v := f[prefs.KeyOnboardingCompleted].GetKind().(type) {
	case nil:
	case *structpb.Value_BoolValue:
		p.OnboardingCompleted = v.BoolValue
	default:
		return prefs.Preferences{}, fmt.Errorf("%s: want bool", prefs.KeyOnboardingCompleted)
	}
	return p, nil
}

// DaemonStatus is the payload of Daemon.GetStatus.
type DaemonStatus struct {
	Profile    string `json:"profile"`
	Status     string `json:"status"`
	UptimeMs   int64  `json:"uptime_ms"`
	EntryCount int64  `json:"entry_count"`
}

// ToStruct encodes the status.
func (d DaemonStatus) ToStruct() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"profile":     structpb.NewStringValue(d.Profile),
		"status":      structpb.NewStringValue(d.Status),
		"uptime_ms":   structpb.NewNumberValue(float64(d.UptimeMs)),
		"entry_count": structpb.NewNumberValue(float64(d.EntryCount)),
	}}
}

// DaemonStatusFromStruct decodes a status.
func DaemonStatusFromStruct(s *structpb.Struct) (DaemonStatus, error) {
	var d DaemonStatus
	var err error
	f := s.GetFields()
	if d.Profile, err = stringField(f, "profile"); err != nil {
		return DaemonStatus{}, err
	}
	if d.Status, err = stringField(f, "status"); err != nil {
		return DaemonStatus{}, err
	}
	if d.UptimeMs, err = intField(f, "uptime_ms"); err != nil {
		return DaemonStatus{}, err
	}
	if d.EntryCount, err = intField(f, "entry_count"); err != nil {
		return DaemonStatus{}, err
	}
	return d, nil
}

func stringField(f map[string]*structpb.Value, name string) (string, error) {
	switch v := f[name].GetKind().(type) {
	case nil, *structpb.Value_NullValue:
		return "", nil
	case *structpb.Value_StringValue:
		return v.StringValue, nil
	default:
		return "", fmt.Errorf("%s: want string", name)
	}
}

func intField(f map[string]*structpb.Value, name string) (int64, error) {
	switch v := f[name].GetKind().(type) {
	case nil, *structpb.Value_NullValue:
		return 0, nil
	case *structpb.Value_NumberValue:
		n := v.NumberValue
		if n != math.Trunc(n) || math.Abs(n) > 1<<53 {
			return 0, fmt.Errorf("%s: %v is not an integer", name, n)
		}
		return int64(n), nil
	default:
		return 0, fmt.Errorf("%s: want number", name)
	}
}
