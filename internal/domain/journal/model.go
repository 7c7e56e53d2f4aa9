package journal

import (
	"fmt"
	"time"
)

// EntryType represents the kind of roster change recorded.
type EntryType string

const (
	TypeSignup  EntryType = "signup"
	TypeRemoval EntryType = "removal"
)

// Valid reports whether t is a known entry type.
func (t EntryType) Valid() bool {
	return t == TypeSignup || t == TypeRemoval
}

// ParseEntryType parses a type filter. An empty string means no filter.
func ParseEntryType(s string) (*EntryType, error) {
	if s == "" {
		return nil, nil
	}
	t := EntryType(s)
	if !t.Valid() {
		return nil, fmt.Errorf("%w: unknown entry type %q", ErrInvalidInput, s)
	}
	return &t, nil
}

// Entry is one roster change in the journal.
type Entry struct {
	ID        string    `json:"id"`
	Activity  string    `json:"activity"`
	Email     string    `json:"email"`
	Type      EntryType `json:"type"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}
