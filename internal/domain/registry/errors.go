package registry

import (
	"errors"
	"unicode"
	"unicode/utf8"
)

var (
	// ErrActivityNotFound indicates the activity doesn't exist.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrAlreadySignedUp indicates the email already holds a spot in some activity.
	ErrAlreadySignedUp = errors.New("student is already signed up")
	// ErrNotSignedUp indicates the email is not on the activity's roster.
	ErrNotSignedUp = errors.New("student is not signed up for this activity")
	// ErrActivityFull indicates the activity has reached its capacity.
	ErrActivityFull = errors.New("activity is full")
	// ErrInvalidInput indicates a missing or blank email or activity name.
	ErrInvalidInput = errors.New("email is required")
	// ErrInvalidActivities indicates a seed set that breaks registry invariants.
	ErrInvalidActivities = errors.New("invalid activities")
)

// Outcome classifies an operation error for metrics and logs.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrActivityNotFound):
		return "not_found"
	case errors.Is(err, ErrAlreadySignedUp), errors.Is(err, ErrNotSignedUp), errors.Is(err, ErrActivityFull):
		return "rejected"
	case errors.Is(err, ErrInvalidInput):
		return "invalid"
	default:
		return "error"
	}
}

// Detail renders an error as the human-readable text returned to clients.
func Detail(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	r, size := utf8.DecodeRuneInString(msg)
	if r == utf8.RuneError {
		return msg
	}
	return string(unicode.ToUpper(r)) + msg[size:]
}
