package bookingflow

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ErrSessionLost signals an operation against a session the machine no
// longer holds (page reload, expiry cleanup, bad id). Callers reset to the
// initial state.
var ErrSessionLost = errors.New("booking session not found")

// ErrInvalidTransition signals a user action that is not legal in the
// session's current state.
var ErrInvalidTransition = errors.New("action not allowed in current booking state")

// ValidationError carries per-field messages; the failed transition leaves
// the session untouched and may be retried in place.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("validation failed: %s", strings.Join(keys, ", "))
}

// DuplicateBookingError is terminal for the current attempt; the visitor
// must wait for verification or use the existing booking.
type DuplicateBookingError struct {
	Type      string
	BookingID string
	Message   string
}

func (e *DuplicateBookingError) Error() string {
	return e.Message
}

// FraudBlockError is terminal until the block window passes.
type FraudBlockError struct {
	Message       string
	RemainingTime string
	BlockedUntil  time.Time
}

func (e *FraudBlockError) Error() string {
	return e.Message
}
