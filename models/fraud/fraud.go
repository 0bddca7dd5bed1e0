package fraud

import (
	"time"

	"ticket-booking/constants"
)

// AttemptLog is a snapshot of a booking attached to a false payment claim.
// Immutable once appended.
type AttemptLog struct {
	Timestamp time.Time `json:"timestamp"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Plan      string    `json:"plan"`
	Amount    int       `json:"amount"`
}

// Record tracks false payment claims for a single identifier (phone or email).
type Record struct {
	Attempts         []AttemptLog `json:"attempts"`
	FalseClaimsCount int          `json:"falseClaimsCount"`
	BlockedUntil     *time.Time   `json:"blockedUntil,omitempty"`
}

// Records is the fraud collection as persisted, keyed by identifier.
type Records map[string]*Record

// IsCurrentlyBlocked reports whether the record's block window is still open
// at the given instant.
func (r *Record) IsCurrentlyBlocked(at time.Time) bool {
	if r.BlockedUntil == nil {
		return false
	}
	return at.Before(*r.BlockedUntil)
}

// RecordAttempt appends an attempt log, bumps the claim counter and opens the
// block window once the counter reaches the configured threshold.
func (r *Record) RecordAttempt(log AttemptLog) {
	r.FalseClaimsCount++
	r.Attempts = append(r.Attempts, log)

	if r.FalseClaimsCount >= constants.MaxFalseAttempts {
		blockUntil := log.Timestamp.Add(constants.BlockDurationHours * time.Hour)
		r.BlockedUntil = &blockUntil
	}
}
