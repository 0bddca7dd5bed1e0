package fraud

import (
	"fmt"
	"time"

	"ticket-booking/logger"
	fraudModel "ticket-booking/models/fraud"
	"ticket-booking/storage"
)

// Guard tracks false payment claims per identifier (phone or email) and
// decides block status. Thresholds are per-identifier, not per-device, so
// repeating a false claim requires churning through distinct phone/email
// pairs. A soft deterrent only; whoever controls the store controls the
// score.
type Guard struct {
	Store storage.Store

	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

// NewGuard creates a fraud guard over the given record store.
func NewGuard(store storage.Store) *Guard {
	return &Guard{
		Store: store,
		Now:   time.Now,
	}
}

// BlockStatus reports whether an identifier is currently blocked.
type BlockStatus struct {
	Blocked       bool       `json:"blocked"`
	RemainingTime string     `json:"remaining_time,omitempty"` // "3h 25m"
	BlockedUntil  *time.Time `json:"blocked_until,omitempty"`
}

// IsBlocked computes the block status for an identifier. Reading an expired
// block deletes the record as a side effect, so a second call after expiry
// finds nothing and reports not-blocked with no further writes.
func (g *Guard) IsBlocked(identifier string) BlockStatus {
	records := g.Store.FraudRecords()
	record, ok := records[identifier]
	if !ok || record.BlockedUntil == nil {
		return BlockStatus{Blocked: false}
	}

	now := g.Now()
	if record.IsCurrentlyBlocked(now) {
		remaining := record.BlockedUntil.Sub(now)
		return BlockStatus{
			Blocked:       true,
			RemainingTime: formatRemaining(remaining),
			BlockedUntil:  record.BlockedUntil,
		}
	}

	// Block expired, reset
	delete(records, identifier)
	if err := g.Store.SaveFraudRecords(records); err != nil {
		logger.Error(fmt.Sprintf("Failed to clear expired block for %s", identifier), err)
	}
	return BlockStatus{Blocked: false}
}

// RecordFalseAttempt appends an attempt log for the identifier, increments
// its claim counter and persists before returning the new count. The block
// window opens from the attempt that reaches the threshold.
func (g *Guard) RecordFalseAttempt(identifier string, snapshot fraudModel.AttemptLog) (int, error) {
	records := g.Store.FraudRecords()

	record, ok := records[identifier]
	if !ok {
		record = &fraudModel.Record{}
		records[identifier] = record
	}

	if snapshot.Timestamp.IsZero() {
		snapshot.Timestamp = g.Now()
	}
	record.RecordAttempt(snapshot)

	if record.BlockedUntil != nil {
		logger.Warning(fmt.Sprintf("User %s has been blocked until %s",
			identifier, record.BlockedUntil.Format(time.RFC3339)))
	}

	if err := g.Store.SaveFraudRecords(records); err != nil {
		return 0, fmt.Errorf("failed to persist fraud record: %w", err)
	}
	return record.FalseClaimsCount, nil
}

// FalseAttemptCount is a pure read of the identifier's claim counter, used
// for warning banners.
func (g *Guard) FalseAttemptCount(identifier string) int {
	records := g.Store.FraudRecords()
	if record, ok := records[identifier]; ok {
		return record.FalseClaimsCount
	}
	return 0
}

// Reset deletes the identifier's fraud record entirely. Invoked once an
// admin confirms a real payment.
func (g *Guard) Reset(identifier string) error {
	records := g.Store.FraudRecords()
	if _, ok := records[identifier]; !ok {
		return nil
	}
	delete(records, identifier)
	return g.Store.SaveFraudRecords(records)
}

// formatRemaining renders a block's remaining window as "3h 25m". Hours are
// rounded up, minutes are the rounded-up total modulo 60, matching the
// original arithmetic (a full 8h block reads "8h 0m").
func formatRemaining(d time.Duration) string {
	ms := d.Milliseconds()
	hours := (ms + 3600_000 - 1) / 3600_000
	mins := ((ms + 60_000 - 1) / 60_000) % 60
	return fmt.Sprintf("%dh %dm", hours, mins)
}
