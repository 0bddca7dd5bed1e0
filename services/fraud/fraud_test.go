package fraud

import (
	"testing"
	"time"

	"ticket-booking/constants"
	fraudModel "ticket-booking/models/fraud"
	"ticket-booking/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGuard(t *testing.T, now time.Time) *Guard {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	guard := NewGuard(store)
	guard.Now = func() time.Time { return now }
	return guard
}

func TestRecordFalseAttemptBlocksAtThreshold(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	guard := newTestGuard(t, now)

	count, err := guard.RecordFalseAttempt("9812345670", fraudModel.AttemptLog{
		Name: "Alice Roy", Phone: "9812345670", Plan: "Standard", Amount: 1000,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.False(t, guard.IsBlocked("9812345670").Blocked)

	secondAt := now.Add(10 * time.Minute)
	count, err = guard.RecordFalseAttempt("9812345670", fraudModel.AttemptLog{
		Timestamp: secondAt,
		Name:      "Alice Roy", Phone: "9812345670", Plan: "Standard", Amount: 1000,
	})
	require.NoError(t, err)
	assert.Equal(t, constants.MaxFalseAttempts, count)

	status := guard.IsBlocked("9812345670")
	require.True(t, status.Blocked)
	require.NotNil(t, status.BlockedUntil)

	// The block window opens from the attempt that reached the threshold.
	wantUntil := secondAt.Add(constants.BlockDurationHours * time.Hour)
	assert.True(t, status.BlockedUntil.Equal(wantUntil),
		"blocked until %v, want %v", status.BlockedUntil, wantUntil)
}

func TestRemainingTimeFormat(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	guard := newTestGuard(t, now)

	for i := 0; i < constants.MaxFalseAttempts; i++ {
		_, err := guard.RecordFalseAttempt("9812345670", fraudModel.AttemptLog{Phone: "9812345670"})
		require.NoError(t, err)
	}

	assert.Equal(t, "8h 0m", guard.IsBlocked("9812345670").RemainingTime)

	// Hours round up, minutes are the rounded-up total mod 60, so 3h 25m
	// left reads as "4h 25m".
	guard.Now = func() time.Time { return now.Add(8*time.Hour - 3*time.Hour - 25*time.Minute) }
	assert.Equal(t, "4h 25m", guard.IsBlocked("9812345670").RemainingTime)
}

func TestExpiredBlockIsClearedLazily(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	guard := newTestGuard(t, now)

	for i := 0; i < constants.MaxFalseAttempts; i++ {
		_, err := guard.RecordFalseAttempt("user@example.com", fraudModel.AttemptLog{Email: "user@example.com"})
		require.NoError(t, err)
	}
	require.True(t, guard.IsBlocked("user@example.com").Blocked)

	// Past the window the read clears the record as a side effect.
	guard.Now = func() time.Time { return now.Add(constants.BlockDurationHours*time.Hour + time.Second) }
	assert.False(t, guard.IsBlocked("user@example.com").Blocked)

	_, exists := guard.Store.FraudRecords()["user@example.com"]
	assert.False(t, exists, "expired record should be deleted")
	assert.Equal(t, 0, guard.FalseAttemptCount("user@example.com"))

	// A second read after expiry is a no-op.
	assert.False(t, guard.IsBlocked("user@example.com").Blocked)
}

func TestResetClearsRecord(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	guard := newTestGuard(t, now)

	_, err := guard.RecordFalseAttempt("9812345670", fraudModel.AttemptLog{Phone: "9812345670"})
	require.NoError(t, err)
	require.Equal(t, 1, guard.FalseAttemptCount("9812345670"))

	require.NoError(t, guard.Reset("9812345670"))
	assert.Equal(t, 0, guard.FalseAttemptCount("9812345670"))

	// Resetting an unknown identifier is fine.
	require.NoError(t, guard.Reset("nobody"))
}
