package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"ticket-booking/constants"
	bookingModel "ticket-booking/models/booking"
	fraudModel "ticket-booking/models/fraud"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreDefaultsWhenEmpty(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	assert.Empty(t, store.FraudRecords())
	assert.Empty(t, store.PendingBookings())
	assert.Empty(t, store.VerifiedBookings())
}

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	pending := []bookingModel.PendingBooking{{
		BookingID:          "EW00000001",
		Name:               "Alice Roy",
		Phone:              "9812345670",
		Email:              "alice@example.com",
		Plan:               "Standard",
		Tickets:            2,
		TotalAmount:        2000,
		TransactionID:      "TXN12345678",
		SubmittedAt:        time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
		VerificationStatus: bookingModel.VerificationPending,
	}}
	require.NoError(t, store.SavePendingBookings(pending))

	blockedUntil := time.Date(2026, 2, 1, 20, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveFraudRecords(fraudModel.Records{
		"9812345670": {FalseClaimsCount: 2, BlockedUntil: &blockedUntil},
	}))

	// A fresh store over the same directory sees the same data.
	reopened, err := NewFileStore(dir)
	require.NoError(t, err)

	got := reopened.PendingBookings()
	require.Len(t, got, 1)
	assert.Equal(t, pending[0].BookingID, got[0].BookingID)
	assert.Equal(t, pending[0].VerificationStatus, got[0].VerificationStatus)
	assert.True(t, got[0].SubmittedAt.Equal(pending[0].SubmittedAt))

	records := reopened.FraudRecords()
	require.Contains(t, records, "9812345670")
	assert.Equal(t, 2, records["9812345670"].FalseClaimsCount)
	require.NotNil(t, records["9812345670"].BlockedUntil)
	assert.True(t, records["9812345670"].BlockedUntil.Equal(blockedUntil))
}

func TestFileStoreCorruptValueFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	for _, key := range []string{
		constants.FraudDataKey,
		constants.PendingBookingsKey,
		constants.VerifiedBookingsKey,
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, key+".json"), []byte("{not json"), 0o644))
	}

	assert.Empty(t, store.FraudRecords())
	assert.Empty(t, store.PendingBookings())
	assert.Empty(t, store.VerifiedBookings())

	// Writing over a corrupt value repairs the collection.
	require.NoError(t, store.SavePendingBookings([]bookingModel.PendingBooking{{BookingID: "EW00000009"}}))
	assert.Len(t, store.PendingBookings(), 1)
}
