package duplicate

import (
	"testing"
	"time"

	bookingModel "ticket-booking/models/booking"
	"ticket-booking/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChecker(t *testing.T) (*Checker, storage.Store) {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return NewChecker(store), store
}

func pendingBooking(id, phone, email string, status bookingModel.VerificationStatus) bookingModel.PendingBooking {
	return bookingModel.PendingBooking{
		BookingID:          id,
		Name:               "Alice Roy",
		Email:              email,
		Phone:              phone,
		Plan:               "Standard",
		Tickets:            1,
		TotalAmount:        1000,
		TransactionID:      "TXN12345678",
		SubmittedAt:        time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
		VerificationStatus: status,
	}
}

func TestCheckNoMatch(t *testing.T) {
	checker, _ := newTestChecker(t)
	result := checker.Check("9812345670", "alice@example.com")
	assert.False(t, result.IsDuplicate)
	assert.Empty(t, result.Type)
}

func TestCheckMatchesPendingByPhoneOrEmail(t *testing.T) {
	checker, store := newTestChecker(t)
	require.NoError(t, store.SavePendingBookings([]bookingModel.PendingBooking{
		pendingBooking("EW00000001", "9812345670", "alice@example.com", bookingModel.VerificationPending),
	}))

	byPhone := checker.Check("9812345670", "other@example.com")
	require.True(t, byPhone.IsDuplicate)
	assert.Equal(t, "pending", byPhone.Type)
	assert.Equal(t, "EW00000001", byPhone.BookingID)
	assert.Contains(t, byPhone.Message, "pending booking (#EW00000001)")

	byEmail := checker.Check("9899999999", "alice@example.com")
	require.True(t, byEmail.IsDuplicate)
	assert.Equal(t, "pending", byEmail.Type)
}

func TestCheckPendingTakesPriorityOverVerified(t *testing.T) {
	checker, store := newTestChecker(t)
	require.NoError(t, store.SavePendingBookings([]bookingModel.PendingBooking{
		pendingBooking("EW00000002", "9812345670", "alice@example.com", bookingModel.VerificationPending),
	}))
	require.NoError(t, store.SaveVerifiedBookings([]bookingModel.VerifiedBooking{
		{BookingID: "EW00000001", Phone: "9812345670", Email: "alice@example.com"},
	}))

	result := checker.Check("9812345670", "alice@example.com")
	require.True(t, result.IsDuplicate)
	assert.Equal(t, "pending", result.Type)
	assert.Equal(t, "EW00000002", result.BookingID)
}

func TestCheckIgnoresRejectedPending(t *testing.T) {
	checker, store := newTestChecker(t)
	require.NoError(t, store.SavePendingBookings([]bookingModel.PendingBooking{
		pendingBooking("EW00000003", "9812345670", "alice@example.com", bookingModel.VerificationRejected),
	}))

	result := checker.Check("9812345670", "alice@example.com")
	assert.False(t, result.IsDuplicate)
}

func TestCheckMatchesVerified(t *testing.T) {
	checker, store := newTestChecker(t)
	require.NoError(t, store.SaveVerifiedBookings([]bookingModel.VerifiedBooking{
		{BookingID: "EW00000004", Phone: "9812345670", Email: "alice@example.com"},
	}))

	result := checker.Check("9812345670", "someone@else.com")
	require.True(t, result.IsDuplicate)
	assert.Equal(t, "verified", result.Type)
	assert.Contains(t, result.Message, "Each person can only book once")
}
