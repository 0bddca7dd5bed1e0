package bookingflow

import (
	"strings"
	"testing"
	"time"

	"ticket-booking/constants"
	emailService "ticket-booking/httpServices/email"
	bookingModel "ticket-booking/models/booking"
	fraudModel "ticket-booking/models/fraud"
	"ticket-booking/services/duplicate"
	"ticket-booking/services/fraud"
	"ticket-booking/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockNotifier struct {
	sent chan emailService.TemplateParams
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{sent: make(chan emailService.TemplateParams, 1)}
}

func (m *mockNotifier) SendBookingEmail(params emailService.TemplateParams) error {
	m.sent <- params
	return nil
}

func (m *mockNotifier) wait(t *testing.T) emailService.TemplateParams {
	t.Helper()
	select {
	case params := <-m.sent:
		return params
	case <-time.After(time.Second):
		t.Fatal("no email delivered")
		return emailService.TemplateParams{}
	}
}

// newTestMachine disables the artificial delay and the countdown goroutine
// so transitions are synchronous and ticks are driven by the test.
func newTestMachine(t *testing.T) (*Machine, storage.Store) {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	clock := func() time.Time { return time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC) }
	guard := fraud.NewGuard(store)
	guard.Now = clock

	machine := NewMachine(store, guard, duplicate.NewChecker(store))
	machine.ValidationDelay = 0
	machine.TickInterval = 0
	machine.Now = clock
	return machine, store
}

func startSession(t *testing.T, m *Machine) *View {
	t.Helper()
	view, contact, err := m.SelectPlan("standard", 1000)
	require.NoError(t, err)
	require.Nil(t, contact)
	require.Equal(t, bookingModel.StatusPlanSelected, view.Status)
	return view
}

func reachPayment(t *testing.T, m *Machine, sessionID string) *View {
	t.Helper()
	view, err := m.SubmitDetails(sessionID, "Alice Roy", "alice@example.com", "9812345670", 2)
	require.NoError(t, err)
	require.Equal(t, bookingModel.StatusAwaitingPayment, view.Status)
	return view
}

func TestGroupPlanReturnsContactOptions(t *testing.T) {
	m, _ := newTestMachine(t)

	view, contact, err := m.SelectPlan("group", 0)
	require.NoError(t, err)
	assert.Nil(t, view)
	require.NotNil(t, contact)
	assert.Contains(t, contact.EmailAction, "mailto:"+constants.GroupContactEmail)
	assert.Equal(t, "tel:"+constants.GroupContactPhone, contact.PhoneAction)
	assert.Equal(t, constants.GroupMinPeople, contact.MinimumGroup)
}

func TestSubmitDetailsValidation(t *testing.T) {
	tests := []struct {
		name    string
		contact [3]string // name, email, phone
		tickets int
		field   string
	}{
		{"short name", [3]string{"Al", "a@b.com", "9812345670"}, 1, "name"},
		{"digits in name", [3]string{"Alice 2", "a@b.com", "9812345670"}, 1, "name"},
		{"bad email", [3]string{"Alice Roy", "a@b", "9812345670"}, 1, "email"},
		{"bad phone prefix", [3]string{"Alice Roy", "a@b.com", "5123456789"}, 1, "phone"},
		{"short phone", [3]string{"Alice Roy", "a@b.com", "981234567"}, 1, "phone"},
		{"zero tickets", [3]string{"Alice Roy", "a@b.com", "9812345670"}, 0, "tickets"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestMachine(t)
			session := startSession(t, m)

			_, err := m.SubmitDetails(session.SessionID, tt.contact[0], tt.contact[1], tt.contact[2], tt.tickets)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)

			// A failed submission leaves the session retryable.
			view, err := m.Status(session.SessionID)
			require.NoError(t, err)
			assert.Equal(t, bookingModel.StatusPlanSelected, view.Status)
		})
	}
}

func TestFullBookingFlow(t *testing.T) {
	m, store := newTestMachine(t)
	notifier := newMockNotifier()
	m.Notifier = notifier

	session := startSession(t, m)

	view := reachPayment(t, m, session.SessionID)
	assert.Equal(t, 2000, view.TotalAmount)
	assert.Equal(t, constants.PaymentWindowSeconds, view.Remaining)
	assert.Equal(t, bookingModel.UrgencyNormal, view.Urgency)

	result, err := m.ConfirmPayment(session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, bookingModel.StatusVerificationEntry, result.View.Status)
	assert.Zero(t, result.FalseAttempts)
	assert.Empty(t, result.Warning)

	pending, err := m.SubmitVerification(session.SessionID, "TXN12345678", "11:45", true)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(pending.BookingID, constants.BookingIDPrefix))
	assert.Equal(t, bookingModel.VerificationPending, pending.VerificationStatus)
	assert.Equal(t, "Standard", pending.Plan)
	assert.Equal(t, 2000, pending.TotalAmount)

	stored := store.PendingBookings()
	require.Len(t, stored, 1)
	assert.Equal(t, pending.BookingID, stored[0].BookingID)

	params := notifier.wait(t)
	assert.Equal(t, "Alice Roy", params.ToName)
	assert.Equal(t, "2,000", params.TotalAmount)
	assert.Equal(t, "Pending Verification", params.Status)
	assert.Equal(t, constants.EventDate, params.EventDate)

	view, err = m.Status(session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, bookingModel.StatusVerificationSubmitted, view.Status)
}

func TestSubmitVerificationRejectsShortTransactionID(t *testing.T) {
	m, _ := newTestMachine(t)
	session := startSession(t, m)
	reachPayment(t, m, session.SessionID)
	_, err := m.ConfirmPayment(session.SessionID)
	require.NoError(t, err)

	_, err = m.SubmitVerification(session.SessionID, "  TXN123  ", "", true)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "transaction_id")

	_, err = m.SubmitVerification(session.SessionID, "TXN12345678", "", false)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "confirmed")
}

func TestSubmitVerificationKeepsFreeTextPaymentTime(t *testing.T) {
	m, _ := newTestMachine(t)
	session := startSession(t, m)
	reachPayment(t, m, session.SessionID)
	_, err := m.ConfirmPayment(session.SessionID)
	require.NoError(t, err)

	pending, err := m.SubmitVerification(session.SessionID, "TXN12345678", "around noon", true)
	require.NoError(t, err)
	assert.Equal(t, "around noon", pending.PaymentTime)

	view, err := m.Status(session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, bookingModel.StatusVerificationSubmitted, view.Status)
}

func TestDuplicatePendingRejectsSession(t *testing.T) {
	m, store := newTestMachine(t)
	require.NoError(t, store.SavePendingBookings([]bookingModel.PendingBooking{{
		BookingID:          "EW00000001",
		Phone:              "9812345670",
		Email:              "other@example.com",
		VerificationStatus: bookingModel.VerificationPending,
	}}))

	session := startSession(t, m)
	_, err := m.SubmitDetails(session.SessionID, "Alice Roy", "alice@example.com", "9812345670", 1)

	var derr *DuplicateBookingError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "pending", derr.Type)
	assert.Equal(t, "EW00000001", derr.BookingID)

	view, err := m.Status(session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, bookingModel.StatusRejected, view.Status)

	// Terminal: the contact form cannot be resubmitted.
	_, err = m.SubmitDetails(session.SessionID, "Alice Roy", "alice@example.com", "9899999999", 1)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestConfirmPaymentBlockedIdentifier(t *testing.T) {
	m, _ := newTestMachine(t)
	for i := 0; i < constants.MaxFalseAttempts; i++ {
		_, err := m.Guard.RecordFalseAttempt("9812345670", fraudModel.AttemptLog{
			Timestamp: m.Now(), Phone: "9812345670",
		})
		require.NoError(t, err)
	}

	session := startSession(t, m)
	reachPayment(t, m, session.SessionID)

	_, err := m.ConfirmPayment(session.SessionID)
	var ferr *FraudBlockError
	require.ErrorAs(t, err, &ferr)
	assert.Contains(t, ferr.Message, "temporarily blocked")
	assert.Equal(t, "8h 0m", ferr.RemainingTime)

	view, err := m.Status(session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, bookingModel.StatusBlocked, view.Status)
}

func TestConfirmPaymentWarnsAfterFalseClaim(t *testing.T) {
	m, _ := newTestMachine(t)
	_, err := m.Guard.RecordFalseAttempt("9812345670", fraudModel.AttemptLog{
		Timestamp: m.Now(), Phone: "9812345670",
	})
	require.NoError(t, err)

	session := startSession(t, m)
	reachPayment(t, m, session.SessionID)

	result, err := m.ConfirmPayment(session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.FalseAttempts)
	assert.Contains(t, result.Warning, "1 unverified payment claim")
}

func TestTickExpiresPaymentWindowExactlyOnce(t *testing.T) {
	m, _ := newTestMachine(t)
	session := startSession(t, m)
	reachPayment(t, m, session.SessionID)

	for i := 0; i < constants.PaymentWindowSeconds-1; i++ {
		require.False(t, m.Tick(session.SessionID), "tick %d should not expire", i)
	}

	view, err := m.Status(session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Remaining)
	assert.Equal(t, bookingModel.UrgencyCritical, view.Urgency)

	assert.True(t, m.Tick(session.SessionID))

	view, err = m.Status(session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, bookingModel.StatusExpired, view.Status)

	// Further ticks are no-ops against the terminal status.
	assert.True(t, m.Tick(session.SessionID))

	_, err = m.ConfirmPayment(session.SessionID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUrgencyTiers(t *testing.T) {
	m, _ := newTestMachine(t)
	session := startSession(t, m)
	reachPayment(t, m, session.SessionID)

	drainTo := func(target int) {
		for {
			view, err := m.Status(session.SessionID)
			require.NoError(t, err)
			if view.Remaining <= target {
				return
			}
			m.Tick(session.SessionID)
		}
	}

	drainTo(constants.TimerWarningThreshold)
	view, err := m.Status(session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, bookingModel.UrgencyWarning, view.Urgency)

	drainTo(constants.TimerCriticalThreshold)
	view, err = m.Status(session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, bookingModel.UrgencyCritical, view.Urgency)
}

func TestGoBackRestartsPaymentWindow(t *testing.T) {
	m, _ := newTestMachine(t)
	session := startSession(t, m)
	reachPayment(t, m, session.SessionID)

	for i := 0; i < 100; i++ {
		m.Tick(session.SessionID)
	}
	_, err := m.ConfirmPayment(session.SessionID)
	require.NoError(t, err)

	view, err := m.GoBack(session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, bookingModel.StatusAwaitingPayment, view.Status)
	assert.Equal(t, constants.PaymentWindowSeconds, view.Remaining)
}

func TestGoBackOnlyFromVerificationEntry(t *testing.T) {
	m, _ := newTestMachine(t)
	session := startSession(t, m)

	_, err := m.GoBack(session.SessionID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelOnlyFromPlanSelection(t *testing.T) {
	m, _ := newTestMachine(t)
	session := startSession(t, m)

	require.NoError(t, m.Cancel(session.SessionID))
	_, err := m.Status(session.SessionID)
	assert.ErrorIs(t, err, ErrSessionLost)

	session = startSession(t, m)
	reachPayment(t, m, session.SessionID)
	assert.ErrorIs(t, m.Cancel(session.SessionID), ErrInvalidTransition)
}

func TestUnknownSession(t *testing.T) {
	m, _ := newTestMachine(t)

	_, err := m.Status("missing")
	assert.ErrorIs(t, err, ErrSessionLost)
	_, err = m.SubmitDetails("missing", "Alice Roy", "a@b.com", "9812345670", 1)
	assert.ErrorIs(t, err, ErrSessionLost)
	_, err = m.ConfirmPayment("missing")
	assert.ErrorIs(t, err, ErrSessionLost)
}
