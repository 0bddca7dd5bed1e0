package bookingflow

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"ticket-booking/constants"
	emailService "ticket-booking/httpServices/email"
	"ticket-booking/logger"
	bookingModel "ticket-booking/models/booking"
	"ticket-booking/services/booking_event"
	"ticket-booking/services/duplicate"
	"ticket-booking/services/fraud"
	"ticket-booking/storage"
	"ticket-booking/utils"

	"github.com/google/uuid"
)

// Notifier delivers the booking receipt email. Delivery is fire-and-forget:
// the machine logs failures and never couples a transition to the result.
type Notifier interface {
	SendBookingEmail(params emailService.TemplateParams) error
}

// Machine drives the booking modal sequence: plan selection, contact
// details, the QR payment window with its countdown, the transaction
// verification form and the terminal outcomes. All transitions run to
// completion under one mutex; the per-second countdown goroutine is the only
// background activity per session.
type Machine struct {
	Store   storage.Store
	Guard   *fraud.Guard
	Checker *duplicate.Checker

	// Notifier and Events may be nil; both are best-effort collaborators.
	Notifier Notifier
	Events   *booking_event.Recorder

	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time

	// ValidationDelay is the artificial pause between the details form and
	// the QR view. TickInterval drives the countdown goroutine; zero
	// disables it so tests can call Tick directly.
	ValidationDelay time.Duration
	TickInterval    time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewMachine wires the machine with production timing defaults.
func NewMachine(store storage.Store, guard *fraud.Guard, checker *duplicate.Checker) *Machine {
	return &Machine{
		Store:           store,
		Guard:           guard,
		Checker:         checker,
		Now:             time.Now,
		ValidationDelay: time.Second,
		TickInterval:    time.Second,
		sessions:        make(map[string]*Session),
	}
}

// SelectPlan seeds a new session for the chosen plan. The group package
// never enters the state machine; the caller gets contact options instead.
func (m *Machine) SelectPlan(planID string, price int) (*View, *ContactOptions, error) {
	if planID == constants.PlanGroup {
		return nil, groupContactOptions(), nil
	}

	name, ok := constants.PlanNames[planID]
	if !ok {
		name = planID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	session := &Session{
		ID:          uuid.NewString(),
		PlanID:      planID,
		PlanName:    name,
		UnitPrice:   price,
		TicketCount: 1,
		Status:      bookingModel.StatusPlanSelected,
	}
	m.sessions[session.ID] = session

	m.Events.Record(snapshotOf(session, ""), "plan_selected", "booking-flow")

	return session.view(), nil, nil
}

// SubmitDetails validates the contact form, computes the total, runs the
// duplicate check and moves the session toward the payment window. Field
// failures reject the transition without touching session state.
func (m *Machine) SubmitDetails(sessionID, name, email, phone string, tickets int) (*View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionLost
	}
	if !session.Status.CanSubmitDetails() {
		return nil, ErrInvalidTransition
	}

	if verr := validateDetails(name, email, phone, tickets); verr != nil {
		return nil, verr
	}

	session.Name = strings.TrimSpace(name)
	session.Email = strings.TrimSpace(email)
	session.Phone = strings.TrimSpace(phone)
	session.TicketCount = tickets
	session.TotalAmount = session.UnitPrice * tickets

	if result := m.Checker.Check(session.Phone, session.Email); result.IsDuplicate {
		session.Status = bookingModel.StatusRejected
		m.stopCountdownLocked(session)
		m.Events.Record(snapshotOf(session, ""), "duplicate_rejected", "booking-flow")
		return nil, &DuplicateBookingError{
			Type:      result.Type,
			BookingID: result.BookingID,
			Message:   result.Message,
		}
	}

	session.Status = bookingModel.StatusValidating
	m.Events.Record(snapshotOf(session, ""), "details_submitted", "booking-flow")

	if m.ValidationDelay > 0 {
		id := session.ID
		time.AfterFunc(m.ValidationDelay, func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			m.activatePaymentLocked(id)
		})
	} else {
		m.activatePaymentLocked(session.ID)
	}

	return session.view(), nil
}

// activatePaymentLocked opens the QR payment window once the artificial
// validation pause elapses. Callers hold m.mu.
func (m *Machine) activatePaymentLocked(sessionID string) {
	session, ok := m.sessions[sessionID]
	if !ok || session.Status != bookingModel.StatusValidating {
		return
	}
	session.Status = bookingModel.StatusAwaitingPayment
	m.startCountdownLocked(session, constants.PaymentWindowSeconds)
}

// ConfirmPayment handles the "I have paid" claim: fraud-blocked identifiers
// hit a terminal wall, everyone else reaches the verification form with the
// countdown cancelled.
type ConfirmResult struct {
	View          *View  `json:"session"`
	FalseAttempts int    `json:"false_attempts"`
	Warning       string `json:"warning,omitempty"`
}

func (m *Machine) ConfirmPayment(sessionID string) (*ConfirmResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionLost
	}
	if !session.Status.CanConfirmPayment() {
		return nil, ErrInvalidTransition
	}

	identifier := session.Identifier()
	status := m.Guard.IsBlocked(identifier)
	if status.Blocked {
		session.Status = bookingModel.StatusBlocked
		m.stopCountdownLocked(session)
		m.Events.Record(snapshotOf(session, ""), "blocked", "booking-flow")

		blockedUntil := time.Time{}
		if status.BlockedUntil != nil {
			blockedUntil = *status.BlockedUntil
		}
		return nil, &FraudBlockError{
			Message: fmt.Sprintf("Your account has been temporarily blocked due to suspicious activity. "+
				"You will be unblocked at: %s. Remaining time: %s",
				blockedUntil.Format("02 Jan 2006 15:04"), status.RemainingTime),
			RemainingTime: status.RemainingTime,
			BlockedUntil:  blockedUntil,
		}
	}

	// The payment window is considered consumed; the countdown is not
	// restarted for the verification form.
	m.stopCountdownLocked(session)
	session.Status = bookingModel.StatusVerificationEntry
	m.Events.Record(snapshotOf(session, ""), "payment_confirmed", "booking-flow")

	result := &ConfirmResult{
		View:          session.view(),
		FalseAttempts: m.Guard.FalseAttemptCount(identifier),
	}
	if result.FalseAttempts > 0 {
		result.Warning = fmt.Sprintf("Warning: You have %d unverified payment claim(s). "+
			"After %d false claims, you will be blocked for %d hours.",
			result.FalseAttempts, constants.MaxFalseAttempts, constants.BlockDurationHours)
	}
	return result, nil
}

// SubmitVerification accepts the transaction reference form, persists the
// pending booking and fires the receipt email. Email failures are logged
// and never fail the submission.
func (m *Machine) SubmitVerification(sessionID, transactionID, paymentTime string, confirmed bool) (*bookingModel.PendingBooking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionLost
	}
	if !session.Status.CanSubmitVerification() {
		return nil, ErrInvalidTransition
	}

	transactionID = strings.TrimSpace(transactionID)
	if len(transactionID) < constants.MinTransactionIDLength {
		return nil, &ValidationError{Fields: map[string]string{
			"transaction_id": fmt.Sprintf("Please enter a valid Transaction ID (minimum %d characters)",
				constants.MinTransactionIDLength),
		}}
	}
	if !confirmed {
		return nil, &ValidationError{Fields: map[string]string{
			"confirmed": "Please confirm that you have completed the payment",
		}}
	}

	now := m.Now()
	// Approximate payment time from the form. Parseable values are
	// normalized to HH:MM; anything else is stored as typed.
	paymentTime = strings.TrimSpace(paymentTime)
	if at, err := utils.ParsePaymentTime(paymentTime, now); err == nil && paymentTime != "" {
		paymentTime = at.Format("15:04")
	}

	pending := bookingModel.PendingBooking{
		BookingID:          utils.GenerateBookingID(now),
		Name:               session.Name,
		Email:              session.Email,
		Phone:              session.Phone,
		Plan:               session.PlanName,
		Tickets:            session.TicketCount,
		TotalAmount:        session.TotalAmount,
		TransactionID:      transactionID,
		PaymentTime:        paymentTime,
		SubmittedAt:        now,
		VerificationStatus: bookingModel.VerificationPending,
	}

	bookings := m.Store.PendingBookings()
	bookings = append(bookings, pending)
	if err := m.Store.SavePendingBookings(bookings); err != nil {
		return nil, fmt.Errorf("failed to persist pending booking: %w", err)
	}

	m.stopCountdownLocked(session)
	session.Status = bookingModel.StatusVerificationSubmitted
	m.Events.Record(snapshotOf(session, transactionID), "verification_submitted", "booking-flow")
	logger.Success(fmt.Sprintf("Booking %s submitted for verification (plan %s, amount %d)",
		pending.BookingID, pending.Plan, pending.TotalAmount))

	if m.Notifier != nil {
		params := emailService.TemplateParams{
			ToName:        pending.Name,
			ToEmail:       pending.Email,
			PlanName:      pending.Plan,
			Tickets:       pending.Tickets,
			TotalAmount:   utils.FormatINR(pending.TotalAmount),
			BookingID:     pending.BookingID,
			Phone:         pending.Phone,
			EventDate:     constants.EventDate,
			EventVenue:    constants.EventVenue,
			TransactionID: pending.TransactionID,
			Status:        "Pending Verification",
		}
		go func() {
			if err := m.Notifier.SendBookingEmail(params); err != nil {
				logger.Error(fmt.Sprintf("Email sending failed for booking %s", params.BookingID), err)
			}
		}()
	}

	return &pending, nil
}

// GoBack returns from the verification form to the QR view with a fresh
// payment window. An explicit user reset, not a resume.
func (m *Machine) GoBack(sessionID string) (*View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionLost
	}
	if session.Status != bookingModel.StatusVerificationEntry {
		return nil, ErrInvalidTransition
	}

	session.Status = bookingModel.StatusAwaitingPayment
	m.startCountdownLocked(session, constants.PaymentWindowSeconds)
	return session.view(), nil
}

// Cancel discards a session from the contact-form stage. Later stages have
// no exit affordance.
func (m *Machine) Cancel(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return ErrSessionLost
	}
	if session.Status != bookingModel.StatusPlanSelected {
		return ErrInvalidTransition
	}

	m.stopCountdownLocked(session)
	delete(m.sessions, sessionID)
	return nil
}

// Status returns the current session view for the presentation layer.
func (m *Machine) Status(sessionID string) (*View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionLost
	}
	return session.view(), nil
}

// Tick advances the countdown by one second. At zero the session expires
// exactly once: the timer is cancelled and further ticks are no-ops. The
// visitor must restart from plan selection. Returns true once the session
// has expired.
func (m *Machine) Tick(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[sessionID]
	if !ok {
		return true
	}
	if !session.Status.HasCountdown() {
		return session.Status.IsTerminal()
	}

	if session.Remaining > 0 {
		session.Remaining--
	}
	if session.Remaining > 0 {
		return false
	}

	session.Status = bookingModel.StatusExpired
	m.stopCountdownLocked(session)
	m.Events.Record(snapshotOf(session, ""), "expired", "booking-flow")
	logger.Info(fmt.Sprintf("Payment window expired for session %s", session.ID))
	return true
}

// startCountdownLocked resets the payment window and, when a tick interval
// is configured, spawns the single countdown goroutine for the session.
// Starting always cancels a previous timer first.
func (m *Machine) startCountdownLocked(session *Session, seconds int) {
	m.stopCountdownLocked(session)
	session.Remaining = seconds

	if m.TickInterval <= 0 {
		return
	}

	stop := make(chan struct{})
	session.stopTimer = stop
	id := session.ID

	go func() {
		ticker := time.NewTicker(m.TickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if m.Tick(id) {
					return
				}
			}
		}
	}()
}

func (m *Machine) stopCountdownLocked(session *Session) {
	if session.stopTimer != nil {
		close(session.stopTimer)
		session.stopTimer = nil
	}
}

func snapshotOf(s *Session, transactionID string) booking_event.Snapshot {
	return booking_event.Snapshot{
		SessionID:     s.ID,
		PlanID:        s.PlanID,
		PlanName:      s.PlanName,
		Name:          s.Name,
		Email:         s.Email,
		Phone:         s.Phone,
		Tickets:       s.TicketCount,
		TotalAmount:   s.TotalAmount,
		TransactionID: transactionID,
		Status:        s.Status,
	}
}

func groupContactOptions() *ContactOptions {
	body := "Hello,\n\nI am interested in the Group Package for the " + constants.EventName + " event.\n\n" +
		"Number of people in our group: \nPreferred plan (Standard/Premium): \n\n" +
		"Please contact me with more details.\n\nThank you!"

	mailto := fmt.Sprintf("mailto:%s?subject=%s&body=%s",
		constants.GroupContactEmail,
		url.QueryEscape("Group Package Inquiry - "+constants.EventName),
		url.QueryEscape(body))

	return &ContactOptions{
		Message:      fmt.Sprintf("Group Package requires minimum %d people.", constants.GroupMinPeople),
		EmailAction:  mailto,
		PhoneAction:  "tel:" + constants.GroupContactPhone,
		MinimumGroup: constants.GroupMinPeople,
	}
}
