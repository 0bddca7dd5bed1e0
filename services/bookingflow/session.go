package bookingflow

import (
	"ticket-booking/constants"
	bookingModel "ticket-booking/models/booking"
)

// Session is the in-memory state of one booking in progress. Created on plan
// selection, discarded on completion, expiry or cancellation; never
// persisted.
type Session struct {
	ID          string
	PlanID      string
	PlanName    string
	UnitPrice   int
	TicketCount int
	Name        string
	Email       string
	Phone       string
	TotalAmount int

	Status    bookingModel.SessionStatus
	Remaining int

	// stopTimer cancels the countdown goroutine; at most one per session.
	stopTimer chan struct{}
}

// Identifier returns the fraud/duplicate lookup key, phone preferred.
func (s *Session) Identifier() string {
	if s.Phone != "" {
		return s.Phone
	}
	return s.Email
}

// Urgency maps the remaining payment window onto a display tier.
func (s *Session) Urgency() bookingModel.UrgencyTier {
	switch {
	case s.Remaining <= constants.TimerCriticalThreshold:
		return bookingModel.UrgencyCritical
	case s.Remaining <= constants.TimerWarningThreshold:
		return bookingModel.UrgencyWarning
	default:
		return bookingModel.UrgencyNormal
	}
}

// View is the session summary handed to the presentation layer.
type View struct {
	SessionID   string                     `json:"session_id"`
	PlanID      string                     `json:"plan_id"`
	PlanName    string                     `json:"plan_name"`
	UnitPrice   int                        `json:"unit_price"`
	TicketCount int                        `json:"tickets,omitempty"`
	Name        string                     `json:"name,omitempty"`
	Email       string                     `json:"email,omitempty"`
	Phone       string                     `json:"phone,omitempty"`
	TotalAmount int                        `json:"total_amount"`
	Status      bookingModel.SessionStatus `json:"status"`
	Remaining   int                        `json:"remaining_seconds"`
	Urgency     bookingModel.UrgencyTier   `json:"urgency"`
}

func (s *Session) view() *View {
	return &View{
		SessionID:   s.ID,
		PlanID:      s.PlanID,
		PlanName:    s.PlanName,
		UnitPrice:   s.UnitPrice,
		TicketCount: s.TicketCount,
		Name:        s.Name,
		Email:       s.Email,
		Phone:       s.Phone,
		TotalAmount: s.TotalAmount,
		Status:      s.Status,
		Remaining:   s.Remaining,
		Urgency:     s.Urgency(),
	}
}

// ContactOptions is the group-package fallback: no session is created, the
// visitor is handed pre-filled contact actions instead.
type ContactOptions struct {
	Message      string `json:"message"`
	EmailAction  string `json:"email_action"`
	PhoneAction  string `json:"phone_action"`
	MinimumGroup int    `json:"minimum_group"`
}
