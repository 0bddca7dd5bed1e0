package booking

import (
	"fmt"
	"strings"
)

// SelectPlanRequest opens a new booking session for the chosen pricing plan.
type SelectPlanRequest struct {
	PlanID string `json:"plan_id" validate:"required"`
	Price  int    `json:"price" validate:"required,min=1"`
}

// SubmitDetailsRequest carries the contact form fields.
type SubmitDetailsRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	Tickets   int    `json:"tickets" validate:"required,min=1"`
}

// SessionRequest identifies the booking session for session-only transitions.
type SessionRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

// SubmitVerificationRequest carries the UPI transaction reference form.
type SubmitVerificationRequest struct {
	SessionID     string `json:"session_id" validate:"required"`
	TransactionID string `json:"transaction_id" validate:"required"`
	PaymentTime   string `json:"payment_time"`
	Confirmed     bool   `json:"confirmed"`
}

func (r SelectPlanRequest) Validate() error {
	if r.PlanID == "" {
		return fmt.Errorf("plan_id is required")
	}
	if r.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	return nil
}

func (r SubmitDetailsRequest) Validate() error {
	if r.SessionID == "" {
		return fmt.Errorf("session_id is required")
	}
	if r.Tickets < 1 {
		return fmt.Errorf("tickets must be at least 1")
	}
	return nil
}

func (r SessionRequest) Validate() error {
	if r.SessionID == "" {
		return fmt.Errorf("session_id is required")
	}
	return nil
}

func (r SubmitVerificationRequest) Validate() error {
	if r.SessionID == "" {
		return fmt.Errorf("session_id is required")
	}
	if strings.TrimSpace(r.TransactionID) == "" {
		return fmt.Errorf("transaction_id is required")
	}
	return nil
}
