package admin

import "fmt"

// LoginRequest carries the admin console credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// BookingActionRequest identifies a pending booking for verify/reject actions.
type BookingActionRequest struct {
	BookingID string `json:"booking_id" validate:"required"`
}

// UnblockRequest clears the fraud record for an identifier.
type UnblockRequest struct {
	Identifier string `json:"identifier" validate:"required"`
}

func (r LoginRequest) Validate() error {
	if r.Username == "" {
		return fmt.Errorf("username is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

func (r BookingActionRequest) Validate() error {
	if r.BookingID == "" {
		return fmt.Errorf("booking_id is required")
	}
	return nil
}

func (r UnblockRequest) Validate() error {
	if r.Identifier == "" {
		return fmt.Errorf("identifier is required")
	}
	return nil
}
