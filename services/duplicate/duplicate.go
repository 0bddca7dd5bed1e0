package duplicate

import (
	"fmt"

	bookingModel "ticket-booking/models/booking"
	"ticket-booking/storage"
)

// Checker scans the persisted booking collections for a conflicting phone or
// email before a new booking may proceed.
type Checker struct {
	Store storage.Store
}

func NewChecker(store storage.Store) *Checker {
	return &Checker{Store: store}
}

// Result describes a duplicate match. Type is "pending" or "verified".
type Result struct {
	IsDuplicate bool   `json:"isDuplicate"`
	Type        string `json:"type,omitempty"`
	BookingID   string `json:"bookingId,omitempty"`
	Message     string `json:"message,omitempty"`
}

// Check matches on phone OR email. Pending claims take priority over
// verified bookings; within a collection the first match in insertion order
// wins.
func (c *Checker) Check(phone, email string) Result {
	for _, b := range c.Store.PendingBookings() {
		if b.VerificationStatus != bookingModel.VerificationPending {
			continue
		}
		if b.Phone == phone || b.Email == email {
			return Result{
				IsDuplicate: true,
				Type:        "pending",
				BookingID:   b.BookingID,
				Message: fmt.Sprintf("You already have a pending booking (#%s). "+
					"Please wait for verification before making a new booking.", b.BookingID),
			}
		}
	}

	for _, b := range c.Store.VerifiedBookings() {
		if b.Phone == phone || b.Email == email {
			return Result{
				IsDuplicate: true,
				Type:        "verified",
				BookingID:   b.BookingID,
				Message: fmt.Sprintf("You already have a verified booking (#%s). "+
					"Each person can only book once.", b.BookingID),
			}
		}
	}

	return Result{IsDuplicate: false}
}
