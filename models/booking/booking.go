package booking

import (
	"time"
)

// PendingBooking is a submitted booking awaiting manual payment verification.
// The booking flow only ever appends to the pending collection; status changes
// come from the admin side and rows are never deleted by the flow itself.
type PendingBooking struct {
	BookingID          string             `json:"bookingId"`
	Name               string             `json:"name"`
	Email              string             `json:"email"`
	Phone              string             `json:"phone"`
	Plan               string             `json:"plan"`
	Tickets            int                `json:"tickets"`
	TotalAmount        int                `json:"totalAmount"`
	TransactionID      string             `json:"transactionId"`
	PaymentTime        string             `json:"paymentTime"`
	SubmittedAt        time.Time          `json:"submittedAt"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
}

// Identifier returns the fraud/duplicate lookup key, phone preferred.
func (b PendingBooking) Identifier() string {
	if b.Phone != "" {
		return b.Phone
	}
	return b.Email
}

// VerifiedBooking is a booking whose payment an admin has confirmed. It is
// moved out of the pending collection by the admin flow; the booking flow only
// reads this collection for duplicate checks.
type VerifiedBooking struct {
	BookingID     string    `json:"bookingId"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Plan          string    `json:"plan"`
	Tickets       int       `json:"tickets"`
	TotalAmount   int       `json:"totalAmount"`
	TransactionID string    `json:"transactionId"`
	PaymentTime   string    `json:"paymentTime"`
	SubmittedAt   time.Time `json:"submittedAt"`
	VerifiedAt    time.Time `json:"verifiedAt"`
}
