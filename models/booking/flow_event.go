package booking

import (
	"time"
)

// FlowEvent is an append-only snapshot of a booking session at a transition.
// Events are many per session; never updated after insert.
type FlowEvent struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	SessionID string `gorm:"type:varchar(64);not null;index" json:"session_id"`
	BookingID string `gorm:"type:varchar(32);index" json:"booking_id"`

	PlanID      string `gorm:"type:varchar(50)" json:"plan_id"`
	PlanName    string `gorm:"type:varchar(100)" json:"plan_name"`
	Name        string `gorm:"type:varchar(255)" json:"name"`
	Email       string `gorm:"type:varchar(255)" json:"email"`
	Phone       string `gorm:"type:varchar(20)" json:"phone"`
	Tickets     int    `gorm:"default:0" json:"tickets"`
	TotalAmount int    `gorm:"default:0" json:"total_amount"`

	// Transaction reference is stored encrypted at rest; empty before the
	// verification form is submitted.
	TransactionIDEncrypted *string `gorm:"column:transaction_id_encrypted;type:text" json:"transaction_id_encrypted,omitempty"`

	Status    SessionStatus `gorm:"size:30;not null;index" json:"status"`
	EventType string        `gorm:"type:varchar(50);not null;index" json:"event_type"` // plan_selected, details_submitted, payment_confirmed, verification_submitted, verified, rejected, expired, blocked
	CreatedBy string        `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the FlowEvent model
func (FlowEvent) TableName() string {
	return "booking_flow_events"
}
