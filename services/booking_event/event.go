package booking_event

import (
	"fmt"

	"ticket-booking/logger"
	bookingModel "ticket-booking/models/booking"
	"ticket-booking/utils"

	"gorm.io/gorm"
)

// Recorder appends booking flow transitions to the audit table. A nil
// Recorder (or one with no database) drops events, which keeps file-store
// deployments and tests working without a schema.
type Recorder struct {
	db     *gorm.DB
	cipher *utils.TransactionCipher
}

func NewRecorder(db *gorm.DB) *Recorder {
	r := &Recorder{db: db}
	if db == nil {
		return r
	}

	cipher, err := utils.NewTransactionCipher()
	if err != nil {
		logger.Warning("Audit events will omit transaction references: " + err.Error())
	} else {
		r.cipher = cipher
	}
	return r
}

// Snapshot captures the fields shared by every audit event.
type Snapshot struct {
	SessionID     string
	BookingID     string
	PlanID        string
	PlanName      string
	Name          string
	Email         string
	Phone         string
	Tickets       int
	TotalAmount   int
	TransactionID string
	Status        bookingModel.SessionStatus
}

// Record writes one event row. The transaction reference, when present, is
// stored encrypted; failures are logged and swallowed so auditing never
// breaks a transition.
func (r *Recorder) Record(snap Snapshot, eventType, createdBy string) {
	if r == nil || r.db == nil {
		return
	}

	ev := bookingModel.FlowEvent{
		SessionID:   snap.SessionID,
		BookingID:   snap.BookingID,
		PlanID:      snap.PlanID,
		PlanName:    snap.PlanName,
		Name:        snap.Name,
		Email:       snap.Email,
		Phone:       snap.Phone,
		Tickets:     snap.Tickets,
		TotalAmount: snap.TotalAmount,
		Status:      snap.Status,
		EventType:   eventType,
		CreatedBy:   createdBy,
	}

	if snap.TransactionID != "" && r.cipher != nil {
		sealed, err := r.cipher.Seal(snap.TransactionID)
		if err != nil {
			logger.Error(fmt.Sprintf("Failed to seal transaction reference for session %s", snap.SessionID), err)
		} else {
			ev.TransactionIDEncrypted = &sealed
		}
	}

	if err := r.db.Create(&ev).Error; err != nil {
		logger.Error(fmt.Sprintf("Failed to record booking flow event %s for session %s", eventType, snap.SessionID), err)
	}
}
