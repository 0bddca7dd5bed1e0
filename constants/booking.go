package constants

// Fraud protection settings
const (
	MaxFalseAttempts   = 2 // Maximum false payment claims allowed
	BlockDurationHours = 8 // Block duration in hours
)

// Storage keys for the persisted record collections
const (
	FraudDataKey        = "ew_fraud_data"
	PendingBookingsKey  = "ew_pending_bookings"
	VerifiedBookingsKey = "ew_verified_bookings"
)

// Payment window settings
const (
	PaymentWindowSeconds   = 600 // 10 minute QR validity
	TimerWarningThreshold  = 180
	TimerCriticalThreshold = 60
	MinTransactionIDLength = 8
)

// BookingIDPrefix prefixes every generated booking ID
const BookingIDPrefix = "EW"

// Event details used in notification emails and the countdown endpoint
const (
	EventName  = "Echoes Within"
	EventDate  = "26th March 2026 | 5:30 PM Onwards"
	EventVenue = "Radisson Blu, Dwarka, Delhi"
)

// EventStartTime is the RFC3339 timestamp the public countdown counts down to.
const EventStartTime = "2026-03-26T17:30:00+05:30"

// Group package contact fallbacks
const (
	GroupContactEmail = "radha51895@gmail.com"
	GroupContactPhone = "+919968532561"
	GroupMinPeople    = 5
)

// UPI payment defaults, overridable through UPI_VPA and UPI_PAYEE_NAME
const (
	DefaultUPIVPA       = "echoeswithin@okaxis"
	DefaultUPIPayeeName = "Echoes Within"
)

// PlanGroup is the plan that bypasses the booking flow entirely
const PlanGroup = "group"

// PlanNames maps plan ids to their display names
var PlanNames = map[string]string{
	"early-bird":         "Early Bird",
	"standard":           "Standard",
	"early-bird-premium": "Early Bird Premium",
	"premium":            "Premium",
	"group":              "Group Package",
}
