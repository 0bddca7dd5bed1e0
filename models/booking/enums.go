package booking

// VerificationStatus is the admin-side state of a submitted booking.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

// Helper methods for VerificationStatus
func (vs VerificationStatus) String() string {
	return string(vs)
}

func (vs VerificationStatus) IsValid() bool {
	switch vs {
	case VerificationPending, VerificationVerified, VerificationRejected:
		return true
	default:
		return false
	}
}

// SessionStatus is the state of an in-progress booking session.
type SessionStatus string

const (
	StatusPlanSelected          SessionStatus = "plan_selected"
	StatusValidating            SessionStatus = "validating"
	StatusAwaitingPayment       SessionStatus = "awaiting_payment"
	StatusVerificationEntry     SessionStatus = "verification_entry"
	StatusVerificationSubmitted SessionStatus = "verification_submitted"
	StatusExpired               SessionStatus = "expired"
	StatusBlocked               SessionStatus = "blocked"
	StatusRejected              SessionStatus = "rejected"
)

func (ss SessionStatus) String() string {
	return string(ss)
}

func (ss SessionStatus) IsValid() bool {
	switch ss {
	case StatusPlanSelected, StatusValidating, StatusAwaitingPayment,
		StatusVerificationEntry, StatusVerificationSubmitted,
		StatusExpired, StatusBlocked, StatusRejected:
		return true
	default:
		return false
	}
}

// IsTerminal returns true once no further transition can leave the status.
func (ss SessionStatus) IsTerminal() bool {
	switch ss {
	case StatusVerificationSubmitted, StatusExpired, StatusBlocked, StatusRejected:
		return true
	default:
		return false
	}
}

// CanSubmitDetails returns true if the contact form may be submitted.
func (ss SessionStatus) CanSubmitDetails() bool {
	return ss == StatusPlanSelected
}

// CanConfirmPayment returns true if the payment-done claim is accepted.
func (ss SessionStatus) CanConfirmPayment() bool {
	return ss == StatusAwaitingPayment
}

// CanSubmitVerification returns true if the transaction form is open.
func (ss SessionStatus) CanSubmitVerification() bool {
	return ss == StatusVerificationEntry
}

// HasCountdown returns true while the payment window timer should run.
func (ss SessionStatus) HasCountdown() bool {
	return ss == StatusAwaitingPayment
}

// UrgencyTier is the display tier of the countdown timer.
type UrgencyTier string

const (
	UrgencyNormal   UrgencyTier = "normal"
	UrgencyWarning  UrgencyTier = "warning"
	UrgencyCritical UrgencyTier = "critical"
)
