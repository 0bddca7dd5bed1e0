package constants

// Organization permissions
const (
	// Admin permissions
	PermSuperAdminFull = "ticket-booking.super-admin.full-permit"
	PermVerifierFull   = "ticket-booking.verifier.full-permit"
	PermSupportFull    = "ticket-booking.support.full-permit"

	// Special permissions
	PermAny = "any"
)

// Permission groups for convenience
var (
	AdminPermissions = []string{
		PermSuperAdminFull,
		PermVerifierFull,
	}
)
