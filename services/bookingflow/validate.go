package bookingflow

import (
	"regexp"
	"strings"
)

var (
	namePattern  = regexp.MustCompile(`^[a-zA-Z\s]{3,50}$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^[6-9]\d{9}$`)
)

// validateDetails checks the contact form fields and collects per-field
// messages. It returns nil when everything passes.
func validateDetails(name, email, phone string, tickets int) *ValidationError {
	fields := map[string]string{}

	switch {
	case strings.TrimSpace(name) == "":
		fields["name"] = "Please enter your full name"
	case !namePattern.MatchString(strings.TrimSpace(name)):
		fields["name"] = "Name must be 3-50 characters, letters only"
	}

	switch {
	case strings.TrimSpace(email) == "":
		fields["email"] = "Please enter your email address"
	case !emailPattern.MatchString(strings.TrimSpace(email)):
		fields["email"] = "Please enter a valid email (e.g., name@domain.com)"
	}

	switch {
	case strings.TrimSpace(phone) == "":
		fields["phone"] = "Please enter your phone number"
	case !phonePattern.MatchString(strings.TrimSpace(phone)):
		fields["phone"] = "Please enter a valid 10-digit Indian mobile number"
	}

	if tickets < 1 {
		fields["tickets"] = "Please select at least 1 ticket"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
