package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"ticket-booking/constants"
	"ticket-booking/types"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// GenerateBookingID builds a booking id from the fixed prefix and the last
// 8 digits of the wall clock in milliseconds. Two bookings created inside the
// same millisecond (or across a rollover of the truncated digits) collide;
// that weakness is documented and accepted.
func GenerateBookingID(at time.Time) string {
	millis := strconv.FormatInt(at.UnixMilli(), 10)
	if len(millis) > 8 {
		millis = millis[len(millis)-8:]
	}
	return constants.BookingIDPrefix + millis
}

// FormatINR renders an amount with Indian digit grouping, e.g. 2000 ->
// "2,000" and 100000 -> "1,00,000".
func FormatINR(amount int) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	s := strconv.Itoa(amount)
	if len(s) > 3 {
		head := s[:len(s)-3]
		tail := s[len(s)-3:]

		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		s = strings.Join(groups, ",") + "," + tail
	}

	if negative {
		return "-" + s
	}
	return s
}

// ParsePaymentTime resolves an approximate "HH:MM" clock string against the
// submission date. A blank value falls back to the submission time itself.
func ParsePaymentTime(value string, submittedAt time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return submittedAt, nil
	}
	parsed, err := now.New(submittedAt).Parse(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse payment time %q: %w", value, err)
	}
	return parsed, nil
}

// Countdown is the remaining time to a future instant, split for display.
type Countdown struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// CalculateCountdown returns nil once the target has passed.
func CalculateCountdown(target, at time.Time) *Countdown {
	diff := target.Sub(at)
	if diff <= 0 {
		return nil
	}

	return &Countdown{
		Days:    int(diff.Hours()) / 24,
		Hours:   int(diff.Hours()) % 24,
		Minutes: int(diff.Minutes()) % 60,
		Seconds: int(diff.Seconds()) % 60,
	}
}

const maxLoggedBodySize = 8 * 1024

// sanitizeRequestBody returns a safe copy of the request body for logging.
// Multipart uploads are replaced with a marker and oversized bodies truncated.
func sanitizeRequestBody(c *fiber.Ctx) string {
	contentType := c.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		return fmt.Sprintf("[multipart form data, %d bytes]", len(c.Body()))
	}

	body := string(append([]byte(nil), c.Body()...))
	if len(body) > maxLoggedBodySize {
		return body[:maxLoggedBodySize] + "...[truncated]"
	}
	return body
}

// CreateSanitizedLogEntry creates a deep copied and sanitized log entry for logging
func CreateSanitizedLogEntry(c *fiber.Ctx) types.LogEntry {
	method := string([]byte(c.Method()))
	url := string([]byte(c.OriginalURL()))
	requestBody := sanitizeRequestBody(c)
	responseBody := string(append([]byte(nil), c.Response().Body()...))

	// Deep copy headers
	requestHeaders := make([]byte, len(c.Request().Header.Header()))
	copy(requestHeaders, c.Request().Header.Header())

	responseHeaders := make([]byte, len(c.Response().Header.Header()))
	copy(responseHeaders, c.Response().Header.Header())

	return types.LogEntry{
		Method:          method,
		URL:             url,
		RequestBody:     requestBody,
		ResponseBody:    responseBody,
		RequestHeaders:  string(requestHeaders),
		ResponseHeaders: string(responseHeaders),
		StatusCode:      c.Response().StatusCode(),
		CreatedAt:       time.Now(),
	}
}
