package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBookingID(t *testing.T) {
	at := time.UnixMilli(1774526712345)
	id := GenerateBookingID(at)

	assert.Equal(t, "EW26712345", id)
	assert.Len(t, id, 10)
}

func TestFormatINR(t *testing.T) {
	tests := []struct {
		amount int
		want   string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{2000, "2,000"},
		{12500, "12,500"},
		{100000, "1,00,000"},
		{1250000, "12,50,000"},
		{10000000, "1,00,00,000"},
		{-2000, "-2,000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatINR(tt.amount), "amount %d", tt.amount)
	}
}

func TestParsePaymentTime(t *testing.T) {
	submittedAt := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	parsed, err := ParsePaymentTime("11:45", submittedAt)
	require.NoError(t, err)
	assert.Equal(t, 11, parsed.Hour())
	assert.Equal(t, 45, parsed.Minute())
	assert.Equal(t, submittedAt.Day(), parsed.Day())

	// Blank falls back to the submission time.
	parsed, err = ParsePaymentTime("  ", submittedAt)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(submittedAt))

	_, err = ParsePaymentTime("not a time", submittedAt)
	assert.Error(t, err)
}

func TestCalculateCountdown(t *testing.T) {
	at := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	target := at.Add(49*time.Hour + 30*time.Minute + 15*time.Second)

	countdown := CalculateCountdown(target, at)
	require.NotNil(t, countdown)
	assert.Equal(t, 2, countdown.Days)
	assert.Equal(t, 1, countdown.Hours)
	assert.Equal(t, 30, countdown.Minutes)
	assert.Equal(t, 15, countdown.Seconds)

	assert.Nil(t, CalculateCountdown(at, at))
	assert.Nil(t, CalculateCountdown(at.Add(-time.Second), at))
}
