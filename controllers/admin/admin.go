package admin

import (
	"fmt"

	"ticket-booking/constants"
	emailService "ticket-booking/httpServices/email"
	"ticket-booking/logger"
	bookingModel "ticket-booking/models/booking"
	fraudModel "ticket-booking/models/fraud"
	"ticket-booking/services/booking_event"
	"ticket-booking/types"
	adminTypes "ticket-booking/types/admin"
	"ticket-booking/utils"

	"github.com/gofiber/fiber/v2"
)

// ListPendingBookings returns the pending collection, optionally filtered by
// verification status.
func (ac *AdminController) ListPendingBookings(c *fiber.Ctx) error {
	bookings := ac.Store.PendingBookings()

	if status := c.Query("status"); status != "" {
		filter := bookingModel.VerificationStatus(status)
		if !filter.IsValid() {
			return ac.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Unknown verification status: " + status,
				Data:    nil,
			})
		}
		filtered := make([]bookingModel.PendingBooking, 0, len(bookings))
		for _, b := range bookings {
			if b.VerificationStatus == filter {
				filtered = append(filtered, b)
			}
		}
		bookings = filtered
	}

	return ac.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Pending bookings retrieved",
		Data:    bookings,
	})
}

// ListVerifiedBookings returns the verified collection.
func (ac *AdminController) ListVerifiedBookings(c *fiber.Ctx) error {
	return ac.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Verified bookings retrieved",
		Data:    ac.Store.VerifiedBookings(),
	})
}

// VerifyBooking confirms a pending booking's payment: the booking moves to
// the verified collection, the identifier's fraud record is cleared and the
// visitor gets a confirmation email.
func (ac *AdminController) VerifyBooking(c *fiber.Ctx) error {
	var req adminTypes.BookingActionRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return ac.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}
	if err := req.Validate(); err != nil {
		return ac.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Data:    nil,
		})
	}

	pending := ac.Store.PendingBookings()
	index := -1
	for i, b := range pending {
		if b.BookingID == req.BookingID && b.VerificationStatus == bookingModel.VerificationPending {
			index = i
			break
		}
	}
	if index < 0 {
		return ac.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "No pending booking found with ID " + req.BookingID,
			Data:    nil,
		})
	}

	booking := pending[index]
	verified := bookingModel.VerifiedBooking{
		BookingID:     booking.BookingID,
		Name:          booking.Name,
		Email:         booking.Email,
		Phone:         booking.Phone,
		Plan:          booking.Plan,
		Tickets:       booking.Tickets,
		TotalAmount:   booking.TotalAmount,
		TransactionID: booking.TransactionID,
		PaymentTime:   booking.PaymentTime,
		SubmittedAt:   booking.SubmittedAt,
		VerifiedAt:    ac.Guard.Now(),
	}

	verifiedAll := append(ac.Store.VerifiedBookings(), verified)
	if err := ac.Store.SaveVerifiedBookings(verifiedAll); err != nil {
		logger.Error("Failed to persist verified bookings", err)
		return ac.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to save verified booking",
			Data:    nil,
		})
	}

	pending = append(pending[:index], pending[index+1:]...)
	if err := ac.Store.SavePendingBookings(pending); err != nil {
		logger.Error("Failed to persist pending bookings", err)
		return ac.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Booking verified but failed to update pending collection",
			Data:    verified,
		})
	}

	if err := ac.Guard.Reset(booking.Identifier()); err != nil {
		logger.Error(fmt.Sprintf("Failed to clear fraud record for %s", booking.Identifier()), err)
	}

	ac.recordEvent(booking, "verified", ac.username(c))
	ac.notify(verifiedParams(verified))

	logger.Success(fmt.Sprintf("Booking %s verified", booking.BookingID))
	return ac.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking " + booking.BookingID + " verified",
		Data:    verified,
	})
}

// RejectBooking marks a pending booking's payment claim as false. The claim
// counts toward the identifier's fraud threshold.
func (ac *AdminController) RejectBooking(c *fiber.Ctx) error {
	var req adminTypes.BookingActionRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return ac.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}
	if err := req.Validate(); err != nil {
		return ac.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Data:    nil,
		})
	}

	pending := ac.Store.PendingBookings()
	index := -1
	for i, b := range pending {
		if b.BookingID == req.BookingID && b.VerificationStatus == bookingModel.VerificationPending {
			index = i
			break
		}
	}
	if index < 0 {
		return ac.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "No pending booking found with ID " + req.BookingID,
			Data:    nil,
		})
	}

	pending[index].VerificationStatus = bookingModel.VerificationRejected
	if err := ac.Store.SavePendingBookings(pending); err != nil {
		logger.Error("Failed to persist pending bookings", err)
		return ac.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to save rejection",
			Data:    nil,
		})
	}

	booking := pending[index]
	count, err := ac.Guard.RecordFalseAttempt(booking.Identifier(), fraudModel.AttemptLog{
		Name:   booking.Name,
		Email:  booking.Email,
		Phone:  booking.Phone,
		Plan:   booking.Plan,
		Amount: booking.TotalAmount,
	})
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to record false claim for %s", booking.Identifier()), err)
	}

	ac.recordEvent(booking, "rejected", ac.username(c))
	ac.notify(rejectedParams(booking))

	status := ac.Guard.IsBlocked(booking.Identifier())
	logger.Warning(fmt.Sprintf("Booking %s rejected, identifier %s now has %d false claim(s)",
		booking.BookingID, booking.Identifier(), count))

	return ac.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking " + booking.BookingID + " rejected",
		Data: map[string]interface{}{
			"booking":        booking,
			"false_attempts": count,
			"blocked":        status.Blocked,
			"blocked_until":  status.BlockedUntil,
		},
	})
}

// FraudStatus reports the block state and claim history for an identifier.
func (ac *AdminController) FraudStatus(c *fiber.Ctx) error {
	identifier := c.Params("identifier")
	if identifier == "" {
		return ac.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "identifier is required",
			Data:    nil,
		})
	}

	status := ac.Guard.IsBlocked(identifier)
	record := ac.Store.FraudRecords()[identifier]

	data := map[string]interface{}{
		"identifier":     identifier,
		"blocked":        status.Blocked,
		"false_attempts": ac.Guard.FalseAttemptCount(identifier),
	}
	if status.Blocked {
		data["blocked_until"] = status.BlockedUntil
		data["remaining_time"] = status.RemainingTime
	}
	if record != nil {
		data["attempts"] = record.Attempts
	}

	return ac.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Fraud status retrieved",
		Data:    data,
	})
}

// Unblock clears the fraud record for an identifier ahead of its expiry.
func (ac *AdminController) Unblock(c *fiber.Ctx) error {
	var req adminTypes.UnblockRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return ac.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}
	if err := req.Validate(); err != nil {
		return ac.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Data:    nil,
		})
	}

	if err := ac.Guard.Reset(req.Identifier); err != nil {
		logger.Error(fmt.Sprintf("Failed to unblock %s", req.Identifier), err)
		return ac.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to unblock identifier",
			Data:    nil,
		})
	}

	logger.Success("Identifier " + req.Identifier + " unblocked")
	return ac.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Identifier " + req.Identifier + " unblocked",
		Data:    nil,
	})
}

func (ac *AdminController) recordEvent(booking bookingModel.PendingBooking, eventType, createdBy string) {
	ac.Events.Record(booking_event.Snapshot{
		BookingID:     booking.BookingID,
		PlanName:      booking.Plan,
		Name:          booking.Name,
		Email:         booking.Email,
		Phone:         booking.Phone,
		Tickets:       booking.Tickets,
		TotalAmount:   booking.TotalAmount,
		TransactionID: booking.TransactionID,
	}, eventType, createdBy)
}

func (ac *AdminController) notify(params emailService.TemplateParams) {
	if ac.Notifier == nil {
		return
	}
	go func() {
		if err := ac.Notifier.SendBookingEmail(params); err != nil {
			logger.Error(fmt.Sprintf("Email sending failed for booking %s", params.BookingID), err)
		}
	}()
}

func verifiedParams(b bookingModel.VerifiedBooking) emailService.TemplateParams {
	return emailService.TemplateParams{
		ToName:        b.Name,
		ToEmail:       b.Email,
		PlanName:      b.Plan,
		Tickets:       b.Tickets,
		TotalAmount:   utils.FormatINR(b.TotalAmount),
		BookingID:     b.BookingID,
		Phone:         b.Phone,
		EventDate:     constants.EventDate,
		EventVenue:    constants.EventVenue,
		TransactionID: b.TransactionID,
		Status:        "Confirmed",
	}
}

func rejectedParams(b bookingModel.PendingBooking) emailService.TemplateParams {
	return emailService.TemplateParams{
		ToName:        b.Name,
		ToEmail:       b.Email,
		PlanName:      b.Plan,
		Tickets:       b.Tickets,
		TotalAmount:   utils.FormatINR(b.TotalAmount),
		BookingID:     b.BookingID,
		Phone:         b.Phone,
		EventDate:     constants.EventDate,
		EventVenue:    constants.EventVenue,
		TransactionID: b.TransactionID,
		Status:        "Rejected",
	}
}

// username resolves the acting admin from the token claims for audit rows.
func (ac *AdminController) username(c *fiber.Ctx) string {
	if username, ok := ac.Permissions.GetUsername(c); ok && username != "" {
		return username
	}
	return "admin"
}
