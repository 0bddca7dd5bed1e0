package booking

import (
	"fmt"
	"time"

	"ticket-booking/constants"
	"ticket-booking/logger"
	"ticket-booking/types"
	bookingTypes "ticket-booking/types/booking"
	"ticket-booking/utils"

	"github.com/gofiber/fiber/v2"
)

// SelectPlan opens a new booking session for the chosen plan. The group
// package short-circuits to direct contact options.
func (bc *BookingController) SelectPlan(c *fiber.Ctx) error {
	var req bookingTypes.SelectPlanRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return bc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	if err := req.Validate(); err != nil {
		return bc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Data:    nil,
		})
	}

	view, contact, err := bc.Machine.SelectPlan(req.PlanID, req.Price)
	if err != nil {
		return bc.sendFlowError(c, err)
	}

	if contact != nil {
		return bc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
			Status:  fiber.StatusOK,
			Message: contact.Message,
			Data:    contact,
		})
	}

	logger.Info(fmt.Sprintf("Booking session %s opened for plan %s", view.SessionID, view.PlanID))
	return bc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Plan selected",
		Data:    view,
	})
}

// SubmitDetails accepts the contact form and moves the session toward the
// payment window.
func (bc *BookingController) SubmitDetails(c *fiber.Ctx) error {
	var req bookingTypes.SubmitDetailsRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return bc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	if err := req.Validate(); err != nil {
		return bc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Data:    nil,
		})
	}

	view, err := bc.Machine.SubmitDetails(req.SessionID, req.Name, req.Email, req.Phone, req.Tickets)
	if err != nil {
		return bc.sendFlowError(c, err)
	}

	return bc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Validating your details",
		Data:    view,
	})
}

// Status returns the current session view, including the remaining payment
// window and its urgency tier.
func (bc *BookingController) Status(c *fiber.Ctx) error {
	sessionID := c.Params("session_id")
	if sessionID == "" {
		return bc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "session_id is required",
			Data:    nil,
		})
	}

	view, err := bc.Machine.Status(sessionID)
	if err != nil {
		return bc.sendFlowError(c, err)
	}

	return bc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Session status",
		Data:    view,
	})
}

// ConfirmPayment handles the "I have paid" claim and opens the transaction
// verification form, unless the identifier is blocked.
func (bc *BookingController) ConfirmPayment(c *fiber.Ctx) error {
	var req bookingTypes.SessionRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return bc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	if err := req.Validate(); err != nil {
		return bc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Data:    nil,
		})
	}

	result, err := bc.Machine.ConfirmPayment(req.SessionID)
	if err != nil {
		return bc.sendFlowError(c, err)
	}

	return bc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Please enter your transaction details",
		Data:    result,
	})
}

// SubmitVerification accepts the transaction reference form and persists the
// pending booking.
func (bc *BookingController) SubmitVerification(c *fiber.Ctx) error {
	var req bookingTypes.SubmitVerificationRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return bc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	if err := req.Validate(); err != nil {
		return bc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Data:    nil,
		})
	}

	pending, err := bc.Machine.SubmitVerification(req.SessionID, req.TransactionID, req.PaymentTime, req.Confirmed)
	if err != nil {
		return bc.sendFlowError(c, err)
	}

	return bc.sendResponseWithLog(c, fiber.StatusCreated, types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: fmt.Sprintf("Booking %s submitted for verification. You will receive a confirmation email once the payment is verified.", pending.BookingID),
		Data:    pending,
	})
}

// GoBack returns from the verification form to the QR view with a fresh
// payment window.
func (bc *BookingController) GoBack(c *fiber.Ctx) error {
	var req bookingTypes.SessionRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return bc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	if err := req.Validate(); err != nil {
		return bc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Data:    nil,
		})
	}

	view, err := bc.Machine.GoBack(req.SessionID)
	if err != nil {
		return bc.sendFlowError(c, err)
	}

	return bc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Returned to payment",
		Data:    view,
	})
}

// Cancel discards a session from the contact-form stage.
func (bc *BookingController) Cancel(c *fiber.Ctx) error {
	var req bookingTypes.SessionRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return bc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	if err := req.Validate(); err != nil {
		return bc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
			Data:    nil,
		})
	}

	if err := bc.Machine.Cancel(req.SessionID); err != nil {
		return bc.sendFlowError(c, err)
	}

	return bc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Booking cancelled",
		Data:    nil,
	})
}

// EventCountdown returns the remaining time until the event starts, split
// for the landing page countdown widget.
func (bc *BookingController) EventCountdown(c *fiber.Ctx) error {
	target, err := time.Parse(time.RFC3339, constants.EventStartTime)
	if err != nil {
		logger.Error("Failed to parse event start time", err)
		return bc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}

	countdown := utils.CalculateCountdown(target, time.Now())
	if countdown == nil {
		return bc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
			Status:  fiber.StatusOK,
			Message: "Event has started",
			Data:    nil,
		})
	}

	return bc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Time remaining until " + constants.EventName,
		Data:    countdown,
	})
}
