package booking

import (
	"errors"

	"ticket-booking/logger"
	"ticket-booking/services/bookingflow"
	"ticket-booking/storage"
	"ticket-booking/types"
	"ticket-booking/utils"

	"github.com/gofiber/fiber/v2"
)

// BookingController handles the visitor-facing booking flow HTTP requests
type BookingController struct {
	Machine *bookingflow.Machine
	Store   storage.Store
	Logger  *logger.AsyncLogger
}

// NewBookingController creates a new booking controller
func NewBookingController(machine *bookingflow.Machine, store storage.Store, asyncLogger *logger.AsyncLogger) *BookingController {
	return &BookingController{
		Machine: machine,
		Store:   store,
		Logger:  asyncLogger,
	}
}

// Helper function to log API requests and responses
func (bc *BookingController) logAPIRequest(c *fiber.Ctx) {
	logEntry := utils.CreateSanitizedLogEntry(c)
	bc.Logger.Log(logEntry)
}

// Helper function to send response and log in one call
func (bc *BookingController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	bc.logAPIRequest(c)
	return result
}

// sendFlowError maps booking flow errors onto HTTP responses. Field
// validation failures carry the per-field messages, duplicate and fraud
// outcomes carry their payloads, anything else is a server error.
func (bc *BookingController) sendFlowError(c *fiber.Ctx, err error) error {
	var verr *bookingflow.ValidationError
	var derr *bookingflow.DuplicateBookingError
	var ferr *bookingflow.FraudBlockError

	switch {
	case errors.Is(err, bookingflow.ErrSessionLost):
		return bc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Booking session not found. Please start again from plan selection.",
			Data:    nil,
		})
	case errors.Is(err, bookingflow.ErrInvalidTransition):
		return bc.sendResponseWithLog(c, fiber.StatusConflict, types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "This action is not available in the current booking state",
			Data:    nil,
		})
	case errors.As(err, &verr):
		return bc.sendResponseWithLog(c, fiber.StatusUnprocessableEntity, types.ApiResponse{
			Status:  fiber.StatusUnprocessableEntity,
			Message: "Validation failed",
			Data:    map[string]interface{}{"errors": verr.Fields},
		})
	case errors.As(err, &derr):
		return bc.sendResponseWithLog(c, fiber.StatusConflict, types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: derr.Message,
			Data: map[string]interface{}{
				"type":       derr.Type,
				"booking_id": derr.BookingID,
			},
		})
	case errors.As(err, &ferr):
		return bc.sendResponseWithLog(c, fiber.StatusForbidden, types.ApiResponse{
			Status:  fiber.StatusForbidden,
			Message: ferr.Message,
			Data: map[string]interface{}{
				"remaining_time": ferr.RemainingTime,
				"blocked_until":  ferr.BlockedUntil,
			},
		})
	default:
		logger.Error("Booking flow operation failed", err)
		return bc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Internal server error",
			Data:    nil,
		})
	}
}
