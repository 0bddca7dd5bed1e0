package booking

import (
	"fmt"
	"net/url"
	"os"

	"ticket-booking/constants"
	"ticket-booking/logger"
	bookingModel "ticket-booking/models/booking"
	"ticket-booking/types"

	"github.com/gofiber/fiber/v2"
	qrcode "github.com/skip2/go-qrcode"
)

// PaymentQR renders the UPI payment QR for a session as a PNG. Only valid
// while the payment window is open.
func (bc *BookingController) PaymentQR(c *fiber.Ctx) error {
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

	if view.Status != bookingModel.StatusAwaitingPayment {
		return bc.sendResponseWithLog(c, fiber.StatusConflict, types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "Payment QR is only available while the payment window is open",
			Data:    nil,
		})
	}

	png, err := qrcode.Encode(buildUPIURI(view.TotalAmount, view.SessionID), qrcode.Medium, 256)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to generate payment QR for session %s", sessionID), err)
		return bc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to generate payment QR",
			Data:    nil,
		})
	}

	c.Set("Content-Type", "image/png")
	result := c.Status(fiber.StatusOK).Send(png)
	bc.logAPIRequest(c)
	return result
}

// buildUPIURI formats the upi://pay deep link the QR encodes.
func buildUPIURI(amount int, sessionID string) string {
	vpa := os.Getenv("UPI_VPA")
	if vpa == "" {
		vpa = constants.DefaultUPIVPA
	}
	payee := os.Getenv("UPI_PAYEE_NAME")
	if payee == "" {
		payee = constants.DefaultUPIPayeeName
	}

	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%d.00&cu=INR&tn=%s",
		url.QueryEscape(vpa), url.QueryEscape(payee), amount,
		url.QueryEscape("Ticket booking "+sessionID))
}
