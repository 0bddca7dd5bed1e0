package admin

import (
	emailService "ticket-booking/httpServices/email"
	"ticket-booking/logger"
	"ticket-booking/services"
	"ticket-booking/services/booking_event"
	"ticket-booking/services/fraud"
	"ticket-booking/storage"
	"ticket-booking/types"
	"ticket-booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Notifier delivers the verification outcome email, best-effort.
type Notifier interface {
	SendBookingEmail(params emailService.TemplateParams) error
}

// AdminController handles the manual verification console HTTP requests
type AdminController struct {
	DB          *gorm.DB
	Store       storage.Store
	Guard       *fraud.Guard
	Events      *booking_event.Recorder
	Notifier    Notifier
	Permissions *services.PermissionService
	Logger      *logger.AsyncLogger
}

// NewAdminController creates a new admin controller
func NewAdminController(db *gorm.DB, store storage.Store, guard *fraud.Guard, events *booking_event.Recorder, notifier Notifier, asyncLogger *logger.AsyncLogger) *AdminController {
	return &AdminController{
		DB:          db,
		Store:       store,
		Guard:       guard,
		Events:      events,
		Notifier:    notifier,
		Permissions: services.NewPermissionService(),
		Logger:      asyncLogger,
	}
}

// Helper function to log API requests and responses
func (ac *AdminController) logAPIRequest(c *fiber.Ctx) {
	logEntry := utils.CreateSanitizedLogEntry(c)
	ac.Logger.Log(logEntry)
}

// Helper function to send response and log in one call
func (ac *AdminController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	ac.logAPIRequest(c)
	return result
}
