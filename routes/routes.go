package routes

import (
	"os"

	"ticket-booking/constants"
	"ticket-booking/controllers/admin"
	"ticket-booking/controllers/auth"
	"ticket-booking/controllers/booking"
	emailService "ticket-booking/httpServices/email"
	"ticket-booking/logger"
	"ticket-booking/middleware"
	"ticket-booking/services/booking_event"
	"ticket-booking/services/bookingflow"
	"ticket-booking/services/duplicate"
	"ticket-booking/services/fraud"
	"ticket-booking/storage"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, store storage.Store) {
	emailClient := emailService.NewClient(os.Getenv("EMAILJS_BASE_URL"))
	asyncLogger := logger.NewAsyncLogger(db)
	events := booking_event.NewRecorder(db)

	guard := fraud.NewGuard(store)
	checker := duplicate.NewChecker(store)
	machine := bookingflow.NewMachine(store, guard, checker)
	machine.Notifier = emailClient
	machine.Events = events

	authController := auth.NewAuthController(asyncLogger)
	bookingController := booking.NewBookingController(machine, store, asyncLogger)
	adminController := admin.NewAdminController(db, store, guard, events, emailClient, asyncLogger)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Get("/event/countdown", bookingController.EventCountdown)
	api.Post("/admin/login", authController.Login)

	/*=============================================================================
	| Booking Routes
	===============================================================================*/
	bookingGroup := api.Group("/booking")

	bookingGroup.Post("/select-plan", bookingController.SelectPlan)
	bookingGroup.Post("/details", bookingController.SubmitDetails)
	bookingGroup.Get("/status/:session_id", bookingController.Status)
	bookingGroup.Get("/qr/:session_id", bookingController.PaymentQR)
	bookingGroup.Post("/confirm-payment", bookingController.ConfirmPayment)
	bookingGroup.Post("/verify", bookingController.SubmitVerification)
	bookingGroup.Post("/back", bookingController.GoBack)
	bookingGroup.Post("/cancel", bookingController.Cancel)

	/*=============================================================================
	| Admin Routes
	===============================================================================*/
	adminGroup := api.Group("/admin")

	adminGroup.Post("/logout", middleware.RequireAuthentication(), authController.LogOut)

	adminGroup.Get("/bookings/pending", middleware.RequirePermissions(
		constants.PermSuperAdminFull, constants.PermVerifierFull, constants.PermSupportFull,
	), adminController.ListPendingBookings)

	adminGroup.Get("/bookings/verified", middleware.RequirePermissions(
		constants.PermSuperAdminFull, constants.PermVerifierFull, constants.PermSupportFull,
	), adminController.ListVerifiedBookings)

	adminGroup.Post("/bookings/verify", middleware.RequirePermissions(
		constants.PermSuperAdminFull, constants.PermVerifierFull,
	), adminController.VerifyBooking)

	adminGroup.Post("/bookings/reject", middleware.RequirePermissions(
		constants.PermSuperAdminFull, constants.PermVerifierFull,
	), adminController.RejectBooking)

	adminGroup.Post("/bookings/payment-proof", middleware.RequirePermissions(
		constants.PermSuperAdminFull, constants.PermVerifierFull,
	), adminController.ParsePaymentProof)

	adminGroup.Get("/fraud/:identifier", middleware.RequirePermissions(
		constants.PermSuperAdminFull, constants.PermVerifierFull, constants.PermSupportFull,
	), adminController.FraudStatus)

	adminGroup.Post("/fraud/unblock", middleware.RequirePermissions(
		constants.PermSuperAdminFull,
	), adminController.Unblock)
}
