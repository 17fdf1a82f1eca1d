package routes

import (
	"strings"

	"dj-booking-sync/constants"
	"dj-booking-sync/container"
	"dj-booking-sync/controllers/admin"
	"dj-booking-sync/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// SetupRoutes registers the public and admin routes. The caller starts and
// closes c.Audit.
func SetupRoutes(app *fiber.App, c *container.Container) {
	if origins := strings.TrimSpace(c.Config.App.FrontendURL); origins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     "GET,POST,OPTIONS",
			AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
			AllowCredentials: origins != "*",
		}))
	}

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	app.Get("/health", admin.Health)

	api := app.Group("/api", middleware.AuditLog(c.Audit))
	secret := c.Config.App.AdminSecret

	/*=============================================================================
	| Admin Routes
	===============================================================================*/
	adminGroup := api.Group("/admin", middleware.RequirePermissions(secret, constants.PermAdminFull))
	adminGroup.Post("/test-connection", c.AdminController.TestConnection)
	adminGroup.Post("/sync-all", c.AdminController.SyncAll)
	adminGroup.Post("/process-payment", c.AdminController.ProcessPayment)
	adminGroup.Post("/process-deposit", c.AdminController.ProcessDeposit)
	adminGroup.Post("/refund", c.AdminController.Refund)
	adminGroup.Get("/sync-status", c.AdminController.SyncStatus)

	/*=============================================================================
	| Booking Lifecycle Routes
	===============================================================================*/
	bookings := api.Group("/bookings", middleware.RequirePermissions(secret, constants.PermEventsPublish, constants.PermAdminFull))
	bookings.Post("/:id/events", c.EventController.Publish)
}
