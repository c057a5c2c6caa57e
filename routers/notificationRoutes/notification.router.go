package notificationRoutes

import (
	notificationControllers "lms/controllers/notification"
	"lms/middleware"
	"lms/realtime"
	notificationValidators "lms/validators/notification"

	"github.com/gofiber/fiber/v2"
)

// SetupNotificationRoutes sets up the notification center routes and the
// websocket push endpoint.
func SetupNotificationRoutes(app *fiber.App) {
	notificationGroup := app.Group("/notification", middleware.JWTMiddleware)

	notificationGroup.Get("/list", notificationValidators.NotificationList(), notificationControllers.GetNotifications)
	notificationGroup.Patch("/read-all", notificationControllers.MarkAllNotificationsRead)
	notificationGroup.Patch("/:id/read", notificationControllers.MarkNotificationRead)
	notificationGroup.Delete("/:id", notificationControllers.DeleteNotification)

	// Live push channel. Browsers cannot set headers on upgrade requests, so
	// the JWT middleware also accepts a token query parameter here.
	app.Use("/ws", realtime.UpgradeRequired)
	app.Get("/ws", middleware.JWTMiddleware, realtime.Handler())
}
