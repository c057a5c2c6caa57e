package userRoutes

import (
	userControllers "lms/controllers/userControllers"
	"lms/middleware"
	userValidators "lms/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up profile routes and admin user management routes
func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Get("/profile", middleware.JWTMiddleware, userControllers.GetProfile)
	userGroup.Patch("/profile", middleware.JWTMiddleware, userValidators.UpdateProfile(), userControllers.UpdateProfile)
	userGroup.Put("/change/password", middleware.JWTMiddleware, userValidators.ChangePassword(), userControllers.ChangePassword)

	adminGroup := app.Group("/admin/user", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))
	adminGroup.Get("/list", userValidators.UserList(), userControllers.AdminListUsers)
	adminGroup.Patch("/:id/toggle-active", userControllers.AdminToggleUserActive)
}
