package notificationValidator

import (
	"github.com/gofiber/fiber/v2"
)

// NotificationList validator middleware
func NotificationList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})

		if v := c.QueryInt("page", 0); v > 0 {
			reqData.Page = &v
		}
		if v := c.QueryInt("limit", 0); v > 0 {
			reqData.Limit = &v
		}

		c.Locals("validatedNotificationList", reqData)
		return c.Next()
	}
}
