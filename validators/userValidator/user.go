package userValidator

import (
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// UpdateProfile validator middleware
func UpdateProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name   string `json:"name" validate:"omitempty,min=2"`
			Mobile string `json:"mobile" validate:"omitempty,min=7,max=15"`
		})

		// Profile updates may carry a profile image as multipart form data.
		if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
			reqData.Name = c.FormValue("name")
			reqData.Mobile = c.FormValue("mobile")
		} else if len(c.Body()) > 0 {
			if err := c.BodyParser(reqData); err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
			}
		}

		if errors := middleware.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProfile", reqData)
		return c.Next()
	}
}

// ChangePassword validator middleware
func ChangePassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			OldPassword string `json:"old_password" validate:"required"`
			NewPassword string `json:"new_password" validate:"required,min=8"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := middleware.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPassword", reqData)
		return c.Next()
	}
}

// UserList validator middleware
func UserList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int   `json:"page"`
			Limit *int   `json:"limit"`
			Role  string `json:"role"`
		})

		if v := c.QueryInt("page", 0); v > 0 {
			reqData.Page = &v
		}
		if v := c.QueryInt("limit", 0); v > 0 {
			reqData.Limit = &v
		}
		reqData.Role = c.Query("role")

		if reqData.Role != "" && reqData.Role != "STUDENT" && reqData.Role != "ADMIN" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"role": "Role must be one of: STUDENT ADMIN!",
			})
		}

		c.Locals("validatedUserList", reqData)
		return c.Next()
	}
}
