package courseValidator

import (
	"strconv"
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// paramID parses a positive numeric route parameter and stores it in Locals
// under the given key.
func paramID(param, localsKey, label string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params(param))
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+label+"!", nil)
		}
		c.Locals(localsKey, id)
		return c.Next()
	}
}

func CourseID() fiber.Handler {
	return paramID("courseId", "courseID", "course ID")
}

func ContentID() fiber.Handler {
	return paramID("contentId", "contentID", "content ID")
}

func EnrollmentID() fiber.Handler {
	return paramID("enrollmentId", "enrollmentID", "enrollment ID")
}

func TargetUserID() fiber.Handler {
	return paramID("userId", "targetUserID", "user ID")
}

// CourseList validator middleware
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page     *int   `json:"page"`
			Limit    *int   `json:"limit"`
			Category string `json:"category"`
		})

		if v := c.QueryInt("page", 0); v > 0 {
			reqData.Page = &v
		}
		if v := c.QueryInt("limit", 0); v > 0 {
			reqData.Limit = &v
		}
		reqData.Category = c.Query("category")

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

// EnrollRequest validator middleware. Enrollment requests may arrive as JSON
// or as multipart form data when a payment proof file is attached.
func EnrollRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ContactNumber   string `json:"contact_number"`
			Address         string `json:"address"`
			PaymentProofURL string `json:"payment_proof_url"`
		})

		if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
			reqData.ContactNumber = c.FormValue("contact_number")
			reqData.Address = c.FormValue("address")
			reqData.PaymentProofURL = c.FormValue("payment_proof_url")
		} else if len(c.Body()) > 0 {
			if err := c.BodyParser(reqData); err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
			}
		}

		c.Locals("validatedEnrollRequest", reqData)
		return c.Next()
	}
}

// EnrollmentList validator middleware
func EnrollmentList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page     *int   `json:"page"`
			Limit    *int   `json:"limit"`
			Status   string `json:"status"`
			CourseID *int   `json:"course_id"`
		})

		if v := c.QueryInt("page", 0); v > 0 {
			reqData.Page = &v
		}
		if v := c.QueryInt("limit", 0); v > 0 {
			reqData.Limit = &v
		}
		if v := c.QueryInt("course_id", 0); v > 0 {
			reqData.CourseID = &v
		}
		reqData.Status = c.Query("status")

		if reqData.Status != "" {
			switch reqData.Status {
			case "PENDING", "APPROVED", "REJECTED":
			default:
				return middleware.ValidationErrorResponse(c, map[string]string{
					"status": "Status must be one of: PENDING APPROVED REJECTED!",
				})
			}
		}

		c.Locals("validatedEnrollmentList", reqData)
		return c.Next()
	}
}
