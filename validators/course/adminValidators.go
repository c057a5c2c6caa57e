package courseValidator

import (
	"strconv"
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateCourse validator middleware. Accepts JSON or multipart form data
// when a thumbnail file is attached.
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name        string  `json:"name" validate:"required,min=3"`
			Description string  `json:"description" validate:"required,min=5"`
			Category    string  `json:"category" validate:"required"`
			Fee         float64 `json:"fee" validate:"gte=0"`
		})

		if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
			reqData.Name = c.FormValue("name")
			reqData.Description = c.FormValue("description")
			reqData.Category = c.FormValue("category")
			if fee := c.FormValue("fee"); fee != "" {
				parsed, err := strconv.ParseFloat(fee, 64)
				if err != nil {
					return middleware.ValidationErrorResponse(c, map[string]string{"fee": "Fee must be a number!"})
				}
				reqData.Fee = parsed
			}
		} else if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := middleware.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validator middleware
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name        string   `json:"name" validate:"omitempty,min=3"`
			Description string   `json:"description" validate:"omitempty,min=5"`
			Category    string   `json:"category"`
			Fee         *float64 `json:"fee" validate:"omitempty,gte=0"`
			Status      string   `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := middleware.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// CreateContent validator middleware. Uploaded media types arrive as
// multipart form data alongside the file, link types as plain JSON.
func CreateContent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title" validate:"required,min=3"`
			Description string `json:"description"`
			SequenceNo  int    `json:"sequence_no" validate:"gte=0"`
			ContentType string `json:"content_type" validate:"required,oneof=VIDEO PDF SLIDESHOW LINK YOUTUBE"`
			ExternalURL string `json:"external_url" validate:"omitempty,url"`
		})

		if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
			reqData.Title = c.FormValue("title")
			reqData.Description = c.FormValue("description")
			reqData.ContentType = c.FormValue("content_type")
			reqData.ExternalURL = c.FormValue("external_url")
			if seq := c.FormValue("sequence_no"); seq != "" {
				parsed, err := strconv.Atoi(seq)
				if err != nil {
					return middleware.ValidationErrorResponse(c, map[string]string{"sequence_no": "Sequence number must be a number!"})
				}
				reqData.SequenceNo = parsed
			}
		} else if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := middleware.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedContent", reqData)
		return c.Next()
	}
}

// UpdateContent validator middleware
func UpdateContent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title" validate:"omitempty,min=3"`
			Description string `json:"description"`
			SequenceNo  *int   `json:"sequence_no" validate:"omitempty,gte=0"`
			ExternalURL string `json:"external_url" validate:"omitempty,url"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := middleware.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedContentUpdate", reqData)
		return c.Next()
	}
}

// CreateExam validator middleware
func CreateExam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title             string  `json:"title" validate:"required,min=3"`
			PassingPercentage float64 `json:"passing_percentage" validate:"gte=0,lte=100"`
			DurationMinutes   int     `json:"duration_minutes" validate:"gte=0"`
			Questions         []struct {
				QuestionText string `json:"question_text" validate:"required,min=3"`
				Options      []struct {
					OptionText string `json:"option_text" validate:"required"`
					IsCorrect  bool   `json:"is_correct"`
				} `json:"options" validate:"required,min=2,dive"`
			} `json:"questions" validate:"required,min=1,dive"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := middleware.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedExam", reqData)
		return c.Next()
	}
}

// UpdateExam validator middleware
func UpdateExam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title             string   `json:"title" validate:"omitempty,min=3"`
			PassingPercentage *float64 `json:"passing_percentage" validate:"omitempty,gte=0,lte=100"`
			DurationMinutes   *int     `json:"duration_minutes" validate:"omitempty,gte=0"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := middleware.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedExamUpdate", reqData)
		return c.Next()
	}
}
