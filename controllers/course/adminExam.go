package controllers

import (
	"log"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// AdminCreateExam creates the course exam with its nested questions and
// options in one transaction. One exam per course; a second create is 409.
func AdminCreateExam(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var existing courseModels.Exam
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "An exam already exists for this course!", nil)
	}

	reqData, ok := c.Locals("validatedExam").(*struct {
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
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Each question must mark exactly one option as correct.
	for i, q := range reqData.Questions {
		correct := 0
		for _, opt := range q.Options {
			if opt.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false,
				"Each question needs exactly one correct option!", fiber.Map{"question_index": i})
		}
	}

	exam := courseModels.Exam{
		CourseID:          course.ID,
		Title:             reqData.Title,
		PassingPercentage: reqData.PassingPercentage,
		DurationMinutes:   reqData.DurationMinutes,
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&exam).Error; err != nil {
		tx.Rollback()
		log.Printf("Error creating exam: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create exam!", nil)
	}

	for qi, q := range reqData.Questions {
		question := courseModels.ExamQuestion{
			ExamID:       exam.ID,
			QuestionText: q.QuestionText,
			OrderIndex:   qi,
		}
		if err := tx.Create(&question).Error; err != nil {
			tx.Rollback()
			log.Printf("Error creating exam question: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create exam!", nil)
		}

		for oi, opt := range q.Options {
			option := courseModels.ExamOption{
				QuestionID: question.ID,
				OptionText: opt.OptionText,
				IsCorrect:  opt.IsCorrect,
				OrderIndex: oi,
			}
			if err := tx.Create(&option).Error; err != nil {
				tx.Rollback()
				log.Printf("Error creating exam option: %v", err)
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create exam!", nil)
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing exam: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create exam!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Exam created successfully!", exam)
}

// AdminUpdateExam edits exam-level settings. Question edits go through
// delete-and-recreate to keep authoring simple.
func AdminUpdateExam(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var exam courseModels.Exam
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).First(&exam).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Exam not found!", nil)
	}

	reqData, ok := c.Locals("validatedExamUpdate").(*struct {
		Title             string   `json:"title" validate:"omitempty,min=3"`
		PassingPercentage *float64 `json:"passing_percentage" validate:"omitempty,gte=0,lte=100"`
		DurationMinutes   *int     `json:"duration_minutes" validate:"omitempty,gte=0"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != "" {
		exam.Title = reqData.Title
	}
	if reqData.PassingPercentage != nil {
		exam.PassingPercentage = *reqData.PassingPercentage
	}
	if reqData.DurationMinutes != nil {
		exam.DurationMinutes = *reqData.DurationMinutes
	}

	if err := database.Database.Db.Save(&exam).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update exam!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exam updated successfully!", exam)
}

// AdminDeleteExam soft-deletes the exam so a fresh one can be authored.
func AdminDeleteExam(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var exam courseModels.Exam
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).First(&exam).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Exam not found!", nil)
	}

	if err := database.Database.Db.Model(&exam).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete exam!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exam deleted successfully!", nil)
}

// AdminGetExam returns the full exam including the correct answers.
func AdminGetExam(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var exam courseModels.Exam
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).First(&exam).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Exam not found!", nil)
	}

	questions, optionsByQuestion, err := loadExamQuestions(exam.ID)
	if err != nil {
		log.Printf("Error loading exam %d: %v", exam.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch exam!", nil)
	}

	type QuestionWithOptions struct {
		courseModels.ExamQuestion
		Options []courseModels.ExamOption `json:"options"`
	}

	result := make([]QuestionWithOptions, len(questions))
	for i, q := range questions {
		result[i] = QuestionWithOptions{ExamQuestion: q, Options: optionsByQuestion[q.ID]}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exam fetched successfully!", fiber.Map{
		"exam":      exam,
		"questions": result,
	})
}
