package controllers

import (
	"errors"
	"log"
	"strconv"
	"time"

	"lms/database"
	"lms/events"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// examQuestionView is a question with correctness flags stripped, safe to
// hand to a student taking the exam.
type examQuestionView struct {
	ID           uint     `json:"id"`
	QuestionText string   `json:"question_text"`
	Options      []string `json:"options"`
}

func loadExamQuestions(examID uint) ([]courseModels.ExamQuestion, map[uint][]courseModels.ExamOption, error) {
	var questions []courseModels.ExamQuestion
	if err := database.Database.Db.Where("exam_id = ?", examID).Order("order_index asc, id asc").Find(&questions).Error; err != nil {
		return nil, nil, err
	}

	optionsByQuestion := make(map[uint][]courseModels.ExamOption, len(questions))
	for _, q := range questions {
		var options []courseModels.ExamOption
		if err := database.Database.Db.Where("question_id = ?", q.ID).Order("order_index asc, id asc").Find(&options).Error; err != nil {
			return nil, nil, err
		}
		optionsByQuestion[q.ID] = options
	}
	return questions, optionsByQuestion, nil
}

// examGate checks eligibility: approved enrollment, progress at 100%, no
// prior attempt. Returns the progress row on success.
func examGate(c *fiber.Ctx, userID uint, courseID int) (*courseModels.Progress, error) {
	var progress courseModels.Progress
	if err := database.Database.Db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "No approved enrollment for this course!", nil)
	}

	if progress.ExamAttempted {
		return nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "Exam already attempted!", nil)
	}

	percentage, _, _ := recomputePercentage(database.Database.Db, userID, uint(courseID))
	if percentage < 100 {
		return nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "Complete all course content before taking the exam!", nil)
	}
	progress.Percentage = percentage

	return &progress, nil
}

// GetExamForTaking returns the exam questions with the correct answers
// stripped. Only eligible students (100% progress, no prior attempt) get it.
func GetExamForTaking(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var exam courseModels.Exam
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).First(&exam).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No exam found for this course!", nil)
	}

	if _, err := examGate(c, userID, courseID); err != nil {
		return err
	}

	questions, optionsByQuestion, err := loadExamQuestions(exam.ID)
	if err != nil {
		log.Printf("Error loading exam %d: %v", exam.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch exam!", nil)
	}

	views := make([]examQuestionView, len(questions))
	for i, q := range questions {
		options := optionsByQuestion[q.ID]
		texts := make([]string, len(options))
		for j, opt := range options {
			texts[j] = opt.OptionText
		}
		views[i] = examQuestionView{ID: q.ID, QuestionText: q.QuestionText, Options: texts}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exam fetched successfully!", fiber.Map{
		"exam_id":            exam.ID,
		"title":              exam.Title,
		"passing_percentage": exam.PassingPercentage,
		"duration_minutes":   exam.DurationMinutes,
		"questions":          views,
	})
}

// SubmitExam scores the answers and records the single permitted attempt.
// The attempt flag is flipped with a conditional update inside the scoring
// transaction, so two racing submissions cannot both get through; the
// certificate's unique key is the final backstop and maps to 409.
func SubmitExam(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var exam courseModels.Exam
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).First(&exam).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No exam found for this course!", nil)
	}

	progress, gateErr := examGate(c, userID, courseID)
	if gateErr != nil {
		return gateErr
	}

	// Keys are question IDs; values are selected option indexes. Anything
	// missing or malformed scores as incorrect rather than rejecting the
	// submission.
	reqData := new(struct {
		Answers map[string]interface{} `json:"answers"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	questions, optionsByQuestion, err := loadExamQuestions(exam.ID)
	if err != nil {
		log.Printf("Error loading exam %d: %v", exam.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit exam!", nil)
	}

	correctCount := int64(0)
	for _, q := range questions {
		options := optionsByQuestion[q.ID]

		raw, present := reqData.Answers[strconv.FormatUint(uint64(q.ID), 10)]
		if !present {
			continue
		}
		idx, ok := answerIndex(raw)
		if !ok || idx < 0 || idx >= len(options) {
			continue
		}
		if options[idx].IsCorrect {
			correctCount++
		}
	}

	score := utils.Percentage(correctCount, int64(len(questions)))
	passed := len(questions) > 0 && score >= exam.PassingPercentage
	now := time.Now()

	var certificate *courseModels.Certificate

	tx := database.Database.Db.Begin()

	// Single atomic check-and-set on the attempt flag.
	res := tx.Model(&courseModels.Progress{}).
		Where("user_id = ? AND course_id = ? AND exam_attempted = ?", userID, courseID, false).
		Updates(map[string]interface{}{
			"percentage":        progress.Percentage,
			"exam_attempted":    true,
			"exam_score":        score,
			"exam_passed":       passed,
			"exam_attempted_at": now,
		})
	if res.Error != nil {
		tx.Rollback()
		log.Printf("Error recording exam attempt: %v", res.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit exam!", nil)
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Exam already attempted!", nil)
	}

	if passed {
		cert := courseModels.Certificate{
			UserID:            userID,
			CourseID:          uint(courseID),
			ExamID:            exam.ID,
			CertificateNumber: utils.GenerateCertificateNumber(),
			Score:             score,
			IssuedAt:          now,
		}
		if err := tx.Create(&cert).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate already exists for this course!", nil)
			}
			log.Printf("Error issuing certificate: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit exam!", nil)
		}
		certificate = &cert
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing exam submission: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit exam!", nil)
	}

	if certificate != nil {
		var course courseModels.Course
		database.Database.Db.Where("id = ?", courseID).First(&course)
		events.Publish(events.ExamPassed{Student: user, Course: course, Certificate: *certificate})
	}

	data := fiber.Map{
		"score":           score,
		"passed":          passed,
		"correct_answers": correctCount,
		"total_questions": len(questions),
	}
	if certificate != nil {
		data["certificate"] = certificate
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exam submitted successfully!", data)
}

// answerIndex coerces a decoded JSON value into an option index. Whole-number
// floats are what encoding/json produces; anything else is malformed.
func answerIndex(raw interface{}) (int, bool) {
	switch v := raw.(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}
