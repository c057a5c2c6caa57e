package controllers

import (
	"errors"
	"log"
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// recomputePercentage derives the completion percentage for (user, course)
// against the live content-unit count. Completions of since-deleted units do
// not count, and the denominator is whatever the course holds right now, so
// content changes retroactively shift every student's percentage.
func recomputePercentage(db *gorm.DB, userID, courseID uint) (percentage float64, completed, total int64) {
	db.Model(&courseModels.ContentUnit{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Count(&total)

	db.Model(&courseModels.ContentCompletion{}).
		Joins("JOIN content_units ON content_completions.content_unit_id = content_units.id").
		Where("content_completions.user_id = ? AND content_completions.course_id = ? AND content_units.is_deleted = ?", userID, courseID, false).
		Count(&completed)

	return utils.Percentage(completed, total), completed, total
}

// MarkContentComplete records one content unit as completed for the caller
// and refreshes the derived percentage.
func MarkContentComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	contentID := c.Locals("contentID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND status = ?", userID, courseID, courseModels.EnrollmentApproved).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "No approved enrollment for this course!", nil)
	}

	var unit courseModels.ContentUnit
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", contentID, courseID, false).First(&unit).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content unit not found!", nil)
	}

	var existing courseModels.ContentCompletion
	if err := database.Database.Db.Where("user_id = ? AND content_unit_id = ?", userID, contentID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Content already marked as completed!", nil)
	}

	completion := courseModels.ContentCompletion{
		UserID:        userID,
		CourseID:      uint(courseID),
		ContentUnitID: uint(contentID),
	}
	if err := database.Database.Db.Create(&completion).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Content already marked as completed!", nil)
		}
		log.Printf("Error creating completion: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark content as completed!", nil)
	}

	percentage, completed, total := recomputePercentage(database.Database.Db, userID, uint(courseID))

	now := time.Now()
	if err := database.Database.Db.Model(&courseModels.Progress{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Updates(map[string]interface{}{
			"percentage":       percentage,
			"last_accessed_at": now,
		}).Error; err != nil {
		log.Printf("Error updating progress: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content marked as completed successfully!", fiber.Map{
		"completion":      completion,
		"percentage":      percentage,
		"completed_units": completed,
		"total_units":     total,
	})
}

// GetProgress returns the caller's progress snapshot for a course. The
// percentage is recomputed on read so content changes show up immediately.
func GetProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var progress courseModels.Progress
	if err := database.Database.Db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No progress found for this course!", nil)
	}

	percentage, completed, total := recomputePercentage(database.Database.Db, userID, uint(courseID))
	if percentage != progress.Percentage {
		database.Database.Db.Model(&progress).Update("percentage", percentage)
		progress.Percentage = percentage
	}

	var completions []courseModels.ContentCompletion
	database.Database.Db.Where("user_id = ? AND course_id = ?", userID, courseID).Find(&completions)

	completedIDs := make([]uint, len(completions))
	for i, cc := range completions {
		completedIDs[i] = cc.ContentUnitID
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"progress":        progress,
		"completed_ids":   completedIDs,
		"completed_units": completed,
		"total_units":     total,
	})
}

// AdminGetStudentProgress returns all progress records of one student.
func AdminGetStudentProgress(c *fiber.Ctx) error {
	targetUserID := c.Locals("targetUserID").(int)

	var target models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", targetUserID, false).First(&target).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	type ProgressWithCourse struct {
		courseModels.Progress
		CourseName string `json:"course_name"`
	}

	var records []courseModels.Progress
	if err := database.Database.Db.Where("user_id = ?", targetUserID).Find(&records).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	result := make([]ProgressWithCourse, len(records))
	for i, p := range records {
		percentage, _, _ := recomputePercentage(database.Database.Db, p.UserID, p.CourseID)
		p.Percentage = percentage

		var course courseModels.Course
		database.Database.Db.Where("id = ?", p.CourseID).First(&course)
		result[i] = ProgressWithCourse{Progress: p, CourseName: course.Name}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student progress fetched successfully!", fiber.Map{
		"student":  target,
		"progress": result,
	})
}
