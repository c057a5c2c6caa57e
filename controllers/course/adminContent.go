package controllers

import (
	"log"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

func contentTypeNeedsUpload(contentType string) bool {
	switch contentType {
	case courseModels.ContentVideo, courseModels.ContentPdf, courseModels.ContentSlideshow:
		return true
	}
	return false
}

// AdminCreateContent adds one content unit to a course. Media types carry a
// multipart "media" file; link types carry an external URL instead.
func AdminCreateContent(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedContent").(*struct {
		Title       string `json:"title" validate:"required,min=3"`
		Description string `json:"description"`
		SequenceNo  int    `json:"sequence_no" validate:"gte=0"`
		ContentType string `json:"content_type" validate:"required,oneof=VIDEO PDF SLIDESHOW LINK YOUTUBE"`
		ExternalURL string `json:"external_url" validate:"omitempty,url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	unit := courseModels.ContentUnit{
		CourseID:    course.ID,
		Title:       reqData.Title,
		Description: reqData.Description,
		SequenceNo:  reqData.SequenceNo,
		ContentType: reqData.ContentType,
		ExternalURL: reqData.ExternalURL,
	}

	if contentTypeNeedsUpload(reqData.ContentType) {
		file, err := c.FormFile("media")
		if err != nil || file == nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Media file is required for this content type!", nil)
		}
		url, err := utils.UploadFile(file, "course-content")
		if err != nil {
			log.Printf("Content upload failed: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upload media!", nil)
		}
		unit.MediaURL = url
	} else if reqData.ExternalURL == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "External URL is required for this content type!", nil)
	}

	if err := database.Database.Db.Create(&unit).Error; err != nil {
		log.Printf("Error creating content unit: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create content unit!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Content unit created successfully!", unit)
}

// AdminUpdateContent edits a content unit in place. Changing the set of
// units retroactively shifts every student's derived percentage; that is
// accepted behavior.
func AdminUpdateContent(c *fiber.Ctx) error {
	contentID := c.Locals("contentID").(int)

	var unit courseModels.ContentUnit
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", contentID, false).First(&unit).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content unit not found!", nil)
	}

	reqData, ok := c.Locals("validatedContentUpdate").(*struct {
		Title       string `json:"title" validate:"omitempty,min=3"`
		Description string `json:"description"`
		SequenceNo  *int   `json:"sequence_no" validate:"omitempty,gte=0"`
		ExternalURL string `json:"external_url" validate:"omitempty,url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != "" {
		unit.Title = reqData.Title
	}
	if reqData.Description != "" {
		unit.Description = reqData.Description
	}
	if reqData.SequenceNo != nil {
		unit.SequenceNo = *reqData.SequenceNo
	}
	if reqData.ExternalURL != "" {
		unit.ExternalURL = reqData.ExternalURL
	}

	if file, err := c.FormFile("media"); err == nil && file != nil {
		url, err := utils.UploadFile(file, "course-content")
		if err != nil {
			log.Printf("Content upload failed: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upload media!", nil)
		}
		unit.MediaURL = url
	}

	if err := database.Database.Db.Save(&unit).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update content unit!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content unit updated successfully!", unit)
}

// AdminDeleteContent soft-deletes a content unit. Existing completions of it
// stop counting and the denominator shrinks for everyone.
func AdminDeleteContent(c *fiber.Ctx) error {
	contentID := c.Locals("contentID").(int)

	var unit courseModels.ContentUnit
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", contentID, false).First(&unit).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content unit not found!", nil)
	}

	if err := database.Database.Db.Model(&unit).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete content unit!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content unit deleted successfully!", nil)
}

// GetCourseContent lists a course's units in sequence order for an enrolled
// student, each annotated with the caller's completion flag.
func GetCourseContent(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND status = ?", userID, courseID, courseModels.EnrollmentApproved).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "No approved enrollment for this course!", nil)
	}

	var units []courseModels.ContentUnit
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("sequence_no asc").Find(&units).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course content!", nil)
	}

	type ContentWithCompletion struct {
		courseModels.ContentUnit
		IsCompleted bool `json:"is_completed"`
	}

	result := make([]ContentWithCompletion, len(units))
	for i, unit := range units {
		result[i] = ContentWithCompletion{ContentUnit: unit}
		var completion courseModels.ContentCompletion
		if err := database.Database.Db.Where("user_id = ? AND content_unit_id = ?", userID, unit.ID).First(&completion).Error; err == nil {
			result[i].IsCompleted = true
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course content fetched successfully!", fiber.Map{
		"contents": result,
		"total":    len(result),
	})
}
