package controllers

import (
	"errors"
	"log"
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

// RequestEnrollment creates a PENDING enrollment for the calling student.
// A prior REJECTED enrollment is removed so the request can be retried; a
// PENDING or APPROVED one blocks with 409. The composite unique index
// backstops concurrent duplicate requests.
func RequestEnrollment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_active = ?", userID, false, true).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND status = ?", courseID, false, "ACTIVE").First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not active!", nil)
	}

	reqData, ok := c.Locals("validatedEnrollRequest").(*struct {
		ContactNumber   string `json:"contact_number"`
		Address         string `json:"address"`
		PaymentProofURL string `json:"payment_proof_url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var existing courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error; err == nil {
		if existing.Status != courseModels.EnrollmentRejected {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "An enrollment for this course already exists!", nil)
		}
		// Rejected enrollments are superseded by a fresh request.
		if err := database.Database.Db.Unscoped().Delete(&existing).Error; err != nil {
			log.Printf("Error deleting rejected enrollment %d: %v", existing.ID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to request enrollment!", nil)
		}
	}

	paymentProofURL := reqData.PaymentProofURL
	if file, err := c.FormFile("payment_proof"); err == nil && file != nil {
		url, err := utils.UploadFile(file, "payment-proofs")
		if err != nil {
			log.Printf("Payment proof upload failed: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upload payment proof!", nil)
		}
		paymentProofURL = url
	}

	enrollment := courseModels.Enrollment{
		UserID:          userID,
		CourseID:        uint(courseID),
		ContactNumber:   reqData.ContactNumber,
		Address:         reqData.Address,
		PaymentProofURL: paymentProofURL,
		Amount:          course.Fee, // fee snapshot; later price changes do not affect this request
		Status:          courseModels.EnrollmentPending,
	}

	if err := database.Database.Db.Create(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "An enrollment for this course already exists!", nil)
		}
		log.Printf("Error creating enrollment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to request enrollment!", nil)
	}

	events.Publish(events.EnrollmentRequested{Enrollment: enrollment, Student: user, Course: course})

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrollment requested successfully! Awaiting approval.", enrollment)
}

// ApproveEnrollment moves a PENDING enrollment to APPROVED, bumps the course
// counters and creates the progress record, all in one transaction.
func ApproveEnrollment(c *fiber.Ctx) error {
	admin, ok := c.Locals("currentUser").(models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("id = ?", enrollmentID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	if enrollment.Status != courseModels.EnrollmentPending {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Enrollment is not pending!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ?", enrollment.CourseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	now := time.Now()
	tx := database.Database.Db.Begin()

	// Guard the status in the WHERE clause so two admins approving at once
	// cannot both bump the counters.
	res := tx.Model(&courseModels.Enrollment{}).
		Where("id = ? AND status = ?", enrollment.ID, courseModels.EnrollmentPending).
		Updates(map[string]interface{}{
			"status":      courseModels.EnrollmentApproved,
			"approved_by": admin.ID,
			"approved_at": now,
		})
	if res.Error != nil {
		tx.Rollback()
		log.Printf("Error approving enrollment %d: %v", enrollment.ID, res.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve enrollment!", nil)
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Enrollment is not pending!", nil)
	}

	if err := tx.Model(&courseModels.Course{}).Where("id = ?", course.ID).
		Updates(map[string]interface{}{
			"total_enrollments": gorm.Expr("total_enrollments + 1"),
			"total_revenue":     gorm.Expr("total_revenue + ?", enrollment.Amount),
		}).Error; err != nil {
		tx.Rollback()
		log.Printf("Error updating course counters: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve enrollment!", nil)
	}

	progress := courseModels.Progress{
		UserID:   enrollment.UserID,
		CourseID: enrollment.CourseID,
	}
	if err := tx.Create(&progress).Error; err != nil {
		tx.Rollback()
		log.Printf("Error creating progress record: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve enrollment!", nil)
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing approval: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve enrollment!", nil)
	}

	enrollment.Status = courseModels.EnrollmentApproved
	enrollment.ApprovedBy = &admin.ID
	enrollment.ApprovedAt = &now

	var student models.User
	database.Database.Db.Where("id = ?", enrollment.UserID).First(&student)
	events.Publish(events.EnrollmentApproved{Enrollment: enrollment, Student: student, Course: course})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment approved successfully!", enrollment)
}

// RejectEnrollment marks a PENDING enrollment as REJECTED. Terminal until the
// student requests again.
func RejectEnrollment(c *fiber.Ctx) error {
	if _, ok := c.Locals("currentUser").(models.User); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("id = ?", enrollmentID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	if enrollment.Status != courseModels.EnrollmentPending {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Enrollment is not pending!", nil)
	}

	res := database.Database.Db.Model(&courseModels.Enrollment{}).
		Where("id = ? AND status = ?", enrollment.ID, courseModels.EnrollmentPending).
		Update("status", courseModels.EnrollmentRejected)
	if res.Error != nil {
		log.Printf("Error rejecting enrollment %d: %v", enrollment.ID, res.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reject enrollment!", nil)
	}
	if res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Enrollment is not pending!", nil)
	}

	enrollment.Status = courseModels.EnrollmentRejected

	var student models.User
	var course courseModels.Course
	database.Database.Db.Where("id = ?", enrollment.UserID).First(&student)
	database.Database.Db.Where("id = ?", enrollment.CourseID).First(&course)
	events.Publish(events.EnrollmentRejected{Enrollment: enrollment, Student: student, Course: course})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment rejected.", enrollment)
}

// GetUserEnrollments lists the caller's enrollments with course info.
func GetUserEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	type EnrollmentWithCourse struct {
		courseModels.Enrollment
		CourseName string  `json:"course_name"`
		CourseFee  float64 `json:"course_fee"`
		Category   string  `json:"category"`
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ?", userID).Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	result := make([]EnrollmentWithCourse, len(enrollments))
	for i, e := range enrollments {
		var course courseModels.Course
		database.Database.Db.Where("id = ?", e.CourseID).First(&course)
		result[i] = EnrollmentWithCourse{
			Enrollment: e,
			CourseName: course.Name,
			CourseFee:  course.Fee,
			Category:   course.Category,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": result,
		"total":       len(result),
	})
}

// AdminGetEnrollments lists enrollments across courses with status filter.
func AdminGetEnrollments(c *fiber.Ctx) error {
	reqData, _ := c.Locals("validatedEnrollmentList").(*struct {
		Page     *int   `json:"page"`
		Limit    *int   `json:"limit"`
		Status   string `json:"status"`
		CourseID *int   `json:"course_id"`
	})

	page := 1
	limit := 10
	if reqData != nil && reqData.Page != nil && *reqData.Page > 0 {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil && *reqData.Limit > 0 {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Enrollment{})
	if reqData != nil && reqData.Status != "" {
		db = db.Where("status = ?", reqData.Status)
	}
	if reqData != nil && reqData.CourseID != nil && *reqData.CourseID > 0 {
		db = db.Where("course_id = ?", *reqData.CourseID)
	}

	var total int64
	db.Count(&total)

	type EnrollmentWithUser struct {
		courseModels.Enrollment
		UserName   string `json:"user_name"`
		UserEmail  string `json:"user_email"`
		CourseName string `json:"course_name"`
	}

	var enrollments []courseModels.Enrollment
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	result := make([]EnrollmentWithUser, len(enrollments))
	for i, e := range enrollments {
		var enrolledUser models.User
		var course courseModels.Course
		database.Database.Db.Where("id = ?", e.UserID).First(&enrolledUser)
		database.Database.Db.Where("id = ?", e.CourseID).First(&course)
		result[i] = EnrollmentWithUser{
			Enrollment: e,
			UserName:   enrolledUser.Name,
			UserEmail:  enrolledUser.Email,
			CourseName: course.Name,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": result,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
