package controllers

import (
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// AdminDashboardStats aggregates platform-wide counters and a trailing
// 12-month enrollment/revenue breakdown. The monthly bucketing is done in Go
// so it behaves the same on postgres, mysql and the sqlite test database.
func AdminDashboardStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalStudents int64
	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", "STUDENT", false).Count(&totalStudents)

	var activeCourses int64
	db.Model(&courseModels.Course{}).Where("status = ? AND is_deleted = ?", "ACTIVE", false).Count(&activeCourses)

	var pendingEnrollments, approvedEnrollments, rejectedEnrollments int64
	db.Model(&courseModels.Enrollment{}).Where("status = ?", courseModels.EnrollmentPending).Count(&pendingEnrollments)
	db.Model(&courseModels.Enrollment{}).Where("status = ?", courseModels.EnrollmentApproved).Count(&approvedEnrollments)
	db.Model(&courseModels.Enrollment{}).Where("status = ?", courseModels.EnrollmentRejected).Count(&rejectedEnrollments)

	var totalRevenue float64
	db.Model(&courseModels.Enrollment{}).Where("status = ?", courseModels.EnrollmentApproved).
		Select("COALESCE(SUM(amount), 0)").Scan(&totalRevenue)

	var certificatesIssued int64
	db.Model(&courseModels.Certificate{}).Count(&certificatesIssued)

	var examsTaken, examsPassed int64
	db.Model(&courseModels.Progress{}).Where("exam_attempted = ?", true).Count(&examsTaken)
	db.Model(&courseModels.Progress{}).Where("exam_passed = ?", true).Count(&examsPassed)

	// Monthly buckets over the last 12 months, keyed "2006-01".
	type MonthBucket struct {
		Month       string  `json:"month"`
		Enrollments int     `json:"enrollments"`
		Revenue     float64 `json:"revenue"`
	}

	windowStart := time.Now().AddDate(0, -11, 0)
	windowStart = time.Date(windowStart.Year(), windowStart.Month(), 1, 0, 0, 0, 0, windowStart.Location())

	var recent []courseModels.Enrollment
	db.Where("status = ? AND approved_at >= ?", courseModels.EnrollmentApproved, windowStart).Find(&recent)

	buckets := make(map[string]*MonthBucket)
	months := make([]string, 0, 12)
	for i := 0; i < 12; i++ {
		m := windowStart.AddDate(0, i, 0).Format("2006-01")
		buckets[m] = &MonthBucket{Month: m}
		months = append(months, m)
	}

	for _, e := range recent {
		if e.ApprovedAt == nil {
			continue
		}
		if b, ok := buckets[e.ApprovedAt.Format("2006-01")]; ok {
			b.Enrollments++
			b.Revenue += e.Amount
		}
	}

	monthly := make([]MonthBucket, len(months))
	for i, m := range months {
		monthly[i] = *buckets[m]
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"total_students":       totalStudents,
		"active_courses":       activeCourses,
		"pending_enrollments":  pendingEnrollments,
		"approved_enrollments": approvedEnrollments,
		"rejected_enrollments": rejectedEnrollments,
		"total_revenue":        totalRevenue,
		"certificates_issued":  certificatesIssued,
		"exams_taken":          examsTaken,
		"exams_passed":         examsPassed,
		"monthly":              monthly,
	})
}
