package controllers_test

import (
	"fmt"
	"testing"

	"lms/database"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollmentApprovalWorkflow(t *testing.T) {
	app := newTestApp(t)

	_, adminToken := createTestUser(t, "Admin", "admin@test.com", "ADMIN")
	student, studentToken := createTestUser(t, "Student", "student@test.com", "STUDENT")
	course := createTestCourse(t, "Go Basics", 99.50)

	// Request enrollment
	resp := doRequest(t, app, "POST", fmt.Sprintf("/course/%d/enroll", course.ID), studentToken, fiber.Map{
		"contact_number": "1234567890",
		"address":        "1 Test Street",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "PENDING", data["status"])
	assert.Equal(t, 99.50, data["amount"])
	enrollmentID := uint(data["ID"].(float64))

	// A second request while pending conflicts
	resp = doRequest(t, app, "POST", fmt.Sprintf("/course/%d/enroll", course.ID), studentToken, fiber.Map{})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Students cannot approve
	resp = doRequest(t, app, "POST", fmt.Sprintf("/admin/enrollment/%d/approve", enrollmentID), studentToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Admin approves
	resp = doRequest(t, app, "POST", fmt.Sprintf("/admin/enrollment/%d/approve", enrollmentID), adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, "APPROVED", data["status"])

	// Approval created the progress record
	var progress courseModels.Progress
	require.NoError(t, database.Database.Db.Where("user_id = ? AND course_id = ?", student.ID, course.ID).First(&progress).Error)
	assert.Equal(t, float64(0), progress.Percentage)

	// Course counters reflect the approval
	var updated courseModels.Course
	require.NoError(t, database.Database.Db.Where("id = ?", course.ID).First(&updated).Error)
	assert.Equal(t, 1, updated.TotalEnrollments)
	assert.Equal(t, 99.50, updated.TotalRevenue)

	// A second approval of the same enrollment conflicts
	resp = doRequest(t, app, "POST", fmt.Sprintf("/admin/enrollment/%d/approve", enrollmentID), adminToken, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestRejectedEnrollmentCanBeRequestedAgain(t *testing.T) {
	app := newTestApp(t)

	_, adminToken := createTestUser(t, "Admin", "admin@test.com", "ADMIN")
	_, studentToken := createTestUser(t, "Student", "student@test.com", "STUDENT")
	course := createTestCourse(t, "Go Basics", 50)

	resp := doRequest(t, app, "POST", fmt.Sprintf("/course/%d/enroll", course.ID), studentToken, fiber.Map{})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	enrollmentID := uint(body["data"].(map[string]interface{})["ID"].(float64))

	resp = doRequest(t, app, "POST", fmt.Sprintf("/admin/enrollment/%d/reject", enrollmentID), adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Rejecting twice conflicts
	resp = doRequest(t, app, "POST", fmt.Sprintf("/admin/enrollment/%d/reject", enrollmentID), adminToken, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// The student can request again; the rejected record is superseded
	resp = doRequest(t, app, "POST", fmt.Sprintf("/course/%d/enroll", course.ID), studentToken, fiber.Map{})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	body = decodeBody(t, resp)
	newID := uint(body["data"].(map[string]interface{})["ID"].(float64))
	assert.NotEqual(t, enrollmentID, newID)

	var count int64
	database.Database.Db.Model(&courseModels.Enrollment{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestEnrollmentRequiresActiveCourse(t *testing.T) {
	app := newTestApp(t)

	_, studentToken := createTestUser(t, "Student", "student@test.com", "STUDENT")

	inactive := courseModels.Course{
		Name:        "Hidden Course",
		Description: "Not open for enrollment",
		Category:    "Testing",
		Status:      "INACTIVE",
	}
	require.NoError(t, database.Database.Db.Create(&inactive).Error)

	resp := doRequest(t, app, "POST", fmt.Sprintf("/course/%d/enroll", inactive.ID), studentToken, fiber.Map{})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestEnrollmentFeeSnapshot(t *testing.T) {
	app := newTestApp(t)

	_, studentToken := createTestUser(t, "Student", "student@test.com", "STUDENT")
	course := createTestCourse(t, "Go Basics", 100)

	resp := doRequest(t, app, "POST", fmt.Sprintf("/course/%d/enroll", course.ID), studentToken, fiber.Map{})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Price change after the request does not touch the snapshot
	require.NoError(t, database.Database.Db.Model(&courseModels.Course{}).Where("id = ?", course.ID).Update("fee", 250).Error)

	var enrollment courseModels.Enrollment
	require.NoError(t, database.Database.Db.Where("course_id = ?", course.ID).First(&enrollment).Error)
	assert.Equal(t, float64(100), enrollment.Amount)
}

func TestAdminEnrollmentListStatusFilter(t *testing.T) {
	app := newTestApp(t)

	_, adminToken := createTestUser(t, "Admin", "admin@test.com", "ADMIN")
	_, aliceToken := createTestUser(t, "Alice", "alice@test.com", "STUDENT")
	_, bobToken := createTestUser(t, "Bob", "bob@test.com", "STUDENT")
	course := createTestCourse(t, "Go Basics", 10)

	enrollAndApprove(t, app, aliceToken, adminToken, course.ID)

	resp := doRequest(t, app, "POST", fmt.Sprintf("/course/%d/enroll", course.ID), bobToken, fiber.Map{})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, "GET", "/admin/enrollment/list?status=PENDING", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	enrollments := body["data"].(map[string]interface{})["enrollments"].([]interface{})
	require.Len(t, enrollments, 1)
	assert.Equal(t, "PENDING", enrollments[0].(map[string]interface{})["status"])

	resp = doRequest(t, app, "GET", "/admin/enrollment/list?status=APPROVED", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	enrollments = body["data"].(map[string]interface{})["enrollments"].([]interface{})
	require.Len(t, enrollments, 1)
	assert.Equal(t, "APPROVED", enrollments[0].(map[string]interface{})["status"])
}

func TestEnrollmentRequestNotifiesAdmins(t *testing.T) {
	app := newTestApp(t)

	admin, _ := createTestUser(t, "Admin", "admin@test.com", "ADMIN")
	student, studentToken := createTestUser(t, "Student", "student@test.com", "STUDENT")
	course := createTestCourse(t, "Go Basics", 10)

	resp := doRequest(t, app, "POST", fmt.Sprintf("/course/%d/enroll", course.ID), studentToken, fiber.Map{})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	var adminNotifications []models.Notification
	require.NoError(t, database.Database.Db.Where("user_id = ?", admin.ID).Find(&adminNotifications).Error)
	require.NotEmpty(t, adminNotifications)

	// The student gets nothing until an admin acts
	var studentCount int64
	database.Database.Db.Model(&models.Notification{}).Where("user_id = ?", student.ID).Count(&studentCount)
	assert.Equal(t, int64(0), studentCount)
}
