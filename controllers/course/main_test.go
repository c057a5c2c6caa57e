package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"lms/config"
	"lms/database"
	"lms/events"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	authRoutes "lms/routers/authRoutes"
	courseRoutes "lms/routers/courseRoutes"
	notificationRoutes "lms/routers/notificationRoutes"
	userRoutes "lms/routers/userRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// newTestApp builds the full route table against a fresh in-memory database.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	config.LoadConfig()
	database.ConnectTestDb()

	events.Reset()
	events.Register(events.NewNotifier())

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)
	notificationRoutes.SetupNotificationRoutes(app)
	return app
}

func createTestUser(t *testing.T, name, email, role string) (models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Name:     name,
		Email:    email,
		Role:     role,
		Password: string(hash),
		IsActive: true,
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)

	return user, token
}

func createTestCourse(t *testing.T, name string, fee float64) courseModels.Course {
	t.Helper()

	course := courseModels.Course{
		Name:        name,
		Description: "A course used by the test suite",
		Category:    "Testing",
		Fee:         fee,
		Status:      "ACTIVE",
	}
	require.NoError(t, database.Database.Db.Create(&course).Error)
	return course
}

func addContentUnits(t *testing.T, courseID uint, count int) []courseModels.ContentUnit {
	t.Helper()

	units := make([]courseModels.ContentUnit, count)
	for i := 0; i < count; i++ {
		units[i] = courseModels.ContentUnit{
			CourseID:    courseID,
			Title:       fmt.Sprintf("Unit %d", i+1),
			SequenceNo:  i + 1,
			ContentType: courseModels.ContentYoutube,
			ExternalURL: "https://youtube.com/watch?v=test",
		}
		require.NoError(t, database.Database.Db.Create(&units[i]).Error)
	}
	return units
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// enrollAndApprove walks a student through the request/approve workflow and
// returns the enrollment ID.
func enrollAndApprove(t *testing.T, app *fiber.App, studentToken, adminToken string, courseID uint) uint {
	t.Helper()

	resp := doRequest(t, app, "POST", fmt.Sprintf("/course/%d/enroll", courseID), studentToken, fiber.Map{
		"contact_number": "1234567890",
		"address":        "1 Test Street",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	enrollmentID := uint(data["ID"].(float64))

	resp = doRequest(t, app, "POST", fmt.Sprintf("/admin/enrollment/%d/approve", enrollmentID), adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	return enrollmentID
}

// completeAllContent marks every live unit of the course completed.
func completeAllContent(t *testing.T, app *fiber.App, studentToken string, courseID uint, units []courseModels.ContentUnit) {
	t.Helper()

	for _, unit := range units {
		resp := doRequest(t, app, "POST", fmt.Sprintf("/course/%d/content/%d/complete", courseID, unit.ID), studentToken, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}
}
