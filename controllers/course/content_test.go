package controllers_test

import (
	"fmt"
	"testing"

	"lms/database"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminContentManagement(t *testing.T) {
	app := newTestApp(t)

	_, adminToken := createTestUser(t, "Admin", "admin@test.com", "ADMIN")
	course := createTestCourse(t, "Go Basics", 10)

	// Link types carry an external URL
	resp := doRequest(t, app, "POST", fmt.Sprintf("/admin/course/%d/content", course.ID), adminToken, fiber.Map{
		"title":        "Intro video",
		"sequence_no":  1,
		"content_type": "YOUTUBE",
		"external_url": "https://youtube.com/watch?v=intro",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	unitID := uint(body["data"].(map[string]interface{})["ID"].(float64))

	// A YOUTUBE unit without a URL is rejected
	resp = doRequest(t, app, "POST", fmt.Sprintf("/admin/course/%d/content", course.ID), adminToken, fiber.Map{
		"title":        "Broken link unit",
		"content_type": "LINK",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// An uploaded media type without a file is rejected
	resp = doRequest(t, app, "POST", fmt.Sprintf("/admin/course/%d/content", course.ID), adminToken, fiber.Map{
		"title":        "Missing video file",
		"content_type": "VIDEO",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Unknown content types never get past validation
	resp = doRequest(t, app, "POST", fmt.Sprintf("/admin/course/%d/content", course.ID), adminToken, fiber.Map{
		"title":        "Strange unit",
		"content_type": "HOLOGRAM",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()

	// Edit in place
	resp = doRequest(t, app, "PUT", fmt.Sprintf("/admin/content/%d", unitID), adminToken, fiber.Map{
		"title":       "Intro video (remastered)",
		"sequence_no": 5,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var stored courseModels.ContentUnit
	require.NoError(t, database.Database.Db.Where("id = ?", unitID).First(&stored).Error)
	assert.Equal(t, "Intro video (remastered)", stored.Title)
	assert.Equal(t, 5, stored.SequenceNo)

	// Soft delete
	resp = doRequest(t, app, "DELETE", fmt.Sprintf("/admin/content/%d", unitID), adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	require.NoError(t, database.Database.Db.Where("id = ?", unitID).First(&stored).Error)
	assert.True(t, stored.IsDeleted)

	// Deleted units cannot be edited
	resp = doRequest(t, app, "PUT", fmt.Sprintf("/admin/content/%d", unitID), adminToken, fiber.Map{"title": "Ghost"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestCourseContentRequiresApprovedEnrollment(t *testing.T) {
	app := newTestApp(t)

	_, adminToken := createTestUser(t, "Admin", "admin@test.com", "ADMIN")
	_, studentToken := createTestUser(t, "Student", "student@test.com", "STUDENT")
	course := createTestCourse(t, "Go Basics", 10)
	units := addContentUnits(t, course.ID, 3)

	resp := doRequest(t, app, "GET", fmt.Sprintf("/course/%d/content", course.ID), studentToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	enrollAndApprove(t, app, studentToken, adminToken, course.ID)
	completeAllContent(t, app, studentToken, course.ID, units[:1])

	resp = doRequest(t, app, "GET", fmt.Sprintf("/course/%d/content", course.ID), studentToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	contents := body["data"].(map[string]interface{})["contents"].([]interface{})
	require.Len(t, contents, 3)

	first := contents[0].(map[string]interface{})
	assert.Equal(t, true, first["is_completed"])
	second := contents[1].(map[string]interface{})
	assert.Equal(t, false, second["is_completed"])
}
