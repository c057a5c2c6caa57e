package controllers_test

import (
	"fmt"
	"io"
	"strconv"
	"testing"
	"time"

	"lms/database"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// earnCertificate walks a student through the whole flow and returns the
// certificate number.
func earnCertificate(t *testing.T, app *fiber.App, studentToken, adminToken string, course courseModels.Course) string {
	t.Helper()

	units := addContentUnits(t, course.ID, 1)
	createExamViaAPI(t, app, adminToken, course.ID, 50)
	enrollAndApprove(t, app, studentToken, adminToken, course.ID)
	completeAllContent(t, app, studentToken, course.ID, units)

	ids := fetchExamQuestions(t, app, studentToken, course.ID)
	answers := fiber.Map{
		strconv.FormatUint(uint64(ids[0]), 10): 0,
		strconv.FormatUint(uint64(ids[1]), 10): 1,
	}
	resp := doRequest(t, app, "POST", fmt.Sprintf("/course/%d/exam/submit", course.ID), studentToken, fiber.Map{"answers": answers})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	cert := body["data"].(map[string]interface{})["certificate"].(map[string]interface{})
	return cert["certificate_number"].(string)
}

func TestCertificatePublicVerification(t *testing.T) {
	app := newTestApp(t)

	_, adminToken := createTestUser(t, "Admin", "admin@test.com", "ADMIN")
	_, studentToken := createTestUser(t, "Jane Learner", "jane@test.com", "STUDENT")
	course := createTestCourse(t, "Go Basics", 10)

	number := earnCertificate(t, app, studentToken, adminToken, course)

	// No token required for verification
	resp := doRequest(t, app, "GET", "/certificate/verify/"+number, "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, number, data["certificate_number"])
	assert.Equal(t, "Jane Learner", data["student_name"])
	assert.Equal(t, "Go Basics", data["course_name"])
	assert.Equal(t, float64(100), data["score"])

	resp = doRequest(t, app, "GET", "/certificate/verify/CERT-00000000000000-deadbeef", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestCertificateDownloadOwnership(t *testing.T) {
	app := newTestApp(t)

	_, adminToken := createTestUser(t, "Admin", "admin@test.com", "ADMIN")
	_, ownerToken := createTestUser(t, "Owner", "owner@test.com", "STUDENT")
	_, otherToken := createTestUser(t, "Other", "other@test.com", "STUDENT")
	course := createTestCourse(t, "Go Basics", 10)

	number := earnCertificate(t, app, ownerToken, adminToken, course)

	resp := doRequest(t, app, "GET", fmt.Sprintf("/certificate/%s/download", number), ownerToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	pdf, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.True(t, len(pdf) > 4 && string(pdf[:4]) == "%PDF")

	// Another student is locked out, an admin is not
	resp = doRequest(t, app, "GET", fmt.Sprintf("/certificate/%s/download", number), otherToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, "GET", fmt.Sprintf("/certificate/%s/download", number), adminToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestUserAndAdminCertificateLists(t *testing.T) {
	app := newTestApp(t)

	_, adminToken := createTestUser(t, "Admin", "admin@test.com", "ADMIN")
	_, studentToken := createTestUser(t, "Student", "student@test.com", "STUDENT")
	course := createTestCourse(t, "Go Basics", 10)

	number := earnCertificate(t, app, studentToken, adminToken, course)

	resp := doRequest(t, app, "GET", "/user/certificates", studentToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	certs := body["data"].(map[string]interface{})["certificates"].([]interface{})
	require.Len(t, certs, 1)
	first := certs[0].(map[string]interface{})
	assert.Equal(t, number, first["certificate_number"])
	assert.Equal(t, "Go Basics", first["course_name"])

	resp = doRequest(t, app, "GET", "/admin/certificates/issued", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	certs = body["data"].(map[string]interface{})["certificates"].([]interface{})
	require.Len(t, certs, 1)
	assert.Equal(t, "Student", certs[0].(map[string]interface{})["student_name"])
}

func TestCertificateNumberFormat(t *testing.T) {
	before := time.Now()
	number := utils.GenerateCertificateNumber()

	require.Regexp(t, `^CERT-\d{14}-[0-9a-f]{8}$`, number)

	stamp := number[5:19]
	parsed, err := time.ParseInLocation("20060102150405", stamp, time.Local)
	require.NoError(t, err)
	assert.WithinDuration(t, before, parsed, 5*time.Second)

	// Two issuances in the same instant stay distinct
	assert.NotEqual(t, number, utils.GenerateCertificateNumber())
}

func TestCertificateUniquePerUserAndCourse(t *testing.T) {
	newTestApp(t)

	cert := courseModels.Certificate{
		UserID:            1,
		CourseID:          1,
		ExamID:            1,
		CertificateNumber: utils.GenerateCertificateNumber(),
		Score:             90,
		IssuedAt:          time.Now(),
	}
	require.NoError(t, database.Database.Db.Create(&cert).Error)

	dup := courseModels.Certificate{
		UserID:            1,
		CourseID:          1,
		ExamID:            1,
		CertificateNumber: utils.GenerateCertificateNumber(),
		Score:             95,
		IssuedAt:          time.Now(),
	}
	assert.Error(t, database.Database.Db.Create(&dup).Error)
}
