package authController_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"lms/config"
	"lms/database"
	authRoutes "lms/routers/authRoutes"
	userRoutes "lms/routers/userRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestApp(t *testing.T) *fiber.App {
	t.Helper()

	t.Setenv("SALT_ROUND", "4") // keep bcrypt cheap in tests

	config.LoadConfig()
	database.ConnectTestDb()

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestSignupAndLogin(t *testing.T) {
	app := newAuthTestApp(t)

	resp := postJSON(t, app, "/auth/signup", fiber.Map{
		"name":     "Jane Learner",
		"email":    "jane@test.com",
		"password": "supersecret",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	body := decodeJSON(t, resp)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "STUDENT", data["role"])

	// Password never leaves the server
	_, exposed := data["password"]
	assert.False(t, exposed)

	// Duplicate email conflicts
	resp = postJSON(t, app, "/auth/signup", fiber.Map{
		"name":     "Jane Again",
		"email":    "jane@test.com",
		"password": "supersecret",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Login issues a token that works against protected routes
	resp = postJSON(t, app, "/auth/login", fiber.Map{
		"email":    "jane@test.com",
		"password": "supersecret",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body = decodeJSON(t, resp)
	token := body["data"].(map[string]interface{})["token"].(string)
	require.NotEmpty(t, token)

	req := httptest.NewRequest("GET", "/user/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	profileResp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, profileResp.StatusCode)
	profileResp.Body.Close()
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app := newAuthTestApp(t)

	resp := postJSON(t, app, "/auth/signup", fiber.Map{
		"name":     "Jane Learner",
		"email":    "jane@test.com",
		"password": "supersecret",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, app, "/auth/login", fiber.Map{
		"email":    "jane@test.com",
		"password": "wrongpassword",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, app, "/auth/login", fiber.Map{
		"email":    "nobody@test.com",
		"password": "supersecret",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestSignupValidation(t *testing.T) {
	app := newAuthTestApp(t)

	// Short password
	resp := postJSON(t, app, "/auth/signup", fiber.Map{
		"name":     "Jane Learner",
		"email":    "jane@test.com",
		"password": "short",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()

	// Bad email
	resp = postJSON(t, app, "/auth/signup", fiber.Map{
		"name":     "Jane Learner",
		"email":    "not-an-email",
		"password": "supersecret",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	app := newAuthTestApp(t)

	req := httptest.NewRequest("GET", "/user/profile", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	req = httptest.NewRequest("GET", "/user/profile", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

// Query-string tokens are for the websocket endpoint only; everywhere else
// they would leak into the request log.
func TestQueryTokenRejectedOutsideWebsocket(t *testing.T) {
	app := newAuthTestApp(t)

	resp := postJSON(t, app, "/auth/signup", fiber.Map{
		"name":     "Jane Learner",
		"email":    "jane@test.com",
		"password": "supersecret",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, app, "/auth/login", fiber.Map{
		"email":    "jane@test.com",
		"password": "supersecret",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeJSON(t, resp)
	token := body["data"].(map[string]interface{})["token"].(string)

	req := httptest.NewRequest("GET", "/user/profile?token="+token, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// The same token in the header still works.
	req = httptest.NewRequest("GET", "/user/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()
}
