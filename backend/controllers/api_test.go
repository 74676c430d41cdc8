package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"classhub/backend/config"
	"classhub/backend/routes"
	"classhub/backend/storage"
	"classhub/backend/utils"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// Одно соединение: каждая новая связь с ":memory:" — отдельная база.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, utils.Migrate(db))

	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	cfg := &config.Config{JWTSecret: "testsecret"}
	app := fiber.New()
	routes.SetupRoutes(app, db, cfg, store)
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

func decodeList(t *testing.T, resp *http.Response) []map[string]interface{} {
	t.Helper()

	var result []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

// registerUser регистрирует пользователя через API и возвращает токен и id.
func registerUser(t *testing.T, app *fiber.App, username, role string) (string, uint) {
	t.Helper()

	resp := doJSON(t, app, "POST", "/api/auth/register", "", map[string]string{
		"username":   username,
		"email":      username + "@example.com",
		"password":   "password123",
		"first_name": "Test",
		"last_name":  "User",
		"role":       role,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decode(t, resp)
	token, _ := result["token"].(string)
	require.NotEmpty(t, token)
	user := result["user"].(map[string]interface{})
	return token, uint(user["id"].(float64))
}

func submitFile(t *testing.T, app *fiber.App, token string, assignmentID uint, filename, content, text string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	if text != "" {
		require.NoError(t, writer.WriteField("text", text))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", fmt.Sprintf("/api/assignments/%d/submissions", assignmentID), &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}
