package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nestnic/taskflow/db"
	"github.com/nestnic/taskflow/internal/auth"
	"github.com/nestnic/taskflow/internal/middleware"
	"github.com/nestnic/taskflow/internal/router"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupServer points the global connection at a fresh in-memory
// database and returns the fully wired router.
func setupServer(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "handler-test-secret")
	require.NoError(t, auth.InitJWTSecret())

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))

	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))

	db.DB = conn

	return router.NewRouter()
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader

	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookieName && c.Value != "" {
			return c
		}
	}

	t.Fatal("no session cookie in response")
	return nil
}

// registerUser signs a user up and returns their session cookie and id.
func registerUser(t *testing.T, r *gin.Engine, name, email string) (*http.Cookie, uint) {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{
		"name":     name,
		"email":    email,
		"password": "password123",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	user := body["user"].(map[string]interface{})

	return sessionCookie(t, w), uint(user["id"].(float64))
}

// createProject returns the new project's numeric id and public share
// code.
func createProject(t *testing.T, r *gin.Engine, cookie *http.Cookie, name string) (uint, string) {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/projects", gin.H{
		"name":        name,
		"description": "A project for testing " + name,
	}, cookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	return uint(body["id"].(float64)), body["public_id"].(string)
}
