// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"inkwell-server/db"
	"inkwell-server/filestore"
	"inkwell-server/middlewares"
	"inkwell-server/models"
	"inkwell-server/notifications"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testPassword = "MySecretPassword@123"

// recordingSender captures dispatched notifications so tests can observe the
// asynchronous email path without a relay.
type recordingSender struct {
	ch chan notifications.NotificationData
}

func newRecordingSender() *recordingSender {
	return &recordingSender{ch: make(chan notifications.NotificationData, 8)}
}

func (s *recordingSender) Send(_ context.Context, data notifications.NotificationData) error {
	s.ch <- data
	return nil
}

func (s *recordingSender) wait(t *testing.T) notifications.NotificationData {
	t.Helper()
	select {
	case data := <-s.ch:
		return data
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for a dispatched notification")
		return notifications.NotificationData{}
	}
}

// newTestServer wires the handlers onto a fresh echo instance backed by an
// in-memory database. Routes are registered here rather than through the
// routes package, which would create an import cycle.
func newTestServer(t *testing.T) (*echo.Echo, *recordingSender) {
	t.Helper()

	t.Setenv("JWT_SECRET", "handlers-test-secret")
	t.Setenv("PWNED_PASSWORDS_ENABLED", "false")

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := conn.AutoMigrate(models.AllModels...); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	db.Conn = conn

	mailer := newRecordingSender()
	recovery := NewRecoveryHandler(mailer)
	blogs := NewBlogHandler(&filestore.Store{Root: t.TempDir(), PublicPrefix: "/uploads"})

	e := echo.New()
	api := e.Group("/api")

	api.POST("/register", RegisterHandler)
	api.POST("/login", LoginHandler)
	api.POST("/send-otp", recovery.SendOTPHandler)
	api.POST("/verify-otp", recovery.VerifyOTPHandler)
	api.POST("/reset-password", recovery.ResetPasswordHandler)
	api.GET("/me", GetMeHandler, middlewares.VerifySessionMiddleware)
	api.POST("/logout", LogoutHandler, middlewares.VerifySessionMiddleware)

	api.GET("/blogs", blogs.GetBlogsHandler)
	api.GET("/blogs/user/:user_id", blogs.GetUserBlogsHandler)
	api.GET("/blogs/:id", blogs.GetBlogHandler)
	api.POST("/blogs", blogs.CreateBlogHandler, middlewares.VerifySessionMiddleware)
	api.PATCH("/blogs/:id", blogs.UpdateBlogHandler, middlewares.VerifySessionMiddleware)
	api.DELETE("/blogs/:id", blogs.DeleteBlogHandler, middlewares.VerifySessionMiddleware)

	api.GET("/comments/blog/:blog_id", GetCommentsHandler)
	api.POST("/comments/blog/:blog_id", CreateCommentHandler, middlewares.VerifySessionMiddleware)
	api.DELETE("/comments/:id", DeleteCommentHandler, middlewares.VerifySessionMiddleware)

	api.GET("/likes/blog/:blog_id", GetLikeStatusHandler, middlewares.OptionalSessionMiddleware)
	api.POST("/likes/blog/:blog_id", ToggleLikeHandler, middlewares.VerifySessionMiddleware)

	return e, mailer
}

func doJSON(t *testing.T, e *echo.Echo, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func doForm(t *testing.T, e *echo.Echo, method, path string, fields map[string]string, files map[string][]byte, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			t.Fatalf("Failed to write form field %s: %v", name, err)
		}
	}
	for name, content := range files {
		part, err := writer.CreateFormFile(name, name+".bin")
		if err != nil {
			t.Fatalf("Failed to create form file %s: %v", name, err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("Failed to write form file %s: %v", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middlewares.SessionCookieName {
			return cookie
		}
	}
	t.Fatal("Response carries no session cookie")
	return nil
}

// registerAndLogin creates an account and returns its session cookie.
func registerAndLogin(t *testing.T, e *echo.Echo, username, email string) *http.Cookie {
	t.Helper()

	rec := doJSON(t, e, http.MethodPost, "/api/register", RegisterRequest{
		Username: username,
		Email:    email,
		Password: testPassword,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("Register for %s failed with %d: %s", username, rec.Code, rec.Body.String())
	}

	rec = doJSON(t, e, http.MethodPost, "/api/login", LoginRequest{
		Username: username,
		Password: testPassword,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Login for %s failed with %d: %s", username, rec.Code, rec.Body.String())
	}
	return sessionCookie(t, rec)
}
