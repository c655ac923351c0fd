// SPDX-License-Identifier: GPL-3.0-only

package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"inkwell-server/crypto"
	"inkwell-server/db"
	"inkwell-server/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSessionTest(t *testing.T) *models.User {
	t.Helper()
	t.Setenv("JWT_SECRET", "middlewares-test-secret")

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

	user, err := models.CreateUser(conn, "alice99", "a@x.com", "hash")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}

func runProtected(t *testing.T, cookie *http.Cookie) (*httptest.ResponseRecorder, *models.User) {
	t.Helper()

	e := echo.New()
	var seen *models.User
	handler := VerifySessionMiddleware(func(c echo.Context) error {
		user, err := GetAuthenticatedUser(c)
		if err != nil {
			t.Fatalf("Handler behind the middleware should see a user: %v", err)
		}
		seen = user
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, seen
}

func TestVerifySessionMiddleware(t *testing.T) {
	user := setupSessionTest(t)

	token, err := crypto.IssueSessionToken(user.Username, user.ID, time.Hour)
	if err != nil {
		t.Fatalf("IssueSessionToken failed: %v", err)
	}

	rec, seen := runProtected(t, &http.Cookie{Name: SessionCookieName, Value: token})
	if rec.Code != http.StatusOK {
		t.Fatalf("Valid session should pass, got %d: %s", rec.Code, rec.Body.String())
	}
	if seen == nil || seen.ID != user.ID {
		t.Errorf("Middleware should resolve the token's user, got %+v", seen)
	}
}

func TestVerifySessionMiddlewareRejections(t *testing.T) {
	user := setupSessionTest(t)

	rec, _ := runProtected(t, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Missing cookie should yield 401, got %d", rec.Code)
	}

	rec, _ = runProtected(t, &http.Cookie{Name: SessionCookieName, Value: "garbage"})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Garbage token should yield 401, got %d", rec.Code)
	}

	expired, err := crypto.IssueSessionToken(user.Username, user.ID, -time.Minute)
	if err != nil {
		t.Fatalf("IssueSessionToken failed: %v", err)
	}
	rec, _ = runProtected(t, &http.Cookie{Name: SessionCookieName, Value: expired})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expired token should yield 401, got %d", rec.Code)
	}

	// A token naming a username the account no longer carries is stale.
	renamed, err := crypto.IssueSessionToken("old-name", user.ID, time.Hour)
	if err != nil {
		t.Fatalf("IssueSessionToken failed: %v", err)
	}
	rec, _ = runProtected(t, &http.Cookie{Name: SessionCookieName, Value: renamed})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Token for a renamed account should yield 401, got %d", rec.Code)
	}

	// A token for a deleted account stops working immediately.
	token, err := crypto.IssueSessionToken(user.Username, user.ID, time.Hour)
	if err != nil {
		t.Fatalf("IssueSessionToken failed: %v", err)
	}
	if err := db.Conn.Unscoped().Delete(user).Error; err != nil {
		t.Fatalf("Failed to delete user: %v", err)
	}
	rec, _ = runProtected(t, &http.Cookie{Name: SessionCookieName, Value: token})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Token for a deleted account should yield 401, got %d", rec.Code)
	}
}

func TestOptionalSessionMiddleware(t *testing.T) {
	user := setupSessionTest(t)

	e := echo.New()
	handler := OptionalSessionMiddleware(func(c echo.Context) error {
		if _, err := GetAuthenticatedUser(c); err != nil {
			return c.String(http.StatusOK, "anonymous")
		}
		return c.String(http.StatusOK, "authenticated")
	})

	// Anonymous request passes through.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	if err := handler(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Anonymous request should not error: %v", err)
	}
	if rec.Body.String() != "anonymous" {
		t.Errorf("Expected anonymous passthrough, got %q", rec.Body.String())
	}

	token, err := crypto.IssueSessionToken(user.Username, user.ID, time.Hour)
	if err != nil {
		t.Fatalf("IssueSessionToken failed: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec = httptest.NewRecorder()
	if err := handler(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Authenticated request should not error: %v", err)
	}
	if rec.Body.String() != "authenticated" {
		t.Errorf("Expected authenticated resolution, got %q", rec.Body.String())
	}
}
