// SPDX-License-Identifier: GPL-3.0-only

package middlewares

import (
	"errors"
	"net/http"

	"inkwell-server/crypto"
	"inkwell-server/db"
	"inkwell-server/models"

	"github.com/labstack/echo/v4"
)

// SessionCookieName is the http-only cookie carrying the signed session
// token.
const SessionCookieName = "access_token"

func resolveSessionUser(c echo.Context) (*models.User, error) {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, errors.New("session cookie is missing")
	}

	claims, err := crypto.ParseSessionToken(cookie.Value)
	if err != nil {
		return nil, err
	}

	// The signature only proves who the token was issued to. The account is
	// re-resolved on every request so a token for a deleted or renamed
	// account stops working immediately.
	user, err := models.GetUserByID(db.Conn, claims.UserID)
	if err != nil {
		return nil, errors.New("account no longer exists")
	}
	if user.Username != claims.Username {
		return nil, errors.New("account no longer exists")
	}
	return user, nil
}

// VerifySessionMiddleware gates authenticated routes: it extracts the
// session cookie, verifies the token, and resolves the named user.
func VerifySessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := c.Logger()

		user, err := resolveSessionUser(c)
		if err != nil {
			logger.Error("Session verification failed: ", err)
			return &echo.HTTPError{
				Code:    http.StatusUnauthorized,
				Message: "Invalid or expired session, please login again",
			}
		}

		c.Set("user", user)
		return next(c)
	}
}

// OptionalSessionMiddleware resolves the session user when a valid cookie is
// present but lets anonymous requests through. Used by read endpoints whose
// response varies with identity, like the like status.
func OptionalSessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if user, err := resolveSessionUser(c); err == nil {
			c.Set("user", user)
		}
		return next(c)
	}
}

func GetAuthenticatedUser(c echo.Context) (*models.User, error) {
	if user, ok := c.Get("user").(*models.User); ok && user != nil {
		return user, nil
	}
	return nil, errors.New("no authenticated user found")
}
