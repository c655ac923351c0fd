// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"net/http"
	"net/mail"
	"regexp"
	"time"

	"inkwell-server/commons"
	"inkwell-server/crypto"
	"inkwell-server/db"
	"inkwell-server/middlewares"
	"inkwell-server/models"
	"inkwell-server/passwordcheck"

	"github.com/labstack/echo/v4"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,100}$`)

func sessionDuration() time.Duration {
	return commons.GetEnvDuration("SESSION_DURATION", 2*time.Hour)
}

// RegisterHandler godoc
// @Summary      Register a new user
// @Description  Creates a new user account.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        registerRequest  body  RegisterRequest  true  "Registration payload"
// @Success      201 {object} UserResponse 	 "Registration successful"
// @Failure      400 {object} echo.HTTPError     "Bad request, missing or malformed fields"
// @Failure      409 {object} echo.HTTPError     "Duplicate username or email"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /api/register [post]
func RegisterHandler(c echo.Context) error {
	logger := c.Logger()

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid register request payload:", err)
		return echo.ErrBadRequest
	}

	if !usernamePattern.MatchString(req.Username) {
		logger.Error("Invalid username.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "username must be 3-100 characters of letters, digits, '_', '.' or '-'",
		}
	}

	if req.Email == "" {
		logger.Error("Email is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "email field is required",
		}
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		logger.Error("Malformed email address.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "email must be a valid email address",
		}
	}

	if req.Password == "" {
		logger.Error("Password is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "password field is required",
		}
	}
	if err := passwordcheck.ValidatePassword(c.Request().Context(), req.Password); err != nil {
		logger.Error("Password validation failed: ", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid password: " + err.Error(),
		}
	}

	hash, err := crypto.NewCrypto().HashPassword(req.Password)
	if err != nil {
		logger.Errorf("Failed to hash password: %v", err)
		return echo.ErrInternalServerError
	}

	user, err := models.CreateUser(db.Conn, req.Username, req.Email, hash)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			logger.Error("Username or email already registered.")
			return &echo.HTTPError{
				Code:    http.StatusConflict,
				Message: "Username or email already exists, please try another one.",
			}
		}
		logger.Errorf("Failed to create user: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("User registered successfully")
	return c.JSON(http.StatusCreated, UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}

// LoginHandler godoc
// @Summary      Login a user
// @Description  Authenticates a user and sets the session cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        loginRequest  body  LoginRequest  true  "Login payload"
// @Success      200 {object} GenericResponse 	 "Login successful, session cookie set"
// @Failure      400 {object} echo.HTTPError     "Bad request or invalid credentials"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /api/login [post]
func LoginHandler(c echo.Context) error {
	logger := c.Logger()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid login request payload:", err)
		return echo.ErrBadRequest
	}

	if req.Username == "" {
		logger.Error("Username is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "username field is required",
		}
	}
	if req.Password == "" {
		logger.Error("Password is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "password field is required",
		}
	}

	user, err := models.GetUserByUsername(db.Conn, req.Username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			logger.Error("Login attempt for unknown username.")
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: "Invalid username or password",
			}
		}
		logger.Errorf("Failed to look up user: %v", err)
		return echo.ErrInternalServerError
	}

	if err := crypto.NewCrypto().VerifyPassword(req.Password, user.Password); err != nil {
		logger.Error("Password verification failed.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid username or password",
		}
	}

	ttl := sessionDuration()
	token, err := crypto.IssueSessionToken(user.Username, user.ID, ttl)
	if err != nil {
		logger.Errorf("Failed to sign session token: %v", err)
		return echo.ErrInternalServerError
	}

	c.SetCookie(&http.Cookie{
		Name:     middlewares.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	logger.Infof("User logged in successfully")
	return c.JSON(http.StatusOK, GenericResponse{Message: "Login successful"})
}

// LogoutHandler godoc
// @Summary      Logout the current user
// @Description  Clears the session cookie. Tokens are stateless, so no
// @Description  server-side revocation happens.
// @Tags         auth
// @Produce      json
// @Success      200 {object} GenericResponse "Logged out"
// @Failure      401 {object} echo.HTTPError  "Unauthenticated"
// @Router       /api/logout [post]
func LogoutHandler(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middlewares.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, GenericResponse{Message: "Logged out successfully"})
}

// GetMeHandler godoc
// @Summary      Get the current user
// @Description  Returns the identity resolved from the session cookie.
// @Tags         auth
// @Produce      json
// @Success      200 {object} UserResponse     "Current user"
// @Failure      401 {object} echo.HTTPError  "Unauthenticated"
// @Router       /api/me [get]
func GetMeHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid or expired session, please login again",
		}
	}

	return c.JSON(http.StatusOK, UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}
