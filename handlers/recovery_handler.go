// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"inkwell-server/crypto"
	"inkwell-server/db"
	"inkwell-server/models"
	"inkwell-server/notifications"
	"inkwell-server/passwordcheck"

	"github.com/labstack/echo/v4"
)

const recoveryTTL = 10 * time.Minute

// RecoveryHandler runs the OTP-based password recovery flow. The email
// collaborator is injected so tests can observe dispatches without a relay.
type RecoveryHandler struct {
	Mailer notifications.Sender
}

func NewRecoveryHandler(mailer notifications.Sender) *RecoveryHandler {
	return &RecoveryHandler{Mailer: mailer}
}

// SendOTPHandler godoc
// @Summary      Send a password recovery code
// @Description  Generates a 6-digit OTP, persists it, and emails it to the
// @Description  account. Any prior outstanding OTP is overwritten.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        sendOTPRequest  body  SendOTPRequest  true  "Recovery request payload"
// @Success      200 {object} StatusResponse     "OTP sent"
// @Failure      400 {object} echo.HTTPError     "Bad request, missing email"
// @Failure      404 {object} echo.HTTPError     "Email not registered"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /api/send-otp [post]
func (h *RecoveryHandler) SendOTPHandler(c echo.Context) error {
	logger := c.Logger()

	var req SendOTPRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid send-otp request payload:", err)
		return echo.ErrBadRequest
	}
	if req.Email == "" {
		logger.Error("Email is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "email field is required",
		}
	}

	user, err := models.GetUserByEmail(db.Conn, req.Email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			logger.Error("OTP requested for unregistered email.")
			return &echo.HTTPError{
				Code:    http.StatusNotFound,
				Message: "Email not registered",
			}
		}
		logger.Errorf("Failed to look up user: %v", err)
		return echo.ErrInternalServerError
	}

	otp, err := crypto.GenerateOTP()
	if err != nil {
		logger.Errorf("Failed to generate OTP: %v", err)
		return echo.ErrInternalServerError
	}

	// The code is persisted before dispatch: a failed send never has to
	// roll recovery state back.
	if err := models.SetOTP(db.Conn, user.Email, otp, time.Now().Add(recoveryTTL)); err != nil {
		logger.Errorf("Failed to persist OTP: %v", err)
		return echo.ErrInternalServerError
	}

	notifications.Dispatch(h.Mailer, notifications.NotificationData{
		To:      user.Email,
		ToName:  &user.Username,
		Subject: "Your OTP for Password Reset",
		Body:    fmt.Sprintf("Your OTP is %s. It expires in 10 minutes.", otp),
	})

	logger.Infof("OTP issued")
	return c.JSON(http.StatusOK, StatusResponse{
		Status:  "success",
		Message: "OTP sent to your email",
	})
}

// VerifyOTPHandler godoc
// @Summary      Verify a recovery code
// @Description  Checks the OTP and, when valid, issues a single-use reset
// @Description  token that authorizes the actual password change.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        verifyOTPRequest  body  VerifyOTPRequest  true  "OTP verification payload"
// @Success      200 {object} VerifyOTPResponse  "OTP accepted, reset token issued"
// @Failure      400 {object} echo.HTTPError     "Invalid or expired OTP"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /api/verify-otp [post]
func (h *RecoveryHandler) VerifyOTPHandler(c echo.Context) error {
	logger := c.Logger()

	var req VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid verify-otp request payload:", err)
		return echo.ErrBadRequest
	}
	if req.Email == "" || req.OTP == "" {
		logger.Error("Email and OTP are required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "email and otp fields are required",
		}
	}

	ok, err := models.VerifyOTP(db.Conn, req.Email, req.OTP)
	if err != nil {
		logger.Errorf("Failed to verify OTP: %v", err)
		return echo.ErrInternalServerError
	}
	if !ok {
		logger.Error("OTP rejected.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid or expired OTP",
		}
	}

	resetToken, err := crypto.NewResetToken()
	if err != nil {
		logger.Errorf("Failed to generate reset token: %v", err)
		return echo.ErrInternalServerError
	}
	if err := models.SetResetToken(db.Conn, req.Email, resetToken, time.Now().Add(recoveryTTL)); err != nil {
		logger.Errorf("Failed to persist reset token: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("OTP verified, reset token issued")
	return c.JSON(http.StatusOK, VerifyOTPResponse{
		Status:     "success",
		ResetToken: resetToken,
	})
}

// ResetPasswordHandler godoc
// @Summary      Reset the password with a reset token
// @Description  Atomically writes the new password hash and clears all
// @Description  recovery state, which makes the token single-use.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        resetPasswordRequest  body  ResetPasswordRequest  true  "Password reset payload"
// @Success      200 {object} StatusResponse     "Password reset"
// @Failure      400 {object} echo.HTTPError     "Invalid or expired reset token, or weak password"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /api/reset-password [post]
func (h *RecoveryHandler) ResetPasswordHandler(c echo.Context) error {
	logger := c.Logger()

	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid reset-password request payload:", err)
		return echo.ErrBadRequest
	}
	if req.ResetToken == "" || req.NewPassword == "" {
		logger.Error("Reset token and new password are required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "reset_token and new_password fields are required",
		}
	}

	if err := passwordcheck.ValidatePassword(c.Request().Context(), req.NewPassword); err != nil {
		logger.Error("Password validation failed: ", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid password: " + err.Error(),
		}
	}

	user, err := models.VerifyResetToken(db.Conn, req.ResetToken)
	if err != nil {
		logger.Errorf("Failed to verify reset token: %v", err)
		return echo.ErrInternalServerError
	}
	if user == nil {
		logger.Error("Reset token rejected.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid or expired reset token",
		}
	}

	hash, err := crypto.NewCrypto().HashPassword(req.NewPassword)
	if err != nil {
		logger.Errorf("Failed to hash password: %v", err)
		return echo.ErrInternalServerError
	}

	if err := models.UpdatePasswordClearRecovery(db.Conn, user.Email, hash); err != nil {
		logger.Errorf("Failed to update password: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("Password reset successfully")
	return c.JSON(http.StatusOK, StatusResponse{
		Status:  "success",
		Message: "Password reset successfully",
	})
}
