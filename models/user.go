// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var AllModels []any

type User struct {
	ID             uint    `gorm:"primaryKey"`
	Username       string  `gorm:"size:100;not null;uniqueIndex"`
	Email          string  `gorm:"size:150;not null;uniqueIndex"`
	Password       string  `gorm:"size:255;not null"`
	OTP            *string `gorm:"size:6;default:null"`
	OTPExpiresAt   *time.Time
	ResetToken     *string `gorm:"size:255;default:null;index"`
	ResetExpiresAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func init() {
	AllModels = append(AllModels, &User{})
}

func GetUserByUsername(db *gorm.DB, username string) (*User, error) {
	var user User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func GetUserByEmail(db *gorm.DB, email string) (*User, error) {
	var user User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func GetUserByID(db *gorm.DB, id uint) (*User, error) {
	var user User
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a new user. Username and email uniqueness is pre-checked
// for a friendly error, but the unique indexes remain the arbiter under
// concurrent registration; a constraint violation is reported as ErrConflict
// just like a pre-check hit.
func CreateUser(db *gorm.DB, username, email, passwordHash string) (*User, error) {
	var count int64
	if err := db.Model(&User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrConflict
	}

	user := User{Username: username, Email: email, Password: passwordHash}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return &user, nil
}

// SetOTP stores a recovery code for the account, overwriting any outstanding
// one. A single OTP is active per user at a time.
func SetOTP(db *gorm.DB, email, otp string, expiresAt time.Time) error {
	res := db.Model(&User{}).Where("email = ?", email).Updates(map[string]any{
		"otp":            otp,
		"otp_expires_at": expiresAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// VerifyOTP reports whether the code matches the outstanding OTP for the
// account and has not expired. Expired codes compare as invalid even though
// the stored fields are left intact.
func VerifyOTP(db *gorm.DB, email, otp string) (bool, error) {
	user, err := GetUserByEmail(db, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if user.OTP == nil || user.OTPExpiresAt == nil {
		return false, nil
	}
	if *user.OTP != otp {
		return false, nil
	}
	return time.Now().Before(*user.OTPExpiresAt), nil
}

// SetResetToken stores a one-time password-reset token for the account,
// overwriting any prior one.
func SetResetToken(db *gorm.DB, email, token string, expiresAt time.Time) error {
	res := db.Model(&User{}).Where("email = ?", email).Updates(map[string]any{
		"reset_token":      token,
		"reset_expires_at": expiresAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// VerifyResetToken resolves a reset token to its user, or nil when the token
// is unknown or expired.
func VerifyResetToken(db *gorm.DB, token string) (*User, error) {
	if token == "" {
		return nil, nil
	}
	var user User
	if err := db.Where("reset_token = ?", token).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if user.ResetExpiresAt == nil || !time.Now().Before(*user.ResetExpiresAt) {
		return nil, nil
	}
	return &user, nil
}

// UpdatePasswordClearRecovery writes the new password hash and nulls all four
// recovery fields in a single UPDATE, so a partially applied reset is never
// observable. Clearing the token on success is what makes reset tokens
// single-use.
func UpdatePasswordClearRecovery(db *gorm.DB, email, newHash string) error {
	res := db.Model(&User{}).Where("email = ?", email).Updates(map[string]any{
		"password":         newHash,
		"otp":              nil,
		"otp_expires_at":   nil,
		"reset_token":      nil,
		"reset_expires_at": nil,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
