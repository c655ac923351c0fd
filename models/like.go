// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Like presence is the like state: a (blog, user) row exists while the user
// likes the blog, and the unique index admits at most one per pair.
type Like struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	BlogID    uint `gorm:"not null;uniqueIndex:idx_blog_user_like" json:"blog_id"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_blog_user_like" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func init() {
	AllModels = append(AllModels, &Like{})
}

// ToggleLike flips the like state for (blogID, userID) and reports the new
// state. Under a concurrent double-submission the unique index is the
// arbiter: a duplicate insert is read as "already liked" rather than an
// error.
func ToggleLike(db *gorm.DB, blogID, userID uint) (bool, error) {
	res := db.Where("blog_id = ? AND user_id = ?", blogID, userID).Delete(&Like{})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	like := Like{BlogID: blogID, UserID: userID}
	if err := db.Create(&like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

func CountLikes(db *gorm.DB, blogID uint) (int64, error) {
	var count int64
	err := db.Model(&Like{}).Where("blog_id = ?", blogID).Count(&count).Error
	return count, err
}

// IsLiked reports whether the user likes the blog. An anonymous caller
// (userID nil) never errors; they simply have no like.
func IsLiked(db *gorm.DB, blogID uint, userID *uint) (bool, error) {
	if userID == nil {
		return false, nil
	}
	var count int64
	err := db.Model(&Like{}).
		Where("blog_id = ? AND user_id = ?", blogID, *userID).
		Count(&count).Error
	return count > 0, err
}
