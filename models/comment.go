// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Comment rows form an adjacency list: the tree for a blog is rebuilt by the
// caller from parent pointers, never rendered nested server-side.
type Comment struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Content         string `gorm:"type:text;not null" json:"content"`
	BlogID          uint   `gorm:"index;not null" json:"blog_id"`
	UserID          uint   `gorm:"index;not null" json:"user_id"`
	ParentCommentID *uint  `gorm:"default:null" json:"parent_comment_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func init() {
	AllModels = append(AllModels, &Comment{})
}

// CanDelete reports whether the actor may delete the comment. Two paths are
// allowed: the comment's author, and the owner of the blog it sits on.
func (c *Comment) CanDelete(actor *User, blogOwnerID uint) bool {
	if actor == nil {
		return false
	}
	return actor.ID == c.UserID || actor.ID == blogOwnerID
}

// CommentDetails is a comment row enriched with its author's username.
type CommentDetails struct {
	ID              uint      `json:"id"`
	Content         string    `json:"content"`
	BlogID          uint      `json:"blog_id"`
	UserID          uint      `json:"user_id"`
	ParentCommentID *uint     `json:"parent_comment_id"`
	CreatedAt       time.Time `json:"created_at"`
	Username        *string   `json:"username"`
}

// CreateComment inserts a comment, optionally as a reply. A parent must
// exist and belong to the same blog.
func CreateComment(db *gorm.DB, blogID, authorID uint, content string, parentID *uint) (*Comment, error) {
	if parentID != nil {
		var parent Comment
		err := db.Where("id = ? AND blog_id = ?", *parentID, blogID).First(&parent).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
	}

	comment := Comment{
		Content:         content,
		BlogID:          blogID,
		UserID:          authorID,
		ParentCommentID: parentID,
	}
	if err := db.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListComments returns the flat comment list for a blog with parent pointers
// and author usernames; callers group by parent id to rebuild the thread.
func ListComments(db *gorm.DB, blogID uint) ([]CommentDetails, error) {
	var details []CommentDetails
	if err := db.Model(&Comment{}).
		Select("comments.id, comments.content, comments.blog_id, comments.user_id, comments.parent_comment_id, comments.created_at, users.username AS username").
		Joins("LEFT JOIN users ON users.id = comments.user_id").
		Where("comments.blog_id = ?", blogID).
		Order("comments.created_at ASC").
		Scan(&details).Error; err != nil {
		return nil, err
	}
	return details, nil
}

func GetCommentByID(db *gorm.DB, id uint) (*Comment, error) {
	var comment Comment
	if err := db.Where("id = ?", id).First(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes a comment after checking both authorization paths
// against the comment's blog.
func DeleteComment(db *gorm.DB, id uint, actor *User) error {
	comment, err := GetCommentByID(db, id)
	if err != nil {
		return err
	}

	blog, err := GetBlogByID(db, comment.BlogID)
	if err != nil {
		return err
	}
	if !comment.CanDelete(actor, blog.UserID) {
		return ErrForbidden
	}
	return db.Delete(comment).Error
}
