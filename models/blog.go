// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Blog struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Title     string  `gorm:"size:255;not null" json:"title"`
	Content   string  `gorm:"type:text;not null" json:"content"`
	ImageURL  *string `gorm:"size:255;default:null" json:"image_url"`
	VideoURL  *string `gorm:"size:255;default:null" json:"video_url"`
	UserID    uint    `gorm:"index;not null" json:"author_id"`
	User      User    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func init() {
	AllModels = append(AllModels, &Blog{})
}

// CanModify reports whether the actor may update or delete the blog. Only
// the owning author may.
func (b *Blog) CanModify(actor *User) bool {
	return actor != nil && actor.ID == b.UserID
}

// BlogDetails is a blog row enriched with its author's username and the
// like/comment aggregates, all computed at read time.
type BlogDetails struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	ImageURL       *string   `json:"image_url"`
	VideoURL       *string   `json:"video_url"`
	UserID         uint      `json:"author_id"`
	CreatedAt      time.Time `json:"created_at"`
	AuthorUsername *string   `json:"author_username"`
	LikesCount     int64     `json:"likes_count"`
	CommentsCount  int64     `json:"comments_count"`
}

// BlogFilter narrows and orders blog listings. Zero values mean: no search,
// newest first, first page of 10.
type BlogFilter struct {
	Search string
	SortBy string // title | created_at | likes
	Order  string // asc | desc
	Page   int
	Limit  int
}

const detailsSelect = `blogs.id, blogs.title, blogs.content, blogs.image_url, blogs.video_url,
blogs.user_id, blogs.created_at, users.username AS author_username,
(SELECT COUNT(*) FROM likes WHERE likes.blog_id = blogs.id) AS likes_count,
(SELECT COUNT(*) FROM comments WHERE comments.blog_id = blogs.id) AS comments_count`

func CreateBlog(db *gorm.DB, authorID uint, title, content string, imageURL, videoURL *string) (*Blog, error) {
	blog := Blog{
		Title:    title,
		Content:  content,
		ImageURL: imageURL,
		VideoURL: videoURL,
		UserID:   authorID,
	}
	if err := db.Create(&blog).Error; err != nil {
		return nil, err
	}
	return &blog, nil
}

func GetBlogByID(db *gorm.DB, id uint) (*Blog, error) {
	var blog Blog
	if err := db.Where("id = ?", id).First(&blog).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &blog, nil
}

func GetBlogDetails(db *gorm.DB, id uint) (*BlogDetails, error) {
	var details BlogDetails
	res := db.Model(&Blog{}).
		Select(detailsSelect).
		Joins("LEFT JOIN users ON users.id = blogs.user_id").
		Where("blogs.id = ?", id).
		Scan(&details)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &details, nil
}

// ListBlogs returns one page of blogs matching the filter plus the total
// matching count. Search is a case-insensitive substring match against title
// or content; sorting by likes is computed from the aggregate.
func ListBlogs(db *gorm.DB, filter BlogFilter) ([]BlogDetails, int64, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	query := db.Model(&Blog{}).
		Select(detailsSelect).
		Joins("LEFT JOIN users ON users.id = blogs.user_id")
	countQuery := db.Model(&Blog{})

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		cond := "LOWER(blogs.title) LIKE ? OR LOWER(blogs.content) LIKE ?"
		query = query.Where(cond, pattern, pattern)
		countQuery = countQuery.Where(cond, pattern, pattern)
	}

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "DESC"
	if strings.EqualFold(filter.Order, "asc") {
		order = "ASC"
	}
	switch filter.SortBy {
	case "title":
		query = query.Order("blogs.title " + order)
	case "likes":
		query = query.Order("likes_count " + order)
	default:
		query = query.Order("blogs.created_at " + order)
	}

	var details []BlogDetails
	if err := query.Limit(limit).Offset((page - 1) * limit).Scan(&details).Error; err != nil {
		return nil, 0, err
	}
	return details, total, nil
}

func ListBlogsByUser(db *gorm.DB, userID uint) ([]BlogDetails, error) {
	var details []BlogDetails
	if err := db.Model(&Blog{}).
		Select(detailsSelect).
		Joins("LEFT JOIN users ON users.id = blogs.user_id").
		Where("blogs.user_id = ?", userID).
		Order("blogs.created_at DESC").
		Scan(&details).Error; err != nil {
		return nil, err
	}
	return details, nil
}

// BlogUpdate carries a partial update. Nil fields keep their previous value.
type BlogUpdate struct {
	Title    *string
	Content  *string
	ImageURL *string
	VideoURL *string
}

func UpdateBlog(db *gorm.DB, id uint, actor *User, update BlogUpdate) (*Blog, error) {
	blog, err := GetBlogByID(db, id)
	if err != nil {
		return nil, err
	}
	if !blog.CanModify(actor) {
		return nil, ErrForbidden
	}

	changes := map[string]any{}
	if update.Title != nil && *update.Title != "" {
		changes["title"] = *update.Title
	}
	if update.Content != nil && *update.Content != "" {
		changes["content"] = *update.Content
	}
	if update.ImageURL != nil {
		changes["image_url"] = *update.ImageURL
	}
	if update.VideoURL != nil {
		changes["video_url"] = *update.VideoURL
	}
	if len(changes) > 0 {
		if err := db.Model(blog).Updates(changes).Error; err != nil {
			return nil, err
		}
	}
	return GetBlogByID(db, id)
}

// DeleteBlog removes the blog together with its comments and likes in one
// transaction, so no orphaned rows survive the delete.
func DeleteBlog(db *gorm.DB, id uint, actor *User) error {
	blog, err := GetBlogByID(db, id)
	if err != nil {
		return err
	}
	if !blog.CanModify(actor) {
		return ErrForbidden
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("blog_id = ?", id).Delete(&Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_id = ?", id).Delete(&Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(blog).Error
	})
}
