// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"

	"inkwell-server/db"
	"inkwell-server/middlewares"
	"inkwell-server/models"

	"github.com/labstack/echo/v4"
)

// GetLikeStatusHandler godoc
// @Summary      Get like status for a blog
// @Description  Reports the like count and whether the caller likes the
// @Description  blog. Anonymous callers get is_liked=false.
// @Tags         likes
// @Produce      json
// @Param        blog_id  path  int  true  "Blog id"
// @Success      200 {object} LikeStatusResponse "Like status"
// @Failure      404 {object} echo.HTTPError     "Blog not found"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /api/likes/blog/{blog_id} [get]
func GetLikeStatusHandler(c echo.Context) error {
	logger := c.Logger()

	blogID, err := paramUint(c, "blog_id")
	if err != nil {
		return err
	}

	if _, err := models.GetBlogByID(db.Conn, blogID); err != nil {
		logger.Error("Like status for missing blog: ", err)
		return storeHTTPError(err, "Blog not found")
	}

	var userID *uint
	if user, err := middlewares.GetAuthenticatedUser(c); err == nil {
		userID = &user.ID
	}

	isLiked, err := models.IsLiked(db.Conn, blogID, userID)
	if err != nil {
		logger.Errorf("Failed to check like state: %v", err)
		return echo.ErrInternalServerError
	}
	count, err := models.CountLikes(db.Conn, blogID)
	if err != nil {
		logger.Errorf("Failed to count likes: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, LikeStatusResponse{
		IsLiked:    isLiked,
		LikesCount: count,
	})
}

// ToggleLikeHandler godoc
// @Summary      Toggle a like on a blog
// @Description  Likes the blog if the caller has not liked it, unlikes it
// @Description  otherwise. Safe under concurrent double-submission.
// @Tags         likes
// @Produce      json
// @Param        blog_id  path  int  true  "Blog id"
// @Success      200 {object} ToggleLikeResponse "New like state and count"
// @Failure      401 {object} echo.HTTPError     "Unauthenticated"
// @Failure      404 {object} echo.HTTPError     "Blog not found"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /api/likes/blog/{blog_id} [post]
func ToggleLikeHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return echo.ErrUnauthorized
	}

	blogID, err := paramUint(c, "blog_id")
	if err != nil {
		return err
	}

	if _, err := models.GetBlogByID(db.Conn, blogID); err != nil {
		logger.Error("Like toggle for missing blog: ", err)
		return storeHTTPError(err, "Blog not found")
	}

	liked, err := models.ToggleLike(db.Conn, blogID, user.ID)
	if err != nil {
		logger.Errorf("Failed to toggle like: %v", err)
		return echo.ErrInternalServerError
	}
	count, err := models.CountLikes(db.Conn, blogID)
	if err != nil {
		logger.Errorf("Failed to count likes: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, ToggleLikeResponse{
		Liked:      liked,
		LikesCount: count,
	})
}
