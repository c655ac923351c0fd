// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"net/http"

	"inkwell-server/db"
	"inkwell-server/middlewares"
	"inkwell-server/models"

	"github.com/labstack/echo/v4"
)

// GetCommentsHandler godoc
// @Summary      List a blog's comments
// @Description  Returns the flat comment list with parent pointers and author
// @Description  usernames; clients rebuild the reply tree from parent ids.
// @Tags         comments
// @Produce      json
// @Param        blog_id  path  int  true  "Blog id"
// @Success      200 {array}  models.CommentDetails "Comments"
// @Failure      400 {object} echo.HTTPError        "Malformed blog id"
// @Failure      500 {object} echo.HTTPError        "Internal server error"
// @Router       /api/comments/blog/{blog_id} [get]
func GetCommentsHandler(c echo.Context) error {
	logger := c.Logger()

	blogID, err := paramUint(c, "blog_id")
	if err != nil {
		return err
	}

	comments, err := models.ListComments(db.Conn, blogID)
	if err != nil {
		logger.Errorf("Failed to list comments: %v", err)
		return echo.ErrInternalServerError
	}
	if comments == nil {
		comments = []models.CommentDetails{}
	}
	return c.JSON(http.StatusOK, comments)
}

// CreateCommentHandler godoc
// @Summary      Comment on a blog
// @Description  Adds a comment, optionally as a reply. The parent comment
// @Description  must exist on the same blog.
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        blog_id         path  int             true  "Blog id"
// @Param        commentRequest  body  CommentRequest  true  "Comment payload"
// @Success      201 {object} models.Comment  "Created comment"
// @Failure      400 {object} echo.HTTPError  "Missing content"
// @Failure      401 {object} echo.HTTPError  "Unauthenticated"
// @Failure      404 {object} echo.HTTPError  "Blog or parent comment not found"
// @Failure      500 {object} echo.HTTPError  "Internal server error"
// @Router       /api/comments/blog/{blog_id} [post]
func CreateCommentHandler(c echo.Context) error {
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

	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid comment request payload:", err)
		return echo.ErrBadRequest
	}
	if req.Content == "" {
		logger.Error("Comment content is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "content field is required",
		}
	}

	if _, err := models.GetBlogByID(db.Conn, blogID); err != nil {
		logger.Error("Comment target blog missing: ", err)
		return storeHTTPError(err, "Blog not found")
	}

	comment, err := models.CreateComment(db.Conn, blogID, user.ID, req.Content, req.ParentID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			logger.Error("Parent comment not found on this blog.")
			return &echo.HTTPError{
				Code:    http.StatusNotFound,
				Message: "Parent comment not found",
			}
		}
		logger.Errorf("Failed to create comment: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("Comment created successfully")
	return c.JSON(http.StatusCreated, comment)
}

// DeleteCommentHandler godoc
// @Summary      Delete a comment
// @Description  Allowed for the comment's author and for the owner of the
// @Description  blog it sits on.
// @Tags         comments
// @Produce      json
// @Param        id  path  int  true  "Comment id"
// @Success      200 {object} GenericResponse "Comment deleted"
// @Failure      401 {object} echo.HTTPError  "Unauthenticated"
// @Failure      403 {object} echo.HTTPError  "Neither author nor blog owner"
// @Failure      404 {object} echo.HTTPError  "Comment not found"
// @Failure      500 {object} echo.HTTPError  "Internal server error"
// @Router       /api/comments/{id} [delete]
func DeleteCommentHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return echo.ErrUnauthorized
	}

	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	if err := models.DeleteComment(db.Conn, id, user); err != nil {
		logger.Error("Failed to delete comment: ", err)
		return storeHTTPError(err, "Comment not found")
	}

	logger.Infof("Comment deleted successfully")
	return c.JSON(http.StatusOK, GenericResponse{Message: "Comment deleted successfully"})
}
