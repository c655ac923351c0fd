// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"
	"strconv"

	"inkwell-server/db"
	"inkwell-server/filestore"
	"inkwell-server/middlewares"
	"inkwell-server/models"

	"github.com/labstack/echo/v4"
)

// BlogHandler serves blog CRUD. Media uploads go through the injected file
// store, which returns the public reference URLs persisted on the record.
type BlogHandler struct {
	Files *filestore.Store
}

func NewBlogHandler(files *filestore.Store) *BlogHandler {
	return &BlogHandler{Files: files}
}

// saveUpload stores an optional multipart file field, returning nil when the
// field is absent.
func (h *BlogHandler) saveUpload(c echo.Context, field string) (*string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	url, err := h.Files.Save(fh)
	if err != nil {
		return nil, err
	}
	return &url, nil
}

// GetBlogsHandler godoc
// @Summary      List blogs
// @Description  Returns one page of blogs with author usernames and
// @Description  like/comment counts, filtered and sorted by query params.
// @Tags         blogs
// @Produce      json
// @Param        search   query  string  false  "Case-insensitive substring match against title or content"
// @Param        sort_by  query  string  false  "title | created_at | likes (default created_at)"
// @Param        order    query  string  false  "asc | desc (default desc)"
// @Param        page     query  int     false  "Page number (default 1)"
// @Param        limit    query  int     false  "Page size (default 10, max 100)"
// @Success      200 {object} BlogListResponse "Paginated blogs"
// @Failure      500 {object} echo.HTTPError   "Internal server error"
// @Router       /api/blogs [get]
func (h *BlogHandler) GetBlogsHandler(c echo.Context) error {
	logger := c.Logger()

	filter := models.BlogFilter{
		Search: c.QueryParam("search"),
		SortBy: c.QueryParam("sort_by"),
		Order:  c.QueryParam("order"),
	}
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil {
		filter.Page = p
	}
	if l, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		filter.Limit = l
	}

	blogs, total, err := models.ListBlogs(db.Conn, filter)
	if err != nil {
		logger.Errorf("Failed to list blogs: %v", err)
		return echo.ErrInternalServerError
	}

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
	if blogs == nil {
		blogs = []models.BlogDetails{}
	}

	return c.JSON(http.StatusOK, BlogListResponse{
		Data: blogs,
		Pagination: PaginationDetails{
			Page:       page,
			PageSize:   limit,
			Total:      total,
			TotalPages: int((total + int64(limit) - 1) / int64(limit)),
		},
	})
}

// GetUserBlogsHandler godoc
// @Summary      List a user's blogs
// @Tags         blogs
// @Produce      json
// @Param        user_id  path  int  true  "Author user id"
// @Success      200 {array}  models.BlogDetails "The user's blogs"
// @Failure      400 {object} echo.HTTPError     "Malformed user id"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /api/blogs/user/{user_id} [get]
func (h *BlogHandler) GetUserBlogsHandler(c echo.Context) error {
	logger := c.Logger()

	userID, err := paramUint(c, "user_id")
	if err != nil {
		return err
	}

	blogs, err := models.ListBlogsByUser(db.Conn, userID)
	if err != nil {
		logger.Errorf("Failed to list user blogs: %v", err)
		return echo.ErrInternalServerError
	}
	if blogs == nil {
		blogs = []models.BlogDetails{}
	}
	return c.JSON(http.StatusOK, blogs)
}

// GetBlogHandler godoc
// @Summary      Get a single blog
// @Description  Returns the blog enriched with author username and aggregate
// @Description  like/comment counts computed at read time.
// @Tags         blogs
// @Produce      json
// @Param        id  path  int  true  "Blog id"
// @Success      200 {object} models.BlogDetails "The blog"
// @Failure      404 {object} echo.HTTPError     "Blog not found"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /api/blogs/{id} [get]
func (h *BlogHandler) GetBlogHandler(c echo.Context) error {
	logger := c.Logger()

	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	details, err := models.GetBlogDetails(db.Conn, id)
	if err != nil {
		logger.Error("Failed to fetch blog: ", err)
		return storeHTTPError(err, "Blog not found")
	}
	return c.JSON(http.StatusOK, details)
}

// CreateBlogHandler godoc
// @Summary      Create a blog
// @Description  Accepts multipart form data with optional image and video
// @Description  attachments stored under the public uploads path.
// @Tags         blogs
// @Accept       mpfd
// @Produce      json
// @Param        title    formData  string  true   "Blog title"
// @Param        content  formData  string  true   "Blog body"
// @Param        image    formData  file    false  "Optional image attachment"
// @Param        video    formData  file    false  "Optional video attachment"
// @Success      201 {object} models.Blog      "Created blog"
// @Failure      400 {object} echo.HTTPError  "Missing title or content"
// @Failure      401 {object} echo.HTTPError  "Unauthenticated"
// @Failure      500 {object} echo.HTTPError  "Internal server error"
// @Router       /api/blogs [post]
func (h *BlogHandler) CreateBlogHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return echo.ErrUnauthorized
	}

	title := c.FormValue("title")
	content := c.FormValue("content")
	if title == "" || content == "" {
		logger.Error("Title and content are required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "title and content fields are required",
		}
	}

	imageURL, err := h.saveUpload(c, "image")
	if err != nil {
		logger.Errorf("Failed to store image upload: %v", err)
		return echo.ErrInternalServerError
	}
	videoURL, err := h.saveUpload(c, "video")
	if err != nil {
		logger.Errorf("Failed to store video upload: %v", err)
		return echo.ErrInternalServerError
	}

	blog, err := models.CreateBlog(db.Conn, user.ID, title, content, imageURL, videoURL)
	if err != nil {
		logger.Errorf("Failed to create blog: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("Blog created successfully")
	return c.JSON(http.StatusCreated, blog)
}

// UpdateBlogHandler godoc
// @Summary      Update a blog
// @Description  Partial update: absent or empty fields keep their previous
// @Description  values. Only the owning author may update.
// @Tags         blogs
// @Accept       mpfd
// @Produce      json
// @Param        id       path      int     true   "Blog id"
// @Param        title    formData  string  false  "New title"
// @Param        content  formData  string  false  "New body"
// @Param        image    formData  file    false  "Replacement image"
// @Param        video    formData  file    false  "Replacement video"
// @Success      200 {object} models.Blog     "Updated blog"
// @Failure      401 {object} echo.HTTPError  "Unauthenticated"
// @Failure      403 {object} echo.HTTPError  "Not the owner"
// @Failure      404 {object} echo.HTTPError  "Blog not found"
// @Failure      500 {object} echo.HTTPError  "Internal server error"
// @Router       /api/blogs/{id} [patch]
func (h *BlogHandler) UpdateBlogHandler(c echo.Context) error {
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

	title := c.FormValue("title")
	content := c.FormValue("content")
	update := models.BlogUpdate{Title: &title, Content: &content}

	if update.ImageURL, err = h.saveUpload(c, "image"); err != nil {
		logger.Errorf("Failed to store image upload: %v", err)
		return echo.ErrInternalServerError
	}
	if update.VideoURL, err = h.saveUpload(c, "video"); err != nil {
		logger.Errorf("Failed to store video upload: %v", err)
		return echo.ErrInternalServerError
	}

	blog, err := models.UpdateBlog(db.Conn, id, user, update)
	if err != nil {
		logger.Error("Failed to update blog: ", err)
		return storeHTTPError(err, "Blog not found")
	}

	logger.Infof("Blog updated successfully")
	return c.JSON(http.StatusOK, blog)
}

// DeleteBlogHandler godoc
// @Summary      Delete a blog
// @Description  Deletes the blog together with its comments and likes. Only
// @Description  the owning author may delete.
// @Tags         blogs
// @Produce      json
// @Param        id  path  int  true  "Blog id"
// @Success      200 {object} GenericResponse "Blog deleted"
// @Failure      401 {object} echo.HTTPError  "Unauthenticated"
// @Failure      403 {object} echo.HTTPError  "Not the owner"
// @Failure      404 {object} echo.HTTPError  "Blog not found"
// @Failure      500 {object} echo.HTTPError  "Internal server error"
// @Router       /api/blogs/{id} [delete]
func (h *BlogHandler) DeleteBlogHandler(c echo.Context) error {
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

	if err := models.DeleteBlog(db.Conn, id, user); err != nil {
		logger.Error("Failed to delete blog: ", err)
		return storeHTTPError(err, "Blog not found")
	}

	logger.Infof("Blog deleted successfully")
	return c.JSON(http.StatusOK, GenericResponse{Message: "Blog deleted successfully"})
}
