package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/pckhai-work/blog-system-mern-stack/internal/auth"
	"github.com/pckhai-work/blog-system-mern-stack/internal/service"
)

// BlogHandler handles post endpoints.
type BlogHandler struct {
	blogService service.BlogService
}

// NewBlogHandler creates a new blog handler.
func NewBlogHandler(blogService service.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// BlogForm is the multipart form for creating a post. Categories and tags
// arrive as comma-separated id lists, the way the client's form serializes
// multi-selects.
type BlogForm struct {
	Title      string `form:"title" validate:"required"`
	Body       string `form:"body" validate:"required"`
	Categories string `form:"categories" validate:"required"`
	Tags       string `form:"tags" validate:"required"`
}

// FeedRequest selects a page of the combined feed.
type FeedRequest struct {
	Limit int `json:"limit"`
	Skip  int `json:"skip"`
}

// CategoryRef identifies a category inside a related-posts request.
type CategoryRef struct {
	ID uint `json:"id"`
}

// RelatedBlogRef identifies the post to find relations for.
type RelatedBlogRef struct {
	ID         uint          `json:"id" validate:"required"`
	Categories []CategoryRef `json:"categories" validate:"required,min=1"`
}

// RelatedRequest asks for posts sharing a category with the given one.
type RelatedRequest struct {
	Limit int            `json:"limit"`
	Blog  RelatedBlogRef `json:"blog" validate:"required"`
}

// Create godoc
// @Summary Create a post
// @Tags blogs
// @Accept mpfd
// @Produce json
// @Param title formData string true "Title"
// @Param body formData string true "Body, at least 200 characters"
// @Param categories formData string true "Comma-separated category ids"
// @Param tags formData string true "Comma-separated tag ids"
// @Param photo formData file false "Cover image, max 10MB"
// @Success 200 {object} model.Blog
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /blog [post]
func (h *BlogHandler) Create(c echo.Context) error {
	var form BlogForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Image could not be uploaded")
	}
	if err := c.Validate(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	categoryIDs := parseIDList(form.Categories)
	if len(categoryIDs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "At least one category is required")
	}
	tagIDs := parseIDList(form.Tags)
	if len(tagIDs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "At least one tag is required")
	}

	photo, photoType, err := readFormPhoto(c, "photo", service.MaxBlogPhotoBytes)
	if err != nil {
		return domainError(err)
	}

	author := auth.CurrentUser(c)
	if author == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	blog, err := h.blogService.Create(c.Request().Context(), author, service.CreateBlogInput{
		Title:       form.Title,
		Body:        form.Body,
		CategoryIDs: categoryIDs,
		TagIDs:      tagIDs,
		Photo:       photo,
		PhotoType:   photoType,
	})
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, blog)
}

// List godoc
// @Summary List all posts
// @Tags blogs
// @Produce json
// @Success 200 {array} model.Blog
// @Router /blogs [get]
func (h *BlogHandler) List(c echo.Context) error {
	blogs, err := h.blogService.List(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, blogs)
}

// Feed godoc
// @Summary Paginated posts with full category and tag lists
// @Tags blogs
// @Accept json
// @Produce json
// @Param request body FeedRequest true "Pagination"
// @Success 200 {object} service.BlogFeed
// @Router /blogs-categories-tags [post]
func (h *BlogHandler) Feed(c echo.Context) error {
	var req FeedRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	feed, err := h.blogService.ListWithTaxonomy(c.Request().Context(), req.Limit, req.Skip)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, feed)
}

// Read godoc
// @Summary Read a post by slug
// @Tags blogs
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} model.Blog
// @Failure 400 {object} errors.ErrorResponse
// @Router /blog/{slug} [get]
func (h *BlogHandler) Read(c echo.Context) error {
	blog, err := h.blogService.Read(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, blog)
}

// Update godoc
// @Summary Update a post; the slug never changes
// @Tags blogs
// @Accept mpfd
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} model.Blog
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /blog/{slug} [put]
func (h *BlogHandler) Update(c echo.Context) error {
	in := service.UpdateBlogInput{
		Title: c.FormValue("title"),
		Body:  c.FormValue("body"),
	}

	// Absent fields keep the stored sets; present-but-changed fields replace
	// them. FormValue cannot tell the two apart, so check key presence.
	if params, err := c.FormParams(); err == nil {
		if _, ok := params["categories"]; ok {
			in.CategoryIDs = parseIDList(c.FormValue("categories"))
		}
		if _, ok := params["tags"]; ok {
			in.TagIDs = parseIDList(c.FormValue("tags"))
		}
	}

	photo, photoType, err := readFormPhoto(c, "photo", service.MaxBlogPhotoBytes)
	if err != nil {
		return domainError(err)
	}
	in.Photo = photo
	in.PhotoType = photoType

	blog, err := h.blogService.Update(c.Request().Context(), c.Param("slug"), in)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, blog)
}

// Delete godoc
// @Summary Delete a post by slug
// @Tags blogs
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /blog/{slug} [delete]
func (h *BlogHandler) Delete(c echo.Context) error {
	if err := h.blogService.Delete(c.Request().Context(), c.Param("slug")); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Blog deleted successfully"})
}

// Photo godoc
// @Summary Serve a post's cover image
// @Tags blogs
// @Produce octet-stream
// @Param slug path string true "Post slug"
// @Success 200 {file} binary
// @Failure 400 {object} errors.ErrorResponse
// @Router /blog/photo/{slug} [get]
func (h *BlogHandler) Photo(c echo.Context) error {
	data, contentType, err := h.blogService.Photo(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return domainError(err)
	}
	return c.Blob(http.StatusOK, contentType, data)
}

// Related godoc
// @Summary List posts sharing a category with the given one
// @Tags blogs
// @Accept json
// @Produce json
// @Param request body RelatedRequest true "Post reference"
// @Success 200 {array} model.Blog
// @Failure 400 {object} errors.ErrorResponse
// @Router /blogs/related [post]
func (h *BlogHandler) Related(c echo.Context) error {
	var req RelatedRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	categoryIDs := make([]uint, 0, len(req.Blog.Categories))
	for _, ref := range req.Blog.Categories {
		categoryIDs = append(categoryIDs, ref.ID)
	}

	blogs, err := h.blogService.Related(c.Request().Context(), req.Blog.ID, categoryIDs, req.Limit)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, blogs)
}

// Search godoc
// @Summary Search posts by title or body substring
// @Tags blogs
// @Produce json
// @Param search query string true "Search term"
// @Success 200 {array} model.Blog
// @Router /blogs/search [get]
func (h *BlogHandler) Search(c echo.Context) error {
	blogs, err := h.blogService.Search(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, blogs)
}

// ListByAuthor godoc
// @Summary List a user's posts by username
// @Tags blogs
// @Produce json
// @Param username path string true "Author username"
// @Success 200 {array} model.Blog
// @Failure 400 {object} errors.ErrorResponse
// @Router /{username}/blogs [get]
func (h *BlogHandler) ListByAuthor(c echo.Context) error {
	blogs, err := h.blogService.ListByAuthor(c.Request().Context(), c.Param("username"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, blogs)
}

// parseIDList splits a comma-separated id list, dropping anything that is
// not a positive integer.
func parseIDList(raw string) []uint {
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 32)
		if err != nil || id == 0 {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids
}
