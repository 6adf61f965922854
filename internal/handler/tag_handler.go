package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pckhai-work/blog-system-mern-stack/internal/service"
)

// TagHandler handles tag endpoints.
type TagHandler struct {
	tagService service.TagService
}

// NewTagHandler creates a new tag handler.
func NewTagHandler(tagService service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// CreateTagRequest names a new tag.
type CreateTagRequest struct {
	Name string `json:"name" validate:"required,max=32"`
}

// Create godoc
// @Summary Create a tag
// @Tags taxonomy
// @Accept json
// @Produce json
// @Param request body CreateTagRequest true "Tag name"
// @Success 200 {object} model.Tag
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /tag [post]
func (h *TagHandler) Create(c echo.Context) error {
	var req CreateTagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tag, err := h.tagService.Create(c.Request().Context(), req.Name)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, tag)
}

// List godoc
// @Summary List all tags
// @Tags taxonomy
// @Produce json
// @Success 200 {array} model.Tag
// @Router /tags [get]
func (h *TagHandler) List(c echo.Context) error {
	tags, err := h.tagService.List(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, tags)
}

// Read godoc
// @Summary Read a tag and its posts
// @Tags taxonomy
// @Produce json
// @Param slug path string true "Tag slug"
// @Success 200 {object} service.TagWithBlogs
// @Failure 400 {object} errors.ErrorResponse
// @Router /tag/{slug} [get]
func (h *TagHandler) Read(c echo.Context) error {
	result, err := h.tagService.Read(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// Delete godoc
// @Summary Delete a tag; posts keep existing without the reference
// @Tags taxonomy
// @Produce json
// @Param slug path string true "Tag slug"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /tag/{slug} [delete]
func (h *TagHandler) Delete(c echo.Context) error {
	if err := h.tagService.Delete(c.Request().Context(), c.Param("slug")); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Tag deleted successfully"})
}
