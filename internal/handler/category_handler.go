package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pckhai-work/blog-system-mern-stack/internal/service"
)

// CategoryHandler handles category endpoints.
type CategoryHandler struct {
	categoryService service.CategoryService
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategoryRequest names a new category.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=32"`
}

// Create godoc
// @Summary Create a category
// @Tags taxonomy
// @Accept json
// @Produce json
// @Param request body CreateCategoryRequest true "Category name"
// @Success 200 {object} model.Category
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /category [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.categoryService.Create(c.Request().Context(), req.Name)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, category)
}

// List godoc
// @Summary List all categories
// @Tags taxonomy
// @Produce json
// @Success 200 {array} model.Category
// @Router /categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.categoryService.List(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, categories)
}

// Read godoc
// @Summary Read a category and its posts
// @Tags taxonomy
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} service.CategoryWithBlogs
// @Failure 400 {object} errors.ErrorResponse
// @Router /category/{slug} [get]
func (h *CategoryHandler) Read(c echo.Context) error {
	result, err := h.categoryService.Read(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// Delete godoc
// @Summary Delete a category; posts keep existing without the reference
// @Tags taxonomy
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /category/{slug} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	if err := h.categoryService.Delete(c.Request().Context(), c.Param("slug")); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Category deleted successfully"})
}
