package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pckhai-work/blog-system-mern-stack/internal/auth"
	"github.com/pckhai-work/blog-system-mern-stack/internal/service"
)

// UserHandler handles profile endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateUserRequest carries the profile fields of the multipart update form.
// Everything is optional; submitted fields must still be well-formed.
type UpdateUserRequest struct {
	Name     string `form:"name"`
	Email    string `form:"email" validate:"omitempty,email"`
	About    string `form:"about"`
	Password string `form:"password" validate:"omitempty,min=6"`
}

// Profile godoc
// @Summary Read the signed-in user's profile
// @Tags users
// @Produce json
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /user/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	user := auth.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return c.JSON(http.StatusOK, user)
}

// PublicProfile godoc
// @Summary Read a public profile with recent posts
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} service.PublicProfile
// @Failure 400 {object} errors.ErrorResponse
// @Router /user/{username} [get]
func (h *UserHandler) PublicProfile(c echo.Context) error {
	profile, err := h.userService.PublicProfile(c.Request().Context(), c.Param("username"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

// Update godoc
// @Summary Update the signed-in user's profile
// @Tags users
// @Accept mpfd
// @Produce json
// @Param name formData string false "Name"
// @Param email formData string false "Email"
// @Param about formData string false "About"
// @Param password formData string false "New password, min 6 characters"
// @Param photo formData file false "Profile photo, max 2.5MB"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /user/update [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user := auth.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	photo, photoType, err := readFormPhoto(c, "photo", service.MaxUserPhotoBytes)
	if err != nil {
		return domainError(err)
	}

	updated, err := h.userService.Update(c.Request().Context(), user, service.UpdateUserInput{
		Name:      req.Name,
		Email:     req.Email,
		About:     req.About,
		Password:  req.Password,
		Photo:     photo,
		PhotoType: photoType,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Photo godoc
// @Summary Serve a user's profile photo
// @Tags users
// @Produce octet-stream
// @Param username path string true "Username"
// @Success 200 {file} binary
// @Failure 400 {object} errors.ErrorResponse
// @Router /user/photo/{username} [get]
func (h *UserHandler) Photo(c echo.Context) error {
	data, contentType, err := h.userService.Photo(c.Request().Context(), c.Param("username"))
	if err != nil {
		return domainError(err)
	}
	return c.Blob(http.StatusOK, contentType, data)
}
