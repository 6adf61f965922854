package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pckhai-work/blog-system-mern-stack/internal/auth"
	"github.com/pckhai-work/blog-system-mern-stack/internal/model"
	"github.com/pckhai-work/blog-system-mern-stack/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// PreSignupRequest starts the email-activation signup flow.
type PreSignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// SignupRequest redeems an activation token.
type SignupRequest struct {
	Token string `json:"token" validate:"required"`
}

// SigninRequest carries signin credentials.
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// ForgotPasswordRequest starts the password-reset flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest redeems a reset token.
type ResetPasswordRequest struct {
	ResetPasswordLink string `json:"resetPasswordLink" validate:"required"`
	NewPassword       string `json:"newPassword" validate:"required,min=6"`
}

// GoogleLoginRequest carries a Google identity token.
type GoogleLoginRequest struct {
	TokenID string `json:"tokenId" validate:"required"`
}

// SessionResponse is the signin/google-login payload.
type SessionResponse struct {
	Token string                 `json:"token"`
	User  model.PublicProjection `json:"user"`
}

// PreSignup godoc
// @Summary Start signup by emailing an activation link
// @Tags auth
// @Accept json
// @Produce json
// @Param request body PreSignupRequest true "Pending signup"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /pre-signup [post]
func (h *AuthHandler) PreSignup(c echo.Context) error {
	var req PreSignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.PreSignup(c.Request().Context(), req.Name, req.Email, req.Password); err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Email has been sent to %s. Follow the instructions to activate your account.", req.Email),
	})
}

// Signup godoc
// @Summary Activate an account from an emailed token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Activation token"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		// A missing token is a hard failure, not a silent success.
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.authService.Signup(c.Request().Context(), req.Token); err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Signup success! Please signin"})
}

// Signin godoc
// @Summary Sign in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SigninRequest true "Credentials"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /signin [post]
func (h *AuthHandler) Signin(c echo.Context) error {
	var req SigninRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Signin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return domainError(err)
	}

	setSessionCookie(c, token)
	return c.JSON(http.StatusOK, SessionResponse{Token: token, User: user.Public()})
}

// Signout godoc
// @Summary Clear the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /signout [get]
func (h *AuthHandler) Signout(c echo.Context) error {
	clearSessionCookie(c)
	return c.JSON(http.StatusOK, MessageResponse{Message: "Signout successfully"})
}

// ForgotPassword godoc
// @Summary Email a password reset link
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Account email"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /forgot-password [put]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Email has been sent to %s. Follow the instructions to reset your password. Link expires in 10min.", req.Email),
	})
}

// ResetPassword godoc
// @Summary Reset the password from an emailed token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /reset-password [put]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.ResetPassword(c.Request().Context(), req.ResetPasswordLink, req.NewPassword); err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Great! Now you can login with your new password"})
}

// GoogleLogin godoc
// @Summary Sign in with a Google identity token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body GoogleLoginRequest true "Google ID token"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /google-login [post]
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	var req GoogleLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.GoogleLogin(c.Request().Context(), req.TokenID)
	if err != nil {
		return domainError(err)
	}

	setSessionCookie(c, token)
	return c.JSON(http.StatusOK, SessionResponse{Token: token, User: user.Public()})
}

func setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(auth.SessionTokenExpiry),
		HttpOnly: true,
	})
}

func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
	})
}
