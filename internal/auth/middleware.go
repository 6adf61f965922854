package auth

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "github.com/pckhai-work/blog-system-mern-stack/internal/errors"
	"github.com/pckhai-work/blog-system-mern-stack/internal/model"
	"github.com/pckhai-work/blog-system-mern-stack/internal/repository"
)

const (
	// tokenContextKey is where echo-jwt parks the verified session token.
	tokenContextKey = "user"
	// userContextKey is where LoadUser parks the acting user's row.
	userContextKey = "authUser"
	// SessionCookieName is the browser-convenience mirror of the session token.
	SessionCookieName = "token"
)

// RequireSignin returns the echo-jwt middleware that verifies the session
// token from the Authorization header or the session cookie.
func RequireSignin(tokens *TokenService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  tokens.SessionSecret(),
		TokenLookup: "header:Authorization:Bearer ,cookie:" + SessionCookieName,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(SessionClaims)
		},
	})
}

// LoadUser resolves the verified session claims into the acting user and
// attaches it to the request context. Runs after RequireSignin.
func LoadUser(users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get(tokenContextKey).(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			claims, ok := token.Claims.(*SessionClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				httpErr := apperrors.MapErrorToHTTP(apperrors.ErrUserNotFound)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// AdminOnly rejects users without the admin role flag. Runs after LoadUser.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil || !user.IsAdmin() {
				httpErr := apperrors.MapErrorToHTTP(apperrors.ErrAdminOnly)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			return next(c)
		}
	}
}

// BlogOwner allows the mutation through only for the post's author or an
// admin. Runs after LoadUser on the author-scoped blog routes.
func BlogOwner(blogs repository.BlogRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			slug := strings.ToLower(c.Param("slug"))
			blog, err := blogs.FindBySlug(c.Request().Context(), slug)
			if err != nil {
				httpErr := apperrors.MapErrorToHTTP(apperrors.ErrBlogNotFound)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}

			if blog.PostedByID != user.ID && !user.IsAdmin() {
				httpErr := apperrors.MapErrorToHTTP(apperrors.ErrNotAuthorized)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			return next(c)
		}
	}
}

// CurrentUser returns the acting user attached by LoadUser, or nil.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}
