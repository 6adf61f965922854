package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/pckhai-work/blog-system-mern-stack/internal/auth"
	"github.com/pckhai-work/blog-system-mern-stack/internal/config"
	"github.com/pckhai-work/blog-system-mern-stack/internal/handler"
	"github.com/pckhai-work/blog-system-mern-stack/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	tokens *auth.TokenService,
	users repository.UserRepository,
	blogs repository.BlogRepository,
	authHandler *handler.AuthHandler,
	blogHandler *handler.BlogHandler,
	categoryHandler *handler.CategoryHandler,
	tagHandler *handler.TagHandler,
	userHandler *handler.UserHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// The browser client talks to the API cross-origin only during local
	// development; deployed instances sit behind the same origin.
	if cfg.Environment == "development" {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     []string{cfg.ClientURL},
			AllowCredentials: true,
		}))
	}

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public auth routes
	api.POST("/pre-signup", authHandler.PreSignup)
	api.POST("/signup", authHandler.Signup)
	api.POST("/signin", authHandler.Signin)
	api.GET("/signout", authHandler.Signout)
	api.PUT("/forgot-password", authHandler.ForgotPassword)
	api.PUT("/reset-password", authHandler.ResetPassword)
	api.POST("/google-login", authHandler.GoogleLogin)

	// Public read routes
	api.GET("/blogs", blogHandler.List)
	api.POST("/blogs-categories-tags", blogHandler.Feed)
	api.GET("/blog/:slug", blogHandler.Read)
	api.GET("/blog/photo/:slug", blogHandler.Photo)
	api.POST("/blogs/related", blogHandler.Related)
	api.GET("/blogs/search", blogHandler.Search)
	api.GET("/:username/blogs", blogHandler.ListByAuthor)

	api.GET("/categories", categoryHandler.List)
	api.GET("/category/:slug", categoryHandler.Read)
	api.GET("/tags", tagHandler.List)
	api.GET("/tag/:slug", tagHandler.Read)

	api.GET("/user/:username", userHandler.PublicProfile)
	api.GET("/user/photo/:username", userHandler.Photo)

	// Middleware is attached per route. A middleware group under /api would
	// register RouteNotFound catch-alls for the whole prefix and turn every
	// unmatched path into a token error instead of a 404.
	requireSignin := auth.RequireSignin(tokens)
	loadUser := auth.LoadUser(users)
	blogOwner := auth.BlogOwner(blogs)
	adminOnly := auth.AdminOnly()

	// Signed-in routes: own profile and author-scoped post mutations.
	api.GET("/user/profile", userHandler.Profile, requireSignin, loadUser)
	api.PUT("/user/update", userHandler.Update, requireSignin, loadUser)
	api.POST("/user/blog", blogHandler.Create, requireSignin, loadUser)
	api.PUT("/user/blog/:slug", blogHandler.Update, requireSignin, loadUser, blogOwner)
	api.DELETE("/user/blog/:slug", blogHandler.Delete, requireSignin, loadUser, blogOwner)

	// Admin routes: taxonomy management and unrestricted post mutations.
	api.POST("/blog", blogHandler.Create, requireSignin, loadUser, adminOnly)
	api.PUT("/blog/:slug", blogHandler.Update, requireSignin, loadUser, adminOnly)
	api.DELETE("/blog/:slug", blogHandler.Delete, requireSignin, loadUser, adminOnly)
	api.POST("/category", categoryHandler.Create, requireSignin, loadUser, adminOnly)
	api.DELETE("/category/:slug", categoryHandler.Delete, requireSignin, loadUser, adminOnly)
	api.POST("/tag", tagHandler.Create, requireSignin, loadUser, adminOnly)
	api.DELETE("/tag/:slug", tagHandler.Delete, requireSignin, loadUser, adminOnly)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
