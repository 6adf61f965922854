package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "github.com/pckhai-work/blog-system-mern-stack/docs" // swagger docs

	"github.com/pckhai-work/blog-system-mern-stack/internal/auth"
	"github.com/pckhai-work/blog-system-mern-stack/internal/cache"
	"github.com/pckhai-work/blog-system-mern-stack/internal/config"
	"github.com/pckhai-work/blog-system-mern-stack/internal/db"
	"github.com/pckhai-work/blog-system-mern-stack/internal/handler"
	"github.com/pckhai-work/blog-system-mern-stack/internal/mail"
	"github.com/pckhai-work/blog-system-mern-stack/internal/model"
	"github.com/pckhai-work/blog-system-mern-stack/internal/repository"
	"github.com/pckhai-work/blog-system-mern-stack/internal/router"
	"github.com/pckhai-work/blog-system-mern-stack/internal/service"
)

// @title Blog Platform API
// @version 1.0
// @description Blogging platform REST backend: authentication with email activation and Google login, post CRUD with image attachments, and category/tag management.
// @host localhost:8000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	// .env is optional; deployed environments set real variables.
	_ = godotenv.Load()
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			log.Printf("database close: %v", err)
		}
	}()

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Tag{},
		&model.Blog{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	blogRepo := repository.NewBlogRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	tagRepo := repository.NewTagRepository(gormDB)

	// Initialize auth and outbound components
	tokenService := auth.NewTokenService(cfg.JWTSecret, cfg.JWTAccountActivation, cfg.JWTResetPassword)
	googleVerifier := auth.NewGoogleVerifier(cfg.GoogleClientID)
	mailer := mail.NewSendgridMailer(cfg.SendgridAPIKey, cfg.EmailFrom, cfg.AppName, cfg.ClientURL)

	// Initialize services
	authService := service.NewAuthService(userRepo, tokenService, mailer, googleVerifier, cfg.ClientURL)
	blogService := service.NewBlogService(blogRepo, categoryRepo, tagRepo, userRepo, cacheClient, cfg.AppName)
	categoryService := service.NewCategoryService(categoryRepo, blogRepo)
	tagService := service.NewTagService(tagRepo, blogRepo)
	userService := service.NewUserService(userRepo, blogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	blogHandler := handler.NewBlogHandler(blogService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	tagHandler := handler.NewTagHandler(tagService)
	userHandler := handler.NewUserHandler(userService)

	// Register routes
	router.Register(
		e,
		cfg,
		tokenService,
		userRepo,
		blogRepo,
		authHandler,
		blogHandler,
		categoryHandler,
		tagHandler,
		userHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
