// Package server contains the HTTP handlers and wiring for the web application.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"postboard/internal/auth"
	"postboard/internal/cache"
	"postboard/internal/config"
	"postboard/internal/database"
	"postboard/internal/middleware"
	"postboard/internal/observability"
	"postboard/internal/repository"
	"postboard/internal/service"
	"postboard/internal/views"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Rate limits for the form endpoints.
var (
	signupLimit  = middleware.Limit{Name: "signup", Max: 3, Window: 10 * time.Minute}
	loginLimit   = middleware.Limit{Name: "login", Max: 10, Window: 5 * time.Minute}
	newPostLimit = middleware.Limit{Name: "create_post", Max: 10, Window: time.Minute}
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	tokens         *auth.TokenIssuer
	revocations    *cache.RevocationStore
	userRepo       repository.UserRepository
	groupRepo      repository.GroupRepository
	postRepo       repository.PostRepository
	postService    *service.PostService
	accountService *service.AccountService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	redisClient := cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// A nil redisClient disables token revocation and rate limiting.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	tokens, err := auth.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.SessionTTLHours)*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("session tokens: %w", err)
	}

	server := &Server{
		config:      cfg,
		db:          db,
		redis:       redisClient,
		tokens:      tokens,
		revocations: cache.NewRevocationStore(redisClient),
		userRepo:    repository.NewUserRepository(db),
		groupRepo:   repository.NewGroupRepository(db),
		postRepo:    repository.NewPostRepository(db),
	}
	if cfg.MetricsEnabled {
		server.promMiddleware = observability.HTTPMetrics("postboard")
	}

	server.postService = service.NewPostService(server.postRepo, server.groupRepo, server.userRepo)
	server.accountService = service.NewAccountService(server.userRepo)

	return server, nil
}

// App returns the configured Fiber application, building it on first use.
func (s *Server) App() *fiber.App {
	if s.app != nil {
		return s.app
	}

	app := fiber.New(fiber.Config{
		AppName:      "Postboard",
		Views:        views.NewEngine(),
		ErrorHandler: s.errorHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	s.app = app
	return app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	app.Use(middleware.TracingMiddleware())

	// Prometheus metrics. The scrape route is registered ahead of the
	// collector so scrapes are not counted.
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
		app.Use(s.promMiddleware.Middleware)
	}

	// Security headers
	app.Use(helmet.New())

	// Session identity, then context propagation so user_id reaches the logs.
	app.Use(s.identify())
	app.Use(middleware.ContextMiddleware())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	if s.config.CSRFEnabled {
		app.Use(csrf.New(csrf.Config{
			KeyLookup:      "form:_csrf",
			CookieName:     "postboard_csrf",
			CookieSameSite: "Lax",
			CookieHTTPOnly: true,
			CookieSecure:   s.config.IsProduction(),
			Expiration:     2 * time.Hour,
			ContextKey:     csrfContextKey,
			Next: func(c *fiber.Ctx) bool {
				return c.Path() == "/metrics"
			},
		}))
	}
}

// SetupRoutes configures all routes for the application. Fixed paths are
// registered before the /:username catch-alls.
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Diagnostic error pages
	app.Get("/404", s.NotFoundPage)
	app.Get("/500", s.ServerErrorPage)

	// Identity entry points
	authGroup := app.Group("/auth")
	authGroup.Get("/signup", s.SignupPage)
	authGroup.Post("/signup", middleware.RateLimit(s.redis, s.config.Env, signupLimit), s.Signup)
	authGroup.Get("/login", s.LoginPage)
	authGroup.Post("/login", middleware.RateLimit(s.redis, s.config.Env, loginLimit), s.Login)
	authGroup.Post("/logout", s.Logout)

	app.Get("/", s.Feed)
	app.Get("/group/:slug", s.GroupPosts)

	newPost := s.requireLogin("/auth/signup")
	app.Get("/new", newPost, s.NewPost)
	app.Post("/new", newPost, middleware.RateLimit(s.redis, s.config.Env, newPostLimit), s.NewPost)

	editPost := s.requireLogin("/auth/login")
	app.Get("/:username/:post_id/edit", editPost, s.EditPost)
	app.Post("/:username/:post_id/edit", editPost, s.EditPost)
	app.Get("/:username/:post_id", s.PostDetail)
	app.Get("/:username", s.Profile)
}

// Start starts the server
func (s *Server) Start() error {
	app := s.App()
	middleware.Logger.Info("Server starting", slog.String("port", s.config.Port))
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	// Close database connection
	if s.db != nil {
		if err := database.Close(s.db); err != nil {
			middleware.Logger.Error("error closing sql DB", slog.String("error", err.Error()))
		}
	}

	// Close Redis connection
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", err.Error()))
		}
	}

	middleware.Logger.Info("Server shutdown complete")
	return nil
}
