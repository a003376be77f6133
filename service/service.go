package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/loganlanou/userdesk/internal/avatar"
	"github.com/loganlanou/userdesk/internal/handlers"
	"github.com/loganlanou/userdesk/internal/middleware"
	"github.com/loganlanou/userdesk/internal/reqres"
	"github.com/loganlanou/userdesk/internal/screens"
	"github.com/loganlanou/userdesk/internal/session"
	"github.com/loganlanou/userdesk/storage"
	"golang.org/x/time/rate"
)

const userAgent = "userdesk/1.0"

type Service struct {
	storage       *storage.Storage
	config        *Config
	sessions      *session.Manager
	screens       *screens.Registry
	authHandler   *handlers.AuthHandler
	usersHandler  *handlers.UsersHandler
	avatarHandler *handlers.AvatarHandler
}

func New(storage *storage.Storage, config *Config) (*Service, error) {
	return newService(storage, config, nil)
}

// newService builds the service; transport replaces the upstream round
// tripper when non-nil.
func newService(storage *storage.Storage, config *Config, transport http.RoundTripper) (*Service, error) {
	api := reqres.NewClient(reqres.Options{
		BaseURL:   config.Reqres.BaseURL,
		APIKey:    config.Reqres.APIKey,
		UserAgent: userAgent,
		Transport: transport,
	})

	renderer, err := avatar.NewRenderer(avatar.DefaultSize)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize avatar renderer: %w", err)
	}

	sessions := session.NewManager(config.Session.Secret, config.IsProduction(), storage.Queries)
	registry := screens.NewRegistry(api)

	slog.Info("upstream api configured",
		"base_url", api.BaseURL(),
		"api_key", config.Reqres.APIKey != "",
	)

	return &Service{
		storage:       storage,
		config:        config,
		sessions:      sessions,
		screens:       registry,
		authHandler:   handlers.NewAuthHandler(sessions, screens.NewLogin(api, config.Login.Password), registry),
		usersHandler:  handlers.NewUsersHandler(sessions, registry, screens.NewEditUser(api)),
		avatarHandler: handlers.NewAvatarHandler(renderer),
	}, nil
}

// Start runs the background work of the service until ctx is done.
func (s *Service) Start(ctx context.Context) {
	s.screens.StartSweeper(ctx, time.Minute, s.config.Session.ScreenTTL)
}

func (s *Service) RegisterRoutes(e *echo.Echo) {
	// Public routes that never look at the session
	e.GET("/health", s.handleHealth)
	e.GET("/avatar/:name", s.avatarHandler.HandleInitials)

	withSession := e.Group("")
	withSession.Use(middleware.LoadSession(s.sessions))

	withSession.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, middleware.LoginPath)
	})

	// Every page with a POST form issues and checks a CSRF token. The guard
	// runs first so anonymous requests are redirected, not rejected.
	csrf := middleware.CSRF(s.config.IsProduction())

	// Login
	withSession.GET("/login", s.authHandler.HandleLoginPage, csrf)
	withSession.POST("/login", s.authHandler.HandleLogin, s.loginRateLimiter(), csrf)

	// Logout clears the token whether or not one is present
	withSession.POST("/logout", s.authHandler.HandleLogout, csrf)

	// Guarded screens
	guarded := withSession.Group("")
	guarded.Use(middleware.RequireSession(), csrf)

	guarded.GET("/users", s.usersHandler.HandleList)
	guarded.POST("/users/:id/delete", s.usersHandler.HandleDelete)
	guarded.GET("/edituser/:id", s.usersHandler.HandleEditPage)
	guarded.POST("/edituser/:id", s.usersHandler.HandleEditSubmit)
}

// loginRateLimiter throttles login attempts per client IP.
func (s *Service) loginRateLimiter() echo.MiddlewareFunc {
	limit := s.config.Login.RateLimit
	store := echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(limit),
		Burst:     limit,
		ExpiresIn: 3 * time.Minute,
	})

	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			slog.Warn("login rate limit exceeded", "ip", identifier)
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts")
		},
	})
}

func (s *Service) handleHealth(c echo.Context) error {
	ctx := c.Request().Context()

	if err := s.storage.Ping(ctx); err != nil {
		slog.Error("health check failed", "error", err)
		return c.JSON(http.StatusServiceUnavailable, map[string]any{
			"status":      "unhealthy",
			"environment": s.config.Environment,
			"database":    "unreachable",
		})
	}

	count, err := s.storage.Queries.CountSessions(ctx)
	if err != nil {
		slog.Warn("failed to count sessions", "error", err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status":        "healthy",
		"environment":   s.config.Environment,
		"database":      "connected",
		"sessions":      count,
		"mounted_lists": s.screens.Len(),
	})
}
