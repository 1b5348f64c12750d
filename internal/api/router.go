package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/eventhub/event-server/internal/api/handler"
	"github.com/eventhub/event-server/internal/api/middleware"
	"github.com/eventhub/event-server/internal/core/domain"
	"github.com/eventhub/event-server/internal/core/ports"
	"github.com/eventhub/event-server/internal/realtime"
)

// Deps carries everything the router wires together. Services and the
// notifier are built in main so their lifecycles (worker contexts, graceful
// shutdown) stay out of the HTTP layer.
type Deps struct {
	Users    ports.UserService
	Events   ports.EventService
	Tokens   ports.TokenService
	Notifier handler.Notifier
	Registry *realtime.Registry
	Mongo    *mongo.Database
	Redis    *redis.Client
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("events"))

	authMiddleware := middleware.Auth(d.Tokens)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.Users, d.Tokens)
	e.POST("/signup", authHandler.Signup)
	e.POST("/login", authHandler.Login)
	e.GET("/me", authHandler.Me, authMiddleware)

	// --- Event routes ---
	eventHandler := handler.NewEventHandler(d.Events, d.Notifier)
	e.GET("/events", eventHandler.List, authMiddleware)
	e.POST("/events", eventHandler.Create, authMiddleware)
	e.GET("/admin/events", eventHandler.ListAll, authMiddleware, middleware.RBAC(domain.RoleAdmin))

	// --- Realtime channel ---
	wsHandler := realtime.NewHandler(d.Registry, d.Log)
	e.GET("/ws", wsHandler.Serve)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
