package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/characters/characters-api/docs"
	"github.com/characters/characters-api/internal/api/handler"
	"github.com/characters/characters-api/internal/api/middleware"
	"github.com/characters/characters-api/internal/core/domain"
	"github.com/characters/characters-api/internal/core/ports"
)

// Deps are the collaborators the router wires into handlers and gates.
type Deps struct {
	AuthService      ports.AuthService
	CharacterService ports.CharacterService
	TokenVerifier    ports.TokenVerifier
	Revocations      ports.RevocationRegistry
	Readiness        map[string]handler.Pinger
	Log              zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// Per-router registry so several routers can coexist in one process.
	reg := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "characters",
		Registerer: reg,
	}))

	// --- Gates ---
	authn := middleware.NewAuthenticator(d.TokenVerifier, d.Revocations)
	anyRole := middleware.Protect(authn, domain.RoleUser, domain.RoleAdmin)
	adminOnly := middleware.Protect(authn, domain.RoleAdmin)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.AuthService)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, anyRole)
	e.POST("/admin/users/revoke", authHandler.RevokeUser, adminOnly)

	// --- Characters ---
	chars := handler.NewCharacterHandler(d.CharacterService)
	g := e.Group("/characters")
	g.GET("", chars.List, anyRole)
	g.GET("/:id", chars.Get, anyRole)
	g.POST("", chars.Create, adminOnly)
	g.PUT("/:id", chars.Update, adminOnly)
	g.DELETE("/:id", chars.Delete, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Readiness)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Ops ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{reg, prometheus.DefaultGatherer},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
