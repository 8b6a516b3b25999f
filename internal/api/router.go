package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/enzocoder/portfolio-api/internal/api/cookie"
	"github.com/enzocoder/portfolio-api/internal/api/handler"
	"github.com/enzocoder/portfolio-api/internal/api/httperr"
	"github.com/enzocoder/portfolio-api/internal/api/middleware"
	"github.com/enzocoder/portfolio-api/internal/core/domain"
	"github.com/enzocoder/portfolio-api/internal/core/ports"
	"github.com/enzocoder/portfolio-api/internal/infrastructure/http/handlers"
)

// Options carries everything NewRouter wires into the Echo instance.
type Options struct {
	Logger         zerolog.Logger
	Debug          bool
	AllowedOrigins []string
	BodyLimit      string

	Auth     ports.AuthService
	Users    ports.UserService
	Stacks   ports.StackService
	Works    ports.WorkService
	Contact  ports.ContactService
	Jar      *cookie.Jar
	Health   *handlers.HealthDependenciesHandler
	Registry *prometheus.Registry // nil means the default registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = httperr.NewHandler(opts.Logger, opts.Debug)

	var (
		reg prometheus.Registerer = prometheus.DefaultRegisterer
		gat prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if opts.Registry != nil {
		reg, gat = opts.Registry, opts.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(opts.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     opts.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: true,
	}))
	if opts.BodyLimit != "" {
		e.Use(echomiddleware.BodyLimit(opts.BodyLimit))
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "portfolio",
		Registerer: reg,
	}))

	// --- Health, metrics and docs (no auth required) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	health := opts.Health
	if health == nil {
		health = handlers.NewHealthDependenciesHandler(nil, nil)
	}
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gat}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authHandler := handler.NewAuthHandler(opts.Auth, opts.Jar, opts.Logger)
	stackHandler := handler.NewStackHandler(opts.Stacks)
	workHandler := handler.NewWorkHandler(opts.Works)
	userHandler := handler.NewUserHandler(opts.Users)
	contactHandler := handler.NewContactHandler(opts.Contact)

	// --- Public routes ---
	api := e.Group("/api")
	api.POST("/signin", authHandler.SignIn)
	api.POST("/signout", authHandler.SignOut)
	api.GET("/check-auth", authHandler.CheckAuth)
	api.GET("/stacks", stackHandler.ListPublic)
	api.GET("/works", workHandler.ListPublic)
	api.GET("/works/:id", workHandler.GetPublic)
	api.POST("/contact", contactHandler.Submit)

	// --- Dashboard (session required) ---
	dash := api.Group("/dashboard", middleware.Session(opts.Auth, opts.Jar))
	dash.GET("/profile", userHandler.Profile)
	dash.PUT("/profile", userHandler.UpdateProfile)

	editors := middleware.RBAC(domain.RoleAdmin, domain.RoleModerator)

	stacks := dash.Group("/stacks", editors)
	stacks.GET("", stackHandler.ListAll)
	stacks.POST("", stackHandler.Create)
	stacks.GET("/:id", stackHandler.Get)
	stacks.PUT("/:id", stackHandler.Update)
	stacks.DELETE("/:id", stackHandler.Delete)

	works := dash.Group("/works", editors)
	works.GET("", workHandler.ListAll)
	works.POST("", workHandler.Create)
	works.GET("/:id", workHandler.Get)
	works.PUT("/:id", workHandler.Update)
	works.DELETE("/:id", workHandler.Delete)

	users := dash.Group("/users", middleware.RBAC(domain.RoleAdmin))
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			var ev *zerolog.Event
			switch {
			case v.Status >= http.StatusInternalServerError:
				ev = log.Error().Err(v.Error)
			case v.Status >= http.StatusBadRequest:
				ev = log.Warn()
			default:
				ev = log.Info()
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
