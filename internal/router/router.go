// Package router wires middleware and handlers onto a gin engine.
package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/dancepractice/practice-api/internal/handler"
	"github.com/dancepractice/practice-api/internal/middleware"
	"github.com/dancepractice/practice-api/pkg/logger"
	corsmiddleware "github.com/dancepractice/practice-api/pkg/middleware/cors"
	reqidmiddleware "github.com/dancepractice/practice-api/pkg/middleware/requestid"
)

// Config collects the handlers and switches the router needs.
type Config struct {
	APIPrefix      string
	AllowedOrigins []string
	MetricsPath    string
	EnableMetrics  bool
	EnableDocs     bool

	Logger   *zap.Logger
	Recorder middleware.RequestRecorder

	Users               *handler.UserHandler
	Locations           *handler.LocationHandler
	Sessions            *handler.SessionHandler
	SessionNotes        *handler.SessionNoteHandler
	SchedulePreferences *handler.SchedulePreferenceHandler
	AbuseReports        *handler.AbuseReportHandler
	System              *handler.MetricsHandler
}

// New builds the engine with every route registered.
func New(cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	if cfg.Logger != nil {
		r.Use(logger.GinMiddleware(cfg.Logger))
	}
	r.Use(corsmiddleware.New(cfg.AllowedOrigins))
	if cfg.EnableMetrics {
		r.Use(middleware.Metrics(cfg.Recorder))
	}

	r.GET("/health", cfg.System.Health)
	r.GET("/ready", cfg.System.Ready)
	if cfg.EnableMetrics {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, cfg.System.Prometheus)
	}
	if cfg.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	users := api.Group("/users")
	{
		users.GET("", cfg.Users.List)
		users.POST("", cfg.Users.Create)
		users.GET("/:id", cfg.Users.Get)
		users.PUT("/:id", cfg.Users.Update)
		users.DELETE("/:id", cfg.Users.Delete)
		users.PATCH("/:id/status", cfg.Users.UpdateStatus)
		users.GET("/:id/blocks", cfg.Users.ListBlocked)
		users.PUT("/:id/blocks/:blockedId", cfg.Users.Block)
		users.DELETE("/:id/blocks/:blockedId", cfg.Users.Unblock)

		users.GET("/:id/schedule-preferences", cfg.SchedulePreferences.List)
		users.POST("/:id/schedule-preferences", cfg.SchedulePreferences.Create)
		users.PUT("/:id/schedule-preferences/:preferenceId", cfg.SchedulePreferences.Update)
		users.DELETE("/:id/schedule-preferences/:preferenceId", cfg.SchedulePreferences.Delete)
	}

	locations := api.Group("/locations")
	{
		locations.GET("", cfg.Locations.List)
		locations.POST("", cfg.Locations.Create)
		locations.GET("/:id", cfg.Locations.Get)
		locations.PUT("/:id", cfg.Locations.Update)
		locations.DELETE("/:id", cfg.Locations.Delete)
	}

	sessions := api.Group("/sessions")
	{
		sessions.GET("", cfg.Sessions.List)
		sessions.POST("", cfg.Sessions.Create)
		sessions.GET("/:id", cfg.Sessions.Get)
		sessions.PUT("/:id", cfg.Sessions.Update)
		sessions.POST("/:id/cancel", cfg.Sessions.Cancel)
		sessions.POST("/:id/participants", cfg.Sessions.Join)
		sessions.DELETE("/:id/participants/:userId", cfg.Sessions.Leave)

		sessions.GET("/:id/notes", cfg.SessionNotes.List)
		sessions.POST("/:id/notes", cfg.SessionNotes.Add)
		sessions.DELETE("/:id/notes/:noteId", cfg.SessionNotes.Delete)
	}

	reports := api.Group("/abuse-reports")
	{
		reports.POST("", cfg.AbuseReports.Submit)
		reports.GET("", cfg.AbuseReports.List)
		reports.GET("/export", cfg.AbuseReports.Export)
		reports.PATCH("/:id/status", cfg.AbuseReports.UpdateStatus)
	}

	return r
}
