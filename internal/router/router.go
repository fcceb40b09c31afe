package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gatherly-dev/gatherly/internal/config"
	"github.com/gatherly-dev/gatherly/internal/handlers"
	"github.com/gatherly-dev/gatherly/internal/metrics"
	"github.com/gatherly-dev/gatherly/internal/middleware"
	"github.com/gatherly-dev/gatherly/internal/services"
	"github.com/gatherly-dev/gatherly/internal/store"
)

func New(cfg config.Config, st *store.Store, mailer *services.Mailer, logger zerolog.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(metrics.Middleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	h := handlers.New(st, mailer, logger)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api", middleware.RateLimit(cfg.RateLimit, cfg.RateLimit.PerMinute))
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/stats", h.Stats)

		auth := api.Group("/auth")
		{
			loginLimit := middleware.RateLimit(cfg.RateLimit, cfg.RateLimit.LoginPerMinute)
			auth.POST("/register", loginLimit, h.Register)
			auth.POST("/login", loginLimit, h.Login)
			auth.GET("/me", middleware.Auth(st), h.Me)
			auth.PATCH("/me", middleware.Auth(st), h.UpdateMe)
			auth.DELETE("/me", middleware.Auth(st), h.DeleteMe)
		}

		events := api.Group("/events")
		{
			events.GET("", middleware.OptionalAuth(st), h.ListEvents)
			events.POST("", middleware.Auth(st), h.CreateEvent)
			events.GET("/mine", middleware.Auth(st), h.MyEvents)
			events.GET("/:id", middleware.OptionalAuth(st), h.GetEvent)
			events.PATCH("/:id", middleware.Auth(st), h.UpdateEvent)
			events.DELETE("/:id", middleware.Auth(st), h.DeleteEvent)
			events.GET("/:id/participants", middleware.Auth(st), h.EventParticipants)
			events.POST("/:id/register", middleware.Auth(st), h.RegisterForEvent)
			events.DELETE("/:id/register", middleware.Auth(st), h.UnregisterFromEvent)
		}

		api.GET("/registrations", middleware.Auth(st), h.MyRegistrations)
	}

	return r
}
