package http

import (
	"slices"

	"github.com/gdugdh24/mirrorfit-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/mirrorfit-backend/internal/delivery/http/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Router struct {
	sessionHandler    *handler.SessionHandler
	screenHandler     *handler.ScreenHandler
	onboardingHandler *handler.OnboardingHandler
	tryOnHandler      *handler.TryOnHandler
	wardrobeHandler   *handler.WardrobeHandler
	stylistHandler    *handler.StylistHandler
	sessionMiddleware *middleware.SessionMiddleware
	logger            *zap.Logger
	gatherer          prometheus.Gatherer
	allowedOrigins    []string
}

func NewRouter(
	sessionHandler *handler.SessionHandler,
	screenHandler *handler.ScreenHandler,
	onboardingHandler *handler.OnboardingHandler,
	tryOnHandler *handler.TryOnHandler,
	wardrobeHandler *handler.WardrobeHandler,
	stylistHandler *handler.StylistHandler,
	sessionMiddleware *middleware.SessionMiddleware,
	logger *zap.Logger,
	gatherer prometheus.Gatherer,
	allowedOrigins []string,
) *Router {
	return &Router{
		sessionHandler:    sessionHandler,
		screenHandler:     screenHandler,
		onboardingHandler: onboardingHandler,
		tryOnHandler:      tryOnHandler,
		wardrobeHandler:   wardrobeHandler,
		stylistHandler:    stylistHandler,
		sessionMiddleware: sessionMiddleware,
		logger:            logger,
		gatherer:          gatherer,
		allowedOrigins:    allowedOrigins,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(r.logger))
	router.Use(cors.New(r.corsConfig()))

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	if r.gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})))
	}

	// API v1
	v1 := router.Group("/api/v1")
	{
		v1.POST("/session", r.sessionHandler.Open)

		// Session-scoped routes
		protected := v1.Group("")
		protected.Use(r.sessionMiddleware.RequireSession())
		{
			protected.POST("/session/reset", r.sessionHandler.Reset)
			protected.GET("/profile", r.sessionHandler.GetProfile)

			screens := protected.Group("/screens")
			{
				screens.POST("/back", r.screenHandler.Back)
				screens.GET("/*path", r.screenHandler.Show)
			}

			protected.POST("/welcome/start", r.onboardingHandler.Start)

			onboarding := protected.Group("/onboarding")
			{
				onboarding.POST("/photo", r.onboardingHandler.UploadPhoto)
				onboarding.POST("/photo/next", r.onboardingHandler.PhotoNext)
				onboarding.PATCH("/measurements", r.onboardingHandler.EditMeasurements)
				onboarding.POST("/measurements", r.onboardingHandler.CommitMeasurements)
				onboarding.POST("/styles/toggle", r.onboardingHandler.ToggleStyle)
				onboarding.POST("/styles/finish", r.onboardingHandler.FinishStyles)
			}

			tryOn := protected.Group("/try-on")
			{
				tryOn.POST("/garment", r.tryOnHandler.SelectGarment)
				tryOn.POST("/generate", r.tryOnHandler.Generate)
				tryOn.POST("/reset", r.tryOnHandler.Reset)
			}

			wardrobe := protected.Group("/wardrobe")
			{
				wardrobe.GET("/items", r.wardrobeHandler.ListItems)
				wardrobe.POST("/items", r.wardrobeHandler.AddItem)
			}

			protected.POST("/stylist/messages", r.stylistHandler.SendMessage)
		}
	}

	return router
}

func (r *Router) corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PATCH", "HEAD", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	if len(r.allowedOrigins) == 0 || slices.Contains(r.allowedOrigins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = r.allowedOrigins
	cfg.AllowCredentials = true
	return cfg
}
