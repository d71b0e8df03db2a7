package container

import (
	"context"
	"fmt"

	"github.com/gdugdh24/mirrorfit-backend/internal/config"
	"github.com/gdugdh24/mirrorfit-backend/internal/delivery/http"
	"github.com/gdugdh24/mirrorfit-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/mirrorfit-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/mirrorfit-backend/internal/infrastructure/gemini"
	"github.com/gdugdh24/mirrorfit-backend/internal/infrastructure/server"
	"github.com/gdugdh24/mirrorfit-backend/internal/repository/memory"
	"github.com/gdugdh24/mirrorfit-backend/internal/usecase/flow"
	"github.com/gdugdh24/mirrorfit-backend/internal/usecase/onboarding"
	"github.com/gdugdh24/mirrorfit-backend/internal/usecase/session"
	"github.com/gdugdh24/mirrorfit-backend/internal/usecase/stylist"
	"github.com/gdugdh24/mirrorfit-backend/internal/usecase/tryon"
	"github.com/gdugdh24/mirrorfit-backend/internal/usecase/wardrobe"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *zap.Logger
	Server *server.Server
	Gemini *gemini.GeminiClient
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	geminiClient, err := gemini.NewGeminiClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Temperature)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gemini client: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router, err := NewRouter(cfg, logger, geminiClient, registry)
	if err != nil {
		_ = geminiClient.Close()
		return nil, err
	}

	return &Container{
		Config: cfg,
		Logger: logger,
		Server: server.NewServer(&cfg.Server, router, logger),
		Gemini: geminiClient,
	}, nil
}

// NewRouter wires repositories, use cases and handlers on top of an AI
// backend and returns the ready HTTP engine.
func NewRouter(cfg *config.Config, logger *zap.Logger, backend gemini.Backend, registry *prometheus.Registry) (*gin.Engine, error) {
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := handler.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	// Initialize repositories
	sessionRepo, err := memory.NewSessionRepository(cfg.Session.MaxActive)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session store: %w", err)
	}

	// Initialize AI gateway
	gateway := gemini.NewGateway(
		backend,
		gemini.Models{Flash: cfg.Gemini.FlashModel, Image: cfg.Gemini.ImageModel},
		logger,
		gemini.MustNewMetrics(registry),
	)

	// Initialize use cases
	flowUseCase := flow.NewFlowUseCase(sessionRepo, gateway)
	sessionUseCase := session.NewSessionUseCase(sessionRepo, flowUseCase, cfg.Session.Secret, cfg.Session.TTL)
	onboardingUseCase := onboarding.NewOnboardingUseCase(sessionRepo, flowUseCase, gateway, cfg.Onboarding.AvatarDelay, logger)
	tryOnUseCase := tryon.NewTryOnUseCase(sessionRepo, flowUseCase, gateway, logger)
	wardrobeUseCase := wardrobe.NewWardrobeUseCase(sessionRepo, flowUseCase, gateway)
	stylistUseCase := stylist.NewStylistUseCase(sessionRepo, flowUseCase, gateway, logger)

	// Initialize handlers
	sessionHandler := handler.NewSessionHandler(sessionUseCase, flowUseCase, cfg.Session.Cookie, cfg.Server.IsProduction())
	screenHandler := handler.NewScreenHandler(flowUseCase)
	onboardingHandler := handler.NewOnboardingHandler(onboardingUseCase, flowUseCase)
	tryOnHandler := handler.NewTryOnHandler(tryOnUseCase, flowUseCase)
	wardrobeHandler := handler.NewWardrobeHandler(wardrobeUseCase)
	stylistHandler := handler.NewStylistHandler(stylistUseCase, flowUseCase)

	// Initialize middleware
	sessionMiddleware := middleware.NewSessionMiddleware(sessionUseCase, cfg.Session.Cookie)

	router := http.NewRouter(
		sessionHandler,
		screenHandler,
		onboardingHandler,
		tryOnHandler,
		wardrobeHandler,
		stylistHandler,
		sessionMiddleware,
		logger,
		registry,
		cfg.Server.AllowedOrigins,
	)

	return router.Setup(), nil
}

// Close releases the AI client.
func (c *Container) Close() error {
	if c.Gemini != nil {
		if err := c.Gemini.Close(); err != nil {
			return fmt.Errorf("failed to close gemini client: %w", err)
		}
	}
	return nil
}
