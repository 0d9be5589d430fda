package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/career-orientation-service/internal/auth"
	"github.com/SAP-F-2025/career-orientation-service/internal/cache"
	"github.com/SAP-F-2025/career-orientation-service/internal/config"
	"github.com/SAP-F-2025/career-orientation-service/internal/events"
	"github.com/SAP-F-2025/career-orientation-service/internal/llm"
	"github.com/SAP-F-2025/career-orientation-service/internal/recommendation"
	"github.com/SAP-F-2025/career-orientation-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/career-orientation-service/internal/services"
	"github.com/SAP-F-2025/career-orientation-service/internal/utils"
	"github.com/SAP-F-2025/career-orientation-service/internal/validator"
	"github.com/SAP-F-2025/career-orientation-service/pkg"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// app holds the process-wide dependencies shared by the commands.
type app struct {
	cfg    *config.Config
	logger utils.Logger
	slog   *slog.Logger
	db     *gorm.DB

	redis     *redis.Client
	publisher events.EventPublisher
	auth      *auth.AuthService
	services  services.ServiceManager
}

// newApp loads configuration and opens the database.
func newApp() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger := utils.NewLogger(cfg.Environment)
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:    cfg,
		logger: logger,
		slog:   utils.ToSlogLogger(logger),
		db:     db,
	}, nil
}

// initServices connects redis, the event publisher and the LLM provider and
// builds the service layer.
func (a *app) initServices(ctx context.Context) error {
	client, err := pkg.NewRedisClient(ctx, a.cfg)
	if err != nil {
		a.logger.Warn("Redis unavailable, results cache disabled", "error", err)
	} else {
		a.redis = client
	}

	publisher, err := a.cfg.Events.CreateEventPublisher(a.slog)
	if err != nil {
		return fmt.Errorf("creating event publisher: %w", err)
	}
	a.publisher = publisher

	provider, err := llm.NewProvider(ctx, a.cfg.LLM, a.slog)
	if err != nil {
		return fmt.Errorf("creating LLM provider: %w", err)
	}
	a.logger.Info("Recommendation provider ready", "provider", a.cfg.LLM.Provider)

	a.auth = auth.NewAuthService(a.cfg.JWTSecret)

	deps := services.Dependencies{
		Repo:                  postgres.NewRepository(a.db),
		CacheTTL:              a.cfg.ScoreCacheTTL,
		Publisher:             publisher,
		Generator:             recommendation.NewGenerator(provider, recommendation.DefaultGeneratorConfig()),
		Tokens:                a.auth,
		RecommendationTimeout: a.cfg.LLM.Timeout,
		Logger:                a.slog,
		Validator:             validator.New(),
	}
	if a.redis != nil {
		deps.Cache = cache.NewRedisCache(a.redis, a.slog)
	}
	a.services = services.NewServiceManager(deps)
	return nil
}

// close waits for background recommendations and releases connections.
func (a *app) close() error {
	var errs []error
	if a.services != nil {
		a.services.Recommendation().Wait()
	}
	if a.publisher != nil {
		errs = append(errs, a.publisher.Close())
	}
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.db != nil {
		errs = append(errs, pkg.CloseDatabase(a.db))
	}
	return errors.Join(errs...)
}
