package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SAP-F-2025/career-orientation-service/internal/cache"
	"github.com/SAP-F-2025/career-orientation-service/internal/events"
	"github.com/SAP-F-2025/career-orientation-service/internal/models"
	"github.com/SAP-F-2025/career-orientation-service/internal/recommendation"
	"github.com/SAP-F-2025/career-orientation-service/internal/repositories"
	"github.com/google/uuid"
)

// DefaultRecommendationTimeout bounds one generation when none is configured.
const DefaultRecommendationTimeout = 90 * time.Second

// RecommendationGenerator produces recommendations from an analysis.
type RecommendationGenerator interface {
	Generate(ctx context.Context, analysis recommendation.Analysis) (*recommendation.Recommendation, error)
	ModelID() string
}

type recommendationService struct {
	repo      repositories.Repository
	generator RecommendationGenerator
	results   resultsCache
	publisher events.EventPublisher
	timeout   time.Duration
	logger    *slog.Logger
	log       *ServiceLogger
	now       func() time.Time
	newClaim  func() string

	wg sync.WaitGroup
}

func NewRecommendationService(
	repo repositories.Repository,
	generator RecommendationGenerator,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	timeout time.Duration,
	logger *slog.Logger,
) RecommendationService {
	if timeout <= 0 {
		timeout = DefaultRecommendationTimeout
	}
	return &recommendationService{
		repo:      repo,
		generator: generator,
		results:   resultsCache{cache: cacheService, logger: logger},
		publisher: publisher,
		timeout:   timeout,
		logger:    logger,
		log:       NewServiceLogger(logger, LogConfig{Service: "career", Component: "recommendations"}),
		now:       time.Now,
		newClaim:  uuid.NewString,
	}
}

func (s *recommendationService) Generate(ctx context.Context, attemptID uint) error {
	op := s.log.WithOperation(ctx, "generate_recommendation", 0)
	err := s.generate(ctx, attemptID)
	op.LogResult(attemptID, "attempt", err)
	return err
}

func (s *recommendationService) generate(ctx context.Context, attemptID uint) error {
	attempt, err := s.repo.Attempt().GetByID(ctx, attemptID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrAttemptNotFound
		}
		return fmt.Errorf("failed to get attempt: %w", err)
	}
	if !attempt.IsCompleted() {
		return ErrAttemptNotCompleted
	}

	claim := s.newClaim()
	claimed, err := s.repo.Attempt().ClaimRecommendation(ctx, attemptID, claim)
	if err != nil {
		return fmt.Errorf("failed to claim recommendation: %w", err)
	}
	if !claimed {
		return ErrRecommendationInProgress
	}
	s.results.evict(ctx, attempt.UserID, attempt.TestID)

	rec, genErr := s.run(ctx, attempt)

	result := repositories.RecommendationResult{Status: models.RecommendationReady}
	if genErr == nil {
		result.Content, genErr = json.Marshal(rec)
	}
	if genErr != nil {
		reason := genErr.Error()
		result = repositories.RecommendationResult{Status: models.RecommendationFailed, Error: &reason}
	}

	// The request context may already be done after a timeout; the terminal
	// state must still be written.
	finishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	stored, err := s.repo.Attempt().FinishRecommendation(finishCtx, attemptID, claim, result, s.now())
	if err != nil {
		return fmt.Errorf("failed to store recommendation: %w", err)
	}
	if !stored {
		s.logger.Info("Recommendation discarded, attempt was reset or rescored",
			"attempt_id", attemptID, "status", result.Status)
		return ErrRecommendationSuperseded
	}
	s.results.evict(finishCtx, attempt.UserID, attempt.TestID)

	if genErr != nil {
		publish(finishCtx, s.publisher, s.logger, events.NewRecommendationFailedEvent(
			attemptID, attempt.UserID, attempt.TestID, genErr.Error()))
		return fmt.Errorf("recommendation generation failed: %w", genErr)
	}

	publish(finishCtx, s.publisher, s.logger, events.NewRecommendationReadyEvent(
		attemptID, attempt.UserID, attempt.TestID, rec.Model))
	s.logger.Info("Recommendation ready",
		"attempt_id", attemptID,
		"model", rec.Model,
		"professions", len(rec.Professions))
	return nil
}

func (s *recommendationService) run(ctx context.Context, attempt *models.TestAttempt) (*recommendation.Recommendation, error) {
	if s.generator == nil {
		return nil, errors.New("no recommendation provider configured")
	}

	record, err := attempt.DecodeScores()
	if err != nil {
		return nil, fmt.Errorf("failed to decode scores: %w", err)
	}
	analysis := recommendation.BuildAnalysis(record)

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.generator.Generate(genCtx, analysis)
}

func (s *recommendationService) GenerateAsync(attemptID uint) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		err := s.Generate(context.Background(), attemptID)
		if err != nil && !errors.Is(err, ErrRecommendationInProgress) && !errors.Is(err, ErrRecommendationSuperseded) {
			s.logger.Warn("Background recommendation failed", "attempt_id", attemptID, "error", err)
		}
	}()
}

func (s *recommendationService) Wait() {
	s.wg.Wait()
}
