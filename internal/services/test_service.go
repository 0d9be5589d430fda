package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/career-orientation-service/internal/cache"
	"github.com/SAP-F-2025/career-orientation-service/internal/events"
	"github.com/SAP-F-2025/career-orientation-service/internal/models"
	"github.com/SAP-F-2025/career-orientation-service/internal/repositories"
	"github.com/SAP-F-2025/career-orientation-service/internal/scoring"
	"github.com/SAP-F-2025/career-orientation-service/internal/validator"
)

type testService struct {
	repo            repositories.Repository
	results         resultsCache
	publisher       events.EventPublisher
	recommendations RecommendationService
	logger          *slog.Logger
	log             *ServiceLogger
	validator       *validator.Validator
	now             func() time.Time
}

func NewTestService(
	repo repositories.Repository,
	cacheService cache.CacheService,
	cacheTTL time.Duration,
	publisher events.EventPublisher,
	recommendations RecommendationService,
	logger *slog.Logger,
	validator *validator.Validator,
) TestService {
	return &testService{
		repo:            repo,
		results:         resultsCache{cache: cacheService, ttl: cacheTTL, logger: logger},
		publisher:       publisher,
		recommendations: recommendations,
		logger:          logger,
		log:             NewServiceLogger(logger, LogConfig{Service: "career", Component: "tests"}),
		validator:       validator,
		now:             time.Now,
	}
}

// ===== TEST TAKING =====

func (s *testService) SaveAnswers(ctx context.Context, userID, testID uint, module scoring.Module, req *SaveAnswersRequest) (*ProgressResponse, error) {
	op := s.log.WithOperation(ctx, "save_answers", userID)

	if !module.Valid() {
		op.LogResult(testID, "test", ErrUnknownModule)
		return nil, ErrUnknownModule
	}
	if err := s.validator.Validate(req); err != nil {
		op.LogResult(testID, "test", err)
		return nil, err
	}
	if err := s.requireAccess(ctx, userID, true); err != nil {
		op.LogResult(testID, "test", err)
		return nil, err
	}

	var answers scoring.AttemptAnswers
	attempt, err := s.repo.Attempt().UpdateAnswers(ctx, userID, testID, func(a *models.TestAttempt) error {
		if a.IsCompleted() {
			return ErrAttemptCompleted
		}
		stored, err := a.DecodeAnswers()
		if err != nil {
			return fmt.Errorf("failed to decode answers: %w", err)
		}
		stored.Merge(module, req.Answers)
		answers = stored
		return a.EncodeAnswers(stored)
	})
	if err != nil {
		if !errors.Is(err, ErrAttemptCompleted) {
			err = fmt.Errorf("failed to save answers: %w", err)
		}
		op.LogResult(testID, "test", err)
		return nil, err
	}

	s.logger.Debug("Answers saved",
		"attempt_id", attempt.ID,
		"module", int(module),
		"answers", len(req.Answers))
	op.LogResult(attempt.ID, "attempt", nil)
	return progressOf(attempt, answers), nil
}

func (s *testService) GetProgress(ctx context.Context, userID, testID uint) (*ProgressResponse, error) {
	attempt, err := s.getAttempt(ctx, userID, testID)
	if err != nil {
		return nil, err
	}
	return buildProgress(attempt)
}

// Complete scores the attempt, stores the record and starts recommendation
// generation in the background.
func (s *testService) Complete(ctx context.Context, userID, testID uint) (*ResultsResponse, error) {
	op := s.log.WithOperation(ctx, "complete_test", userID)

	results, err := s.complete(ctx, userID, testID)
	if err != nil {
		op.LogResult(testID, "test", err)
		return nil, err
	}
	op.LogResult(results.AttemptID, "attempt", nil)

	if s.recommendations != nil {
		s.recommendations.GenerateAsync(results.AttemptID)
	}
	return results, nil
}

func (s *testService) complete(ctx context.Context, userID, testID uint) (*ResultsResponse, error) {
	if err := s.requireAccess(ctx, userID, true); err != nil {
		return nil, err
	}

	attempt, err := s.getAttempt(ctx, userID, testID)
	if err != nil {
		return nil, err
	}
	if attempt.IsCompleted() {
		return nil, ErrAttemptCompleted
	}

	answers, err := attempt.DecodeAnswers()
	if err != nil {
		return nil, fmt.Errorf("failed to decode answers: %w", err)
	}
	if len(answers.Answered()) == 0 {
		return nil, ErrNoAnswers
	}

	scored, err := scoreAnswers(answers)
	if err != nil {
		return nil, err
	}

	completedAt := s.now()
	ok, err := s.repo.Attempt().Complete(ctx, attempt.ID, scored.blob, scored.dominantCode, completedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to complete attempt: %w", err)
	}
	if !ok {
		return nil, ErrAttemptCompleted
	}

	s.results.evict(ctx, userID, testID)
	publish(ctx, s.publisher, s.logger, events.NewTestCompletedEvent(
		attempt.ID, userID, testID, scored.dominantCode, scored.modules, completedAt))

	s.logger.Info("Test completed",
		"attempt_id", attempt.ID,
		"user_id", userID,
		"test_id", testID,
		"dominant_code", scored.dominantCode,
		"modules", scored.modules)

	return &ResultsResponse{
		AttemptID:      attempt.ID,
		UserID:         userID,
		TestID:         testID,
		CompletedAt:    &completedAt,
		DominantCode:   scored.dominantCode,
		Scores:         scored.record,
		Recommendation: RecommendationView{Status: models.RecommendationNone},
	}, nil
}

func (s *testService) GetResults(ctx context.Context, userID, testID uint) (*ResultsResponse, error) {
	if err := s.requireAccess(ctx, userID, false); err != nil {
		return nil, err
	}

	if cached, ok := s.results.get(ctx, userID, testID); ok {
		return cached, nil
	}

	attempt, err := s.getAttempt(ctx, userID, testID)
	if err != nil {
		return nil, err
	}
	results, err := buildResults(attempt)
	if err != nil {
		return nil, err
	}

	s.results.set(ctx, results, s.now())
	return results, nil
}

// ===== HELPERS =====

// requireAccess checks the user's access state. Taking the test needs paid
// access; reading results is only refused once access was revoked.
func (s *testService) requireAccess(ctx context.Context, userID uint, taking bool) error {
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.AccessState == models.AccessRevoked {
		s.log.WithOperation(ctx, "test_access", userID).LogSecurity(SecurityEventRevokedAccessUsed, SecuritySeverityLow,
			"revoked user tried to use the test", nil)
		return ErrAccessDenied
	}
	if taking && !user.CanTakeTests() {
		return ErrAccessDenied
	}
	return nil
}

func (s *testService) getAttempt(ctx context.Context, userID, testID uint) (*models.TestAttempt, error) {
	attempt, err := s.repo.Attempt().GetByUserAndTest(ctx, userID, testID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}
	return attempt, nil
}
