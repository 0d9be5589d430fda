package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SAP-F-2025/career-orientation-service/internal/cache"
	"github.com/SAP-F-2025/career-orientation-service/internal/events"
	"github.com/SAP-F-2025/career-orientation-service/internal/models"
	"github.com/SAP-F-2025/career-orientation-service/internal/repositories"
	"golang.org/x/sync/errgroup"
)

// rescoreWorkers bounds concurrent attempts during a whole-test rescore.
const rescoreWorkers = 4

type adminService struct {
	repo            repositories.Repository
	results         resultsCache
	publisher       events.EventPublisher
	recommendations RecommendationService
	logger          *slog.Logger
	log             *ServiceLogger
	now             func() time.Time
}

func NewAdminService(
	repo repositories.Repository,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	recommendations RecommendationService,
	logger *slog.Logger,
) AdminService {
	return &adminService{
		repo:            repo,
		results:         resultsCache{cache: cacheService, logger: logger},
		publisher:       publisher,
		recommendations: recommendations,
		logger:          logger,
		log:             NewServiceLogger(logger, LogConfig{Service: "career", Component: "admin"}),
		now:             time.Now,
	}
}

func (s *adminService) GetUserTest(ctx context.Context, userID, testID uint) (*AttemptDetails, error) {
	attempt, err := s.getAttempt(ctx, userID, testID)
	if err != nil {
		return nil, err
	}

	answers, err := attempt.DecodeAnswers()
	if err != nil {
		return nil, fmt.Errorf("failed to decode answers: %w", err)
	}
	details := &AttemptDetails{
		Progress: progressOf(attempt, answers),
		Answers:  answers,
	}
	if attempt.IsCompleted() {
		if details.Results, err = buildResults(attempt); err != nil {
			return nil, err
		}
	}
	return details, nil
}

func (s *adminService) ListTestAttempts(ctx context.Context, testID uint, filters repositories.AttemptFilters) (*AttemptListResponse, error) {
	attempts, total, err := s.repo.Attempt().ListByTest(ctx, testID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}

	summaries := make([]AttemptSummary, len(attempts))
	for i, a := range attempts {
		summaries[i] = AttemptSummary{
			AttemptID:            a.ID,
			UserID:               a.UserID,
			Status:               a.Status,
			DominantCode:         a.DominantCode,
			RecommendationStatus: a.RecommendationStatus,
			CompletedAt:          a.CompletedAt,
			UpdatedAt:            a.UpdatedAt,
		}
	}

	return &AttemptListResponse{
		Attempts: summaries,
		Pagination: models.Pagination{
			Total:  total,
			Limit:  repositories.NormalizeLimit(filters.Limit),
			Offset: filters.Offset,
		},
	}, nil
}

// ResetUserTest deletes the attempt so the user can take the test again.
func (s *adminService) ResetUserTest(ctx context.Context, userID, testID, adminID uint) error {
	op := s.log.WithOperation(ctx, "reset_results", adminID)

	deleted, err := s.repo.Attempt().DeleteByUserAndTest(ctx, userID, testID)
	if err != nil {
		err = fmt.Errorf("failed to reset attempt: %w", err)
		op.LogResult(testID, "test", err)
		return err
	}
	if !deleted {
		op.LogResult(testID, "test", ErrAttemptNotFound)
		return ErrAttemptNotFound
	}

	s.results.evict(ctx, userID, testID)
	publish(ctx, s.publisher, s.logger, events.NewResultsResetEvent(userID, testID, adminID, s.now()))

	op.LogAudit(AuditEventDelete, testID, "test_results", map[string]interface{}{"user_id": userID}, nil)
	return nil
}

// Rescore recomputes a completed attempt from its stored answers and
// schedules a fresh recommendation.
func (s *adminService) Rescore(ctx context.Context, userID, testID, adminID uint) (*ResultsResponse, error) {
	op := s.log.WithOperation(ctx, "rescore", adminID)

	attempt, err := s.getAttempt(ctx, userID, testID)
	if err != nil {
		op.LogResult(testID, "test", err)
		return nil, err
	}
	previousCode := attempt.DominantCode

	if err := s.rescoreAttempt(ctx, attempt); err != nil {
		op.LogResult(attempt.ID, "attempt", err)
		return nil, err
	}
	if s.recommendations != nil {
		s.recommendations.GenerateAsync(attempt.ID)
	}
	op.LogAudit(AuditEventUpdate, attempt.ID, "attempt_scores", previousCode, attempt.DominantCode)

	return buildResults(attempt)
}

// RescoreTest recomputes every completed attempt of a test. Rescoring clears
// the stored recommendation, so each rescored attempt gets a new one.
func (s *adminService) RescoreTest(ctx context.Context, testID uint) (*RescoreSummary, error) {
	ids, err := s.repo.Attempt().ListCompletedIDs(ctx, testID)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed attempts: %w", err)
	}

	summary := &RescoreSummary{TestID: testID, Total: len(ids)}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rescoreWorkers)
	for _, id := range ids {
		g.Go(func() error {
			err := s.rescoreByID(gctx, id)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.logger.Warn("Failed to rescore attempt", "attempt_id", id, "error", err)
				summary.Failed = append(summary.Failed, id)
				return nil
			}
			summary.Rescored++
			if s.recommendations != nil {
				s.recommendations.GenerateAsync(id)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return summary, err
	}

	s.results.evictTest(ctx, testID)
	s.logger.Info("Test rescored",
		"test_id", testID,
		"total", summary.Total,
		"rescored", summary.Rescored,
		"failed", len(summary.Failed))
	return summary, nil
}

func (s *adminService) rescoreByID(ctx context.Context, id uint) error {
	attempt, err := s.repo.Attempt().GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.rescoreAttempt(ctx, attempt)
}

// rescoreAttempt replaces the stored record and updates attempt in place.
func (s *adminService) rescoreAttempt(ctx context.Context, attempt *models.TestAttempt) error {
	if !attempt.IsCompleted() {
		return ErrAttemptNotCompleted
	}

	answers, err := attempt.DecodeAnswers()
	if err != nil {
		return fmt.Errorf("failed to decode answers: %w", err)
	}
	scored, err := scoreAnswers(answers)
	if err != nil {
		return err
	}

	if err := s.repo.Attempt().ReplaceScores(ctx, attempt.ID, scored.blob, scored.dominantCode); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrAttemptNotFound
		}
		return fmt.Errorf("failed to replace scores: %w", err)
	}
	s.results.evict(ctx, attempt.UserID, attempt.TestID)

	attempt.Scores = scored.blob
	attempt.DominantCode = scored.dominantCode
	attempt.RecommendationStatus = models.RecommendationNone
	attempt.Recommendation = nil
	attempt.RecommendationError = nil
	attempt.RecommendedAt = nil
	return nil
}

func (s *adminService) getAttempt(ctx context.Context, userID, testID uint) (*models.TestAttempt, error) {
	attempt, err := s.repo.Attempt().GetByUserAndTest(ctx, userID, testID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}
	return attempt, nil
}
