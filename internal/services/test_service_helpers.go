package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/career-orientation-service/internal/cache"
	"github.com/SAP-F-2025/career-orientation-service/internal/events"
	"github.com/SAP-F-2025/career-orientation-service/internal/models"
	"github.com/SAP-F-2025/career-orientation-service/internal/recommendation"
	"github.com/SAP-F-2025/career-orientation-service/internal/scoring"
)

// DominantCodeLength is the number of RIASEC letters kept as the attempt code.
const DominantCodeLength = 3

// scoredAttempt is the outcome of running every scorer on stored answers.
type scoredAttempt struct {
	record       scoring.Record
	dominantCode string
	blob         []byte
	modules      []int
}

func scoreAnswers(answers scoring.AttemptAnswers) (*scoredAttempt, error) {
	result, record, err := scoring.ScoreAll(answers)
	if err != nil {
		return nil, fmt.Errorf("failed to score answers: %w", err)
	}

	blob, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to encode score record: %w", err)
	}

	// No typology answers means no meaningful code.
	var code string
	if len(answers[scoring.ModuleTypology]) > 0 {
		code = scoring.DominantCode(result.Typology, DominantCodeLength)
	}

	answered := answers.Answered()
	modules := make([]int, len(answered))
	for i, m := range answered {
		modules[i] = int(m)
	}

	return &scoredAttempt{record: record, dominantCode: code, blob: blob, modules: modules}, nil
}

func buildProgress(attempt *models.TestAttempt) (*ProgressResponse, error) {
	answers, err := attempt.DecodeAnswers()
	if err != nil {
		return nil, fmt.Errorf("failed to decode answers: %w", err)
	}
	return progressOf(attempt, answers), nil
}

func progressOf(attempt *models.TestAttempt, answers scoring.AttemptAnswers) *ProgressResponse {
	progress := &ProgressResponse{
		AttemptID: attempt.ID,
		TestID:    attempt.TestID,
		Status:    attempt.Status,
		Modules:   make([]ModuleProgress, 0, len(scoring.Modules)),
	}
	for _, m := range scoring.Modules {
		n := len(answers[m])
		if n > 0 {
			progress.Answered++
		}
		progress.Modules = append(progress.Modules, ModuleProgress{
			Module:   int(m),
			Name:     m.String(),
			Answered: n,
		})
	}
	return progress
}

func buildResults(attempt *models.TestAttempt) (*ResultsResponse, error) {
	if !attempt.IsCompleted() {
		return nil, ErrAttemptNotCompleted
	}

	record, err := attempt.DecodeScores()
	if err != nil {
		return nil, fmt.Errorf("failed to decode scores: %w", err)
	}

	view := RecommendationView{
		Status:      attempt.RecommendationStatus,
		Error:       attempt.RecommendationError,
		GeneratedAt: attempt.RecommendedAt,
	}
	if attempt.RecommendationStatus == models.RecommendationReady && len(attempt.Recommendation) > 0 {
		var rec recommendation.Recommendation
		if err := json.Unmarshal(attempt.Recommendation, &rec); err != nil {
			return nil, fmt.Errorf("failed to decode recommendation: %w", err)
		}
		view.Content = &rec
	}

	return &ResultsResponse{
		AttemptID:      attempt.ID,
		UserID:         attempt.UserID,
		TestID:         attempt.TestID,
		CompletedAt:    attempt.CompletedAt,
		DominantCode:   attempt.DominantCode,
		Scores:         record,
		Recommendation: view,
	}, nil
}

// resultsCache reads and evicts cached results views. A nil cache disables it.
type resultsCache struct {
	cache  cache.CacheService
	ttl    time.Duration
	logger *slog.Logger
}

func (c resultsCache) get(ctx context.Context, userID, testID uint) (*ResultsResponse, bool) {
	if c.cache == nil {
		return nil, false
	}
	var results ResultsResponse
	if err := c.cache.Get(ctx, cache.ResultsKey(userID, testID), &results); err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			c.logger.Warn("Failed to read cached results", "user_id", userID, "test_id", testID, "error", err)
		}
		return nil, false
	}
	return &results, true
}

// recommendationSettle is how long a completed attempt may still report no
// recommendation before generation claims it.
const recommendationSettle = 2 * time.Minute

// cacheable reports whether a view is stable. Pending views and freshly
// completed views without a claimed recommendation are about to change.
func cacheable(results *ResultsResponse, now time.Time) bool {
	switch results.Recommendation.Status {
	case models.RecommendationPending:
		return false
	case models.RecommendationNone:
		return results.CompletedAt == nil || now.Sub(*results.CompletedAt) >= recommendationSettle
	}
	return true
}

func (c resultsCache) set(ctx context.Context, results *ResultsResponse, now time.Time) {
	if c.cache == nil || !cacheable(results, now) {
		return
	}
	if err := c.cache.Set(ctx, cache.ResultsKey(results.UserID, results.TestID), results, c.ttl); err != nil {
		c.logger.Warn("Failed to cache results", "user_id", results.UserID, "test_id", results.TestID, "error", err)
	}
}

func (c resultsCache) evict(ctx context.Context, userID, testID uint) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Delete(ctx, cache.ResultsKey(userID, testID)); err != nil {
		c.logger.Warn("Failed to evict cached results", "user_id", userID, "test_id", testID, "error", err)
	}
}

func (c resultsCache) evictTest(ctx context.Context, testID uint) {
	if c.cache == nil {
		return
	}
	if err := c.cache.DeletePattern(ctx, cache.TestResultsPattern(testID)); err != nil {
		c.logger.Warn("Failed to evict cached test results", "test_id", testID, "error", err)
	}
}

// publish sends an event. Delivery failures are logged and never fail the
// operation that produced the event.
func publish(ctx context.Context, publisher events.EventPublisher, logger *slog.Logger, event *events.CareerEvent) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Error("Failed to publish event", "event_type", event.Type, "event_id", event.ID, "error", err)
	}
}
