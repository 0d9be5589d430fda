package repositories

import (
	"context"
	"time"

	"github.com/SAP-F-2025/career-orientation-service/internal/models"
)

// AttemptRepository interface for test attempt operations
type AttemptRepository interface {
	GetByID(ctx context.Context, id uint) (*models.TestAttempt, error)
	GetByUserAndTest(ctx context.Context, userID, testID uint) (*models.TestAttempt, error)

	// UpdateAnswers locks the user's attempt, creating it in progress when
	// missing, and saves whatever mutate leaves in Answers. An error from
	// mutate aborts the update and is returned unchanged.
	UpdateAnswers(ctx context.Context, userID, testID uint, mutate func(*models.TestAttempt) error) (*models.TestAttempt, error)

	// Complete stores the score record of an in-progress attempt. It returns
	// false when the attempt was already completed.
	Complete(ctx context.Context, id uint, scores []byte, dominantCode string, completedAt time.Time) (bool, error)
	// ReplaceScores overwrites the record of a completed attempt and clears
	// its recommendation.
	ReplaceScores(ctx context.Context, id uint, scores []byte, dominantCode string) error

	// ClaimRecommendation moves a completed attempt from "none" to "pending"
	// and records the claim token. It returns false when another caller
	// already claimed it.
	ClaimRecommendation(ctx context.Context, id uint, claim string) (bool, error)
	// FinishRecommendation writes the terminal state only while claim still
	// holds the attempt. It returns false when the claim was lost to a
	// reset, a rescore or a newer claim.
	FinishRecommendation(ctx context.Context, id uint, claim string, result RecommendationResult, at time.Time) (bool, error)

	// DeleteByUserAndTest removes the attempt with its answers and scores.
	DeleteByUserAndTest(ctx context.Context, userID, testID uint) (bool, error)

	ListByTest(ctx context.Context, testID uint, filters AttemptFilters) ([]*models.TestAttempt, int64, error)
	ListCompletedIDs(ctx context.Context, testID uint) ([]uint, error)
}
