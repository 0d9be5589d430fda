package postgres

import (
	"context"
	"time"

	"github.com/SAP-F-2025/career-orientation-service/internal/models"
	"github.com/SAP-F-2025/career-orientation-service/internal/repositories"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttemptPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewAttemptPostgreSQL(db *gorm.DB) repositories.AttemptRepository {
	return &AttemptPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

func (a *AttemptPostgreSQL) GetByID(ctx context.Context, id uint) (*models.TestAttempt, error) {
	var attempt models.TestAttempt
	if err := a.db.WithContext(ctx).First(&attempt, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &attempt, nil
}

func (a *AttemptPostgreSQL) GetByUserAndTest(ctx context.Context, userID, testID uint) (*models.TestAttempt, error) {
	var attempt models.TestAttempt
	if err := a.db.WithContext(ctx).
		Where("user_id = ? AND test_id = ?", userID, testID).
		First(&attempt).Error; err != nil {
		return nil, translateError(err)
	}
	return &attempt, nil
}

func (a *AttemptPostgreSQL) UpdateAnswers(ctx context.Context, userID, testID uint, mutate func(*models.TestAttempt) error) (*models.TestAttempt, error) {
	var attempt models.TestAttempt
	err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seed := models.TestAttempt{
			UserID:               userID,
			TestID:               testID,
			Status:               models.AttemptInProgress,
			Answers:              datatypes.JSON("{}"),
			RecommendationStatus: models.RecommendationNone,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "test_id"}},
			DoNothing: true,
		}).Create(&seed).Error; err != nil {
			return err
		}

		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND test_id = ?", userID, testID).
			First(&attempt).Error; err != nil {
			return translateError(err)
		}

		if err := mutate(&attempt); err != nil {
			return err
		}

		return tx.Model(&attempt).Update("answers", attempt.Answers).Error
	})
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (a *AttemptPostgreSQL) Complete(ctx context.Context, id uint, scores []byte, dominantCode string, completedAt time.Time) (bool, error) {
	result := a.db.WithContext(ctx).
		Model(&models.TestAttempt{}).
		Where("id = ? AND status = ?", id, models.AttemptInProgress).
		Updates(map[string]interface{}{
			"status":        models.AttemptCompleted,
			"scores":        datatypes.JSON(scores),
			"dominant_code": dominantCode,
			"completed_at":  completedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (a *AttemptPostgreSQL) ReplaceScores(ctx context.Context, id uint, scores []byte, dominantCode string) error {
	result := a.db.WithContext(ctx).
		Model(&models.TestAttempt{}).
		Where("id = ? AND status = ?", id, models.AttemptCompleted).
		Updates(map[string]interface{}{
			"scores":                datatypes.JSON(scores),
			"dominant_code":         dominantCode,
			"recommendation_status": models.RecommendationNone,
			"recommendation":        nil,
			"recommendation_error":  nil,
			"recommended_at":        nil,
			"recommendation_claim":  nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (a *AttemptPostgreSQL) ClaimRecommendation(ctx context.Context, id uint, claim string) (bool, error) {
	result := a.db.WithContext(ctx).
		Model(&models.TestAttempt{}).
		Where("id = ? AND status = ? AND recommendation_status = ?",
			id, models.AttemptCompleted, models.RecommendationNone).
		Updates(map[string]interface{}{
			"recommendation_status": models.RecommendationPending,
			"recommendation_claim":  claim,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (a *AttemptPostgreSQL) FinishRecommendation(ctx context.Context, id uint, claim string, res repositories.RecommendationResult, at time.Time) (bool, error) {
	updates := map[string]interface{}{
		"recommendation_status": res.Status,
		"recommendation_error":  res.Error,
		"recommended_at":        at,
		"recommendation_claim":  nil,
	}
	if res.Content != nil {
		updates["recommendation"] = datatypes.JSON(res.Content)
	}

	// a reset, a rescore or a newer claim leaves no row matching this claim
	result := a.db.WithContext(ctx).
		Model(&models.TestAttempt{}).
		Where("id = ? AND recommendation_status = ? AND recommendation_claim = ?",
			id, models.RecommendationPending, claim).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (a *AttemptPostgreSQL) DeleteByUserAndTest(ctx context.Context, userID, testID uint) (bool, error) {
	result := a.db.WithContext(ctx).
		Where("user_id = ? AND test_id = ?", userID, testID).
		Delete(&models.TestAttempt{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (a *AttemptPostgreSQL) ListByTest(ctx context.Context, testID uint, filters repositories.AttemptFilters) ([]*models.TestAttempt, int64, error) {
	var attempts []*models.TestAttempt
	var total int64

	query := a.db.WithContext(ctx).Model(&models.TestAttempt{}).Where("test_id = ?", testID)
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = a.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset,
		"created_at", "completed_at")

	if err := query.Preload("User").Find(&attempts).Error; err != nil {
		return nil, 0, err
	}
	return attempts, total, nil
}

func (a *AttemptPostgreSQL) ListCompletedIDs(ctx context.Context, testID uint) ([]uint, error) {
	var ids []uint
	if err := a.db.WithContext(ctx).
		Model(&models.TestAttempt{}).
		Where("test_id = ? AND status = ?", testID, models.AttemptCompleted).
		Order("id ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
