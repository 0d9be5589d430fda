package models

import (
	"encoding/json"
	"time"

	"github.com/SAP-F-2025/career-orientation-service/internal/scoring"
	"gorm.io/datatypes"
)

type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "in_progress"
	AttemptCompleted  AttemptStatus = "completed"
)

type RecommendationStatus string

const (
	RecommendationNone    RecommendationStatus = "none"
	RecommendationPending RecommendationStatus = "pending"
	RecommendationReady   RecommendationStatus = "ready"
	RecommendationFailed  RecommendationStatus = "failed"
)

// TestAttempt is one user's pass through a career test. Answers and the
// aggregated score record are stored as JSON blobs.
type TestAttempt struct {
	ID     uint          `json:"id" gorm:"primaryKey"`
	UserID uint          `json:"user_id" gorm:"not null;uniqueIndex:idx_attempt_user_test"`
	TestID uint          `json:"test_id" gorm:"not null;uniqueIndex:idx_attempt_user_test;index"`
	Status AttemptStatus `json:"status" gorm:"not null;default:in_progress;size:20;index"`

	Answers      datatypes.JSON `json:"answers" gorm:"type:jsonb"`
	Scores       datatypes.JSON `json:"scores" gorm:"type:jsonb"`
	DominantCode string         `json:"dominant_code" gorm:"size:3"`
	CompletedAt  *time.Time     `json:"completed_at"`

	// Recommendation
	RecommendationStatus RecommendationStatus `json:"recommendation_status" gorm:"not null;default:none;size:20;index"`
	Recommendation       datatypes.JSON       `json:"recommendation" gorm:"type:jsonb"`
	RecommendationError  *string              `json:"recommendation_error" gorm:"type:text"`
	RecommendedAt        *time.Time           `json:"recommended_at"`
	// RecommendationClaim identifies the generation run holding "pending".
	RecommendationClaim *string `json:"-" gorm:"size:36"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (TestAttempt) TableName() string {
	return "test_attempts"
}

func (a *TestAttempt) IsCompleted() bool {
	return a.Status == AttemptCompleted
}

// DecodeAnswers returns the stored answers, empty when none were saved.
func (a *TestAttempt) DecodeAnswers() (scoring.AttemptAnswers, error) {
	answers := scoring.AttemptAnswers{}
	if len(a.Answers) == 0 {
		return answers, nil
	}
	if err := json.Unmarshal(a.Answers, &answers); err != nil {
		return nil, err
	}
	return answers, nil
}

// EncodeAnswers replaces the stored answers.
func (a *TestAttempt) EncodeAnswers(answers scoring.AttemptAnswers) error {
	data, err := json.Marshal(answers)
	if err != nil {
		return err
	}
	a.Answers = datatypes.JSON(data)
	return nil
}

func (a *TestAttempt) DecodeScores() (scoring.Record, error) {
	return scoring.DecodeRecord(a.Scores)
}
