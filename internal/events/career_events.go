package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	eventSource  = "career-orientation-service"
	eventVersion = "1.0"
)

// EventType represents the kinds of events the service emits
type EventType string

const (
	// Test events
	EventTestCompleted EventType = "test.completed"
	EventResultsReset  EventType = "results.reset"

	// Recommendation events
	EventRecommendationReady  EventType = "recommendation.ready"
	EventRecommendationFailed EventType = "recommendation.failed"
)

// CareerEvent is the envelope shared by every event
type CareerEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Test event payloads

type TestCompletedEvent struct {
	AttemptID    uint      `json:"attempt_id"`
	UserID       uint      `json:"user_id"`
	TestID       uint      `json:"test_id"`
	DominantCode string    `json:"dominant_code"`
	Modules      []int     `json:"modules"` // modules that had answers
	CompletedAt  time.Time `json:"completed_at"`
}

type ResultsResetEvent struct {
	UserID  uint      `json:"user_id"`
	TestID  uint      `json:"test_id"`
	AdminID uint      `json:"admin_id"`
	ResetAt time.Time `json:"reset_at"`
}

// Recommendation event payloads

type RecommendationReadyEvent struct {
	AttemptID uint   `json:"attempt_id"`
	UserID    uint   `json:"user_id"`
	TestID    uint   `json:"test_id"`
	Model     string `json:"model"`
}

type RecommendationFailedEvent struct {
	AttemptID uint   `json:"attempt_id"`
	UserID    uint   `json:"user_id"`
	TestID    uint   `json:"test_id"`
	Reason    string `json:"reason"`
}

// Event factory functions

func newEvent(eventType EventType, data interface{}) *CareerEvent {
	return &CareerEvent{
		ID:        generateEventID(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

func NewTestCompletedEvent(attemptID, userID, testID uint, dominantCode string, modules []int, completedAt time.Time) *CareerEvent {
	return newEvent(EventTestCompleted, TestCompletedEvent{
		AttemptID:    attemptID,
		UserID:       userID,
		TestID:       testID,
		DominantCode: dominantCode,
		Modules:      modules,
		CompletedAt:  completedAt,
	})
}

func NewResultsResetEvent(userID, testID, adminID uint, resetAt time.Time) *CareerEvent {
	return newEvent(EventResultsReset, ResultsResetEvent{
		UserID:  userID,
		TestID:  testID,
		AdminID: adminID,
		ResetAt: resetAt,
	})
}

func NewRecommendationReadyEvent(attemptID, userID, testID uint, model string) *CareerEvent {
	return newEvent(EventRecommendationReady, RecommendationReadyEvent{
		AttemptID: attemptID,
		UserID:    userID,
		TestID:    testID,
		Model:     model,
	})
}

func NewRecommendationFailedEvent(attemptID, userID, testID uint, reason string) *CareerEvent {
	return newEvent(EventRecommendationFailed, RecommendationFailedEvent{
		AttemptID: attemptID,
		UserID:    userID,
		TestID:    testID,
		Reason:    reason,
	})
}

func generateEventID() string {
	return uuid.NewString()
}
