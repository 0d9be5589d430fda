package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/SAP-F-2025/career-orientation-service/internal/events"
	"github.com/SAP-F-2025/career-orientation-service/internal/models"
	"github.com/SAP-F-2025/career-orientation-service/internal/recommendation"
	"github.com/SAP-F-2025/career-orientation-service/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testClaim = "claim-1"

type recommendationFixture struct {
	repo      *MockRepository
	cache     *MockCache
	generator *MockGenerator
	publisher *events.MockEventPublisher
	service   *recommendationService
}

func newRecommendationFixture(withGenerator bool) *recommendationFixture {
	f := &recommendationFixture{
		repo:      NewMockRepository(),
		cache:     &MockCache{},
		generator: &MockGenerator{},
		publisher: events.NewMockEventPublisher(testLogger()),
	}
	var generator RecommendationGenerator
	if withGenerator {
		generator = f.generator
	}
	f.service = NewRecommendationService(f.repo, generator, f.cache, f.publisher, time.Second, testLogger()).(*recommendationService)
	f.service.now = fixedClock
	f.service.newClaim = func() string { return testClaim }
	f.cache.On("Delete", mock.Anything, mock.Anything).Return(nil)
	return f
}

func (f *recommendationFixture) withClaimableAttempt(t *testing.T) {
	f.repo.attemptRepo.On("GetByID", mock.Anything, uint(11)).Return(completedAttempt(t, models.RecommendationNone), nil)
	f.repo.attemptRepo.On("ClaimRecommendation", mock.Anything, uint(11), testClaim).Return(true, nil)
}

func finishedWith(status models.RecommendationStatus, check func(repositories.RecommendationResult) bool) interface{} {
	return mock.MatchedBy(func(r repositories.RecommendationResult) bool {
		return r.Status == status && check(r)
	})
}

func TestRecommendationService_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a ready recommendation", func(t *testing.T) {
		f := newRecommendationFixture(true)
		f.withClaimableAttempt(t)
		f.generator.On("Generate", mock.Anything, mock.MatchedBy(func(a recommendation.Analysis) bool {
			return a.DominantCode == "RAI" && a.Available() == 1
		})).Return(&recommendation.Recommendation{
			Summary:     "Practical and creative",
			Professions: []recommendation.Profession{{Title: "Architect", Reason: "R and A"}},
			Model:       "mock",
		}, nil)
		f.repo.attemptRepo.On("FinishRecommendation", mock.Anything, uint(11), testClaim,
			finishedWith(models.RecommendationReady, func(r repositories.RecommendationResult) bool {
				var rec recommendation.Recommendation
				return r.Error == nil &&
					json.Unmarshal(r.Content, &rec) == nil &&
					rec.Professions[0].Title == "Architect"
			}), fixedClock()).Return(true, nil)

		require.NoError(t, f.service.Generate(ctx, 11))

		ready := f.publisher.EventsOfType(events.EventRecommendationReady)
		require.Len(t, ready, 1)
		assert.Equal(t, "mock", ready[0].Data.(events.RecommendationReadyEvent).Model)
		f.repo.attemptRepo.AssertExpectations(t)
		f.cache.AssertNumberOfCalls(t, "Delete", 2)
	})

	t.Run("already claimed", func(t *testing.T) {
		f := newRecommendationFixture(true)
		f.repo.attemptRepo.On("GetByID", mock.Anything, uint(11)).Return(completedAttempt(t, models.RecommendationPending), nil)
		f.repo.attemptRepo.On("ClaimRecommendation", mock.Anything, uint(11), testClaim).Return(false, nil)

		err := f.service.Generate(ctx, 11)
		assert.ErrorIs(t, err, ErrRecommendationInProgress)
		f.generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})

	t.Run("attempt not completed", func(t *testing.T) {
		f := newRecommendationFixture(true)
		f.repo.attemptRepo.On("GetByID", mock.Anything, uint(11)).Return(&models.TestAttempt{ID: 11, Status: models.AttemptInProgress}, nil)

		err := f.service.Generate(ctx, 11)
		assert.ErrorIs(t, err, ErrAttemptNotCompleted)
		f.repo.attemptRepo.AssertNotCalled(t, "ClaimRecommendation", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("provider failure is stored", func(t *testing.T) {
		f := newRecommendationFixture(true)
		f.withClaimableAttempt(t)
		f.generator.On("Generate", mock.Anything, mock.Anything).Return(nil, assert.AnError)
		f.repo.attemptRepo.On("FinishRecommendation", mock.Anything, uint(11), testClaim,
			finishedWith(models.RecommendationFailed, func(r repositories.RecommendationResult) bool {
				return r.Error != nil && *r.Error == assert.AnError.Error() && r.Content == nil
			}), fixedClock()).Return(true, nil)

		err := f.service.Generate(ctx, 11)
		assert.ErrorIs(t, err, assert.AnError)

		failed := f.publisher.EventsOfType(events.EventRecommendationFailed)
		require.Len(t, failed, 1)
		assert.Equal(t, uint(11), failed[0].Data.(events.RecommendationFailedEvent).AttemptID)
	})

	t.Run("generation is bounded by the timeout", func(t *testing.T) {
		f := newRecommendationFixture(true)
		f.service.timeout = 20 * time.Millisecond
		f.withClaimableAttempt(t)
		f.generator.On("Generate", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).Return(nil, context.DeadlineExceeded)
		f.repo.attemptRepo.On("FinishRecommendation", mock.Anything, uint(11), testClaim,
			finishedWith(models.RecommendationFailed, func(r repositories.RecommendationResult) bool { return true }),
			fixedClock()).Return(true, nil)

		err := f.service.Generate(ctx, 11)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		f.repo.attemptRepo.AssertExpectations(t)
	})

	t.Run("lost claim is neither evicted nor announced", func(t *testing.T) {
		f := newRecommendationFixture(true)
		f.withClaimableAttempt(t)
		f.generator.On("Generate", mock.Anything, mock.Anything).Return(&recommendation.Recommendation{
			Summary:     "stale",
			Professions: []recommendation.Profession{{Title: "Pilot", Reason: "R"}},
		}, nil)
		f.repo.attemptRepo.On("FinishRecommendation", mock.Anything, uint(11), testClaim, mock.Anything, fixedClock()).
			Return(false, nil)

		err := f.service.Generate(ctx, 11)
		assert.ErrorIs(t, err, ErrRecommendationSuperseded)
		assert.Empty(t, f.publisher.GetPublishedEvents())
		// only the eviction after claiming
		f.cache.AssertNumberOfCalls(t, "Delete", 1)
	})

	t.Run("no provider configured", func(t *testing.T) {
		f := newRecommendationFixture(false)
		f.withClaimableAttempt(t)
		f.repo.attemptRepo.On("FinishRecommendation", mock.Anything, uint(11), testClaim,
			finishedWith(models.RecommendationFailed, func(r repositories.RecommendationResult) bool {
				return r.Error != nil && *r.Error == "no recommendation provider configured"
			}), fixedClock()).Return(true, nil)

		assert.Error(t, f.service.Generate(ctx, 11))
		f.repo.attemptRepo.AssertExpectations(t)
	})
}

func TestRecommendationService_GenerateAsync(t *testing.T) {
	f := newRecommendationFixture(true)
	f.withClaimableAttempt(t)
	f.generator.On("Generate", mock.Anything, mock.Anything).Return(&recommendation.Recommendation{
		Summary:     "ok",
		Professions: []recommendation.Profession{{Title: "Teacher", Reason: "S"}},
	}, nil)
	f.repo.attemptRepo.On("FinishRecommendation", mock.Anything, uint(11), testClaim, mock.Anything, fixedClock()).Return(true, nil)

	f.service.GenerateAsync(11)
	f.service.Wait()

	f.repo.attemptRepo.AssertCalled(t, "FinishRecommendation", mock.Anything, uint(11), testClaim, mock.Anything, fixedClock())
	assert.Len(t, f.publisher.EventsOfType(events.EventRecommendationReady), 1)
}
