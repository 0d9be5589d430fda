package services

import (
	"context"
	"testing"

	"github.com/SAP-F-2025/career-orientation-service/internal/cache"
	"github.com/SAP-F-2025/career-orientation-service/internal/events"
	"github.com/SAP-F-2025/career-orientation-service/internal/models"
	"github.com/SAP-F-2025/career-orientation-service/internal/repositories"
	"github.com/SAP-F-2025/career-orientation-service/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type adminFixture struct {
	repo      *MockRepository
	cache     *MockCache
	recs      *MockRecommendationService
	publisher *events.MockEventPublisher
	service   *adminService
}

func newAdminFixture() *adminFixture {
	f := &adminFixture{
		repo:      NewMockRepository(),
		cache:     &MockCache{},
		recs:      &MockRecommendationService{},
		publisher: events.NewMockEventPublisher(testLogger()),
	}
	f.service = NewAdminService(f.repo, f.cache, f.publisher, f.recs, testLogger()).(*adminService)
	f.service.now = fixedClock
	return f
}

func TestAdminService_GetUserTest(t *testing.T) {
	ctx := context.Background()

	t.Run("in progress has no results", func(t *testing.T) {
		f := newAdminFixture()
		f.repo.attemptRepo.On("GetByUserAndTest", mock.Anything, testUserID, testTestID).
			Return(newAttempt(t, models.AttemptInProgress, scoring.AttemptAnswers{
				scoring.ModulePerception: scoring.RawAnswers{"q1_opt1": scoring.Number(2)},
			}), nil)

		details, err := f.service.GetUserTest(ctx, testUserID, testTestID)
		require.NoError(t, err)
		assert.Nil(t, details.Results)
		assert.Equal(t, 1, details.Progress.Answered)
		assert.Equal(t, scoring.Number(2), details.Answers[scoring.ModulePerception]["q1_opt1"])
	})

	t.Run("completed includes results", func(t *testing.T) {
		f := newAdminFixture()
		f.repo.attemptRepo.On("GetByUserAndTest", mock.Anything, testUserID, testTestID).
			Return(completedAttempt(t, models.RecommendationFailed), nil)

		details, err := f.service.GetUserTest(ctx, testUserID, testTestID)
		require.NoError(t, err)
		require.NotNil(t, details.Results)
		assert.Equal(t, "RAI", details.Results.DominantCode)
	})
}

func TestAdminService_ResetUserTest(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes, evicts and announces", func(t *testing.T) {
		f := newAdminFixture()
		f.repo.attemptRepo.On("DeleteByUserAndTest", mock.Anything, testUserID, testTestID).Return(true, nil)
		f.cache.On("Delete", mock.Anything, cache.ResultsKey(testUserID, testTestID)).Return(nil)

		require.NoError(t, f.service.ResetUserTest(ctx, testUserID, testTestID, 99))

		reset := f.publisher.EventsOfType(events.EventResultsReset)
		require.Len(t, reset, 1)
		payload := reset[0].Data.(events.ResultsResetEvent)
		assert.Equal(t, uint(99), payload.AdminID)
		assert.Equal(t, fixedClock(), payload.ResetAt)
		f.cache.AssertExpectations(t)
	})

	t.Run("nothing to reset", func(t *testing.T) {
		f := newAdminFixture()
		f.repo.attemptRepo.On("DeleteByUserAndTest", mock.Anything, testUserID, testTestID).Return(false, nil)

		err := f.service.ResetUserTest(ctx, testUserID, testTestID, 99)
		assert.ErrorIs(t, err, ErrAttemptNotFound)
		assert.Empty(t, f.publisher.GetPublishedEvents())
	})
}

func TestAdminService_Rescore(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the record and clears the recommendation", func(t *testing.T) {
		f := newAdminFixture()
		attempt := completedAttempt(t, models.RecommendationReady)
		attempt.DominantCode = "CES"
		f.repo.attemptRepo.On("GetByUserAndTest", mock.Anything, testUserID, testTestID).Return(attempt, nil)
		f.repo.attemptRepo.On("ReplaceScores", mock.Anything, uint(11), mock.Anything, "RAI").Return(nil)
		f.cache.On("Delete", mock.Anything, cache.ResultsKey(testUserID, testTestID)).Return(nil)
		f.recs.On("GenerateAsync", uint(11)).Return()

		results, err := f.service.Rescore(ctx, testUserID, testTestID, 99)
		require.NoError(t, err)
		assert.Equal(t, "RAI", results.DominantCode)
		assert.Equal(t, models.RecommendationNone, results.Recommendation.Status)
		assert.Nil(t, results.Recommendation.Content)
		f.recs.AssertExpectations(t)
	})

	t.Run("in-progress attempt cannot be rescored", func(t *testing.T) {
		f := newAdminFixture()
		f.repo.attemptRepo.On("GetByUserAndTest", mock.Anything, testUserID, testTestID).
			Return(newAttempt(t, models.AttemptInProgress, scoring.AttemptAnswers{}), nil)

		_, err := f.service.Rescore(ctx, testUserID, testTestID, 99)
		assert.ErrorIs(t, err, ErrAttemptNotCompleted)
		f.recs.AssertNotCalled(t, "GenerateAsync", mock.Anything)
	})
}

func TestAdminService_RescoreTest(t *testing.T) {
	f := newAdminFixture()
	f.repo.attemptRepo.On("ListCompletedIDs", mock.Anything, testTestID).Return([]uint{11, 12}, nil)
	f.repo.attemptRepo.On("GetByID", mock.Anything, uint(11)).Return(completedAttempt(t, models.RecommendationReady), nil)
	f.repo.attemptRepo.On("GetByID", mock.Anything, uint(12)).Return(nil, repositories.ErrNotFound)
	f.repo.attemptRepo.On("ReplaceScores", mock.Anything, uint(11), mock.Anything, "RAI").Return(nil)
	f.cache.On("Delete", mock.Anything, mock.Anything).Return(nil)
	f.cache.On("DeletePattern", mock.Anything, cache.TestResultsPattern(testTestID)).Return(nil)
	f.recs.On("GenerateAsync", uint(11)).Return()

	summary, err := f.service.RescoreTest(context.Background(), testTestID)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Rescored)
	assert.Equal(t, []uint{12}, summary.Failed)
	f.cache.AssertExpectations(t)
	f.recs.AssertExpectations(t)
	f.recs.AssertNotCalled(t, "GenerateAsync", uint(12))
}

func TestAdminService_RescoreTestRegeneratesEveryRescoredAttempt(t *testing.T) {
	f := newAdminFixture()
	f.repo.attemptRepo.On("ListCompletedIDs", mock.Anything, testTestID).Return([]uint{11}, nil)
	f.repo.attemptRepo.On("GetByID", mock.Anything, uint(11)).Return(completedAttempt(t, models.RecommendationFailed), nil)
	f.repo.attemptRepo.On("ReplaceScores", mock.Anything, uint(11), mock.Anything, "RAI").Return(nil)
	f.cache.On("Delete", mock.Anything, mock.Anything).Return(nil)
	f.cache.On("DeletePattern", mock.Anything, mock.Anything).Return(nil)
	f.recs.On("GenerateAsync", uint(11)).Return()

	_, err := f.service.RescoreTest(context.Background(), testTestID)
	require.NoError(t, err)
	f.recs.AssertNumberOfCalls(t, "GenerateAsync", 1)
}

func TestAdminService_ListTestAttempts(t *testing.T) {
	f := newAdminFixture()
	filters := repositories.AttemptFilters{Limit: 5}
	f.repo.attemptRepo.On("ListByTest", mock.Anything, testTestID, filters).
		Return([]*models.TestAttempt{completedAttempt(t, models.RecommendationReady)}, int64(1), nil)

	resp, err := f.service.ListTestAttempts(context.Background(), testTestID, filters)
	require.NoError(t, err)
	require.Len(t, resp.Attempts, 1)
	assert.Equal(t, "RAI", resp.Attempts[0].DominantCode)
	assert.Equal(t, models.Pagination{Total: 1, Limit: 5}, resp.Pagination)
}
