package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/career-orientation-service/internal/models"
	"github.com/SAP-F-2025/career-orientation-service/internal/recommendation"
	"github.com/SAP-F-2025/career-orientation-service/internal/repositories"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	args := m.Called(ctx, filters)
	users, _ := args.Get(0).([]*models.User)
	return users, args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) UpdateAccessState(ctx context.Context, id uint, state models.AccessState, at time.Time) error {
	args := m.Called(ctx, id, state, at)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, id uint, loginTime time.Time) error {
	args := m.Called(ctx, id, loginTime)
	return args.Error(0)
}

// MockAttemptRepository is a mock implementation of AttemptRepository
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) GetByID(ctx context.Context, id uint) (*models.TestAttempt, error) {
	args := m.Called(ctx, id)
	attempt, _ := args.Get(0).(*models.TestAttempt)
	return attempt, args.Error(1)
}

func (m *MockAttemptRepository) GetByUserAndTest(ctx context.Context, userID, testID uint) (*models.TestAttempt, error) {
	args := m.Called(ctx, userID, testID)
	attempt, _ := args.Get(0).(*models.TestAttempt)
	return attempt, args.Error(1)
}

// UpdateAnswers runs mutate against the attempt given to Return, mimicking
// the locked read-modify-write of the real repository.
func (m *MockAttemptRepository) UpdateAnswers(ctx context.Context, userID, testID uint, mutate func(*models.TestAttempt) error) (*models.TestAttempt, error) {
	args := m.Called(ctx, userID, testID)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	attempt := args.Get(0).(*models.TestAttempt)
	if err := mutate(attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

func (m *MockAttemptRepository) Complete(ctx context.Context, id uint, scores []byte, dominantCode string, completedAt time.Time) (bool, error) {
	args := m.Called(ctx, id, scores, dominantCode, completedAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockAttemptRepository) ReplaceScores(ctx context.Context, id uint, scores []byte, dominantCode string) error {
	args := m.Called(ctx, id, scores, dominantCode)
	return args.Error(0)
}

func (m *MockAttemptRepository) ClaimRecommendation(ctx context.Context, id uint, claim string) (bool, error) {
	args := m.Called(ctx, id, claim)
	return args.Bool(0), args.Error(1)
}

func (m *MockAttemptRepository) FinishRecommendation(ctx context.Context, id uint, claim string, result repositories.RecommendationResult, at time.Time) (bool, error) {
	args := m.Called(ctx, id, claim, result, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockAttemptRepository) DeleteByUserAndTest(ctx context.Context, userID, testID uint) (bool, error) {
	args := m.Called(ctx, userID, testID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAttemptRepository) ListByTest(ctx context.Context, testID uint, filters repositories.AttemptFilters) ([]*models.TestAttempt, int64, error) {
	args := m.Called(ctx, testID, filters)
	attempts, _ := args.Get(0).([]*models.TestAttempt)
	return attempts, args.Get(1).(int64), args.Error(2)
}

func (m *MockAttemptRepository) ListCompletedIDs(ctx context.Context, testID uint) ([]uint, error) {
	args := m.Called(ctx, testID)
	ids, _ := args.Get(0).([]uint)
	return ids, args.Error(1)
}

// MockRepository bundles the repository mocks
type MockRepository struct {
	userRepo    *MockUserRepository
	attemptRepo *MockAttemptRepository
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		userRepo:    &MockUserRepository{},
		attemptRepo: &MockAttemptRepository{},
	}
}

func (m *MockRepository) User() repositories.UserRepository       { return m.userRepo }
func (m *MockRepository) Attempt() repositories.AttemptRepository { return m.attemptRepo }

// MockCache is a mock implementation of CacheService
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCache) Get(ctx context.Context, key string, dest interface{}) error {
	args := m.Called(ctx, key, dest)
	if len(args) > 1 {
		if fill, ok := args.Get(1).(func(interface{})); ok {
			fill(dest)
		}
	}
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) DeletePattern(ctx context.Context, pattern string) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

// MockGenerator is a mock implementation of RecommendationGenerator
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, analysis recommendation.Analysis) (*recommendation.Recommendation, error) {
	args := m.Called(ctx, analysis)
	rec, _ := args.Get(0).(*recommendation.Recommendation)
	return rec, args.Error(1)
}

func (m *MockGenerator) ModelID() string {
	return "mock"
}

// MockRecommendationService records background generation requests
type MockRecommendationService struct {
	mock.Mock
}

func (m *MockRecommendationService) Generate(ctx context.Context, attemptID uint) error {
	args := m.Called(ctx, attemptID)
	return args.Error(0)
}

func (m *MockRecommendationService) GenerateAsync(attemptID uint) {
	m.Called(attemptID)
}

func (m *MockRecommendationService) Wait() {}

// MockTokenIssuer signs nothing and returns a fixed token
type MockTokenIssuer struct{}

func (MockTokenIssuer) IssueToken(userID uint, role models.UserRole) (string, time.Time, error) {
	return "token-" + string(role), time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedClock() time.Time {
	return time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
}
