package handlers

import (
	"context"

	"github.com/SAP-F-2025/career-orientation-service/internal/models"
	"github.com/SAP-F-2025/career-orientation-service/internal/repositories"
	"github.com/SAP-F-2025/career-orientation-service/internal/scoring"
	"github.com/SAP-F-2025/career-orientation-service/internal/services"
	"github.com/stretchr/testify/mock"
)

type MockUserService struct{ mock.Mock }

func (m *MockUserService) Register(ctx context.Context, req *services.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) CreateAdmin(ctx context.Context, req *services.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, req *services.LoginRequest) (*services.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.LoginResponse), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context, filters repositories.UserFilters) (*services.UserListResponse, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.UserListResponse), args.Error(1)
}

func (m *MockUserService) UpdateAccess(ctx context.Context, userID uint, req *services.UpdateAccessRequest, adminID uint) (*models.User, error) {
	args := m.Called(ctx, userID, req, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockTestService struct{ mock.Mock }

func (m *MockTestService) SaveAnswers(ctx context.Context, userID, testID uint, module scoring.Module, req *services.SaveAnswersRequest) (*services.ProgressResponse, error) {
	args := m.Called(ctx, userID, testID, module, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ProgressResponse), args.Error(1)
}

func (m *MockTestService) GetProgress(ctx context.Context, userID, testID uint) (*services.ProgressResponse, error) {
	args := m.Called(ctx, userID, testID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ProgressResponse), args.Error(1)
}

func (m *MockTestService) Complete(ctx context.Context, userID, testID uint) (*services.ResultsResponse, error) {
	args := m.Called(ctx, userID, testID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ResultsResponse), args.Error(1)
}

func (m *MockTestService) GetResults(ctx context.Context, userID, testID uint) (*services.ResultsResponse, error) {
	args := m.Called(ctx, userID, testID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ResultsResponse), args.Error(1)
}

type MockAdminService struct{ mock.Mock }

func (m *MockAdminService) GetUserTest(ctx context.Context, userID, testID uint) (*services.AttemptDetails, error) {
	args := m.Called(ctx, userID, testID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AttemptDetails), args.Error(1)
}

func (m *MockAdminService) ListTestAttempts(ctx context.Context, testID uint, filters repositories.AttemptFilters) (*services.AttemptListResponse, error) {
	args := m.Called(ctx, testID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AttemptListResponse), args.Error(1)
}

func (m *MockAdminService) ResetUserTest(ctx context.Context, userID, testID, adminID uint) error {
	return m.Called(ctx, userID, testID, adminID).Error(0)
}

func (m *MockAdminService) Rescore(ctx context.Context, userID, testID, adminID uint) (*services.ResultsResponse, error) {
	args := m.Called(ctx, userID, testID, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ResultsResponse), args.Error(1)
}

func (m *MockAdminService) RescoreTest(ctx context.Context, testID uint) (*services.RescoreSummary, error) {
	args := m.Called(ctx, testID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.RescoreSummary), args.Error(1)
}

type MockExportService struct{ mock.Mock }

func (m *MockExportService) ExportTestResults(ctx context.Context, testID, adminID uint) ([]byte, error) {
	args := m.Called(ctx, testID, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type mockServiceManager struct {
	user   *MockUserService
	test   *MockTestService
	admin  *MockAdminService
	export *MockExportService
}

func newMockServiceManager() *mockServiceManager {
	return &mockServiceManager{
		user:   &MockUserService{},
		test:   &MockTestService{},
		admin:  &MockAdminService{},
		export: &MockExportService{},
	}
}

func (m *mockServiceManager) User() services.UserService                     { return m.user }
func (m *mockServiceManager) Test() services.TestService                     { return m.test }
func (m *mockServiceManager) Recommendation() services.RecommendationService { return nil }
func (m *mockServiceManager) Admin() services.AdminService                   { return m.admin }
func (m *mockServiceManager) Export() services.ExportService                 { return m.export }
