package services

import (
	"context"
	"time"

	"github.com/SAP-F-2025/career-orientation-service/internal/models"
	"github.com/SAP-F-2025/career-orientation-service/internal/recommendation"
	"github.com/SAP-F-2025/career-orientation-service/internal/repositories"
	"github.com/SAP-F-2025/career-orientation-service/internal/scoring"
)

// ===== SERVICE INTERFACES =====

type UserService interface {
	Register(ctx context.Context, req *RegisterRequest) (*models.User, error)
	// CreateAdmin registers an administrator with paid access.
	CreateAdmin(ctx context.Context, req *RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)

	// Admin panel
	List(ctx context.Context, filters repositories.UserFilters) (*UserListResponse, error)
	UpdateAccess(ctx context.Context, userID uint, req *UpdateAccessRequest, adminID uint) (*models.User, error)
}

type TestService interface {
	SaveAnswers(ctx context.Context, userID, testID uint, module scoring.Module, req *SaveAnswersRequest) (*ProgressResponse, error)
	GetProgress(ctx context.Context, userID, testID uint) (*ProgressResponse, error)
	Complete(ctx context.Context, userID, testID uint) (*ResultsResponse, error)
	GetResults(ctx context.Context, userID, testID uint) (*ResultsResponse, error)
}

type RecommendationService interface {
	// Generate claims the attempt and stores a recommendation or the failure
	// reason. It returns ErrRecommendationInProgress when already claimed and
	// ErrRecommendationSuperseded when the claim is lost before the result is
	// stored.
	Generate(ctx context.Context, attemptID uint) error
	// GenerateAsync runs Generate in the background.
	GenerateAsync(attemptID uint)
	// Wait blocks until every background generation has finished.
	Wait()
}

type AdminService interface {
	GetUserTest(ctx context.Context, userID, testID uint) (*AttemptDetails, error)
	ListTestAttempts(ctx context.Context, testID uint, filters repositories.AttemptFilters) (*AttemptListResponse, error)
	ResetUserTest(ctx context.Context, userID, testID, adminID uint) error
	Rescore(ctx context.Context, userID, testID, adminID uint) (*ResultsResponse, error)
	RescoreTest(ctx context.Context, testID uint) (*RescoreSummary, error)
}

type ExportService interface {
	ExportTestResults(ctx context.Context, testID, adminID uint) ([]byte, error)
}

// ===== REQUEST STRUCTS =====

type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,password,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateAccessRequest struct {
	AccessState models.AccessState `json:"access_state" validate:"required,access_state"`
}

type SaveAnswersRequest struct {
	Answers scoring.RawAnswers `json:"answers" validate:"required,min=1,max=200,question_keys"`
}

// ===== RESPONSE STRUCTS =====

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

type UserListResponse struct {
	Users      []*models.User    `json:"users"`
	Pagination models.Pagination `json:"pagination"`
}

type ModuleProgress struct {
	Module   int    `json:"module"`
	Name     string `json:"name"`
	Answered int    `json:"answered"`
}

type ProgressResponse struct {
	AttemptID uint                 `json:"attempt_id"`
	TestID    uint                 `json:"test_id"`
	Status    models.AttemptStatus `json:"status"`
	Modules   []ModuleProgress     `json:"modules"`
	Answered  int                  `json:"answered_modules"`
}

type RecommendationView struct {
	Status      models.RecommendationStatus    `json:"status"`
	Content     *recommendation.Recommendation `json:"content,omitempty"`
	Error       *string                        `json:"error,omitempty"`
	GeneratedAt *time.Time                     `json:"generated_at,omitempty"`
}

type ResultsResponse struct {
	AttemptID      uint               `json:"attempt_id"`
	UserID         uint               `json:"user_id"`
	TestID         uint               `json:"test_id"`
	CompletedAt    *time.Time         `json:"completed_at"`
	DominantCode   string             `json:"dominant_code"`
	Scores         scoring.Record     `json:"scores"`
	Recommendation RecommendationView `json:"recommendation"`
}

// AttemptDetails is the admin view of one user's attempt.
type AttemptDetails struct {
	Progress *ProgressResponse      `json:"progress"`
	Answers  scoring.AttemptAnswers `json:"answers"`
	Results  *ResultsResponse       `json:"results,omitempty"`
}

type AttemptSummary struct {
	AttemptID            uint                        `json:"attempt_id"`
	UserID               uint                        `json:"user_id"`
	Status               models.AttemptStatus        `json:"status"`
	DominantCode         string                      `json:"dominant_code,omitempty"`
	RecommendationStatus models.RecommendationStatus `json:"recommendation_status"`
	CompletedAt          *time.Time                  `json:"completed_at,omitempty"`
	UpdatedAt            time.Time                   `json:"updated_at"`
}

type AttemptListResponse struct {
	Attempts   []AttemptSummary  `json:"attempts"`
	Pagination models.Pagination `json:"pagination"`
}

type RescoreSummary struct {
	TestID   uint   `json:"test_id"`
	Total    int    `json:"total"`
	Rescored int    `json:"rescored"`
	Failed   []uint `json:"failed,omitempty"`
}
