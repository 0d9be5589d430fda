package services

import (
	"log/slog"
	"time"

	"github.com/SAP-F-2025/career-orientation-service/internal/cache"
	"github.com/SAP-F-2025/career-orientation-service/internal/events"
	"github.com/SAP-F-2025/career-orientation-service/internal/repositories"
	"github.com/SAP-F-2025/career-orientation-service/internal/validator"
)

// ServiceManager gives handlers and commands access to every service.
type ServiceManager interface {
	User() UserService
	Test() TestService
	Recommendation() RecommendationService
	Admin() AdminService
	Export() ExportService
}

// Dependencies are the collaborators shared by the services.
type Dependencies struct {
	Repo      repositories.Repository
	Cache     cache.CacheService
	CacheTTL  time.Duration
	Publisher events.EventPublisher
	Generator RecommendationGenerator
	Tokens    TokenIssuer
	// RecommendationTimeout bounds one generation call.
	RecommendationTimeout time.Duration
	Logger                *slog.Logger
	Validator             *validator.Validator
}

type serviceManager struct {
	user           UserService
	test           TestService
	recommendation RecommendationService
	admin          AdminService
	export         ExportService
}

func NewServiceManager(deps Dependencies) ServiceManager {
	recommendations := NewRecommendationService(
		deps.Repo, deps.Generator, deps.Cache, deps.Publisher, deps.RecommendationTimeout, deps.Logger)

	return &serviceManager{
		user:           NewUserService(deps.Repo, deps.Tokens, deps.Logger, deps.Validator),
		test:           NewTestService(deps.Repo, deps.Cache, deps.CacheTTL, deps.Publisher, recommendations, deps.Logger, deps.Validator),
		recommendation: recommendations,
		admin:          NewAdminService(deps.Repo, deps.Cache, deps.Publisher, recommendations, deps.Logger),
		export:         NewExportService(deps.Repo, deps.Logger),
	}
}

func (m *serviceManager) User() UserService                     { return m.user }
func (m *serviceManager) Test() TestService                     { return m.test }
func (m *serviceManager) Recommendation() RecommendationService { return m.recommendation }
func (m *serviceManager) Admin() AdminService                   { return m.admin }
func (m *serviceManager) Export() ExportService                 { return m.export }
