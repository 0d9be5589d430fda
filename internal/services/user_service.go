package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SAP-F-2025/career-orientation-service/internal/auth"
	"github.com/SAP-F-2025/career-orientation-service/internal/models"
	"github.com/SAP-F-2025/career-orientation-service/internal/repositories"
	"github.com/SAP-F-2025/career-orientation-service/internal/validator"
)

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	IssueToken(userID uint, role models.UserRole) (string, time.Time, error)
}

type userService struct {
	repo      repositories.Repository
	tokens    TokenIssuer
	logger    *slog.Logger
	log       *ServiceLogger
	validator *validator.Validator
	now       func() time.Time
}

func NewUserService(repo repositories.Repository, tokens TokenIssuer, logger *slog.Logger, validator *validator.Validator) UserService {
	return &userService{
		repo:      repo,
		tokens:    tokens,
		logger:    logger,
		log:       NewServiceLogger(logger, LogConfig{Service: "career", Component: "users"}),
		validator: validator,
		now:       time.Now,
	}
}

// ===== ACCOUNT OPERATIONS =====

func (s *userService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	op := s.log.WithOperation(ctx, "register", 0)
	user, err := s.create(ctx, req, models.RoleUser, models.AccessUnpaid)
	if err != nil {
		op.LogResult(0, "user", err)
		return nil, err
	}
	op.LogResult(user.ID, "user", nil)
	return user, nil
}

func (s *userService) CreateAdmin(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	op := s.log.WithOperation(ctx, "create_admin", 0)
	user, err := s.create(ctx, req, models.RoleAdmin, models.AccessPaid)
	if err != nil {
		op.LogResult(0, "user", err)
		return nil, err
	}
	op.LogAudit(AuditEventCreate, user.ID, "user", nil, map[string]interface{}{"role": user.Role})
	return user, nil
}

func (s *userService) create(ctx context.Context, req *RegisterRequest, role models.UserRole, state models.AccessState) (*models.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	email := normalizeEmail(req.Email)
	exists, err := s.repo.User().ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		AccessState:  state,
	}
	if state == models.AccessPaid {
		now := s.now()
		user.PaidAt = &now
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

func (s *userService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	email := normalizeEmail(req.Email)
	user, err := s.repo.User().GetByEmail(ctx, email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			s.log.WithOperation(ctx, "login", 0).LogSecurity(SecurityEventFailedLogin, SecuritySeverityLow,
				"login with unknown email", map[string]interface{}{"email": email})
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			s.log.WithOperation(ctx, "login", user.ID).LogSecurity(SecurityEventFailedLogin, SecuritySeverityMedium,
				"wrong password", nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to check password: %w", err)
	}

	token, expiresAt, err := s.tokens.IssueToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	now := s.now()
	if err := s.repo.User().UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Warn("Failed to record login time", "user_id", user.ID, "error", err)
	} else {
		user.LastLoginAt = &now
	}

	s.logger.Info("User logged in", "user_id", user.ID)
	return &LoginResponse{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *userService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// ===== ADMIN PANEL =====

func (s *userService) List(ctx context.Context, filters repositories.UserFilters) (*UserListResponse, error) {
	if err := s.validator.Validate(&filters); err != nil {
		return nil, err
	}

	users, total, err := s.repo.User().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return &UserListResponse{
		Users: users,
		Pagination: models.Pagination{
			Total:  total,
			Limit:  repositories.NormalizeLimit(filters.Limit),
			Offset: filters.Offset,
		},
	}, nil
}

func (s *userService) UpdateAccess(ctx context.Context, userID uint, req *UpdateAccessRequest, adminID uint) (*models.User, error) {
	op := s.log.WithOperation(ctx, "update_access", adminID)

	if err := s.validator.Validate(req); err != nil {
		op.LogResult(userID, "user", err)
		return nil, err
	}

	user, err := s.GetByID(ctx, userID)
	if err != nil {
		op.LogResult(userID, "user", err)
		return nil, err
	}
	previous := user.AccessState

	if err := s.repo.User().UpdateAccessState(ctx, userID, req.AccessState, s.now()); err != nil {
		if repositories.IsNotFoundError(err) {
			err = ErrUserNotFound
		} else {
			err = fmt.Errorf("failed to update access: %w", err)
		}
		op.LogResult(userID, "user", err)
		return nil, err
	}

	op.LogAudit(AuditEventUpdate, userID, "user_access", previous, req.AccessState)
	return s.GetByID(ctx, userID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
