package repositories

import (
	"context"
	"time"

	"github.com/SAP-F-2025/career-orientation-service/internal/models"
)

// UserRepository interface for user operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Admin panel
	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)
	UpdateAccessState(ctx context.Context, id uint, state models.AccessState, at time.Time) error

	UpdateLastLogin(ctx context.Context, id uint, loginTime time.Time) error
}
