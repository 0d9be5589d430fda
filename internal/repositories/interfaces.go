package repositories

import (
	"errors"

	"github.com/SAP-F-2025/career-orientation-service/internal/models"
)

var (
	// ErrNotFound is returned instead of gorm.ErrRecordNotFound.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint is violated.
	ErrDuplicate = errors.New("duplicate record")
)

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// Repository groups the repositories the services work with.
type Repository interface {
	User() UserRepository
	Attempt() AttemptRepository
}

// ===== SHARED FILTER STRUCTS =====

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// NormalizeLimit clamps a requested page size to (0, MaxLimit].
func NormalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	}
	return limit
}

type UserFilters struct {
	Email       string              `json:"email"` // substring, case-insensitive
	Role        *models.UserRole    `json:"role" validate:"omitempty,user_role"`
	AccessState *models.AccessState `json:"access_state" validate:"omitempty,access_state"`
	Limit       int                 `json:"limit"`
	Offset      int                 `json:"offset"`
	SortBy      string              `json:"sort_by"`    // "created_at", "email", "full_name"
	SortOrder   string              `json:"sort_order"` // "asc", "desc"
}

type AttemptFilters struct {
	Status    *models.AttemptStatus `json:"status"`
	Limit     int                   `json:"limit"`
	Offset    int                   `json:"offset"`
	SortBy    string                `json:"sort_by"`    // "created_at", "completed_at"
	SortOrder string                `json:"sort_order"` // "asc", "desc"
}

// ===== SHARED HELPER STRUCTS =====

// RecommendationResult is the terminal state written after generation.
type RecommendationResult struct {
	Status  models.RecommendationStatus
	Content []byte
	Error   *string
}
