package postgres

import (
	"github.com/SAP-F-2025/career-orientation-service/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	user    repositories.UserRepository
	attempt repositories.AttemptRepository
}

// NewRepository builds every postgres repository on one connection pool.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		user:    NewUserPostgreSQL(db),
		attempt: NewAttemptPostgreSQL(db),
	}
}

func (r *repository) User() repositories.UserRepository {
	return r.user
}

func (r *repository) Attempt() repositories.AttemptRepository {
	return r.attempt
}
