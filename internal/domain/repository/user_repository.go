package repository

import (
	"context"

	"github.com/movielog/movielog/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	// Create inserts the user and fills in ID/CreatedAt/UpdatedAt.
	// Returns ErrAlreadyExists when email or username is taken.
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// Update persists name and avatar changes. Returns ErrNotFound for an
	// unknown id.
	Update(ctx context.Context, u *entity.User) error
}
