package repository

import (
	"context"

	"github.com/movielog/movielog/internal/domain/entity"
)

// MovieRepository defines the interface for movie library persistence.
// Listings are ordered by rating descending; entries with equal rating keep
// their insertion order.
type MovieRepository interface {
	// Create inserts the movie and fills in ID/CreatedAt/UpdatedAt.
	// Returns ErrAlreadyExists when the title is already in the table.
	Create(ctx context.Context, m *entity.Movie) error
	GetByID(ctx context.Context, id int64) (*entity.Movie, error)
	// ListAll returns every movie (the public home listing).
	ListAll(ctx context.Context) ([]entity.Movie, error)
	// ListByOwner returns the movies owned by userID.
	ListByOwner(ctx context.Context, userID string) ([]entity.Movie, error)
	// UpdateReview sets rating, ranking and review on an existing entry,
	// leaving every other column untouched. Returns ErrNotFound for an
	// unknown id.
	UpdateReview(ctx context.Context, id int64, rating float64, ranking int, review string) error
	// Delete removes the entry. Returns ErrNotFound for an unknown id.
	Delete(ctx context.Context, id int64) error
}
