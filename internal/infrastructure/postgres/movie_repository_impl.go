package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/movielog/movielog/internal/domain/entity"
	"github.com/movielog/movielog/internal/domain/repository"
)

const movieColumns = `id, user_id, tmdb_id, title, year, description, rating, ranking, review, poster_url, created_at, updated_at`

type MovieRepository struct {
	pool *pgxpool.Pool
}

func NewMovieRepository(pool *pgxpool.Pool) *MovieRepository {
	return &MovieRepository{pool: pool}
}

func (r *MovieRepository) Create(ctx context.Context, m *entity.Movie) error {
	// Single-statement insert; on a unique violation Postgres aborts the
	// implicit transaction, so no partial row survives.
	row := r.pool.QueryRow(ctx, `
		INSERT INTO movies (user_id, tmdb_id, title, year, description, rating, ranking, review, poster_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, m.UserID, m.TMDBID, m.Title, m.Year, m.Description, m.Rating, m.Ranking, m.Review, m.PosterURL)

	return mapError(row.Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt))
}

func (r *MovieRepository) GetByID(ctx context.Context, id int64) (*entity.Movie, error) {
	m := &entity.Movie{}
	row := r.pool.QueryRow(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = $1`, id)
	if err := scanMovie(row, m); err != nil {
		return nil, mapError(err)
	}
	return m, nil
}

// Listings order by rating descending; the id tie-break keeps equal ratings
// in insertion order (ids are assigned by an identity column).
func (r *MovieRepository) ListAll(ctx context.Context) ([]entity.Movie, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+movieColumns+`
		FROM movies
		ORDER BY rating DESC, id ASC
	`)
	if err != nil {
		return nil, mapError(err)
	}
	return collectMovies(rows)
}

func (r *MovieRepository) ListByOwner(ctx context.Context, userID string) ([]entity.Movie, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+movieColumns+`
		FROM movies
		WHERE user_id = $1
		ORDER BY rating DESC, id ASC
	`, userID)
	if err != nil {
		return nil, mapError(err)
	}
	return collectMovies(rows)
}

func (r *MovieRepository) UpdateReview(ctx context.Context, id int64, rating float64, ranking int, review string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE movies
		SET rating = $1, ranking = $2, review = $3, updated_at = $4
		WHERE id = $5
	`, rating, ranking, review, time.Now(), id)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MovieRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanMovie(row pgx.Row, m *entity.Movie) error {
	return row.Scan(&m.ID, &m.UserID, &m.TMDBID, &m.Title, &m.Year, &m.Description,
		&m.Rating, &m.Ranking, &m.Review, &m.PosterURL, &m.CreatedAt, &m.UpdatedAt)
}

func collectMovies(rows pgx.Rows) ([]entity.Movie, error) {
	defer rows.Close()
	var out []entity.Movie
	for rows.Next() {
		var m entity.Movie
		if err := scanMovie(rows, &m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

var _ repository.MovieRepository = (*MovieRepository)(nil)
