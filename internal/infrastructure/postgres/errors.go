package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/movielog/movielog/internal/domain/repository"
)

// uniqueViolation is the SQLSTATE Postgres reports when an insert trips a
// unique constraint.
const uniqueViolation = "23505"

// mapError translates pgx-level failures into the repository sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrAlreadyExists
	}
	return err
}
