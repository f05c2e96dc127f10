package handlers_test

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/movielog/movielog/internal/application"
	"github.com/movielog/movielog/internal/domain/entity"
	repo "github.com/movielog/movielog/internal/domain/repository"
	"github.com/movielog/movielog/internal/infrastructure/tmdb"
)

// In-memory repositories with the same uniqueness and ordering contracts
// as the Postgres implementations.

type fakeUserRepo struct {
	users  []*entity.User
	nextID int
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, e := range f.users {
		if e.Email == u.Email || e.Username == u.Username {
			return repo.ErrAlreadyExists
		}
	}
	f.nextID++
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	f.users = append(f.users, &cp)
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, e := range f.users {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, e := range f.users {
		if e.Email == email {
			cp := *e
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	for i, e := range f.users {
		if e.ID == u.ID {
			cp := *u
			f.users[i] = &cp
			return nil
		}
	}
	return repo.ErrNotFound
}

var _ repo.UserRepository = (*fakeUserRepo)(nil)

type fakeMovieRepo struct {
	movies []*entity.Movie
	nextID int64
}

func (f *fakeMovieRepo) Create(_ context.Context, m *entity.Movie) error {
	for _, e := range f.movies {
		if e.Title == m.Title {
			return repo.ErrAlreadyExists
		}
	}
	f.nextID++
	m.ID = f.nextID
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	cp := *m
	f.movies = append(f.movies, &cp)
	return nil
}

func (f *fakeMovieRepo) GetByID(_ context.Context, id int64) (*entity.Movie, error) {
	for _, e := range f.movies {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeMovieRepo) list(filter func(*entity.Movie) bool) []entity.Movie {
	var out []entity.Movie
	for _, e := range f.movies {
		if filter(e) {
			out = append(out, *e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (f *fakeMovieRepo) ListAll(_ context.Context) ([]entity.Movie, error) {
	return f.list(func(*entity.Movie) bool { return true }), nil
}

func (f *fakeMovieRepo) ListByOwner(_ context.Context, userID string) ([]entity.Movie, error) {
	return f.list(func(m *entity.Movie) bool { return m.UserID == userID }), nil
}

func (f *fakeMovieRepo) UpdateReview(_ context.Context, id int64, rating float64, ranking int, review string) error {
	for _, e := range f.movies {
		if e.ID == id {
			e.Rating = rating
			e.Ranking = ranking
			e.Review = review
			e.UpdatedAt = time.Now()
			return nil
		}
	}
	return repo.ErrNotFound
}

func (f *fakeMovieRepo) Delete(_ context.Context, id int64) error {
	for i, e := range f.movies {
		if e.ID == id {
			f.movies = append(f.movies[:i], f.movies[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}

var _ repo.MovieRepository = (*fakeMovieRepo)(nil)

type fakeCatalog struct {
	results []tmdb.SearchResult
	details map[int64]*tmdb.Details
	err     error
}

func (f *fakeCatalog) SearchByTitle(_ context.Context, _ string) ([]tmdb.SearchResult, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.results, len(f.results), nil
}

func (f *fakeCatalog) GetDetails(_ context.Context, id int64) (*tmdb.Details, error) {
	if f.err != nil {
		return nil, f.err
	}
	d, ok := f.details[id]
	if !ok {
		return nil, fmt.Errorf("tmdb details %d: unexpected status 404 Not Found", id)
	}
	return d, nil
}

func (f *fakeCatalog) PosterURL(posterPath string) string {
	if posterPath == "" {
		return ""
	}
	return "https://img.example/w600" + posterPath
}

var _ application.Catalog = (*fakeCatalog)(nil)
