package application

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/movielog/movielog/internal/domain/entity"
	repo "github.com/movielog/movielog/internal/domain/repository"
	"github.com/movielog/movielog/internal/infrastructure/tmdb"
)

// ErrForbidden is returned when a user touches a movie they do not own.
var ErrForbidden = errors.New("forbidden")

// Catalog is the read-only movie catalog the service imports from.
// *tmdb.Client satisfies it.
type Catalog interface {
	SearchByTitle(ctx context.Context, title string) ([]tmdb.SearchResult, int, error)
	GetDetails(ctx context.Context, id int64) (*tmdb.Details, error)
	PosterURL(posterPath string) string
}

// MovieService owns the library flows: catalog search, import,
// rate/review/rank, delete and listings.
type MovieService struct {
	Repo    repo.MovieRepository
	Catalog Catalog
	Logger  *logrus.Logger
	ES      *elasticsearch.Client
	ESIndex string
}

// ListPublic returns every movie, rating descending.
func (s *MovieService) ListPublic(ctx context.Context) ([]entity.Movie, error) {
	return s.Repo.ListAll(ctx)
}

// ListLibrary returns the caller's own movies, rating descending.
func (s *MovieService) ListLibrary(ctx context.Context, userID string) ([]entity.Movie, error) {
	return s.Repo.ListByOwner(ctx, userID)
}

// SearchCatalog runs a title search against the external catalog.
func (s *MovieService) SearchCatalog(ctx context.Context, title string) ([]tmdb.SearchResult, int, error) {
	return s.Catalog.SearchByTitle(ctx, title)
}

// Import fetches the full catalog record and persists it as a new library
// entry owned by userID. Rating and ranking start at zero and the review at
// the placeholder value; the user fills these in on the edit screen next.
// A duplicate title surfaces as repository.ErrAlreadyExists and leaves the
// library unchanged.
func (s *MovieService) Import(ctx context.Context, userID string, catalogID int64) (*entity.Movie, error) {
	d, err := s.Catalog.GetDetails(ctx, catalogID)
	if err != nil {
		return nil, err
	}
	title := d.OriginalTitle
	if title == "" {
		title = d.Title
	}
	m := &entity.Movie{
		UserID:      userID,
		TMDBID:      d.ID,
		Title:       title,
		Year:        d.ReleaseDate,
		Description: d.Overview,
		Rating:      0,
		Ranking:     0,
		Review:      entity.ReviewNone,
		PosterURL:   s.Catalog.PosterURL(d.PosterPath),
	}
	if err := s.Repo.Create(ctx, m); err != nil {
		return nil, err
	}
	s.indexMovie(ctx, m)
	return m, nil
}

// Rate sets exactly the rating, ranking and review fields of an entry the
// caller owns; title, year, description and poster are untouched.
func (s *MovieService) Rate(ctx context.Context, userID string, movieID int64, rating float64, ranking int, review string) (*entity.Movie, error) {
	m, err := s.ownedMovie(ctx, userID, movieID)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateReview(ctx, movieID, rating, ranking, review); err != nil {
		return nil, err
	}
	m.Rating = rating
	m.Ranking = ranking
	m.Review = review
	s.indexMovie(ctx, m)
	return m, nil
}

// Remove deletes an entry the caller owns.
func (s *MovieService) Remove(ctx context.Context, userID string, movieID int64) error {
	if _, err := s.ownedMovie(ctx, userID, movieID); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, movieID); err != nil {
		return err
	}
	s.removeFromIndex(ctx, movieID)
	return nil
}

func (s *MovieService) ownedMovie(ctx context.Context, userID string, movieID int64) (*entity.Movie, error) {
	m, err := s.Repo.GetByID(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if m.UserID != userID {
		return nil, ErrForbidden
	}
	return m, nil
}

// indexMovie mirrors the entry into Elasticsearch, best effort.
func (s *MovieService) indexMovie(ctx context.Context, m *entity.Movie) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          m.ID,
		"user_id":     m.UserID,
		"title":       m.Title,
		"year":        m.Year,
		"description": m.Description,
		"rating":      m.Rating,
		"ranking":     m.Ranking,
		"review":      m.Review,
		"poster_url":  m.PosterURL,
		"updated_at":  time.Now().UTC().Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      s.ESIndex,
		DocumentID: strconv.FormatInt(m.ID, 10),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("movie_id", m.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("movie_id", m.ID).Warn("es index response error")
	}
}

func (s *MovieService) removeFromIndex(ctx context.Context, movieID int64) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: strconv.FormatInt(movieID, 10)}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("movie_id", movieID).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// SearchLibrary runs a text search over the caller's indexed entries.
func (s *MovieService) SearchLibrary(ctx context.Context, userID, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"title^2", "review", "description"},
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"user_id": userID},
				},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
