package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/movielog/movielog/internal/application"
	"github.com/movielog/movielog/internal/domain/entity"
	repo "github.com/movielog/movielog/internal/domain/repository"
	"github.com/movielog/movielog/internal/interface/middleware"
	"github.com/movielog/movielog/pkg/response"
	"github.com/movielog/movielog/pkg/validation"
)

type MovieHandler struct {
	Svc    *application.MovieService
	Logger *logrus.Logger
}

func NewMovieHandler(svc *application.MovieService, logger *logrus.Logger) *MovieHandler {
	return &MovieHandler{Svc: svc, Logger: logger}
}

type addMovieRequest struct {
	Title string `json:"title" form:"title" binding:"required"`
}

type editMovieRequest struct {
	Rating  float64 `json:"rating" form:"rating" binding:"gte=0,lte=10"`
	Ranking int     `json:"ranking" form:"ranking" binding:"gte=0"`
	Review  string  `json:"review" form:"review" binding:"required"`
}

func movieJSON(m *entity.Movie) gin.H {
	return gin.H{
		"id":          m.ID,
		"user_id":     m.UserID,
		"tmdb_id":     m.TMDBID,
		"title":       m.Title,
		"year":        m.Year,
		"description": m.Description,
		"rating":      m.Rating,
		"ranking":     m.Ranking,
		"review":      m.Review,
		"poster_url":  m.PosterURL,
		"created_at":  m.CreatedAt,
	}
}

func moviesJSON(ms []entity.Movie) []gin.H {
	out := make([]gin.H, 0, len(ms))
	for i := range ms {
		out = append(out, movieJSON(&ms[i]))
	}
	return out
}

// Home is the public listing: every movie, best rated first.
func (h *MovieHandler) Home(c *gin.Context) {
	movies, err := h.Svc.ListPublic(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("public listing failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to load movies", nil, nil)
		return
	}
	response.Success(c, http.StatusOK, moviesJSON(movies), "movies", gin.H{"count": len(movies)})
}

// MyMovies lists the caller's own library.
func (h *MovieHandler) MyMovies(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	movies, err := h.Svc.ListLibrary(c.Request.Context(), uid)
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", uid).Error("library listing failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to load your library", nil, nil)
		return
	}
	response.Success(c, http.StatusOK, moviesJSON(movies), "your movies", gin.H{"count": len(movies)})
}

// SearchLibrary is a text search over the caller's indexed entries.
func (h *MovieHandler) SearchLibrary(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "query parameter q is required", nil, nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	uid := c.GetString(middleware.CtxUserIDKey)
	hits, err := h.Svc.SearchLibrary(c.Request.Context(), uid, q, size)
	if err != nil {
		h.Logger.WithError(err).Warn("library search failed")
		response.Error[any](c, http.StatusBadGateway, "library search unavailable", nil, nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", gin.H{"count": len(hits)})
}

// Add runs a catalog title search and returns the candidate list for the
// user to pick from.
func (h *MovieHandler) Add(c *gin.Context) {
	var req addMovieRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "title is required", validation.ToDetails(err), nil)
		return
	}
	results, total, err := h.Svc.SearchCatalog(c.Request.Context(), req.Title)
	if err != nil {
		h.Logger.WithError(err).WithField("title", req.Title).Warn("catalog search failed")
		response.Error[any](c, http.StatusBadGateway, "movie catalog unavailable, please try again", nil, nil)
		return
	}
	response.Success(c, http.StatusOK, results, "select a movie", gin.H{"total_results": total})
}

// Import fetches full details for a catalog id and creates the library
// entry, then points the client at the edit screen to fill in rating,
// review and ranking.
func (h *MovieHandler) Import(c *gin.Context) {
	catalogID, ok := h.queryID(c)
	if !ok {
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)

	m, err := h.Svc.Import(c.Request.Context(), uid, catalogID)
	if err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			response.Error[any](c, http.StatusConflict, "that film is already in your library", nil, gin.H{"redirect": "/mymovies"})
			return
		}
		h.Logger.WithError(err).WithField("catalog_id", catalogID).Warn("movie import failed")
		response.Error[any](c, http.StatusBadGateway, "movie catalog unavailable, please try again", nil, gin.H{"redirect": "/mymovies"})
		return
	}
	response.Success(c, http.StatusCreated, movieJSON(m), "that film has been added to your library",
		gin.H{"redirect": fmt.Sprintf("/edit?id=%d", m.ID)})
}

// Edit applies the submitted rating, review and ranking to an entry the
// caller owns.
func (h *MovieHandler) Edit(c *gin.Context) {
	movieID, ok := h.queryID(c)
	if !ok {
		return
	}
	var req editMovieRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid rating form", validation.ToDetails(err), nil)
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)

	m, err := h.Svc.Rate(c.Request.Context(), uid, movieID, req.Rating, req.Ranking, req.Review)
	if err != nil {
		h.movieError(c, err, movieID)
		return
	}
	response.Success(c, http.StatusOK, movieJSON(m), "movie updated", gin.H{"redirect": "/mymovies"})
}

// Delete removes an entry the caller owns.
func (h *MovieHandler) Delete(c *gin.Context) {
	movieID, ok := h.queryID(c)
	if !ok {
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)

	if err := h.Svc.Remove(c.Request.Context(), uid, movieID); err != nil {
		h.movieError(c, err, movieID)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "movie removed from your library", gin.H{"redirect": "/mymovies"})
}

func (h *MovieHandler) queryID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error[any](c, http.StatusBadRequest, "a numeric id parameter is required", nil, nil)
		return 0, false
	}
	return id, true
}

func (h *MovieHandler) movieError(c *gin.Context, err error, movieID int64) {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, "movie not found", nil, nil)
	case errors.Is(err, application.ErrForbidden):
		response.Error[any](c, http.StatusForbidden, "that movie is not in your library", nil, nil)
	default:
		h.Logger.WithError(err).WithField("movie_id", movieID).Error("movie operation failed")
		response.Error[any](c, http.StatusInternalServerError, "something went wrong", nil, nil)
	}
}
