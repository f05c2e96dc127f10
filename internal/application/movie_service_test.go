package application

import (
	"context"
	"errors"
	"testing"

	"github.com/movielog/movielog/internal/domain/entity"
	repo "github.com/movielog/movielog/internal/domain/repository"
	"github.com/movielog/movielog/internal/infrastructure/tmdb"
)

func newMovieService() (*MovieService, *fakeMovieRepo, *fakeCatalog) {
	movies := &fakeMovieRepo{}
	catalog := &fakeCatalog{
		details: map[int64]*tmdb.Details{
			603: {ID: 603, OriginalTitle: "The Matrix", ReleaseDate: "1999-03-30", Overview: "A hacker...", PosterPath: "/matrix.jpg"},
			604: {ID: 604, OriginalTitle: "The Matrix Reloaded", ReleaseDate: "2003-05-15", Overview: "Neo again", PosterPath: "/reloaded.jpg"},
		},
	}
	return &MovieService{Repo: movies, Catalog: catalog}, movies, catalog
}

func TestImportInitialisesEntry(t *testing.T) {
	svc, _, _ := newMovieService()
	ctx := context.Background()

	m, err := svc.Import(ctx, "user-1", 603)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if m.Title != "The Matrix" || m.Year != "1999-03-30" {
		t.Errorf("imported = %+v", m)
	}
	if m.Rating != 0 || m.Ranking != 0 {
		t.Error("rating/ranking must start at zero")
	}
	if m.Review != entity.ReviewNone {
		t.Errorf("review = %q, want %q", m.Review, entity.ReviewNone)
	}
	if m.PosterURL != "https://img.example/w600/matrix.jpg" {
		t.Errorf("poster = %q", m.PosterURL)
	}
	if m.UserID != "user-1" {
		t.Errorf("owner = %q", m.UserID)
	}
}

func TestImportDuplicateTitleLeavesLibraryUnchanged(t *testing.T) {
	svc, movies, _ := newMovieService()
	ctx := context.Background()

	if _, err := svc.Import(ctx, "user-1", 603); err != nil {
		t.Fatalf("first Import: %v", err)
	}
	if _, err := svc.Import(ctx, "user-2", 603); !errors.Is(err, repo.ErrAlreadyExists) {
		t.Fatalf("second Import err = %v, want ErrAlreadyExists", err)
	}
	all, _ := movies.ListAll(ctx)
	if len(all) != 1 {
		t.Errorf("library has %d entries, want 1", len(all))
	}
}

func TestImportCatalogFailureDoesNotPersist(t *testing.T) {
	svc, movies, catalog := newMovieService()
	catalog.err = errors.New("upstream down")

	if _, err := svc.Import(context.Background(), "user-1", 603); err == nil {
		t.Fatal("expected catalog error")
	}
	all, _ := movies.ListAll(context.Background())
	if len(all) != 0 {
		t.Error("nothing should be persisted when the catalog call fails")
	}
}

func TestListOrderedByRatingDesc(t *testing.T) {
	svc, _, _ := newMovieService()
	ctx := context.Background()

	a, _ := svc.Import(ctx, "user-1", 603)
	b, _ := svc.Import(ctx, "user-1", 604)
	if _, err := svc.Rate(ctx, "user-1", b.ID, 9.5, 1, "great"); err != nil {
		t.Fatalf("Rate: %v", err)
	}
	if _, err := svc.Rate(ctx, "user-1", a.ID, 7.0, 2, "good"); err != nil {
		t.Fatalf("Rate: %v", err)
	}

	list, err := svc.ListLibrary(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListLibrary: %v", err)
	}
	if len(list) != 2 || list[0].ID != b.ID || list[1].ID != a.ID {
		t.Errorf("order = %v", []int64{list[0].ID, list[1].ID})
	}
}

func TestListStableOnEqualRatings(t *testing.T) {
	svc, _, _ := newMovieService()
	ctx := context.Background()

	a, _ := svc.Import(ctx, "user-1", 603)
	b, _ := svc.Import(ctx, "user-1", 604)

	list, err := svc.ListPublic(ctx)
	if err != nil {
		t.Fatalf("ListPublic: %v", err)
	}
	// Both at rating zero: insertion order holds.
	if list[0].ID != a.ID || list[1].ID != b.ID {
		t.Errorf("tie order = %v, want insertion order", []int64{list[0].ID, list[1].ID})
	}
}

func TestRateTouchesOnlyReviewFields(t *testing.T) {
	svc, movies, _ := newMovieService()
	ctx := context.Background()

	m, _ := svc.Import(ctx, "user-1", 603)
	if _, err := svc.Rate(ctx, "user-1", m.ID, 8.5, 3, "rewatched it twice"); err != nil {
		t.Fatalf("Rate: %v", err)
	}

	got, _ := movies.GetByID(ctx, m.ID)
	if got.Rating != 8.5 || got.Ranking != 3 || got.Review != "rewatched it twice" {
		t.Errorf("updated = %+v", got)
	}
	if got.Title != m.Title || got.Year != m.Year || got.Description != m.Description || got.PosterURL != m.PosterURL {
		t.Error("rate must not touch title/year/description/poster")
	}
}

func TestRateUnknownID(t *testing.T) {
	svc, _, _ := newMovieService()
	_, err := svc.Rate(context.Background(), "user-1", 999, 5, 1, "x")
	if !errors.Is(err, repo.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestOwnershipScoping(t *testing.T) {
	svc, _, _ := newMovieService()
	ctx := context.Background()

	m, _ := svc.Import(ctx, "user-1", 603)

	if _, err := svc.Rate(ctx, "user-2", m.ID, 1, 1, "not mine"); !errors.Is(err, ErrForbidden) {
		t.Errorf("Rate as non-owner err = %v, want ErrForbidden", err)
	}
	if err := svc.Remove(ctx, "user-2", m.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("Remove as non-owner err = %v, want ErrForbidden", err)
	}
}

func TestRemoveThenRepeatIsNotFound(t *testing.T) {
	svc, _, _ := newMovieService()
	ctx := context.Background()

	m, _ := svc.Import(ctx, "user-1", 603)
	if err := svc.Remove(ctx, "user-1", m.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	list, _ := svc.ListLibrary(ctx, "user-1")
	if len(list) != 0 {
		t.Error("entry still listed after delete")
	}
	if err := svc.Remove(ctx, "user-1", m.ID); !errors.Is(err, repo.ErrNotFound) {
		t.Errorf("repeat Remove err = %v, want ErrNotFound", err)
	}
}
