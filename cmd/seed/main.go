package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/movielog/movielog/config"
	"github.com/movielog/movielog/internal/domain/entity"
	"github.com/movielog/movielog/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@movielog.dev"
	username := "demo"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (email, username, password_hash, first_name, last_name)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE SET username = EXCLUDED.username
		RETURNING id
	`, email, username, hash, "Demo", "User").Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", userID, email, password)

	movies := []struct {
		tmdbID  int64
		title   string
		year    string
		desc    string
		rating  float64
		ranking int
		review  string
		poster  string
	}{
		{278, "The Shawshank Redemption", "1994",
			"Imprisoned in the 1940s for the double murder of his wife and her lover, banker Andy Dufresne begins a new life at Shawshank prison.",
			9.3, 1, "Hope is a good thing.", "https://image.tmdb.org/t/p/w600_and_h900_bestv2/q6y0Go1tsGEsmtFryDOJo3dEmqu.jpg"},
		{238, "The Godfather", "1972",
			"Spanning the years 1945 to 1955, a chronicle of the fictional Italian-American Corleone crime family.",
			9.2, 2, "An offer you can't refuse.", "https://image.tmdb.org/t/p/w600_and_h900_bestv2/3bhkrj58Vtu7enYsRolD1fZdja1.jpg"},
		{27205, "Inception", "2010",
			"Cobb, a skilled thief who commits corporate espionage by infiltrating the subconscious of his targets, is offered a chance to regain his old life.",
			8.8, 3, entity.ReviewNone, "https://image.tmdb.org/t/p/w600_and_h900_bestv2/oYuLEt3zVCKq57qu2F8dT7NIa6f.jpg"},
	}

	for _, m := range movies {
		var id int64
		err := db.QueryRow(`
			INSERT INTO movies (user_id, tmdb_id, title, year, description, rating, ranking, review, poster_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (title) DO UPDATE SET rating = EXCLUDED.rating, ranking = EXCLUDED.ranking
			RETURNING id
		`, userID, m.tmdbID, m.title, m.year, m.desc, m.rating, m.ranking, m.review, m.poster).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed movie %q: %v", m.title, err)
		}
		fmt.Printf("seeded movie: id=%d title=%q rating=%.1f\n", id, m.title, m.rating)
	}
}
