package entity

import "time"

// ReviewNone is the placeholder review text for a freshly imported movie.
const ReviewNone = "NONE"

// Movie is one entry in a user's library. Title, Year, Description and
// PosterURL come from the catalog at import time; Rating, Ranking and
// Review are the only fields a user edits afterwards.
type Movie struct {
	ID          int64
	UserID      string
	TMDBID      int64
	Title       string
	Year        string
	Description string
	Rating      float64
	Ranking     int
	Review      string
	PosterURL   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
