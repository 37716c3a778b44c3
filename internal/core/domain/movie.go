package domain

import "time"

// Movie is a catalog record. Business semantics live in the handlers; the
// core only needs a stable ID and an owner-free shape (movies are
// admin-managed, not user-owned).
type Movie struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Year      int       `json:"year"`
	Overview  string    `json:"overview,omitempty"`
	PosterURL string    `json:"poster_url,omitempty"`
	GenreIDs  []string  `json:"genre_ids,omitempty"`
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Genre is a catalog classification label.
type Genre struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Favorite links a user to a movie. UserID is the ownership anchor the
// guards check against.
type Favorite struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	MovieID   string    `json:"movie_id"`
	CreatedAt time.Time `json:"created_at"`
}
