package question

import (
	"github.com/gokatarajesh/trivia-api/internal/db"
	"github.com/gokatarajesh/trivia-api/pkg/http/request"
)

// Question is the formatted representation delivered to clients.
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// FromRow formats a stored row.
func FromRow(row db.Question) Question {
	return Question{
		ID:         int(row.ID),
		Question:   row.Question,
		Answer:     row.Answer,
		Category:   int(row.Category),
		Difficulty: int(row.Difficulty),
	}
}

// Page is one slice of an ordered result set plus the size of the whole set.
type Page struct {
	Questions []Question
	Total     int
}

// CreateRequest is the POST /questions body. Fields are not validated;
// absent ones reach the store as NULL.
type CreateRequest struct {
	Question   *string      `json:"question"`
	Answer     *string      `json:"answer"`
	Difficulty *request.Int `json:"difficulty"`
	Category   *request.Int `json:"category"`
}

// SearchRequest is the POST /questions/search body.
type SearchRequest struct {
	SearchTerm string `json:"searchTerm"`
}
