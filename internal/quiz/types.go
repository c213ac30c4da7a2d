package quiz

import "github.com/gokatarajesh/trivia-api/pkg/http/request"

// AnyCategoryType is the category type the web client sends for "all categories".
const AnyCategoryType = "click"

// Category identifies the category a quiz is played in.
type Category struct {
	ID   request.Int `json:"id"`
	Type string      `json:"type"`
}

// Any reports whether the category stands for every category.
func (c Category) Any() bool {
	return c.Type == AnyCategoryType || c.ID == 0
}

// Request is the body of POST /quizzes.
type Request struct {
	PreviousQuestions []request.Int `json:"previous_questions"`
	QuizCategory      *Category     `json:"quiz_category"`
}
