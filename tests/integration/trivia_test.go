//go:build integration
// +build integration

package integration

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
)

// These tests expect a server whose store was loaded with `trivia-migrator seed`.

func TestGetCategories(t *testing.T) {
	var out struct {
		Success    bool              `json:"success"`
		Categories map[string]string `json:"categories"`
	}
	if status := doJSON(t, http.MethodGet, "/categories", nil, &out); status != http.StatusOK {
		t.Fatalf("unexpected status: %d", status)
	}
	if !out.Success || len(out.Categories) == 0 {
		t.Fatalf("expected categories, got %+v", out)
	}
}

func TestGetPaginatedQuestions(t *testing.T) {
	var out questionList
	if status := doJSON(t, http.MethodGet, "/questions?page=1", nil, &out); status != http.StatusOK {
		t.Fatalf("unexpected status: %d", status)
	}
	if !out.Success || out.TotalQuestions == 0 || len(out.Questions) == 0 || len(out.Questions) > 10 {
		t.Fatalf("unexpected page: %+v", out)
	}
	if out.CurrentCategory != nil {
		t.Fatalf("current_category should be null, got %d", *out.CurrentCategory)
	}
	if len(out.Categories) == 0 {
		t.Fatal("categories missing from question listing")
	}
}

func TestGetQuestionsByCategory(t *testing.T) {
	var out questionList
	if status := doJSON(t, http.MethodGet, "/categories/1/questions", nil, &out); status != http.StatusOK {
		t.Fatalf("unexpected status: %d", status)
	}
	for _, q := range out.Questions {
		if q.Category != 1 {
			t.Fatalf("question %d belongs to category %d", q.ID, q.Category)
		}
	}
	if out.CurrentCategory == nil || *out.CurrentCategory != 1 {
		t.Fatalf("unexpected current_category: %v", out.CurrentCategory)
	}
}

func TestSearchQuestions(t *testing.T) {
	var out questionList
	status := doJSON(t, http.MethodPost, "/questions/search", map[string]string{"searchTerm": "who"}, &out)
	if status != http.StatusOK {
		t.Fatalf("unexpected status: %d", status)
	}
	if out.TotalQuestions < 1 {
		t.Fatal("expected at least one match")
	}
	found := false
	for _, q := range out.Questions {
		if !strings.Contains(strings.ToLower(q.Question), "who") {
			t.Fatalf("question %q does not match", q.Question)
		}
		if q.Question == "Who discovered penicillin?" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected the penicillin question in search results")
	}
}

func TestCreateAndDeleteQuestion(t *testing.T) {
	text := fmt.Sprintf("Integration question %s?", t.Name())
	var created struct {
		Success bool `json:"success"`
		Created int  `json:"created"`
	}
	payload := map[string]interface{}{"question": text, "answer": "yes", "difficulty": 1, "category": 1}
	if status := doJSON(t, http.MethodPost, "/questions", payload, &created); status != http.StatusOK {
		t.Fatalf("create failed: %d", status)
	}
	if !created.Success || created.Created == 0 {
		t.Fatalf("unexpected create response: %+v", created)
	}

	var found questionList
	if status := doJSON(t, http.MethodPost, "/questions/search", map[string]string{"searchTerm": text}, &found); status != http.StatusOK {
		t.Fatalf("created question not searchable: %d", status)
	}
	if len(found.Questions) != 1 || found.Questions[0].ID != created.Created {
		t.Fatalf("unexpected search result: %+v", found.Questions)
	}

	var deleted struct {
		Success bool `json:"success"`
		Deleted int  `json:"deleted"`
	}
	path := fmt.Sprintf("/questions/%d", created.Created)
	if status := doJSON(t, http.MethodDelete, path, nil, &deleted); status != http.StatusOK {
		t.Fatalf("delete failed: %d", status)
	}
	if deleted.Deleted != created.Created {
		t.Fatalf("deleted %d, want %d", deleted.Deleted, created.Created)
	}
	expectError(t, http.MethodDelete, path, nil, http.StatusUnprocessableEntity)
}

func TestPlayQuiz(t *testing.T) {
	previous := []int{}
	seen := map[int]bool{}
	for {
		var out struct {
			Success  bool            `json:"success"`
			Question *triviaQuestion `json:"question"`
		}
		payload := map[string]interface{}{
			"previous_questions": previous,
			"quiz_category":      map[string]interface{}{"id": "1", "type": "Science"},
		}
		if status := doJSON(t, http.MethodPost, "/quizzes", payload, &out); status != http.StatusOK {
			t.Fatalf("quiz request failed: %d", status)
		}
		if out.Question == nil {
			break
		}
		if seen[out.Question.ID] {
			t.Fatalf("question %d repeated", out.Question.ID)
		}
		seen[out.Question.ID] = true
		previous = append(previous, out.Question.ID)
	}
	if len(seen) == 0 {
		t.Fatal("quiz returned no questions for category 1")
	}
}
