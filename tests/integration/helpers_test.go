//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"testing"
)

type triviaQuestion struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

type questionList struct {
	Success         bool              `json:"success"`
	Questions       []triviaQuestion  `json:"questions"`
	TotalQuestions  int               `json:"total_questions"`
	Categories      map[string]string `json:"categories"`
	CurrentCategory *int              `json:"current_category"`
}

type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func baseURL() string {
	return envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8080")
}

// doJSON sends payload (when non-nil) and decodes the response body into out.
func doJSON(t *testing.T, method, path string, payload interface{}, out interface{}) int {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, baseURL()+path, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s response: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func expectError(t *testing.T, method, path string, payload interface{}, status int) {
	t.Helper()
	var env errorEnvelope
	if got := doJSON(t, method, path, payload, &env); got != status {
		t.Fatalf("%s %s: expected %d, got %d", method, path, status, got)
	}
	if env.Success || env.Error != status || env.Message == "" {
		t.Fatalf("%s %s: unexpected error envelope %+v", method, path, env)
	}
}
