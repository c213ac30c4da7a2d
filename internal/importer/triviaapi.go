package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// TriviaAPIClient integrates with the-trivia-api.com. The API key is optional.
type TriviaAPIClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewTriviaAPIClient(baseURL, apiKey string, httpClient *http.Client) *TriviaAPIClient {
	if baseURL == "" {
		baseURL = "https://the-trivia-api.com/v2"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &TriviaAPIClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

type triviaAPIQuestion struct {
	ID         string `json:"id"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
	Question   struct {
		Text string `json:"text"`
	} `json:"question"`
	Correct string `json:"correctAnswer"`
}

func (c *TriviaAPIClient) Name() string { return "triviaapi" }

func (c *TriviaAPIClient) Fetch(ctx context.Context, amount int) ([]Question, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/questions?limit=%d", c.baseURL, amount), nil)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("triviaapi non-200: %d", resp.StatusCode)
	}

	var payload []triviaAPIQuestion
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	out := make([]Question, 0, len(payload))
	for _, p := range payload {
		// categories arrive as slugs such as "science" or "film_and_tv"
		out = append(out, normalize(p.Question.Text, p.Correct, strings.ReplaceAll(p.Category, "_", " "), p.Difficulty))
	}
	return out, nil
}
