package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"vetbook-service/internal/models"
)

// AnalysisResult is what the external analysis service returns for a
// submitted booking, eventually.
type AnalysisResult struct {
	UrgencyScore       int      `json:"urgency_score"`
	PriorityLevel      string   `json:"priority_level"`
	AnalysisSummary    string   `json:"analysis_summary"`
	RecommendedActions []string `json:"recommended_actions"`
}

type analysisRequest struct {
	Reason        string            `json:"consultation_reason"`
	Symptoms      []string          `json:"symptoms"`
	CustomSymptom string            `json:"custom_symptom"`
	Answers       map[string]string `json:"answers"`
	AnimalSpecies string            `json:"animal_species"`
}

type adviceResponse struct {
	Advice string `json:"advice"`
}

// Client talks to the external AI analysis and advice services. Failures are
// returned as-is and never retried here; booking creation does not depend on
// either call succeeding.
type Client struct {
	analysisURL string
	adviceURL   string
	http        *http.Client
}

func New(analysisURL, adviceURL string, timeout time.Duration) *Client {
	return &Client{
		analysisURL: analysisURL,
		adviceURL:   adviceURL,
		http:        &http.Client{Timeout: timeout},
	}
}

func (c *Client) Analyze(ctx context.Context, booking *models.Booking) (*AnalysisResult, error) {
	const op = "ai.Client.Analyze"

	var result AnalysisResult
	err := c.post(ctx, c.analysisURL, analysisRequest{
		Reason:        booking.Reason,
		Symptoms:      booking.Symptoms,
		CustomSymptom: booking.CustomSymptom,
		Answers:       booking.Answers,
		AnimalSpecies: booking.AnimalSpecies,
	}, &result)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if result.UrgencyScore < 0 {
		result.UrgencyScore = 0
	}
	if result.UrgencyScore > 10 {
		result.UrgencyScore = 10
	}

	return &result, nil
}

// Advice fetches the display-only advice text. Purely additive: the caller
// shows an unavailable state on error.
func (c *Client) Advice(ctx context.Context, booking *models.Booking) (string, error) {
	const op = "ai.Client.Advice"

	var result adviceResponse
	err := c.post(ctx, c.adviceURL, analysisRequest{
		Reason:        booking.Reason,
		Symptoms:      booking.Symptoms,
		CustomSymptom: booking.CustomSymptom,
		Answers:       booking.Answers,
		AnimalSpecies: booking.AnimalSpecies,
	}, &result)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return result.Advice, nil
}

func (c *Client) post(ctx context.Context, url string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
