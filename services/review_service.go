package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"hotel-frontdesk/models"
)

// Reviewer flags incomplete or suspicious booking form fields. Its output is
// advisory only and never reaches the store.
type Reviewer interface {
	Review(ctx context.Context, form models.BookingForm) (models.ReviewResult, error)
}

// NoopReviewer never flags anything.
type NoopReviewer struct{}

func (NoopReviewer) Review(context.Context, models.BookingForm) (models.ReviewResult, error) {
	return models.ReviewResult{Flags: []models.ReviewFlag{}}, nil
}

// AIResponse is the envelope returned by the AI endpoint.
type AIResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// HTTPReviewer asks an external AI endpoint to review the form.
type HTTPReviewer struct {
	Endpoint string
	APIKey   string
	Model    string
	Client   *http.Client
}

func NewHTTPReviewer(endpoint, apiKey string, timeout time.Duration) *HTTPReviewer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPReviewer{
		Endpoint: endpoint,
		APIKey:   apiKey,
		Model:    "booking-review-v1",
		Client:   &http.Client{Timeout: timeout},
	}
}

const reviewInstructions = "You are a hotel manager reviewing a booking form. " +
	"Flag any fields that are incomplete or suspicious and be concise in your reasoning. " +
	"If a field looks ok then do not flag it."

func (r *HTTPReviewer) Review(ctx context.Context, form models.BookingForm) (models.ReviewResult, error) {
	payload := map[string]interface{}{
		"model":        r.Model,
		"instructions": reviewInstructions,
		"input":        form,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return models.ReviewResult{}, fmt.Errorf("marshal review request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.Endpoint, bytes.NewReader(b))
	if err != nil {
		return models.ReviewResult{}, fmt.Errorf("cannot build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.APIKey != "" {
		req.Header.Set("x-api-key", r.APIKey)
	}

	resp, err := r.Client.Do(req)
	if err != nil {
		return models.ReviewResult{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.ReviewResult{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.ReviewResult{}, fmt.Errorf("HTTP error %d: %s", resp.StatusCode, string(body))
	}

	var env AIResponse
	if err := json.Unmarshal(body, &env); err != nil {
		return models.ReviewResult{}, fmt.Errorf("JSON parse error: %w", err)
	}
	if env.Status != "" && env.Status != "success" {
		return models.ReviewResult{}, fmt.Errorf("API status error: %s - %s", env.Status, env.Message)
	}

	// endpoints answer either {"status":..,"data":{"flags":..}} or {"flags":..}
	raw := []byte(env.Data)
	if len(env.Data) == 0 {
		raw = body
	}
	var result models.ReviewResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return models.ReviewResult{}, fmt.Errorf("JSON parse error: %w", err)
	}
	if result.Flags == nil {
		result.Flags = []models.ReviewFlag{}
	}
	return result, nil
}
