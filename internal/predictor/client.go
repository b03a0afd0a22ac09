// Package predictor is the HTTP client for the external spending-prediction
// service. The service's response shape is owned by that service; the client
// passes successful bodies through verbatim and reports everything else as an
// error for the caller to recover from.
package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ExpenseRecord is the minimal projection of an expense sent to the
// prediction service.
type ExpenseRecord struct {
	Amount   float64   `json:"amount"`
	Category string    `json:"category"`
	Date     time.Time `json:"date"`
}

// Request is the body POSTed to {baseURL}/predict.
type Request struct {
	Expenses     []ExpenseRecord `json:"expenses"`
	Budget       float64         `json:"budget"`
	TripDuration int             `json:"trip_duration"`
}

// Client calls the prediction service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a Client for the service at baseURL (no trailing slash).
// The client times out after 10 seconds; there are no retries — callers fall
// back to a local heuristic on any failure.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Predict sends the request to the service and returns the raw response body.
// The body is not validated or reshaped. Any network failure or non-2xx
// status is returned as an error.
func (c *Client) Predict(ctx context.Context, req Request) (json.RawMessage, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("predictor.Client.Predict: marshal: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("predictor.Client.Predict: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("predictor.Client.Predict: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("predictor.Client.Predict: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("predictor.Client.Predict: status %d: %s", resp.StatusCode, body)
	}

	return body, nil
}
