package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dustin/jearn-categorizer/config"
	"github.com/dustin/jearn-categorizer/internal/model"
)

// Client talks to a remote inference service that hosts the pipeline
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a remote inference client with validation and defaults
func NewClient(cfg *config.ModelConfig) (*Client, error) {
	baseURL := "http://localhost:8001"
	if cfg != nil && cfg.RemoteURL != "" {
		baseURL = cfg.RemoteURL
	}

	var timeout time.Duration = 10 * time.Second
	if cfg != nil && cfg.HTTPTimeout != "" {
		d, err := time.ParseDuration(cfg.HTTPTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid HTTP timeout '%s': %v", cfg.HTTPTimeout, err)
		}
		timeout = d
	}

	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// PredictRequest represents a single text probability request
type PredictRequest struct {
	Text string `json:"text"`
}

// PredictResponse carries one probability per class, aligned by index
type PredictResponse struct {
	Classes []string  `json:"classes"`
	Probs   []float64 `json:"probs"`
	Model   string    `json:"model,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string `json:"status"`
	Model  string `json:"model"`
}

func (c *Client) Name() string {
	return "remote"
}

// BaseURL returns the inference service address
func (c *Client) BaseURL() string {
	return c.baseURL
}

// PredictProba asks the remote service for class probabilities
func (c *Client) PredictProba(ctx context.Context, text string) ([]model.ClassProbability, error) {
	jsonData, err := json.Marshal(PredictRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict_proba", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("inference service error (status %d): %s", resp.StatusCode, string(body))
	}

	var predictResp PredictResponse
	if err := json.NewDecoder(resp.Body).Decode(&predictResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(predictResp.Classes) != len(predictResp.Probs) {
		return nil, fmt.Errorf("inference service returned %d classes and %d probabilities",
			len(predictResp.Classes), len(predictResp.Probs))
	}

	out := make([]model.ClassProbability, len(predictResp.Classes))
	for i, label := range predictResp.Classes {
		out[i] = model.ClassProbability{Label: label, Probability: predictResp.Probs[i]}
	}
	return out, nil
}

// HealthCheck checks if the inference service is healthy
func (c *Client) HealthCheck(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build health check request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make health check request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("inference service unhealthy (status %d): %s", resp.StatusCode, string(body))
	}

	var healthResp HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&healthResp); err != nil {
		return nil, fmt.Errorf("failed to decode health response: %w", err)
	}

	return &healthResp, nil
}
