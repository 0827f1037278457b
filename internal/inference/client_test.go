package inference

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dustin/jearn-categorizer/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, url string, timeout string) *Client {
	client, err := NewClient(&config.ModelConfig{RemoteURL: url, HTTPTimeout: timeout})
	require.NoError(t, err)
	return client
}

func TestNewClient_Defaults(t *testing.T) {
	client, err := NewClient(&config.ModelConfig{})

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8001", client.BaseURL())
	assert.Equal(t, 10*time.Second, client.client.Timeout)
	assert.Equal(t, "remote", client.Name())
}

func TestNewClient_InvalidTimeout(t *testing.T) {
	_, err := NewClient(&config.ModelConfig{HTTPTimeout: "soon"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid HTTP timeout")
}

func TestClient_PredictProba_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/predict_proba", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req PredictRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hello world", req.Text)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(PredictResponse{
			Classes: []string{"math", "music"},
			Probs:   []float64{0.75, 0.25},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "5s")
	probs, err := client.PredictProba(context.Background(), "hello world")

	require.NoError(t, err)
	require.Len(t, probs, 2)
	assert.Equal(t, "math", probs[0].Label)
	assert.Equal(t, 0.75, probs[0].Probability)
	assert.Equal(t, "music", probs[1].Label)
}

func TestClient_PredictProba_WireFormat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"classes":["math","music"],"probs":[0.75,0.25]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "5s")
	probs, err := client.PredictProba(context.Background(), "hello world")

	require.NoError(t, err)
	require.Len(t, probs, 2)
	assert.Equal(t, "math", probs[0].Label)
	assert.Equal(t, 0.75, probs[0].Probability)
	assert.Equal(t, 0.25, probs[1].Probability)
}

func TestClient_PredictProba_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("model exploded"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "5s")
	probs, err := client.PredictProba(context.Background(), "text")

	assert.Error(t, err)
	assert.Nil(t, probs)
	assert.Contains(t, err.Error(), "status 500")
	assert.Contains(t, err.Error(), "model exploded")
}

func TestClient_PredictProba_MismatchedLengths(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(PredictResponse{
			Classes: []string{"a", "b"},
			Probs:   []float64{1},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "5s")
	_, err := client.PredictProba(context.Background(), "text")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "2 classes and 1 probabilities")
}

func TestClient_PredictProba_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "50ms")
	_, err := client.PredictProba(context.Background(), "text")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to make request")
}

func TestClient_HealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		json.NewEncoder(w).Encode(HealthResponse{Status: "ok", Model: "models/sns_clf5.joblib"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "5s")
	health, err := client.HealthCheck(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "models/sns_clf5.joblib", health.Model)
}

func TestClient_HealthCheck_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"status":"error","model":""}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "5s")
	health, err := client.HealthCheck(context.Background())

	assert.Error(t, err)
	assert.Nil(t, health)
	assert.Contains(t, err.Error(), "status 500")
}
