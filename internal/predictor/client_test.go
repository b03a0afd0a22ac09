package predictor_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripwise/backend/internal/predictor"
)

func sampleRequest() predictor.Request {
	return predictor.Request{
		Expenses: []predictor.ExpenseRecord{
			{Amount: 100, Category: "food", Date: time.Date(2026, 6, 2, 12, 0, 0, 0, time.UTC)},
			{Amount: 50, Category: "transport", Date: time.Date(2026, 6, 3, 9, 0, 0, 0, time.UTC)},
		},
		Budget:       200,
		TripDuration: 14,
	}
}

// TestClient_Predict_SendsContractBody verifies the wire contract: POST to
// /predict with {expenses, budget, trip_duration} and the minimal expense
// projection.
func TestClient_Predict_SendsContractBody(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"predicted_spending": 180}`))
	}))
	defer srv.Close()

	c := predictor.NewClient(srv.URL)
	_, err := c.Predict(context.Background(), sampleRequest())

	require.NoError(t, err)
	assert.Equal(t, "/predict", gotPath)
	assert.EqualValues(t, 200, gotBody["budget"])
	assert.EqualValues(t, 14, gotBody["trip_duration"])

	expenses, ok := gotBody["expenses"].([]any)
	require.True(t, ok)
	require.Len(t, expenses, 2)
	first, ok := expenses[0].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 100, first["amount"])
	assert.Equal(t, "food", first["category"])
	assert.Contains(t, first, "date")
}

// TestClient_Predict_PassesBodyThroughVerbatim verifies that a 2xx response
// body is returned byte-for-byte, including fields this codebase knows
// nothing about.
func TestClient_Predict_PassesBodyThroughVerbatim(t *testing.T) {
	const body = `{"predicted_spending":123.4,"budget_status":"under_budget","model_version":"v7","extra":[1,2,3]}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer srv.Close()

	c := predictor.NewClient(srv.URL)
	got, err := c.Predict(context.Background(), sampleRequest())

	require.NoError(t, err)
	assert.JSONEq(t, body, string(got))
}

func TestClient_Predict_Non2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := predictor.NewClient(srv.URL)
	_, err := c.Predict(context.Background(), sampleRequest())

	require.Error(t, err)
	assert.ErrorContains(t, err, "status 500")
}

func TestClient_Predict_UnreachableServerIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // close immediately — connection refused

	c := predictor.NewClient(srv.URL)
	_, err := c.Predict(context.Background(), sampleRequest())

	require.Error(t, err)
}
