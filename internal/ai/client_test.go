package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vetbook-service/internal/models"
)

func TestAnalyze(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "symptoms", req["consultation_reason"])

		json.NewEncoder(w).Encode(AnalysisResult{
			UrgencyScore:       7,
			PriorityLevel:      "high",
			AnalysisSummary:    "boiterie avec douleur",
			RecommendedActions: []string{"consultation rapide"},
		})
	}))
	defer srv.Close()

	client := New(srv.URL, srv.URL, time.Second)

	result, err := client.Analyze(context.Background(), &models.Booking{
		Reason:   "symptoms",
		Symptoms: []string{"boiterie"},
	})
	require.NoError(t, err)

	assert.Equal(t, 7, result.UrgencyScore)
	assert.Equal(t, "boiterie avec douleur", result.AnalysisSummary)
}

func TestAnalyze_ClampsScore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(AnalysisResult{UrgencyScore: 42})
	}))
	defer srv.Close()

	client := New(srv.URL, srv.URL, time.Second)

	result, err := client.Analyze(context.Background(), &models.Booking{})
	require.NoError(t, err)
	assert.Equal(t, 10, result.UrgencyScore)
}

func TestAnalyze_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := New(srv.URL, srv.URL, time.Second)

	_, err := client.Analyze(context.Background(), &models.Booking{})
	assert.Error(t, err)
}

func TestAdvice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"advice": "Surveillez la patte et limitez l'exercice."})
	}))
	defer srv.Close()

	client := New(srv.URL, srv.URL, time.Second)

	advice, err := client.Advice(context.Background(), &models.Booking{})
	require.NoError(t, err)
	assert.Equal(t, "Surveillez la patte et limitez l'exercice.", advice)
}
