package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLLMService(t *testing.T) {
	t.Run("should create service with API key", func(t *testing.T) {
		svc, err := NewLLMService(LLMConfig{APIKey: "test-api-key"}, zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, DefaultLLMAPIURL, svc.apiURL)
		assert.Equal(t, DefaultLLMModel, svc.model)
		assert.Equal(t, 60*time.Second, svc.client.Timeout)
	})

	t.Run("should fail without API key", func(t *testing.T) {
		svc, err := NewLLMService(LLMConfig{}, zap.NewNop())
		assert.Error(t, err)
		assert.Nil(t, svc)
	})
}

func TestLLMService_Complete(t *testing.T) {
	var got Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"content":"{\"name\":\"Mock Recipe\"}"}}]}`)
	}))
	defer ts.Close()

	svc, err := NewLLMService(LLMConfig{APIKey: "secret-key", APIURL: ts.URL, Model: "test-model"}, zap.NewNop())
	require.NoError(t, err)

	text, err := svc.Complete(context.Background(), "make soup")
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Mock Recipe"}`, text)

	assert.Equal(t, "test-model", got.Model)
	assert.Equal(t, 0.7, got.Temperature)
	assert.Equal(t, 500, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "make soup", got.Messages[1].Content)
}

func TestLLMService_CompleteFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"rate limited", http.StatusTooManyRequests, `{"error":"slow down"}`, "status 429"},
		{"unauthorized", http.StatusUnauthorized, `{"error":"bad key"}`, "status 401"},
		{"no choices", http.StatusOK, `{"choices":[]}`, "no response from API"},
		{"garbage body", http.StatusOK, `<html>`, "failed to decode response"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer ts.Close()

			svc, err := NewLLMService(LLMConfig{APIKey: "k", APIURL: ts.URL}, zap.NewNop())
			require.NoError(t, err)

			_, err = svc.Complete(context.Background(), "prompt")
			var rerr *RemoteCallError
			require.True(t, errors.As(err, &rerr))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLLMService_CompleteUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	svc, err := NewLLMService(LLMConfig{APIKey: "k", APIURL: url}, zap.NewNop())
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), "prompt")
	var rerr *RemoteCallError
	assert.True(t, errors.As(err, &rerr))
}
