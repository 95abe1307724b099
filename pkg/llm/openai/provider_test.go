package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Adsharma18/AiCareerCoachClean/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_Chat(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Month 1: basics"}}]}`))
	}))
	defer srv.Close()

	p := NewProvider("secret", srv.URL+"/", "llama-3.1-8b-instant")
	reply, err := p.Chat(context.Background(),
		[]llm.Message{{Role: llm.RoleUser, Content: "hi"}},
		llm.WithTemperature(0.6),
		llm.WithMaxTokens(800),
	)

	require.NoError(t, err)
	assert.Equal(t, "Month 1: basics", reply)
	assert.Equal(t, "llama-3.1-8b-instant", got.Model)
	assert.Equal(t, 0.6, got.Temperature)
	assert.Equal(t, 800, got.MaxTokens)
	assert.Equal(t, []llm.Message{{Role: llm.RoleUser, Content: "hi"}}, got.Messages)
}

func TestProvider_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		errMsg string
	}{
		{"http status", http.StatusTooManyRequests, `{"error":{"message":"rate limit"}}`, "status 429"},
		{"error field", http.StatusOK, `{"error":{"message":"bad model"}}`, "bad model"},
		{"no choices", http.StatusOK, `{"choices":[]}`, "empty choices"},
		{"not json", http.StatusOK, `<html>`, "failed to decode response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewProvider("k", srv.URL, "m").Chat(context.Background(), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestNewProvider_DefaultsToGroq(t *testing.T) {
	p := NewProvider("k", "", "m")
	assert.Equal(t, GroqBaseURL, p.baseURL)
}
