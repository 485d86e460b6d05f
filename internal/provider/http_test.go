// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

func completionBody(content string, tokens int) string {
	raw, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
		"usage": map[string]any{"total_tokens": tokens},
	})
	return string(raw)
}

func TestInvokeSuccess(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "paper-analyzer/test", r.Header.Get("User-Agent"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(completionBody(`{"ok": true}`, 42)))
	}))
	defer srv.Close()

	c := NewHTTPClient(
		types.AIConfig{Model: "grok-2-latest", APIKey: "test-key", BaseURL: srv.URL},
		types.HTTPConfig{UserAgent: "paper-analyzer/test"},
	)

	resp, err := c.Invoke(context.Background(), Request{
		System:      "you are an analyst",
		User:        "analyze this",
		MaxTokens:   500,
		Temperature: 0.3,
	})
	require.NoError(t, err)

	assert.Equal(t, `{"ok": true}`, resp.Text)
	assert.Equal(t, 42, resp.TokensUsed)

	assert.Equal(t, "grok-2-latest", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "you are an analyst", got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, 500, got.MaxTokens)
	assert.InDelta(t, 0.3, got.Temperature, 1e-9)
}

func TestInvokeHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewHTTPClient(types.AIConfig{BaseURL: srv.URL}, types.HTTPConfig{})

	_, err := c.Invoke(context.Background(), Request{User: "x"})
	require.Error(t, err)

	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, http.StatusServiceUnavailable, perr.Status)
	assert.Contains(t, perr.Error(), "model overloaded")
}

func TestInvokeAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": {"message": "invalid model"}}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(types.AIConfig{BaseURL: srv.URL}, types.HTTPConfig{})

	_, err := c.Invoke(context.Background(), Request{User: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid model")
}

func TestInvokeNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(types.AIConfig{BaseURL: srv.URL}, types.HTTPConfig{})

	_, err := c.Invoke(context.Background(), Request{User: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestInvokeContextCancelled(t *testing.T) {
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server watches for client disconnect;
		// otherwise r.Context() is never cancelled and srv.Close hangs.
		io.Copy(io.Discard, r.Body)
		close(started)
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := NewHTTPClient(types.AIConfig{BaseURL: srv.URL}, types.HTTPConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := c.Invoke(ctx, Request{User: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInvokeUnparseableResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	c := NewHTTPClient(types.AIConfig{BaseURL: srv.URL}, types.HTTPConfig{})

	_, err := c.Invoke(context.Background(), Request{User: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing response")
}

func TestNewHTTPClientDefaults(t *testing.T) {
	c := NewHTTPClient(types.AIConfig{BaseURL: "https://example.test/v1/"}, types.HTTPConfig{})
	assert.Equal(t, "https://example.test/v1", c.baseURL)
	assert.Equal(t, 120*time.Second, c.httpc.Timeout)

	c = NewHTTPClient(types.AIConfig{}, types.HTTPConfig{Timeout: 5 * time.Second})
	assert.Equal(t, "https://api.x.ai/v1", c.baseURL)
	assert.Equal(t, 5*time.Second, c.httpc.Timeout)
}
