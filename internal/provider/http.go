// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/paper-analyzer/internal/httputil"
	"github.com/pdiddy/paper-analyzer/pkg/types"
)

const (
	defaultBaseURL = "https://api.x.ai/v1"
	defaultTimeout = 120 * time.Second
)

// HTTPClient talks to an OpenAI-compatible chat-completions endpoint.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	model      string
	userAgent  string
	maxRetries int
	httpc      *http.Client
}

// NewHTTPClient builds a client from the AI and HTTP configuration.
func NewHTTPClient(ai types.AIConfig, hc types.HTTPConfig) *HTTPClient {
	baseURL := strings.TrimSuffix(ai.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := hc.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPClient{
		baseURL:    baseURL,
		apiKey:     ai.APIKey,
		model:      ai.Model,
		userAgent:  hc.UserAgent,
		maxRetries: ai.MaxRetries,
		httpc:      &http.Client{Timeout: timeout},
	}
}

// chatRequest is the wire format of a chat-completions request.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the wire format of a chat-completions response.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Invoke sends one chat-completion request. The request is built on ctx,
// so cancelling ctx aborts the underlying network call.
func (c *HTTPClient) Invoke(ctx context.Context, req Request) (Response, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return Response{}, &Error{Msg: "encoding request", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return Response{}, &Error{Msg: "building request", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.httpc, httpReq, c.maxRetries)
	if err != nil {
		// Surface cancellation as-is so the engine can classify it.
		if ctx.Err() != nil {
			return Response{}, ctx.Err()
		}
		return Response{}, &Error{Msg: "sending request", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		if ctx.Err() != nil {
			return Response{}, ctx.Err()
		}
		return Response{}, &Error{Msg: "reading response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return Response{}, &Error{Status: resp.StatusCode, Msg: truncateBody(data)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return Response{}, &Error{Msg: "parsing response", Err: err}
	}
	if parsed.Error != nil {
		return Response{}, &Error{Status: resp.StatusCode, Msg: parsed.Error.Message}
	}
	if len(parsed.Choices) == 0 {
		return Response{}, &Error{Msg: "response contained no choices"}
	}

	return Response{
		Text:       parsed.Choices[0].Message.Content,
		TokensUsed: parsed.Usage.TotalTokens,
	}, nil
}

// truncateBody shortens an error body for inclusion in an error message.
func truncateBody(data []byte) string {
	s := strings.TrimSpace(string(data))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	if s == "" {
		return "empty error body"
	}
	return s
}
