// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package provider abstracts the language-model API behind a small
// interface so the engine and tests can supply alternative backends.
package provider

import (
	"context"
	"fmt"
)

// Request is one chat-completion call.
type Request struct {
	// System is the system prompt.
	System string

	// User is the user prompt.
	User string

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature controls sampling randomness.
	Temperature float64
}

// Response is the provider's answer to one Request.
type Response struct {
	// Text is the raw completion text.
	Text string

	// TokensUsed is the provider-reported total token count.
	TokensUsed int
}

// Client invokes the language model. Implementations must honor context
// cancellation: when ctx is done the in-flight call is torn down and
// Invoke returns promptly with ctx's error.
type Client interface {
	Invoke(ctx context.Context, req Request) (Response, error)
}

// Error is a provider-level failure: a network error, a non-2xx HTTP
// status, or an unparseable response body.
type Error struct {
	// Status is the HTTP status code, zero for transport errors.
	Status int

	// Msg describes the failure.
	Msg string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("provider: HTTP %d: %s", e.Status, e.Msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("provider: %s: %v", e.Msg, e.Err)
	}
	return "provider: " + e.Msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }
