// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for components that make network
// requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-analyzer/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AIConfig holds shared settings for components that call the language
// model provider.
type AIConfig struct {
	// Model is the model identifier (e.g. "grok-2-latest").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the provider API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL is the provider endpoint base (e.g. "https://api.x.ai/v1").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// MaxRetries bounds retries on rate-limited HTTP responses within a
	// single invocation. Analyzer invocations themselves are never
	// retried.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// AnalysisConfig holds the settings for one analysis run.
type AnalysisConfig struct {
	AIConfig   `yaml:",inline"`
	HTTPConfig `yaml:",inline"`

	// MaxWorkers bounds how many analyzers run concurrently. The
	// effective pool size is min(MaxWorkers, analyzer count). Default 11.
	MaxWorkers int `json:"max_workers" yaml:"max_workers"`

	// AnalyzerTimeout is the per-analyzer deadline. Zero means each
	// analyzer spec's own timeout applies; non-zero overrides all specs.
	AnalyzerTimeout time.Duration `json:"per_analyzer_timeout" yaml:"per_analyzer_timeout"`

	// TotalTimeout is the whole-run deadline. Default 5 minutes.
	TotalTimeout time.Duration `json:"total_timeout" yaml:"total_timeout"`

	// EnableContextSharing turns on the two-pass run: findings are
	// extracted after pass 1 and context-dependent analyzers are
	// re-invoked with a context bundle.
	EnableContextSharing bool `json:"enable_context_sharing" yaml:"enable_context_sharing"`

	// Analyzers selects which analyzers to run. Empty means the full
	// panel.
	Analyzers []AnalyzerName `json:"analyzer_set,omitempty" yaml:"analyzer_set,omitempty"`

	// Temperature is passed to every provider call.
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// MaxTokens is the per-call response token budget.
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`
}

// Defaults used when AnalysisConfig fields are zero.
const (
	DefaultMaxWorkers      = 11
	DefaultAnalyzerTimeout = 60 * time.Second
	DefaultTotalTimeout    = 5 * time.Minute
	DefaultMaxTokens       = 4000
	DefaultTemperature     = 0.3
)

// StoreConfig holds settings for the report history store.
type StoreConfig struct {
	// Dir is the directory holding the analysis database (analysis.db).
	Dir string `json:"dir" yaml:"dir"`
}
