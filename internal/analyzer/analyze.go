// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyzer

import (
	"context"
	"fmt"

	"github.com/pdiddy/paper-analyzer/internal/provider"
	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// Options carry the generation parameters shared by every invocation.
type Options struct {
	MaxTokens   int
	Temperature float64
}

// Analyze runs one analyzer against its extracted section text and
// returns the decoded analysis plus the tokens consumed. contextBundle
// is empty on the first pass. Cancellation of ctx aborts the underlying
// model call.
func Analyze(ctx context.Context, client provider.Client, spec types.AnalyzerSpec, sectionText string, meta types.PaperMeta, contextBundle string, opts Options) (map[string]any, int, error) {
	req := provider.Request{
		System:      SystemPrompt(spec.Name),
		User:        UserPrompt(spec.Name, sectionText, meta, contextBundle),
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	}

	resp, err := client.Invoke(ctx, req)
	if err != nil {
		return nil, 0, fmt.Errorf("analyzer %s: %w", spec.Name, err)
	}

	analysis, err := ParseAnalysis(resp.Text)
	if err != nil {
		return nil, resp.TokensUsed, fmt.Errorf("analyzer %s: %w", spec.Name, err)
	}
	return analysis, resp.TokensUsed, nil
}
