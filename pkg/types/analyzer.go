// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// AnalyzerName identifies one of the fixed specialized analyzers.
type AnalyzerName string

const (
	AnalyzerAbstract         AnalyzerName = "abstract"
	AnalyzerIntroduction     AnalyzerName = "introduction"
	AnalyzerLiteratureReview AnalyzerName = "literature_review"
	AnalyzerMethodology      AnalyzerName = "methodology"
	AnalyzerResults          AnalyzerName = "results"
	AnalyzerDiscussion       AnalyzerName = "discussion"
	AnalyzerConclusion       AnalyzerName = "conclusion"
	AnalyzerReferences       AnalyzerName = "references"
	AnalyzerTables           AnalyzerName = "tables"
	AnalyzerFigures          AnalyzerName = "figures"
	AnalyzerMathematics      AnalyzerName = "mathematics"
)

// PageRange selects a span of document pages for the page-range extraction
// fallback. Start may be negative to count from the document's end (-3
// means "the last three pages"). End is exclusive; zero means "through the
// last page".
type PageRange struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Resolve maps the range onto a document with n pages, returning clamped
// [lo, hi) indices. The returned range always covers at least one page
// when n > 0.
func (r PageRange) Resolve(n int) (lo, hi int) {
	if n == 0 {
		return 0, 0
	}
	lo = r.Start
	if lo < 0 {
		lo = n + lo
	}
	if lo < 0 {
		lo = 0
	}
	if lo > n-1 {
		lo = n - 1
	}
	hi = r.End
	if hi <= 0 {
		hi = n
	}
	if hi > n {
		hi = n
	}
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

// ExtractionStrategy configures how the section extractor locates an
// analyzer's input text: exact heading aliases first, then a page range.
type ExtractionStrategy struct {
	// Aliases are the heading names tried against the document's named
	// sections, compared case-insensitively.
	Aliases []string `json:"aliases" yaml:"aliases"`

	// Pages is the fallback page range when no alias matches.
	Pages PageRange `json:"pages" yaml:"pages"`
}

// AnalyzerSpec is the static configuration for one analyzer identity.
// The full panel is fixed at process start; see the analyzer package.
type AnalyzerSpec struct {
	// Name identifies the analyzer.
	Name AnalyzerName `json:"name" yaml:"name"`

	// Strategy controls section extraction for this analyzer.
	Strategy ExtractionStrategy `json:"strategy" yaml:"strategy"`

	// MaxOutputChars truncates the extracted section text.
	MaxOutputChars int `json:"max_output_chars" yaml:"max_output_chars"`

	// Timeout is the per-invocation deadline for this analyzer.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// ContextDependent marks analyzers that are re-run in pass 2 with a
	// cross-sectional context bundle.
	ContextDependent bool `json:"context_dependent" yaml:"context_dependent"`
}

// AnalyzerStatus is the terminal state of one analyzer invocation.
type AnalyzerStatus string

const (
	StatusSuccess   AnalyzerStatus = "success"
	StatusFailed    AnalyzerStatus = "failed"
	StatusTimedOut  AnalyzerStatus = "timed_out"
	StatusCancelled AnalyzerStatus = "cancelled"
)

// AnalyzerResult is the output of one analyzer invocation. Exactly one
// result exists per analyzer per pass; the execution engine owns the
// result until it is handed to the findings registry and synthesis.
type AnalyzerResult struct {
	// Name identifies the analyzer that produced this result.
	Name AnalyzerName `json:"analyzer_name" yaml:"analyzer_name"`

	// Status is the terminal state of the invocation.
	Status AnalyzerStatus `json:"status" yaml:"status"`

	// Analysis is the parsed structured output. Nil unless Status is
	// success.
	Analysis map[string]any `json:"analysis,omitempty" yaml:"analysis,omitempty"`

	// Error records the failure message for non-success statuses.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// Elapsed is the wall time the invocation took.
	Elapsed time.Duration `json:"elapsed_time" yaml:"elapsed_time"`

	// TokensUsed is the provider-reported token count, zero on failure.
	TokensUsed int `json:"tokens_used" yaml:"tokens_used"`

	// Pass records which orchestration pass produced this result (1 or 2).
	Pass int `json:"pass" yaml:"pass"`

	// ContextUsed lists the finding ids supplied to a pass-2 invocation.
	// Empty for pass-1 results.
	ContextUsed []int64 `json:"context_used,omitempty" yaml:"context_used,omitempty"`

	// Degraded is set when section extraction fell back to a page range
	// or placeholder rather than an exact heading match.
	Degraded bool `json:"extraction_degraded,omitempty" yaml:"extraction_degraded,omitempty"`
}

// Succeeded reports whether the invocation produced usable output.
func (r AnalyzerResult) Succeeded() bool {
	return r.Status == StatusSuccess
}
