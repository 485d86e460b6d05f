// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Rating is a coarse three-level assessment on one quality axis.
type Rating string

const (
	RatingHigh   Rating = "high"
	RatingMedium Rating = "medium"
	RatingLow    Rating = "low"
)

// Assessment is the four-axis quality rating produced by synthesis.
type Assessment struct {
	Quality Rating `json:"quality" yaml:"quality"`
	Novelty Rating `json:"novelty" yaml:"novelty"`
	Impact  Rating `json:"impact" yaml:"impact"`
	Rigor   Rating `json:"rigor" yaml:"rigor"`
}

// Synthesis aggregates the successful analyzer outputs into an executive
// view of the paper.
type Synthesis struct {
	// ExecutiveSummary is a prose overview assembled from the
	// section analyses.
	ExecutiveSummary string `json:"executive_summary" yaml:"executive_summary"`

	// KeyContributions lists the paper's stated contributions.
	KeyContributions []string `json:"key_contributions" yaml:"key_contributions"`

	// Assessment is the four-axis rating.
	Assessment Assessment `json:"overall_assessment" yaml:"overall_assessment"`

	// ReducedCoverage names analyzers whose output was unavailable, so
	// readers can judge how complete the synthesis is.
	ReducedCoverage []AnalyzerName `json:"reduced_coverage,omitempty" yaml:"reduced_coverage,omitempty"`
}

// IssueSeverity grades a validation issue.
type IssueSeverity string

const (
	SeverityCritical IssueSeverity = "critical"
	SeverityWarning  IssueSeverity = "warning"
	SeverityInfo     IssueSeverity = "info"
)

// ValidationIssue is one consistency problem detected across the analyzer
// outputs.
type ValidationIssue struct {
	// Severity grades the issue: critical, warning, or info.
	Severity IssueSeverity `json:"severity" yaml:"severity"`

	// Category groups the issue: consistency, completeness, coherence,
	// or quality.
	Category string `json:"category" yaml:"category"`

	// Section names the affected section or sections.
	Section string `json:"section" yaml:"section"`

	// Message describes the issue.
	Message string `json:"message" yaml:"message"`

	// Recommendation suggests how to address it.
	Recommendation string `json:"recommendation,omitempty" yaml:"recommendation,omitempty"`
}

// Validation is the consistency-check report with its numeric score.
type Validation struct {
	// Score is the quality score in [0, 100]: 100 minus 15 per
	// critical issue, 8 per warning, and 3 per info item.
	Score int `json:"score" yaml:"score"`

	// Issues lists every detected issue.
	Issues []ValidationIssue `json:"issues" yaml:"issues"`

	// PassedChecks counts checks that raised no critical issue.
	PassedChecks int `json:"passed_checks" yaml:"passed_checks"`
}

// Metrics aggregates run-level accounting for a report.
type Metrics struct {
	// TotalTime is the wall time of the whole run.
	TotalTime time.Duration `json:"total_time" yaml:"total_time"`

	// TotalTokens sums the tokens used by successful analyzers.
	TotalTokens int `json:"total_tokens" yaml:"total_tokens"`

	// EstimatedCost approximates the provider cost in USD.
	EstimatedCost float64 `json:"estimated_cost" yaml:"estimated_cost"`

	// SuccessfulAnalyzers counts analyzers that produced output.
	SuccessfulAnalyzers int `json:"successful_analyzers" yaml:"successful_analyzers"`

	// FailedAnalyzers counts analyzers that did not.
	FailedAnalyzers int `json:"failed_analyzers" yaml:"failed_analyzers"`

	// ContextFindings summarizes the findings registry when context
	// sharing was enabled.
	ContextFindings *SummaryStatistics `json:"context_findings,omitempty" yaml:"context_findings,omitempty"`
}

// AnalysisReport is the final aggregate handed to the caller. It is
// immutable after the run completes. Results always contains one entry
// per requested analyzer, regardless of individual failures.
type AnalysisReport struct {
	// RunID uniquely identifies this analysis run.
	RunID string `json:"run_id" yaml:"run_id"`

	// Meta is the analyzed document's metadata.
	Meta PaperMeta `json:"paper_metadata" yaml:"paper_metadata"`

	// Success reports whether at least one analyzer succeeded.
	Success bool `json:"success" yaml:"success"`

	// Results holds the latest result per requested analyzer. For
	// context-dependent analyzers re-run in pass 2, this is the pass-2
	// result.
	Results map[AnalyzerName]AnalyzerResult `json:"analysis_results" yaml:"analysis_results"`

	// FirstPass preserves the pass-1 result for any analyzer whose
	// Results entry was produced by pass 2, so raw and context-enriched
	// output stay distinguishable.
	FirstPass map[AnalyzerName]AnalyzerResult `json:"first_pass,omitempty" yaml:"first_pass,omitempty"`

	// ContextMap is the cross-reference map, present when context
	// sharing was enabled.
	ContextMap CrossReferenceMap `json:"context_map,omitempty" yaml:"context_map,omitempty"`

	// Findings is the full finding collection, present when context
	// sharing was enabled.
	Findings []Finding `json:"findings,omitempty" yaml:"findings,omitempty"`

	// Synthesis is the executive view built from successful outputs.
	Synthesis Synthesis `json:"synthesis" yaml:"synthesis"`

	// Validation is the consistency-check report.
	Validation Validation `json:"validation" yaml:"validation"`

	// Metrics is the run-level accounting.
	Metrics Metrics `json:"metrics" yaml:"metrics"`

	// CreatedAt is when the run started.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
