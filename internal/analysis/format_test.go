// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

func TestFormatReportMixedStatuses(t *testing.T) {
	report := &types.AnalysisReport{
		RunID: "run-42",
		Meta:  types.PaperMeta{Title: "Adaptive Schedules", Authors: []string{"R. Calder"}, Year: 2025},
		Results: map[types.AnalyzerName]types.AnalyzerResult{
			types.AnalyzerAbstract: {
				Name:       types.AnalyzerAbstract,
				Status:     types.StatusSuccess,
				Analysis:   map[string]any{"research_objective": "faster training", "key_findings": []any{"converges in half the steps"}},
				TokensUsed: 120,
				Elapsed:    2 * time.Second,
				Pass:       1,
			},
			types.AnalyzerDiscussion: {
				Name:        types.AnalyzerDiscussion,
				Status:      types.StatusSuccess,
				Analysis:    map[string]any{"practical_implications": []any{"cheaper runs"}},
				Pass:        2,
				ContextUsed: []int64{1},
				Degraded:    true,
			},
			types.AnalyzerResults: {
				Name:   types.AnalyzerResults,
				Status: types.StatusTimedOut,
				Error:  "analysis timed out after 30s",
				Pass:   1,
			},
		},
		Synthesis: types.Synthesis{
			ExecutiveSummary: "The paper was analyzed section by section.",
			KeyContributions: []string{"an adaptive schedule"},
			Assessment:       types.Assessment{Quality: types.RatingHigh, Novelty: types.RatingMedium, Impact: types.RatingLow, Rigor: types.RatingMedium},
			ReducedCoverage:  []types.AnalyzerName{types.AnalyzerResults},
		},
		Validation: types.Validation{
			Score:        92,
			PassedChecks: 6,
			Issues: []types.ValidationIssue{{
				Severity:       types.SeverityWarning,
				Category:       "completeness",
				Section:        "results",
				Message:        "Incomplete analysis for sections: results",
				Recommendation: "Check source document quality for these sections",
			}},
		},
		Metrics: types.Metrics{
			TotalTime:           10 * time.Second,
			TotalTokens:         120,
			EstimatedCost:       0.00108,
			SuccessfulAnalyzers: 2,
			FailedAnalyzers:     1,
		},
	}

	out := FormatReport(report)

	for _, want := range []string{
		"PAPER ANALYSIS REPORT",
		"Run: run-42",
		"Title: Adaptive Schedules",
		"Authors: R. Calder",
		"Year: 2025",
		"Analyzers: 2 successful, 1 failed",
		"The paper was analyzed section by section.",
		"1. an adaptive schedule",
		"quality=high novelty=medium impact=low rigor=medium",
		"Reduced coverage: results",
		"ABSTRACT",
		"ok (2.00s, 120 tokens)",
		"pass 2 with context",
		"degraded extraction",
		"timed_out: analysis timed out after 30s",
		"Quality score: 92/100 (6/6 checks passed)",
		"[WARNING] Incomplete analysis for sections: results (results)",
		"Recommendation: Check source document quality",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestFormatReportEmptyMetadata(t *testing.T) {
	report := &types.AnalysisReport{
		RunID:   "run-0",
		Results: map[types.AnalyzerName]types.AnalyzerResult{},
	}

	out := FormatReport(report)

	if !strings.Contains(out, "Title: Unknown") || !strings.Contains(out, "Authors: Unknown") {
		t.Errorf("empty metadata not defaulted:\n%s", out)
	}
	if strings.Contains(out, "Year:") {
		t.Error("zero year should be omitted")
	}
}
