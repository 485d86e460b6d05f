// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

const rule = "================================================================================"

// FormatReport renders a report as human-readable text.
func FormatReport(report *types.AnalysisReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\nPAPER ANALYSIS REPORT\n%s\n\n", rule, rule)
	fmt.Fprintf(&b, "Run: %s\n", report.RunID)
	fmt.Fprintf(&b, "Title: %s\n", orUnknown(report.Meta.Title))
	fmt.Fprintf(&b, "Authors: %s\n", orUnknown(strings.Join(report.Meta.Authors, ", ")))
	if report.Meta.Year > 0 {
		fmt.Fprintf(&b, "Year: %d\n", report.Meta.Year)
	}

	m := report.Metrics
	fmt.Fprintf(&b, "\nMetrics:\n")
	fmt.Fprintf(&b, "  Analyzers: %d successful, %d failed\n", m.SuccessfulAnalyzers, m.FailedAnalyzers)
	fmt.Fprintf(&b, "  Time: %.2fs\n", m.TotalTime.Seconds())
	fmt.Fprintf(&b, "  Tokens: %d\n", m.TotalTokens)
	fmt.Fprintf(&b, "  Estimated cost: $%.4f\n", m.EstimatedCost)
	if m.ContextFindings != nil {
		fmt.Fprintf(&b, "  Context findings: %d\n", m.ContextFindings.TotalFindings)
	}

	fmt.Fprintf(&b, "\n%s\nSYNTHESIS\n%s\n\n", rule, rule)
	fmt.Fprintf(&b, "%s\n", report.Synthesis.ExecutiveSummary)
	if len(report.Synthesis.KeyContributions) > 0 {
		fmt.Fprintf(&b, "\nKey contributions:\n")
		for i, c := range report.Synthesis.KeyContributions {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, c)
		}
	}
	a := report.Synthesis.Assessment
	fmt.Fprintf(&b, "\nAssessment: quality=%s novelty=%s impact=%s rigor=%s\n", a.Quality, a.Novelty, a.Impact, a.Rigor)
	if len(report.Synthesis.ReducedCoverage) > 0 {
		names := make([]string, len(report.Synthesis.ReducedCoverage))
		for i, n := range report.Synthesis.ReducedCoverage {
			names[i] = string(n)
		}
		fmt.Fprintf(&b, "Reduced coverage: %s\n", strings.Join(names, ", "))
	}

	fmt.Fprintf(&b, "\n%s\nSECTION ANALYSES\n%s\n", rule, rule)
	for _, name := range sortedNames(report.Results) {
		res := report.Results[name]
		fmt.Fprintf(&b, "\n%s\n", strings.ToUpper(strings.ReplaceAll(string(name), "_", " ")))
		switch res.Status {
		case types.StatusSuccess:
			fmt.Fprintf(&b, "  ok (%.2fs, %d tokens", res.Elapsed.Seconds(), res.TokensUsed)
			if res.Pass > 1 {
				fmt.Fprintf(&b, ", pass %d with context", res.Pass)
			}
			if res.Degraded {
				fmt.Fprintf(&b, ", degraded extraction")
			}
			fmt.Fprintf(&b, ")\n")
			writeAnalysisPreview(&b, res.Analysis)
		default:
			fmt.Fprintf(&b, "  %s: %s\n", res.Status, res.Error)
		}
	}

	fmt.Fprintf(&b, "\n%s\nVALIDATION\n%s\n\n", rule, rule)
	fmt.Fprintf(&b, "Quality score: %d/100 (%d/%d checks passed)\n", report.Validation.Score, report.Validation.PassedChecks, 6)
	for i, issue := range report.Validation.Issues {
		fmt.Fprintf(&b, "\n%d. [%s] %s (%s)\n", i+1, strings.ToUpper(string(issue.Severity)), issue.Message, issue.Section)
		if issue.Recommendation != "" {
			fmt.Fprintf(&b, "   Recommendation: %s\n", issue.Recommendation)
		}
	}

	return b.String()
}

// writeAnalysisPreview prints up to five fields of an analysis payload,
// truncating long values.
func writeAnalysisPreview(b *strings.Builder, analysis map[string]any) {
	keys := make([]string, 0, len(analysis))
	for k := range analysis {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > 5 {
		keys = keys[:5]
	}

	for _, k := range keys {
		switch v := analysis[k].(type) {
		case []any:
			fmt.Fprintf(b, "  %s: %d items\n", k, len(v))
			if len(v) > 0 {
				if s, ok := v[0].(string); ok {
					fmt.Fprintf(b, "    - %s\n", clip(s, 100))
				}
			}
		case map[string]any:
			fmt.Fprintf(b, "  %s: %d fields\n", k, len(v))
		case string:
			if v != "" {
				fmt.Fprintf(b, "  %s: %s\n", k, clip(v, 100))
			}
		default:
			fmt.Fprintf(b, "  %s: %v\n", k, v)
		}
	}
}

func sortedNames(results map[types.AnalyzerName]types.AnalyzerResult) []types.AnalyzerName {
	names := make([]types.AnalyzerName, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
