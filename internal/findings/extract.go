// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package findings

import (
	"sort"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// ExtractAll applies the static extraction rules to every successful
// result and registers the produced findings. Results are walked in
// analyzer-name order so ids are stable for a given result set.
func ExtractAll(reg *Registry, results map[types.AnalyzerName]types.AnalyzerResult) {
	names := make([]types.AnalyzerName, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	for _, name := range names {
		res := results[name]
		if !res.Succeeded() || res.Analysis == nil {
			continue
		}
		extractOne(reg, name, res.Analysis)
	}
}

// extractOne registers the findings one analysis yields. Analyzer-specific
// rules run first, then the generic limitation and claim rules that apply
// to every analyzer.
func extractOne(reg *Registry, name types.AnalyzerName, analysis map[string]any) {
	switch name {
	case types.AnalyzerMethodology:
		if hasAny(analysis, "approach", "technique") {
			reg.Register(name, types.FindingMethodology, analysis,
				[]types.AnalyzerName{types.AnalyzerResults, types.AnalyzerDiscussion, types.AnalyzerConclusion},
				types.PriorityHigh)
		}
	case types.AnalyzerResults:
		for _, item := range stringItems(analysis["key_findings"]) {
			reg.Register(name, types.FindingResult, map[string]any{"finding": item},
				[]types.AnalyzerName{types.AnalyzerDiscussion, types.AnalyzerConclusion},
				types.PriorityHigh)
		}
	case types.AnalyzerTables:
		for _, item := range listItems(analysis["key_metrics"]) {
			reg.Register(name, types.FindingMetric, asContent(item, "metric"),
				[]types.AnalyzerName{types.AnalyzerResults, types.AnalyzerDiscussion},
				types.PriorityMedium)
		}
	case types.AnalyzerFigures:
		for _, item := range stringItems(analysis["visualization_insights"]) {
			reg.Register(name, types.FindingFigure, map[string]any{"insight": item},
				[]types.AnalyzerName{types.AnalyzerDiscussion},
				types.PriorityMedium)
		}
	case types.AnalyzerMathematics:
		for _, item := range listItems(analysis["key_equations"]) {
			reg.Register(name, types.FindingEquation, asContent(item, "equation"),
				[]types.AnalyzerName{types.AnalyzerMethodology, types.AnalyzerResults},
				types.PriorityMedium)
		}
	}

	limitations := stringItems(analysis["limitations"])
	if len(limitations) == 0 {
		limitations = stringItems(analysis["limitations_mentioned"])
	}
	for _, item := range limitations {
		reg.Register(name, types.FindingLimitation, map[string]any{"limitation": item},
			[]types.AnalyzerName{types.AnalyzerDiscussion, types.AnalyzerConclusion},
			types.PriorityMedium)
	}

	claims := stringItems(analysis["main_contributions"])
	if len(claims) == 0 {
		claims = stringItems(analysis["novelty_claims"])
	}
	for _, item := range claims {
		reg.Register(name, types.FindingClaim, map[string]any{"claim": item},
			[]types.AnalyzerName{types.AnalyzerDiscussion, types.AnalyzerConclusion},
			types.PriorityHigh)
	}
}

func hasAny(m map[string]any, keys ...string) bool {
	for _, k := range keys {
		if _, ok := m[k]; ok {
			return true
		}
	}
	return false
}

// listItems coerces a decoded JSON value to a slice. A lone non-nil
// value counts as a one-element list.
func listItems(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		return t
	default:
		return []any{t}
	}
}

// stringItems keeps only the string elements of a decoded list value.
func stringItems(v any) []string {
	var out []string
	for _, item := range listItems(v) {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// asContent normalizes a list element into a finding payload: maps pass
// through, scalars are wrapped under the given key.
func asContent(item any, key string) map[string]any {
	if m, ok := item.(map[string]any); ok {
		return m
	}
	return map[string]any{key: item}
}
