// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package synthesis builds the executive view of a paper from the
// successful analyzer outputs. The combination rule is fixed and fully
// deterministic: the same result set always yields the same summary,
// contributions, and ratings. Failed analyzers are excluded from the
// inputs and listed as reduced coverage.
package synthesis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// Build produces the synthesis for one result set.
func Build(meta types.PaperMeta, results map[types.AnalyzerName]types.AnalyzerResult) types.Synthesis {
	ok := successfulAnalyses(results)

	return types.Synthesis{
		ExecutiveSummary: executiveSummary(meta, ok),
		KeyContributions: keyContributions(ok),
		Assessment: types.Assessment{
			Quality: rateQuality(ok, len(results)),
			Novelty: rateNovelty(ok),
			Impact:  rateImpact(ok),
			Rigor:   rateRigor(ok),
		},
		ReducedCoverage: reducedCoverage(results),
	}
}

// successfulAnalyses collects the analysis payloads of analyzers that
// produced output.
func successfulAnalyses(results map[types.AnalyzerName]types.AnalyzerResult) map[types.AnalyzerName]map[string]any {
	ok := make(map[types.AnalyzerName]map[string]any)
	for name, res := range results {
		if res.Succeeded() && res.Analysis != nil {
			ok[name] = res.Analysis
		}
	}
	return ok
}

// executiveSummary assembles a prose overview: objective, approach,
// headline finding, and stated impact, in that order, using whichever
// sections succeeded.
func executiveSummary(meta types.PaperMeta, ok map[types.AnalyzerName]map[string]any) string {
	var parts []string

	title := meta.Title
	if title == "" {
		title = "The paper"
	} else {
		title = fmt.Sprintf("%q", title)
	}

	if obj := str(ok[types.AnalyzerAbstract], "research_objective"); obj != "" {
		parts = append(parts, fmt.Sprintf("%s addresses the following objective: %s", title, obj))
	} else if ps := str(ok[types.AnalyzerIntroduction], "problem_statement"); ps != "" {
		parts = append(parts, fmt.Sprintf("%s addresses the following problem: %s", title, ps))
	} else {
		parts = append(parts, fmt.Sprintf("%s was analyzed section by section.", title))
	}

	if approach := str(ok[types.AnalyzerMethodology], "approach"); approach != "" {
		parts = append(parts, fmt.Sprintf("The approach: %s", approach))
	}

	findings := list(ok[types.AnalyzerResults], "key_findings")
	if len(findings) == 0 {
		findings = list(ok[types.AnalyzerResults], "main_findings")
	}
	if len(findings) > 0 {
		parts = append(parts, fmt.Sprintf("Headline finding (%d reported): %s", len(findings), findings[0]))
	}

	if impact := str(ok[types.AnalyzerConclusion], "broader_impact"); impact != "" {
		parts = append(parts, fmt.Sprintf("Stated impact: %s", impact))
	}

	return strings.Join(parts, " ")
}

// keyContributions merges the contribution lists from the abstract and
// conclusion analyses, first occurrence wins.
func keyContributions(ok map[types.AnalyzerName]map[string]any) []string {
	seen := make(map[string]bool)
	var out []string
	for _, src := range []types.AnalyzerName{types.AnalyzerAbstract, types.AnalyzerConclusion} {
		for _, c := range list(ok[src], "main_contributions") {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out
}

// rateQuality follows the abstract analyzer's own quality call when
// available, otherwise grades on analyzer coverage: at least 80%
// successful is high, at least 50% medium, below that low.
func rateQuality(ok map[types.AnalyzerName]map[string]any, requested int) types.Rating {
	if r := rating(str(ok[types.AnalyzerAbstract], "abstract_quality")); r != "" {
		return r
	}
	if requested == 0 {
		return types.RatingLow
	}
	switch ratio := float64(len(ok)) / float64(requested); {
	case ratio >= 0.8:
		return types.RatingHigh
	case ratio >= 0.5:
		return types.RatingMedium
	default:
		return types.RatingLow
	}
}

// rateNovelty counts novelty claims across the abstract and introduction:
// two or more is high, one is medium, none is low.
func rateNovelty(ok map[types.AnalyzerName]map[string]any) types.Rating {
	n := len(list(ok[types.AnalyzerAbstract], "novelty_claims")) +
		len(list(ok[types.AnalyzerIntroduction], "novelty_claims"))
	switch {
	case n >= 2:
		return types.RatingHigh
	case n == 1:
		return types.RatingMedium
	default:
		return types.RatingLow
	}
}

// rateImpact counts stated implications: practical implications from the
// discussion plus a broader-impact statement from the conclusion.
func rateImpact(ok map[types.AnalyzerName]map[string]any) types.Rating {
	n := len(list(ok[types.AnalyzerDiscussion], "practical_implications"))
	if str(ok[types.AnalyzerConclusion], "broader_impact") != "" {
		n++
	}
	switch {
	case n >= 2:
		return types.RatingHigh
	case n == 1:
		return types.RatingMedium
	default:
		return types.RatingLow
	}
}

// rateRigor follows the methodology analyzer's reproducibility score when
// present, then the mathematics analyzer's rigor call, then falls back to
// whether any statistical tests were reported.
func rateRigor(ok map[types.AnalyzerName]map[string]any) types.Rating {
	if repro, isMap := ok[types.AnalyzerMethodology]["reproducibility"].(map[string]any); isMap {
		if r := rating(str(repro, "score")); r != "" {
			return r
		}
	}
	if r := rating(str(ok[types.AnalyzerMathematics], "mathematical_rigor")); r != "" {
		return r
	}
	if len(list(ok[types.AnalyzerMethodology], "statistical_tests")) > 0 {
		return types.RatingMedium
	}
	return types.RatingLow
}

// reducedCoverage lists the analyzers whose output is missing, sorted by
// name.
func reducedCoverage(results map[types.AnalyzerName]types.AnalyzerResult) []types.AnalyzerName {
	var out []types.AnalyzerName
	for name, res := range results {
		if !res.Succeeded() {
			out = append(out, name)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// str reads a string field from an analysis payload; a nil payload or a
// non-string value reads as empty.
func str(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}

// list reads a list of strings from an analysis payload, skipping
// non-string elements.
func list(m map[string]any, key string) []string {
	if m == nil {
		return nil
	}
	raw, _ := m[key].([]any)
	var out []string
	for _, v := range raw {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}

// rating normalizes a model-reported high/medium/low string; anything
// else reads as unset.
func rating(s string) types.Rating {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return types.RatingHigh
	case "medium":
		return types.RatingMedium
	case "low":
		return types.RatingLow
	default:
		return ""
	}
}
