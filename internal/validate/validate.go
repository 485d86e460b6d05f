// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package validate runs the fixed panel of consistency checks over a
// completed result set. Each check is independent and tolerates missing
// sections; checks that lack their inputs simply pass. The score starts
// at 100 and loses 15 per critical issue, 8 per warning, and 3 per info
// item, clamped to [0, 100].
package validate

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

const totalChecks = 6

// proseSections are the analyzers whose absence counts against
// completeness. The structural analyzers (tables, figures, mathematics,
// references, literature review) are optional coverage.
var proseSections = []types.AnalyzerName{
	types.AnalyzerAbstract,
	types.AnalyzerIntroduction,
	types.AnalyzerMethodology,
	types.AnalyzerResults,
	types.AnalyzerDiscussion,
	types.AnalyzerConclusion,
}

// Run executes every check and returns the scored validation report.
func Run(results map[types.AnalyzerName]types.AnalyzerResult) types.Validation {
	var issues []types.ValidationIssue

	issues = append(issues, checkCompleteness(results)...)
	issues = append(issues, checkMethodologyResultsAlignment(results)...)
	issues = append(issues, checkClaimsEvidence(results)...)
	issues = append(issues, checkConclusionSupport(results)...)
	issues = append(issues, checkCoherence(results)...)
	issues = append(issues, checkQuantitativeConsistency(results)...)

	return types.Validation{
		Score:        score(issues),
		Issues:       issues,
		PassedChecks: passedChecks(issues),
	}
}

// checkCompleteness flags prose sections that are absent (critical) or
// that failed or produced near-empty analyses (warning).
func checkCompleteness(results map[types.AnalyzerName]types.AnalyzerResult) []types.ValidationIssue {
	var missing, incomplete []string
	for _, name := range proseSections {
		res, ok := results[name]
		switch {
		case !ok:
			missing = append(missing, string(name))
		case !res.Succeeded():
			incomplete = append(incomplete, string(name))
		case len(res.Analysis) < 2:
			incomplete = append(incomplete, string(name))
		}
	}

	var issues []types.ValidationIssue
	if len(missing) > 0 {
		issues = append(issues, types.ValidationIssue{
			Severity:       types.SeverityCritical,
			Category:       "completeness",
			Section:        strings.Join(missing, ", "),
			Message:        fmt.Sprintf("Missing analysis for sections: %s", strings.Join(missing, ", ")),
			Recommendation: "Rerun analysis with all sections enabled",
		})
	}
	if len(incomplete) > 0 {
		issues = append(issues, types.ValidationIssue{
			Severity:       types.SeverityWarning,
			Category:       "completeness",
			Section:        strings.Join(incomplete, ", "),
			Message:        fmt.Sprintf("Incomplete analysis for sections: %s", strings.Join(incomplete, ", ")),
			Recommendation: "Check source document quality for these sections",
		})
	}
	return issues
}

// checkMethodologyResultsAlignment warns when fewer than 30% of the
// methodology's key terms appear anywhere in the results analysis.
func checkMethodologyResultsAlignment(results map[types.AnalyzerName]types.AnalyzerResult) []types.ValidationIssue {
	method := analysis(results, types.AnalyzerMethodology)
	res := analysis(results, types.AnalyzerResults)
	if method == nil || res == nil {
		return nil
	}

	terms := keyTerms(method)
	if len(terms) == 0 {
		return nil
	}
	resultsText := strings.ToLower(renderPayload(res))

	mentioned := 0
	for _, term := range terms {
		if strings.Contains(resultsText, term) {
			mentioned++
		}
	}

	if float64(mentioned) < float64(len(terms))*0.3 {
		return []types.ValidationIssue{{
			Severity:       types.SeverityWarning,
			Category:       "consistency",
			Section:        "methodology, results",
			Message:        "Limited alignment between methodology and results",
			Recommendation: "Verify that results discuss the methods actually used",
		}}
	}
	return nil
}

// checkClaimsEvidence warns when the discussion states implications but
// the results analysis reports no findings to support them.
func checkClaimsEvidence(results map[types.AnalyzerName]types.AnalyzerResult) []types.ValidationIssue {
	res := analysis(results, types.AnalyzerResults)
	disc := analysis(results, types.AnalyzerDiscussion)
	if res == nil || disc == nil {
		return nil
	}

	findings := list(res, "main_findings")
	implications := append(list(disc, "theoretical_implications"), list(disc, "practical_implications")...)

	if len(implications) > 0 && len(findings) == 0 {
		return []types.ValidationIssue{{
			Severity:       types.SeverityWarning,
			Category:       "consistency",
			Section:        "results, discussion",
			Message:        "Discussion makes claims without corresponding results",
			Recommendation: "Ensure discussion is grounded in reported results",
		}}
	}
	return nil
}

// checkConclusionSupport flags conclusions with no backing findings and,
// separately, conclusions whose contribution count exceeds the finding
// count by more than half again.
func checkConclusionSupport(results map[types.AnalyzerName]types.AnalyzerResult) []types.ValidationIssue {
	res := analysis(results, types.AnalyzerResults)
	concl := analysis(results, types.AnalyzerConclusion)
	if res == nil || concl == nil {
		return nil
	}

	contributions := list(concl, "main_contributions")
	findings := list(res, "main_findings")

	var issues []types.ValidationIssue
	if len(contributions) > 0 && len(findings) == 0 {
		issues = append(issues, types.ValidationIssue{
			Severity:       types.SeverityWarning,
			Category:       "consistency",
			Section:        "results, conclusion",
			Message:        "Conclusions lack support from results section",
			Recommendation: "Verify conclusions align with reported findings",
		})
	}
	if float64(len(contributions)) > float64(len(findings))*1.5 {
		issues = append(issues, types.ValidationIssue{
			Severity:       types.SeverityInfo,
			Category:       "quality",
			Section:        "conclusion",
			Message:        "Conclusion may overstate contributions relative to findings",
			Recommendation: "Consider if all claimed contributions are justified",
		})
	}
	return issues
}

// checkCoherence compares the abstract's objective against the
// introduction's problem statement (shared-word overlap below 3 words is
// suspicious) and the conclusion's contribution count against the
// abstract's finding count.
func checkCoherence(results map[types.AnalyzerName]types.AnalyzerResult) []types.ValidationIssue {
	abs := analysis(results, types.AnalyzerAbstract)
	intro := analysis(results, types.AnalyzerIntroduction)
	concl := analysis(results, types.AnalyzerConclusion)
	if abs == nil || intro == nil || concl == nil {
		return nil
	}

	var issues []types.ValidationIssue

	objective := strings.ToLower(str(abs, "research_objective"))
	problem := strings.ToLower(str(intro, "problem_statement"))
	if objective != "" && problem != "" {
		if wordOverlap(objective, problem) < 3 {
			issues = append(issues, types.ValidationIssue{
				Severity:       types.SeverityInfo,
				Category:       "coherence",
				Section:        "abstract, introduction",
				Message:        "Abstract and introduction may describe different objectives",
				Recommendation: "Verify consistency of research objective across sections",
			})
		}
	}

	abstractFindings := list(abs, "key_findings")
	contributions := list(concl, "main_contributions")
	if len(abstractFindings) > 0 && len(contributions) > len(abstractFindings)*2 {
		issues = append(issues, types.ValidationIssue{
			Severity:       types.SeverityInfo,
			Category:       "coherence",
			Section:        "abstract, conclusion",
			Message:        "Conclusion claims more contributions than abstract indicates",
			Recommendation: "Check if abstract adequately summarizes contributions",
		})
	}
	return issues
}

// checkQuantitativeConsistency flags numeric claims in the results prose
// that no table metric backs up.
func checkQuantitativeConsistency(results map[types.AnalyzerName]types.AnalyzerResult) []types.ValidationIssue {
	res := analysis(results, types.AnalyzerResults)
	tables := analysis(results, types.AnalyzerTables)
	if res == nil && tables == nil {
		return nil
	}

	var metrics map[string]any
	if res != nil {
		metrics, _ = res["performance_metrics"].(map[string]any)
	}
	var tableMetrics []any
	if tables != nil {
		tableMetrics, _ = tables["key_metrics"].([]any)
	}

	if len(metrics) > 0 && len(tableMetrics) == 0 {
		return []types.ValidationIssue{{
			Severity:       types.SeverityInfo,
			Category:       "completeness",
			Section:        "results, tables",
			Message:        "Quantitative results mentioned without corresponding tables",
			Recommendation: "Consider adding tables to support quantitative claims",
		}}
	}
	return nil
}

// score applies the fixed penalty schedule.
func score(issues []types.ValidationIssue) int {
	s := 100
	for _, issue := range issues {
		switch issue.Severity {
		case types.SeverityCritical:
			s -= 15
		case types.SeverityWarning:
			s -= 8
		case types.SeverityInfo:
			s -= 3
		}
	}
	if s < 0 {
		s = 0
	}
	if s > 100 {
		s = 100
	}
	return s
}

// passedChecks counts checks whose category raised no critical issue.
func passedChecks(issues []types.ValidationIssue) int {
	failed := make(map[string]bool)
	for _, issue := range issues {
		if issue.Severity == types.SeverityCritical {
			failed[issue.Category] = true
		}
	}
	return totalChecks - len(failed)
}

func analysis(results map[types.AnalyzerName]types.AnalyzerResult, name types.AnalyzerName) map[string]any {
	res, ok := results[name]
	if !ok || !res.Succeeded() || len(res.Analysis) == 0 {
		return nil
	}
	return res.Analysis
}

var termPattern = regexp.MustCompile(`[a-z]{4,}`)

// stopTerms are too common to signal alignment between sections.
var stopTerms = map[string]bool{
	"this": true, "that": true, "with": true, "from": true, "have": true,
	"their": true, "were": true, "been": true, "would": true, "could": true,
	"should": true, "analysis": true, "section": true, "paper": true,
	"study": true, "research": true,
}

// keyTerms extracts up to 20 distinctive lowercase terms from an analysis
// payload, in deterministic order.
func keyTerms(payload map[string]any) []string {
	words := termPattern.FindAllString(strings.ToLower(renderPayload(payload)), -1)
	var out []string
	for _, w := range words {
		if stopTerms[w] {
			continue
		}
		out = append(out, w)
		if len(out) == 20 {
			break
		}
	}
	return out
}

// renderPayload flattens an analysis payload to text with sorted keys so
// term extraction is stable.
func renderPayload(payload map[string]any) string {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s %v ", k, payload[k])
	}
	return b.String()
}

func wordOverlap(a, b string) int {
	set := make(map[string]bool)
	for _, w := range strings.Fields(a) {
		set[w] = true
	}
	n := 0
	seen := make(map[string]bool)
	for _, w := range strings.Fields(b) {
		if set[w] && !seen[w] {
			seen[w] = true
			n++
		}
	}
	return n
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}

func list(m map[string]any, key string) []string {
	raw, _ := m[key].([]any)
	var out []string
	for _, v := range raw {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
