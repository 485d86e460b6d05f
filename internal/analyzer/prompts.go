// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyzer

import (
	"fmt"
	"strings"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// promptSpec holds the prompt surfaces for one analyzer: the system role
// description and the JSON schema the model is asked to fill.
type promptSpec struct {
	role   string
	schema string
}

// prompts is the closed prompt table for the panel. The schema field
// names are the structured-output vocabulary the findings rules and the
// validator read.
var prompts = map[types.AnalyzerName]promptSpec{
	types.AnalyzerAbstract: {
		role: "You are an expert at analyzing research paper abstracts. Identify the research objective, key findings, and main contributions.",
		schema: `{
  "research_objective": "one sentence",
  "key_findings": ["finding 1", "finding 2"],
  "main_contributions": ["contribution 1", "contribution 2"],
  "novelty_claims": ["claim 1"],
  "abstract_quality": "high/medium/low"
}`,
	},
	types.AnalyzerIntroduction: {
		role: "You are an expert at analyzing research paper introductions. Identify the problem statement, motivation, and research gap.",
		schema: `{
  "problem_statement": "what problem the paper addresses",
  "research_gap": "what prior work is missing",
  "research_motivation": "why the problem matters",
  "novelty_claims": ["claim 1"],
  "research_questions": ["question 1"]
}`,
	},
	types.AnalyzerLiteratureReview: {
		role: "You are an expert at analyzing related-work sections. Categorize prior work and identify the gaps this paper targets.",
		schema: `{
  "prior_work_categories": ["category 1", "category 2"],
  "key_papers_cited": ["paper 1"],
  "research_gaps": ["gap 1"],
  "comparison_with_prior": "how this work differs"
}`,
	},
	types.AnalyzerMethodology: {
		role: "You are an expert at analyzing research methodology. Identify the research design, approach, data sources, and reproducibility signals.",
		schema: `{
  "research_design": "study design",
  "approach": "main technique or architecture",
  "data_sources": ["dataset 1"],
  "evaluation_metrics": ["metric 1"],
  "statistical_tests": ["test 1"],
  "reproducibility": {"score": "high/medium/low", "missing_details": ["detail 1"]},
  "limitations": ["limitation 1"]
}`,
	},
	types.AnalyzerResults: {
		role: "You are an expert at analyzing experimental results. Extract the main findings, performance metrics, and comparisons.",
		schema: `{
  "main_findings": ["finding 1", "finding 2"],
  "key_findings": ["finding 1", "finding 2"],
  "performance_metrics": {"metric_name": "value"},
  "compared_methods": ["baseline 1"],
  "statistical_significance": "reported or not",
  "unexpected_results": ["result 1"]
}`,
	},
	types.AnalyzerDiscussion: {
		role: "You are an expert at analyzing research discussions. Identify implications, limitations, and how the findings are interpreted.",
		schema: `{
  "theoretical_implications": ["implication 1"],
  "practical_implications": ["implication 1"],
  "limitations": ["limitation 1"],
  "comparison_with_literature": "how results relate to prior work",
  "threats_to_validity": ["threat 1"]
}`,
	},
	types.AnalyzerConclusion: {
		role: "You are an expert at analyzing research conclusions. Identify the stated contributions, future directions, and broader impact.",
		schema: `{
  "main_contributions": ["contribution 1"],
  "future_directions": ["direction 1"],
  "broader_impact": "one sentence",
  "limitations_mentioned": ["limitation 1"],
  "claims_supported": "whether conclusions follow from the findings"
}`,
	},
	types.AnalyzerReferences: {
		role: "You are an expert at analyzing citation lists. Assess the bibliography's coverage, recency, and diversity.",
		schema: `{
  "total_references": 0,
  "key_references": ["reference 1"],
  "temporal_distribution": {"very_recent": 0, "recent": 0, "old": 0},
  "venue_diversity": "high/medium/low",
  "citation_patterns": ["pattern 1"],
  "potential_gaps": ["missing line of work"]
}`,
	},
	types.AnalyzerTables: {
		role: "You are an expert at extracting quantitative results from tables. Identify the key metrics and the best-performing configurations.",
		schema: `{
  "total_tables": 0,
  "key_metrics": [{"metric_name": "name", "best_value": "value", "context": "where"}],
  "performance_comparison": "summary of comparisons",
  "tables_summary": "what the tables show"
}`,
	},
	types.AnalyzerFigures: {
		role: "You are an expert at analyzing figures and plots. Describe what each figure shows and the insights it supports.",
		schema: `{
  "total_figures": 0,
  "visualization_insights": ["insight 1"],
  "plots_and_graphs": [{"figure_number": "1", "what_is_shown": "description"}],
  "visual_evidence": ["claim the figures support"],
  "missing_visualizations": ["suggested plot"]
}`,
	},
	types.AnalyzerMathematics: {
		role: "You are an expert at analyzing mathematical content. Extract the key equations, theorems, and the rigor of the formal treatment.",
		schema: `{
  "total_equations": 0,
  "key_equations": [{"equation": "latex or text", "meaning": "what it expresses"}],
  "main_theorems": ["theorem 1"],
  "proofs_provided": "yes/partial/no",
  "mathematical_rigor": "high/medium/low",
  "notation_consistency": "consistent or issues"
}`,
	},
}

// SystemPrompt returns the system prompt for the named analyzer.
func SystemPrompt(name types.AnalyzerName) string {
	p, ok := prompts[name]
	if !ok {
		return "You are an expert research paper analyst."
	}
	return p.role + " Respond with valid JSON only."
}

// UserPrompt builds the user prompt for one invocation. contextBundle is
// empty for pass-1 invocations; for pass 2 it carries the formatted
// cross-sectional findings relevant to this analyzer.
func UserPrompt(name types.AnalyzerName, sectionText string, meta types.PaperMeta, contextBundle string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Analyze the %s content of the paper %q", displayName(name), metaTitle(meta))
	if len(meta.Authors) > 0 {
		fmt.Fprintf(&b, " by %s", strings.Join(meta.Authors, ", "))
	}
	if meta.Year > 0 {
		fmt.Fprintf(&b, " (%d)", meta.Year)
	}
	b.WriteString(".\n\n")

	if contextBundle != "" {
		b.WriteString("Cross-sectional context from other analyses:\n")
		b.WriteString(contextBundle)
		b.WriteString("\n\n")
	}

	b.WriteString("Content:\n")
	b.WriteString(sectionText)
	b.WriteString("\n\nProvide your analysis in JSON format:\n\n")
	if p, ok := prompts[name]; ok {
		b.WriteString(p.schema)
	}
	b.WriteString("\n")

	return b.String()
}

// displayName renders an analyzer name for prose ("literature_review" →
// "literature review").
func displayName(name types.AnalyzerName) string {
	return strings.ReplaceAll(string(name), "_", " ")
}

func metaTitle(meta types.PaperMeta) string {
	if meta.Title == "" {
		return "Unknown"
	}
	return meta.Title
}
