// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyzer defines the fixed panel of specialized analyzers and
// turns a section of text into structured findings via one language-model
// call per invocation.
//
// Seven analyzers cover the paper's narrative sections (abstract,
// introduction, literature review, methodology, results, discussion,
// conclusion) and four cover content that cuts across sections
// (references, tables, figures, mathematics).
package analyzer

import (
	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// Panel returns a fresh copy of the full 11-analyzer configuration.
// Callers own the returned slice; there is no shared registry.
func Panel() []types.AnalyzerSpec {
	return []types.AnalyzerSpec{
		{
			Name: types.AnalyzerAbstract,
			Strategy: types.ExtractionStrategy{
				Aliases: []string{"abstract"},
				Pages:   types.PageRange{Start: 0, End: 1},
			},
			MaxOutputChars: 3000,
			Timeout:        types.DefaultAnalyzerTimeout,
		},
		{
			Name: types.AnalyzerIntroduction,
			Strategy: types.ExtractionStrategy{
				Aliases: []string{"introduction", "1 introduction"},
				Pages:   types.PageRange{Start: 1, End: 3},
			},
			MaxOutputChars: 5000,
			Timeout:        types.DefaultAnalyzerTimeout,
		},
		{
			Name: types.AnalyzerLiteratureReview,
			Strategy: types.ExtractionStrategy{
				Aliases: []string{"literature", "literature review", "related work", "background"},
				Pages:   types.PageRange{Start: 2, End: 4},
			},
			MaxOutputChars: 5000,
			Timeout:        types.DefaultAnalyzerTimeout,
		},
		{
			Name: types.AnalyzerMethodology,
			Strategy: types.ExtractionStrategy{
				Aliases: []string{"methodology", "methods", "method", "model", "model architecture", "architecture"},
				Pages:   types.PageRange{Start: 3, End: 6},
			},
			MaxOutputChars: 6000,
			Timeout:        types.DefaultAnalyzerTimeout,
		},
		{
			Name: types.AnalyzerResults,
			Strategy: types.ExtractionStrategy{
				Aliases: []string{"results", "experiments", "experimental results", "evaluation"},
				Pages:   types.PageRange{Start: 5, End: 9},
			},
			MaxOutputChars: 6000,
			Timeout:        types.DefaultAnalyzerTimeout,
		},
		{
			Name: types.AnalyzerDiscussion,
			Strategy: types.ExtractionStrategy{
				Aliases: []string{"discussion", "analysis"},
				Pages:   types.PageRange{Start: 8, End: 11},
			},
			MaxOutputChars:   5000,
			Timeout:          types.DefaultAnalyzerTimeout,
			ContextDependent: true,
		},
		{
			Name: types.AnalyzerConclusion,
			Strategy: types.ExtractionStrategy{
				Aliases: []string{"conclusion", "conclusions", "future work"},
				Pages:   types.PageRange{Start: -3, End: 0}, // last 3 pages
			},
			MaxOutputChars:   5000,
			Timeout:          types.DefaultAnalyzerTimeout,
			ContextDependent: true,
		},
		{
			Name: types.AnalyzerReferences,
			Strategy: types.ExtractionStrategy{
				Aliases: []string{"references", "bibliography"},
				Pages:   types.PageRange{Start: -5, End: 0}, // references typically at the end
			},
			MaxOutputChars: 10000,
			Timeout:        types.DefaultAnalyzerTimeout,
		},
		{
			Name: types.AnalyzerTables,
			Strategy: types.ExtractionStrategy{
				Aliases: []string{"tables", "table"},
				Pages:   types.PageRange{Start: 0, End: 0}, // whole document
			},
			MaxOutputChars: 8000,
			Timeout:        types.DefaultAnalyzerTimeout,
		},
		{
			Name: types.AnalyzerFigures,
			Strategy: types.ExtractionStrategy{
				Aliases: []string{"figures", "figure", "fig"},
				Pages:   types.PageRange{Start: 0, End: 0}, // whole document
			},
			MaxOutputChars: 8000,
			Timeout:        types.DefaultAnalyzerTimeout,
		},
		{
			Name: types.AnalyzerMathematics,
			Strategy: types.ExtractionStrategy{
				Aliases: []string{"equation", "formula", "theorem", "proof"},
				Pages:   types.PageRange{Start: 0, End: 0}, // whole document
			},
			MaxOutputChars: 10000,
			Timeout:        types.DefaultAnalyzerTimeout,
		},
	}
}

// Select returns the specs for the requested names, in panel order. An
// empty request selects the whole panel. Unknown names are reported so
// configuration typos fail loudly before any analyzer runs.
func Select(names []types.AnalyzerName) ([]types.AnalyzerSpec, []types.AnalyzerName) {
	panel := Panel()
	if len(names) == 0 {
		return panel, nil
	}

	requested := make(map[types.AnalyzerName]bool, len(names))
	for _, n := range names {
		requested[n] = true
	}

	var specs []types.AnalyzerSpec
	for _, spec := range panel {
		if requested[spec.Name] {
			specs = append(specs, spec)
			delete(requested, spec.Name)
		}
	}

	var unknown []types.AnalyzerName
	for _, n := range names {
		if requested[n] {
			unknown = append(unknown, n)
			delete(requested, n)
		}
	}
	return specs, unknown
}
