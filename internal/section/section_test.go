// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package section

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

func specWith(name types.AnalyzerName, aliases []string, pages types.PageRange, maxChars int) types.AnalyzerSpec {
	return types.AnalyzerSpec{
		Name: name,
		Strategy: types.ExtractionStrategy{
			Aliases: aliases,
			Pages:   pages,
		},
		MaxOutputChars: maxChars,
	}
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		doc      types.Document
		spec     types.AnalyzerSpec
		wantText string
		wantTier Tier
	}{
		{
			name: "exact heading match",
			doc: types.Document{
				Pages:    []types.Page{{Index: 0, Text: "page text"}},
				Sections: map[string]string{"Abstract": "the abstract text"},
			},
			spec:     specWith(types.AnalyzerAbstract, []string{"abstract"}, types.PageRange{Start: 0, End: 1}, 0),
			wantText: "the abstract text",
			wantTier: TierExact,
		},
		{
			name: "alias match is case-insensitive",
			doc: types.Document{
				Sections: map[string]string{"RELATED WORK": "prior work survey"},
			},
			spec:     specWith(types.AnalyzerLiteratureReview, []string{"related work"}, types.PageRange{}, 0),
			wantText: "prior work survey",
			wantTier: TierExact,
		},
		{
			name: "second alias matches when first does not",
			doc: types.Document{
				Sections: map[string]string{"Methods": "we trained a model"},
			},
			spec:     specWith(types.AnalyzerMethodology, []string{"methodology", "methods"}, types.PageRange{}, 0),
			wantText: "we trained a model",
			wantTier: TierExact,
		},
		{
			name: "empty matched section falls through to pages",
			doc: types.Document{
				Pages:    []types.Page{{Index: 0, Text: "page zero"}, {Index: 1, Text: "page one"}},
				Sections: map[string]string{"Abstract": "   "},
			},
			spec:     specWith(types.AnalyzerAbstract, []string{"abstract"}, types.PageRange{Start: 0, End: 1}, 0),
			wantText: "page zero",
			wantTier: TierPages,
		},
		{
			name: "page range fallback",
			doc: types.Document{
				Pages: []types.Page{
					{Index: 0, Text: "first"},
					{Index: 1, Text: "second"},
					{Index: 2, Text: "third"},
				},
			},
			spec:     specWith(types.AnalyzerIntroduction, []string{"introduction"}, types.PageRange{Start: 1, End: 3}, 0),
			wantText: "second\nthird",
			wantTier: TierPages,
		},
		{
			name: "negative start counts from the end",
			doc: types.Document{
				Pages: []types.Page{
					{Index: 0, Text: "a"},
					{Index: 1, Text: "b"},
					{Index: 2, Text: "c"},
					{Index: 3, Text: "d"},
				},
			},
			spec:     specWith(types.AnalyzerConclusion, nil, types.PageRange{Start: -2, End: 0}, 0),
			wantText: "c\nd",
			wantTier: TierPages,
		},
		{
			name: "blank pages yield range placeholder",
			doc: types.Document{
				Pages: []types.Page{{Index: 0, Text: ""}, {Index: 1, Text: "  "}},
			},
			spec:     specWith(types.AnalyzerAbstract, nil, types.PageRange{Start: 0, End: 2}, 0),
			wantText: "[Content from pages 1-2 could not be extracted clearly]",
			wantTier: TierPages,
		},
		{
			name: "no pages gathers named sections",
			doc: types.Document{
				Sections: map[string]string{
					"Alpha": "alpha text",
					"Beta":  "beta text",
				},
			},
			spec:     specWith(types.AnalyzerTables, []string{"tables"}, types.PageRange{}, 0),
			wantText: "alpha text\nbeta text",
			wantTier: TierWholeDocument,
		},
		{
			name:     "empty document yields analyzer placeholder",
			doc:      types.Document{},
			spec:     specWith(types.AnalyzerFigures, nil, types.PageRange{}, 0),
			wantText: "[No content available for figures section]",
			wantTier: TierPlaceholder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, tier := Extract(&tt.doc, tt.spec)
			if text != tt.wantText {
				t.Errorf("text = %q, want %q", text, tt.wantText)
			}
			if tier != tt.wantTier {
				t.Errorf("tier = %v, want %v", tier, tt.wantTier)
			}
		})
	}
}

func TestExtractTruncates(t *testing.T) {
	doc := types.Document{
		Sections: map[string]string{"Results": strings.Repeat("x", 500)},
	}
	spec := specWith(types.AnalyzerResults, []string{"results"}, types.PageRange{}, 100)

	text, tier := Extract(&doc, spec)
	if len(text) != 100 {
		t.Errorf("len(text) = %d, want 100", len(text))
	}
	if tier != TierExact {
		t.Errorf("tier = %v, want TierExact", tier)
	}
}

func TestExtractTruncatesOnRuneBoundary(t *testing.T) {
	// "β" is two bytes; a 101-byte cap lands mid-rune and must back off.
	doc := types.Document{
		Sections: map[string]string{"Results": strings.Repeat("β", 200)},
	}
	spec := specWith(types.AnalyzerResults, []string{"results"}, types.PageRange{}, 101)

	text, _ := Extract(&doc, spec)
	if !utf8.ValidString(text) {
		t.Errorf("truncated text is not valid UTF-8: %q", text)
	}
	if len(text) != 100 {
		t.Errorf("len(text) = %d, want 100", len(text))
	}
}

func TestExtractNeverEmpty(t *testing.T) {
	docs := []types.Document{
		{},
		{Pages: []types.Page{{Index: 0, Text: ""}}},
		{Sections: map[string]string{"Empty": "  "}},
	}
	spec := specWith(types.AnalyzerMathematics, []string{"mathematics"}, types.PageRange{}, 0)

	for i, doc := range docs {
		text, _ := Extract(&doc, spec)
		if strings.TrimSpace(text) == "" {
			t.Errorf("doc %d: Extract returned empty text", i)
		}
	}
}

func TestTierDegraded(t *testing.T) {
	if TierExact.Degraded() {
		t.Error("TierExact should not be degraded")
	}
	for _, tier := range []Tier{TierPages, TierWholeDocument, TierPlaceholder} {
		if !tier.Degraded() {
			t.Errorf("%v should be degraded", tier)
		}
	}
}

func TestPageRangeResolve(t *testing.T) {
	tests := []struct {
		name   string
		r      types.PageRange
		n      int
		wantLo int
		wantHi int
	}{
		{name: "simple", r: types.PageRange{Start: 0, End: 2}, n: 10, wantLo: 0, wantHi: 2},
		{name: "end zero means through last page", r: types.PageRange{Start: 3, End: 0}, n: 5, wantLo: 3, wantHi: 5},
		{name: "negative start from end", r: types.PageRange{Start: -3, End: 0}, n: 10, wantLo: 7, wantHi: 10},
		{name: "negative start beyond length clamps to zero", r: types.PageRange{Start: -20, End: 0}, n: 5, wantLo: 0, wantHi: 5},
		{name: "start beyond length clamps to last page", r: types.PageRange{Start: 8, End: 11}, n: 4, wantLo: 3, wantHi: 4},
		{name: "end beyond length clamps", r: types.PageRange{Start: 5, End: 9}, n: 7, wantLo: 5, wantHi: 7},
		{name: "always at least one page", r: types.PageRange{Start: 2, End: 2}, n: 6, wantLo: 2, wantHi: 3},
		{name: "empty document", r: types.PageRange{Start: 0, End: 3}, n: 0, wantLo: 0, wantHi: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := tt.r.Resolve(tt.n)
			if lo != tt.wantLo || hi != tt.wantHi {
				t.Errorf("Resolve(%d) = (%d, %d), want (%d, %d)", tt.n, lo, hi, tt.wantLo, tt.wantHi)
			}
		})
	}
}
