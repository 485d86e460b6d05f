// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyzer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pdiddy/paper-analyzer/internal/provider"
	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// --- mock client ---

type mockClient struct {
	resp provider.Response
	err  error
	last provider.Request
}

func (m *mockClient) Invoke(_ context.Context, req provider.Request) (provider.Response, error) {
	m.last = req
	if m.err != nil {
		return provider.Response{}, m.err
	}
	return m.resp, nil
}

// --- Panel / Select ---

func TestPanelHasElevenAnalyzers(t *testing.T) {
	panel := Panel()
	if len(panel) != 11 {
		t.Fatalf("panel has %d analyzers, want 11", len(panel))
	}

	seen := make(map[types.AnalyzerName]bool)
	for _, spec := range panel {
		if seen[spec.Name] {
			t.Errorf("duplicate analyzer %s", spec.Name)
		}
		seen[spec.Name] = true
		if spec.Timeout != types.DefaultAnalyzerTimeout {
			t.Errorf("analyzer %s: timeout = %v, want the default %v", spec.Name, spec.Timeout, types.DefaultAnalyzerTimeout)
		}
		if spec.MaxOutputChars <= 0 {
			t.Errorf("analyzer %s has no output cap", spec.Name)
		}
	}
}

func TestPanelContextDependentAnalyzers(t *testing.T) {
	want := map[types.AnalyzerName]bool{
		types.AnalyzerDiscussion: true,
		types.AnalyzerConclusion: true,
	}
	for _, spec := range Panel() {
		if spec.ContextDependent != want[spec.Name] {
			t.Errorf("analyzer %s: ContextDependent = %v, want %v", spec.Name, spec.ContextDependent, want[spec.Name])
		}
	}
}

func TestPanelReturnsFreshCopies(t *testing.T) {
	a := Panel()
	a[0].MaxOutputChars = 1
	b := Panel()
	if b[0].MaxOutputChars == 1 {
		t.Error("Panel() returned shared state")
	}
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name        string
		request     []types.AnalyzerName
		wantNames   []types.AnalyzerName
		wantUnknown []types.AnalyzerName
	}{
		{
			name:      "empty request selects full panel",
			request:   nil,
			wantNames: nil, // checked by count below
		},
		{
			name:      "subset in panel order",
			request:   []types.AnalyzerName{types.AnalyzerResults, types.AnalyzerAbstract},
			wantNames: []types.AnalyzerName{types.AnalyzerAbstract, types.AnalyzerResults},
		},
		{
			name:        "unknown names reported",
			request:     []types.AnalyzerName{types.AnalyzerAbstract, "citations", "sentiment"},
			wantNames:   []types.AnalyzerName{types.AnalyzerAbstract},
			wantUnknown: []types.AnalyzerName{"citations", "sentiment"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			specs, unknown := Select(tt.request)

			if tt.request == nil {
				if len(specs) != 11 {
					t.Errorf("got %d specs, want 11", len(specs))
				}
				return
			}

			if len(specs) != len(tt.wantNames) {
				t.Fatalf("got %d specs, want %d", len(specs), len(tt.wantNames))
			}
			for i, want := range tt.wantNames {
				if specs[i].Name != want {
					t.Errorf("specs[%d] = %s, want %s", i, specs[i].Name, want)
				}
			}
			if len(unknown) != len(tt.wantUnknown) {
				t.Fatalf("got %d unknown, want %d", len(unknown), len(tt.wantUnknown))
			}
			for i, want := range tt.wantUnknown {
				if unknown[i] != want {
					t.Errorf("unknown[%d] = %s, want %s", i, unknown[i], want)
				}
			}
		})
	}
}

// --- ParseAnalysis ---

func TestParseAnalysis(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantKey string
		wantErr bool
	}{
		{
			name:    "plain JSON",
			text:    `{"research_objective": "measure things"}`,
			wantKey: "research_objective",
		},
		{
			name:    "json fence",
			text:    "```json\n{\"approach\": \"transformers\"}\n```",
			wantKey: "approach",
		},
		{
			name:    "bare fence",
			text:    "```\n{\"key_findings\": [\"a\"]}\n```",
			wantKey: "key_findings",
		},
		{
			name:    "surrounding whitespace",
			text:    "\n\n  {\"total_tables\": 2}  \n",
			wantKey: "total_tables",
		},
		{
			name:    "prose instead of JSON",
			text:    "The abstract describes a study of...",
			wantErr: true,
		},
		{
			name:    "JSON array is not an object",
			text:    `["a", "b"]`,
			wantErr: true,
		},
		{
			name:    "empty response",
			text:    "",
			wantErr: true,
		},
		{
			name:    "fence with nothing inside",
			text:    "```json\n```",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAnalysis(tt.text)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseAnalysis(%q) succeeded, want error", tt.text)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAnalysis(%q): %v", tt.text, err)
			}
			if _, ok := got[tt.wantKey]; !ok {
				t.Errorf("result missing key %q: %v", tt.wantKey, got)
			}
		})
	}
}

// --- prompts ---

func TestUserPromptIncludesContextBundle(t *testing.T) {
	meta := types.PaperMeta{Title: "Attention Is All You Need", Authors: []string{"Vaswani"}, Year: 2017}

	without := UserPrompt(types.AnalyzerDiscussion, "section text", meta, "")
	with := UserPrompt(types.AnalyzerDiscussion, "section text", meta, "- [high] result from results: finding=BLEU 28.4")

	if strings.Contains(without, "Cross-sectional context") {
		t.Error("pass-1 prompt should not mention cross-sectional context")
	}
	if !strings.Contains(with, "Cross-sectional context") {
		t.Error("pass-2 prompt missing context header")
	}
	if !strings.Contains(with, "BLEU 28.4") {
		t.Error("pass-2 prompt missing bundle content")
	}
	if !strings.Contains(with, "Attention Is All You Need") {
		t.Error("prompt missing paper title")
	}
	if !strings.Contains(with, "section text") {
		t.Error("prompt missing section content")
	}
}

func TestSystemPromptCoversPanel(t *testing.T) {
	for _, spec := range Panel() {
		p := SystemPrompt(spec.Name)
		if !strings.Contains(p, "JSON") {
			t.Errorf("system prompt for %s does not request JSON output", spec.Name)
		}
	}
}

// --- Analyze ---

func TestAnalyze(t *testing.T) {
	spec := Panel()[0] // abstract
	meta := types.PaperMeta{Title: "Test Paper"}
	opts := Options{MaxTokens: 1000, Temperature: 0.3}

	t.Run("success", func(t *testing.T) {
		client := &mockClient{resp: provider.Response{
			Text:       `{"research_objective": "test objective"}`,
			TokensUsed: 42,
		}}

		analysis, tokens, err := Analyze(context.Background(), client, spec, "abstract text", meta, "", opts)
		if err != nil {
			t.Fatalf("Analyze: %v", err)
		}
		if tokens != 42 {
			t.Errorf("tokens = %d, want 42", tokens)
		}
		if analysis["research_objective"] != "test objective" {
			t.Errorf("analysis = %v", analysis)
		}
		if client.last.MaxTokens != 1000 {
			t.Errorf("request MaxTokens = %d, want 1000", client.last.MaxTokens)
		}
	})

	t.Run("provider error", func(t *testing.T) {
		wantErr := errors.New("connection refused")
		client := &mockClient{err: wantErr}

		_, _, err := Analyze(context.Background(), client, spec, "text", meta, "", opts)
		if !errors.Is(err, wantErr) {
			t.Fatalf("err = %v, want wrapped %v", err, wantErr)
		}
	})

	t.Run("unparseable output is an error", func(t *testing.T) {
		client := &mockClient{resp: provider.Response{Text: "not json", TokensUsed: 10}}

		_, tokens, err := Analyze(context.Background(), client, spec, "text", meta, "", opts)
		if err == nil {
			t.Fatal("Analyze succeeded on unparseable output")
		}
		if tokens != 10 {
			t.Errorf("tokens = %d, want 10 (consumed even on parse failure)", tokens)
		}
	})
}
