// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analysis orchestrates a full paper analysis run: section
// extraction, the two engine passes, finding registration, synthesis,
// and validation, producing the final report.
package analysis

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/paper-analyzer/internal/analyzer"
	"github.com/pdiddy/paper-analyzer/internal/engine"
	"github.com/pdiddy/paper-analyzer/internal/findings"
	"github.com/pdiddy/paper-analyzer/internal/provider"
	"github.com/pdiddy/paper-analyzer/internal/section"
	"github.com/pdiddy/paper-analyzer/internal/synthesis"
	"github.com/pdiddy/paper-analyzer/internal/validate"
	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// Approximate provider cost per token in USD.
const costPerToken = 0.000009

// Orchestrator runs paper analyses against one provider client.
type Orchestrator struct {
	client provider.Client
	cfg    types.AnalysisConfig
	out    io.Writer
}

// New returns an orchestrator. out receives progress lines; nil silences
// them.
func New(client provider.Client, cfg types.AnalysisConfig, out io.Writer) *Orchestrator {
	return &Orchestrator{client: client, cfg: cfg, out: out}
}

// Run analyzes one document and returns the report. The report always
// carries one result per requested analyzer; individual analyzer
// failures are absorbed into their result records, not returned as
// errors. Run errors only on unusable configuration.
func (o *Orchestrator) Run(ctx context.Context, doc *types.Document) (*types.AnalysisReport, error) {
	specs, unknown := analyzer.Select(o.cfg.Analyzers)
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown analyzers requested: %v", unknown)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("no analyzers selected")
	}

	start := time.Now()
	report := &types.AnalysisReport{
		RunID:     uuid.NewString(),
		Meta:      doc.Meta,
		CreatedAt: start,
	}

	totalTimeout := o.cfg.TotalTimeout
	if totalTimeout <= 0 {
		totalTimeout = types.DefaultTotalTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, totalTimeout)
	defer cancel()

	// Extract every analyzer's section text once, up front.
	texts := make(map[types.AnalyzerName]string, len(specs))
	degraded := make(map[types.AnalyzerName]bool, len(specs))
	for _, spec := range specs {
		text, tier := section.Extract(doc, spec)
		texts[spec.Name] = text
		degraded[spec.Name] = tier.Degraded()
		if tier.Degraded() {
			o.progress("analyzer %s: %s extraction\n", spec.Name, tier)
		}
	}

	o.progress("pass 1: running %d analyzers (workers=%d)\n", len(specs), o.workers(len(specs)))
	results := engine.Run(runCtx, o.engineConfig(1, nil), o.tasks(specs, doc.Meta, texts, nil))
	markDegraded(results, degraded)
	report.Results = results

	var contextStats *types.SummaryStatistics
	if o.cfg.EnableContextSharing && anySucceeded(results) {
		contextStats = o.runContextPass(runCtx, report, specs, doc.Meta, texts, degraded)
	}

	report.Synthesis = synthesis.Build(doc.Meta, report.Results)
	report.Validation = validate.Run(report.Results)
	report.Success = anySucceeded(report.Results)
	report.Metrics = o.metrics(report.Results, contextStats, time.Since(start))

	o.progress("analysis complete: %d/%d analyzers successful, score %d\n",
		report.Metrics.SuccessfulAnalyzers, len(specs), report.Validation.Score)
	return report, nil
}

// runContextPass extracts findings from pass 1, builds the
// cross-reference map, and re-runs the context-dependent analyzers with
// their context bundles. Every context-dependent analyzer is re-run
// regardless of its pass-1 status, so a failed first attempt gets a
// second chance with context. Pass-1 entries for re-run analyzers move
// to FirstPass.
func (o *Orchestrator) runContextPass(ctx context.Context, report *types.AnalysisReport, specs []types.AnalyzerSpec, meta types.PaperMeta, texts map[types.AnalyzerName]string, degraded map[types.AnalyzerName]bool) *types.SummaryStatistics {
	o.progress("pass 2: building cross-sectional context\n")

	reg := findings.NewRegistry()
	findings.ExtractAll(reg, report.Results)
	report.ContextMap = reg.BuildCrossReferenceMap()
	report.Findings = reg.All()

	stats := reg.Stats()
	o.progress("registered %d findings from %d analyzers\n", stats.TotalFindings, len(stats.ByAnalyzer))
	if stats.TotalFindings == 0 {
		return &stats
	}

	var rerun []types.AnalyzerSpec
	bundles := make(map[types.AnalyzerName]string)
	contextIDs := make(map[types.AnalyzerName][]int64)
	for _, spec := range specs {
		if !spec.ContextDependent {
			continue
		}
		if _, ok := report.Results[spec.Name]; !ok {
			continue
		}
		fs := reg.ContextFor(spec.Name, findings.Filter{})
		if len(fs) == 0 {
			o.progress("analyzer %s: no additional context available\n", spec.Name)
			continue
		}
		bundles[spec.Name] = findings.FormatBundle(fs)
		contextIDs[spec.Name] = findings.IDs(fs)
		rerun = append(rerun, spec)
	}
	if len(rerun) == 0 {
		return &stats
	}

	o.progress("re-analyzing %d analyzers with context\n", len(rerun))
	second := engine.Run(ctx, o.engineConfig(2, contextIDs), o.tasks(rerun, meta, texts, bundles))
	markDegraded(second, degraded)

	report.FirstPass = make(map[types.AnalyzerName]types.AnalyzerResult, len(rerun))
	for name, res := range second {
		report.FirstPass[name] = report.Results[name]
		report.Results[name] = res
	}
	return &stats
}

// tasks builds the engine task list for one pass.
func (o *Orchestrator) tasks(specs []types.AnalyzerSpec, meta types.PaperMeta, texts map[types.AnalyzerName]string, bundles map[types.AnalyzerName]string) []engine.Task {
	opts := analyzer.Options{
		MaxTokens:   o.cfg.MaxTokens,
		Temperature: o.cfg.Temperature,
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = types.DefaultMaxTokens
	}

	out := make([]engine.Task, 0, len(specs))
	for _, spec := range specs {
		spec := spec
		text := texts[spec.Name]
		bundle := bundles[spec.Name]
		out = append(out, engine.Task{
			Spec: spec,
			Run: func(ctx context.Context) (map[string]any, int, error) {
				return analyzer.Analyze(ctx, o.client, spec, text, meta, bundle, opts)
			},
		})
	}
	return out
}

func (o *Orchestrator) engineConfig(pass int, contextIDs map[types.AnalyzerName][]int64) engine.Config {
	return engine.Config{
		MaxWorkers:      o.cfg.MaxWorkers,
		TaskTimeout:     o.cfg.AnalyzerTimeout,
		Pass:            pass,
		ProgressWriter:  o.out,
		ContextFindings: contextIDs,
	}
}

func (o *Orchestrator) workers(tasks int) int {
	w := o.cfg.MaxWorkers
	if w <= 0 || w > tasks {
		w = tasks
	}
	return w
}

// metrics aggregates run accounting. Token and cost totals count only
// successful analyzers.
func (o *Orchestrator) metrics(results map[types.AnalyzerName]types.AnalyzerResult, contextStats *types.SummaryStatistics, elapsed time.Duration) types.Metrics {
	m := types.Metrics{TotalTime: elapsed, ContextFindings: contextStats}
	for _, res := range results {
		if res.Succeeded() {
			m.SuccessfulAnalyzers++
			m.TotalTokens += res.TokensUsed
		} else {
			m.FailedAnalyzers++
		}
	}
	m.EstimatedCost = float64(m.TotalTokens) * costPerToken
	return m
}

func (o *Orchestrator) progress(format string, args ...any) {
	if o.out == nil {
		return
	}
	fmt.Fprintf(o.out, format, args...)
}

func anySucceeded(results map[types.AnalyzerName]types.AnalyzerResult) bool {
	for _, res := range results {
		if res.Succeeded() {
			return true
		}
	}
	return false
}

func markDegraded(results map[types.AnalyzerName]types.AnalyzerResult, degraded map[types.AnalyzerName]bool) {
	for name, res := range results {
		if degraded[name] {
			res.Degraded = true
			results[name] = res
		}
	}
}
