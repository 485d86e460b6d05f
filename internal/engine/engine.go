// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine runs a batch of analyzer invocations under a bounded
// worker pool with two layers of deadline: a per-task timeout and a
// total budget for the whole batch. The engine, not the task, decides
// each terminal status, so a slow task that reports after its deadline
// cannot overwrite the timed-out result already recorded for it.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// Task is one unit of work: an analyzer spec plus the closure that
// performs the invocation. Run must honor ctx cancellation.
type Task struct {
	Spec types.AnalyzerSpec
	Run  func(ctx context.Context) (analysis map[string]any, tokens int, err error)
}

// Config bounds a batch run.
type Config struct {
	MaxWorkers      int           // pool size; 0 means one worker per task
	TaskTimeout     time.Duration // overrides each spec's own timeout when > 0
	TotalTimeout    time.Duration // budget for the whole batch; 0 means no cap
	Pass            int           // recorded on every result
	ProgressWriter  io.Writer     // nil silences progress lines
	ContextFindings map[types.AnalyzerName][]int64
}

// taskOutcome carries one finished task back to the arbiter.
type taskOutcome struct {
	analysis map[string]any
	tokens   int
	err      error
}

// Run executes every task and returns a result per task. It never
// returns early with missing entries: when the total budget expires,
// unfinished tasks are recorded as cancelled and the call returns.
func Run(ctx context.Context, cfg Config, tasks []Task) map[types.AnalyzerName]types.AnalyzerResult {
	results := make(map[types.AnalyzerName]types.AnalyzerResult, len(tasks))
	if len(tasks) == 0 {
		return results
	}

	totalCtx := ctx
	var cancelTotal context.CancelFunc
	if cfg.TotalTimeout > 0 {
		totalCtx, cancelTotal = context.WithTimeout(ctx, cfg.TotalTimeout)
		defer cancelTotal()
	}

	var (
		mu        sync.Mutex
		finalized bool
	)
	record := func(name types.AnalyzerName, res types.AnalyzerResult) {
		mu.Lock()
		defer mu.Unlock()
		if finalized {
			return
		}
		if _, exists := results[name]; exists {
			return
		}
		results[name] = res
	}

	workers := cfg.MaxWorkers
	if workers <= 0 || workers > len(tasks) {
		workers = len(tasks)
	}

	g, gctx := errgroup.WithContext(totalCtx)
	g.SetLimit(workers)

	for _, task := range tasks {
		task := task
		g.Go(func() error {
			runTask(gctx, cfg, task, record)
			return nil
		})
	}

	done := make(chan struct{})
	go func() {
		_ = g.Wait() // tasks never return errors through the group
		close(done)
	}()

	select {
	case <-done:
	case <-totalCtx.Done():
		// Total budget expired. Seal the map so stragglers cannot
		// write, then fill the gaps as cancelled.
	}

	mu.Lock()
	finalized = true
	for _, task := range tasks {
		if _, ok := results[task.Spec.Name]; ok {
			continue
		}
		results[task.Spec.Name] = types.AnalyzerResult{
			Name:   task.Spec.Name,
			Status: types.StatusCancelled,
			Error:  "analysis cancelled: total time budget exhausted",
			Pass:   cfg.Pass,
		}
		progress(cfg.ProgressWriter, "analyzer %s cancelled (total budget exhausted)\n", task.Spec.Name)
	}
	mu.Unlock()

	return results
}

// runTask executes one task under its own deadline and reports the
// terminal status through record. The inner goroutine lets the worker
// slot free at the deadline even if the closure lingers.
func runTask(ctx context.Context, cfg Config, task Task, record func(types.AnalyzerName, types.AnalyzerResult)) {
	timeout := task.Spec.Timeout
	if cfg.TaskTimeout > 0 {
		timeout = cfg.TaskTimeout
	}

	taskCtx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		taskCtx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		taskCtx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	progress(cfg.ProgressWriter, "analyzer %s started\n", task.Spec.Name)
	start := time.Now()

	outc := make(chan taskOutcome, 1)
	go func() {
		analysis, tokens, err := task.Run(taskCtx)
		outc <- taskOutcome{analysis: analysis, tokens: tokens, err: err}
	}()

	var out taskOutcome
	select {
	case out = <-outc:
	case <-taskCtx.Done():
		record(task.Spec.Name, deadlineResult(cfg, task, ctx, time.Since(start)))
		return
	}

	elapsed := time.Since(start)
	res := types.AnalyzerResult{
		Name:       task.Spec.Name,
		Elapsed:    elapsed,
		TokensUsed: out.tokens,
		Pass:       cfg.Pass,
	}
	if ids, ok := cfg.ContextFindings[task.Spec.Name]; ok {
		res.ContextUsed = ids
	}

	switch {
	case out.err == nil:
		res.Status = types.StatusSuccess
		res.Analysis = out.analysis
		progress(cfg.ProgressWriter, "analyzer %s completed in %.1fs\n", task.Spec.Name, elapsed.Seconds())
	case errors.Is(out.err, context.DeadlineExceeded) || errors.Is(out.err, context.Canceled):
		res = deadlineResult(cfg, task, ctx, elapsed)
	default:
		res.Status = types.StatusFailed
		res.Error = out.err.Error()
		progress(cfg.ProgressWriter, "analyzer %s failed: %v\n", task.Spec.Name, out.err)
	}

	record(task.Spec.Name, res)
}

// deadlineResult classifies a context-terminated task: the task's own
// deadline means timed out, anything propagated from the batch context
// means cancelled.
func deadlineResult(cfg Config, task Task, batchCtx context.Context, elapsed time.Duration) types.AnalyzerResult {
	res := types.AnalyzerResult{
		Name:    task.Spec.Name,
		Elapsed: elapsed,
		Pass:    cfg.Pass,
	}
	if batchCtx.Err() != nil {
		res.Status = types.StatusCancelled
		res.Error = "analysis cancelled: total time budget exhausted"
		progress(cfg.ProgressWriter, "analyzer %s cancelled (total budget exhausted)\n", task.Spec.Name)
		return res
	}
	timeout := task.Spec.Timeout
	if cfg.TaskTimeout > 0 {
		timeout = cfg.TaskTimeout
	}
	res.Status = types.StatusTimedOut
	res.Error = fmt.Sprintf("analysis timed out after %s", timeout)
	progress(cfg.ProgressWriter, "analyzer %s timed out after %s\n", task.Spec.Name, timeout)
	return res
}

func progress(w io.Writer, format string, args ...any) {
	if w == nil {
		return
	}
	fmt.Fprintf(w, format, args...)
}
