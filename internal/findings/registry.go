// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package findings holds the shared registry of cross-sectional findings
// that analyzers produce for each other. The registry is append-only:
// findings get monotonically increasing ids and are never mutated or
// removed within a run.
package findings

import (
	"sort"
	"sync"
	"time"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// autoRelevance maps a finding type to the analyzers that consume it by
// default when the registering rule does not name targets itself.
var autoRelevance = map[types.FindingType][]types.AnalyzerName{
	types.FindingMethodology: {types.AnalyzerResults, types.AnalyzerDiscussion, types.AnalyzerConclusion},
	types.FindingResult:      {types.AnalyzerDiscussion, types.AnalyzerConclusion},
	types.FindingLimitation:  {types.AnalyzerDiscussion, types.AnalyzerConclusion},
	types.FindingDataset:     {types.AnalyzerResults, types.AnalyzerMethodology},
	types.FindingMetric:      {types.AnalyzerResults, types.AnalyzerTables},
	types.FindingEquation:    {types.AnalyzerMethodology, types.AnalyzerResults, types.AnalyzerMathematics},
	types.FindingFigure:      {types.AnalyzerResults, types.AnalyzerDiscussion},
	types.FindingTable:       {types.AnalyzerResults, types.AnalyzerDiscussion},
	types.FindingClaim:       {types.AnalyzerDiscussion, types.AnalyzerConclusion},
	types.FindingReference:   {types.AnalyzerLiteratureReview, types.AnalyzerDiscussion},
}

// Registry is the append-only finding collection for one analysis run.
// Safe for concurrent use.
type Registry struct {
	mu       sync.Mutex
	findings []types.Finding
	nextID   int64
	now      func() time.Time
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{nextID: 1, now: time.Now}
}

// Register appends a finding and returns it with its assigned id. A nil
// relevantTo asks for the default relevance of the finding type.
func (r *Registry) Register(source types.AnalyzerName, ftype types.FindingType, content map[string]any, relevantTo []types.AnalyzerName, priority types.Priority) types.Finding {
	if relevantTo == nil {
		def, ok := autoRelevance[ftype]
		if !ok {
			def = []types.AnalyzerName{types.AnalyzerDiscussion, types.AnalyzerConclusion}
		}
		relevantTo = append([]types.AnalyzerName(nil), def...)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	f := types.Finding{
		ID:         r.nextID,
		Source:     source,
		Type:       ftype,
		Content:    content,
		RelevantTo: relevantTo,
		Priority:   priority,
		CreatedAt:  r.now(),
	}
	r.nextID++
	r.findings = append(r.findings, f)
	return f
}

// All returns a snapshot of every finding in registration order.
func (r *Registry) All() []types.Finding {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]types.Finding(nil), r.findings...)
}

// ByAnalyzer returns every finding registered by the named analyzer.
func (r *Registry) ByAnalyzer(name types.AnalyzerName) []types.Finding {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []types.Finding
	for _, f := range r.findings {
		if f.Source == name {
			out = append(out, f)
		}
	}
	return out
}

// ByType returns every finding of the given type.
func (r *Registry) ByType(ftype types.FindingType) []types.Finding {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []types.Finding
	for _, f := range r.findings {
		if f.Type == ftype {
			out = append(out, f)
		}
	}
	return out
}

// Filter narrows a ContextFor query. Zero value means no filtering.
type Filter struct {
	Types    []types.FindingType
	Sources  []types.AnalyzerName
	Priority types.Priority
}

// ContextFor returns every finding whose relevance list names the
// requesting analyzer, including findings the requester registered
// itself, ordered by priority (high first) and, within a priority,
// newest id first. The ordering is deterministic for a given
// registration history.
func (r *Registry) ContextFor(requesting types.AnalyzerName, filter Filter) []types.Finding {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []types.Finding
	for _, f := range r.findings {
		if !f.RelevantFor(requesting) {
			continue
		}
		if len(filter.Types) > 0 && !containsType(filter.Types, f.Type) {
			continue
		}
		if len(filter.Sources) > 0 && !containsName(filter.Sources, f.Source) {
			continue
		}
		if filter.Priority != "" && f.Priority != filter.Priority {
			continue
		}
		out = append(out, f)
	}

	sort.Slice(out, func(i, j int) bool {
		ri, rj := out[i].Priority.Rank(), out[j].Priority.Rank()
		if ri != rj {
			return ri < rj
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// crossRefBuckets is the closed set of relationship categories, each
// with the finding type it collects and the relevance target that
// qualifies a finding for the bucket (empty target means type alone
// qualifies).
var crossRefBuckets = []struct {
	name   string
	ftype  types.FindingType
	target types.AnalyzerName
}{
	{"methodology_to_results", types.FindingMethodology, types.AnalyzerResults},
	{"results_to_discussion", types.FindingResult, types.AnalyzerDiscussion},
	{"limitations_to_methodology", types.FindingLimitation, ""},
	{"claims_to_evidence", types.FindingClaim, ""},
	{"figures_to_insights", types.FindingFigure, ""},
	{"tables_to_metrics", types.FindingMetric, ""},
	{"equations_to_applications", types.FindingEquation, ""},
}

// BuildCrossReferenceMap groups finding ids into the named relationship
// buckets. Every bucket key is present even when empty, and ids within a
// bucket are ascending, so two calls over the same registry are
// identical.
func (r *Registry) BuildCrossReferenceMap() types.CrossReferenceMap {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(types.CrossReferenceMap, len(crossRefBuckets))
	for _, b := range crossRefBuckets {
		out[b.name] = []int64{}
	}
	for _, f := range r.findings {
		for _, b := range crossRefBuckets {
			if f.Type != b.ftype {
				continue
			}
			if b.target != "" && !f.RelevantFor(b.target) {
				continue
			}
			out[b.name] = append(out[b.name], f.ID)
		}
	}
	return out
}

// Stats summarizes the registry for report metrics.
func (r *Registry) Stats() types.SummaryStatistics {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats := types.SummaryStatistics{
		TotalFindings: len(r.findings),
		ByPriority:    make(map[types.Priority]int),
		ByAnalyzer:    make(map[types.AnalyzerName]int),
		ByType:        make(map[types.FindingType]int),
	}
	for _, f := range r.findings {
		stats.ByPriority[f.Priority]++
		stats.ByAnalyzer[f.Source]++
		stats.ByType[f.Type]++
	}
	return stats
}

func containsType(set []types.FindingType, t types.FindingType) bool {
	for _, v := range set {
		if v == t {
			return true
		}
	}
	return false
}

func containsName(set []types.AnalyzerName, n types.AnalyzerName) bool {
	for _, v := range set {
		if v == n {
			return true
		}
	}
	return false
}
