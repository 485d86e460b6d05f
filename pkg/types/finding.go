// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// FindingType categorizes a piece of cross-sectional knowledge extracted
// from an analyzer's output.
type FindingType string

const (
	FindingMethodology FindingType = "methodology"
	FindingResult      FindingType = "result"
	FindingLimitation  FindingType = "limitation"
	FindingClaim       FindingType = "claim"
	FindingMetric      FindingType = "metric"
	FindingFigure      FindingType = "figure"
	FindingEquation    FindingType = "equation"
	FindingTable       FindingType = "table"
	FindingDataset     FindingType = "dataset"
	FindingReference   FindingType = "reference"
)

// Priority ranks a finding's importance when assembling context bundles.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns a sortable weight: high sorts before medium before low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Finding is the atomic unit of cross-task knowledge. Findings are
// immutable once registered and never reference each other, only
// analyzers.
type Finding struct {
	// ID is a monotonically increasing identifier assigned at
	// registration.
	ID int64 `json:"id" yaml:"id"`

	// Source names the analyzer whose output produced this finding.
	Source AnalyzerName `json:"source" yaml:"source"`

	// Type categorizes the finding.
	Type FindingType `json:"type" yaml:"type"`

	// Content is the opaque structured payload lifted from the
	// analyzer's output.
	Content map[string]any `json:"content" yaml:"content"`

	// RelevantTo lists the analyzers this finding should be offered to.
	RelevantTo []AnalyzerName `json:"relevant_to" yaml:"relevant_to"`

	// Priority weights the finding in context bundles.
	Priority Priority `json:"priority" yaml:"priority"`

	// CreatedAt is the registration time.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// RelevantFor reports whether the finding targets the named analyzer.
func (f Finding) RelevantFor(name AnalyzerName) bool {
	for _, n := range f.RelevantTo {
		if n == name {
			return true
		}
	}
	return false
}

// CrossReferenceMap groups finding ids into named relationship buckets.
// It is a derived, read-only view rebuilt from the full finding
// collection; it is never mutated in place.
type CrossReferenceMap map[string][]int64

// SummaryStatistics summarizes the state of a findings registry.
type SummaryStatistics struct {
	TotalFindings int                  `json:"total_findings" yaml:"total_findings"`
	ByPriority    map[Priority]int     `json:"by_priority" yaml:"by_priority"`
	ByAnalyzer    map[AnalyzerName]int `json:"by_analyzer" yaml:"by_analyzer"`
	ByType        map[FindingType]int  `json:"by_type" yaml:"by_type"`
}
