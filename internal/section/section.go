// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package section selects the text slice each analyzer should see.
//
// Extraction never fails and never returns an empty string: an exact
// heading match is tried first, then the analyzer's configured page
// range, then the whole document, and finally an explicit placeholder.
// Guaranteeing a non-empty return means every requested analyzer always
// executes; missing content becomes an observable, reportable condition
// instead of a silently skipped analyzer.
package section

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// Tier records which extraction strategy produced the text.
type Tier int

const (
	// TierExact means a configured heading alias matched a named section.
	TierExact Tier = iota

	// TierPages means the text came from the configured page range.
	TierPages

	// TierWholeDocument means extraction fell back to the full page text.
	TierWholeDocument

	// TierPlaceholder means no text was available at all and a
	// placeholder was returned.
	TierPlaceholder
)

// Degraded reports whether the tier is a fallback below an exact match.
func (t Tier) Degraded() bool {
	return t != TierExact
}

// String returns the tier name for progress output.
func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierPages:
		return "pages"
	case TierWholeDocument:
		return "whole-document"
	default:
		return "placeholder"
	}
}

// Extract returns the text slice the analyzer should see and the tier
// that produced it. The result is never empty.
func Extract(doc *types.Document, spec types.AnalyzerSpec) (string, Tier) {
	// Tier 1: exact heading alias match, case-insensitive. Headings are
	// scanned in sorted order so ties resolve deterministically.
	headings := sortedHeadings(doc.Sections)
	for _, alias := range spec.Strategy.Aliases {
		for _, heading := range headings {
			if !strings.EqualFold(heading, alias) {
				continue
			}
			trimmed := strings.TrimSpace(doc.Sections[heading])
			if trimmed != "" {
				return truncate(trimmed, spec.MaxOutputChars), TierExact
			}
		}
	}

	// Tier 2: configured page range.
	if len(doc.Pages) > 0 {
		lo, hi := spec.Strategy.Pages.Resolve(len(doc.Pages))
		text := strings.TrimSpace(doc.PageText(lo, hi))
		if text != "" {
			return truncate(text, spec.MaxOutputChars), TierPages
		}
		// The range resolved but held no text. Return a placeholder
		// naming the range so the analyzer still runs.
		return fmt.Sprintf("[Content from pages %d-%d could not be extracted clearly]", lo+1, hi), TierPages
	}

	// Tier 3: whole document. With no pages available this gathers
	// whatever named-section text the converter produced.
	var parts []string
	if text := strings.TrimSpace(doc.PageText(0, len(doc.Pages))); text != "" {
		parts = append(parts, text)
	}
	for _, text := range sortedSectionTexts(doc.Sections) {
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if len(parts) > 0 {
		return truncate(strings.Join(parts, "\n"), spec.MaxOutputChars), TierWholeDocument
	}

	return fmt.Sprintf("[No content available for %s section]", spec.Name), TierPlaceholder
}

// sortedSectionTexts returns section texts in heading order so the
// whole-document fallback is deterministic.
func sortedSectionTexts(sections map[string]string) []string {
	headings := sortedHeadings(sections)
	texts := make([]string, 0, len(headings))
	for _, h := range headings {
		texts = append(texts, sections[h])
	}
	return texts
}

// sortedHeadings returns the section headings in sorted order.
func sortedHeadings(sections map[string]string) []string {
	headings := make([]string, 0, len(sections))
	for h := range sections {
		headings = append(headings, h)
	}
	sort.Strings(headings)
	return headings
}

// truncate caps s at max bytes, backing off to a rune boundary so the
// cut never produces invalid UTF-8. Zero or negative max means no cap.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
