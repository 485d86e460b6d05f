// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data structures of the paper-analyzer
// pipeline: documents, analyzer specs and results, findings, and the
// final report.
package types

// Page is one page of a parsed document: a zero-based index and the raw
// text the external converter extracted for that page.
type Page struct {
	// Index is the zero-based page position within the document.
	Index int `json:"index" yaml:"index"`

	// Text is the raw extracted text for this page. May be empty for
	// pages the converter could not read.
	Text string `json:"text" yaml:"text"`
}

// PaperMeta holds the bibliographic metadata supplied with a document.
type PaperMeta struct {
	// Title is the paper title, or "Unknown" when not provided.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Year is the publication year; zero when unknown.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`
}

// Document is the immutable input to an analysis run: the ordered pages
// and the named sections produced by the external converter. It is
// constructed once per run and read-only thereafter.
type Document struct {
	// Pages holds the document pages in order.
	Pages []Page `json:"pages" yaml:"pages"`

	// Sections maps converter-detected section headings to their text.
	// May be empty when the converter found no headings.
	Sections map[string]string `json:"sections,omitempty" yaml:"sections,omitempty"`

	// Meta is the bibliographic metadata for the document.
	Meta PaperMeta `json:"meta" yaml:"meta"`
}

// PageText returns the concatenated text of pages[lo:hi], joined by
// newlines. Indices outside the page range are clamped.
func (d *Document) PageText(lo, hi int) string {
	if lo < 0 {
		lo = 0
	}
	if hi > len(d.Pages) {
		hi = len(d.Pages)
	}
	if lo >= hi {
		return ""
	}
	text := ""
	for i := lo; i < hi; i++ {
		if i > lo {
			text += "\n"
		}
		text += d.Pages[i].Text
	}
	return text
}
