// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for research-mcp.
package types

import "time"

// PublishedNotAvailable is the sentinel stored when a paper carries no
// publication date.
const PublishedNotAvailable = "N/A"

// Paper is the stored metadata for one academic paper. The JSON tags
// define the on-disk partition format: each topic partition is a
// pretty-printed JSON object mapping paper ID to Paper.
type Paper struct {
	// Title is the paper title as returned by the source index.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Summary is the paper abstract. Unbounded length.
	Summary string `json:"summary" yaml:"summary"`

	// PDFURL is the link to the paper PDF. May be empty.
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`

	// Published is the publication date in YYYY-MM-DD form, or
	// PublishedNotAvailable when the source reported none.
	Published string `json:"published" yaml:"published"`
}

// SearchResult is a candidate paper returned by a search backend query.
type SearchResult struct {
	// Identifier is the source-assigned short ID, version suffix
	// included (e.g. "2303.08774v2").
	Identifier string `json:"identifier" yaml:"identifier"`

	// Title is the paper title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Abstract is the paper abstract or summary.
	Abstract string `json:"abstract" yaml:"abstract"`

	// PDFURL is the link to the paper PDF, if the source exposes one.
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`

	// Published is the publication date. Zero when unknown.
	Published time.Time `json:"published" yaml:"published"`
}

// Record converts a search result into the stored Paper form, mapping a
// missing publication date to the sentinel.
func (r SearchResult) Record() Paper {
	published := PublishedNotAvailable
	if !r.Published.IsZero() {
		published = r.Published.Format("2006-01-02")
	}
	return Paper{
		Title:     r.Title,
		Authors:   r.Authors,
		Summary:   r.Abstract,
		PDFURL:    r.PDFURL,
		Published: published,
	}
}
