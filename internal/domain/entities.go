package domain

import "time"

// SourceKind identifies where a document's text came from.
type SourceKind string

const (
	SourcePDF SourceKind = "pdf"
	SourceURL SourceKind = "url"
)

// Document is a loaded source: one PDF file or one fetched web page.
type Document struct {
	ID       string
	Name     string
	Source   SourceKind
	Location string
	LoadedAt time.Time
}

// Segment is a retrievable unit of document text. Segments are created
// during load in original page order; the embedding is populated once
// during ingest and never mutated afterwards.
type Segment struct {
	ID        int
	DocID     string
	Page      int
	Text      string
	Embedding []float32
}

// Query is a single question against one built index.
type Query struct {
	Text string
}

// ScoredSegment pairs a segment with its similarity to a query vector.
type ScoredSegment struct {
	Segment Segment
	Score   float64
}

// Answer is a synthesized response, produced fresh per query.
type Answer struct {
	Text      string
	Segments  []ScoredSegment
	Generated time.Time
}
