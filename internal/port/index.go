package port

import "tutobot/internal/domain"

// VectorIndex is an immutable nearest-neighbor index over embedded
// segments. Built in one pass per document; read-only afterwards, so
// concurrent searches are always safe.
type VectorIndex interface {
	// Search returns the k nearest segments by cosine similarity in
	// descending score order, ties broken by lower segment ID. If the
	// index holds fewer than k segments, all of them are returned.
	Search(query []float32, k int) ([]domain.ScoredSegment, error)

	// Len returns the number of indexed segments.
	Len() int

	// Dimension returns the vector dimension the index was built with.
	Dimension() int
}
