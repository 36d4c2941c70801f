package index

import (
	"fmt"
	"math"
	"sort"

	"tutobot/internal/domain"
)

// MemoryIndex is an immutable in-memory vector index over embedded
// segments. Built in one pass by Build; read-only afterwards, so
// concurrent searches need no locking.
type MemoryIndex struct {
	segments  []domain.Segment
	dimension int
}

// Build constructs an index from fully embedded segments. It fails
// atomically: any segment with a missing or mis-sized embedding aborts
// the build and no index is returned.
func Build(segments []domain.Segment, dimension int) (*MemoryIndex, error) {
	if dimension <= 0 {
		return nil, fmt.Errorf("invalid dimension %d", dimension)
	}

	indexed := make([]domain.Segment, len(segments))
	for i, seg := range segments {
		if len(seg.Embedding) != dimension {
			return nil, fmt.Errorf("segment %d: embedding has %d dimensions, want %d", seg.ID, len(seg.Embedding), dimension)
		}
		indexed[i] = seg
	}

	return &MemoryIndex{segments: indexed, dimension: dimension}, nil
}

// Search returns the k nearest segments by cosine similarity in
// descending score order. Ties break toward the lower segment ID so
// repeated searches are deterministic. If the index holds fewer than k
// segments, all of them are returned.
func (ix *MemoryIndex) Search(query []float32, k int) ([]domain.ScoredSegment, error) {
	if k < 1 {
		return nil, fmt.Errorf("k must be >= 1, got %d", k)
	}
	if len(query) != ix.dimension {
		return nil, fmt.Errorf("query has %d dimensions, index has %d", len(query), ix.dimension)
	}
	if len(ix.segments) == 0 {
		return nil, nil
	}

	scored := make([]domain.ScoredSegment, len(ix.segments))
	for i, seg := range ix.segments {
		scored[i] = domain.ScoredSegment{
			Segment: seg,
			Score:   cosineSimilarity(query, seg.Embedding),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Segment.ID < scored[j].Segment.ID
	})

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k], nil
}

// Len returns the number of indexed segments.
func (ix *MemoryIndex) Len() int {
	return len(ix.segments)
}

// Dimension returns the vector dimension the index was built with.
func (ix *MemoryIndex) Dimension() int {
	return ix.dimension
}

// cosineSimilarity computes the cosine similarity between two vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
