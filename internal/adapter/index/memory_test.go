package index

import (
	"reflect"
	"testing"

	"tutobot/internal/domain"
)

func seg(id int, embedding []float32) domain.Segment {
	return domain.Segment{ID: id, DocID: "doc1", Page: id + 1, Text: "segment", Embedding: embedding}
}

func TestBuild_AtomicFailure(t *testing.T) {
	segments := []domain.Segment{
		seg(0, []float32{1, 0, 0}),
		seg(1, []float32{1, 0}), // wrong dimension
		seg(2, []float32{0, 1, 0}),
	}

	ix, err := Build(segments, 3)
	if err == nil {
		t.Fatal("expected build to fail on mis-sized embedding")
	}
	if ix != nil {
		t.Error("expected no index from a failed build")
	}
}

func TestBuild_RejectsMissingEmbedding(t *testing.T) {
	segments := []domain.Segment{
		seg(0, []float32{1, 0, 0}),
		{ID: 1, DocID: "doc1", Page: 2, Text: "no vector"},
	}

	if _, err := Build(segments, 3); err == nil {
		t.Fatal("expected build to fail on missing embedding")
	}
}

func TestSearch_OrderingAndNoDuplicates(t *testing.T) {
	segments := []domain.Segment{
		seg(0, []float32{1, 0, 0}),
		seg(1, []float32{0, 1, 0}),
		seg(2, []float32{0.9, 0.1, 0}),
	}

	ix, err := Build(segments, 3)
	if err != nil {
		t.Fatal(err)
	}

	// k larger than the index returns everything, best first.
	results, err := ix.Search([]float32{1, 0, 0}, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	seen := make(map[int]bool)
	for i, r := range results {
		if seen[r.Segment.ID] {
			t.Errorf("duplicate segment %d in results", r.Segment.ID)
		}
		seen[r.Segment.ID] = true
		if i > 0 && results[i-1].Score < r.Score {
			t.Errorf("results not in descending score order at %d", i)
		}
	}

	if results[0].Segment.ID != 0 {
		t.Errorf("expected segment 0 first, got %d", results[0].Segment.ID)
	}
}

func TestSearch_Deterministic(t *testing.T) {
	segments := []domain.Segment{
		seg(0, []float32{1, 0, 0}),
		seg(1, []float32{0, 1, 0}),
		seg(2, []float32{0, 0, 1}),
	}

	ix, err := Build(segments, 3)
	if err != nil {
		t.Fatal(err)
	}

	query := []float32{0.5, 0.5, 0}
	first, err := ix.Search(query, 3)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		again, err := ix.Search(query, 3)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("search not deterministic on iteration %d", i)
		}
	}
}

func TestSearch_TieBreakByLowerID(t *testing.T) {
	// Identical embeddings produce identical scores; the lower ID
	// must win regardless of insertion quirks.
	same := []float32{1, 0, 0}
	segments := []domain.Segment{
		seg(0, same),
		seg(1, same),
		seg(2, same),
	}

	ix, err := Build(segments, 3)
	if err != nil {
		t.Fatal(err)
	}

	results, err := ix.Search(same, 3)
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range results {
		if r.Segment.ID != i {
			t.Errorf("position %d: expected segment %d, got %d", i, i, r.Segment.ID)
		}
	}
}

func TestSearch_EmptyIndex(t *testing.T) {
	ix, err := Build(nil, 3)
	if err != nil {
		t.Fatal(err)
	}
	if ix.Len() != 0 {
		t.Fatalf("expected empty index, got %d", ix.Len())
	}

	results, err := ix.Search([]float32{1, 0, 0}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("expected empty result, got %d", len(results))
	}
}

func TestSearch_RejectsBadArgs(t *testing.T) {
	ix, err := Build([]domain.Segment{seg(0, []float32{1, 0, 0})}, 3)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ix.Search([]float32{1, 0, 0}, 0); err == nil {
		t.Error("expected error for k < 1")
	}
	if _, err := ix.Search([]float32{1, 0}, 1); err == nil {
		t.Error("expected error for dimension mismatch")
	}
}

func TestCosineSimilarity(t *testing.T) {
	if got := cosineSimilarity([]float32{1, 0}, []float32{1, 0}); got < 0.999 {
		t.Errorf("identical vectors: expected ~1, got %f", got)
	}
	if got := cosineSimilarity([]float32{1, 0}, []float32{0, 1}); got != 0 {
		t.Errorf("orthogonal vectors: expected 0, got %f", got)
	}
	if got := cosineSimilarity([]float32{0, 0}, []float32{1, 0}); got != 0 {
		t.Errorf("zero vector: expected 0, got %f", got)
	}
}
