package retriever

import (
	"context"
	"errors"
	"testing"

	"tutobot/internal/adapter/embedding"
	"tutobot/internal/adapter/index"
	"tutobot/internal/domain"
)

func buildIndex(t *testing.T, embedder *embedding.MockEmbedder, texts []string) *index.MemoryIndex {
	t.Helper()

	vectors, err := embedder.Embed(context.Background(), texts)
	if err != nil {
		t.Fatal(err)
	}

	segments := make([]domain.Segment, len(texts))
	for i, text := range texts {
		segments[i] = domain.Segment{ID: i, DocID: "doc1", Page: i + 1, Text: text, Embedding: vectors[i]}
	}

	ix, err := index.Build(segments, embedder.Dimension())
	if err != nil {
		t.Fatal(err)
	}
	return ix
}

func TestRetrieve_TopK(t *testing.T) {
	embedder := embedding.NewMockEmbedder(8)
	ix := buildIndex(t, embedder, []string{"alpha", "beta", "gamma"})

	r := NewSemanticRetriever(embedder)
	results, err := r.Retrieve(context.Background(), "alpha", ix, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Segment.Text != "alpha" {
		t.Errorf("expected exact match first, got %q", results[0].Segment.Text)
	}
}

func TestRetrieve_EmptyIndex(t *testing.T) {
	embedder := embedding.NewMockEmbedder(8)
	ix, err := index.Build(nil, 8)
	if err != nil {
		t.Fatal(err)
	}

	r := NewSemanticRetriever(embedder)
	_, err = r.Retrieve(context.Background(), "anything", ix, 3)

	var empty *domain.EmptyIndexError
	if !errors.As(err, &empty) {
		t.Fatalf("expected EmptyIndexError, got %v", err)
	}
	if embedder.Calls != 0 {
		t.Errorf("empty index must short-circuit before embedding, got %d calls", embedder.Calls)
	}
}

func TestRetrieve_NilIndex(t *testing.T) {
	r := NewSemanticRetriever(embedding.NewMockEmbedder(8))
	_, err := r.Retrieve(context.Background(), "anything", nil, 3)

	var empty *domain.EmptyIndexError
	if !errors.As(err, &empty) {
		t.Fatalf("expected EmptyIndexError, got %v", err)
	}
}

func TestRetrieve_EmbeddingErrorPropagates(t *testing.T) {
	good := embedding.NewMockEmbedder(8)
	ix := buildIndex(t, good, []string{"alpha"})

	failing := embedding.NewMockEmbedder(8)
	failing.Fail = true

	r := NewSemanticRetriever(failing)
	_, err := r.Retrieve(context.Background(), "alpha", ix, 1)

	var embErr *domain.EmbeddingError
	if !errors.As(err, &embErr) {
		t.Fatalf("expected EmbeddingError, got %v", err)
	}
}
