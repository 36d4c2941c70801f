package retriever

import (
	"context"
	"fmt"

	"tutobot/internal/domain"
	"tutobot/internal/port"
)

// SemanticRetriever embeds a query and searches a built index for the
// most similar segments.
type SemanticRetriever struct {
	embedder port.Embedder
}

func NewSemanticRetriever(embedder port.Embedder) *SemanticRetriever {
	return &SemanticRetriever{embedder: embedder}
}

func (r *SemanticRetriever) Retrieve(ctx context.Context, query string, index port.VectorIndex, k int) ([]domain.ScoredSegment, error) {
	if index == nil || index.Len() == 0 {
		return nil, &domain.EmptyIndexError{}
	}

	embeddings, err := r.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	if len(embeddings) == 0 {
		return nil, &domain.EmbeddingError{Err: fmt.Errorf("embedding returned empty result")}
	}

	results, err := index.Search(embeddings[0], k)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	return results, nil
}
