package port

import (
	"context"

	"tutobot/internal/domain"
)

// Retriever searches a built index for segments relevant to a query.
type Retriever interface {
	// Retrieve embeds the query and returns the top-k most similar
	// segments. Returns *domain.EmptyIndexError when the index holds
	// zero segments; embedding failures propagate as
	// *domain.EmbeddingError.
	Retrieve(ctx context.Context, query string, index VectorIndex, k int) ([]domain.ScoredSegment, error)
}
