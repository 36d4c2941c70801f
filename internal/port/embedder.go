package port

import "context"

// Embedder generates vector embeddings for text.
type Embedder interface {
	// Embed generates embeddings for the given texts, one vector per
	// input. Inputs must be non-empty; failures surface as
	// *domain.EmbeddingError.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimension returns the embedding vector dimension.
	Dimension() int

	// ModelName returns the name of the embedding model.
	ModelName() string
}
