package embedding

import (
	"context"
	"fmt"

	"tutobot/internal/domain"
)

// MockEmbedder produces deterministic vectors derived from the input
// text. Used in tests and offline runs.
type MockEmbedder struct {
	dimension int

	// Calls counts Embed invocations, letting tests assert which
	// paths hit the embedder.
	Calls int

	// Fail, when set, makes every call return an EmbeddingError.
	Fail bool
}

func NewMockEmbedder(dimension int) *MockEmbedder {
	return &MockEmbedder{dimension: dimension}
}

func (e *MockEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	e.Calls++
	if e.Fail {
		return nil, &domain.EmbeddingError{Err: fmt.Errorf("mock embedder failure")}
	}

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		v := make([]float32, e.dimension)
		for j, r := range text {
			if j >= e.dimension {
				break
			}
			v[j] = float32(r) / 1000.0
		}
		Normalize(v)
		vectors[i] = v
	}
	return vectors, nil
}

func (e *MockEmbedder) Dimension() int {
	return e.dimension
}

func (e *MockEmbedder) ModelName() string {
	return "mock"
}
