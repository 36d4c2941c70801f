package embedding

import (
	"context"
	"fmt"
	"math"
	"os"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"tutobot/internal/domain"
)

// OpenAIEmbedder generates embeddings through the OpenAI API.
type OpenAIEmbedder struct {
	client    *openai.Client
	model     string
	dimension int
	timeout   time.Duration
}

// NewOpenAIEmbedder reads the API key from the given environment
// variable and returns an embedder for the model.
func NewOpenAIEmbedder(apiKeyEnv, model string, timeout time.Duration) (*OpenAIEmbedder, error) {
	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("API key not found in environment variable: %s", apiKeyEnv)
	}

	dimension := 1536
	switch model {
	case "text-embedding-3-small":
		dimension = 1536
	case "text-embedding-3-large":
		dimension = 3072
	case "text-embedding-ada-002":
		dimension = 1536
	}

	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &OpenAIEmbedder{
		client:    openai.NewClient(apiKey),
		model:     model,
		dimension: dimension,
		timeout:   timeout,
	}, nil
}

const maxBatch = 100

func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	for i, text := range texts {
		if text == "" {
			return nil, &domain.EmbeddingError{Err: fmt.Errorf("input %d is empty", i)}
		}
	}

	var all [][]float32
	for i := 0; i < len(texts); i += maxBatch {
		end := i + maxBatch
		if end > len(texts) {
			end = len(texts)
		}

		vectors, err := e.embedBatch(ctx, texts[i:end])
		if err != nil {
			return nil, err
		}
		all = append(all, vectors...)
	}

	return all, nil
}

func (e *OpenAIEmbedder) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(e.model),
		Input: texts,
	})
	if err != nil {
		return nil, &domain.EmbeddingError{Err: err}
	}
	if len(resp.Data) != len(texts) {
		return nil, &domain.EmbeddingError{Err: fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))}
	}

	vectors := make([][]float32, len(texts))
	for _, data := range resp.Data {
		if data.Index < 0 || data.Index >= len(vectors) {
			return nil, &domain.EmbeddingError{Err: fmt.Errorf("embedding index %d out of range", data.Index)}
		}
		v := make([]float32, len(data.Embedding))
		copy(v, data.Embedding)
		Normalize(v)
		vectors[data.Index] = v
	}

	return vectors, nil
}

func (e *OpenAIEmbedder) Dimension() int {
	return e.dimension
}

func (e *OpenAIEmbedder) ModelName() string {
	return e.model
}

// Normalize scales v to unit length so cosine similarity reduces to a
// dot product. Zero vectors are left as-is.
func Normalize(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	inv := float32(1.0 / math.Sqrt(sum))
	for i := range v {
		v[i] *= inv
	}
}
