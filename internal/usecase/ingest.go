package usecase

import (
	"context"

	"tutobot/internal/adapter/chunker"
	"tutobot/internal/adapter/index"
	"tutobot/internal/domain"
	"tutobot/internal/port"
)

// embedGroup bounds how many segments go into one embedding request so
// progress reporting stays responsive during large ingests.
const embedGroup = 32

// Ingestor embeds loaded segments and builds the vector index for
// them. The build is atomic: any embedding failure means no index.
type Ingestor struct {
	chunker  *chunker.SegmentChunker
	embedder port.Embedder
	cache    port.EmbeddingCache
}

func NewIngestor(chk *chunker.SegmentChunker, embedder port.Embedder, cache port.EmbeddingCache) *Ingestor {
	if cache == nil {
		cache = index.NopCache{}
	}
	return &Ingestor{chunker: chk, embedder: embedder, cache: cache}
}

// Ingest splits oversized segments, embeds every segment, and builds
// the index in one pass. progress, if non-nil, is called after each
// group of embeddings with (done, total).
func (g *Ingestor) Ingest(ctx context.Context, doc domain.Document, segments []domain.Segment, progress func(done, total int)) (*index.MemoryIndex, []domain.Segment, error) {
	segments = g.chunker.Split(segments)
	if len(segments) == 0 {
		return nil, nil, &domain.LoadError{Location: doc.Location}
	}

	if cached, ok := g.cache.Get(doc.ID); ok && len(cached) == len(segments) {
		for i := range segments {
			segments[i].Embedding = cached[i]
		}
		if progress != nil {
			progress(len(segments), len(segments))
		}
	} else {
		if err := g.embedAll(ctx, segments, progress); err != nil {
			return nil, nil, err
		}

		vectors := make([][]float32, len(segments))
		for i := range segments {
			vectors[i] = segments[i].Embedding
		}
		// Cache write failures must not fail the build.
		_ = g.cache.Put(doc.ID, vectors)
	}

	ix, err := index.Build(segments, g.embedder.Dimension())
	if err != nil {
		return nil, nil, &domain.EmbeddingError{Err: err}
	}

	return ix, segments, nil
}

func (g *Ingestor) embedAll(ctx context.Context, segments []domain.Segment, progress func(done, total int)) error {
	total := len(segments)

	for start := 0; start < total; start += embedGroup {
		if err := ctx.Err(); err != nil {
			return err
		}

		end := start + embedGroup
		if end > total {
			end = total
		}

		texts := make([]string, end-start)
		for i := start; i < end; i++ {
			texts[i-start] = segments[i].Text
		}

		vectors, err := g.embedder.Embed(ctx, texts)
		if err != nil {
			return err
		}
		for i := start; i < end; i++ {
			segments[i].Embedding = vectors[i-start]
		}

		if progress != nil {
			progress(end, total)
		}
	}

	return nil
}
