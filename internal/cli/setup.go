package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/schollz/progressbar/v3"
	"tutobot/config"
	"tutobot/internal/adapter/chunker"
	"tutobot/internal/adapter/embedding"
	"tutobot/internal/adapter/index"
	"tutobot/internal/adapter/llmclient"
	"tutobot/internal/adapter/loader"
	"tutobot/internal/adapter/retriever"
	"tutobot/internal/port"
	"tutobot/internal/usecase"
)

// buildPipeline wires the session pipeline from config.
func buildPipeline(cfg *config.Config, dir string) (*usecase.Pipeline, port.EmbeddingCache, error) {
	embedder, err := embedding.NewOpenAIEmbedder(cfg.Embedding.APIKeyEnv, cfg.Embedding.Model, cfg.Embedding.Timeout())
	if err != nil {
		return nil, nil, err
	}

	var cache port.EmbeddingCache = index.NopCache{}
	if cfg.Embedding.CacheEnabled {
		if err := config.EnsureStateDir(dir); err != nil {
			return nil, nil, err
		}
		bc, err := index.NewBoltCache(config.CachePath(dir, cfg), cfg.Embedding.Model)
		if err != nil {
			// A broken cache degrades to uncached ingest.
			slog.Warn("embedding cache unavailable", "error", err)
		} else {
			cache = bc
		}
	}

	chk := chunker.NewSegmentChunker(cfg.Embedding.MaxSegmentLen)
	ingestor := usecase.NewIngestor(chk, embedder, cache)
	retr := retriever.NewSemanticRetriever(embedder)

	chat, err := llmclient.NewOpenAIChat(cfg.Chat.APIKeyEnv, cfg.Chat.Model, cfg.Chat.Timeout())
	if err != nil {
		cache.Close()
		return nil, nil, err
	}
	synth := usecase.NewSynthesizer(chat, cfg.Synthesis.ContextBudget)

	pdfLoader := loader.NewPDFLoader()
	fetcher := loader.NewURLFetcher(cfg.Chat.Timeout(), cfg.Embedding.MaxSegmentLen)

	pipeline := usecase.NewPipeline(pdfLoader, fetcher, ingestor, retr, synth, cfg.Retrieve.TopK)
	return pipeline, cache, nil
}

// buildChat wires just the chat client, for commands that do not
// retrieve.
func buildChat(cfg *config.Config) (port.ChatModel, error) {
	return llmclient.NewOpenAIChat(cfg.Chat.APIKeyEnv, cfg.Chat.Model, cfg.Chat.Timeout())
}

// loadDocument resolves a --doc argument as a URL, a filesystem path,
// or a library entry name, then ingests it with a progress bar.
func loadDocument(ctx context.Context, pipeline *usecase.Pipeline, cfg *config.Config, docArg string) error {
	progress := embeddingProgress()

	if strings.HasPrefix(docArg, "http://") || strings.HasPrefix(docArg, "https://") {
		fmt.Printf("Fetching %s...\n", docArg)
		return pipeline.LoadURL(ctx, docArg, progress)
	}

	lib := loader.NewLibrary(cfg.Library.Dir, cfg.Library.Patterns)
	if entry, ok, err := lib.Resolve(docArg); err == nil && ok {
		fmt.Printf("Loading %s from library...\n", entry.Name)
		return pipeline.LoadPDFFile(ctx, entry.Path, progress)
	}

	fmt.Printf("Loading %s...\n", docArg)
	return pipeline.LoadPDFFile(ctx, docArg, progress)
}

func embeddingProgress() func(done, total int) {
	var bar *progressbar.ProgressBar

	return func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("Embedding"),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		bar.Set(done)
	}
}
