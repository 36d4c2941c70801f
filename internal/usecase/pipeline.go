package usecase

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"tutobot/internal/domain"
	"tutobot/internal/port"
)

// Pipeline is the per-session RAG pipeline. It owns the loaded
// document, its segments, and the vector index built from them, and
// passes them explicitly to retrieval and synthesis. Rebuilds take the
// write lock; queries take the read lock, so queries never observe a
// half-built index.
type Pipeline struct {
	loader    port.Loader
	fetcher   port.Fetcher
	ingestor  *Ingestor
	retriever port.Retriever
	synth     *Synthesizer
	topK      int

	mu       sync.RWMutex
	doc      domain.Document
	segments []domain.Segment
	index    port.VectorIndex
}

func NewPipeline(loader port.Loader, fetcher port.Fetcher, ingestor *Ingestor, retriever port.Retriever, synth *Synthesizer, topK int) *Pipeline {
	if topK < 1 {
		topK = 4
	}
	return &Pipeline{
		loader:    loader,
		fetcher:   fetcher,
		ingestor:  ingestor,
		retriever: retriever,
		synth:     synth,
		topK:      topK,
	}
}

// LoadPDFFile loads a PDF from disk and rebuilds the index for it.
func (p *Pipeline) LoadPDFFile(ctx context.Context, path string, progress func(done, total int)) error {
	f, err := os.Open(path)
	if err != nil {
		return &domain.LoadError{Location: path, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return &domain.LoadError{Location: path, Err: err}
	}

	return p.LoadPDF(ctx, path, f, info.Size(), progress)
}

// LoadPDF loads a PDF byte source and rebuilds the index for it.
func (p *Pipeline) LoadPDF(ctx context.Context, name string, r io.ReaderAt, size int64, progress func(done, total int)) error {
	doc, segments, err := p.loader.Load(ctx, name, r, size)
	if err != nil {
		return err
	}
	return p.rebuild(ctx, doc, segments, progress)
}

// LoadURL fetches a web page and rebuilds the index for its text.
func (p *Pipeline) LoadURL(ctx context.Context, url string, progress func(done, total int)) error {
	if p.fetcher == nil {
		return &domain.LoadError{Location: url, Err: errors.New("no fetcher configured")}
	}

	doc, segments, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return err
	}
	return p.rebuild(ctx, doc, segments, progress)
}

// rebuild replaces the live index. The previous index is discarded up
// front: a failed build leaves the pipeline serving no queries rather
// than stale ones.
func (p *Pipeline) rebuild(ctx context.Context, doc domain.Document, segments []domain.Segment, progress func(done, total int)) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.doc = domain.Document{}
	p.segments = nil
	p.index = nil

	ix, embedded, err := p.ingestor.Ingest(ctx, doc, segments, progress)
	if err != nil {
		return err
	}

	p.doc = doc
	p.segments = embedded
	p.index = ix
	return nil
}

// Ask answers a question against the current index. An empty index or
// an empty retrieval result yields the fixed no-content answer without
// a remote synthesis call.
func (p *Pipeline) Ask(ctx context.Context, question string) (domain.Answer, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	results, err := p.retriever.Retrieve(ctx, question, p.index, p.topK)
	if err != nil {
		var empty *domain.EmptyIndexError
		if errors.As(err, &empty) {
			return domain.Answer{Text: NoContentAnswer, Generated: time.Now()}, nil
		}
		return domain.Answer{}, err
	}

	return p.synth.Synthesize(ctx, question, results)
}

// Document returns the currently loaded document, if any.
func (p *Pipeline) Document() (domain.Document, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.doc, p.index != nil
}

// Text returns the full text of the loaded document in segment order.
func (p *Pipeline) Text() string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	parts := make([]string, len(p.segments))
	for i, seg := range p.segments {
		parts[i] = seg.Text
	}
	return strings.Join(parts, " ")
}
