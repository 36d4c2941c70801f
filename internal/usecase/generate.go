package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"

	"tutobot/internal/adapter/chunker"
	"tutobot/internal/domain"
	"tutobot/internal/port"
)

var errDocumentEmpty = errors.New("document has no text")

// Reformulator rewrites a whole document through the chat model while
// preserving its structure and information volume, then renders the
// result as a PDF.
type Reformulator struct {
	chat     port.ChatModel
	renderer port.Renderer
	budget   int // runes of source text per call
}

func NewReformulator(chat port.ChatModel, renderer port.Renderer, contextBudget int) *Reformulator {
	if contextBudget <= 0 {
		contextBudget = 12000
	}
	return &Reformulator{chat: chat, renderer: renderer, budget: contextBudget}
}

// Reformulate sends the document text through the model and returns
// the rendered PDF bytes. Oversized documents are rewritten part by
// part concurrently and concatenated in order; no reduction step runs
// here because merging rewritten parts would summarize, and the
// reformulation contract forbids shrinking the content.
func (r *Reformulator) Reformulate(ctx context.Context, title, text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &domain.SynthesisError{Stage: "reformulate", Err: errDocumentEmpty}
	}

	parts := chunker.SplitWords(text, r.budget)

	rewritten := make([]string, len(parts))
	errs := make([]error, len(parts))

	var wg sync.WaitGroup
	for i, part := range parts {
		wg.Add(1)
		go func(i int, part string) {
			defer wg.Done()
			rewritten[i], errs[i] = r.chat.Generate(ctx, reformulateSystemPrompt, part)
		}(i, part)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, &domain.SynthesisError{Stage: "reformulate", Err: err}
		}
	}

	content := strings.Join(rewritten, "\n\n")

	pdf, err := r.renderer.Render(title, content)
	if err != nil {
		return nil, &domain.SynthesisError{Stage: "render", Err: err}
	}
	return pdf, nil
}
