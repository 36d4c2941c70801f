package usecase

import (
	"context"
	"sync"
	"time"
	"unicode/utf8"

	"tutobot/internal/domain"
	"tutobot/internal/port"
)

// NoContentAnswer is returned when retrieval finds nothing to ground
// the answer on. The model is never called in that case.
const NoContentAnswer = "No relevant content was found in the document for this question."

// Synthesizer turns a query and its retrieved segments into an answer.
// When the combined context exceeds the budget it falls back to
// map-reduce: one independent call per context part, then one final
// reduction over the partial answers.
type Synthesizer struct {
	chat   port.ChatModel
	budget int // runes of retrieved context per call
}

func NewSynthesizer(chat port.ChatModel, contextBudget int) *Synthesizer {
	if contextBudget <= 0 {
		contextBudget = 12000
	}
	return &Synthesizer{chat: chat, budget: contextBudget}
}

// Synthesize produces an answer for the query from the retrieved
// segments. Remote failures surface as *domain.SynthesisError; nothing
// is retried here.
func (s *Synthesizer) Synthesize(ctx context.Context, query string, results []domain.ScoredSegment) (domain.Answer, error) {
	if len(results) == 0 {
		return domain.Answer{
			Text:      NoContentAnswer,
			Generated: time.Now(),
		}, nil
	}

	parts := partition(results, s.budget)

	var text string
	var err error
	if len(parts) == 1 {
		text, err = s.answerOnce(ctx, query, parts[0])
	} else {
		text, err = s.mapReduce(ctx, query, parts)
	}
	if err != nil {
		return domain.Answer{}, err
	}

	return domain.Answer{
		Text:      text,
		Segments:  results,
		Generated: time.Now(),
	}, nil
}

func (s *Synthesizer) answerOnce(ctx context.Context, query string, segments []domain.ScoredSegment) (string, error) {
	prompt, err := renderPrompt("answer.txt", answerData{Query: query, Segments: segments})
	if err != nil {
		return "", &domain.SynthesisError{Stage: "answer", Err: err}
	}

	text, err := s.chat.Generate(ctx, answerSystemPrompt, prompt)
	if err != nil {
		return "", &domain.SynthesisError{Stage: "answer", Err: err}
	}
	return text, nil
}

// mapReduce runs one synthesis call per context part concurrently,
// waits for all of them, then reduces the partial answers with a final
// call. Partial failures abort the whole query.
func (s *Synthesizer) mapReduce(ctx context.Context, query string, parts [][]domain.ScoredSegment) (string, error) {
	partials := make([]string, len(parts))
	errs := make([]error, len(parts))

	var wg sync.WaitGroup
	for i, part := range parts {
		wg.Add(1)
		go func(i int, part []domain.ScoredSegment) {
			defer wg.Done()

			prompt, err := renderPrompt("map.txt", answerData{
				Query:    query,
				Segments: part,
				Part:     i + 1,
				Total:    len(parts),
			})
			if err != nil {
				errs[i] = err
				return
			}
			partials[i], errs[i] = s.chat.Generate(ctx, answerSystemPrompt, prompt)
		}(i, part)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return "", &domain.SynthesisError{Stage: "map", Err: err}
		}
	}
	if err := ctx.Err(); err != nil {
		return "", &domain.SynthesisError{Stage: "map", Err: err}
	}

	prompt, err := renderPrompt("reduce.txt", reduceData{Query: query, Partials: partials})
	if err != nil {
		return "", &domain.SynthesisError{Stage: "reduce", Err: err}
	}

	final, err := s.chat.Generate(ctx, answerSystemPrompt, prompt)
	if err != nil {
		return "", &domain.SynthesisError{Stage: "reduce", Err: err}
	}
	return final, nil
}

// partition packs whole segments into budget-sized bins in retrieval
// order. A segment is never split across bins; one larger than the
// budget gets its own bin.
func partition(results []domain.ScoredSegment, budget int) [][]domain.ScoredSegment {
	var parts [][]domain.ScoredSegment
	var current []domain.ScoredSegment
	used := 0

	for _, r := range results {
		n := utf8.RuneCountInString(r.Segment.Text)
		if len(current) > 0 && used+n > budget {
			parts = append(parts, current)
			current = nil
			used = 0
		}
		current = append(current, r)
		used += n
	}
	if len(current) > 0 {
		parts = append(parts, current)
	}

	return parts
}
