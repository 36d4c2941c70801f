package chunker

import (
	"strings"
	"unicode/utf8"

	"tutobot/internal/domain"
)

// SegmentChunker splits page segments whose text exceeds the embedding
// model's input budget. Splits happen at word boundaries only, never
// mid-word, and preserve original order.
type SegmentChunker struct {
	maxLen int // runes per chunk
}

func NewSegmentChunker(maxLen int) *SegmentChunker {
	if maxLen <= 0 {
		maxLen = 6000
	}
	return &SegmentChunker{maxLen: maxLen}
}

// Split returns the segments with oversized ones divided into
// budget-sized pieces. Segment IDs are reassigned to stay dense and
// ordered; page numbers are kept so results still cite their source.
func (c *SegmentChunker) Split(segments []domain.Segment) []domain.Segment {
	out := make([]domain.Segment, 0, len(segments))

	for _, seg := range segments {
		if utf8.RuneCountInString(seg.Text) <= c.maxLen {
			seg.ID = len(out)
			out = append(out, seg)
			continue
		}

		for _, part := range SplitWords(seg.Text, c.maxLen) {
			out = append(out, domain.Segment{
				ID:    len(out),
				DocID: seg.DocID,
				Page:  seg.Page,
				Text:  part,
			})
		}
	}

	return out
}

// SplitWords splits text into pieces of at most maxLen runes, breaking
// only between words. A single word longer than maxLen becomes its own
// piece rather than being cut.
func SplitWords(text string, maxLen int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var parts []string
	var b strings.Builder
	count := 0

	for _, word := range words {
		wordLen := utf8.RuneCountInString(word)
		if count > 0 && count+1+wordLen > maxLen {
			parts = append(parts, b.String())
			b.Reset()
			count = 0
		}
		if count > 0 {
			b.WriteByte(' ')
			count++
		}
		b.WriteString(word)
		count += wordLen
	}

	if b.Len() > 0 {
		parts = append(parts, b.String())
	}

	return parts
}
