package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"

	"tutobot/internal/domain"
)

func TestSplitWords_NeverBreaksMidWord(t *testing.T) {
	text := strings.Repeat("alpha beta gamma delta ", 50)
	parts := SplitWords(text, 40)

	if len(parts) < 2 {
		t.Fatalf("expected multiple parts, got %d", len(parts))
	}

	for i, part := range parts {
		if utf8.RuneCountInString(part) > 40 {
			t.Errorf("part %d exceeds budget: %d runes", i, utf8.RuneCountInString(part))
		}
		for _, word := range strings.Fields(part) {
			switch word {
			case "alpha", "beta", "gamma", "delta":
			default:
				t.Errorf("part %d contains broken word %q", i, word)
			}
		}
	}

	// Rejoining must preserve word order.
	joined := strings.Join(parts, " ")
	if joined != strings.TrimSpace(strings.Join(strings.Fields(text), " ")) {
		t.Error("splitting did not preserve word order")
	}
}

func TestSplitWords_OversizedWordGetsOwnPart(t *testing.T) {
	long := strings.Repeat("x", 100)
	parts := SplitWords("short "+long+" tail", 20)

	found := false
	for _, part := range parts {
		if part == long {
			found = true
		}
	}
	if !found {
		t.Error("oversized word should survive uncut in its own part")
	}
}

func TestSplitWords_Empty(t *testing.T) {
	if parts := SplitWords("   ", 10); parts != nil {
		t.Errorf("expected nil for blank text, got %v", parts)
	}
}

func TestSplit_ReassignsDenseOrderedIDs(t *testing.T) {
	c := NewSegmentChunker(30)
	segments := []domain.Segment{
		{ID: 0, DocID: "d", Page: 1, Text: "short page"},
		{ID: 1, DocID: "d", Page: 2, Text: strings.Repeat("word ", 30)},
		{ID: 2, DocID: "d", Page: 3, Text: "another short page"},
	}

	out := c.Split(segments)
	if len(out) <= 3 {
		t.Fatalf("expected the oversized page to split, got %d segments", len(out))
	}

	lastPage := 0
	for i, seg := range out {
		if seg.ID != i {
			t.Errorf("segment %d has ID %d", i, seg.ID)
		}
		if seg.Page < lastPage {
			t.Errorf("page order broken at segment %d", i)
		}
		lastPage = seg.Page
	}
}

func TestSplit_KeepsSmallSegmentsIntact(t *testing.T) {
	c := NewSegmentChunker(1000)
	segments := []domain.Segment{
		{ID: 0, DocID: "d", Page: 1, Text: "page one"},
		{ID: 1, DocID: "d", Page: 2, Text: "page two"},
	}

	out := c.Split(segments)
	if len(out) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(out))
	}
	if out[0].Text != "page one" || out[1].Text != "page two" {
		t.Error("small segments should pass through unchanged")
	}
}
