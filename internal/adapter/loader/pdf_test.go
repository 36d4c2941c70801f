package loader

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"tutobot/internal/domain"
)

func TestPDFLoader_RejectsGarbage(t *testing.T) {
	l := NewPDFLoader()

	data := []byte("this is not a pdf at all, just plain text bytes")
	_, _, err := l.Load(context.Background(), "garbage.pdf", bytes.NewReader(data), int64(len(data)))

	var loadErr *domain.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if loadErr.Location != "garbage.pdf" {
		t.Errorf("error should name the source, got %q", loadErr.Location)
	}
}

func TestPDFLoader_RejectsTruncated(t *testing.T) {
	l := NewPDFLoader()

	// A header alone is not a parseable document.
	data := []byte("%PDF-1.4\n")
	_, _, err := l.Load(context.Background(), "truncated.pdf", bytes.NewReader(data), int64(len(data)))

	var loadErr *domain.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
}

func TestCollapseWhitespace(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"  leading and trailing  ", "leading and trailing"},
		{"line\nbreaks\tand\ttabs", "line breaks and tabs"},
		{"multiple   spaces", "multiple spaces"},
		{"\n\n\t ", ""},
	}

	for _, tc := range cases {
		if got := collapseWhitespace(tc.in); got != tc.want {
			t.Errorf("collapseWhitespace(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFingerprint_Stable(t *testing.T) {
	a := fingerprint("doc.pdf", 100)
	b := fingerprint("doc.pdf", 100)
	c := fingerprint("doc.pdf", 101)

	if a != b {
		t.Error("fingerprint must be stable for identical inputs")
	}
	if a == c {
		t.Error("fingerprint must change with content size")
	}
}
