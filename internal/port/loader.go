package port

import (
	"context"
	"io"

	"tutobot/internal/domain"
)

// Loader turns a document byte source into ordered text segments, one
// per page, in original page order.
type Loader interface {
	// Load parses the source and returns its document plus segments.
	// Returns *domain.LoadError if the source cannot be parsed or
	// contains zero extractable pages.
	Load(ctx context.Context, name string, r io.ReaderAt, size int64) (domain.Document, []domain.Segment, error)
}

// Fetcher retrieves a remote page and extracts its text in document
// order with markup stripped and whitespace collapsed.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (domain.Document, []domain.Segment, error)
}
