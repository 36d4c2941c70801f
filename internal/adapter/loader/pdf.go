package loader

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"tutobot/internal/domain"
)

// PDFLoader extracts page text from PDF byte sources. One segment per
// page, in original page order.
type PDFLoader struct{}

func NewPDFLoader() *PDFLoader {
	return &PDFLoader{}
}

func (l *PDFLoader) Load(ctx context.Context, name string, r io.ReaderAt, size int64) (doc domain.Document, segments []domain.Segment, err error) {
	// The parser panics on some malformed files; surface those as
	// LoadError like any other unparseable input.
	defer func() {
		if rec := recover(); rec != nil {
			doc, segments = domain.Document{}, nil
			err = &domain.LoadError{Location: name, Err: fmt.Errorf("malformed PDF: %v", rec)}
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return domain.Document{}, nil, &domain.LoadError{Location: name, Err: fmt.Errorf("not a valid PDF: %w", err)}
	}

	doc = domain.Document{
		ID:       fingerprint(name, size),
		Name:     name,
		Source:   domain.SourcePDF,
		Location: name,
		LoadedAt: time.Now(),
	}

	numPages := reader.NumPage()
	segments = make([]domain.Segment, 0, numPages)

	for pageNum := 1; pageNum <= numPages; pageNum++ {
		if err := ctx.Err(); err != nil {
			return domain.Document{}, nil, err
		}

		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return domain.Document{}, nil, &domain.LoadError{Location: name, Err: fmt.Errorf("page %d: %w", pageNum, err)}
		}

		text = collapseWhitespace(text)
		if text == "" {
			continue
		}

		segments = append(segments, domain.Segment{
			ID:    len(segments),
			DocID: doc.ID,
			Page:  pageNum,
			Text:  text,
		})
	}

	if len(segments) == 0 {
		return domain.Document{}, nil, &domain.LoadError{Location: name}
	}

	return doc, segments, nil
}

// collapseWhitespace folds runs of whitespace into single spaces while
// keeping the text in document order.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func fingerprint(name string, size int64) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%s:%d", name, size)))
	return hex.EncodeToString(hash[:8])
}
