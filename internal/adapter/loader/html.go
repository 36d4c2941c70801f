package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"tutobot/internal/adapter/chunker"
	"tutobot/internal/domain"
)

// URLFetcher retrieves a web page and extracts its visible text in
// document order with markup stripped and whitespace collapsed.
type URLFetcher struct {
	client     *http.Client
	maxSegment int
}

func NewURLFetcher(timeout time.Duration, maxSegmentLen int) *URLFetcher {
	if maxSegmentLen <= 0 {
		maxSegmentLen = 6000
	}
	return &URLFetcher{
		client:     &http.Client{Timeout: timeout},
		maxSegment: maxSegmentLen,
	}
}

func (f *URLFetcher) Fetch(ctx context.Context, url string) (domain.Document, []domain.Segment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Document{}, nil, &domain.LoadError{Location: url, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return domain.Document{}, nil, &domain.LoadError{Location: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Document{}, nil, &domain.LoadError{Location: url, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	doc, segments, err := f.extract(url, resp.Body)
	if err != nil {
		return domain.Document{}, nil, err
	}
	return doc, segments, nil
}

func (f *URLFetcher) extract(url string, body io.Reader) (domain.Document, []domain.Segment, error) {
	page, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return domain.Document{}, nil, &domain.LoadError{Location: url, Err: err}
	}

	page.Find("script, style, noscript").Remove()

	text := selectionText(page.Find("body"))
	if text == "" {
		// Some documents carry all text outside <body>.
		text = selectionText(page.Selection)
	}
	if text == "" {
		return domain.Document{}, nil, &domain.LoadError{Location: url}
	}

	doc := domain.Document{
		ID:       fingerprint(url, int64(len(text))),
		Name:     url,
		Source:   domain.SourceURL,
		Location: url,
		LoadedAt: time.Now(),
	}

	// A web page has no page grid, so segment it into embedding-sized
	// windows directly.
	parts := chunker.SplitWords(text, f.maxSegment)
	segments := make([]domain.Segment, len(parts))
	for i, part := range parts {
		segments[i] = domain.Segment{
			ID:    i,
			DocID: doc.ID,
			Page:  i + 1,
			Text:  part,
		}
	}

	return doc, segments, nil
}

// selectionText gathers the text nodes under sel in document order,
// separated by spaces so adjacent elements never run together, with
// whitespace collapsed.
func selectionText(sel *goquery.Selection) string {
	var sb strings.Builder
	for _, node := range sel.Nodes {
		appendText(node, &sb)
	}
	return collapseWhitespace(sb.String())
}

func appendText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteByte(' ')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		appendText(c, sb)
	}
}
