package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

// PDFRenderer writes generated content into a downloadable PDF with a
// centered title and the body text with line breaks preserved.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) Render(title, content string) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.Ln(30)
	doc.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	doc.Ln(10)

	doc.SetFont("Helvetica", "", 12)
	// MultiCell wraps long lines; splitting first keeps the author's
	// paragraph breaks intact.
	for _, line := range strings.Split(content, "\n") {
		doc.MultiCell(0, 10, line, "", "L", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
