package port

// Renderer turns generated content into a downloadable document.
type Renderer interface {
	// Render produces a valid PDF byte stream containing the title and
	// the content with logical line breaks preserved.
	Render(title, content string) ([]byte, error)
}
