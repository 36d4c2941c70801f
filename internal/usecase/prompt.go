package usecase

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"tutobot/internal/domain"
)

//go:embed templates/*.txt
var promptTemplates embed.FS

// System prompts sent alongside the templated user prompts.
const (
	answerSystemPrompt = `You are a document assistant. Answer questions strictly from the
context supplied in the user message. If the context does not contain
the answer, say that the document does not cover it. Never invent
facts that are not in the context.`

	reformulateSystemPrompt = `You are TutoBot, an assistant that reformulates content while
maintaining the original structure and information volume.
Please reformulate the following text, ensuring it remains detailed
and accurate, without summarization or added content.`
)

type answerData struct {
	Query    string
	Segments []domain.ScoredSegment
	Part     int
	Total    int
}

type reduceData struct {
	Query    string
	Partials []string
}

func renderPrompt(name string, data any) (string, error) {
	content, err := promptTemplates.ReadFile("templates/" + name)
	if err != nil {
		return "", fmt.Errorf("template not found: %w", err)
	}

	tmpl, err := template.New(name).Funcs(templateFuncs()).Parse(string(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"inc": func(i int) int { return i + 1 },
		"formatSegments": func(segments []domain.ScoredSegment) string {
			var sb strings.Builder
			for i, s := range segments {
				sb.WriteString(fmt.Sprintf("### [%d] page %d\n", i+1, s.Segment.Page))
				sb.WriteString(s.Segment.Text)
				sb.WriteString("\n\n")
			}
			return sb.String()
		},
	}
}
