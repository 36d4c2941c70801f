package port

import "context"

// ChatModel is a remote chat-completion model.
type ChatModel interface {
	// Generate sends a system prompt and a user prompt and returns the
	// generated text. Failures surface as *domain.SynthesisError at
	// the call sites that own the synthesis stage.
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// ModelName returns the name of the model.
	ModelName() string
}
