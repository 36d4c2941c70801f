package llmclient

import (
	"context"
	"fmt"
	"os"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIChat generates text through the OpenAI chat completions API.
type OpenAIChat struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAIChat reads the API key from the given environment variable
// and returns a chat client for the model.
func NewOpenAIChat(apiKeyEnv, model string, timeout time.Duration) (*OpenAIChat, error) {
	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("API key not found in environment variable: %s", apiKeyEnv)
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &OpenAIChat{
		client:  openai.NewClient(apiKey),
		model:   model,
		timeout: timeout,
	}, nil
}

func (c *OpenAIChat) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: userPrompt},
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIChat) ModelName() string {
	return c.model
}
