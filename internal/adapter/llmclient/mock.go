package llmclient

import (
	"context"
	"fmt"
	"sync"
)

// MockChat records prompts and returns canned responses. Used in tests
// to assert how many synthesis calls ran and what they were fed.
type MockChat struct {
	mu sync.Mutex

	// Respond, when set, computes the response from the prompts.
	// Otherwise a short deterministic string is returned.
	Respond func(systemPrompt, userPrompt string) (string, error)

	// Prompts holds every user prompt seen, in call order.
	Prompts []string
}

func (c *MockChat) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	c.mu.Lock()
	c.Prompts = append(c.Prompts, userPrompt)
	n := len(c.Prompts)
	c.mu.Unlock()

	if c.Respond != nil {
		return c.Respond(systemPrompt, userPrompt)
	}
	return fmt.Sprintf("mock response %d", n), nil
}

func (c *MockChat) ModelName() string {
	return "mock"
}

// Calls returns the number of Generate invocations so far.
func (c *MockChat) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.Prompts)
}
