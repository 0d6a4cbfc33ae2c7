package llm

import (
	"context"
)

// LLMClient completes a single prompt.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// SystemPrompt frames every request made for namesake.
const SystemPrompt = "You are a helpful assistant that specializes in identifying duplicate names and aliases, " +
	"with expertise in Korean, Japanese, and Chinese name romanizations and translations. " +
	"You must respond with valid JSON only."

// DefaultMaxTokens bounds a response when the configuration does not.
const DefaultMaxTokens = 1000
