package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/namesake/internal/config"
)

func TestNewClientProviders(t *testing.T) {
	ctx := context.Background()

	c, err := NewClient(ctx, config.LLMConfig{Provider: "OpenAI", Model: "gpt-4o-mini", APIKey: "k"}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, c)

	c, err = NewClient(ctx, config.LLMConfig{Provider: "claude", Model: "claude-3-5-sonnet-latest", APIKey: "k"}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &ClaudeClient{}, c)

	c, err = NewClient(ctx, config.LLMConfig{Provider: "ollama", Model: "llama3"}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, c)

	_, err = NewClient(ctx, config.LLMConfig{Provider: "eliza"}, zerolog.Nop())
	assert.EqualError(t, err, "unsupported llm provider: eliza")
}

func TestOpenAIGenerate(t *testing.T) {
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)

	var sent map[string]any
	httpmock.RegisterResponder(http.MethodPost, "https://llm.test/v1/chat/completions",
		func(req *http.Request) (*http.Response, error) {
			_ = json.NewDecoder(req.Body).Decode(&sent)
			return httpmock.NewJsonResponse(http.StatusOK, map[string]any{
				"id":      "cmpl-1",
				"object":  "chat.completion",
				"choices": []any{map[string]any{"index": 0, "message": map[string]any{"role": "assistant", "content": `{"Kim Minjun": []}`}}},
			})
		})

	c := NewOpenAIClient("k", "gpt-4o-mini", "https://llm.test/v1", 0)
	out, err := c.Generate(context.Background(), "cluster these")
	require.NoError(t, err)

	assert.Equal(t, `{"Kim Minjun": []}`, out)
	assert.Equal(t, "gpt-4o-mini", sent["model"])
	assert.EqualValues(t, DefaultMaxTokens, sent["max_tokens"])
}

func TestClaudeGenerate(t *testing.T) {
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)

	httpmock.RegisterResponder(http.MethodPost, "https://claude.test/v1/messages",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{
			"id":      "msg_1",
			"type":    "message",
			"role":    "assistant",
			"content": []any{map[string]any{"type": "text", "text": "{}"}},
		}))

	c := NewClaudeClient("k", "claude-3-5-sonnet-latest", "https://claude.test/v1", 0)
	out, err := c.Generate(context.Background(), "cluster these")
	require.NoError(t, err)
	assert.Equal(t, "{}", out)
}

func TestClaudeGenerateAPIError(t *testing.T) {
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)

	httpmock.RegisterResponder(http.MethodPost, "https://claude.test/v1/messages",
		httpmock.NewStringResponder(http.StatusInternalServerError, `{"type":"error","error":{"type":"api_error","message":"boom"}}`))

	c := NewClaudeClient("k", "claude-3-5-sonnet-latest", "https://claude.test/v1", 0)
	_, err := c.Generate(context.Background(), "cluster these")
	assert.Error(t, err)
}
