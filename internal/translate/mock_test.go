package translate

import (
	"context"

	"github.com/agenthands/namesake/internal/core/model"
)

type MockLLMClient struct {
	Response string
	Err      error
	Prompts  []string
}

func (m *MockLLMClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	return m.Response, m.Err
}

type MockTranslator struct {
	Result model.Translation
	Err    error
	Calls  int
}

func (m *MockTranslator) Translate(ctx context.Context, text, target string) (model.Translation, error) {
	m.Calls++
	return m.Result, m.Err
}
