package dedupe

import (
	"context"
)

type MockLLMClient struct {
	Responses []string
	Errs      []error
	Prompts   []string
}

func (m *MockLLMClient) Generate(ctx context.Context, prompt string) (string, error) {
	i := len(m.Prompts)
	m.Prompts = append(m.Prompts, prompt)
	if i < len(m.Errs) && m.Errs[i] != nil {
		return "", m.Errs[i]
	}
	if i < len(m.Responses) {
		return m.Responses[i], nil
	}
	return "{}", nil
}

type MockPersister struct {
	Saved []map[string][]string
}

func (m *MockPersister) SaveAliases(groups map[string][]string) error {
	m.Saved = append(m.Saved, groups)
	return nil
}
