package classify

import (
	"context"

	"github.com/agenthands/namesake/internal/core/model"
)

type MockTranslator struct {
	Responses map[string]model.Translation
	Err       error
	Calls     []string
}

func (m *MockTranslator) Translate(ctx context.Context, text, target string) (model.Translation, error) {
	m.Calls = append(m.Calls, text+"->"+target)
	if m.Err != nil {
		return model.Translation{}, m.Err
	}
	return m.Responses[text], nil
}
