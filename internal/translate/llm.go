package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/agenthands/namesake/internal/core/common"
	"github.com/agenthands/namesake/internal/core/model"
	"github.com/agenthands/namesake/internal/errors"
	"github.com/agenthands/namesake/internal/llm"
)

const llmPrompt = `Translate or romanize the following player name into the language with code %q.
Detect the language of the input name.

Name: %s

Return a JSON object with the translated name and the ISO 639-1 code of the detected source language:
{"text": "translated name", "source": "ko"}`

type llmTranslation struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// LLM translates names by prompting a language model.
type LLM struct {
	Client llm.LLMClient
}

func NewLLM(client llm.LLMClient) *LLM {
	return &LLM{Client: client}
}

func (l *LLM) Translate(ctx context.Context, text, target string) (model.Translation, error) {
	response, err := l.Client.Generate(ctx, fmt.Sprintf(llmPrompt, target, text))
	if err != nil {
		return model.Translation{}, errors.NewCapabilityError("translate", err)
	}
	parsed, err := common.ParseJSON[llmTranslation](response)
	if err != nil {
		return model.Translation{}, errors.NewCapabilityError("translate", err)
	}
	return model.Translation{
		Text:   strings.TrimSpace(parsed.Text),
		Source: strings.ToLower(strings.TrimSpace(parsed.Source)),
	}, nil
}
