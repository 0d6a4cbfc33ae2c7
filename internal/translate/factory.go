package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agenthands/namesake/internal/config"
	"github.com/agenthands/namesake/internal/core/classify"
	"github.com/agenthands/namesake/internal/llm"
)

// New builds the configured translator. It returns nil for provider "none".
// client is only consulted for provider "llm".
func New(ctx context.Context, cfg config.TranslateConfig, client llm.LLMClient, logger zerolog.Logger) (classify.Translator, error) {
	var t classify.Translator
	switch strings.ToLower(cfg.Provider) {
	case "", "none":
		return nil, nil
	case "google":
		g, err := NewGoogle(ctx, cfg.APIKey, cfg.BaseURL, nil)
		if err != nil {
			return nil, err
		}
		t = g
	case "llm":
		if client == nil {
			return nil, fmt.Errorf("translate provider llm needs an llm client")
		}
		t = NewLLM(client)
	default:
		return nil, fmt.Errorf("unsupported translate provider: %s", cfg.Provider)
	}

	ttl, err := cfg.TTL()
	if err != nil {
		return nil, fmt.Errorf("parse cache ttl: %w", err)
	}
	if ttl > 0 {
		logger.Debug().Dur("ttl", ttl).Msg("Translation memo enabled")
		t = NewCached(t, ttl)
	}
	return t, nil
}
