// Package translate provides the translation capability used by the
// classifier: Google Cloud Translation, an LLM fallback and a memo in front
// of either.
package translate

import (
	"context"
	"fmt"
	"html"
	"net/http"

	"google.golang.org/api/option"
	translatev2 "google.golang.org/api/translate/v2"

	"github.com/agenthands/namesake/internal/core/model"
	"github.com/agenthands/namesake/internal/errors"
)

// Google calls the Cloud Translation v2 REST API.
type Google struct {
	svc *translatev2.Service
}

// NewGoogle creates a client. baseURL and httpClient are optional and exist
// for proxies and tests.
func NewGoogle(ctx context.Context, apiKey, baseURL string, httpClient *http.Client) (*Google, error) {
	var opts []option.ClientOption
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	} else {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	if baseURL != "" {
		opts = append(opts, option.WithEndpoint(baseURL))
	}
	svc, err := translatev2.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create translate service: %w", err)
	}
	return &Google{svc: svc}, nil
}

// Translate renders text in target and reports the detected source language.
func (g *Google) Translate(ctx context.Context, text, target string) (model.Translation, error) {
	resp, err := g.svc.Translations.List([]string{text}, target).Format("text").Context(ctx).Do()
	if err != nil {
		return model.Translation{}, errors.NewCapabilityError("translate", err)
	}
	if len(resp.Translations) == 0 {
		return model.Translation{}, errors.NewCapabilityError("translate", fmt.Errorf("empty response for %q", text))
	}
	t := resp.Translations[0]
	return model.Translation{
		Text:   html.UnescapeString(t.TranslatedText),
		Source: t.DetectedSourceLanguage,
	}, nil
}
