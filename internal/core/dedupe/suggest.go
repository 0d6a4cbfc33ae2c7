package dedupe

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agenthands/namesake/internal/core/aliases"
	"github.com/agenthands/namesake/internal/core/common"
	"github.com/agenthands/namesake/internal/core/model"
	"github.com/agenthands/namesake/internal/errors"
	"github.com/agenthands/namesake/internal/llm"
)

// DefaultSuggestPrompt takes the known primary keys and the chunk of names, in that order.
const DefaultSuggestPrompt = `Given the following list of names, identify any names that refer to the same person (duplicates or aliases).
Pay special attention to Korean and Japanese name romanizations, as they often have multiple valid spellings.

IMPORTANT: When identifying duplicates, prefer using these existing primary keys if they match:
%s

For example:
- Korean names might have different romanizations (e.g., "Kim" vs "Gim", "Park" vs "Bak")
- Japanese names might have different romanizations (e.g., "Sato" vs "Satoh", "Ota" vs "Ohta")
- Names might have different spacing or hyphenation (e.g., "Kim Min-jun" vs "Kim Minjun")
- Names might have different order (e.g., "Kim Min-jun" vs "Min-jun Kim")

Return a JSON object mapping a romanized primary key to the list of its aliases:
{
    "romanized_name": ["alias1", "alias2"]
}

Rules:
1. The key must be a romanized name (Latin characters)
2. The value must be an array of strings
3. Do not include any text before or after the JSON
4. If no duplicates are found, return an empty object {}
5. When possible, use one of the existing primary keys listed above
6. Only include keys that have at least one alias

Names to process:
%s`

// SuggestOptions bound the LLM conversation.
type SuggestOptions struct {
	ChunkSize  int
	MaxRetries int
	Prompt     string
}

// DefaultSuggestOptions returns chunks of 100 names and three attempts per chunk.
func DefaultSuggestOptions() SuggestOptions {
	return SuggestOptions{ChunkSize: 100, MaxRetries: 3, Prompt: DefaultSuggestPrompt}
}

// SuggestSummary counts what a suggestion pass added.
type SuggestSummary struct {
	Chunks       int
	FailedChunks int
	NewKeys      int
	AddedAliases int
	SkippedKeys  int
}

type Suggester struct {
	LLM       llm.LLMClient
	Options   SuggestOptions
	Persister aliases.Persister
	Logger    zerolog.Logger
}

func NewSuggester(client llm.LLMClient, opts SuggestOptions, p aliases.Persister, logger zerolog.Logger) *Suggester {
	def := DefaultSuggestOptions()
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = def.ChunkSize
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = def.MaxRetries
	}
	if opts.Prompt == "" {
		opts.Prompt = def.Prompt
	}
	return &Suggester{LLM: client, Options: opts, Persister: p, Logger: logger}
}

// Suggest asks the LLM to cluster one chunk of names. A response that cannot
// be parsed is retried with the parse error appended to the prompt. Entries
// whose value is not a list of strings are dropped one by one.
func (s *Suggester) Suggest(ctx context.Context, chunk []string, knownKeys []string) (model.Suggestion, error) {
	keys := append([]string(nil), knownKeys...)
	sort.Strings(keys)
	prompt := fmt.Sprintf(s.Options.Prompt, strings.Join(keys, ", "), strings.Join(chunk, ", "))

	var lastErr error
	for attempt := 1; attempt <= s.Options.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		response, err := s.LLM.Generate(ctx, prompt)
		if err != nil {
			lastErr = err
			s.Logger.Warn().Err(err).Int("attempt", attempt).Msg("Suggestion request failed")
			continue
		}

		raw, err := common.ParseJSON[map[string]any](response)
		if err != nil {
			lastErr = err
			s.Logger.Warn().Err(err).Int("attempt", attempt).Msg("Suggestion response was not valid JSON")
			prompt += fmt.Sprintf("\n\nPrevious attempt failed with JSON decode error: %v. Please ensure your response is valid JSON.", err)
			continue
		}
		return s.validEntries(raw), nil
	}
	return model.Suggestion{}, errors.NewCapabilityError("suggest", fmt.Errorf("no usable response after %d attempts: %w", s.Options.MaxRetries, lastErr))
}

func (s *Suggester) validEntries(raw map[string]any) model.Suggestion {
	out := make(model.Suggestion, len(raw))
	for key, value := range raw {
		list, ok := value.([]any)
		if !ok {
			s.Logger.Debug().Str("key", key).Msg("Dropping suggestion with non-list value")
			continue
		}
		names := make([]string, 0, len(list))
		for _, v := range list {
			name, ok := v.(string)
			if !ok {
				names = nil
				break
			}
			names = append(names, name)
		}
		if names == nil {
			s.Logger.Debug().Str("key", key).Msg("Dropping suggestion with non-string alias")
			continue
		}
		out[key] = names
	}
	return out
}

// Verify keeps only what can be trusted: keys that are not already somebody
// else's alias, and aliases that appear in universe and are not yet claimed
// by any group. Keys left without aliases are dropped.
func Verify(sugg model.Suggestion, universe map[string]bool, store *aliases.Store) model.Suggestion {
	out := make(model.Suggestion)
	for key, list := range sugg {
		if store.FindGroup(key) != key {
			continue
		}
		seen := make(map[string]bool, len(list))
		var verified []string
		for _, name := range list {
			if name == key || seen[name] || !universe[name] {
				continue
			}
			if store.IsRepresentative(name) || store.FindGroup(name) != name {
				continue
			}
			seen[name] = true
			verified = append(verified, name)
		}
		if len(verified) > 0 {
			sort.Strings(verified)
			out[key] = verified
		}
	}
	return out
}

// Run clusters names chunk by chunk and adds every verified entry to store,
// persisting after each chunk. Capability failures skip the chunk.
func (s *Suggester) Run(ctx context.Context, names []string, store *aliases.Store) (SuggestSummary, error) {
	var sum SuggestSummary
	universe := make(map[string]bool, len(names))
	for _, n := range names {
		universe[n] = true
	}

	for start := 0; start < len(names); start += s.Options.ChunkSize {
		end := min(start+s.Options.ChunkSize, len(names))
		chunk := names[start:end]
		sum.Chunks++
		log := s.Logger.With().Int("chunk", sum.Chunks).Int("size", len(chunk)).Logger()

		raw, err := s.Suggest(ctx, chunk, store.Representatives())
		if err != nil {
			if ctx.Err() != nil {
				return sum, ctx.Err()
			}
			sum.FailedChunks++
			log.Warn().Err(err).Msg("Skipping chunk")
			continue
		}

		verified := Verify(raw, universe, store)
		sum.SkippedKeys += len(raw) - len(verified)
		keys := make([]string, 0, len(verified))
		for k := range verified {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if !store.IsRepresentative(key) {
				sum.NewKeys++
			}
			skipped := store.Add(key, verified[key]...)
			sum.AddedAliases += len(verified[key]) - len(skipped)
			log.Debug().Str("key", key).Strs("aliases", verified[key]).Msg("Added suggested aliases")
		}

		if s.Persister != nil {
			if err := s.Persister.SaveAliases(store.Groups()); err != nil {
				return sum, fmt.Errorf("persist suggestions after chunk %d: %w", sum.Chunks, err)
			}
		}
		log.Info().Int("accepted", len(verified)).Msg("Chunk processed")
	}
	return sum, nil
}
