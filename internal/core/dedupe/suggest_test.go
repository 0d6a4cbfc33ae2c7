package dedupe

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/namesake/internal/core/aliases"
	"github.com/agenthands/namesake/internal/core/model"
	"github.com/agenthands/namesake/internal/errors"
)

func TestSuggestParsesWrappedJSON(t *testing.T) {
	mock := &MockLLMClient{Responses: []string{
		"Here you go:\n```json\n{\"Kim Minjun\": [\"Kim Min-jun\", \"Gim Minjun\"], \"bad\": \"nope\", \"mixed\": [\"a\", 1]}\n```",
	}}
	s := NewSuggester(mock, SuggestOptions{}, nil, zerolog.Nop())

	sugg, err := s.Suggest(context.Background(), []string{"Kim Min-jun", "Gim Minjun"}, []string{"Park Junghwan"})
	require.NoError(t, err)

	assert.Equal(t, model.Suggestion{"Kim Minjun": {"Kim Min-jun", "Gim Minjun"}}, sugg)
	require.Len(t, mock.Prompts, 1)
	assert.Contains(t, mock.Prompts[0], "Park Junghwan")
	assert.Contains(t, mock.Prompts[0], "Kim Min-jun, Gim Minjun")
}

func TestSuggestRetriesWithParseError(t *testing.T) {
	mock := &MockLLMClient{Responses: []string{
		`{"Kim Minjun": [`,
		`{"Kim Minjun": ["Kim Min-jun"]}`,
	}}
	s := NewSuggester(mock, SuggestOptions{MaxRetries: 3}, nil, zerolog.Nop())

	sugg, err := s.Suggest(context.Background(), []string{"Kim Min-jun"}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Kim Min-jun"}, sugg["Kim Minjun"])
	require.Len(t, mock.Prompts, 2)
	assert.Contains(t, mock.Prompts[1], "Previous attempt failed with JSON decode error")
}

func TestSuggestExhaustion(t *testing.T) {
	mock := &MockLLMClient{Responses: []string{"no json", "still none"}}
	s := NewSuggester(mock, SuggestOptions{MaxRetries: 2}, nil, zerolog.Nop())

	sugg, err := s.Suggest(context.Background(), []string{"x"}, nil)

	assert.True(t, errors.IsCapabilityFailure(err))
	assert.Empty(t, sugg)
	assert.Len(t, mock.Prompts, 2)
}

func TestVerify(t *testing.T) {
	store, _ := aliases.New(map[string][]string{
		"Lee Sedol": {"Yi Se-tol"},
	})
	universe := map[string]bool{
		"Kim Min-jun": true,
		"Gim Minjun":  true,
		"Yi Se-tol":   true,
		"Lee Sedol":   true,
		"이세돌":         true,
	}

	got := Verify(model.Suggestion{
		"Kim Minjun": {"Kim Min-jun", "Gim Minjun", "Not In Universe"},
		"Yi Se-tol":  {"이세돌"},
		"Lee Sedol":  {"Yi Se-tol"},
		"Someone":    {"Lee Sedol"},
	}, universe, store)

	assert.Equal(t, model.Suggestion{
		"Kim Minjun": {"Gim Minjun", "Kim Min-jun"},
	}, got)
}

func TestRunAddsVerifiedAndPersistsPerChunk(t *testing.T) {
	mock := &MockLLMClient{Responses: []string{
		`{"Kim Minjun": ["Kim Min-jun"]}`,
		`{"Kim Minjun": ["Gim Minjun"], "Cho Chikun": ["Jo Chihun"]}`,
	}}
	p := &MockPersister{}
	s := NewSuggester(mock, SuggestOptions{ChunkSize: 2}, p, zerolog.Nop())
	store, _ := aliases.New(nil)

	sum, err := s.Run(context.Background(), []string{"Kim Min-jun", "Kim Minjun", "Gim Minjun", "Jo Chihun"}, store)
	require.NoError(t, err)

	assert.Equal(t, 2, sum.Chunks)
	assert.Equal(t, 2, sum.NewKeys)
	assert.Equal(t, 3, sum.AddedAliases)
	assert.Len(t, p.Saved, 2)
	assert.Equal(t, []string{"Kim Minjun", "Kim Min-jun", "Gim Minjun"}, store.AllKnown("Gim Minjun"))
	assert.Equal(t, "Cho Chikun", store.FindGroup("Jo Chihun"))
	assert.Contains(t, mock.Prompts[1], "Kim Minjun")
}

func TestRunSkipsFailedChunk(t *testing.T) {
	mock := &MockLLMClient{Errs: []error{assert.AnError}}
	p := &MockPersister{}
	s := NewSuggester(mock, SuggestOptions{ChunkSize: 10, MaxRetries: 1}, p, zerolog.Nop())
	store, _ := aliases.New(nil)

	sum, err := s.Run(context.Background(), []string{"a", "b"}, store)
	require.NoError(t, err)

	assert.Equal(t, 1, sum.FailedChunks)
	assert.Empty(t, p.Saved)
	assert.Equal(t, 0, store.Len())
}
