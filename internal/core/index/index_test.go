package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/namesake/internal/core/model"
)

func alias(names ...string) []model.AliasEntry {
	out := make([]model.AliasEntry, 0, len(names))
	for _, n := range names {
		out = append(out, model.AliasEntry{Name: n, Languages: []model.Language{}})
	}
	return out
}

func testCatalog() []model.EntityRecord {
	return []model.EntityRecord{
		{ID: 11, PrimaryKey: "Kim Minjun", Aliases: alias("Kim Minjun")},
		{ID: 10, PrimaryKey: "Kim Min-jun", Aliases: alias("Kim Min-jun", "김민준")},
		{ID: 3, Aliases: alias("Lee Sedol", "이세돌")},
		{ID: -1, PrimaryKey: "Gu Li", Aliases: alias("Gu Li", "古力")},
	}
}

func TestLookup(t *testing.T) {
	idx := New(testCatalog())

	e, ok := idx.Lookup(10)
	require.True(t, ok)
	assert.Equal(t, "Kim Min-jun", e.PrimaryKey)
	assert.Equal(t, []string{"Kim Min-jun", "김민준"}, e.Known)

	e, ok = idx.Lookup(3)
	require.True(t, ok)
	assert.Equal(t, "Lee Sedol", e.PrimaryKey, "falls back to the first alias")

	_, ok = idx.Lookup(99)
	assert.False(t, ok)
	assert.Equal(t, []int64{-1, 3, 10, 11}, idx.IDs())
}

func TestIndexIsIsolatedFromInput(t *testing.T) {
	records := testCatalog()
	idx := New(records)
	records[0].Aliases[0].Name = "mutated"

	e, _ := idx.Lookup(11)
	assert.Equal(t, []string{"Kim Minjun"}, e.Known)
}

func TestIDByNameLowestIDWins(t *testing.T) {
	records := append(testCatalog(), model.EntityRecord{ID: 2, Aliases: alias("古力")})
	idx := New(records)

	id, ok := idx.IDByName("古力")
	require.True(t, ok)
	assert.Equal(t, int64(-1), id)

	id, ok = idx.IDByName("이세돌")
	require.True(t, ok)
	assert.Equal(t, int64(3), id)

	_, ok = idx.IDByName("Ke Jie")
	assert.False(t, ok)
}

func TestSearch(t *testing.T) {
	idx := New(testCatalog())

	hits := idx.Search("min-JUN")
	require.Len(t, hits, 1)
	assert.Equal(t, int64(10), hits[0].ID)

	hits = idx.Search("KIM")
	assert.Len(t, hits, 2)
	assert.Empty(t, idx.Search("  "))
}

func TestSearchAll(t *testing.T) {
	idx := New(testCatalog())

	hits, unmatched := idx.SearchAll([]string{"sedol", "古", "Ke Jie", "이세"})
	require.Len(t, hits, 2)
	assert.Equal(t, int64(-1), hits[0].ID)
	assert.Equal(t, int64(3), hits[1].ID)
	assert.Equal(t, []string{"Ke Jie"}, unmatched)
}
