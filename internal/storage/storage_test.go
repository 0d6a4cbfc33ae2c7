package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/namesake/internal/core/model"
	"github.com/agenthands/namesake/internal/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCatalogNormalized(t *testing.T) {
	path := writeFile(t, t.TempDir(), "catalog.json", `[
		{"id": 7, "primary_key": "이세돌", "aliases": [
			{"name": "이세돌", "languages": [{"language": "ko", "preferred": true}]},
			{"name": "Lee Sedol", "languages": []}
		]}
	]`)

	records, err := LoadCatalog(path)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "이세돌", records[0].PrimaryKey)
	assert.Equal(t, []string{"이세돌", "Lee Sedol"}, records[0].Names())
	assert.Equal(t, []string{"ko"}, records[0].Aliases[0].LanguageCodes())
}

func TestLoadCatalogPlayerdb(t *testing.T) {
	path := writeFile(t, t.TempDir(), "playerdb.json", `[
		{"id": 3, "key_name": "Cho Chikun", "names": [
			{"simplenames": [{"name": "조치훈", "languages": [{"language": "ko", "preferred": true}]}]},
			{"simplenames": [{"name": "Cho Chikun", "languages": [{"language": "en", "preferred": true}]}, {"name": "조치훈", "languages": []}]}
		]},
		{"key_name": "no id"}
	]`)

	records, err := LoadCatalog(path)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, int64(3), records[0].ID)
	assert.Equal(t, "Cho Chikun", records[0].PrimaryKey)
	assert.Equal(t, []string{"조치훈", "Cho Chikun"}, records[0].Names())
	assert.Equal(t, []string{"ko"}, records[0].Aliases[0].LanguageCodes())
}

func TestLoadCatalogKeyedObject(t *testing.T) {
	path := writeFile(t, t.TempDir(), "known.json", `{
		"Otake Hideo": {"id": 12, "aliases": [{"name": "大竹英雄", "languages": []}]},
		"-1": {"aliases": [{"name": "Unknown", "languages": []}]}
	}`)

	records, err := LoadCatalog(path)
	require.NoError(t, err)

	require.Len(t, records, 2)
	byID := map[int64]model.EntityRecord{}
	for _, r := range records {
		byID[r.ID] = r
	}
	assert.Equal(t, "Otake Hideo", byID[12].PrimaryKey)
	assert.Equal(t, "Unknown", byID[-1].DisplayName())
}

func TestParseCatalogKeepsIDZero(t *testing.T) {
	records, err := ParseCatalog([]byte(`[
		{"id": 0, "primary_key": "Go Seigen", "aliases": [{"name": "吳清源", "languages": []}]},
		{"primary_key": "No Id", "aliases": []},
		{"id": 5, "primary_key": "Sakata Eio", "aliases": []}
	]`))
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, int64(0), records[0].ID)
	assert.Equal(t, "Go Seigen", records[0].PrimaryKey)
	assert.Equal(t, int64(5), records[1].ID)

	keyed, err := ParseCatalog([]byte(`{"0": {"primary_key": "Go Seigen", "aliases": []}}`))
	require.NoError(t, err)
	require.Len(t, keyed, 1)
	assert.Equal(t, int64(0), keyed[0].ID)
}

func TestLoadCatalogErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadCatalog(filepath.Join(dir, "absent.json"))
	assert.ErrorIs(t, err, errors.ErrMissingRequiredInput)

	bad := writeFile(t, dir, "bad.json", `[{"id": `)
	_, err = LoadCatalog(bad)
	assert.ErrorIs(t, err, errors.ErrMalformedInput)
}

func TestSaveCatalogRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "catalog.json")
	in := []model.EntityRecord{{ID: -1, PrimaryKey: "Ke Jie", Aliases: []model.AliasEntry{
		{Name: "Ke Jie", Languages: []model.Language{{Code: "en"}}},
		{Name: "柯洁", Languages: []model.Language{}},
	}}}

	require.NoError(t, SaveCatalog(path, in, false))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "柯洁")
	assert.Contains(t, string(raw), `"primary_key":"Ke Jie"`)

	out, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestAliasFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom_aliases.json")

	groups, err := LoadAliases(path, zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, groups)

	f := AliasFile{Path: path}
	require.NoError(t, f.SaveAliases(map[string][]string{
		"b": {"<x>"},
		"a": {"y"},
	}))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": [\n    \"y\"\n  ],\n  \"b\": [\n    \"<x>\"\n  ]\n}\n", string(raw))

	groups, err = LoadAliases(path, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"a": {"y"}, "b": {"<x>"}}, groups)

	bad := writeFile(t, dir, "bad.json", "not json")
	groups, err = LoadAliases(bad, zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestRejectionFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rejected_alias_pairs.json")

	pairs, err := LoadRejections(path, zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, pairs)

	require.NoError(t, RejectionFile{Path: path}.SaveRejections([]model.CandidatePair{{ID1: 5, ID2: 6}, {ID1: -2, ID2: 9}}))
	pairs, err = LoadRejections(path, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, []model.CandidatePair{{ID1: 5, ID2: 6}, {ID1: -2, ID2: 9}}, pairs)

	odd := writeFile(t, dir, "odd.json", `[[1, 2], [3], [4, 5, 6]]`)
	pairs, err = LoadRejections(odd, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, []model.CandidatePair{{ID1: 1, ID2: 2}}, pairs)
}

func TestReadPairs(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "possible_aliases.txt", "5 6\n\n  10\t11 \n-1 3\n")

	pairs, err := ReadPairs(path)
	require.NoError(t, err)
	assert.Equal(t, []model.CandidatePair{{ID1: 5, ID2: 6}, {ID1: 10, ID2: 11}, {ID1: -1, ID2: 3}}, pairs)

	bad := writeFile(t, dir, "bad.txt", "1 2\n3 x\n")
	_, err = ReadPairs(bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrMalformedInput)
	assert.Contains(t, err.Error(), "bad.txt:2")

	_, err = ReadPairs(filepath.Join(dir, "absent.txt"))
	assert.ErrorIs(t, err, errors.ErrMissingRequiredInput)
}

func TestReadNames(t *testing.T) {
	path := writeFile(t, t.TempDir(), "names.txt", "Kim Min-jun\n\n  柯洁  \n")

	names, err := ReadNames(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Kim Min-jun", "柯洁"}, names)
}

func TestLock(t *testing.T) {
	dir := t.TempDir()

	first, err := AcquireLock(dir)
	require.NoError(t, err)

	_, err = AcquireLock(dir)
	assert.ErrorIs(t, err, errors.ErrLocked)

	require.NoError(t, first.Release())
	second, err := AcquireLock(dir)
	require.NoError(t, err)
	require.NoError(t, second.Release())
}
