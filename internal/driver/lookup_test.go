package driver

import (
	"context"
	"errors"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayersByAlias(t *testing.T) {
	keys := []string{"id", "primary_key"}
	mockDriver := &MockDriver{Results: map[string]neo4j.EagerResult{
		GetPlayersByAliasQuery: {
			Keys: keys,
			Records: []*neo4j.Record{
				{Keys: keys, Values: []any{int64(7), "Lee Sedol"}},
				{Keys: keys, Values: []any{int64(-1), "Yi Se-tol"}},
			},
		},
	}}

	players, err := PlayersByAlias(context.Background(), mockDriver, "이세돌")
	require.NoError(t, err)
	assert.Equal(t, []GraphPlayer{{ID: 7, PrimaryKey: "Lee Sedol"}, {ID: -1, PrimaryKey: "Yi Se-tol"}}, players)
	require.Len(t, mockDriver.Executed, 1)
	assert.Equal(t, "이세돌", mockDriver.Executed[0].Params["name"])
}

func TestSharedAliases(t *testing.T) {
	keys := []string{"name", "id1", "id2"}
	mockDriver := &MockDriver{Results: map[string]neo4j.EagerResult{
		GetSharedAliasesQuery: {
			Keys:    keys,
			Records: []*neo4j.Record{{Keys: keys, Values: []any{"Cho Chikun", int64(3), int64(4)}}},
		},
	}}

	shared, err := SharedAliases(context.Background(), mockDriver)
	require.NoError(t, err)
	assert.Equal(t, []SharedAlias{{Name: "Cho Chikun", ID1: 3, ID2: 4}}, shared)
}

func TestSharedAliasesError(t *testing.T) {
	mockDriver := &MockDriver{FailOn: GetSharedAliasesQuery, Err: errors.New("connection reset")}

	_, err := SharedAliases(context.Background(), mockDriver)
	assert.ErrorContains(t, err, "connection reset")
}
