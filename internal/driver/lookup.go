package driver

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// GraphPlayer is a player node as read back from the graph.
type GraphPlayer struct {
	ID         int64
	PrimaryKey string
}

// SharedAlias is an alias node linked to two players.
type SharedAlias struct {
	Name string
	ID1  int64
	ID2  int64
}

// PlayersByAlias returns the players linked to the alias name, by id.
func PlayersByAlias(ctx context.Context, d GraphDriver, name string) ([]GraphPlayer, error) {
	res, err := d.ExecuteQuery(ctx, GetPlayersByAliasQuery, map[string]any{"name": name})
	if err != nil {
		return nil, fmt.Errorf("failed to look up alias %q: %w", name, err)
	}
	out := make([]GraphPlayer, 0, len(res.Records))
	for _, rec := range res.Records {
		out = append(out, GraphPlayer{
			ID:         int64From(rec, "id"),
			PrimaryKey: stringFrom(rec, "primary_key"),
		})
	}
	return out, nil
}

// SharedAliases lists every alias node that more than one player links to.
// A non-empty result after a prune means the graph is out of date.
func SharedAliases(ctx context.Context, d GraphDriver) ([]SharedAlias, error) {
	res, err := d.ExecuteQuery(ctx, GetSharedAliasesQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list shared aliases: %w", err)
	}
	out := make([]SharedAlias, 0, len(res.Records))
	for _, rec := range res.Records {
		out = append(out, SharedAlias{
			Name: stringFrom(rec, "name"),
			ID1:  int64From(rec, "id1"),
			ID2:  int64From(rec, "id2"),
		})
	}
	return out, nil
}

func int64From(rec *neo4j.Record, key string) int64 {
	v, _ := rec.Get(key)
	n, _ := v.(int64)
	return n
}

func stringFrom(rec *neo4j.Record, key string) string {
	v, _ := rec.Get(key)
	s, _ := v.(string)
	return s
}
