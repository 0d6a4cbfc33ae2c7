// Package driver mirrors the player catalog into a Bolt-speaking graph
// database (Memgraph or Neo4j) and reads it back.
package driver

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// GraphDriver runs Cypher against the graph holding Player and Alias nodes.
type GraphDriver interface {
	ExecuteQuery(ctx context.Context, query string, params map[string]any) (neo4j.EagerResult, error)
	// BuildIndices creates the Player(id), Player(primary_key) and Alias(name) indexes.
	BuildIndices(ctx context.Context) error
	Close(ctx context.Context) error
}
