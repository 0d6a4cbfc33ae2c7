package driver

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog"

	"github.com/agenthands/namesake/internal/core/model"
)

// DefaultBatchSize is the number of records sent per UNWIND.
const DefaultBatchSize = 500

// ExportStats counts what an export wrote.
type ExportStats struct {
	Players        int
	Links          int
	RemovedLinks   int
	RemovedAliases int
}

// Exporter mirrors the catalog into a graph as
// (:Player {id, primary_key})-[:KNOWN_AS {languages}]->(:Alias {name}).
// Exports are idempotent: reruns update in place and drop links to names a
// record no longer carries.
type Exporter struct {
	Driver    GraphDriver
	BatchSize int
	Logger    zerolog.Logger
	Now       func() time.Time
}

func NewExporter(d GraphDriver, logger zerolog.Logger) *Exporter {
	return &Exporter{
		Driver:    d,
		BatchSize: DefaultBatchSize,
		Logger:    logger,
		Now:       func() time.Time { return time.Now().UTC() },
	}
}

// Export writes records in batches.
func (e *Exporter) Export(ctx context.Context, records []model.EntityRecord) (ExportStats, error) {
	var stats ExportStats
	size := e.BatchSize
	if size <= 0 {
		size = DefaultBatchSize
	}
	exportedAt := e.Now().Format(time.RFC3339)

	for start := 0; start < len(records); start += size {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		batch := records[start:min(start+size, len(records))]

		players, links, stale := exportRows(batch)

		res, err := e.Driver.ExecuteQuery(ctx, SavePlayersQuery, map[string]any{"rows": players, "exported_at": exportedAt})
		if err != nil {
			return stats, fmt.Errorf("save players %d-%d: %w", start, start+len(batch), err)
		}
		stats.Players += countFrom(res, "players")

		if len(links) > 0 {
			res, err = e.Driver.ExecuteQuery(ctx, SaveAliasesQuery, map[string]any{"rows": links})
			if err != nil {
				return stats, fmt.Errorf("save aliases %d-%d: %w", start, start+len(batch), err)
			}
			stats.Links += countFrom(res, "links")
		}

		res, err = e.Driver.ExecuteQuery(ctx, DeleteStaleAliasLinksQuery, map[string]any{"rows": stale})
		if err != nil {
			return stats, fmt.Errorf("prune alias links %d-%d: %w", start, start+len(batch), err)
		}
		stats.RemovedLinks += countFrom(res, "removed")

		e.Logger.Debug().Int("from", start).Int("size", len(batch)).Msg("Exported batch")
	}

	res, err := e.Driver.ExecuteQuery(ctx, DeleteOrphanAliasesQuery, nil)
	if err != nil {
		return stats, fmt.Errorf("delete orphan aliases: %w", err)
	}
	stats.RemovedAliases = countFrom(res, "removed")

	e.Logger.Info().
		Int("players", stats.Players).
		Int("links", stats.Links).
		Int("removed_links", stats.RemovedLinks).
		Msg("Graph export complete")
	return stats, nil
}

func exportRows(batch []model.EntityRecord) (players, links, stale []map[string]any) {
	for _, r := range batch {
		players = append(players, map[string]any{
			"id":          r.ID,
			"primary_key": r.DisplayName(),
		})
		names := make([]string, 0, len(r.Aliases))
		for _, a := range r.Aliases {
			preferred := false
			for _, l := range a.Languages {
				preferred = preferred || l.Preferred
			}
			links = append(links, map[string]any{
				"id":        r.ID,
				"name":      a.Name,
				"languages": a.LanguageCodes(),
				"preferred": preferred,
			})
			names = append(names, a.Name)
		}
		stale = append(stale, map[string]any{"id": r.ID, "names": names})
	}
	return players, links, stale
}

func countFrom(res neo4j.EagerResult, key string) int {
	for _, rec := range res.Records {
		if v, ok := rec.Get(key); ok {
			if n, ok := v.(int64); ok {
				return int(n)
			}
		}
	}
	return 0
}
