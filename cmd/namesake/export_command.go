package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agenthands/namesake/internal/driver"
	"github.com/agenthands/namesake/internal/storage"
)

func newExportGraphCommand(ctx *commandContext) *cobra.Command {
	var batchSize int
	var skipIndices bool

	cmd := &cobra.Command{
		Use:   "export-graph",
		Short: "Mirror the catalog into Memgraph as players linked to alias nodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.config
			logger := ctx.logger
			runCtx := cmd.Context()

			if cfg.Memgraph.URI == "" {
				return fmt.Errorf("memgraph.uri is not set (or export MEMGRAPH_URI)")
			}
			records, err := storage.LoadCatalog(cfg.Path(cfg.Data.Catalog))
			if err != nil {
				return err
			}

			d, err := driver.NewMemgraphDriver(runCtx, cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password, logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := d.Close(runCtx); err != nil {
					logger.Warn().Err(err).Msg("Failed to close graph driver")
				}
			}()

			if !skipIndices {
				if err := d.BuildIndices(runCtx); err != nil {
					return err
				}
			}

			exporter := driver.NewExporter(d, logger)
			if batchSize > 0 {
				exporter.BatchSize = batchSize
			}
			stats, err := exporter.Export(runCtx, records)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d players with %d alias links (removed %d stale links, %d orphan aliases)\n",
				stats.Players, stats.Links, stats.RemovedLinks, stats.RemovedAliases)

			shared, err := driver.SharedAliases(runCtx, d)
			if err != nil {
				return err
			}
			if len(shared) > 0 {
				logger.Warn().Int("shared", len(shared)).Msg("Alias names linked to more than one player, run prune before exporting")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&batchSize, "batch-size", driver.DefaultBatchSize, "Players written per query")
	cmd.Flags().BoolVar(&skipIndices, "skip-indices", false, "Do not create graph indices first")
	return cmd
}
