package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agenthands/namesake/internal/core/extend"
	"github.com/agenthands/namesake/internal/core/ids"
	"github.com/agenthands/namesake/internal/errors"
	"github.com/agenthands/namesake/internal/storage"
)

func newExtendCommand(ctx *commandContext) *cobra.Command {
	var inPath, outPath, universePath string
	var prune, indent bool

	cmd := &cobra.Command{
		Use:   "extend",
		Short: "Fold the curated alias groups into the catalog",
		Long: "Adds every alias group to the player that carries its representative, creating\n" +
			"synthetic players with negative ids for groups nobody carries. When a name\n" +
			"universe file exists the output is restricted to players carrying those names.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.config
			logger := ctx.logger
			if inPath == "" {
				inPath = cfg.Path(cfg.Data.Playerdb)
			}
			if outPath == "" {
				outPath = cfg.Path(cfg.Data.Catalog)
			}
			if universePath == "" {
				universePath = cfg.Path(cfg.Data.AllNames)
			}

			mode, err := ids.ParseMode(cfg.IDs.Mode)
			if err != nil {
				return err
			}

			return withLock(cfg, logger, func() error {
				records, err := storage.LoadCatalog(inPath)
				if err != nil {
					return err
				}
				groups, err := storage.LoadAliases(cfg.Path(cfg.Data.CustomAliases), logger)
				if err != nil {
					return err
				}
				store := newAliasStore(groups, logger)

				universe, err := storage.ReadNames(universePath)
				if err != nil {
					if !errors.IsMissing(err) {
						return err
					}
					logger.Debug().Str("path", universePath).Msg("No name universe, keeping every record")
					universe = nil
				}

				taken := make([]int64, len(records))
				for i, r := range records {
					taken[i] = r.ID
				}
				ext := extend.New(records, ids.New(mode, taken), logger)
				res := ext.Run(store, extend.Options{Universe: universe, Prune: prune})

				if err := storage.SaveCatalog(outPath, res.Records, indent); err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Wrote %d players to %s\n", len(res.Records), outPath)
				fmt.Fprintf(out, "Extended %d players with %d names, created %d, %d orphan names\n",
					res.Extended, res.Added, res.Created, res.Orphans)
				if res.Prune != nil {
					printPruneReport(out, *res.Prune)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&inPath, "in", "", "Source catalog (defaults to data.playerdb)")
	cmd.Flags().StringVar(&outPath, "out", "", "Destination catalog (defaults to data.catalog)")
	cmd.Flags().StringVar(&universePath, "universe", "", "Name universe file (defaults to data.all_names)")
	cmd.Flags().BoolVar(&prune, "prune", true, "Prune duplicate names from the result")
	cmd.Flags().BoolVar(&indent, "indent", false, "Write indented JSON")
	return cmd
}
