package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agenthands/namesake/internal/core/dedupe"
	"github.com/agenthands/namesake/internal/core/model"
	"github.com/agenthands/namesake/internal/review"
	"github.com/agenthands/namesake/internal/storage"
)

func newPruneCommand(ctx *commandContext) *cobra.Command {
	var inPath, outPath string
	var dryRun, indent bool

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove alias names claimed by more than one player",
		Long: "Walks the catalog in ascending id order and drops every alias name a lower id\n" +
			"already carries. Primary keys are never touched.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.config
			logger := ctx.logger
			if inPath == "" {
				inPath = cfg.Path(cfg.Data.Catalog)
			}
			if outPath == "" {
				outPath = inPath
			}

			return withLock(cfg, logger, func() error {
				records, err := storage.LoadCatalog(inPath)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()

				if dryRun {
					printConflicts(out, dedupe.Conflicts(records))
				}

				pruned, report := dedupe.Prune(records)
				printPruneReport(out, report)

				if dryRun {
					fmt.Fprintln(out, "Dry run: catalog not written")
					return nil
				}
				if err := storage.SaveCatalog(outPath, pruned, indent); err != nil {
					return err
				}
				logger.Info().Str("path", outPath).Int("removed", report.Removed).Msg("Catalog pruned")
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&inPath, "in", "", "Catalog to prune (defaults to data.catalog)")
	cmd.Flags().StringVar(&outPath, "out", "", "Where to write the result (defaults to --in)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report conflicts and removals without writing")
	cmd.Flags().BoolVar(&indent, "indent", false, "Write indented JSON")
	return cmd
}

func printConflicts(out io.Writer, conflicts []dedupe.Conflict) {
	if len(conflicts) == 0 {
		fmt.Fprintln(out, "No records share alias names")
		return
	}
	rows := make([][]string, 0, len(conflicts))
	for _, c := range conflicts {
		ids := make([]string, len(c.IDs))
		for i, id := range c.IDs {
			ids[i] = strconv.FormatInt(id, 10)
		}
		rows = append(rows, []string{strings.Join(ids, ", "), strings.Join(c.Shared, ", ")})
	}
	printTable(out, []string{"Players", "Shared names"}, rows, nil)
}

func printPruneReport(out io.Writer, report model.PruneReport) {
	if len(report.Removals) > 0 {
		rows := make([][]string, 0, len(report.Removals))
		for _, r := range report.Removals {
			rows = append(rows, []string{strconv.FormatInt(r.ID, 10), r.PrimaryKey, strings.Join(r.Names, ", ")})
		}
		printTable(out, []string{"ID", "Primary key", "Removed"}, rows, []review.Alignment{review.AlignRight})
	}
	fmt.Fprintf(out, "Removed %d duplicate names; %d records, %d unique names\n",
		report.Removed, report.Records, report.UniqueNames)
}
