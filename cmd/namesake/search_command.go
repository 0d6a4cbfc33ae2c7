package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agenthands/namesake/internal/core/index"
	"github.com/agenthands/namesake/internal/core/model"
	"github.com/agenthands/namesake/internal/errors"
	"github.com/agenthands/namesake/internal/review"
	"github.com/agenthands/namesake/internal/storage"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var termsPath string

	cmd := &cobra.Command{
		Use:   "search [term...]",
		Short: "Find players whose names contain a term",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.config
			terms := args
			if termsPath != "" {
				fromFile, err := storage.ReadNames(termsPath)
				if err != nil {
					return err
				}
				terms = append(terms, fromFile...)
			}
			if len(terms) == 0 {
				return fmt.Errorf("give at least one search term or --file")
			}

			records, err := storage.LoadCatalog(cfg.Path(cfg.Data.Catalog))
			if err != nil {
				return err
			}
			results, unmatched := index.New(records).SearchAll(terms)

			out := cmd.OutOrStdout()
			if len(results) > 0 {
				rows := make([][]string, 0, len(results))
				for _, r := range results {
					rows = append(rows, []string{strconv.FormatInt(r.ID, 10), r.DisplayName(), strings.Join(r.Names(), ", ")})
				}
				printTable(out, []string{"ID", "Primary key", "Names"}, rows, []review.Alignment{review.AlignRight})
			}
			fmt.Fprintf(out, "%d players found\n", len(results))
			for _, term := range unmatched {
				fmt.Fprintf(out, "No match: %s\n", term)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&termsPath, "file", "f", "", "Read search terms from a file, one per line")
	return cmd
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print one player with every alias and its languages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.config
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid player id %q: %w", args[0], err)
			}

			records, err := storage.LoadCatalog(cfg.Path(cfg.Data.Catalog))
			if err != nil {
				return err
			}
			rec, ok := index.New(records).Record(id)
			if !ok {
				return errors.NewNotFoundError("player", args[0])
			}
			printRecord(cmd.OutOrStdout(), rec)
			return nil
		},
	}
}

func printRecord(out io.Writer, rec model.EntityRecord) {
	fmt.Fprintf(out, "%d  %s\n", rec.ID, rec.DisplayName())
	for _, a := range rec.Aliases {
		fmt.Fprintf(out, "  %s\n", describeAlias(a))
	}
}
