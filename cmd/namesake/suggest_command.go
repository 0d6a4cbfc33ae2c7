package main

import (
	"github.com/spf13/cobra"

	"github.com/agenthands/namesake/internal/core/dedupe"
	"github.com/agenthands/namesake/internal/review"
	"github.com/agenthands/namesake/internal/storage"
)

func newSuggestCommand(ctx *commandContext) *cobra.Command {
	var namesPath, outPath string

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Ask an LLM to cluster names that denote the same player",
		Long: "Sends the names file to the configured LLM in chunks and keeps only the\n" +
			"suggested aliases that appear in the names file and are not claimed yet.\n" +
			"Results go to a separate suggestions file for later curation.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.config
			logger := ctx.logger
			runCtx := cmd.Context()
			if namesPath == "" {
				namesPath = cfg.Path(cfg.Data.SuggestNames)
			}
			if outPath == "" {
				outPath = cfg.Path(cfg.Data.Suggestions)
			}

			return withLock(cfg, logger, func() error {
				names, err := storage.ReadNames(namesPath)
				if err != nil {
					return err
				}
				groups, err := storage.LoadAliases(outPath, logger)
				if err != nil {
					return err
				}
				store := newAliasStore(groups, logger)

				client, release, err := newLLM(runCtx, cfg, logger)
				if err != nil {
					return err
				}
				defer release()

				opts := dedupe.SuggestOptions{
					ChunkSize:  cfg.Suggest.ChunkSize,
					MaxRetries: cfg.Suggest.MaxRetries,
					Prompt:     cfg.Suggest.Prompt,
				}
				suggester := dedupe.NewSuggester(client, opts, storage.AliasFile{Path: outPath}, logger)
				sum, err := suggester.Run(runCtx, names, store)

				rows := [][]string{
					{"Chunks", itoa(sum.Chunks)},
					{"Failed chunks", itoa(sum.FailedChunks)},
					{"New keys", itoa(sum.NewKeys)},
					{"Added aliases", itoa(sum.AddedAliases)},
					{"Skipped keys", itoa(sum.SkippedKeys)},
				}
				printTable(cmd.OutOrStdout(), []string{"Suggestions", "Count"}, rows,
					[]review.Alignment{review.AlignLeft, review.AlignRight})
				return err
			})
		},
	}

	cmd.Flags().StringVar(&namesPath, "names", "", "Names file (defaults to data.suggest_names)")
	cmd.Flags().StringVar(&outPath, "out", "", "Suggestions file (defaults to data.suggestions)")
	return cmd
}
