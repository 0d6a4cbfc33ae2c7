package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agenthands/namesake/internal/core"
	"github.com/agenthands/namesake/internal/core/classify"
	"github.com/agenthands/namesake/internal/journal"
	"github.com/agenthands/namesake/internal/llm"
	"github.com/agenthands/namesake/internal/review"
	"github.com/agenthands/namesake/internal/storage"
	"github.com/agenthands/namesake/internal/translate"
)

func newClassifyCommand(ctx *commandContext) *cobra.Command {
	var pairsPath string
	var noJournal bool
	var noTranslate bool

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Review candidate pairs and merge the ones that name the same player",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.config
			logger := ctx.logger
			runCtx := cmd.Context()

			if pairsPath == "" {
				pairsPath = cfg.Path(cfg.Data.Pairs)
			}

			return withLock(cfg, logger, func() error {
				data, err := loadDataset(cfg, logger, true)
				if err != nil {
					return err
				}
				pairs, err := storage.ReadPairs(pairsPath)
				if err != nil {
					return err
				}

				var translator classify.Translator
				if cfg.Classify.Translate && !noTranslate {
					var client llm.LLMClient
					if strings.EqualFold(cfg.Translate.Provider, "llm") {
						c, release, err := newLLM(runCtx, cfg, logger)
						if err != nil {
							return err
						}
						defer release()
						client = c
					}
					translator, err = translate.New(runCtx, cfg.Translate, client, logger)
					if err != nil {
						return fmt.Errorf("create translator: %w", err)
					}
				}

				opts := classify.Options{
					ReferenceLanguage: cfg.Classify.ReferenceLanguage,
					MinPrefixRunes:    cfg.Classify.MinPrefixRunes,
					Translate:         translator != nil,
				}
				classifier := classify.NewClassifier(data.index, data.aliases, data.ledger, translator, opts, logger)

				var j core.Journal
				if !noJournal && cfg.Data.Journal != "" {
					store, err := journal.Open(runCtx, cfg.Path(cfg.Data.Journal))
					if err != nil {
						return err
					}
					defer func() {
						if err := store.Close(); err != nil {
							logger.Warn().Err(err).Msg("Failed to close journal")
						}
					}()
					j = store
				}

				out := cmd.OutOrStdout()
				engine := core.NewEngine(classifier, review.NewTerminal(cmd.InOrStdin(), out), j, logger)
				sum, err := engine.Run(runCtx, pairs)
				printSummary(out, sum)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&pairsPath, "pairs", "", "Candidate pairs file (defaults to data.pairs)")
	cmd.Flags().BoolVar(&noJournal, "no-journal", false, "Do not record decisions in the journal")
	cmd.Flags().BoolVar(&noTranslate, "no-translate", false, "Skip the translation step")
	return cmd
}

func printSummary(out io.Writer, sum core.Summary) {
	rows := [][]string{
		{"Run", sum.RunID},
		{"Pairs", itoa(sum.Total)},
		{"Not yet rejected", itoa(sum.Remaining)},
		{"Processed", itoa(sum.Processed)},
		{"Skipped", itoa(sum.Skipped)},
		{"Auto-accepted", itoa(sum.AutoAccepted)},
		{"Accepted", itoa(sum.Accepted)},
		{"Rejected", itoa(sum.Rejected)},
		{"Aborted", yesNo(sum.Aborted)},
	}
	printTable(out, []string{"Summary", "Value"}, rows, []review.Alignment{review.AlignLeft, review.AlignRight})
}
