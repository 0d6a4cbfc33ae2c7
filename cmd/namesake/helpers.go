package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agenthands/namesake/internal/config"
	"github.com/agenthands/namesake/internal/core/aliases"
	"github.com/agenthands/namesake/internal/core/index"
	"github.com/agenthands/namesake/internal/core/ledger"
	"github.com/agenthands/namesake/internal/core/model"
	"github.com/agenthands/namesake/internal/llm"
	"github.com/agenthands/namesake/internal/review"
	"github.com/agenthands/namesake/internal/storage"
)

// dataset is everything a consolidation run reads from the data directory.
type dataset struct {
	records []model.EntityRecord
	index   *index.Index
	aliases *aliases.Store
	ledger  *ledger.Ledger
}

// loadDataset reads the catalog, the alias store and the rejection ledger.
// With persist set, merges and rejections are written back as they happen.
func loadDataset(cfg *config.Config, logger zerolog.Logger, persist bool) (*dataset, error) {
	records, err := storage.LoadCatalog(cfg.Path(cfg.Data.Catalog))
	if err != nil {
		return nil, err
	}

	aliasPath := cfg.Path(cfg.Data.CustomAliases)
	groups, err := storage.LoadAliases(aliasPath, logger)
	if err != nil {
		return nil, err
	}
	var opts []aliases.Option
	if persist {
		opts = append(opts, aliases.WithPersister(storage.AliasFile{Path: aliasPath}))
	}
	store := newAliasStore(groups, logger, opts...)

	rejPath := cfg.Path(cfg.Data.Rejections)
	rejected, err := storage.LoadRejections(rejPath, logger)
	if err != nil {
		return nil, err
	}
	var lp ledger.Persister
	if persist {
		lp = storage.RejectionFile{Path: rejPath}
	}

	logger.Debug().
		Int("players", len(records)).
		Int("groups", store.Len()).
		Int("rejections", len(rejected)).
		Msg("Dataset loaded")

	return &dataset{
		records: records,
		index:   index.New(records),
		aliases: store,
		ledger:  ledger.New(rejected, lp),
	}, nil
}

// newAliasStore builds a store from loaded groups and warns about every name
// two groups claimed.
func newAliasStore(groups map[string][]string, logger zerolog.Logger, opts ...aliases.Option) *aliases.Store {
	store, conflicts := aliases.New(groups, opts...)
	for _, name := range conflicts {
		logger.Warn().Str("name", name).Msg("Alias claimed by more than one group, keeping the first")
	}
	return store
}

// withLock runs fn while holding the dataset lock.
func withLock(cfg *config.Config, logger zerolog.Logger, fn func() error) error {
	lock, err := storage.AcquireLock(cfg.Data.Dir)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn().Err(err).Str("path", lock.Path()).Msg("Failed to release lock")
		}
	}()
	return fn()
}

// newLLM builds the configured client. The returned func releases it.
func newLLM(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (llm.LLMClient, func(), error) {
	client, err := llm.NewClient(ctx, cfg.LLM, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("create llm client: %w", err)
	}
	release := func() {}
	if c, ok := client.(io.Closer); ok {
		release = func() {
			if err := c.Close(); err != nil {
				logger.Warn().Err(err).Msg("Failed to close llm client")
			}
		}
	}
	return client, release, nil
}

func printTable(out io.Writer, headers []string, rows [][]string, aligns []review.Alignment) {
	fmt.Fprintln(out, review.RenderTable(headers, rows, aligns))
}

// describeAlias renders an alias with its language tags, e.g. "이세돌 (ko, en)".
func describeAlias(a model.AliasEntry) string {
	codes := a.LanguageCodes()
	if len(codes) == 0 {
		return a.Name
	}
	return fmt.Sprintf("%s (%s)", a.Name, strings.Join(codes, ", "))
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
