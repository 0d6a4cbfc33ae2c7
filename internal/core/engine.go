package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agenthands/namesake/internal/core/aliases"
	"github.com/agenthands/namesake/internal/core/classify"
	"github.com/agenthands/namesake/internal/core/ledger"
	"github.com/agenthands/namesake/internal/core/model"
)

// Reviewer is the human decision channel.
type Reviewer interface {
	Review(ctx context.Context, res classify.Result) (model.Verdict, error)
}

// Journal records every decision of a run. Failures are logged, never fatal.
type Journal interface {
	Record(ctx context.Context, d model.Decision) error
}

// Summary counts what a run did.
type Summary struct {
	RunID        string
	Total        int
	Remaining    int
	Processed    int
	Skipped      int
	AutoAccepted int
	Accepted     int
	Rejected     int
	Aborted      bool
}

// Engine drives candidate pairs through the classifier and applies the
// resulting merges and rejections.
type Engine struct {
	Classifier *classify.Classifier
	Aliases    *aliases.Store
	Ledger     *ledger.Ledger
	Reviewer   Reviewer
	Journal    Journal
	Logger     zerolog.Logger

	UUIDGenerator func() string
	Now           func() time.Time
}

// NewEngine wires an engine around a classifier. journal may be nil.
func NewEngine(c *classify.Classifier, reviewer Reviewer, journal Journal, logger zerolog.Logger) *Engine {
	return &Engine{
		Classifier: c,
		Aliases:    c.Aliases,
		Ledger:     c.Ledger,
		Reviewer:   reviewer,
		Journal:    journal,
		Logger:     logger,
		UUIDGenerator: func() string {
			return uuid.New().String()
		},
		Now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Run processes pairs in order. An abort verdict stops the run and is
// reported through Summary.Aborted, not as an error.
func (e *Engine) Run(ctx context.Context, pairs []model.CandidatePair) (Summary, error) {
	sum := Summary{
		RunID:     e.UUIDGenerator(),
		Total:     len(pairs),
		Remaining: len(pairs) - e.Ledger.Len(),
	}
	log := e.Logger.With().Str("run_id", sum.RunID).Logger()
	log.Info().Int("total", sum.Total).Int("remaining", sum.Remaining).Msg("Starting consolidation run")

	for i, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		res := e.Classifier.Classify(ctx, pair)
		pairLog := log.With().Int("n", i+1).Int64("id1", pair.ID1).Int64("id2", pair.ID2).Logger()

		switch res.Outcome {
		case classify.Skip:
			sum.Skipped++
			if res.Reason != classify.ReasonRejected {
				pairLog.Debug().Str("reason", res.Reason).Msg("Skipping pair")
			}
			e.record(ctx, sum.RunID, res, "", "")

		case classify.AutoAccept:
			rep, err := e.merge(res)
			if err != nil {
				return sum, err
			}
			sum.AutoAccepted++
			pairLog.Info().
				Str("name1", res.Left.PrimaryKey).
				Str("name2", res.Right.PrimaryKey).
				Str("reason", res.Reason).
				Str("representative", rep).
				Msg("Auto-accepted alias pair")
			e.record(ctx, sum.RunID, res, "", rep)

		case classify.NeedsReview:
			verdict, err := e.Reviewer.Review(ctx, res)
			if err != nil {
				return sum, fmt.Errorf("review pair %s: %w", pair, err)
			}
			switch verdict {
			case model.Accept:
				rep, err := e.merge(res)
				if err != nil {
					return sum, err
				}
				sum.Accepted++
				pairLog.Info().Str("representative", rep).Msg("Aliases added")
				e.record(ctx, sum.RunID, res, verdict.String(), rep)
			case model.Reject:
				if err := e.Ledger.Reject(pair); err != nil {
					return sum, err
				}
				sum.Rejected++
				pairLog.Info().Msg("Alias pair rejected")
				e.record(ctx, sum.RunID, res, verdict.String(), "")
			case model.Abort:
				sum.Aborted = true
				log.Info().Int("processed", sum.Processed).Msg("Run aborted by reviewer")
				e.record(ctx, sum.RunID, res, verdict.String(), "")
				return sum, nil
			default:
				return sum, fmt.Errorf("review pair %s: unknown verdict %d", pair, verdict)
			}
		}
		sum.Processed++
	}

	log.Info().
		Int("auto_accepted", sum.AutoAccepted).
		Int("accepted", sum.Accepted).
		Int("rejected", sum.Rejected).
		Int("skipped", sum.Skipped).
		Msg("Consolidation run complete")
	return sum, nil
}

func (e *Engine) merge(res classify.Result) (string, error) {
	extra := make([]string, 0, len(res.Left.Custom)+len(res.Right.Custom))
	extra = append(extra, res.Left.Custom...)
	extra = append(extra, res.Right.Custom...)
	rep, err := e.Aliases.Merge(res.Left.PrimaryKey, res.Right.PrimaryKey, extra)
	if err != nil {
		return "", fmt.Errorf("merge pair %s: %w", res.Pair, err)
	}
	return rep, nil
}

func (e *Engine) record(ctx context.Context, runID string, res classify.Result, verdict, rep string) {
	if e.Journal == nil {
		return
	}
	d := model.Decision{
		RunID:          runID,
		Pair:           res.Pair,
		Name1:          res.Left.PrimaryKey,
		Name2:          res.Right.PrimaryKey,
		Outcome:        res.Outcome.String(),
		Verdict:        verdict,
		Reason:         res.Reason,
		Representative: rep,
		At:             e.Now(),
	}
	if err := e.Journal.Record(ctx, d); err != nil {
		e.Logger.Warn().Err(err).Stringer("pair", res.Pair).Msg("Failed to journal decision")
	}
}
