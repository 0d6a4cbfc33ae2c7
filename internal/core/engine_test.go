package core

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/namesake/internal/core/aliases"
	"github.com/agenthands/namesake/internal/core/classify"
	"github.com/agenthands/namesake/internal/core/index"
	"github.com/agenthands/namesake/internal/core/ledger"
	"github.com/agenthands/namesake/internal/core/model"
)

type fixture struct {
	engine   *Engine
	store    *aliases.Store
	ledger   *ledger.Ledger
	reviewer *MockReviewer
	journal  *MockJournal
	aliasP   *MockAliasPersister
	ledgerP  *MockLedgerPersister
}

func newFixture(records []model.EntityRecord, groups map[string][]string, rejected []model.CandidatePair, verdicts ...model.Verdict) *fixture {
	f := &fixture{
		reviewer: &MockReviewer{Verdicts: verdicts},
		journal:  &MockJournal{},
		aliasP:   &MockAliasPersister{},
		ledgerP:  &MockLedgerPersister{},
	}
	f.store, _ = aliases.New(groups, aliases.WithPersister(f.aliasP))
	f.ledger = ledger.New(rejected, f.ledgerP)
	c := classify.NewClassifier(index.New(records), f.store, f.ledger, nil, classify.DefaultOptions(), zerolog.Nop())
	f.engine = NewEngine(c, f.reviewer, f.journal, zerolog.Nop())
	f.engine.UUIDGenerator = func() string { return "run-1" }
	return f
}

func rec(id int64, pk string) model.EntityRecord {
	return model.EntityRecord{ID: id, PrimaryKey: pk}
}

func TestRunAutoAcceptMerges(t *testing.T) {
	f := newFixture([]model.EntityRecord{
		rec(10, "Kim Min-jun"),
		rec(11, "Kim Minjun"),
	}, nil, nil)

	sum, err := f.engine.Run(context.Background(), []model.CandidatePair{{ID1: 10, ID2: 11}})
	require.NoError(t, err)

	assert.Equal(t, 1, sum.AutoAccepted)
	assert.Equal(t, "run-1", sum.RunID)
	assert.Equal(t, "Kim Minjun", f.store.FindGroup("Kim Min-jun"))
	assert.Equal(t, []string{"Kim Minjun", "Kim Min-jun"}, f.store.AllKnown("Kim Min-jun"))
	assert.Empty(t, f.reviewer.Seen)
	require.Len(t, f.aliasP.Saved, 1)

	require.Len(t, f.journal.Decisions, 1)
	d := f.journal.Decisions[0]
	assert.Equal(t, "auto_accept", d.Outcome)
	assert.Equal(t, "Kim Minjun", d.Representative)
	assert.Equal(t, "run-1", d.RunID)
}

func TestRunSkipsRejectedInEitherOrder(t *testing.T) {
	f := newFixture([]model.EntityRecord{
		rec(5, "Yamashita Keigo"),
		rec(6, "Cho Chikun"),
	}, nil, []model.CandidatePair{{ID1: 5, ID2: 6}})

	sum, err := f.engine.Run(context.Background(), []model.CandidatePair{{ID1: 6, ID2: 5}})
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Skipped)
	assert.Equal(t, 0, sum.Remaining)
	assert.Empty(t, f.reviewer.Seen)
	assert.Empty(t, f.aliasP.Saved)
	assert.Empty(t, f.ledgerP.Saved)
}

func TestRunReviewVerdicts(t *testing.T) {
	records := []model.EntityRecord{
		rec(1, "Iyama Yuta"),
		rec(2, "井山裕太"),
		rec(3, "Shin Jinseo"),
		rec(4, "申真谞"),
		rec(7, "Ke Jie"),
		rec(8, "柯洁"),
	}
	pairs := []model.CandidatePair{{ID1: 1, ID2: 2}, {ID1: 3, ID2: 4}, {ID1: 7, ID2: 8}}

	t.Run("accept and reject", func(t *testing.T) {
		f := newFixture(records, nil, nil, model.Accept, model.Reject, model.Accept)

		sum, err := f.engine.Run(context.Background(), pairs)
		require.NoError(t, err)

		assert.Equal(t, 2, sum.Accepted)
		assert.Equal(t, 1, sum.Rejected)
		assert.False(t, sum.Aborted)
		assert.Equal(t, 3, sum.Processed)
		assert.Equal(t, "井山裕太", f.store.FindGroup("Iyama Yuta"))
		assert.Equal(t, "柯洁", f.store.FindGroup("Ke Jie"))
		assert.True(t, f.ledger.Contains(model.CandidatePair{ID1: 4, ID2: 3}))
		require.Len(t, f.ledgerP.Saved, 1)
		assert.Len(t, f.journal.Decisions, 3)
		assert.Equal(t, "reject", f.journal.Decisions[1].Verdict)
	})

	t.Run("abort stops the run", func(t *testing.T) {
		f := newFixture(records, nil, nil, model.Accept, model.Abort)

		sum, err := f.engine.Run(context.Background(), pairs)
		require.NoError(t, err)

		assert.True(t, sum.Aborted)
		assert.Equal(t, 1, sum.Accepted)
		assert.Equal(t, 1, sum.Processed)
		assert.Len(t, f.reviewer.Seen, 2)
		assert.Equal(t, "申真谞", f.store.FindGroup("申真谞"))
		assert.Equal(t, 0, f.ledger.Len())
	})
}

func TestRunMergesCustomAliases(t *testing.T) {
	f := newFixture([]model.EntityRecord{
		rec(1, "Lee Sedol"),
		rec(2, "이세돌"),
	}, map[string][]string{"Lee Sedol": {"Yi Se-tol"}}, nil, model.Accept)

	_, err := f.engine.Run(context.Background(), []model.CandidatePair{{ID1: 1, ID2: 2}})
	require.NoError(t, err)

	assert.Equal(t, "Lee Sedol", f.store.FindGroup("이세돌"))
	assert.ElementsMatch(t, []string{"Lee Sedol", "Yi Se-tol", "이세돌"}, f.store.AllKnown("이세돌"))
}

func TestRunJournalFailureIsNotFatal(t *testing.T) {
	f := newFixture([]model.EntityRecord{
		rec(10, "Kim Min-jun"),
		rec(11, "Kim Minjun"),
	}, nil, nil)
	f.journal.Fail = true

	sum, err := f.engine.Run(context.Background(), []model.CandidatePair{{ID1: 10, ID2: 11}})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.AutoAccepted)
}

func TestRunHonoursCancellation(t *testing.T) {
	f := newFixture([]model.EntityRecord{rec(1, "a"), rec(2, "b")}, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.engine.Run(ctx, []model.CandidatePair{{ID1: 1, ID2: 2}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunReviewerError(t *testing.T) {
	f := newFixture([]model.EntityRecord{rec(1, "Iyama Yuta"), rec(2, "井山裕太")}, nil, nil)
	f.reviewer.Err = assert.AnError

	_, err := f.engine.Run(context.Background(), []model.CandidatePair{{ID1: 1, ID2: 2}})
	assert.ErrorIs(t, err, assert.AnError)
}
