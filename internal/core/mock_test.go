package core

import (
	"context"
	"errors"

	"github.com/agenthands/namesake/internal/core/classify"
	"github.com/agenthands/namesake/internal/core/model"
)

type MockReviewer struct {
	Verdicts []model.Verdict
	Seen     []classify.Result
	Err      error
}

func (m *MockReviewer) Review(ctx context.Context, res classify.Result) (model.Verdict, error) {
	m.Seen = append(m.Seen, res)
	if m.Err != nil {
		return model.Abort, m.Err
	}
	if len(m.Verdicts) == 0 {
		return model.Abort, nil
	}
	v := m.Verdicts[0]
	m.Verdicts = m.Verdicts[1:]
	return v, nil
}

type MockJournal struct {
	Decisions []model.Decision
	Fail      bool
}

func (m *MockJournal) Record(ctx context.Context, d model.Decision) error {
	if m.Fail {
		return errors.New("journal unavailable")
	}
	m.Decisions = append(m.Decisions, d)
	return nil
}

type MockAliasPersister struct {
	Saved []map[string][]string
}

func (m *MockAliasPersister) SaveAliases(groups map[string][]string) error {
	m.Saved = append(m.Saved, groups)
	return nil
}

type MockLedgerPersister struct {
	Saved [][]model.CandidatePair
}

func (m *MockLedgerPersister) SaveRejections(pairs []model.CandidatePair) error {
	m.Saved = append(m.Saved, pairs)
	return nil
}
