// Package ledger records candidate pairs a human has already declined.
package ledger

import (
	"fmt"
	"sort"

	"github.com/agenthands/namesake/internal/core/model"
)

// Persister writes every rejected pair to durable storage.
type Persister interface {
	SaveRejections(pairs []model.CandidatePair) error
}

// Ledger is an order-insensitive set of rejected pairs.
type Ledger struct {
	pairs     map[model.CandidatePair]struct{}
	persister Persister
}

// New builds a ledger from previously persisted pairs. p may be nil.
func New(pairs []model.CandidatePair, p Persister) *Ledger {
	l := &Ledger{
		pairs:     make(map[model.CandidatePair]struct{}, len(pairs)),
		persister: p,
	}
	for _, pair := range pairs {
		l.pairs[pair.Canonical()] = struct{}{}
	}
	return l
}

// Contains reports whether the pair was rejected, in either order.
func (l *Ledger) Contains(pair model.CandidatePair) bool {
	_, ok := l.pairs[pair.Canonical()]
	return ok
}

// Len returns the number of rejected pairs.
func (l *Ledger) Len() int {
	return len(l.pairs)
}

// Reject records the pair and persists the ledger.
func (l *Ledger) Reject(pair model.CandidatePair) error {
	l.pairs[pair.Canonical()] = struct{}{}
	if l.persister == nil {
		return nil
	}
	if err := l.persister.SaveRejections(l.Pairs()); err != nil {
		return fmt.Errorf("persist rejection of %s: %w", pair, err)
	}
	return nil
}

// Pairs returns the rejected pairs, lower id first, sorted.
func (l *Ledger) Pairs() []model.CandidatePair {
	out := make([]model.CandidatePair, 0, len(l.pairs))
	for p := range l.pairs {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ID1 != out[j].ID1 {
			return out[i].ID1 < out[j].ID1
		}
		return out[i].ID2 < out[j].ID2
	})
	return out
}
