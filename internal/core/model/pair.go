package model

import "fmt"

// CandidatePair is a possible alias relation between two catalog records.
// (a, b) and (b, a) denote the same pair.
type CandidatePair struct {
	ID1 int64
	ID2 int64
}

// Canonical returns the pair with the lower id first.
func (p CandidatePair) Canonical() CandidatePair {
	if p.ID2 < p.ID1 {
		return CandidatePair{ID1: p.ID2, ID2: p.ID1}
	}
	return p
}

// Equal compares pairs ignoring order.
func (p CandidatePair) Equal(other CandidatePair) bool {
	return p.Canonical() == other.Canonical()
}

func (p CandidatePair) String() string {
	return fmt.Sprintf("%d-%d", p.ID1, p.ID2)
}
