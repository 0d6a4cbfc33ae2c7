package model

import "time"

// Verdict is a human answer to a review prompt.
type Verdict int

const (
	// Accept merges the pair.
	Accept Verdict = iota
	// Reject records the pair in the rejection ledger.
	Reject
	// Abort stops the run, keeping everything persisted so far.
	Abort
)

func (v Verdict) String() string {
	switch v {
	case Accept:
		return "accept"
	case Reject:
		return "reject"
	case Abort:
		return "abort"
	}
	return "unknown"
}

// Decision is one journal line: what happened to a pair and why.
type Decision struct {
	RunID          string
	Pair           CandidatePair
	Name1          string
	Name2          string
	Outcome        string
	Verdict        string
	Reason         string
	Representative string
	At             time.Time
}
