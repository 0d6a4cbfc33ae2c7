// Package classify decides what to do with a candidate pair of catalog ids.
package classify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/agenthands/namesake/internal/core/aliases"
	"github.com/agenthands/namesake/internal/core/index"
	"github.com/agenthands/namesake/internal/core/ledger"
	"github.com/agenthands/namesake/internal/core/model"
	"github.com/agenthands/namesake/internal/core/names"
)

// Translator renders a name in a target language. Failures carry no signal.
type Translator interface {
	Translate(ctx context.Context, text, target string) (model.Translation, error)
}

// Outcome is the classifier's verdict on a pair.
type Outcome int

const (
	// Skip means nothing needs to happen for the pair.
	Skip Outcome = iota
	// AutoAccept means the names match closely enough to merge without asking.
	AutoAccept
	// NeedsReview means a human has to decide.
	NeedsReview
)

func (o Outcome) String() string {
	switch o {
	case Skip:
		return "skip"
	case AutoAccept:
		return "auto_accept"
	case NeedsReview:
		return "needs_review"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Skip reasons.
const (
	ReasonRejected      = "previously rejected"
	ReasonMissing       = "one or both players not found"
	ReasonAlreadyLinked = "already known aliases"
)

// Identity is one side of a pair as presented for review.
type Identity struct {
	ID         int64    `json:"id"`
	PrimaryKey string   `json:"primary_key"`
	Custom     []string `json:"custom_aliases"`
	Known      []string `json:"known_aliases"`
}

// Names returns the primary key, custom aliases and known aliases, without repeats.
func (i Identity) Names() []string {
	seen := make(map[string]bool, 1+len(i.Custom)+len(i.Known))
	out := make([]string, 0, 1+len(i.Custom)+len(i.Known))
	for _, group := range [][]string{{i.PrimaryKey}, i.Custom, i.Known} {
		for _, n := range group {
			if n != "" && !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	return out
}

// Result is the classification of one pair.
type Result struct {
	Pair        model.CandidatePair
	Outcome     Outcome
	Reason      string
	Left        Identity
	Right       Identity
	Translation *model.Translation
}

// Options tune the matching heuristics.
type Options struct {
	// ReferenceLanguage is the translation target, "en" by default.
	ReferenceLanguage string
	// MinPrefixRunes is the shortest folded prefix that may auto-accept.
	MinPrefixRunes int
	// Translate enables step 6; a nil Translator disables it too.
	Translate bool
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{ReferenceLanguage: "en", MinPrefixRunes: 3, Translate: true}
}

// Classifier holds the read side of a consolidation run.
type Classifier struct {
	Index      *index.Index
	Aliases    *aliases.Store
	Ledger     *ledger.Ledger
	Translator Translator
	Options    Options
	Logger     zerolog.Logger
}

// NewClassifier wires a classifier. translator may be nil.
func NewClassifier(idx *index.Index, store *aliases.Store, l *ledger.Ledger, translator Translator, opts Options, logger zerolog.Logger) *Classifier {
	if opts.ReferenceLanguage == "" {
		opts.ReferenceLanguage = "en"
	}
	return &Classifier{
		Index:      idx,
		Aliases:    store,
		Ledger:     l,
		Translator: translator,
		Options:    opts,
		Logger:     logger,
	}
}

// Classify runs the decision procedure on one pair.
func (c *Classifier) Classify(ctx context.Context, pair model.CandidatePair) Result {
	res := Result{Pair: pair}

	if c.Ledger != nil && c.Ledger.Contains(pair) {
		res.Outcome, res.Reason = Skip, ReasonRejected
		return res
	}

	e1, ok1 := c.Index.Lookup(pair.ID1)
	e2, ok2 := c.Index.Lookup(pair.ID2)
	if !ok1 || !ok2 {
		res.Outcome, res.Reason = Skip, ReasonMissing
		return res
	}
	res.Left = c.identity(e1)
	res.Right = c.identity(e2)

	names1, names2 := res.Left.Names(), res.Right.Names()
	if contains(names2, e1.PrimaryKey) || contains(names1, e2.PrimaryKey) {
		res.Outcome, res.Reason = Skip, ReasonAlreadyLinked
		return res
	}

	if a, b, ok := names.FirstPrefixMatch(names1, names2, c.Options.MinPrefixRunes); ok {
		res.Outcome = AutoAccept
		res.Reason = fmt.Sprintf("%q matches with %q", a, b)
		return res
	}

	if t, ok := c.translate(ctx, e1.PrimaryKey); ok {
		res.Translation = &t
		if names.EqualFold(t.Text, e2.PrimaryKey) {
			res.Outcome = AutoAccept
			res.Reason = fmt.Sprintf("translation matches: %q (from %q [%s]) matches %q", t.Text, e1.PrimaryKey, t.Source, e2.PrimaryKey)
			return res
		}
		if names.HasPrefixEither(t.Text, e2.PrimaryKey, c.Options.MinPrefixRunes) {
			res.Outcome = AutoAccept
			res.Reason = fmt.Sprintf("translation matches: %q (from %q [%s]) matches with %q", t.Text, e1.PrimaryKey, t.Source, e2.PrimaryKey)
			return res
		}
	}

	res.Outcome = NeedsReview
	return res
}

func (c *Classifier) identity(e index.Entry) Identity {
	var custom []string
	if c.Aliases != nil {
		for _, n := range c.Aliases.AllKnown(e.PrimaryKey) {
			if n != e.PrimaryKey {
				custom = append(custom, n)
			}
		}
	}
	return Identity{ID: e.ID, PrimaryKey: e.PrimaryKey, Custom: custom, Known: e.Known}
}

func (c *Classifier) translate(ctx context.Context, name string) (model.Translation, bool) {
	if !c.Options.Translate || c.Translator == nil {
		return model.Translation{}, false
	}
	t, err := c.Translator.Translate(ctx, name, c.Options.ReferenceLanguage)
	if err != nil {
		c.Logger.Warn().Err(err).Str("name", name).Msg("Translation failed, continuing without it")
		return model.Translation{}, false
	}
	if t.Text == "" {
		return model.Translation{}, false
	}
	return t, true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
