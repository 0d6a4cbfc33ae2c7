// Package extend folds the curated alias groups back into the catalog.
package extend

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/agenthands/namesake/internal/core/aliases"
	"github.com/agenthands/namesake/internal/core/dedupe"
	"github.com/agenthands/namesake/internal/core/ids"
	"github.com/agenthands/namesake/internal/core/model"
)

// Options control the extension pass.
type Options struct {
	// Universe, when set, restricts the output to records that carry one of
	// these names. Names nobody carries get a synthetic record each.
	Universe []string
	// Prune runs the duplicate pruner over the result.
	Prune bool
}

// Result is the extended catalog and what it took to build it.
type Result struct {
	Records  []model.EntityRecord
	Extended int
	Created  int
	Added    int
	Orphans  int
	Prune    *model.PruneReport
}

// Extender owns the live name to id map for one pass.
type Extender struct {
	records map[int64]*model.EntityRecord
	byName  map[string]int64
	alloc   ids.Allocator
	logger  zerolog.Logger
}

// New indexes records for extension. alloc supplies ids for synthetic records.
func New(records []model.EntityRecord, alloc ids.Allocator, logger zerolog.Logger) *Extender {
	e := &Extender{
		records: make(map[int64]*model.EntityRecord, len(records)),
		byName:  make(map[string]int64),
		alloc:   alloc,
		logger:  logger,
	}
	sorted := make([]model.EntityRecord, len(records))
	for i, r := range records {
		sorted[i] = r.Clone()
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	for i := range sorted {
		r := sorted[i]
		if _, dup := e.records[r.ID]; dup {
			continue
		}
		e.records[r.ID] = &r
		e.index(&r)
	}
	return e
}

func (e *Extender) index(r *model.EntityRecord) {
	e.claim(r.PrimaryKey, r.ID)
	for _, a := range r.Aliases {
		e.claim(a.Name, r.ID)
	}
}

func (e *Extender) claim(name string, id int64) {
	if name == "" {
		return
	}
	if _, ok := e.byName[name]; !ok {
		e.byName[name] = id
	}
}

func (e *Extender) lookup(name string) (*model.EntityRecord, bool) {
	id, ok := e.byName[name]
	if !ok {
		return nil, false
	}
	return e.records[id], true
}

// Run applies every alias group in representative order, then projects the
// universe and optionally prunes.
func (e *Extender) Run(store *aliases.Store, opts Options) Result {
	var res Result

	for _, rep := range store.Representatives() {
		list := store.Aliases(rep)
		target, ok := e.lookup(rep)
		if !ok {
			for _, name := range list {
				if target, ok = e.lookup(name); ok {
					break
				}
			}
		}

		if ok {
			added := 0
			for _, name := range append([]string{rep}, list...) {
				if target.AddAlias(name) {
					e.claim(name, target.ID)
					added++
				}
			}
			if added > 0 {
				res.Extended++
				res.Added += added
				e.logger.Debug().Int64("id", target.ID).Str("representative", rep).Int("added", added).Msg("Extended record")
			}
			continue
		}

		r := e.create(rep)
		r.AddAlias(rep, model.Language{Code: "en", Preferred: false})
		for _, name := range list {
			r.AddAlias(name)
		}
		e.index(r)
		res.Created++
		e.logger.Debug().Int64("id", r.ID).Str("representative", rep).Msg("Created synthetic record")
	}

	var out []model.EntityRecord
	if len(opts.Universe) == 0 {
		out = e.all()
	} else {
		out = e.project(opts.Universe, &res)
	}

	if opts.Prune {
		pruned, report := dedupe.Prune(out)
		out = pruned
		res.Prune = &report
	}
	res.Records = out
	return res
}

func (e *Extender) create(primaryKey string) *model.EntityRecord {
	id := e.alloc.Next(primaryKey)
	r := &model.EntityRecord{ID: id, PrimaryKey: primaryKey, Aliases: []model.AliasEntry{}}
	e.records[id] = r
	return r
}

func (e *Extender) project(universe []string, res *Result) []model.EntityRecord {
	picked := make(map[int64]bool)
	for _, name := range universe {
		if name == "" {
			continue
		}
		if r, ok := e.lookup(name); ok {
			picked[r.ID] = true
			continue
		}
		r := e.create(name)
		r.AddAlias(name)
		e.index(r)
		picked[r.ID] = true
		res.Orphans++
	}

	out := make([]model.EntityRecord, 0, len(picked))
	for id := range picked {
		out = append(out, e.records[id].Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (e *Extender) all() []model.EntityRecord {
	out := make([]model.EntityRecord, 0, len(e.records))
	for _, r := range e.records {
		out = append(out, r.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
