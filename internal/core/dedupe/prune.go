// Package dedupe removes and reports repeated names across catalog records,
// and asks an LLM for alias clusters the heuristics cannot find.
package dedupe

import (
	"sort"

	"github.com/agenthands/namesake/internal/core/model"
)

// Prune walks records in ascending id order and drops every alias already
// claimed earlier in the walk, so the lowest id keeps a name. Records sharing
// an id keep their input order, and a name repeated inside one record keeps
// its first entry. Primary keys are never touched. The input is not modified.
// Running Prune on its own output removes nothing.
func Prune(records []model.EntityRecord) ([]model.EntityRecord, model.PruneReport) {
	out := make([]model.EntityRecord, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	claimed := make(map[string]struct{})
	report := model.PruneReport{Records: len(out)}

	for i := range out {
		r := &out[i]
		kept := r.Aliases[:0]
		var dropped []string
		for _, a := range r.Aliases {
			if _, ok := claimed[a.Name]; ok {
				dropped = append(dropped, a.Name)
				continue
			}
			claimed[a.Name] = struct{}{}
			kept = append(kept, a)
		}
		r.Aliases = kept

		if len(dropped) > 0 {
			report.Removed += len(dropped)
			report.Removals = append(report.Removals, model.PruneRemoval{
				ID:         r.ID,
				PrimaryKey: r.PrimaryKey,
				Names:      dropped,
			})
		}
	}

	report.UniqueNames = len(claimed)
	return out, report
}
