// Package index provides read-only lookups over the authoritative catalog.
package index

import (
	"sort"
	"strings"

	"github.com/agenthands/namesake/internal/core/model"
	"github.com/agenthands/namesake/internal/core/names"
)

// Entry is what the classifier needs to know about one catalog record.
type Entry struct {
	ID         int64
	PrimaryKey string
	Known      []string
}

// Index is built once per run and never mutated.
type Index struct {
	records []model.EntityRecord
	byID    map[int64]int
	byName  map[string]int64
}

// New indexes records. When a name appears under several records, the
// lowest id owns it for IDByName, matching the pruner's precedence.
func New(records []model.EntityRecord) *Index {
	sorted := make([]model.EntityRecord, len(records))
	for i, r := range records {
		sorted[i] = r.Clone()
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	idx := &Index{
		records: sorted,
		byID:    make(map[int64]int, len(sorted)),
		byName:  make(map[string]int64),
	}
	for i, r := range sorted {
		if _, dup := idx.byID[r.ID]; !dup {
			idx.byID[r.ID] = i
		}
		idx.claim(r.PrimaryKey, r.ID)
		for _, a := range r.Aliases {
			idx.claim(a.Name, r.ID)
		}
	}
	return idx
}

func (idx *Index) claim(name string, id int64) {
	if name == "" {
		return
	}
	if _, ok := idx.byName[name]; !ok {
		idx.byName[name] = id
	}
}

// Len returns the number of indexed records.
func (idx *Index) Len() int {
	return len(idx.records)
}

// Lookup returns the primary key and known aliases for id.
func (idx *Index) Lookup(id int64) (Entry, bool) {
	i, ok := idx.byID[id]
	if !ok {
		return Entry{}, false
	}
	r := idx.records[i]
	return Entry{ID: r.ID, PrimaryKey: r.DisplayName(), Known: r.Names()}, true
}

// Record returns a copy of the full record for id.
func (idx *Index) Record(id int64) (model.EntityRecord, bool) {
	i, ok := idx.byID[id]
	if !ok {
		return model.EntityRecord{}, false
	}
	return idx.records[i].Clone(), true
}

// IDByName returns the record that carries name as primary key or alias.
func (idx *Index) IDByName(name string) (int64, bool) {
	id, ok := idx.byName[name]
	return id, ok
}

// IDs returns every indexed id in ascending order.
func (idx *Index) IDs() []int64 {
	out := make([]int64, 0, len(idx.records))
	for _, r := range idx.records {
		out = append(out, r.ID)
	}
	return out
}

// Search returns the records with an alias containing term, case-insensitively,
// in id order.
func (idx *Index) Search(term string) []model.EntityRecord {
	needle := names.Lower(strings.TrimSpace(term))
	if needle == "" {
		return nil
	}
	var out []model.EntityRecord
	for _, r := range idx.records {
		if matches(r, needle) {
			out = append(out, r.Clone())
		}
	}
	return out
}

// SearchAll searches for every term at once. A record is returned once even
// when several terms hit it. Terms with no hit are returned sorted.
func (idx *Index) SearchAll(terms []string) ([]model.EntityRecord, []string) {
	needles := make(map[string]string, len(terms))
	for _, t := range terms {
		if n := names.Lower(strings.TrimSpace(t)); n != "" {
			needles[t] = n
		}
	}

	matched := make(map[string]bool, len(needles))
	var out []model.EntityRecord
	for _, r := range idx.records {
		hit := false
		for term, needle := range needles {
			if matches(r, needle) {
				matched[term] = true
				hit = true
			}
		}
		if hit {
			out = append(out, r.Clone())
		}
	}

	var unmatched []string
	for term := range needles {
		if !matched[term] {
			unmatched = append(unmatched, term)
		}
	}
	sort.Strings(unmatched)
	return out, unmatched
}

func matches(r model.EntityRecord, needle string) bool {
	for _, a := range r.Aliases {
		if strings.Contains(names.Lower(a.Name), needle) {
			return true
		}
	}
	return false
}
