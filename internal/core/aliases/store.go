// Package aliases holds the manually curated alias groups.
//
// A Store is a one-level union-find over name strings: every group has a
// representative and an ordered list of aliases, and a name belongs to at most
// one group. Merging two groups folds the second into the first.
package aliases

import (
	"fmt"
	"sort"
)

// Persister writes the full set of groups to durable storage.
type Persister interface {
	SaveAliases(groups map[string][]string) error
}

// Option configures a Store.
type Option func(*Store)

// WithPersister makes every successful Merge write the store through p.
func WithPersister(p Persister) Option {
	return func(s *Store) {
		s.persister = p
	}
}

// Store maps representatives to their aliases.
type Store struct {
	groups    map[string][]string
	owner     map[string]string // alias -> representative
	persister Persister
}

// New builds a Store from persisted groups, visiting representatives in
// lexical order. A listed name that heads its own group pulls that group in.
// When two groups list the same plain alias, the first keeps it; the returned
// conflicts list the names that were dropped.
func New(groups map[string][]string, opts ...Option) (*Store, []string) {
	s := &Store{
		groups: make(map[string][]string, len(groups)),
		owner:  make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}

	reps := make([]string, 0, len(groups))
	for rep := range groups {
		reps = append(reps, rep)
	}
	sort.Strings(reps)

	var conflicts []string
	for _, rep := range reps {
		s.groups[rep] = []string{}
	}
	for _, rep := range reps {
		for _, name := range groups[rep] {
			// rep may already have been folded into an earlier group
			target := s.FindGroup(rep)
			if name == "" || name == target || s.FindGroup(name) == target {
				continue
			}
			if _, isRep := s.groups[name]; isRep {
				s.fold(target, name)
				continue
			}
			if _, taken := s.owner[name]; taken {
				conflicts = append(conflicts, name)
				continue
			}
			s.add(target, name)
		}
	}
	return s, conflicts
}

// Len returns the number of groups.
func (s *Store) Len() int {
	return len(s.groups)
}

// IsRepresentative reports whether name currently heads a group.
func (s *Store) IsRepresentative(name string) bool {
	_, ok := s.groups[name]
	return ok
}

// FindGroup returns the representative for name. A representative or an
// unknown name maps to itself.
func (s *Store) FindGroup(name string) string {
	if _, ok := s.groups[name]; ok {
		return name
	}
	if rep, ok := s.owner[name]; ok {
		return rep
	}
	return name
}

// AllKnown returns the group name belongs to: the representative first, then
// its aliases in insertion order. An unknown name yields just itself.
func (s *Store) AllKnown(name string) []string {
	rep := s.FindGroup(name)
	list, ok := s.groups[rep]
	if !ok {
		return []string{name}
	}
	out := make([]string, 0, len(list)+1)
	out = append(out, rep)
	out = append(out, list...)
	return out
}

// Aliases returns a copy of the list under a representative.
func (s *Store) Aliases(rep string) []string {
	return append([]string(nil), s.groups[rep]...)
}

// Representatives returns every representative in sorted order.
func (s *Store) Representatives() []string {
	reps := make([]string, 0, len(s.groups))
	for rep := range s.groups {
		reps = append(reps, rep)
	}
	sort.Strings(reps)
	return reps
}

// Groups returns a deep copy of the store contents.
func (s *Store) Groups() map[string][]string {
	out := make(map[string][]string, len(s.groups))
	for rep, list := range s.groups {
		out[rep] = append([]string{}, list...)
	}
	return out
}

// Merge joins the groups of name1 and name2 and returns the surviving
// representative.
//
// Tie-break: when both names head existing groups, name1's group survives;
// when only one does, that one survives; when neither is known, name2 becomes
// the representative. Extra names, and whichever input lost, are appended to
// the survivor. An extra that already belongs to another group pulls that
// whole group in. Merging a name with itself changes nothing.
func (s *Store) Merge(name1, name2 string, extra []string) (string, error) {
	if name1 == "" || name2 == "" {
		return "", fmt.Errorf("merge requires two names, got %q and %q", name1, name2)
	}
	if name1 == name2 {
		return s.FindGroup(name1), nil
	}
	r1, r2 := s.FindGroup(name1), s.FindGroup(name2)
	_, known1 := s.groups[r1]
	_, known2 := s.groups[r2]

	var rep string
	switch {
	case r1 != r2 && known1 && known2:
		rep = r1
		s.fold(rep, r2)
	case known1:
		rep = r1
	case known2:
		rep = r2
	default:
		rep = name2
		s.groups[rep] = []string{}
	}

	candidates := make([]string, 0, len(extra)+4)
	candidates = append(candidates, extra...)
	candidates = append(candidates, r1, r2, name1, name2)
	for _, name := range candidates {
		s.absorb(rep, name)
	}

	if s.persister != nil {
		if err := s.persister.SaveAliases(s.Groups()); err != nil {
			return rep, fmt.Errorf("persist aliases after merging %q and %q: %w", name1, name2, err)
		}
	}
	return rep, nil
}

// Add appends names under rep without consulting the tie-break rules. Names
// already owned by a different group are skipped and returned. It does not
// persist.
func (s *Store) Add(rep string, names ...string) []string {
	if _, ok := s.groups[rep]; !ok {
		if owner, taken := s.owner[rep]; taken {
			rep = owner
		} else {
			s.groups[rep] = []string{}
		}
	}
	var skipped []string
	for _, name := range names {
		if name == "" || name == rep || s.contains(rep, name) {
			continue
		}
		if s.FindGroup(name) != name {
			skipped = append(skipped, name)
			continue
		}
		if _, isRep := s.groups[name]; isRep {
			skipped = append(skipped, name)
			continue
		}
		s.add(rep, name)
	}
	return skipped
}

// absorb places name in rep's group, folding the group it currently heads or
// belongs to.
func (s *Store) absorb(rep, name string) {
	if name == "" || name == rep {
		return
	}
	other := s.FindGroup(name)
	if other == rep {
		return
	}
	if _, ok := s.groups[other]; ok {
		s.fold(rep, other)
		return
	}
	s.add(rep, name)
}

// fold moves every alias of src, then src itself, under dst and deletes src.
func (s *Store) fold(dst, src string) {
	for _, name := range s.groups[src] {
		delete(s.owner, name)
		if name != dst && !s.contains(dst, name) {
			s.add(dst, name)
		}
	}
	delete(s.groups, src)
	if !s.contains(dst, src) {
		s.add(dst, src)
	}
}

func (s *Store) add(rep, name string) {
	s.groups[rep] = append(s.groups[rep], name)
	s.owner[name] = rep
}

func (s *Store) contains(rep, name string) bool {
	return s.owner[name] == rep
}
