// Package ids allocates synthetic (negative) identifiers for players that
// are missing from the authoritative catalog.
package ids

import (
	"fmt"
	"hash/fnv"
	"math"

	"github.com/agenthands/namesake/internal/core/names"
)

// Allocator issues negative ids. Implementations never return the same id
// twice and never return a value >= 0.
type Allocator interface {
	Next(name string) int64
}

// Mode selects an Allocator implementation.
type Mode string

const (
	// ModeSequential counts down from a start value: -1, -2, ...
	ModeSequential Mode = "sequential"
	// ModeStable derives the id from the folded name so reruns agree.
	ModeStable Mode = "stable"
)

// ParseMode validates a configured mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeSequential:
		return ModeSequential, nil
	case ModeStable:
		return ModeStable, nil
	}
	return "", fmt.Errorf("unknown id mode %q (want %q or %q)", s, ModeSequential, ModeStable)
}

// New returns an allocator for mode that will not reuse any id in taken.
func New(mode Mode, taken []int64) Allocator {
	if mode == ModeStable {
		return NewStable(taken)
	}
	return NewSequential(NextBelow(taken))
}

// Sequential is the per-run counter. It ignores the name.
type Sequential struct {
	next int64
}

// NewSequential returns a counter whose first id is start. start must be negative.
func NewSequential(start int64) *Sequential {
	if start >= 0 {
		start = -1
	}
	return &Sequential{next: start}
}

// Next returns the current counter value and decrements it.
func (s *Sequential) Next(string) int64 {
	id := s.next
	s.next--
	return id
}

// NextBelow returns -1, or one below the lowest negative id already in use.
func NextBelow(taken []int64) int64 {
	lowest := int64(0)
	for _, id := range taken {
		if id < lowest {
			lowest = id
		}
	}
	return lowest - 1
}

// Stable hashes the folded name into the negative range and probes
// downwards on collision. The same name in the same catalog yields the same id.
type Stable struct {
	used map[int64]struct{}
}

// NewStable returns a Stable allocator that avoids the ids in taken.
func NewStable(taken []int64) *Stable {
	used := make(map[int64]struct{}, len(taken))
	for _, id := range taken {
		if id < 0 {
			used[id] = struct{}{}
		}
	}
	return &Stable{used: used}
}

// Next returns the id for name.
func (s *Stable) Next(name string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(names.Fold(name)))
	// keep within int32 range so downstream JSON consumers get exact integers
	id := -int64(h.Sum64()%uint64(math.MaxInt32)) - 1
	for {
		if _, ok := s.used[id]; !ok {
			break
		}
		id--
		if id < -math.MaxInt32 {
			id = -1
		}
	}
	s.used[id] = struct{}{}
	return id
}
