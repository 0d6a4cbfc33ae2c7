package dedupe

import (
	"sort"

	"github.com/agenthands/namesake/internal/core/model"
)

// Conflict is a set of records linked by shared alias strings.
type Conflict struct {
	IDs    []int64  `json:"ids"`
	Shared []string `json:"shared"`
}

// Conflicts returns the connected components of records that share at least
// one alias name. Records that share nothing are left out. Components are
// ordered by their lowest id.
func Conflicts(records []model.EntityRecord) []Conflict {
	holders := make(map[string][]int64)
	seenID := make(map[int64]bool, len(records))
	var ids []int64
	for _, r := range records {
		if !seenID[r.ID] {
			seenID[r.ID] = true
			ids = append(ids, r.ID)
		}
		for _, a := range r.Aliases {
			list := holders[a.Name]
			if len(list) == 0 || list[len(list)-1] != r.ID {
				holders[a.Name] = append(list, r.ID)
			}
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	adj := make(map[int64][]int64)
	for _, list := range holders {
		for i := 1; i < len(list); i++ {
			adj[list[0]] = append(adj[list[0]], list[i])
			adj[list[i]] = append(adj[list[i]], list[0])
		}
	}

	visited := make(map[int64]bool, len(ids))
	var out []Conflict
	for _, id := range ids {
		if visited[id] {
			continue
		}
		var component []int64
		dfs(id, adj, visited, &component)
		if len(component) < 2 {
			continue
		}
		sort.Slice(component, func(i, j int) bool { return component[i] < component[j] })
		out = append(out, Conflict{IDs: component, Shared: sharedNames(holders, component)})
	}
	return out
}

func dfs(u int64, adj map[int64][]int64, visited map[int64]bool, component *[]int64) {
	visited[u] = true
	*component = append(*component, u)
	for _, v := range adj[u] {
		if !visited[v] {
			dfs(v, adj, visited, component)
		}
	}
}

func sharedNames(holders map[string][]int64, component []int64) []string {
	in := make(map[int64]bool, len(component))
	for _, id := range component {
		in[id] = true
	}
	var shared []string
	for name, list := range holders {
		if len(list) > 1 && in[list[0]] {
			shared = append(shared, name)
		}
	}
	sort.Strings(shared)
	return shared
}
