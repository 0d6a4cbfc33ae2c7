package model

// Suggestion maps a proposed primary key to the names an LLM believes denote the same player.
// Suggestions are untrusted until verified against the name universe.
type Suggestion map[string][]string

// PruneRemoval records the names dropped from one record by the pruner.
type PruneRemoval struct {
	ID         int64    `json:"id"`
	PrimaryKey string   `json:"primary_key"`
	Names      []string `json:"names"`
}

// PruneReport summarises one pruning pass.
type PruneReport struct {
	Removed     int            `json:"removed"`
	Records     int            `json:"records"`
	UniqueNames int            `json:"unique_names"`
	Removals    []PruneRemoval `json:"removals,omitempty"`
}
