package model

// Language tags an alias with the language it was recorded in.
type Language struct {
	Code      string `json:"language"`
	Preferred bool   `json:"preferred"`
}

// AliasEntry is one known spelling of a player's name.
type AliasEntry struct {
	Name      string     `json:"name"`
	Languages []Language `json:"languages"`
}

// LanguageCodes returns the language codes of the entry in order.
func (a AliasEntry) LanguageCodes() []string {
	codes := make([]string, 0, len(a.Languages))
	for _, l := range a.Languages {
		codes = append(codes, l.Code)
	}
	return codes
}

// EntityRecord is a player in the authoritative catalog. Negative IDs are synthetic.
type EntityRecord struct {
	ID         int64        `json:"id"`
	PrimaryKey string       `json:"primary_key"`
	Aliases    []AliasEntry `json:"aliases"`
}

// DisplayName returns the primary key, or the first alias when the record has none.
func (r EntityRecord) DisplayName() string {
	if r.PrimaryKey != "" {
		return r.PrimaryKey
	}
	if len(r.Aliases) > 0 {
		return r.Aliases[0].Name
	}
	return ""
}

// Names returns the alias names in catalog order.
func (r EntityRecord) Names() []string {
	names := make([]string, 0, len(r.Aliases))
	for _, a := range r.Aliases {
		names = append(names, a.Name)
	}
	return names
}

// HasAlias reports whether name is one of the record's aliases.
func (r EntityRecord) HasAlias(name string) bool {
	for _, a := range r.Aliases {
		if a.Name == name {
			return true
		}
	}
	return false
}

// AddAlias appends name unless the record already carries it.
func (r *EntityRecord) AddAlias(name string, languages ...Language) bool {
	if name == "" || r.HasAlias(name) {
		return false
	}
	if languages == nil {
		languages = []Language{}
	}
	r.Aliases = append(r.Aliases, AliasEntry{Name: name, Languages: languages})
	return true
}

// Clone returns a deep copy of the record.
func (r EntityRecord) Clone() EntityRecord {
	out := EntityRecord{ID: r.ID, PrimaryKey: r.PrimaryKey, Aliases: make([]AliasEntry, len(r.Aliases))}
	for i, a := range r.Aliases {
		out.Aliases[i] = AliasEntry{Name: a.Name, Languages: append([]Language{}, a.Languages...)}
	}
	return out
}
