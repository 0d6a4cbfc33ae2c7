package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/agenthands/namesake/internal/core/model"
	"github.com/agenthands/namesake/internal/errors"
)

// catalogRecord accepts both the normalized catalog layout and raw playerdb
// exports.
type catalogRecord struct {
	ID         *int64             `json:"id"`
	PrimaryKey string             `json:"primary_key"`
	Aliases    []model.AliasEntry `json:"aliases"`

	Name    string         `json:"name"`
	KeyName string         `json:"key_name"`
	Names   []playerdbName `json:"names"`
}

type playerdbName struct {
	SimpleNames []playerdbSimpleName `json:"simplenames"`
}

type playerdbSimpleName struct {
	Name      string           `json:"name"`
	Languages []model.Language `json:"languages"`
}

// LoadCatalog reads the authoritative catalog. The catalog is required: a
// missing or unparsable file is an error.
func LoadCatalog(path string) ([]model.EntityRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(path, errors.MissingRequired, err)
		}
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	records, err := ParseCatalog(data)
	if err != nil {
		return nil, errors.NewInputError(path, errors.Malformed, err)
	}
	return records, nil
}

// ParseCatalog decodes catalog JSON. Three layouts are accepted: the
// normalized array, a raw playerdb array, and an object keyed by primary key
// or by id (the shape of older known-alias dumps). Playerdb records (those
// carrying "names" instead of "aliases") are flattened: every simple name
// becomes an alias, first occurrence wins, and key_name becomes the primary
// key. Records without an id are skipped.
func ParseCatalog(data []byte) ([]model.EntityRecord, error) {
	raw, err := decodeCatalog(data)
	if err != nil {
		return nil, err
	}

	records := make([]model.EntityRecord, 0, len(raw))
	for _, r := range raw {
		if r.ID == nil {
			continue
		}
		rec := model.EntityRecord{ID: *r.ID, PrimaryKey: r.PrimaryKey}
		for _, fallback := range []string{r.KeyName, r.Name} {
			if rec.PrimaryKey == "" {
				rec.PrimaryKey = fallback
			}
		}
		for _, a := range r.Aliases {
			rec.AddAlias(a.Name, a.Languages...)
		}
		for _, group := range r.Names {
			for _, sn := range group.SimpleNames {
				rec.AddAlias(sn.Name, sn.Languages...)
			}
		}
		if rec.Aliases == nil {
			rec.Aliases = []model.AliasEntry{}
		}
		records = append(records, rec)
	}
	return records, nil
}

func decodeCatalog(data []byte) ([]catalogRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		var list []catalogRecord
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, err
		}
		return list, nil
	}

	var keyed map[string]catalogRecord
	if err := json.Unmarshal(trimmed, &keyed); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(keyed))
	for k := range keyed {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	list := make([]catalogRecord, 0, len(keyed))
	for _, k := range keys {
		r := keyed[k]
		if id, err := strconv.ParseInt(k, 10, 64); err == nil {
			if r.ID == nil {
				r.ID = &id
			}
		} else if r.PrimaryKey == "" {
			r.PrimaryKey = k
		}
		list = append(list, r)
	}
	return list, nil
}

// SaveCatalog writes records in the normalized layout.
func SaveCatalog(path string, records []model.EntityRecord, indent bool) error {
	if records == nil {
		records = []model.EntityRecord{}
	}
	data, err := marshalJSON(records, indent)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}
