package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/agenthands/namesake/internal/errors"
)

// readOptional returns the file contents, or nil when the file is absent.
func readOptional(path string, logger zerolog.Logger) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}
	if os.IsNotExist(err) {
		logger.Debug().Str("path", path).Msg("Optional input not found, starting empty")
		return nil, nil
	}
	return nil, fmt.Errorf("read %s: %w", path, err)
}

// LoadAliases reads an alias store file. A missing file yields an empty map;
// a malformed one is logged and also yields an empty map.
func LoadAliases(path string, logger zerolog.Logger) (map[string][]string, error) {
	groups := make(map[string][]string)
	data, err := readOptional(path, logger)
	if err != nil || data == nil {
		return groups, err
	}
	if err := json.Unmarshal(data, &groups); err != nil {
		logger.Warn().Err(errors.NewInputError(path, errors.Malformed, err)).Msg("Ignoring malformed alias store")
		return make(map[string][]string), nil
	}
	return groups, nil
}

// AliasFile persists an alias store to a JSON object, keys sorted.
type AliasFile struct {
	Path string
}

// SaveAliases implements aliases.Persister.
func (f AliasFile) SaveAliases(groups map[string][]string) error {
	if groups == nil {
		groups = map[string][]string{}
	}
	data, err := marshalJSON(groups, true)
	if err != nil {
		return fmt.Errorf("encode aliases: %w", err)
	}
	return WriteFileAtomic(f.Path, data)
}
