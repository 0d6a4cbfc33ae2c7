package storage

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/agenthands/namesake/internal/core/model"
	"github.com/agenthands/namesake/internal/errors"
)

// LoadRejections reads the rejection ledger, a JSON array of [id1, id2]
// arrays. Missing or malformed files yield an empty ledger.
func LoadRejections(path string, logger zerolog.Logger) ([]model.CandidatePair, error) {
	data, err := readOptional(path, logger)
	if err != nil || data == nil {
		return nil, err
	}
	var raw [][]int64
	if err := json.Unmarshal(data, &raw); err != nil {
		logger.Warn().Err(errors.NewInputError(path, errors.Malformed, err)).Msg("Ignoring malformed rejection ledger")
		return nil, nil
	}
	pairs := make([]model.CandidatePair, 0, len(raw))
	for i, p := range raw {
		if len(p) != 2 {
			logger.Warn().Str("path", path).Int("entry", i).Msg("Skipping ledger entry without exactly two ids")
			continue
		}
		pairs = append(pairs, model.CandidatePair{ID1: p[0], ID2: p[1]})
	}
	return pairs, nil
}

// RejectionFile persists the ledger.
type RejectionFile struct {
	Path string
}

// SaveRejections implements ledger.Persister.
func (f RejectionFile) SaveRejections(pairs []model.CandidatePair) error {
	raw := make([][2]int64, 0, len(pairs))
	for _, p := range pairs {
		raw = append(raw, [2]int64{p.ID1, p.ID2})
	}
	data, err := marshalJSON(raw, true)
	if err != nil {
		return fmt.Errorf("encode rejections: %w", err)
	}
	return WriteFileAtomic(f.Path, data)
}
