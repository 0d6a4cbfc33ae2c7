package storage

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/agenthands/namesake/internal/core/model"
	"github.com/agenthands/namesake/internal/errors"
)

func openRequired(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(path, errors.MissingRequired, err)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

// ReadPairs reads candidate pairs, one "id1 id2" per line. Blank lines are
// ignored; any other line that is not two integers is an error.
func ReadPairs(path string) ([]model.CandidatePair, error) {
	f, err := openRequired(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var pairs []model.CandidatePair
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, errors.NewLineError(path, line, fmt.Errorf("want two ids, got %d fields", len(fields)))
		}
		id1, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return nil, errors.NewLineError(path, line, err)
		}
		id2, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, errors.NewLineError(path, line, err)
		}
		pairs = append(pairs, model.CandidatePair{ID1: id1, ID2: id2})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return pairs, nil
}

// ReadNames reads one name per line, trimmed, blank lines skipped.
func ReadNames(path string) ([]string, error) {
	f, err := openRequired(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if name := strings.TrimSpace(scanner.Text()); name != "" {
			names = append(names, name)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return names, nil
}
