package driver

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

type executedQuery struct {
	Query  string
	Params map[string]any
}

type MockDriver struct {
	Executed []executedQuery
	Results  map[string]neo4j.EagerResult
	FailOn   string
	Err      error
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]any) (neo4j.EagerResult, error) {
	m.Executed = append(m.Executed, executedQuery{Query: query, Params: params})
	if m.FailOn != "" && query == m.FailOn {
		return neo4j.EagerResult{}, m.Err
	}
	return m.Results[query], nil
}

func (m *MockDriver) BuildIndices(ctx context.Context) error {
	return nil
}

func (m *MockDriver) Close(ctx context.Context) error {
	return nil
}

func countResult(key string, n int64) neo4j.EagerResult {
	return neo4j.EagerResult{
		Keys:    []string{key},
		Records: []*neo4j.Record{{Keys: []string{key}, Values: []any{n}}},
	}
}
