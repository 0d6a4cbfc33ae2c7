// Package common holds helpers shared by the LLM-backed components.
package common

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSONObject returns the outermost {...} span of an LLM response,
// ignoring code fences and any prose around it.
func ExtractJSONObject(response string) (string, bool) {
	start := strings.IndexByte(response, '{')
	end := strings.LastIndexByte(response, '}')
	if start == -1 || end < start {
		return "", false
	}
	return response[start : end+1], true
}

// ParseJSON decodes the JSON object embedded in an LLM response into T.
func ParseJSON[T any](response string) (T, error) {
	var result T
	obj, ok := ExtractJSONObject(response)
	if !ok {
		return result, fmt.Errorf("no JSON object found in response")
	}
	if err := json.Unmarshal([]byte(obj), &result); err != nil {
		return result, fmt.Errorf("decode JSON object: %w", err)
	}
	return result, nil
}
