package parse

import (
	"encoding/json"
	"fmt"

	"github.com/kaptinlin/jsonrepair"
)

// JSONAs decodes content into the target type T. Strict unmarshaling is
// attempted first; on failure the content is repaired with jsonrepair and
// decoded once more. The returned error wraps both the unmarshal and repair
// causes when every attempt fails.
//
// Example usage:
//
//	// Valid JSON decodes directly.
//	resp, err := parse.JSONAs[completionBody](`{"id":"abc","content":"hi"}`)
//
//	// Slightly malformed JSON is repaired and retried.
//	resp, err := parse.JSONAs[completionBody](`{id: 'abc', content: 'hi',}`)
func JSONAs[T any](content string) (T, error) {
	var result T

	err := json.Unmarshal([]byte(content), &result)
	if err == nil {
		return result, nil
	}

	// Strict decode failed — attempt to repair the JSON and retry.
	repairedJSON, repairErr := jsonrepair.JSONRepair(content)
	if repairErr != nil {
		return result, fmt.Errorf("failed to unmarshal content as %T and failed to repair JSON: unmarshal error: %w, repair error: %v", result, err, repairErr)
	}

	if err = json.Unmarshal([]byte(repairedJSON), &result); err != nil {
		return result, fmt.Errorf("failed to unmarshal repaired JSON as %T: %w", result, err)
	}

	return result, nil
}
