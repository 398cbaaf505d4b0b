package output

import (
	"encoding/json"
	"fmt"

	"github.com/itchyny/gojq"
)

// RunQuery runs the jq expression query on data
// after converting it to its JSON representation
// and returns all results.
func RunQuery(query string, data any) ([]any, error) {
	parsed, err := gojq.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("invalid --query: %w", err)
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		return nil, fmt.Errorf("invalid --query: %w", err)
	}

	normalized, err := normalize(data)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	var results []any
	iter := code.Run(normalized)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			return nil, fmt.Errorf("query error: %w", err)
		}
		results = append(results, v)
	}
	return results, nil
}

// normalize converts data to the map/slice values gojq accepts.
func normalize(data any) (any, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func (p *Printer) printQuery(data any) error {
	results, err := RunQuery(p.query, data)
	if err != nil {
		return err
	}
	for _, result := range results {
		if p.format == FormatYAML {
			err = p.printYAML(result)
		} else {
			err = p.printJSON(result)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
