package load

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// DecodeJSON decodes a JSON value for validation. Numbers are kept as
// json.Number so that integers keep their exact text.
func DecodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("load: decode JSON value: %w", err)
	}
	return v, nil
}

// DecodeYAML decodes every document of a YAML stream into JSON-like values
// (map[string]any, []any and scalars).
func DecodeYAML(data []byte) ([]any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var out []any
	for {
		var v any
		if err := dec.Decode(&v); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, fmt.Errorf("load: decode YAML value: %w", err)
		}
		out = append(out, yamlNormalizeValue(v))
	}
}

// DecodeFile decodes the values stored in path: one value for JSON files,
// one per document for YAML files.
func DecodeFile(path string) ([]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if IsJSON(path) {
		v, err := DecodeJSON(data)
		if err != nil {
			return nil, err
		}
		return []any{v}, nil
	}
	return DecodeYAML(data)
}

// yamlNormalizeValue converts YAML-decoded values (which may contain
// map[any]any for non-string keys) into JSON-like values recursively.
// Non-string keys are rendered with fmt.
func yamlNormalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = yamlNormalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				ks = fmt.Sprint(k)
			}
			out[ks] = yamlNormalizeValue(vv)
		}
		return out
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = yamlNormalizeValue(t[i])
		}
		return arr
	default:
		return v
	}
}
