// Package loader reads datasets into record collections from JSON, YAML,
// and SQL sources. Loaders run once at startup; the grid itself never
// touches a data source after that.
package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/asaidimu/go-datagrid/core/record"
)

// FromJSON decodes a JSON array of flat objects into records.
func FromJSON(r io.Reader) ([]record.Record, error) {
	var rows []map[string]any
	decoder := json.NewDecoder(r)
	decoder.UseNumber()
	if err := decoder.Decode(&rows); err != nil {
		return nil, fmt.Errorf("decoding JSON dataset: %w", err)
	}
	return normalize(rows), nil
}

// FromJSONFile reads a JSON dataset from disk.
func FromJSONFile(path string) ([]record.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset %s: %w", path, err)
	}
	defer f.Close()
	return FromJSON(f)
}

// FromYAML decodes a YAML sequence of flat mappings into records.
func FromYAML(data []byte) ([]record.Record, error) {
	var rows []map[string]any
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decoding YAML dataset: %w", err)
	}
	return normalize(rows), nil
}

// FromYAMLFile reads a YAML dataset from disk.
func FromYAMLFile(path string) ([]record.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}
	return FromYAML(data)
}

// normalize converts decoded rows into records, widening json.Number into
// float64 so the rule engine's numeric coercion applies uniformly.
func normalize(rows []map[string]any) []record.Record {
	out := make([]record.Record, 0, len(rows))
	for _, row := range rows {
		rec := make(record.Record, len(row))
		for field, value := range row {
			if n, ok := value.(json.Number); ok {
				if f, err := n.Float64(); err == nil {
					rec[field] = f
					continue
				}
				rec[field] = n.String()
				continue
			}
			rec[field] = value
		}
		out = append(out, rec)
	}
	return out
}
