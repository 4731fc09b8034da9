// Package jsonfile provides the 'load_json' collector: it reads a JSON
// array of flat objects and produces the same data frame shape as the CSV
// collector, so every downstream transformer works on either source.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/vk/typeflow/internal/graph"
	"github.com/vk/typeflow/internal/param"
	"github.com/vk/typeflow/internal/registry"
	"github.com/vk/typeflow/modules/frame"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// OnLoadJSON is the step handler for the 'load_json' collector.
func OnLoadJSON(ctx context.Context, in graph.Value) (graph.Value, error) {
	path, ok := in.Data.(string)
	if !ok {
		return graph.Value{}, fmt.Errorf("load_json expects a file path string, got %T", in.Data)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return graph.Value{}, fmt.Errorf("load_json: %w", err)
	}

	var objects []map[string]any
	if err := json.Unmarshal(raw, &objects); err != nil {
		return graph.Value{}, fmt.Errorf("load_json: parsing %q: %w", path, err)
	}

	out := &frame.Frame{Columns: columnsOf(objects)}
	for _, obj := range objects {
		row := make([]string, len(out.Columns))
		for i, col := range out.Columns {
			if v, ok := obj[col]; ok {
				row[i] = fmt.Sprintf("%v", v)
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return graph.Value{Type: "data_frame", Data: out}, nil
}

// columnsOf builds a stable header from the union of all object keys.
func columnsOf(objects []map[string]any) []string {
	seen := make(map[string]struct{})
	var cols []string
	for _, obj := range objects {
		for k := range obj {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				cols = append(cols, k)
			}
		}
	}
	sort.Strings(cols)
	return cols
}

// Register registers the collector with the engine.
func (m *Module) Register(r *registry.Registry) error {
	return r.RegisterCollector("load_json", OnLoadJSON,
		[]param.Parameter{param.NewPrimitive("file_path")},
		[]param.Parameter{param.NewCollected("data_frame")},
	)
}
