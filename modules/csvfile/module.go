// Package csvfile provides the 'load_csv' collector: it reads a CSV file
// from a user-supplied path and produces a data frame.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/vk/typeflow/internal/graph"
	"github.com/vk/typeflow/internal/param"
	"github.com/vk/typeflow/internal/registry"
	"github.com/vk/typeflow/modules/frame"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// OnLoadCSV is the step handler for the 'load_csv' collector. The input
// value carries the file path supplied by the user.
func OnLoadCSV(ctx context.Context, in graph.Value) (graph.Value, error) {
	path, ok := in.Data.(string)
	if !ok {
		return graph.Value{}, fmt.Errorf("load_csv expects a file path string, got %T", in.Data)
	}

	f, err := os.Open(path)
	if err != nil {
		return graph.Value{}, fmt.Errorf("load_csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return graph.Value{}, fmt.Errorf("load_csv: parsing %q: %w", path, err)
	}
	if len(records) == 0 {
		return graph.Value{}, fmt.Errorf("load_csv: %q contains no header row", path)
	}

	out := &frame.Frame{Columns: records[0], Rows: records[1:]}
	return graph.Value{Type: "data_frame", Data: out}, nil
}

// Register registers the collector with the engine.
func (m *Module) Register(r *registry.Registry) error {
	return r.RegisterCollector("load_csv", OnLoadCSV,
		[]param.Parameter{param.NewPrimitive("file_path")},
		[]param.Parameter{param.NewCollected("data_frame")},
	)
}
