// Package partslist provides the 'frame_to_parts' transformer, which
// aggregates a data frame into a parts list keyed by SKU. It also defines
// the parts list value type consumed by reports and other transformers.
package partslist

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/vk/typeflow/internal/graph"
	"github.com/vk/typeflow/internal/param"
	"github.com/vk/typeflow/internal/registry"
	"github.com/vk/typeflow/modules/frame"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Part is one aggregated line of a parts list.
type Part struct {
	SKU      string
	Name     string
	Quantity int
}

// List is the "parts_list" value type: parts sorted by SKU.
type List []Part

// OnFrameToParts is the step handler for the 'frame_to_parts' transformer.
// It requires a 'sku' column; 'name' and 'qty' are optional, with a missing
// qty counting as one unit.
func OnFrameToParts(ctx context.Context, in graph.Value) (graph.Value, error) {
	f, ok := in.Data.(*frame.Frame)
	if !ok {
		return graph.Value{}, fmt.Errorf("frame_to_parts expects a data frame, got %T", in.Data)
	}
	if f.Column("sku") < 0 {
		return graph.Value{}, fmt.Errorf("frame_to_parts: frame has no 'sku' column (columns: %v)", f.Columns)
	}

	bySKU := make(map[string]*Part)
	for i := range f.Rows {
		sku := f.Cell(i, "sku")
		if sku == "" {
			continue
		}
		qty := 1
		if raw := f.Cell(i, "qty"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return graph.Value{}, fmt.Errorf("frame_to_parts: row %d: invalid qty %q: %w", i, raw, err)
			}
			qty = n
		}
		if p, ok := bySKU[sku]; ok {
			p.Quantity += qty
			continue
		}
		bySKU[sku] = &Part{SKU: sku, Name: f.Cell(i, "name"), Quantity: qty}
	}

	list := make(List, 0, len(bySKU))
	for _, p := range bySKU {
		list = append(list, *p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].SKU < list[j].SKU })

	return graph.Value{Type: "parts_list", Data: list}, nil
}

// Register registers the transformer with the engine.
func (m *Module) Register(r *registry.Registry) error {
	return r.RegisterTransformer("frame_to_parts", OnFrameToParts,
		param.NewCollected("data_frame"),
		param.NewCollected("parts_list"),
	)
}
