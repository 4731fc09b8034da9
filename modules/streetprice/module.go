// Package streetprice provides two transformers around street price
// quotes: 'frame_to_prices' extracts a price list from a data frame, and
// 'prices_to_parts' converts the quotes into a parts list. Together they
// form a deliberately longer route to parts_list than frame_to_parts, which
// path ranking must place second.
package streetprice

import (
	"context"
	"fmt"
	"strconv"

	"github.com/vk/typeflow/internal/graph"
	"github.com/vk/typeflow/internal/param"
	"github.com/vk/typeflow/internal/registry"
	"github.com/vk/typeflow/modules/frame"
	"github.com/vk/typeflow/modules/partslist"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Quote is one street price observation for a SKU.
type Quote struct {
	SKU   string
	Name  string
	Price float64
}

// PriceList is the "street_price_list" value type.
type PriceList []Quote

// OnFrameToPrices is the step handler for the 'frame_to_prices'
// transformer. It requires 'sku' and 'price' columns.
func OnFrameToPrices(ctx context.Context, in graph.Value) (graph.Value, error) {
	f, ok := in.Data.(*frame.Frame)
	if !ok {
		return graph.Value{}, fmt.Errorf("frame_to_prices expects a data frame, got %T", in.Data)
	}
	for _, col := range []string{"sku", "price"} {
		if f.Column(col) < 0 {
			return graph.Value{}, fmt.Errorf("frame_to_prices: frame has no %q column (columns: %v)", col, f.Columns)
		}
	}

	var prices PriceList
	for i := range f.Rows {
		sku := f.Cell(i, "sku")
		if sku == "" {
			continue
		}
		price, err := strconv.ParseFloat(f.Cell(i, "price"), 64)
		if err != nil {
			return graph.Value{}, fmt.Errorf("frame_to_prices: row %d: invalid price %q: %w", i, f.Cell(i, "price"), err)
		}
		prices = append(prices, Quote{SKU: sku, Name: f.Cell(i, "name"), Price: price})
	}
	return graph.Value{Type: "street_price_list", Data: prices}, nil
}

// OnPricesToParts is the step handler for the 'prices_to_parts'
// transformer. Each quoted SKU becomes a single-unit part.
func OnPricesToParts(ctx context.Context, in graph.Value) (graph.Value, error) {
	prices, ok := in.Data.(PriceList)
	if !ok {
		return graph.Value{}, fmt.Errorf("prices_to_parts expects a street price list, got %T", in.Data)
	}

	list := make(partslist.List, 0, len(prices))
	for _, q := range prices {
		list = append(list, partslist.Part{SKU: q.SKU, Name: q.Name, Quantity: 1})
	}
	return graph.Value{Type: "parts_list", Data: list}, nil
}

// Register registers both transformers with the engine.
func (m *Module) Register(r *registry.Registry) error {
	if err := r.RegisterTransformer("frame_to_prices", OnFrameToPrices,
		param.NewCollected("data_frame"),
		param.NewCollected("street_price_list"),
	); err != nil {
		return err
	}
	return r.RegisterTransformer("prices_to_parts", OnPricesToParts,
		param.NewCollected("street_price_list"),
		param.NewCollected("parts_list"),
	)
}
