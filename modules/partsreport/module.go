// Package partsreport provides the "Parts Overview" report, which
// summarises an aggregated parts list for a sales region.
package partsreport

import (
	"context"
	"fmt"

	"github.com/vk/typeflow/internal/param"
	"github.com/vk/typeflow/internal/registry"
	"github.com/vk/typeflow/internal/report"
	"github.com/vk/typeflow/modules/partslist"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Summary is the value produced by the "Parts Overview" report.
type Summary struct {
	Region        string
	Lines         int
	TotalQuantity int
}

// OnPartsOverview is the report function. It consumes the resolved
// "parts_list" input plus the "region" choice.
func OnPartsOverview(ctx context.Context, inputs map[string]any) (any, error) {
	list, ok := inputs["parts_list"].(partslist.List)
	if !ok {
		return nil, fmt.Errorf("parts overview expects a parts list, got %T", inputs["parts_list"])
	}

	region, _ := inputs["region"].(string)
	if region == "" {
		region = "emea"
	}

	summary := Summary{Region: region, Lines: len(list)}
	for _, p := range list {
		summary.TotalQuantity += p.Quantity
	}
	return summary, nil
}

// Register registers the report with the engine.
func (m *Module) Register(r *registry.Registry) error {
	region, err := param.NewChoice("region", []string{"emea", "amer", "apac"}, "emea", false)
	if err != nil {
		return err
	}

	r.RegisterReport(report.Definition{
		Title:       "Parts Overview",
		Description: "Summarises an aggregated parts list for a sales region.",
		Fn:          OnPartsOverview,
		Inputs: []param.Parameter{
			param.NewCollected("parts_list"),
			region,
		},
	})
	return nil
}
