package config

import (
	"github.com/vk/typeflow/internal/param"
)

// Model is the format-agnostic representation of every manifest the loader
// discovered: the public contracts of all collectors, transformers, and
// reports.
type Model struct {
	Collectors   map[string]*StepDefinition
	Transformers map[string]*StepDefinition
	Reports      map[string]*ReportDefinition
}

// NewModel returns an empty, initialized model.
func NewModel() *Model {
	return &Model{
		Collectors:   make(map[string]*StepDefinition),
		Transformers: make(map[string]*StepDefinition),
		Reports:      make(map[string]*ReportDefinition),
	}
}

// StepDefinition is the manifest contract of one collector or transformer:
// the step name, its human description, and the typed inputs and outputs it
// declares. The Go registration carrying the same name must agree with it.
type StepDefinition struct {
	Name        string
	Description string
	Inputs      []*ParamDefinition
	Outputs     []*ParamDefinition
}

// ReportDefinition is the manifest contract of one report, keyed by title.
type ReportDefinition struct {
	Title       string
	Description string
	Inputs      []*ParamDefinition
}

// ParamDefinition is a manifest-declared parameter plus its presentation
// metadata. Parameter carries everything the engine routes on; Group names
// the primitive group a UI should render it under.
type ParamDefinition struct {
	Parameter   param.Parameter
	Group       string
	Description string
}
