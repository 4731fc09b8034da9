// Package schema defines the HCL block structures for producer manifests.
// These structs are decode targets only; translation into the
// format-agnostic config model lives in the hcl package.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// ParamBlock is a single `input` or `output` block inside a manifest.
//
// Kind is optional; when absent it is inferred from position (collector
// inputs are primitive, everything else is collected) and the presence of
// `choices` forces a choice parameter. Default is kept as an expression so
// the translator can evaluate it and reject invalid defaults with a useful
// position.
type ParamBlock struct {
	Name        string         `hcl:"name,label"`
	Kind        string         `hcl:"kind,optional"`
	Version     string         `hcl:"version,optional"`
	Required    *bool          `hcl:"required,optional"`
	Group       string         `hcl:"group,optional"`
	Description string         `hcl:"description,optional"`
	OutputType  string         `hcl:"output_type,optional"`
	Choices     []string       `hcl:"choices,optional"`
	Default     hcl.Expression `hcl:"default,optional"`
	Multiselect bool           `hcl:"multiselect,optional"`
}

// StepManifest is a `collector` or `transformer` block: the public contract
// of one registered step.
type StepManifest struct {
	Name        string        `hcl:"name,label"`
	Description string        `hcl:"description,optional"`
	Inputs      []*ParamBlock `hcl:"input,block"`
	Outputs     []*ParamBlock `hcl:"output,block"`
}

// ReportManifest is a `report` block, keyed by its title.
type ReportManifest struct {
	Title       string        `hcl:"title,label"`
	Description string        `hcl:"description,optional"`
	Inputs      []*ParamBlock `hcl:"input,block"`
}

// FileRoot decodes all recognized top-level blocks from any manifest file.
type FileRoot struct {
	Collectors   []*StepManifest   `hcl:"collector,block"`
	Transformers []*StepManifest   `hcl:"transformer,block"`
	Reports      []*ReportManifest `hcl:"report,block"`
	Remain       hcl.Body          `hcl:",remain"`
}
