package registry

import (
	"github.com/vk/typeflow/internal/param"
	"github.com/vk/typeflow/internal/report"
)

// CollectorsForType returns the names of collectors with an output matching
// t, in registration order. A linear scan; the registry is small and built
// once.
func (r *Registry) CollectorsForType(t param.Parameter) []string {
	var out []string
	for _, name := range r.stepOrder {
		c, ok := r.collectors[name]
		if !ok {
			continue
		}
		if anyMatches(c.Outputs, t) {
			out = append(out, name)
		}
	}
	return out
}

// TransformersForInput returns the names of transformers whose input matches t.
func (r *Registry) TransformersForInput(t param.Parameter) []string {
	return r.scanTransformers(func(tr *Transformer) bool { return tr.Input.Matches(t) })
}

// TransformersForOutput returns the names of transformers whose output matches t.
func (r *Registry) TransformersForOutput(t param.Parameter) []string {
	return r.scanTransformers(func(tr *Transformer) bool { return tr.Output.Matches(t) })
}

func (r *Registry) scanTransformers(match func(*Transformer) bool) []string {
	var out []string
	for _, name := range r.stepOrder {
		tr, ok := r.transformers[name]
		if !ok {
			continue
		}
		if match(tr) {
			out = append(out, name)
		}
	}
	return out
}

// CollectorsForOutput implements report.Catalog: every collector with an
// output matching t, as the resolver's producer view.
func (r *Registry) CollectorsForOutput(t param.Parameter) []report.Producer {
	var out []report.Producer
	for _, name := range r.CollectorsForType(t) {
		c := r.collectors[name]
		out = append(out, report.Producer{
			Name:    c.Name,
			Inputs:  c.Inputs,
			Outputs: c.Outputs,
		})
	}
	return out
}

func anyMatches(params []param.Parameter, t param.Parameter) bool {
	for _, p := range params {
		if p.Matches(t) {
			return true
		}
	}
	return false
}
