package registry

import (
	"fmt"
	"log/slog"

	"github.com/vk/typeflow/internal/config"
	"github.com/vk/typeflow/internal/graph"
	"github.com/vk/typeflow/internal/param"
	"github.com/vk/typeflow/internal/report"
)

// Module is the interface producer packages implement to register their
// collectors, transformers, and reports during the startup phase.
type Module interface {
	Register(r *Registry) error
}

// Collector is a registered producer: primitive inputs in, derived outputs out.
type Collector struct {
	Name    string
	Fn      graph.StepFunc
	Inputs  []param.Parameter
	Outputs []param.Parameter
}

// Transformer is a registered converter between two derived types.
type Transformer struct {
	Name   string
	Fn     graph.StepFunc
	Input  param.Parameter
	Output param.Parameter
}

// Registry is the single source of truth for all registered producers and
// report metadata for one application instance. It builds the transformation
// graph from its own contents and caches it; the cache must be invalidated
// explicitly after late registrations.
//
// All registration is expected to complete before the first query. Nothing
// here is safe for concurrent registration and querying.
type Registry struct {
	collectors   map[string]*Collector
	transformers map[string]*Transformer
	// stepOrder preserves registration order across both step kinds so the
	// graph replay, and therefore equal-length path ranking, is stable.
	stepOrder []string

	reports     map[string]*report.Definition
	reportOrder []string

	// manifest contracts, populated from the loaded config model.
	definitions *config.Model

	graph *graph.Graph
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	r := &Registry{}
	r.Clear()
	return r
}

// Clear resets the registry to its initial empty state. It exists for test
// isolation only; production code registers once and never tears down.
func (r *Registry) Clear() {
	r.collectors = make(map[string]*Collector)
	r.transformers = make(map[string]*Transformer)
	r.stepOrder = nil
	r.reports = make(map[string]*report.Definition)
	r.reportOrder = nil
	r.definitions = config.NewModel()
	r.graph = nil
}

// RegisterCollector records a producer. Every input is later treated as a
// graph primitive. The name must be unique across all collectors and
// transformers; a duplicate is an observable error, not a panic.
func (r *Registry) RegisterCollector(name string, fn graph.StepFunc, inputs, outputs []param.Parameter) error {
	if err := r.checkStepName(name); err != nil {
		return err
	}
	slog.Debug("Registering collector.", "name", name)
	r.collectors[name] = &Collector{Name: name, Fn: fn, Inputs: inputs, Outputs: outputs}
	r.stepOrder = append(r.stepOrder, name)
	return nil
}

// RegisterTransformer records a converter edge. The same name-uniqueness
// rule as RegisterCollector applies.
func (r *Registry) RegisterTransformer(name string, fn graph.StepFunc, input, output param.Parameter) error {
	if err := r.checkStepName(name); err != nil {
		return err
	}
	slog.Debug("Registering transformer.", "name", name)
	r.transformers[name] = &Transformer{Name: name, Fn: fn, Input: input, Output: output}
	r.stepOrder = append(r.stepOrder, name)
	return nil
}

func (r *Registry) checkStepName(name string) error {
	if _, exists := r.collectors[name]; exists {
		return fmt.Errorf("step name %q already registered as a collector", name)
	}
	if _, exists := r.transformers[name]; exists {
		return fmt.Errorf("step name %q already registered as a transformer", name)
	}
	return nil
}

// RegisterReport stores a report definition keyed by title. A duplicate
// title silently overwrites the previous entry; last registration wins.
func (r *Registry) RegisterReport(def report.Definition) {
	slog.Debug("Registering report.", "title", def.Title)
	if _, exists := r.reports[def.Title]; !exists {
		r.reportOrder = append(r.reportOrder, def.Title)
	}
	r.reports[def.Title] = &def
}

// Collector returns a registered collector by name.
func (r *Registry) Collector(name string) (*Collector, bool) {
	c, ok := r.collectors[name]
	return c, ok
}

// Transformer returns a registered transformer by name.
func (r *Registry) Transformer(name string) (*Transformer, bool) {
	t, ok := r.transformers[name]
	return t, ok
}

// CollectorNames returns every registered collector name in registration order.
func (r *Registry) CollectorNames() []string {
	var out []string
	for _, name := range r.stepOrder {
		if _, ok := r.collectors[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

// TransformerNames returns every registered transformer name in registration order.
func (r *Registry) TransformerNames() []string {
	var out []string
	for _, name := range r.stepOrder {
		if _, ok := r.transformers[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

// Report returns a registered report definition by title.
func (r *Registry) Report(title string) (report.Definition, bool) {
	def, ok := r.reports[title]
	if !ok {
		return report.Definition{}, false
	}
	return *def, true
}

// Resolver returns a report resolver for the given title, backed by this
// registry's collectors.
func (r *Registry) Resolver(title string) (*report.Resolver, bool) {
	def, ok := r.Report(title)
	if !ok {
		return nil, false
	}
	return report.NewResolver(def, r), true
}

// ReportTitles returns every registered report title in registration order.
func (r *Registry) ReportTitles() []string {
	out := make([]string, len(r.reportOrder))
	copy(out, r.reportOrder)
	return out
}

// BuildGraph constructs a fresh transformation graph by replaying every
// registered collector and transformer into it, in registration order, then
// applying the primitive groups declared in the manifests. The result is
// cached for Graph.
func (r *Registry) BuildGraph() *graph.Graph {
	g := graph.New()
	for _, name := range r.stepOrder {
		if c, ok := r.collectors[name]; ok {
			g.AddCollector(c.Name, c.Fn, c.Inputs, c.Outputs)
			continue
		}
		if t, ok := r.transformers[name]; ok {
			g.AddTransformer(t.Name, t.Fn, t.Input, t.Output)
		}
	}
	for _, def := range r.definitions.Collectors {
		for _, in := range def.Inputs {
			if in.Group != "" {
				g.AddPrimitiveGroup(in.Group, in.Parameter.TypeKey())
			}
		}
	}
	r.graph = g
	return g
}

// Graph returns the cached transformation graph, building it on first call.
func (r *Registry) Graph() *graph.Graph {
	if r.graph == nil {
		return r.BuildGraph()
	}
	return r.graph
}

// InvalidateGraph drops the cached graph. It must be called explicitly after
// registrations that happen once queries have already been issued; nothing
// invalidates the cache automatically.
func (r *Registry) InvalidateGraph() {
	r.graph = nil
}
