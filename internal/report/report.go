package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/typeflow/internal/param"
)

// ReportFunc is the body of a registered report. Arguments arrive as the
// keyword map the caller supplied; no declared-type validation happens at
// this layer, so a body receiving wrong names or types fails however it
// naturally fails.
type ReportFunc func(ctx context.Context, args map[string]any) (any, error)

// Definition is a report's registered metadata: its title (the registry
// key), its body, and the parameters it declares.
type Definition struct {
	Title       string
	Description string
	Fn          ReportFunc
	Inputs      []param.Parameter
}

// Producer describes a collector as the resolver sees it: a name, the
// inputs it consumes, and the outputs it produces.
type Producer struct {
	Name    string
	Inputs  []param.Parameter
	Outputs []param.Parameter
}

// Catalog is the slice of the registry the resolver needs. The registry
// implements it; tests supply fakes.
type Catalog interface {
	// CollectorsForOutput returns every collector with an output matching t,
	// in registration order.
	CollectorsForOutput(t param.Parameter) []Producer
}

// Resolver answers queries about a single report definition: which
// parameters it declares, which primitive inputs it ultimately depends on,
// and whether it can run with the collectors currently registered. It holds
// no state of its own; every call is independent.
type Resolver struct {
	def     Definition
	catalog Catalog
}

// NewResolver wraps a definition with the catalog used to trace collected
// parameters back to collectors.
func NewResolver(def Definition, catalog Catalog) *Resolver {
	return &Resolver{def: def, catalog: catalog}
}

// Definition returns the wrapped report definition.
func (r *Resolver) Definition() Definition {
	return r.def
}

// Parameters returns the report's declared inputs.
func (r *Resolver) Parameters() []param.Parameter {
	return r.def.Inputs
}

// RequiredParameters returns the declared inputs with Required set.
func (r *Resolver) RequiredParameters() []param.Parameter {
	return r.filter(true)
}

// OptionalParameters returns the declared inputs with Required unset.
func (r *Resolver) OptionalParameters() []param.Parameter {
	return r.filter(false)
}

func (r *Resolver) filter(required bool) []param.Parameter {
	var out []param.Parameter
	for _, p := range r.def.Inputs {
		if p.Required == required {
			out = append(out, p)
		}
	}
	return out
}

// BaseInputs resolves the minimal set of primitive parameters the report
// ultimately depends on. It walks a breadth-first worklist from the declared
// inputs: primitives join the result directly; a collected parameter is
// traced through collectors whose output matches its OutputType, pushing the
// collector's own inputs for further resolution, so multi-level chains
// resolve transitively. A collected parameter with no matching collector is
// dropped silently — Issues flags the same condition, and the divergence is
// deliberate. Parameters already seen by name are not reprocessed, which
// terminates diamond-shaped dependency graphs.
func (r *Resolver) BaseInputs() []param.Parameter {
	var result []param.Parameter
	seen := make(map[string]struct{})

	queue := make([]param.Parameter, len(r.def.Inputs))
	copy(queue, r.def.Inputs)

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		if _, done := seen[p.Name]; done {
			continue
		}
		seen[p.Name] = struct{}{}

		if p.Root {
			result = append(result, p)
			continue
		}

		target := param.NewCollected(p.OutputType)
		for _, c := range r.catalog.CollectorsForOutput(target) {
			queue = append(queue, c.Inputs...)
		}
	}
	return result
}

// CanGenerate reports whether every required parameter is satisfiable at
// first level. See Issues for the rules.
func (r *Resolver) CanGenerate() bool {
	return len(r.Issues()) == 0
}

// Issues returns one human-readable string per required parameter that
// cannot be satisfied. Primitives always pass; a collected parameter passes
// when at least one registered collector's output matches its OutputType.
// The check is intentionally first-level only: it does not verify that the
// matching collector's own inputs are in turn satisfiable.
func (r *Resolver) Issues() []string {
	var issues []string
	for _, p := range r.RequiredParameters() {
		if p.Root {
			continue
		}
		target := param.NewCollected(p.OutputType)
		if len(r.catalog.CollectorsForOutput(target)) == 0 {
			issues = append(issues, fmt.Sprintf("no collector produces %q, required by parameter %q", p.OutputType, p.Name))
		}
	}
	return issues
}

// Generate delegates directly to the report body with the supplied
// arguments. No parameter-shape validation is performed here; that boundary
// is intentionally thin.
func (r *Resolver) Generate(ctx context.Context, args map[string]any) (any, error) {
	return r.def.Fn(ctx, args)
}

// DependencyTree renders the report title and its declared inputs as plain
// text for diagnostics and UI display.
func (r *Resolver) DependencyTree() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", r.def.Title)
	for _, p := range r.def.Inputs {
		req := "optional"
		if p.Required {
			req = "required"
		}
		fmt.Fprintf(&b, "  - %s (%s, %s)\n", p.TypeKey(), p.Kind, req)
	}
	return b.String()
}
