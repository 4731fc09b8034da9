package graph

import (
	"slices"

	"github.com/vk/typeflow/internal/param"
)

// Graph is the transformation graph: an adjacency structure keyed by
// parameter type identity. It is built once from the registry's contents and
// then only read; registration and querying never interleave by contract, so
// no locking is needed.
type Graph struct {
	// nodes is the set of type keys ever seen as a step endpoint.
	nodes map[string]struct{}
	// edges maps an input type key to its outgoing steps, in registration order.
	edges map[string][]*Step
	// primitives is the set of type keys that have appeared as a collector
	// input. Every collector input lands here by construction.
	primitives map[string]struct{}
	// groups holds named sets of primitive type keys for UI grouping.
	groups map[string][]string
}

// New creates an empty transformation graph.
func New() *Graph {
	return &Graph{
		nodes:      make(map[string]struct{}),
		edges:      make(map[string][]*Step),
		primitives: make(map[string]struct{}),
		groups:     make(map[string][]string),
	}
}

// AddCollector registers one primitive → output edge per (input, output)
// pair, all sharing the collector's step name. Each input's type key is
// marked as a graph primitive.
func (g *Graph) AddCollector(name string, fn StepFunc, inputs, outputs []param.Parameter) {
	for _, in := range inputs {
		g.primitives[in.TypeKey()] = struct{}{}
		for _, out := range outputs {
			g.addEdge(&Step{
				Name:   name,
				Input:  in,
				Output: out,
				Fn:     fn,
				Kind:   KindCollector,
			})
		}
	}
}

// AddTransformer registers a single input → output edge.
func (g *Graph) AddTransformer(name string, fn StepFunc, input, output param.Parameter) {
	g.addEdge(&Step{
		Name:   name,
		Input:  input,
		Output: output,
		Fn:     fn,
		Kind:   KindTransformer,
	})
}

func (g *Graph) addEdge(s *Step) {
	inKey := s.Input.TypeKey()
	g.nodes[inKey] = struct{}{}
	g.nodes[s.Output.TypeKey()] = struct{}{}
	g.edges[inKey] = append(g.edges[inKey], s)
}

// AddPrimitiveGroup appends primitive type keys to a named group. Keys
// already present in the group are not duplicated.
func (g *Graph) AddPrimitiveGroup(group string, keys ...string) {
	for _, key := range keys {
		if !slices.Contains(g.groups[group], key) {
			g.groups[group] = append(g.groups[group], key)
		}
	}
}

// Nodes returns all known type keys, sorted.
func (g *Graph) Nodes() []string {
	return sortedKeys(g.nodes)
}

// Primitives returns the type keys of all known primitives, sorted.
func (g *Graph) Primitives() []string {
	return sortedKeys(g.primitives)
}

// IsPrimitive reports whether the type key has appeared as a collector input.
func (g *Graph) IsPrimitive(key string) bool {
	_, ok := g.primitives[key]
	return ok
}

// PrimitiveGroups returns a copy of the named primitive groupings.
func (g *Graph) PrimitiveGroups() map[string][]string {
	out := make(map[string][]string, len(g.groups))
	for name, keys := range g.groups {
		out[name] = slices.Clone(keys)
	}
	return out
}

// Steps returns every registered edge, grouped by input type key in sorted
// key order. Used by the diagnostics surface.
func (g *Graph) Steps() []*Step {
	var out []*Step
	for _, key := range sortedKeys(g.edges) {
		out = append(out, g.edges[key]...)
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
