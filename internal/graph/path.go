package graph

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/vk/typeflow/internal/param"
)

// DefaultMaxDepth bounds path search when the caller does not supply a
// depth. It is the only termination mechanism: there is no timeout and no
// cancellation beyond the context handed to Execute.
const DefaultMaxDepth = 10

// Path is an ordered, non-empty sequence of steps from a source type to a
// target type.
type Path struct {
	Source string
	Target string
	Steps  []*Step
}

// Len returns the number of steps in the path.
func (p *Path) Len() int {
	return len(p.Steps)
}

// Execute folds the steps left to right: the initial value is wrapped as a
// Value tagged with the path's source type, and each step's output feeds the
// next step's input. The first step error aborts the fold.
func (p *Path) Execute(ctx context.Context, value any) (Value, error) {
	v := Value{Type: p.Source, Data: value}
	for _, step := range p.Steps {
		out, err := step.Fn(ctx, v)
		if err != nil {
			return Value{}, fmt.Errorf("step %q: %w", step.Name, err)
		}
		v = out
	}
	return v, nil
}

// String renders the path as "source -> step(a) -> step(b) -> target" for
// diagnostics output.
func (p *Path) String() string {
	var b strings.Builder
	b.WriteString(p.Source)
	for _, step := range p.Steps {
		fmt.Fprintf(&b, " -> %s(%s)", step.Output.TypeKey(), step.Name)
	}
	return b.String()
}

// FindAllPaths enumerates every loop-free path from source to target, up to
// maxDepth steps deep (DefaultMaxDepth when maxDepth is not positive), and
// returns them sorted ascending by length.
//
// Loop prevention is step-identity based, not node based: the same type node
// may legitimately be reached by more than one distinct route (two file
// format collectors producing the same intermediate type), so only repeated
// step names are banned within a branch. That is exactly what keeps cyclic
// transformer graphs from recursing forever, since a step can never re-add
// the edge it just traversed.
//
// An empty graph, an unknown source, or an unreachable target all yield an
// empty result, never an error.
func (g *Graph) FindAllPaths(source, target param.Parameter, maxDepth int) []*Path {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	var found []*Path
	used := make(map[string]struct{})

	var walk func(key string, steps []*Step, depth int)
	walk = func(key string, steps []*Step, depth int) {
		if len(steps) > 0 && steps[len(steps)-1].Output.Matches(target) {
			found = append(found, &Path{
				Source: source.TypeKey(),
				Target: target.TypeKey(),
				Steps:  slices.Clone(steps),
			})
			return
		}
		if depth >= maxDepth {
			return
		}
		for _, step := range g.edges[key] {
			if _, taken := used[step.Name]; taken {
				continue
			}
			used[step.Name] = struct{}{}
			walk(step.Output.TypeKey(), append(steps, step), depth+1)
			delete(used, step.Name)
		}
	}
	walk(source.TypeKey(), nil, 0)

	sortPaths(found)
	return found
}

// FindPathsToTarget runs FindAllPaths from every known primitive and returns
// the concatenated results, re-sorted by length. For each primitive type key
// a concrete source parameter is recovered by scanning the edges for a step
// whose input carries that key.
func (g *Graph) FindPathsToTarget(target param.Parameter, maxDepth int) []*Path {
	var found []*Path
	for _, key := range g.Primitives() {
		src, ok := g.sourceParameter(key)
		if !ok {
			continue
		}
		found = append(found, g.FindAllPaths(src, target, maxDepth)...)
	}
	sortPaths(found)
	return found
}

// ShortestPath returns the minimum-length path from source to target, or nil
// when the target is unreachable.
func (g *Graph) ShortestPath(source, target param.Parameter) *Path {
	paths := g.FindAllPaths(source, target, DefaultMaxDepth)
	if len(paths) == 0 {
		return nil
	}
	return paths[0]
}

// sourceParameter recovers a concrete Parameter instance for a primitive
// type key by scanning outgoing edges for a step registered with it.
func (g *Graph) sourceParameter(key string) (param.Parameter, bool) {
	for _, step := range g.edges[key] {
		if step.Input.TypeKey() == key {
			return step.Input, true
		}
	}
	return param.Parameter{}, false
}

func sortPaths(paths []*Path) {
	sort.SliceStable(paths, func(i, j int) bool {
		return paths[i].Len() < paths[j].Len()
	})
}
