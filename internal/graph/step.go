package graph

import (
	"context"

	"github.com/vk/typeflow/internal/param"
)

// Value is a tagged value flowing along a transformation path. Type carries
// the type key the producing step declared for it; the engine checks the tag,
// never the shape of Data. Content validation is the caller's obligation.
type Value struct {
	Type string
	Data any
}

// StepFunc is the body of a registered step. A collector receives the
// primitive value it declared and returns a value tagged with one of its
// declared output types; a transformer receives a value of its declared
// input type and returns one of its declared output type.
type StepFunc func(ctx context.Context, in Value) (Value, error)

// StepKind discriminates collector edges from transformer edges.
type StepKind int

const (
	// KindCollector marks a step converting a primitive into a derived type.
	KindCollector StepKind = iota
	// KindTransformer marks a step converting one derived type into another.
	KindTransformer
)

// String returns the lowercase kind name for diagnostics output.
func (k StepKind) String() string {
	if k == KindCollector {
		return "collector"
	}
	return "transformer"
}

// Step is one registered unit of work: a directed edge from its input type
// to its output type. Step names are unique across all collectors and
// transformers, which is what path search relies on for loop prevention.
type Step struct {
	Name   string
	Input  param.Parameter
	Output param.Parameter
	Fn     StepFunc
	Kind   StepKind
}
