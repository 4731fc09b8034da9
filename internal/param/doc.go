// Package param defines the immutable typed descriptors that the engine
// routes between: primitive (root) inputs supplied by the user, collected
// values produced by collectors, and enumerated choice inputs. A parameter's
// TypeKey is the identity used as a vertex in the transformation graph.
package param
