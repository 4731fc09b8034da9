// Package graph implements the transformation graph and its path search.
//
// Vertices are parameter type keys; edges are registered steps (collector or
// transformer bodies). Path search is a depth-bounded, backtracking DFS that
// bans repeated step names within a branch rather than repeated nodes, so
// alternate routes through a shared intermediate type survive while cycles
// cannot recurse forever. Results are always ranked ascending by length.
//
// The graph is write-once: the registry replays its registrations into a
// fresh graph and the result is cached until explicitly invalidated.
package graph
