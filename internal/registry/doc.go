// Package registry provides the central catalogue for the routing engine.
//
// A Registry is an explicit, constructed object — there is no process-wide
// singleton. Producer modules register their collectors, transformers, and
// reports against it during a single-threaded startup phase; afterwards the
// registry answers type lookups, builds and caches the transformation graph,
// and backs report resolvers.
//
// When manifests are loaded, the registry also validates strict parity
// between the manifest contracts and the Go registrations, preventing a wide
// class of runtime errors where code and public declarations drift apart.
package registry
