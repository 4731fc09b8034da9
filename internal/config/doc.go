// Package config defines the format-agnostic model for producer manifests.
// Manifests declare the public contract of each collector, transformer, and
// report; the registry cross-checks them against the Go registrations at
// startup so code and manifests cannot drift apart silently.
package config
