// Package hcl provides the concrete HCL implementation of the manifest
// loading interface defined in the config package. It is responsible for
// file discovery, parsing, and translating HCL blocks (including cty-typed
// choice defaults) into the format-agnostic model.
package hcl
