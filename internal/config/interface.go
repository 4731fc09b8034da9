package config

import "context"

// Loader is the interface for a format-specific manifest loader. It reads
// every manifest under the given paths and translates them into the
// format-agnostic model.
type Loader interface {
	Load(ctx context.Context, paths ...string) (*Model, error)
}
