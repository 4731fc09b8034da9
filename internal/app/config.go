package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ModulesPath string // .hcl manifest files

	Source      string // type key to route from
	Target      string // type key to route to
	Report      string // report title to describe
	ListPaths   bool   // list routes from every primitive to Target
	InspectPort int    // 0 disables the inspect server

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ModulesPath == "" {
		return nil, errors.New("ModulesPath is a required configuration field and cannot be empty")
	}
	if cfg.Source != "" && cfg.Target == "" {
		return nil, errors.New("a source type requires a target type")
	}
	if cfg.ListPaths && cfg.Target == "" {
		return nil, errors.New("listing paths requires a target type")
	}
	return &cfg, nil
}
