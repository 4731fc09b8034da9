package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/typeflow/internal/config"
	"github.com/vk/typeflow/internal/ctxlog"
	"github.com/vk/typeflow/internal/fsutil"
	"github.com/vk/typeflow/internal/schema"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load orchestrates the manifest loading process. It is agnostic to the
// origin of the paths: each may be a single .hcl file or a directory that is
// searched recursively. Paths that do not exist are skipped, not errors.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	model := config.NewModel()

	files, err := l.findManifests(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered manifest files.", "count", len(files))

	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse manifest %s: %w", file, diags)
		}

		var root schema.FileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode manifest %s: %w", file, diags)
		}

		for _, c := range root.Collectors {
			def, err := l.translateStep(ctx, c, roleCollector)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			model.Collectors[def.Name] = def
		}
		for _, tr := range root.Transformers {
			def, err := l.translateStep(ctx, tr, roleTransformer)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			model.Transformers[def.Name] = def
		}
		for _, rep := range root.Reports {
			def, err := l.translateReport(ctx, rep)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			model.Reports[def.Title] = def
		}
	}

	logger.Debug("HCL loading complete.",
		"collectors", len(model.Collectors),
		"transformers", len(model.Transformers),
		"reports", len(model.Reports),
	)
	return model, nil
}

// findManifests flattens the given paths into a deduplicated list of .hcl files.
func (l *Loader) findManifests(paths []string) ([]string, error) {
	var all []string
	seen := make(map[string]struct{})

	add := func(file string) {
		if _, dup := seen[file]; !dup {
			all = append(all, file)
			seen[file] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue // A configured path that doesn't exist is not an error.
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if info.IsDir() {
			files, err := fsutil.FindFilesByExtension(path, ".hcl")
			if err != nil {
				return nil, err
			}
			for _, f := range files {
				add(f)
			}
		} else if filepath.Ext(path) == ".hcl" {
			add(path)
		}
	}
	return all, nil
}
