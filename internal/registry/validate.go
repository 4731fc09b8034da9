package registry

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/vk/typeflow/internal/config"
	"github.com/vk/typeflow/internal/ctxlog"
	"github.com/vk/typeflow/internal/param"
)

// PopulateDefinitionsFromModel copies the loaded manifest contracts into the
// registry so they can be validated against the Go registrations and served
// by the diagnostics surface.
func (r *Registry) PopulateDefinitionsFromModel(model *config.Model) {
	for name, def := range model.Collectors {
		r.definitions.Collectors[name] = def
	}
	for name, def := range model.Transformers {
		r.definitions.Transformers[name] = def
	}
	for title, def := range model.Reports {
		r.definitions.Reports[title] = def
	}
}

// Definitions returns the manifest contracts currently populated.
func (r *Registry) Definitions() *config.Model {
	return r.definitions
}

// ValidateRegistry performs a strict parity check between manifests and Go
// registrations. Every manifest entry must have a matching registration of
// the same kind, declared parameter type keys must agree in both directions,
// and registrations without a manifest are flagged too. All findings are
// joined into a single error so a broken build reports everything at once.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, name := range sortedMapKeys(r.definitions.Collectors) {
		def := r.definitions.Collectors[name]
		c, ok := r.collectors[name]
		if !ok {
			errs = append(errs, fmt.Sprintf("collector '%s': declared in a manifest but no Go registration exists", name))
			continue
		}
		errs = append(errs, diffParams("collector", name, "input", def.Inputs, c.Inputs)...)
		errs = append(errs, diffParams("collector", name, "output", def.Outputs, c.Outputs)...)
	}

	for _, name := range sortedMapKeys(r.definitions.Transformers) {
		def := r.definitions.Transformers[name]
		t, ok := r.transformers[name]
		if !ok {
			errs = append(errs, fmt.Sprintf("transformer '%s': declared in a manifest but no Go registration exists", name))
			continue
		}
		errs = append(errs, diffParams("transformer", name, "input", def.Inputs, []param.Parameter{t.Input})...)
		errs = append(errs, diffParams("transformer", name, "output", def.Outputs, []param.Parameter{t.Output})...)
	}

	for _, title := range sortedMapKeys(r.definitions.Reports) {
		def := r.definitions.Reports[title]
		reg, ok := r.reports[title]
		if !ok {
			errs = append(errs, fmt.Sprintf("report '%s': declared in a manifest but no Go registration exists", title))
			continue
		}
		errs = append(errs, diffParams("report", title, "input", def.Inputs, reg.Inputs)...)
	}

	// The reverse direction: registrations the manifests know nothing about.
	for _, name := range r.stepOrder {
		if _, ok := r.collectors[name]; ok {
			if _, declared := r.definitions.Collectors[name]; !declared {
				errs = append(errs, fmt.Sprintf("collector '%s': registered in Go but missing a manifest", name))
			}
			continue
		}
		if _, declared := r.definitions.Transformers[name]; !declared {
			errs = append(errs, fmt.Sprintf("transformer '%s': registered in Go but missing a manifest", name))
		}
	}
	for _, title := range r.reportOrder {
		if _, declared := r.definitions.Reports[title]; !declared {
			errs = append(errs, fmt.Sprintf("report '%s': registered in Go but missing a manifest", title))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Registry validation passed.",
		"collectors", len(r.collectors),
		"transformers", len(r.transformers),
		"reports", len(r.reports),
	)
	return nil
}

// diffParams compares the type keys a manifest declares against the ones the
// Go registration carries, in both directions.
func diffParams(kind, name, slot string, declared []*config.ParamDefinition, registered []param.Parameter) []string {
	var errs []string

	declaredKeys := make(map[string]struct{}, len(declared))
	for _, d := range declared {
		declaredKeys[d.Parameter.TypeKey()] = struct{}{}
	}
	registeredKeys := make(map[string]struct{}, len(registered))
	for _, p := range registered {
		registeredKeys[p.TypeKey()] = struct{}{}
	}

	for key := range declaredKeys {
		if _, ok := registeredKeys[key]; !ok {
			errs = append(errs, fmt.Sprintf("%s '%s': manifest declares %s '%s' which the Go registration does not carry", kind, name, slot, key))
		}
	}
	for key := range registeredKeys {
		if _, ok := declaredKeys[key]; !ok {
			errs = append(errs, fmt.Sprintf("%s '%s': Go registration carries %s '%s' which is not declared in the manifest", kind, name, slot, key))
		}
	}
	return errs
}

// sortedMapKeys keeps validation output deterministic.
func sortedMapKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
