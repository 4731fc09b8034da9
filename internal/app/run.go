package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/typeflow/internal/ctxlog"
	"github.com/vk/typeflow/internal/param"
)

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	switch {
	case appConfig.InspectPort > 0:
		return a.serveInspect(ctx, appConfig.InspectPort)
	case appConfig.Report != "":
		return a.printReport(appConfig.Report)
	case appConfig.Source != "":
		return a.printRoutes(appConfig.Source, appConfig.Target)
	case appConfig.ListPaths:
		return a.printTargetRoutes(appConfig.Target)
	default:
		a.printOverview()
		return nil
	}
}

// printRoutes prints every discovered route between two type keys, ranked
// by length.
func (a *App) printRoutes(source, target string) error {
	paths := a.registry.Graph().FindAllPaths(param.ParseTypeKey(source), param.ParseTypeKey(target), 0)
	if len(paths) == 0 {
		fmt.Fprintf(a.outW, "No route from %q to %q.\n", source, target)
		return nil
	}

	fmt.Fprintf(a.outW, "Routes from %q to %q:\n", source, target)
	for i, p := range paths {
		fmt.Fprintf(a.outW, "%2d. (%d steps) %s\n", i+1, p.Len(), p)
	}
	return nil
}

// printTargetRoutes prints every route that ends at the target, starting
// from each primitive in the graph.
func (a *App) printTargetRoutes(target string) error {
	paths := a.registry.Graph().FindPathsToTarget(param.ParseTypeKey(target), 0)
	if len(paths) == 0 {
		fmt.Fprintf(a.outW, "No primitive can reach %q.\n", target)
		return nil
	}

	fmt.Fprintf(a.outW, "Routes to %q:\n", target)
	for i, p := range paths {
		fmt.Fprintf(a.outW, "%2d. (%d steps) %s\n", i+1, p.Len(), p)
	}
	return nil
}

// printReport prints a report's dependency tree, its resolved base inputs,
// and any first-level issues blocking generation.
func (a *App) printReport(title string) error {
	res, ok := a.registry.Resolver(title)
	if !ok {
		return fmt.Errorf("unknown report %q (available: %s)", title, strings.Join(a.registry.ReportTitles(), ", "))
	}

	fmt.Fprintln(a.outW, res.DependencyTree())

	fmt.Fprintln(a.outW, "Base inputs:")
	for _, p := range res.BaseInputs() {
		fmt.Fprintf(a.outW, "  - %s (%s)\n", p.TypeKey(), p.Kind)
	}

	if issues := res.Issues(); len(issues) > 0 {
		fmt.Fprintln(a.outW, "Blocking issues:")
		for _, issue := range issues {
			fmt.Fprintf(a.outW, "  - %s\n", issue)
		}
		return nil
	}

	fmt.Fprintln(a.outW, "All first-level inputs are satisfied.")
	return nil
}

// printOverview is the default action: a summary of everything registered.
func (a *App) printOverview() {
	fmt.Fprintf(a.outW, "Collectors:   %s\n", strings.Join(a.registry.CollectorNames(), ", "))
	fmt.Fprintf(a.outW, "Transformers: %s\n", strings.Join(a.registry.TransformerNames(), ", "))
	fmt.Fprintf(a.outW, "Reports:      %s\n", strings.Join(a.registry.ReportTitles(), ", "))
}
