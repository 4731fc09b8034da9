package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/vk/typeflow/internal/param"
)

// Payload shapes for the inspect API. The surface is read-only diagnostics:
// everything is derived from the registry, nothing mutates it.
type stepPayload struct {
	Name    string   `json:"name"`
	Inputs  []string `json:"inputs"`
	Outputs []string `json:"outputs"`
}

type reportPayload struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Inputs      []string `json:"inputs"`
	CanGenerate bool     `json:"can_generate"`
}

type routePayload struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Length int    `json:"length"`
	Route  string `json:"route"`
}

type issuesPayload struct {
	Title       string   `json:"title"`
	CanGenerate bool     `json:"can_generate"`
	Issues      []string `json:"issues"`
}

// serveInspect runs the inspect HTTP server until the context is cancelled,
// then shuts it down gracefully.
func (a *App) serveInspect(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	srv := &http.Server{Addr: addr, Handler: a.inspectRouter()}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Inspect server starting", "address", fmt.Sprintf("http://localhost%s/health", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("inspect server failed: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down inspect server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// inspectRouter wires up the diagnostics routes. Split out from serveInspect
// so tests can exercise the handlers without binding a port.
func (a *App) inspectRouter() *mux.Router {
	router := mux.NewRouter()
	router.Use(a.requestIDMiddleware)
	router.HandleFunc("/health", a.handleHealth).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/collectors", a.handleCollectors).Methods(http.MethodGet)
	api.HandleFunc("/transformers", a.handleTransformers).Methods(http.MethodGet)
	api.HandleFunc("/reports", a.handleReports).Methods(http.MethodGet)
	api.HandleFunc("/reports/{title}/issues", a.handleReportIssues).Methods(http.MethodGet)
	api.HandleFunc("/paths", a.handlePaths).Methods(http.MethodGet)
	return router
}

// requestIDMiddleware tags every request with a fresh ID for log correlation.
func (a *App) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		a.logger.Debug("Inspect request.", "request_id", id, "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (a *App) handleCollectors(w http.ResponseWriter, r *http.Request) {
	out := []stepPayload{}
	for _, name := range a.registry.CollectorNames() {
		c, _ := a.registry.Collector(name)
		out = append(out, stepPayload{Name: name, Inputs: typeKeys(c.Inputs), Outputs: typeKeys(c.Outputs)})
	}
	a.writeJSON(w, out)
}

func (a *App) handleTransformers(w http.ResponseWriter, r *http.Request) {
	out := []stepPayload{}
	for _, name := range a.registry.TransformerNames() {
		t, _ := a.registry.Transformer(name)
		out = append(out, stepPayload{
			Name:    name,
			Inputs:  []string{t.Input.TypeKey()},
			Outputs: []string{t.Output.TypeKey()},
		})
	}
	a.writeJSON(w, out)
}

func (a *App) handleReports(w http.ResponseWriter, r *http.Request) {
	out := []reportPayload{}
	for _, title := range a.registry.ReportTitles() {
		res, _ := a.registry.Resolver(title)
		def := res.Definition()
		out = append(out, reportPayload{
			Title:       def.Title,
			Description: def.Description,
			Inputs:      typeKeys(def.Inputs),
			CanGenerate: res.CanGenerate(),
		})
	}
	a.writeJSON(w, out)
}

func (a *App) handleReportIssues(w http.ResponseWriter, r *http.Request) {
	title := mux.Vars(r)["title"]
	res, ok := a.registry.Resolver(title)
	if !ok {
		http.Error(w, fmt.Sprintf("unknown report %q", title), http.StatusNotFound)
		return
	}
	issues := res.Issues()
	if issues == nil {
		issues = []string{}
	}
	a.writeJSON(w, issuesPayload{Title: title, CanGenerate: res.CanGenerate(), Issues: issues})
}

// handlePaths serves route discovery: ?target= is required, ?source= narrows
// the search to one starting type instead of every primitive.
func (a *App) handlePaths(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")
	target := r.URL.Query().Get("target")
	if target == "" {
		http.Error(w, "query parameter 'target' is required", http.StatusBadRequest)
		return
	}

	g := a.registry.Graph()
	paths := g.FindPathsToTarget(param.ParseTypeKey(target), 0)
	if source != "" {
		paths = g.FindAllPaths(param.ParseTypeKey(source), param.ParseTypeKey(target), 0)
	}

	out := []routePayload{}
	for _, p := range paths {
		out = append(out, routePayload{Source: p.Source, Target: p.Target, Length: p.Len(), Route: p.String()})
	}
	a.writeJSON(w, out)
}

func (a *App) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Error("Failed to encode inspect response", "error", err)
	}
}

func typeKeys(params []param.Parameter) []string {
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = p.TypeKey()
	}
	return out
}
