package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/typeflow/internal/graph"
	"github.com/vk/typeflow/internal/param"
	"github.com/vk/typeflow/internal/report"
)

var (
	filePath  = param.NewPrimitive("file_path")
	dataFrame = param.NewCollected("data_frame")
	partsList = param.NewCollected("parts_list")
)

func passthrough(outType string) graph.StepFunc {
	return func(_ context.Context, in graph.Value) (graph.Value, error) {
		return graph.Value{Type: outType, Data: in.Data}, nil
	}
}

func newPopulated(t *testing.T) *Registry {
	t.Helper()
	r := New()
	require.NoError(t, r.RegisterCollector("load_csv", passthrough("data_frame"),
		[]param.Parameter{filePath}, []param.Parameter{dataFrame}))
	require.NoError(t, r.RegisterTransformer("frame_to_parts", passthrough("parts_list"),
		dataFrame, partsList))
	return r
}

func TestRegisterStepNameUniqueness(t *testing.T) {
	r := newPopulated(t)

	t.Run("duplicate collector name is rejected", func(t *testing.T) {
		err := r.RegisterCollector("load_csv", passthrough("data_frame"),
			[]param.Parameter{filePath}, []param.Parameter{dataFrame})
		require.Error(t, err)
		assert.ErrorContains(t, err, "already registered")
	})

	t.Run("name collision across kinds is rejected", func(t *testing.T) {
		err := r.RegisterTransformer("load_csv", passthrough("parts_list"), dataFrame, partsList)
		require.Error(t, err)
		assert.ErrorContains(t, err, "collector")

		err = r.RegisterCollector("frame_to_parts", passthrough("data_frame"),
			[]param.Parameter{filePath}, []param.Parameter{dataFrame})
		require.Error(t, err)
		assert.ErrorContains(t, err, "transformer")
	})
}

func TestLookups(t *testing.T) {
	r := newPopulated(t)

	t.Run("collectors for matching output type", func(t *testing.T) {
		assert.Equal(t, []string{"load_csv"}, r.CollectorsForType(dataFrame))
		assert.Empty(t, r.CollectorsForType(partsList))
	})

	t.Run("versioned lookups use Matches semantics", func(t *testing.T) {
		require.NoError(t, r.RegisterCollector("load_csv_v2", passthrough("data_frame_v2"),
			[]param.Parameter{filePath},
			[]param.Parameter{dataFrame.With(param.Version("2"))}))

		// Unversioned query matches both; the exact version only one.
		assert.Equal(t, []string{"load_csv", "load_csv_v2"}, r.CollectorsForType(dataFrame))
		assert.Equal(t, []string{"load_csv_v2"}, r.CollectorsForType(dataFrame.With(param.Version("2"))))
	})

	t.Run("transformers by input and output", func(t *testing.T) {
		assert.Equal(t, []string{"frame_to_parts"}, r.TransformersForInput(dataFrame))
		assert.Equal(t, []string{"frame_to_parts"}, r.TransformersForOutput(partsList))
		assert.Empty(t, r.TransformersForInput(partsList))
	})

	t.Run("missing names return not-ok instead of panicking", func(t *testing.T) {
		_, ok := r.Collector("nope")
		assert.False(t, ok)
		_, ok = r.Transformer("nope")
		assert.False(t, ok)
		_, ok = r.Report("nope")
		assert.False(t, ok)
		_, ok = r.Resolver("nope")
		assert.False(t, ok)
	})
}

func TestRegisterReport(t *testing.T) {
	r := New()
	r.RegisterReport(report.Definition{Title: "Parts Overview", Description: "first"})

	t.Run("registered report is retrievable", func(t *testing.T) {
		def, ok := r.Report("Parts Overview")
		require.True(t, ok)
		assert.Equal(t, "first", def.Description)
	})

	t.Run("duplicate title silently overwrites", func(t *testing.T) {
		r.RegisterReport(report.Definition{Title: "Parts Overview", Description: "second"})
		def, ok := r.Report("Parts Overview")
		require.True(t, ok)
		assert.Equal(t, "second", def.Description)
		assert.Equal(t, []string{"Parts Overview"}, r.ReportTitles())
	})
}

func TestGraphCache(t *testing.T) {
	r := newPopulated(t)

	t.Run("graph is built lazily and cached", func(t *testing.T) {
		g1 := r.Graph()
		require.NotNil(t, g1)
		assert.Same(t, g1, r.Graph())
	})

	t.Run("late registration is invisible until invalidation", func(t *testing.T) {
		g1 := r.Graph()
		require.NoError(t, r.RegisterTransformer("parts_to_prices", passthrough("street_price_list"),
			partsList, param.NewCollected("street_price_list")))

		// Still the stale cache: the documented trap.
		assert.Same(t, g1, r.Graph())

		r.InvalidateGraph()
		g2 := r.Graph()
		assert.NotSame(t, g1, g2)
		assert.Contains(t, g2.Nodes(), "street_price_list")
	})
}

func TestResolverUsesRegistryCatalog(t *testing.T) {
	r := newPopulated(t)
	r.RegisterReport(report.Definition{
		Title:  "Parts Overview",
		Inputs: []param.Parameter{partsList},
	})

	res, ok := r.Resolver("Parts Overview")
	require.True(t, ok)

	// parts_list has no collector (only a transformer), so the shallow
	// check flags it, while data_frame would pass.
	assert.False(t, res.CanGenerate())

	require.NoError(t, r.RegisterCollector("load_parts", passthrough("parts_list"),
		[]param.Parameter{filePath}, []param.Parameter{partsList}))
	assert.True(t, res.CanGenerate())
	assert.Equal(t, []string{"file_path"}, paramNames(res.BaseInputs()))
}

func TestClear(t *testing.T) {
	r := newPopulated(t)
	r.RegisterReport(report.Definition{Title: "Parts Overview"})
	_ = r.Graph()

	r.Clear()

	assert.Empty(t, r.CollectorsForType(dataFrame))
	assert.Empty(t, r.ReportTitles())
	assert.Empty(t, r.Graph().Nodes())
}

func paramNames(params []param.Parameter) []string {
	var out []string
	for _, p := range params {
		out = append(out, p.Name)
	}
	return out
}
