package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/typeflow/internal/param"
)

// tag returns a step body that re-tags its input with the given type key,
// wrapping the previous value so tests can inspect the full chain.
func tag(outType string) StepFunc {
	return func(_ context.Context, in Value) (Value, error) {
		return Value{Type: outType, Data: in}, nil
	}
}

func TestNew(t *testing.T) {
	g := New()
	require.NotNil(t, g)
	assert.Empty(t, g.Nodes())
	assert.Empty(t, g.Primitives())
}

func TestAddCollector(t *testing.T) {
	t.Run("marks every input as a primitive", func(t *testing.T) {
		g := New()
		g.AddCollector("load_csv", tag("data_frame"),
			[]param.Parameter{param.NewPrimitive("file_path"), param.NewPrimitive("delimiter")},
			[]param.Parameter{param.NewCollected("data_frame")},
		)

		assert.ElementsMatch(t, []string{"file_path", "delimiter"}, g.Primitives())
		assert.True(t, g.IsPrimitive("file_path"))
		assert.False(t, g.IsPrimitive("data_frame"))
	})

	t.Run("registers one edge per input output pair", func(t *testing.T) {
		g := New()
		g.AddCollector("load_csv", tag("data_frame"),
			[]param.Parameter{param.NewPrimitive("file_path")},
			[]param.Parameter{param.NewCollected("data_frame"), param.NewCollected("row_count")},
		)

		steps := g.Steps()
		require.Len(t, steps, 2)
		for _, s := range steps {
			assert.Equal(t, "load_csv", s.Name)
			assert.Equal(t, KindCollector, s.Kind)
			assert.Equal(t, "file_path", s.Input.TypeKey())
		}
	})
}

func TestAddTransformer(t *testing.T) {
	g := New()
	g.AddTransformer("frame_to_parts", tag("parts_list"),
		param.NewCollected("data_frame"), param.NewCollected("parts_list"))

	steps := g.Steps()
	require.Len(t, steps, 1)
	assert.Equal(t, KindTransformer, steps[0].Kind)
	assert.ElementsMatch(t, []string{"data_frame", "parts_list"}, g.Nodes())
	assert.Empty(t, g.Primitives(), "transformer endpoints are not primitives")
}

func TestAddPrimitiveGroup(t *testing.T) {
	g := New()
	g.AddPrimitiveGroup("files", "file_path")
	g.AddPrimitiveGroup("files", "file_path", "excel_path")

	groups := g.PrimitiveGroups()
	assert.Equal(t, []string{"file_path", "excel_path"}, groups["files"])

	// The returned map must be a copy.
	groups["files"][0] = "mutated"
	assert.Equal(t, "file_path", g.PrimitiveGroups()["files"][0])
}

func TestVersionedTypeKeys(t *testing.T) {
	g := New()
	g.AddCollector("load_v1", tag("data_frame_v1"),
		[]param.Parameter{param.NewPrimitive("file_path")},
		[]param.Parameter{param.NewCollected("data_frame").With(param.Version("1"))},
	)

	assert.Contains(t, g.Nodes(), "data_frame_v1")

	// An unversioned target still matches the versioned output.
	paths := g.FindAllPaths(param.NewPrimitive("file_path"), param.NewCollected("data_frame"), 0)
	require.Len(t, paths, 1)

	// A different version does not.
	other := param.NewCollected("data_frame").With(param.Version("2"))
	assert.Empty(t, g.FindAllPaths(param.NewPrimitive("file_path"), other, 0))
}
