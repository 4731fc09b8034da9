package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/typeflow/internal/config"
	"github.com/vk/typeflow/internal/param"
	"github.com/vk/typeflow/internal/report"
)

func manifestFor(t *testing.T, r *Registry) *config.Model {
	t.Helper()
	model := config.NewModel()
	model.Collectors["load_csv"] = &config.StepDefinition{
		Name: "load_csv",
		Inputs: []*config.ParamDefinition{
			{Parameter: filePath, Group: "files"},
		},
		Outputs: []*config.ParamDefinition{
			{Parameter: dataFrame},
		},
	}
	model.Transformers["frame_to_parts"] = &config.StepDefinition{
		Name:    "frame_to_parts",
		Inputs:  []*config.ParamDefinition{{Parameter: dataFrame}},
		Outputs: []*config.ParamDefinition{{Parameter: partsList}},
	}
	return model
}

func TestValidateRegistry(t *testing.T) {
	t.Run("matching manifests pass", func(t *testing.T) {
		r := newPopulated(t)
		r.PopulateDefinitionsFromModel(manifestFor(t, r))
		require.NoError(t, r.ValidateRegistry(context.Background()))
	})

	t.Run("manifest without Go registration fails", func(t *testing.T) {
		r := newPopulated(t)
		model := manifestFor(t, r)
		model.Collectors["load_excel"] = &config.StepDefinition{Name: "load_excel"}
		r.PopulateDefinitionsFromModel(model)

		err := r.ValidateRegistry(context.Background())
		require.Error(t, err)
		assert.ErrorContains(t, err, "load_excel")
		assert.ErrorContains(t, err, "no Go registration")
	})

	t.Run("Go registration without manifest fails", func(t *testing.T) {
		r := newPopulated(t)
		model := manifestFor(t, r)
		delete(model.Transformers, "frame_to_parts")
		r.PopulateDefinitionsFromModel(model)

		err := r.ValidateRegistry(context.Background())
		require.Error(t, err)
		assert.ErrorContains(t, err, "frame_to_parts")
		assert.ErrorContains(t, err, "missing a manifest")
	})

	t.Run("type key mismatch is reported in both directions", func(t *testing.T) {
		r := newPopulated(t)
		model := manifestFor(t, r)
		// Manifest claims a versioned output the Go registration lacks.
		model.Collectors["load_csv"].Outputs = []*config.ParamDefinition{
			{Parameter: dataFrame.With(param.Version("2"))},
		}
		r.PopulateDefinitionsFromModel(model)

		err := r.ValidateRegistry(context.Background())
		require.Error(t, err)
		assert.ErrorContains(t, err, "manifest declares output 'data_frame_v2'")
		assert.ErrorContains(t, err, "Go registration carries output 'data_frame'")
	})

	t.Run("report parity", func(t *testing.T) {
		r := newPopulated(t)
		r.RegisterReport(report.Definition{
			Title:  "Parts Overview",
			Inputs: []param.Parameter{partsList},
		})
		model := manifestFor(t, r)
		model.Reports["Parts Overview"] = &config.ReportDefinition{
			Title:  "Parts Overview",
			Inputs: []*config.ParamDefinition{{Parameter: partsList}},
		}
		r.PopulateDefinitionsFromModel(model)
		require.NoError(t, r.ValidateRegistry(context.Background()))

		// A second registered report without a manifest breaks parity.
		r.RegisterReport(report.Definition{Title: "Price Trends"})
		err := r.ValidateRegistry(context.Background())
		require.Error(t, err)
		assert.ErrorContains(t, err, "Price Trends")
	})

	t.Run("manifest groups feed primitive groups on build", func(t *testing.T) {
		r := newPopulated(t)
		r.PopulateDefinitionsFromModel(manifestFor(t, r))
		require.NoError(t, r.ValidateRegistry(context.Background()))

		g := r.BuildGraph()
		assert.Equal(t, []string{"file_path"}, g.PrimitiveGroups()["files"])
	})
}
