package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/typeflow/internal/param"
	"github.com/vk/typeflow/modules/partslist"
)

func TestRunPrintsRankedRoutes(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Source = "file_path"
	cfg.Target = "parts_list"
	testApp, out := SetupAppTest(t, cfg)

	require.NoError(t, testApp.Run(context.Background(), cfg))

	text := out.String()
	assert.Contains(t, text, `Routes from "file_path" to "parts_list":`)
	assert.Contains(t, text, "frame_to_parts")
	assert.Contains(t, text, "prices_to_parts")

	// Shorter routes print before longer ones.
	twoStep := strings.Index(text, "(2 steps)")
	threeStep := strings.Index(text, "(3 steps)")
	require.GreaterOrEqual(t, twoStep, 0)
	require.GreaterOrEqual(t, threeStep, 0)
	assert.Less(t, twoStep, threeStep)
}

func TestRunPrintsNoRouteMessage(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Source = "file_path"
	cfg.Target = "bill_of_materials"
	testApp, out := SetupAppTest(t, cfg)

	require.NoError(t, testApp.Run(context.Background(), cfg))
	assert.Contains(t, out.String(), `No route from "file_path" to "bill_of_materials".`)
}

func TestRunListsRoutesToTarget(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.ListPaths = true
	cfg.Target = "parts_list"
	testApp, out := SetupAppTest(t, cfg)

	require.NoError(t, testApp.Run(context.Background(), cfg))

	text := out.String()
	assert.Contains(t, text, `Routes to "parts_list":`)
	// Both collectors contribute routes from the shared file_path primitive.
	assert.Contains(t, text, "load_csv")
	assert.Contains(t, text, "load_json")
}

func TestRunDescribesReport(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Report = "Parts Overview"
	testApp, out := SetupAppTest(t, cfg)

	require.NoError(t, testApp.Run(context.Background(), cfg))

	text := out.String()
	assert.Contains(t, text, "Parts Overview")
	assert.Contains(t, text, "Base inputs:")
	// The region choice survives resolution; parts_list has no collector, so
	// the shallow check reports it as blocking.
	assert.Contains(t, text, "region (choice)")
	assert.Contains(t, text, "Blocking issues:")
	assert.Contains(t, text, `no collector produces "parts_list"`)
}

func TestRunUnknownReport(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Report = "Price Trends"
	testApp, _ := SetupAppTest(t, cfg)

	err := testApp.Run(context.Background(), cfg)
	require.Error(t, err)
	assert.ErrorContains(t, err, `unknown report "Price Trends"`)
	assert.ErrorContains(t, err, "Parts Overview")
}

func TestRunOverviewByDefault(t *testing.T) {
	cfg := newTestConfig(t)
	testApp, out := SetupAppTest(t, cfg)

	require.NoError(t, testApp.Run(context.Background(), cfg))

	text := out.String()
	assert.Contains(t, text, "Collectors:   load_csv, load_json")
	assert.Contains(t, text, "Transformers: frame_to_parts, frame_to_prices, prices_to_parts")
	assert.Contains(t, text, "Reports:      Parts Overview")
}

// End to end: resolve the shortest route from a file path to a parts list
// and execute it against a real CSV file.
func TestExecuteShortestRoute(t *testing.T) {
	testApp, _ := SetupAppTest(t, newTestConfig(t))

	csvPath := filepath.Join(t.TempDir(), "parts.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("sku,name,qty\nB-100,Bolt,4\nN-200,Nut,8\nB-100,Bolt,2\n"), 0600))

	g := testApp.Registry().Graph()
	p := g.ShortestPath(param.ParseTypeKey("file_path"), param.ParseTypeKey("parts_list"))
	require.NotNil(t, p)
	assert.Equal(t, 2, p.Len())

	val, err := p.Execute(context.Background(), csvPath)
	require.NoError(t, err)
	assert.Equal(t, "parts_list", val.Type)

	list, ok := val.Data.(partslist.List)
	require.True(t, ok)
	assert.Equal(t, partslist.List{
		{SKU: "B-100", Name: "Bolt", Quantity: 6},
		{SKU: "N-200", Name: "Nut", Quantity: 8},
	}, list)
}
