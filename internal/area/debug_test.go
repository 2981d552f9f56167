package area

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// TestToDebugJSONPageViewportGeometry pins the exact wire shape of the
// debug JSON format (spec §6.3) for the simplest possible tree, grounded
// on dimelords-idmllib's GoldenFile wrapper around goldie.
func TestToDebugJSONPageViewportGeometry(t *testing.T) {
	tree := &AreaTree{Pages: []*PageViewport{
		NewPageViewport("page-1", Rect{X: 0, Y: 0, Width: 612, Height: 792}, 1),
	}}

	data, err := ToDebugJSON(tree, DetailGeometry)
	if err != nil {
		t.Fatalf("ToDebugJSON returned error: %v", err)
	}

	g := goldie.New(t, goldie.WithFixtureDir(filepath.Join("testdata", "golden")))
	g.Assert(t, "page_viewport_geometry", data)
}

func TestToDebugJSONDetailLevelsGateFields(t *testing.T) {
	block := NewBlockArea("block-1", "block", Rect{X: 72, Y: 72, Width: 468, Height: 20})
	block.BackgroundHex = "#ff0000"
	region := NewRegionArea("region-1", "body", Rect{X: 72, Y: 72, Width: 468, Height: 648})
	region.Children = []Area{block}
	page := NewPageViewport("page-1", Rect{X: 0, Y: 0, Width: 612, Height: 792}, 1)
	page.Regions = []*RegionArea{region}
	tree := &AreaTree{Pages: []*PageViewport{page}}

	geom, err := ToDebugJSON(tree, DetailGeometry)
	if err != nil {
		t.Fatalf("ToDebugJSON(DetailGeometry) error: %v", err)
	}
	var geomOut map[string]any
	if err := json.Unmarshal(geom, &geomOut); err != nil {
		t.Fatalf("unmarshal geometry JSON: %v", err)
	}
	geomBlock := firstBlock(t, geomOut)
	if _, ok := geomBlock["marginTop"]; ok {
		t.Fatalf("DetailGeometry must not include spacing fields, got %+v", geomBlock)
	}

	full, err := ToDebugJSON(tree, DetailFull)
	if err != nil {
		t.Fatalf("ToDebugJSON(DetailFull) error: %v", err)
	}
	var fullOut map[string]any
	if err := json.Unmarshal(full, &fullOut); err != nil {
		t.Fatalf("unmarshal full JSON: %v", err)
	}
	fullBlock := firstBlock(t, fullOut)
	if _, ok := fullBlock["marginTop"]; !ok {
		t.Fatalf("DetailFull must include spacing fields, got %+v", fullBlock)
	}
	if fullBlock["backgroundHex"] != "#ff0000" {
		t.Fatalf("DetailFull must include backgroundHex, got %+v", fullBlock)
	}
}

func firstBlock(t *testing.T, root map[string]any) map[string]any {
	t.Helper()
	pages := root["pages"].([]any)
	page := pages[0].(map[string]any)
	regions := page["regions"].([]any)
	region := regions[0].(map[string]any)
	children := region["children"].([]any)
	return children[0].(map[string]any)
}
