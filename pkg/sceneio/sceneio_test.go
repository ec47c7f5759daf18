package sceneio

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/scenedoc/pkg/dataarray"
	"github.com/matzehuels/scenedoc/pkg/errors"
	"github.com/matzehuels/scenedoc/pkg/scene"
	"github.com/matzehuels/scenedoc/pkg/scene/memory"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"scene.json", FormatJSON, true},
		{"scene.YAML", FormatYAML, true},
		{"dir/scene.yml", FormatYAML, true},
		{"scene.toml", FormatTOML, true},
		{"scene.vtp", "", false},
		{"scene", "", false},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, %v", tt.path, got, err)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"json": FormatJSON, "YAML": FormatYAML, "yml": FormatYAML, "toml": FormatTOML} {
		if got, err := ParseFormat(in); err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("xml"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ParseFormat(xml) err = %v", err)
	}
}

func TestReadSceneFileYAML(t *testing.T) {
	root, err := ReadSceneFile(filepath.Join("testdata", "pyramid.yaml"))
	if err != nil {
		t.Fatalf("ReadSceneFile: %v", err)
	}

	win, ok := root.(*memory.RenderWindow)
	if !ok {
		t.Fatalf("root is %T, want *memory.RenderWindow", root)
	}
	if len(win.RendererNodes) != 1 {
		t.Fatalf("window has %d renderers", len(win.RendererNodes))
	}
	ren := win.RendererNodes[0].(*memory.Renderer)
	if ren.Background != [3]float64{0.1, 0.1, 0.2} {
		t.Errorf("background = %v", ren.Background)
	}
	if cam := ren.CameraNode.(*memory.Camera); cam.ViewUp != [3]float64{0, 0, 1} {
		t.Errorf("camera viewUp = %v", cam.ViewUp)
	}
	if len(ren.PropNodes) != 2 || len(ren.LightNodes) != 1 {
		t.Fatalf("renderer has %d props and %d lights", len(ren.PropNodes), len(ren.LightNodes))
	}
	if l := ren.LightNodes[0].(*memory.Light); l.LightType != scene.LightTypeHeadlight {
		t.Errorf("light type = %d", l.LightType)
	}

	a0 := ren.PropNodes[0].(*memory.Actor)
	a1 := ren.PropNodes[1].(*memory.Actor)
	m0 := a0.MapperNode.(*memory.Mapper)
	m1 := a1.MapperNode.(*memory.Mapper)
	if m0.InputNode != m1.InputNode {
		t.Error("actors referencing the same dataset got different objects")
	}
	if m0.ArrayAccessMode != scene.AccessByName || m0.ArrayName != "height" {
		t.Errorf("colorBy: mode %d name %q", m0.ArrayAccessMode, m0.ArrayName)
	}
	if lut := m0.LookupTableNode.(*memory.LookupTable); lut.Hue != [2]float64{0.66667, 0} {
		t.Errorf("hue range = %v", lut.Hue)
	}
	if m1.LookupTableNode != nil {
		t.Error("second mapper should have no lookup table")
	}
	if a1.Position != [3]float64{2, 0, 0} {
		t.Errorf("position = %v", a1.Position)
	}
	if p := a1.PropertyNode.(*memory.Property); p.Mode != scene.RepresentationWireframe {
		t.Errorf("representation = %v", p.Mode)
	}

	pd := m0.InputNode.(*memory.PolyData)
	if dataarray.Len(pd.Coords) != 15 {
		t.Errorf("points have %d values, want 15", dataarray.Len(pd.Coords))
	}
	if got := pd.Polys.(*dataarray.Array).Values; len(got) != 8 || got[0] != 3 || got[4] != 3 {
		t.Errorf("polys = %v", got)
	}
	if pd.Point == nil || pd.Point.Scalars == nil || pd.Point.Scalars.Name() != "height" {
		t.Error("height should be the active point scalars")
	}
}

func TestReadSceneFileJSON(t *testing.T) {
	root, err := ReadSceneFile(filepath.Join("testdata", "pyramid.json"))
	if err != nil {
		t.Fatalf("ReadSceneFile: %v", err)
	}
	ren, ok := root.(*memory.Renderer)
	if !ok {
		t.Fatalf("root is %T, want *memory.Renderer", root)
	}
	if ren.CameraNode == nil {
		t.Error("renderer without a named camera should get a default one")
	}
	actor := ren.PropNodes[0].(*memory.Actor)
	if actor.PropertyNode == nil {
		t.Error("actor without a named property should get a default one")
	}
}

func TestReadSceneFileTOML(t *testing.T) {
	root, err := ReadSceneFile(filepath.Join("testdata", "pyramid.toml"))
	if err != nil {
		t.Fatalf("ReadSceneFile: %v", err)
	}
	actor, ok := root.(*memory.Actor)
	if !ok {
		t.Fatalf("root is %T, want *memory.Actor", root)
	}
	tf, ok := actor.MapperNode.(*memory.Mapper).LookupTableNode.(*memory.TransferFunction)
	if !ok {
		t.Fatal("lookup table should resolve to the transfer function")
	}
	want := [][6]float64{{0, 0, 0, 1, 0.5, 0}, {1, 1, 0, 0, 0.5, 0}}
	if len(tf.ControlPoints) != 2 || tf.ControlPoints[0] != want[0] || tf.ControlPoints[1] != want[1] {
		t.Errorf("control points = %v", tf.ControlPoints)
	}
}

func TestReadSceneBlocks(t *testing.T) {
	root, err := ReadSceneFile(filepath.Join("testdata", "blocks.yaml"))
	if err != nil {
		t.Fatalf("ReadSceneFile: %v", err)
	}
	mb, ok := root.(*memory.Actor).MapperNode.(*memory.Mapper).InputNode.(*memory.MultiBlock)
	if !ok {
		t.Fatal("input should be a multi-block dataset")
	}
	if len(mb.BlockNodes) != 2 {
		t.Fatalf("blocks = %d, want 2", len(mb.BlockNodes))
	}
	if typ := mb.BlockNodes[1].(*memory.PolyData).Coords.DataType(); typ != dataarray.TypeDouble {
		t.Errorf("right block point type = %v", typ)
	}
}

func TestReadSceneSelfReferencingBlocks(t *testing.T) {
	src := `
datasets:
  loop: {blocks: [loop]}
actor:
  mapper: {input: loop}
`
	root, err := ReadScene(strings.NewReader(src), FormatYAML)
	if err != nil {
		t.Fatalf("ReadScene: %v", err)
	}
	mb := root.(*memory.Actor).MapperNode.(*memory.Mapper).InputNode.(*memory.MultiBlock)
	if mb.BlockNodes[0] != scene.Object(mb) {
		t.Error("block should refer back to its own dataset")
	}
}

func TestReadSceneErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		src    string
		want   errors.Code
	}{
		{"malformed json", FormatJSON, `{"actor":`, errors.ErrCodeInvalidScene},
		{"malformed yaml", FormatYAML, "actor: [", errors.ErrCodeInvalidScene},
		{"malformed toml", FormatTOML, "actor = ", errors.ErrCodeInvalidScene},
		{"empty", FormatYAML, "", errors.ErrCodeInvalidScene},
		{"no root", FormatJSON, `{"datasets": {}}`, errors.ErrCodeInvalidScene},
		{"two roots", FormatJSON, `{"actor": {}, "renderer": {}}`, errors.ErrCodeInvalidScene},
		{"unknown key", FormatJSON, `{"actor": {"colour": [1, 0, 0]}}`, errors.ErrCodeInvalidScene},
		{"unknown dataset", FormatJSON, `{"actor": {"mapper": {"input": "cube"}}}`, errors.ErrCodeInvalidScene},
		{"unknown property", FormatJSON, `{"actor": {"property": "shiny"}}`, errors.ErrCodeInvalidScene},
		{"unknown camera", FormatJSON, `{"renderer": {"camera": "top"}}`, errors.ErrCodeInvalidScene},
		{"unknown lookup table", FormatJSON, `{"actor": {"mapper": {"lookupTable": "jet"}}}`, errors.ErrCodeInvalidScene},
		{"bad vector", FormatJSON, `{"actor": {"position": [1, 2]}}`, errors.ErrCodeInvalidScene},
		{"bad light type", FormatJSON, `{"renderer": {"lights": [{"type": "sun"}]}}`, errors.ErrCodeInvalidScene},
		{"bad representation", FormatJSON,
			`{"properties": {"p": {"representation": "glass"}}, "actor": {"property": "p"}}`, errors.ErrCodeInvalidScene},
		{"ragged points", FormatJSON,
			`{"datasets": {"d": {"points": [0, 0]}}, "actor": {"mapper": {"input": "d"}}}`, errors.ErrCodeInvalidScene},
		{"cell out of range", FormatJSON,
			`{"datasets": {"d": {"points": [0, 0, 0], "polys": [[0, 1]]}}, "actor": {"mapper": {"input": "d"}}}`, errors.ErrCodeInvalidScene},
		{"bad tuple count", FormatJSON,
			`{"datasets": {"d": {"points": [0, 0, 0], "pointData": [{"name": "s", "values": [1, 2]}]}}, "actor": {"mapper": {"input": "d"}}}`,
			errors.ErrCodeInvalidScene},
		{"bad array type", FormatJSON,
			`{"datasets": {"d": {"points": [0, 0, 0], "pointData": [{"name": "s", "type": "quad", "values": [1]}]}}, "actor": {"mapper": {"input": "d"}}}`,
			errors.ErrCodeInvalidScene},
		{"ambiguous colormap", FormatJSON,
			`{"lookupTables": {"x": {}}, "transferFunctions": {"x": {}}, "actor": {}}`, errors.ErrCodeInvalidScene},
		{"bad transfer point", FormatJSON,
			`{"transferFunctions": {"x": {"points": [[0, 1]]}}, "actor": {"mapper": {"lookupTable": "x"}}}`, errors.ErrCodeInvalidScene},
		{"unknown format", Format("xml"), `<scene/>`, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadScene(strings.NewReader(tt.src), tt.format)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %s", err, tt.want)
			}
		})
	}
}

func TestReadSceneFileMissing(t *testing.T) {
	_, err := ReadSceneFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeNotFound)
	}
}

func TestEmptyDatasetHasNoPoints(t *testing.T) {
	src := `{"datasets": {"d": {}}, "actor": {"mapper": {"input": "d"}}}`
	root, err := ReadScene(strings.NewReader(src), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	pd := root.(*memory.Actor).MapperNode.(*memory.Mapper).InputNode.(*memory.PolyData)
	if pd.Coords != nil {
		t.Error("dataset without points should have no point array")
	}
}
