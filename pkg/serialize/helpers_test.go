package serialize

import (
	"testing"

	"github.com/matzehuels/scenedoc/pkg/dataarray"
	"github.com/matzehuels/scenedoc/pkg/scene"
	"github.com/matzehuels/scenedoc/pkg/scene/memory"
)

// pyramid returns a 5-point dataset with two triangles.
func pyramid() *memory.PolyData {
	return &memory.PolyData{
		Coords: dataarray.New("Points", dataarray.TypeFloat, 3,
			0, 0, 0,
			1, 0, 0,
			1, 1, 0,
			0, 1, 0,
			0.5, 0.5, 1,
		),
		Polys: dataarray.New("", dataarray.TypeIDType, 1,
			3, 0, 1, 4,
			3, 1, 2, 4,
		),
	}
}

type testScene struct {
	window   *memory.RenderWindow
	renderer *memory.Renderer
	actor    *memory.Actor
	mapper   *memory.Mapper
	data     *memory.PolyData
	property *memory.Property
	camera   *memory.Camera
}

func newTestScene() testScene {
	s := testScene{
		data:     pyramid(),
		property: memory.NewProperty(),
		camera:   memory.NewCamera(),
	}
	s.mapper = memory.NewMapper(s.data, nil)
	s.actor = memory.NewActor(s.mapper, s.property)
	s.renderer = memory.NewRenderer(s.camera)
	s.renderer.AddViewProp(s.actor)
	s.window = memory.NewRenderWindow(s.renderer)
	return s
}

func mustDocument(t *testing.T, root scene.Object, opts ...Option) Document {
	t.Helper()
	doc, err := NewContext(DefaultTable(), opts...).Document(root)
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	return doc
}

func child(t *testing.T, doc Document, key string) Document {
	t.Helper()
	c, ok := doc[key].(map[string]any)
	if !ok {
		t.Fatalf("%s = %#v, want object", key, doc[key])
	}
	return c
}

func list(t *testing.T, doc Document, key string) []any {
	t.Helper()
	l, ok := doc[key].([]any)
	if !ok {
		t.Fatalf("%s = %#v, want array", key, doc[key])
	}
	return l
}

// plainRenderer is a renderer that cannot enumerate its contents.
type plainRenderer struct{}

func (*plainRenderer) ClassName() string { return "vtkOpenGLRenderer" }

// opaqueObject implements no kind interface.
type opaqueObject struct{ class string }

func (o *opaqueObject) ClassName() string { return o.class }

// sliceObject is a value type that cannot key a map.
type sliceObject struct{ parts []string }

func (sliceObject) ClassName() string { return "vtkActor" }
