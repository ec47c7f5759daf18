package scene

import "github.com/matzehuels/scenedoc/pkg/dataarray"

// Object is anything that lives in a render scene. ClassName returns the
// concrete backend class ("vtkOpenGLActor", "vtkPolyData", ...) used for
// dispatch.
//
// Objects are compared by identity, so implementations must be pointer types
// (or otherwise comparable) to be usable as graph nodes.
type Object interface {
	ClassName() string
}

// Actor is a drawable prop with an optional mapper and property.
// Mapper and Property return nil when the actor has none.
type Actor interface {
	Object
	State() ActorState
	Mapper() Object
	Property() Object
}

// Mapper maps a dataset (and optionally a lookup table) to graphics.
// Input returns nil when nothing is connected; LookupTable returns nil when
// the mapper has no lookup table.
type Mapper interface {
	Object
	State() MapperState
	Input() Object
	LookupTable() Object
}

// PolyData is a polygonal dataset: points plus vertex, line, polygon and
// triangle-strip connectivity and per-point/per-cell/field attributes.
type PolyData interface {
	Object
	// Points returns the point coordinates, or nil when the dataset has none.
	Points() dataarray.DataArray
	// Cells returns the legacy connectivity buffer (n, i0..in-1, n, ...)
	// for the given category, or nil when absent.
	Cells(CellType) dataarray.DataArray
	PointData() *Attributes
	CellData() *Attributes
	FieldData() *Attributes
}

// CompositeDataSet aggregates blocks (datasets or nested composites).
type CompositeDataSet interface {
	Object
	Blocks() []Object
}

// LookupTable maps scalar values to colors.
type LookupTable interface {
	Object
	State() LookupTableState
}

// HueRanger is implemented by lookup tables exposing a hue range.
type HueRanger interface {
	HueRange() [2]float64
}

// ColorTransferFunction maps scalars to colors through control points.
type ColorTransferFunction interface {
	Object
	State() TransferFunctionState
	// Nodes returns control points as [x, r, g, b, midpoint, sharpness].
	Nodes() [][6]float64
}

// Property holds the surface appearance of an actor.
type Property interface {
	Object
	State() PropertyState
}

// Representer is implemented by properties exposing a representation mode.
type Representer interface {
	Representation() Representation
}

// DiffuseColorer is implemented by properties exposing a diffuse color.
type DiffuseColorer interface {
	DiffuseColor() [3]float64
}

// Renderer owns the view props, lights and camera of one viewport.
//
// Backends whose renderer cannot enumerate its view props and lights should
// not implement this interface; such renderers are reported as unsupported.
type Renderer interface {
	Object
	State() RendererState
	ActiveCamera() Object
	ViewProps() []Object
	Lights() []Object
}

// Camera is a viewpoint.
type Camera interface {
	Object
	State() CameraState
}

// Light illuminates a renderer.
type Light interface {
	Object
	State() LightState
}

// RenderWindow is the root of a scene: a window holding renderers.
type RenderWindow interface {
	Object
	NumberOfLayers() int
	Renderers() []Object
}
