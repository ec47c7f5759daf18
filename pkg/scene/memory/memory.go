package memory

import (
	"github.com/matzehuels/scenedoc/pkg/dataarray"
	"github.com/matzehuels/scenedoc/pkg/scene"
)

// Default class names reported when a node's Class field is empty.
const (
	ClassActor            = "vtkOpenGLActor"
	ClassMapper           = "vtkOpenGLPolyDataMapper"
	ClassPolyData         = "vtkPolyData"
	ClassMultiBlock       = "vtkMultiBlockDataSet"
	ClassLookupTable      = "vtkLookupTable"
	ClassTransferFunction = "vtkColorTransferFunction"
	ClassProperty         = "vtkOpenGLProperty"
	ClassRenderer         = "vtkOpenGLRenderer"
	ClassCamera           = "vtkOpenGLCamera"
	ClassLight            = "vtkOpenGLLight"
	ClassRenderWindow     = "vtkOpenGLRenderWindow"
)

func classOr(class, def string) string {
	if class != "" {
		return class
	}
	return def
}

// Actor is an in-memory scene.Actor.
type Actor struct {
	Class string
	scene.ActorState
	MapperNode   scene.Object
	PropertyNode scene.Object
}

// NewActor returns a default actor drawing mapper with property.
// Either may be nil.
func NewActor(mapper, property scene.Object) *Actor {
	return &Actor{ActorState: scene.DefaultActorState(), MapperNode: mapper, PropertyNode: property}
}

func (a *Actor) ClassName() string       { return classOr(a.Class, ClassActor) }
func (a *Actor) State() scene.ActorState { return a.ActorState }
func (a *Actor) Mapper() scene.Object    { return a.MapperNode }
func (a *Actor) Property() scene.Object  { return a.PropertyNode }

// Mapper is an in-memory scene.Mapper.
type Mapper struct {
	Class string
	scene.MapperState
	InputNode       scene.Object
	LookupTableNode scene.Object
}

// NewMapper returns a default mapper reading input. lut may be nil.
func NewMapper(input, lut scene.Object) *Mapper {
	return &Mapper{MapperState: scene.DefaultMapperState(), InputNode: input, LookupTableNode: lut}
}

func (m *Mapper) ClassName() string         { return classOr(m.Class, ClassMapper) }
func (m *Mapper) State() scene.MapperState  { return m.MapperState }
func (m *Mapper) Input() scene.Object       { return m.InputNode }
func (m *Mapper) LookupTable() scene.Object { return m.LookupTableNode }

// PolyData is an in-memory scene.PolyData.
type PolyData struct {
	Class  string
	Coords dataarray.DataArray
	Verts  dataarray.DataArray
	Lines  dataarray.DataArray
	Polys  dataarray.DataArray
	Strips dataarray.DataArray
	Point  *scene.Attributes
	Cell   *scene.Attributes
	Field  *scene.Attributes
}

func (p *PolyData) ClassName() string            { return classOr(p.Class, ClassPolyData) }
func (p *PolyData) Points() dataarray.DataArray  { return p.Coords }
func (p *PolyData) PointData() *scene.Attributes { return p.Point }
func (p *PolyData) CellData() *scene.Attributes  { return p.Cell }
func (p *PolyData) FieldData() *scene.Attributes { return p.Field }

// Cells returns the connectivity buffer of the given category.
func (p *PolyData) Cells(t scene.CellType) dataarray.DataArray {
	switch t {
	case scene.CellVerts:
		return p.Verts
	case scene.CellLines:
		return p.Lines
	case scene.CellPolys:
		return p.Polys
	case scene.CellStrips:
		return p.Strips
	}
	return nil
}

// MultiBlock is an in-memory scene.CompositeDataSet.
type MultiBlock struct {
	Class      string
	BlockNodes []scene.Object
}

func (m *MultiBlock) ClassName() string      { return classOr(m.Class, ClassMultiBlock) }
func (m *MultiBlock) Blocks() []scene.Object { return m.BlockNodes }

// LookupTable is an in-memory scene.LookupTable with a hue range.
type LookupTable struct {
	Class string
	scene.LookupTableState
	Hue [2]float64
}

// NewLookupTable returns a default red-to-blue lookup table.
func NewLookupTable() *LookupTable {
	return &LookupTable{LookupTableState: scene.DefaultLookupTableState(), Hue: [2]float64{0, 0.66667}}
}

func (l *LookupTable) ClassName() string             { return classOr(l.Class, ClassLookupTable) }
func (l *LookupTable) State() scene.LookupTableState { return l.LookupTableState }
func (l *LookupTable) HueRange() [2]float64          { return l.Hue }

// TransferFunction is an in-memory scene.ColorTransferFunction.
type TransferFunction struct {
	Class string
	scene.TransferFunctionState
	ControlPoints [][6]float64
}

// NewTransferFunction returns a default transfer function with no nodes.
func NewTransferFunction() *TransferFunction {
	return &TransferFunction{TransferFunctionState: scene.DefaultTransferFunctionState()}
}

func (f *TransferFunction) ClassName() string                  { return classOr(f.Class, ClassTransferFunction) }
func (f *TransferFunction) State() scene.TransferFunctionState { return f.TransferFunctionState }
func (f *TransferFunction) Nodes() [][6]float64                { return f.ControlPoints }

// AddRGBPoint appends a control point with default midpoint and sharpness.
func (f *TransferFunction) AddRGBPoint(x, r, g, b float64) {
	f.ControlPoints = append(f.ControlPoints, [6]float64{x, r, g, b, 0.5, 0})
}

// Property is an in-memory scene.Property with representation and diffuse
// color accessors.
type Property struct {
	Class string
	scene.PropertyState
	Mode       scene.Representation
	DiffuseRGB [3]float64
}

// NewProperty returns a default white surface property.
func NewProperty() *Property {
	return &Property{
		PropertyState: scene.DefaultPropertyState(),
		Mode:          scene.RepresentationSurface,
		DiffuseRGB:    [3]float64{1, 1, 1},
	}
}

func (p *Property) ClassName() string                    { return classOr(p.Class, ClassProperty) }
func (p *Property) State() scene.PropertyState           { return p.PropertyState }
func (p *Property) Representation() scene.Representation { return p.Mode }
func (p *Property) DiffuseColor() [3]float64             { return p.DiffuseRGB }

// Renderer is an in-memory scene.Renderer.
type Renderer struct {
	Class string
	scene.RendererState
	CameraNode scene.Object
	PropNodes  []scene.Object
	LightNodes []scene.Object
}

// NewRenderer returns a default renderer viewing through camera.
func NewRenderer(camera scene.Object) *Renderer {
	return &Renderer{RendererState: scene.DefaultRendererState(), CameraNode: camera}
}

func (r *Renderer) ClassName() string          { return classOr(r.Class, ClassRenderer) }
func (r *Renderer) State() scene.RendererState { return r.RendererState }
func (r *Renderer) ActiveCamera() scene.Object { return r.CameraNode }
func (r *Renderer) ViewProps() []scene.Object  { return r.PropNodes }
func (r *Renderer) Lights() []scene.Object     { return r.LightNodes }

// AddViewProp appends a view prop (typically an actor).
func (r *Renderer) AddViewProp(p scene.Object) { r.PropNodes = append(r.PropNodes, p) }

// AddLight appends a light.
func (r *Renderer) AddLight(l scene.Object) { r.LightNodes = append(r.LightNodes, l) }

// Camera is an in-memory scene.Camera.
type Camera struct {
	Class string
	scene.CameraState
}

// NewCamera returns a default camera.
func NewCamera() *Camera { return &Camera{CameraState: scene.DefaultCameraState()} }

func (c *Camera) ClassName() string        { return classOr(c.Class, ClassCamera) }
func (c *Camera) State() scene.CameraState { return c.CameraState }

// Light is an in-memory scene.Light.
type Light struct {
	Class string
	scene.LightState
}

// NewLight returns a default scene light.
func NewLight() *Light { return &Light{LightState: scene.DefaultLightState()} }

func (l *Light) ClassName() string       { return classOr(l.Class, ClassLight) }
func (l *Light) State() scene.LightState { return l.LightState }

// RenderWindow is an in-memory scene.RenderWindow.
type RenderWindow struct {
	Class         string
	Layers        int
	RendererNodes []scene.Object
}

// NewRenderWindow returns a single-layer window holding renderers.
func NewRenderWindow(renderers ...scene.Object) *RenderWindow {
	return &RenderWindow{Layers: 1, RendererNodes: renderers}
}

func (w *RenderWindow) ClassName() string         { return classOr(w.Class, ClassRenderWindow) }
func (w *RenderWindow) NumberOfLayers() int       { return w.Layers }
func (w *RenderWindow) Renderers() []scene.Object { return w.RendererNodes }

// AddRenderer appends a renderer.
func (w *RenderWindow) AddRenderer(r scene.Object) { w.RendererNodes = append(w.RendererNodes, r) }

var (
	_ scene.Actor                 = (*Actor)(nil)
	_ scene.Mapper                = (*Mapper)(nil)
	_ scene.PolyData              = (*PolyData)(nil)
	_ scene.CompositeDataSet      = (*MultiBlock)(nil)
	_ scene.LookupTable           = (*LookupTable)(nil)
	_ scene.HueRanger             = (*LookupTable)(nil)
	_ scene.ColorTransferFunction = (*TransferFunction)(nil)
	_ scene.Property              = (*Property)(nil)
	_ scene.Representer           = (*Property)(nil)
	_ scene.DiffuseColorer        = (*Property)(nil)
	_ scene.Renderer              = (*Renderer)(nil)
	_ scene.Camera                = (*Camera)(nil)
	_ scene.Light                 = (*Light)(nil)
	_ scene.RenderWindow          = (*RenderWindow)(nil)
)
