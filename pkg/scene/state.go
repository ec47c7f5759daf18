package scene

import "github.com/matzehuels/scenedoc/pkg/dataarray"

// CellType is a topological cell category of a PolyData.
type CellType int

const (
	CellVerts CellType = iota
	CellLines
	CellPolys
	CellStrips
)

// CellTypes lists every cell category in emission order.
var CellTypes = []CellType{CellVerts, CellLines, CellPolys, CellStrips}

// String returns the document key of the category ("verts", "polys", ...).
func (c CellType) String() string {
	switch c {
	case CellVerts:
		return "verts"
	case CellLines:
		return "lines"
	case CellPolys:
		return "polys"
	case CellStrips:
		return "strips"
	}
	return "unknown"
}

// Representation is how a property draws surfaces.
type Representation int

const (
	RepresentationPoints Representation = iota
	RepresentationWireframe
	RepresentationSurface
)

// Array access modes of a mapper's color array selection.
const (
	AccessByID   = 0
	AccessByName = 1
)

// Light type codes.
const (
	LightTypeHeadlight   = 1
	LightTypeCameraLight = 2
	LightTypeSceneLight  = 3
)

// Attributes is the set of arrays attached to the points, cells or field of
// a dataset. Scalars, Normals and TCoords hold explicit active designations
// and are nil when the source designates nothing.
type Attributes struct {
	Arrays  []dataarray.DataArray
	Scalars dataarray.DataArray
	Normals dataarray.DataArray
	TCoords dataarray.DataArray
}

// ActorState is a snapshot of the readable state of an actor.
type ActorState struct {
	Visibility       bool
	Pickable         bool
	Dragable         bool
	UseBounds        bool
	Origin           [3]float64
	Position         [3]float64
	Scale            [3]float64
	ForceOpaque      bool
	ForceTranslucent bool
}

// MapperState is a snapshot of the readable state of a mapper.
type MapperState struct {
	ScalarRange                     [2]float64
	UseLookupTableScalarRange       bool
	ScalarVisibility                bool
	ArrayAccessMode                 int
	ArrayName                       string
	ArrayID                         int
	ColorMode                       int
	ScalarMode                      int
	InterpolateScalarsBeforeMapping bool
}

// LookupTableState is a snapshot of the readable state of a lookup table.
type LookupTableState struct {
	NumberOfColors     int
	Range              [2]float64
	SaturationRange    [2]float64
	NanColor           [4]float64
	BelowRangeColor    [4]float64
	AboveRangeColor    [4]float64
	UseAboveRangeColor bool
	UseBelowRangeColor bool
	Alpha              float64
	VectorSize         int
	VectorComponent    int
	VectorMode         int
	IndexedLookup      bool
}

// TransferFunctionState is a snapshot of a color transfer function.
type TransferFunctionState struct {
	Clamping              bool
	ColorSpace            int
	HSVWrap               bool
	AllowDuplicateScalars bool
	Alpha                 float64
	VectorComponent       int
	VectorSize            int
	VectorMode            int
	IndexedLookup         bool
}

// PropertyState is a snapshot of a surface property.
type PropertyState struct {
	Color            [3]float64
	AmbientColor     [3]float64
	SpecularColor    [3]float64
	EdgeColor        [3]float64
	Ambient          float64
	Diffuse          float64
	Specular         float64
	SpecularPower    float64
	Opacity          float64
	Interpolation    int
	EdgeVisibility   bool
	BackfaceCulling  bool
	FrontfaceCulling bool
	PointSize        float64
	LineWidth        float64
	Lighting         bool
}

// RendererState is a snapshot of a renderer.
type RendererState struct {
	Background                 [3]float64
	Background2                [3]float64
	Viewport                   [4]float64
	TwoSidedLighting           bool
	LightFollowCamera          bool
	Layer                      int
	PreserveColorBuffer        bool
	PreserveDepthBuffer        bool
	NearClippingPlaneTolerance float64
	ClippingRangeExpansion     float64
	UseShadows                 bool
	UseDepthPeeling            bool
	OcclusionRatio             float64
	MaximumNumberOfPeels       int
}

// CameraState is a snapshot of a camera.
type CameraState struct {
	FocalPoint [3]float64
	Position   [3]float64
	ViewUp     [3]float64
}

// LightState is a snapshot of a light.
type LightState struct {
	Switch            bool
	Intensity         float64
	DiffuseColor      [3]float64
	Position          [3]float64
	FocalPoint        [3]float64
	Positional        bool
	Exponent          float64
	ConeAngle         float64
	AttenuationValues [3]float64
	LightType         int
	ShadowAttenuation float64
}
