package sceneio

// Description is a scene description as written in a scene file.
//
// Exactly one of RenderWindow, Renderer or Actor names the root. The named
// sections hold objects that nodes reference by name; every reference to the
// same name resolves to the same object.
type Description struct {
	RenderWindow *WindowDesc   `mapstructure:"renderWindow"`
	Renderer     *RendererDesc `mapstructure:"renderer"`
	Actor        *ActorDesc    `mapstructure:"actor"`

	Datasets          map[string]DatasetDesc          `mapstructure:"datasets"`
	LookupTables      map[string]LookupTableDesc      `mapstructure:"lookupTables"`
	TransferFunctions map[string]TransferFunctionDesc `mapstructure:"transferFunctions"`
	Properties        map[string]PropertyDesc         `mapstructure:"properties"`
	Cameras           map[string]CameraDesc           `mapstructure:"cameras"`
}

// WindowDesc describes a render window.
type WindowDesc struct {
	Class     string         `mapstructure:"class"`
	Layers    int            `mapstructure:"layers"`
	Renderers []RendererDesc `mapstructure:"renderers"`
}

// RendererDesc describes a renderer. Camera names an entry of the cameras
// section; an empty name gives the renderer a default camera of its own.
type RendererDesc struct {
	Class            string      `mapstructure:"class"`
	Background       []float64   `mapstructure:"background"`
	Viewport         []float64   `mapstructure:"viewport"`
	Layer            int         `mapstructure:"layer"`
	TwoSidedLighting *bool       `mapstructure:"twoSidedLighting"`
	Camera           string      `mapstructure:"camera"`
	Actors           []ActorDesc `mapstructure:"actors"`
	Lights           []LightDesc `mapstructure:"lights"`
}

// ActorDesc describes an actor and its mapper.
type ActorDesc struct {
	Class    string      `mapstructure:"class"`
	Visible  *bool       `mapstructure:"visible"`
	Pickable *bool       `mapstructure:"pickable"`
	Origin   []float64   `mapstructure:"origin"`
	Position []float64   `mapstructure:"position"`
	Scale    []float64   `mapstructure:"scale"`
	Property string      `mapstructure:"property"`
	Mapper   *MapperDesc `mapstructure:"mapper"`
}

// MapperDesc describes a mapper. Input names a dataset; LookupTable names an
// entry of either the lookupTables or the transferFunctions section.
type MapperDesc struct {
	Class            string    `mapstructure:"class"`
	Input            string    `mapstructure:"input"`
	LookupTable      string    `mapstructure:"lookupTable"`
	ScalarVisibility *bool     `mapstructure:"scalarVisibility"`
	ScalarRange      []float64 `mapstructure:"scalarRange"`
	ColorBy          string    `mapstructure:"colorBy"`
	ColorMode        int       `mapstructure:"colorMode"`
	ScalarMode       int       `mapstructure:"scalarMode"`
}

// DatasetDesc describes a poly-data dataset, or a multi-block dataset when
// Blocks is set. Cells are lists of point indices, one list per cell.
type DatasetDesc struct {
	Class     string      `mapstructure:"class"`
	PointType string      `mapstructure:"pointType"`
	Points    []float64   `mapstructure:"points"`
	Verts     [][]int     `mapstructure:"verts"`
	Lines     [][]int     `mapstructure:"lines"`
	Polys     [][]int     `mapstructure:"polys"`
	Strips    [][]int     `mapstructure:"strips"`
	PointData []ArrayDesc `mapstructure:"pointData"`
	CellData  []ArrayDesc `mapstructure:"cellData"`
	FieldData []ArrayDesc `mapstructure:"fieldData"`
	Blocks    []string    `mapstructure:"blocks"`
}

// ArrayDesc describes a data array. Active designates it as the active
// "scalars", "normals" or "tcoords" of its attribute set.
type ArrayDesc struct {
	Name       string    `mapstructure:"name"`
	Type       string    `mapstructure:"type"`
	Components int       `mapstructure:"components"`
	Values     []float64 `mapstructure:"values"`
	Active     string    `mapstructure:"active"`
}

// LookupTableDesc describes a lookup table.
type LookupTableDesc struct {
	Class           string    `mapstructure:"class"`
	NumberOfColors  int       `mapstructure:"numberOfColors"`
	Range           []float64 `mapstructure:"range"`
	HueRange        []float64 `mapstructure:"hueRange"`
	SaturationRange []float64 `mapstructure:"saturationRange"`
	Alpha           *float64  `mapstructure:"alpha"`
}

// TransferFunctionDesc describes a color transfer function. Each point is
// x, r, g, b.
type TransferFunctionDesc struct {
	Class    string      `mapstructure:"class"`
	Clamping *bool       `mapstructure:"clamping"`
	Points   [][]float64 `mapstructure:"points"`
}

// PropertyDesc describes a surface property.
type PropertyDesc struct {
	Class          string    `mapstructure:"class"`
	Representation string    `mapstructure:"representation"`
	Color          []float64 `mapstructure:"color"`
	DiffuseColor   []float64 `mapstructure:"diffuseColor"`
	Opacity        *float64  `mapstructure:"opacity"`
	PointSize      float64   `mapstructure:"pointSize"`
	LineWidth      float64   `mapstructure:"lineWidth"`
	EdgeVisibility bool      `mapstructure:"edgeVisibility"`
}

// CameraDesc describes a camera.
type CameraDesc struct {
	Class      string    `mapstructure:"class"`
	Position   []float64 `mapstructure:"position"`
	FocalPoint []float64 `mapstructure:"focalPoint"`
	ViewUp     []float64 `mapstructure:"viewUp"`
}

// LightDesc describes a light. Type is "headlight", "camera" or "scene".
type LightDesc struct {
	Class      string    `mapstructure:"class"`
	Type       string    `mapstructure:"type"`
	Intensity  *float64  `mapstructure:"intensity"`
	Color      []float64 `mapstructure:"color"`
	Position   []float64 `mapstructure:"position"`
	FocalPoint []float64 `mapstructure:"focalPoint"`
	Positional bool      `mapstructure:"positional"`
	Switch     *bool     `mapstructure:"switch"`
}
