package serialize

import (
	"sort"

	"github.com/matzehuels/scenedoc/pkg/errors"
	"github.com/matzehuels/scenedoc/pkg/scene"
)

// SerializerFunc converts one scene object into a record. parent is the
// reference id of the requesting object (empty for the root). Serializers
// recurse into children through ctx.Serialize and must not mutate obj.
type SerializerFunc func(parent string, obj scene.Object, ctx *Context) (*Record, error)

// Kind is one of the closed set of built-in serializers.
type Kind string

// Built-in kinds.
const (
	KindActor                 Kind = "actor"
	KindMapper                Kind = "mapper"
	KindPolyData              Kind = "polydata"
	KindComposite             Kind = "composite"
	KindLookupTable           Kind = "lookuptable"
	KindColorTransferFunction Kind = "colortransferfunction"
	KindProperty              Kind = "property"
	KindRenderer              Kind = "renderer"
	KindCamera                Kind = "camera"
	KindLight                 Kind = "light"
	KindRenderWindow          Kind = "renderwindow"

	// KindCustom marks classes registered with a caller-supplied function.
	KindCustom Kind = "custom"
)

var kindSerializers = map[Kind]SerializerFunc{
	KindActor:                 serializeActor,
	KindMapper:                serializeMapper,
	KindPolyData:              serializePolyData,
	KindComposite:             serializeComposite,
	KindLookupTable:           serializeLookupTable,
	KindColorTransferFunction: serializeColorTransferFunction,
	KindProperty:              serializeProperty,
	KindRenderer:              serializeRenderer,
	KindCamera:                serializeCamera,
	KindLight:                 serializeLight,
	KindRenderWindow:          serializeRenderWindow,
}

// Kinds returns the built-in kinds in sorted order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kindSerializers))
	for k := range kindSerializers {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Table is a dispatch table from exact concrete class names to serializers.
// There is no inheritance fallback: a class is either registered or not.
//
// A Table is a plain value owned by whoever builds a Context; it is not safe
// to mutate while a pass that uses it is running.
type Table struct {
	fns   map[string]SerializerFunc
	kinds map[string]Kind
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{
		fns:   make(map[string]SerializerFunc),
		kinds: make(map[string]Kind),
	}
}

// Register adds or replaces the serializer for class.
func (t *Table) Register(class string, fn SerializerFunc) {
	t.fns[class] = fn
	t.kinds[class] = KindCustom
}

// RegisterKind maps each class onto the built-in serializer of kind.
func (t *Table) RegisterKind(kind Kind, classes ...string) error {
	fn, ok := kindSerializers[kind]
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "unknown kind %q", kind)
	}
	for _, c := range classes {
		t.fns[c] = fn
		t.kinds[c] = kind
	}
	return nil
}

// Resolve returns the serializer registered for class.
func (t *Table) Resolve(class string) (SerializerFunc, bool) {
	fn, ok := t.fns[class]
	return fn, ok
}

// KindOf returns the kind class is registered to.
func (t *Table) KindOf(class string) (Kind, bool) {
	k, ok := t.kinds[class]
	return k, ok
}

// Classes returns all registered class names, sorted.
func (t *Table) Classes() []string {
	out := make([]string, 0, len(t.fns))
	for c := range t.fns {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy of the table.
func (t *Table) Clone() *Table {
	c := NewTable()
	for k, v := range t.fns {
		c.fns[k] = v
	}
	for k, v := range t.kinds {
		c.kinds[k] = v
	}
	return c
}

// defaultClasses is the reference mapping of backend classes to kinds.
var defaultClasses = map[Kind][]string{
	KindActor:       {"vtkOpenGLActor", "vtkPVLODActor", "vtkActor"},
	KindMapper:      {"vtkOpenGLPolyDataMapper", "vtkCompositePolyDataMapper2", "vtkPolyDataMapper"},
	KindLookupTable: {"vtkLookupTable"},
	KindColorTransferFunction: {
		"vtkPVDiscretizableColorTransferFunction",
		"vtkColorTransferFunction",
	},
	KindProperty:  {"vtkOpenGLProperty", "vtkProperty"},
	KindPolyData:  {"vtkPolyData"},
	KindComposite: {"vtkMultiBlockDataSet"},
	KindRenderWindow: {
		"vtkCocoaRenderWindow",
		"vtkXOpenGLRenderWindow",
		"vtkWin32OpenGLRenderWindow",
		"vtkEGLRenderWindow",
		"vtkOpenVRRenderWindow",
		"vtkGenericOpenGLRenderWindow",
		"vtkOSOpenGLRenderWindow",
		"vtkOpenGLRenderWindow",
		"vtkIOSRenderWindow",
		"vtkExternalOpenGLRenderWindow",
		"vtkRenderWindow",
	},
	KindRenderer: {"vtkOpenGLRenderer", "vtkRenderer"},
	KindCamera:   {"vtkOpenGLCamera", "vtkCamera"},
	KindLight:    {"vtkPVLight", "vtkOpenGLLight", "vtkLight"},
}

// DefaultTable returns a fresh table populated with the standard VTK class
// names. Callers may extend or override entries without affecting other
// tables.
func DefaultTable() *Table {
	t := NewTable()
	for kind, classes := range defaultClasses {
		_ = t.RegisterKind(kind, classes...)
	}
	return t
}
