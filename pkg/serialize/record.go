package serialize

// Abstract class tags written to the vtkClass field of records. These are the
// schema contract with the consuming renderer, independent of the concrete
// backend class that produced the record.
const (
	ClassActor                 = "vtkActor"
	ClassMapper                = "vtkMapper"
	ClassPolyData              = "vtkPolyData"
	ClassLookupTable           = "vtkLookupTable"
	ClassColorTransferFunction = "vtkColorTransferFunction"
	ClassProperty              = "vtkProperty"
	ClassRenderer              = "vtkRenderer"
	ClassCamera                = "vtkCamera"
	ClassLight                 = "vtkLight"
	ClassRenderWindow          = "vtkRenderWindow"
)

// Edge names the relationship between a record and one child. Multi marks a
// list edge: all edges sharing the name are emitted as one JSON array.
type Edge struct {
	Name  string
	Ref   string
	Multi bool
}

// Record is the flat description of one scene object produced by a kind
// serializer. Children are referenced by id through Edges; the flattener
// resolves them against a Registry.
type Record struct {
	// ID is the pass-scoped reference id of the object.
	ID string

	// Parent is the reference id of the object whose serialization requested
	// this one, or empty for the root.
	Parent string

	// Type is the concrete backend class name.
	Type string

	// Class is the abstract kind tag (see the Class* constants).
	Class string

	// Attributes holds JSON-compatible kind-specific properties.
	Attributes map[string]any

	// Edges lists children in emission order.
	Edges []Edge
}

// NewRecord returns a record with an empty attribute map.
func NewRecord(id, parent, typ, class string) *Record {
	return &Record{
		ID:         id,
		Parent:     parent,
		Type:       typ,
		Class:      class,
		Attributes: make(map[string]any),
	}
}

// Set stores an attribute.
func (r *Record) Set(key string, value any) {
	r.Attributes[key] = value
}

// AddEdge appends a single-valued edge to the child with reference id ref.
func (r *Record) AddEdge(name, ref string) {
	r.Edges = append(r.Edges, Edge{Name: name, Ref: ref})
}

// AddListEdge appends one element of a list edge.
func (r *Record) AddListEdge(name, ref string) {
	r.Edges = append(r.Edges, Edge{Name: name, Ref: ref, Multi: true})
}
