package serialize

// Registry maps reference ids to the records produced in one serialization
// pass. A registered nil record means the object was visited and produced
// nothing; the flattener renders it as null.
//
// A Registry is not safe for concurrent use and must not be shared between
// passes.
type Registry struct {
	records map[string]*Record
	order   []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{records: make(map[string]*Record)}
}

// Register stores rec under id, replacing any previous entry.
func (r *Registry) Register(id string, rec *Record) {
	if _, ok := r.records[id]; !ok {
		r.order = append(r.order, id)
	}
	r.records[id] = rec
}

// Get returns the record stored under id. ok is false when id was never
// registered; a registered nil record yields (nil, true).
func (r *Registry) Get(id string) (rec *Record, ok bool) {
	rec, ok = r.records[id]
	return rec, ok
}

// Len returns the number of registered ids.
func (r *Registry) Len() int { return len(r.records) }

// IDs returns registered ids in first-registration order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
