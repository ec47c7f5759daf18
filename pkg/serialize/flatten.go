package serialize

import "github.com/matzehuels/scenedoc/pkg/errors"

// Flatten converts rec into a nested document by inlining every edge target
// looked up in reg.
//
// The result holds rec's header (id, parent when set, type, vtkClass) and
// attributes. Each single edge becomes a key holding the flattened child, or
// nil when the child is missing or registered as nil. List edges become one
// array per name in declaration order. Shared children are inlined at every
// reference.
//
// Flatten does not modify rec or reg and returns CYCLIC_GRAPH when the edges
// reachable from rec form a cycle.
func Flatten(rec *Record, reg *Registry) (Document, error) {
	if rec == nil {
		return nil, nil
	}
	return flatten(rec, reg, make(map[string]bool))
}

func flatten(rec *Record, reg *Registry, path map[string]bool) (Document, error) {
	if path[rec.ID] {
		return nil, errors.New(errors.ErrCodeCyclicGraph, "record reachable from itself").
			WithObject(rec.ID, rec.Type)
	}
	path[rec.ID] = true
	defer delete(path, rec.ID)

	doc := make(Document, len(rec.Attributes)+len(rec.Edges)+4)
	for k, v := range rec.Attributes {
		doc[k] = v
	}
	doc["id"] = rec.ID
	if rec.Parent != "" {
		doc["parent"] = rec.Parent
	}
	doc["type"] = rec.Type
	doc["vtkClass"] = rec.Class

	for _, e := range rec.Edges {
		var child any
		if c, ok := reg.Get(e.Ref); ok && c != nil {
			d, err := flatten(c, reg, path)
			if err != nil {
				return nil, err
			}
			child = d
		}

		if e.Multi {
			list, _ := doc[e.Name].([]any)
			doc[e.Name] = append(list, child)
			continue
		}
		doc[e.Name] = child
	}
	return doc, nil
}
