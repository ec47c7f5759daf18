package serialize

import "github.com/matzehuels/scenedoc/pkg/scene"

// serializeActor emits an actor with its mapper and property.
//
// A hidden actor is emitted without children. A visible actor is emitted only
// when both its mapper and property produce records; otherwise it yields nil
// and is dropped from its renderer.
func serializeActor(parent string, obj scene.Object, ctx *Context) (*Record, error) {
	id := ctx.RefID(obj)
	a, ok := obj.(scene.Actor)
	if !ok {
		return nil, kindMismatch(obj, id, "Actor")
	}

	st := a.State()
	rec := NewRecord(id, parent, obj.ClassName(), ClassActor)
	rec.Set("visibility", st.Visibility)
	rec.Set("pickable", st.Pickable)
	rec.Set("dragable", st.Dragable)
	rec.Set("useBounds", st.UseBounds)
	rec.Set("origin", st.Origin)
	rec.Set("position", st.Position)
	rec.Set("scale", st.Scale)
	rec.Set("forceOpaque", st.ForceOpaque)
	rec.Set("forceTranslucent", st.ForceTranslucent)

	if !st.Visibility {
		return rec, nil
	}

	mapper, err := ctx.Serialize(id, a.Mapper())
	if err != nil {
		return nil, err
	}
	prop, err := ctx.Serialize(id, a.Property())
	if err != nil {
		return nil, err
	}
	if mapper == nil || prop == nil {
		ctx.logger.Debug("dropping actor", "ref", id, "mapper", mapper != nil, "property", prop != nil)
		return nil, nil
	}

	rec.AddEdge("mapper", mapper.ID)
	rec.AddEdge("property", prop.ID)
	return rec, nil
}
