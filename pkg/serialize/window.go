package serialize

import "github.com/matzehuels/scenedoc/pkg/scene"

func serializeRenderWindow(parent string, obj scene.Object, ctx *Context) (*Record, error) {
	id := ctx.RefID(obj)
	w, ok := obj.(scene.RenderWindow)
	if !ok {
		return nil, kindMismatch(obj, id, "RenderWindow")
	}

	rec := NewRecord(id, parent, obj.ClassName(), ClassRenderWindow)
	rec.Set("numberOfLayers", w.NumberOfLayers())

	for _, r := range w.Renderers() {
		child, err := ctx.Serialize(id, r)
		if err != nil {
			return nil, err
		}
		if child != nil {
			rec.AddListEdge("addRenderer", child.ID)
		}
	}
	return rec, nil
}
