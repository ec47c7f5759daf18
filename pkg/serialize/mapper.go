package serialize

import "github.com/matzehuels/scenedoc/pkg/scene"

// serializeMapper emits a mapper with its input dataset and optional lookup
// table. A mapper without a dataset yields nil.
func serializeMapper(parent string, obj scene.Object, ctx *Context) (*Record, error) {
	id := ctx.RefID(obj)
	m, ok := obj.(scene.Mapper)
	if !ok {
		return nil, kindMismatch(obj, id, "Mapper")
	}

	input, err := ctx.Serialize(id, m.Input())
	if err != nil {
		return nil, err
	}
	lut, err := ctx.Serialize(id, m.LookupTable())
	if err != nil {
		return nil, err
	}
	if input == nil {
		ctx.logger.Debug("dropping mapper without input", "ref", id)
		return nil, nil
	}

	st := m.State()
	rec := NewRecord(id, parent, obj.ClassName(), ClassMapper)
	rec.Set("scalarRange", st.ScalarRange)
	rec.Set("useLookupTableScalarRange", st.UseLookupTableScalarRange)
	rec.Set("scalarVisibility", st.ScalarVisibility)
	if st.ArrayAccessMode == scene.AccessByName {
		rec.Set("colorByArrayName", st.ArrayName)
	} else {
		rec.Set("colorByArrayName", st.ArrayID)
	}
	rec.Set("colorMode", st.ColorMode)
	rec.Set("scalarMode", st.ScalarMode)
	rec.Set("interpolateScalarsBeforeMapping", st.InterpolateScalarsBeforeMapping)

	rec.AddEdge("inputData", input.ID)
	if lut != nil {
		rec.AddEdge("lookupTable", lut.ID)
	}
	return rec, nil
}
