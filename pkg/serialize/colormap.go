package serialize

import "github.com/matzehuels/scenedoc/pkg/scene"

// defaultHueRange is reported for lookup tables without a hue accessor.
var defaultHueRange = [2]float64{0.5, 0}

func serializeLookupTable(parent string, obj scene.Object, ctx *Context) (*Record, error) {
	id := ctx.RefID(obj)
	lut, ok := obj.(scene.LookupTable)
	if !ok {
		return nil, kindMismatch(obj, id, "LookupTable")
	}

	hue := defaultHueRange
	if h, ok := obj.(scene.HueRanger); ok {
		hue = h.HueRange()
	}

	st := lut.State()
	rec := NewRecord(id, parent, obj.ClassName(), ClassLookupTable)
	rec.Set("numberOfColors", st.NumberOfColors)
	rec.Set("valueRange", st.Range)
	rec.Set("hueRange", hue)
	rec.Set("saturationRange", st.SaturationRange)
	rec.Set("nanColor", st.NanColor)
	rec.Set("belowRangeColor", st.BelowRangeColor)
	rec.Set("aboveRangeColor", st.AboveRangeColor)
	rec.Set("useAboveRangeColor", st.UseAboveRangeColor)
	rec.Set("useBelowRangeColor", st.UseBelowRangeColor)
	rec.Set("alpha", st.Alpha)
	rec.Set("vectorSize", st.VectorSize)
	rec.Set("vectorComponent", st.VectorComponent)
	rec.Set("vectorMode", st.VectorMode)
	rec.Set("indexedLookup", st.IndexedLookup)
	return rec, nil
}

func serializeColorTransferFunction(parent string, obj scene.Object, ctx *Context) (*Record, error) {
	id := ctx.RefID(obj)
	fn, ok := obj.(scene.ColorTransferFunction)
	if !ok {
		return nil, kindMismatch(obj, id, "ColorTransferFunction")
	}

	nodes := make([][6]float64, 0, len(fn.Nodes()))
	nodes = append(nodes, fn.Nodes()...)

	st := fn.State()
	rec := NewRecord(id, parent, obj.ClassName(), ClassColorTransferFunction)
	rec.Set("clamping", st.Clamping)
	rec.Set("colorSpace", st.ColorSpace)
	rec.Set("hSVWrap", st.HSVWrap)
	rec.Set("allowDuplicateScalars", st.AllowDuplicateScalars)
	rec.Set("alpha", st.Alpha)
	rec.Set("vectorComponent", st.VectorComponent)
	rec.Set("vectorSize", st.VectorSize)
	rec.Set("vectorMode", st.VectorMode)
	rec.Set("indexedLookup", st.IndexedLookup)
	rec.Set("nodes", nodes)
	return rec, nil
}
