package memory

import (
	"github.com/matzehuels/scenedoc/pkg/dataarray"
	"github.com/matzehuels/scenedoc/pkg/errors"
	"github.com/matzehuels/scenedoc/pkg/scene"
)

// MergeBlocks flattens a composite dataset into a single PolyData.
//
// Blocks are visited depth-first; nested composites are expanded and nil
// blocks skipped. Every leaf must be a scene.PolyData, otherwise the merge
// fails with UNSUPPORTED_COMPOSITE. Blocks without points contribute nothing.
//
// Points are concatenated in block order and cell connectivity is shifted by
// the number of points preceding each block. Point arrays are kept only when
// every contributing block carries an array of the same name and component
// count; cell and field data are dropped. Blocks whose points differ in
// component count fail with UNSUPPORTED_COMPOSITE.
//
// When no block contributes points the result has no points, which the
// serializer reports as missing geometry.
func MergeBlocks(c scene.CompositeDataSet) (scene.PolyData, error) {
	var leaves []scene.PolyData
	if err := collectLeaves(c, &leaves, map[scene.Object]bool{}); err != nil {
		return nil, err
	}

	var blocks []scene.PolyData
	for _, pd := range leaves {
		if dataarray.Len(pd.Points()) > 0 {
			blocks = append(blocks, pd)
		}
	}

	out := &PolyData{}
	if len(blocks) == 0 {
		return out, nil
	}

	points := make([]dataarray.DataArray, len(blocks))
	for i, b := range blocks {
		points[i] = b.Points()
		if got, want := points[i].NumberOfComponents(), points[0].NumberOfComponents(); got != want {
			return nil, errors.New(errors.ErrCodeUnsupportedComposite,
				"block %d (%s) has %d-component points, want %d", i, b.ClassName(), got, want).
				WithObject("", c.ClassName())
		}
	}
	out.Coords = concat(points[0].Name(), points)

	for _, ct := range scene.CellTypes {
		if cells := mergeCells(blocks, ct); cells != nil {
			switch ct {
			case scene.CellVerts:
				out.Verts = cells
			case scene.CellLines:
				out.Lines = cells
			case scene.CellPolys:
				out.Polys = cells
			case scene.CellStrips:
				out.Strips = cells
			}
		}
	}

	out.Point = mergePointData(blocks)
	return out, nil
}

func collectLeaves(c scene.CompositeDataSet, out *[]scene.PolyData, seen map[scene.Object]bool) error {
	if seen[c] {
		return errors.New(errors.ErrCodeCyclicGraph, "composite contains itself").
			WithObject("", c.ClassName())
	}
	seen[c] = true
	defer delete(seen, c)

	for _, b := range c.Blocks() {
		switch blk := b.(type) {
		case nil:
		case scene.PolyData:
			*out = append(*out, blk)
		case scene.CompositeDataSet:
			if err := collectLeaves(blk, out, seen); err != nil {
				return err
			}
		default:
			return errors.New(errors.ErrCodeUnsupportedComposite,
				"block of class %s cannot be merged into poly data", b.ClassName()).
				WithObject("", c.ClassName())
		}
	}
	return nil
}

// concat appends the tuples of arrays in order. The result keeps the common
// numeric type, or double when the inputs disagree.
func concat(name string, arrays []dataarray.DataArray) *dataarray.Array {
	typ := arrays[0].DataType()
	comps := arrays[0].NumberOfComponents()
	size := 0
	for _, a := range arrays {
		if a.DataType() != typ {
			typ = dataarray.TypeDouble
		}
		size += dataarray.Len(a)
	}

	values := make([]float64, 0, size)
	for _, a := range arrays {
		for t := 0; t < a.NumberOfTuples(); t++ {
			for k := 0; k < comps; k++ {
				values = append(values, a.Component(t, k))
			}
		}
	}
	return dataarray.New(name, typ, comps, values...)
}

// mergeCells concatenates the legacy connectivity buffers (n, ids..., n, ...)
// of one cell category, shifting each block's point ids by the points that
// precede it. Returns nil when no block has cells of the category.
func mergeCells(blocks []scene.PolyData, ct scene.CellType) dataarray.DataArray {
	var values []float64
	offset := 0.0
	found := false
	for _, b := range blocks {
		cells := b.Cells(ct)
		if n := dataarray.Len(cells); n > 0 {
			found = true
			flat := flatten(cells)
			for i := 0; i < len(flat); {
				count := int(flat[i])
				values = append(values, flat[i])
				i++
				for j := 0; j < count && i < len(flat); j++ {
					values = append(values, flat[i]+offset)
					i++
				}
			}
		}
		offset += float64(b.Points().NumberOfTuples())
	}
	if !found {
		return nil
	}
	return dataarray.New("", dataarray.TypeIDType, 1, values...)
}

func flatten(a dataarray.DataArray) []float64 {
	comps := a.NumberOfComponents()
	out := make([]float64, 0, dataarray.Len(a))
	for t := 0; t < a.NumberOfTuples(); t++ {
		for c := 0; c < comps; c++ {
			out = append(out, a.Component(t, c))
		}
	}
	return out
}

func mergePointData(blocks []scene.PolyData) *scene.Attributes {
	first := blocks[0].PointData()
	if first == nil {
		return nil
	}

	attrs := &scene.Attributes{}
	for _, arr := range first.Arrays {
		if dataarray.IsNil(arr) || arr.Name() == "" {
			continue
		}
		parts := []dataarray.DataArray{arr}
		for _, b := range blocks[1:] {
			other := findArray(b.PointData(), arr.Name())
			if dataarray.IsNil(other) || other.NumberOfComponents() != arr.NumberOfComponents() {
				parts = nil
				break
			}
			parts = append(parts, other)
		}
		if parts == nil {
			continue
		}
		merged := concat(arr.Name(), parts)
		attrs.Arrays = append(attrs.Arrays, merged)

		if sameActive(blocks, arr.Name(), func(a *scene.Attributes) dataarray.DataArray { return a.Scalars }) {
			attrs.Scalars = merged
		}
		if sameActive(blocks, arr.Name(), func(a *scene.Attributes) dataarray.DataArray { return a.Normals }) {
			attrs.Normals = merged
		}
		if sameActive(blocks, arr.Name(), func(a *scene.Attributes) dataarray.DataArray { return a.TCoords }) {
			attrs.TCoords = merged
		}
	}
	if len(attrs.Arrays) == 0 {
		return nil
	}
	return attrs
}

func findArray(attrs *scene.Attributes, name string) dataarray.DataArray {
	if attrs == nil {
		return nil
	}
	for _, a := range attrs.Arrays {
		if !dataarray.IsNil(a) && a.Name() == name {
			return a
		}
	}
	return nil
}

// sameActive reports whether every block designates the array called name
// through pick.
func sameActive(blocks []scene.PolyData, name string, pick func(*scene.Attributes) dataarray.DataArray) bool {
	for _, b := range blocks {
		pd := b.PointData()
		if pd == nil {
			return false
		}
		a := pick(pd)
		if dataarray.IsNil(a) || a.Name() != name {
			return false
		}
	}
	return true
}
