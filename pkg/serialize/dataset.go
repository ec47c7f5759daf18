package serialize

import (
	"github.com/matzehuels/scenedoc/pkg/dataarray"
	"github.com/matzehuels/scenedoc/pkg/errors"
	"github.com/matzehuels/scenedoc/pkg/scene"
)

// ClassDataSetAttributes tags the point, cell and field data blocks.
const ClassDataSetAttributes = "vtkDataSetAttributes"

// ArrayEntry wraps one encoded array inside an AttributesDoc.
type ArrayEntry struct {
	Data dataarray.Descriptor `json:"data"`
}

// AttributesDoc is the document form of the arrays attached to a dataset's
// points, cells or field. Active* fields index into Arrays, or are -1.
type AttributesDoc struct {
	VTKClass          string       `json:"vtkClass"`
	ActiveGlobalIds   int          `json:"activeGlobalIds"`
	ActiveNormals     int          `json:"activeNormals"`
	ActivePedigreeIds int          `json:"activePedigreeIds"`
	ActiveScalars     int          `json:"activeScalars"`
	ActiveTCoords     int          `json:"activeTCoords"`
	ActiveTensors     int          `json:"activeTensors"`
	ActiveVectors     int          `json:"activeVectors"`
	Arrays            []ArrayEntry `json:"arrays"`
}

func serializePolyData(parent string, obj scene.Object, ctx *Context) (*Record, error) {
	id := ctx.RefID(obj)
	pd, ok := obj.(scene.PolyData)
	if !ok {
		return nil, kindMismatch(obj, id, "PolyData")
	}
	return polyDataRecord(parent, id, obj.ClassName(), pd)
}

// serializeComposite merges a multi-block dataset and emits the result as
// PolyData under the composite's own reference id.
func serializeComposite(parent string, obj scene.Object, ctx *Context) (*Record, error) {
	id := ctx.RefID(obj)
	c, ok := obj.(scene.CompositeDataSet)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnsupportedComposite, "%T is not a composite dataset", obj).
			WithObject(id, obj.ClassName())
	}

	merged, err := ctx.merger(c)
	if err != nil {
		return nil, err
	}
	if merged == nil {
		return nil, errors.New(errors.ErrCodeMissingGeometry, "merge produced no dataset").
			WithObject(id, obj.ClassName())
	}
	ctx.logger.Debug("merged composite", "ref", id, "blocks", len(c.Blocks()))
	return polyDataRecord(parent, id, obj.ClassName(), merged)
}

// polyDataRecord emits points, non-empty cell arrays, and point, cell and
// field data. Datasets without points fail with MISSING_GEOMETRY.
func polyDataRecord(parent, id, typ string, pd scene.PolyData) (*Record, error) {
	pts := pd.Points()
	if dataarray.IsNil(pts) || pts.NumberOfTuples() == 0 {
		return nil, errors.New(errors.ErrCodeMissingGeometry, "dataset has no points").WithObject(id, typ)
	}

	rec := NewRecord(id, parent, typ, ClassPolyData)

	points, err := dataarray.Encode(pts, dataarray.ClassPoints)
	if err != nil {
		return nil, encodeError(err, id, typ)
	}
	rec.Set("points", points)

	for _, ct := range scene.CellTypes {
		cells := pd.Cells(ct)
		if dataarray.Len(cells) == 0 {
			continue
		}
		desc, err := dataarray.Encode(cells, dataarray.ClassCellArray)
		if err != nil {
			return nil, encodeError(err, id, typ)
		}
		rec.Set(ct.String(), desc)
	}

	for _, loc := range []struct {
		key   string
		attrs *scene.Attributes
	}{
		{"pointData", pd.PointData()},
		{"cellData", pd.CellData()},
		{"fieldData", pd.FieldData()},
	} {
		doc, err := encodeAttributes(loc.attrs)
		if err != nil {
			return nil, encodeError(err, id, typ)
		}
		rec.Set(loc.key, doc)
	}
	return rec, nil
}

// encodeAttributes lists every non-nil array in order. Active scalars are
// the explicit designation, else the first array. Explicit normals and
// texture coordinates are indexed, and appended when not already listed.
func encodeAttributes(attrs *scene.Attributes) (AttributesDoc, error) {
	doc := AttributesDoc{
		VTKClass:          ClassDataSetAttributes,
		ActiveGlobalIds:   -1,
		ActiveNormals:     -1,
		ActivePedigreeIds: -1,
		ActiveScalars:     -1,
		ActiveTCoords:     -1,
		ActiveTensors:     -1,
		ActiveVectors:     -1,
		Arrays:            []ArrayEntry{},
	}
	if attrs == nil {
		return doc, nil
	}

	var listed []dataarray.DataArray
	for _, a := range attrs.Arrays {
		if !dataarray.IsNil(a) {
			listed = append(listed, a)
		}
	}
	indexOf := func(a dataarray.DataArray) int {
		for i, l := range listed {
			if l == a {
				return i
			}
		}
		listed = append(listed, a)
		return len(listed) - 1
	}

	switch {
	case !dataarray.IsNil(attrs.Scalars):
		doc.ActiveScalars = indexOf(attrs.Scalars)
	case len(listed) > 0:
		doc.ActiveScalars = 0
	}
	if !dataarray.IsNil(attrs.Normals) {
		doc.ActiveNormals = indexOf(attrs.Normals)
	}
	if !dataarray.IsNil(attrs.TCoords) {
		doc.ActiveTCoords = indexOf(attrs.TCoords)
	}

	for _, a := range listed {
		desc, err := dataarray.Encode(a, dataarray.ClassDataArray)
		if err != nil {
			return doc, err
		}
		doc.Arrays = append(doc.Arrays, ArrayEntry{Data: desc})
	}
	return doc, nil
}

func encodeError(err error, id, class string) error {
	return errors.Wrap(errors.GetCode(err), err, "cannot encode dataset array").WithObject(id, class)
}
