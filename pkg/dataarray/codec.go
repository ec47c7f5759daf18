package dataarray

import (
	"github.com/matzehuels/scenedoc/pkg/errors"
)

// Class tags a Descriptor with the role its buffer plays in the document.
const (
	ClassDataArray = "vtkDataArray"
	ClassPoints    = "vtkPoints"
	ClassCellArray = "vtkCellArray"
)

// jsArrayTypes maps VTK numeric types onto JavaScript typed-array names.
// 64-bit index types fall back to Uint32Array; long types are emitted as
// 32-bit because browsers have no portable 64-bit typed array.
var jsArrayTypes = map[DataType]string{
	TypeChar:          "Int8Array",
	TypeUnsignedChar:  "Uint8Array",
	TypeShort:         "Int16Array",
	TypeUnsignedShort: "Uint16Array",
	TypeInt:           "Int32Array",
	TypeUnsignedInt:   "Uint32Array",
	TypeLong:          "Int32Array",
	TypeUnsignedLong:  "Uint32Array",
	TypeFloat:         "Float32Array",
	TypeDouble:        "Float64Array",
	TypeIDType:        "Uint32Array",
}

// Descriptor is the typed-array form of a numeric buffer inside a document.
type Descriptor struct {
	Name               string    `json:"name"`
	DataType           string    `json:"dataType"`
	NumberOfComponents int       `json:"numberOfComponents"`
	Size               int       `json:"size"`
	Values             []float64 `json:"values"`
	VTKClass           string    `json:"vtkClass"`
}

// JSArrayType returns the typed-array name for a VTK numeric type.
// It reports false for types with no typed-array equivalent (void, bit).
func JSArrayType(t DataType) (string, bool) {
	s, ok := jsArrayTypes[t]
	return s, ok
}

// Encode converts a numeric buffer into a Descriptor tagged with class.
//
// Values are laid out column-major: all tuples of component 0, then all
// tuples of component 1, and so on. Negative values of index-typed arrays
// are clamped to -1. Encode does not modify arr.
//
// Returns an UNSUPPORTED_ARRAY error when arr is nil, when the numeric type
// has no typed-array mapping, or when an Array ends in a partial tuple.
func Encode(arr DataArray, class string) (Descriptor, error) {
	if IsNil(arr) {
		return Descriptor{}, errors.New(errors.ErrCodeUnsupportedArray, "%s array is nil", class)
	}
	if a, ok := arr.(*Array); ok && len(a.Values)%a.NumberOfComponents() != 0 {
		return Descriptor{}, errors.New(errors.ErrCodeUnsupportedArray,
			"array %q has %d values, not a multiple of %d components", a.Label, len(a.Values), a.NumberOfComponents())
	}

	jsType, ok := JSArrayType(arr.DataType())
	if !ok {
		return Descriptor{}, errors.New(errors.ErrCodeUnsupportedArray,
			"array %q has unsupported data type %s", arr.Name(), arr.DataType())
	}

	comps := arr.NumberOfComponents()
	tuples := arr.NumberOfTuples()
	values := make([]float64, comps*tuples)
	clamp := arr.DataType() == TypeIDType
	for c := 0; c < comps; c++ {
		for t := 0; t < tuples; t++ {
			v := arr.Component(t, c)
			if clamp && v < 0 {
				v = -1
			}
			values[c*tuples+t] = v
		}
	}

	return Descriptor{
		Name:               arr.Name(),
		DataType:           jsType,
		NumberOfComponents: comps,
		Size:               comps * tuples,
		Values:             values,
		VTKClass:           class,
	}, nil
}
