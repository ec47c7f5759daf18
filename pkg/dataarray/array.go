package dataarray

import "reflect"

// DataType is a VTK numeric type code.
type DataType int

// VTK numeric type codes, in the order VTK defines them.
const (
	TypeVoid DataType = iota
	TypeBit
	TypeChar
	TypeUnsignedChar
	TypeShort
	TypeUnsignedShort
	TypeInt
	TypeUnsignedInt
	TypeLong
	TypeUnsignedLong
	TypeFloat
	TypeDouble
	TypeIDType
)

var typeNames = map[DataType]string{
	TypeVoid:          "void",
	TypeBit:           "bit",
	TypeChar:          "char",
	TypeUnsignedChar:  "unsigned char",
	TypeShort:         "short",
	TypeUnsignedShort: "unsigned short",
	TypeInt:           "int",
	TypeUnsignedInt:   "unsigned int",
	TypeLong:          "long",
	TypeUnsignedLong:  "unsigned long",
	TypeFloat:         "float",
	TypeDouble:        "double",
	TypeIDType:        "idtype",
}

// String returns the VTK spelling of the type ("unsigned char", "double", ...).
func (t DataType) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "unknown"
}

// ParseDataType maps a VTK type spelling back to its code.
func ParseDataType(s string) (DataType, bool) {
	for t, name := range typeNames {
		if name == s {
			return t, true
		}
	}
	return TypeVoid, false
}

// DataArray is a read-only view of a numeric buffer organized in tuples of
// fixed component count. Implementations belong to the rendering backend.
type DataArray interface {
	Name() string
	DataType() DataType
	NumberOfComponents() int
	NumberOfTuples() int
	// Component returns component c of tuple t.
	Component(t, c int) float64
}

// Array is an in-memory DataArray. Values are stored tuple by tuple
// (x0 y0 z0 x1 y1 z1 ...), the layout a rendering engine keeps in memory.
//
// The zero value is an empty array; Components defaults to 1 when unset.
type Array struct {
	Label      string
	Type       DataType
	Components int
	Values     []float64
}

// New creates an Array holding values interleaved by tuple.
func New(name string, typ DataType, components int, values ...float64) *Array {
	return &Array{Label: name, Type: typ, Components: components, Values: values}
}

// Name implements DataArray.
func (a *Array) Name() string { return a.Label }

// DataType implements DataArray.
func (a *Array) DataType() DataType { return a.Type }

// NumberOfComponents implements DataArray.
func (a *Array) NumberOfComponents() int {
	if a.Components <= 0 {
		return 1
	}
	return a.Components
}

// NumberOfTuples implements DataArray. A trailing partial tuple is not
// counted; Encode rejects arrays that carry one.
func (a *Array) NumberOfTuples() int { return len(a.Values) / a.NumberOfComponents() }

// Component implements DataArray.
func (a *Array) Component(t, c int) float64 { return a.Values[t*a.NumberOfComponents()+c] }

// IsNil reports whether a is nil or an interface holding a nil pointer.
func IsNil(a DataArray) bool {
	if a == nil {
		return true
	}
	v := reflect.ValueOf(a)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// Len returns the total number of values (components × tuples), or 0 for a
// nil array.
func Len(a DataArray) int {
	if IsNil(a) {
		return 0
	}
	return a.NumberOfComponents() * a.NumberOfTuples()
}
