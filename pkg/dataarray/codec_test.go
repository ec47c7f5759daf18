package dataarray

import (
	"slices"
	"testing"

	"github.com/matzehuels/scenedoc/pkg/errors"
)

func TestEncodeColumnMajor(t *testing.T) {
	pts := New("pts", TypeFloat, 3,
		0, 1, 2,
		10, 11, 12,
	)

	d, err := Encode(pts, ClassPoints)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	want := []float64{0, 10, 1, 11, 2, 12}
	if !slices.Equal(d.Values, want) {
		t.Errorf("values = %v, want %v", d.Values, want)
	}
	if d.Size != 6 {
		t.Errorf("size = %d, want 6", d.Size)
	}
	if d.NumberOfComponents != 3 {
		t.Errorf("numberOfComponents = %d, want 3", d.NumberOfComponents)
	}
	if d.DataType != "Float32Array" {
		t.Errorf("dataType = %q, want Float32Array", d.DataType)
	}
	if d.VTKClass != ClassPoints {
		t.Errorf("vtkClass = %q, want %q", d.VTKClass, ClassPoints)
	}
	if d.Name != "pts" {
		t.Errorf("name = %q, want pts", d.Name)
	}
}

func TestEncodeDoesNotModifySource(t *testing.T) {
	pts := New("pts", TypeDouble, 2, 1, 2, 3, 4)
	if _, err := Encode(pts, ClassDataArray); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !slices.Equal(pts.Values, []float64{1, 2, 3, 4}) {
		t.Errorf("source modified: %v", pts.Values)
	}
}

func TestEncodeClampsIndexType(t *testing.T) {
	ids := New("ids", TypeIDType, 1, 3, -5, 7, -1)

	d, err := Encode(ids, ClassCellArray)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if d.DataType != "Uint32Array" {
		t.Errorf("dataType = %q, want Uint32Array", d.DataType)
	}
	if want := []float64{3, -1, 7, -1}; !slices.Equal(d.Values, want) {
		t.Errorf("values = %v, want %v", d.Values, want)
	}
}

func TestEncodeNegativeNonIndexKept(t *testing.T) {
	d, err := Encode(New("s", TypeInt, 1, -5), ClassDataArray)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if d.Values[0] != -5 {
		t.Errorf("value = %v, want -5", d.Values[0])
	}
}

func TestEncodeUnsupportedType(t *testing.T) {
	for _, typ := range []DataType{TypeVoid, TypeBit, DataType(99)} {
		_, err := Encode(New("x", typ, 1, 1), ClassDataArray)
		if !errors.Is(err, errors.ErrCodeUnsupportedArray) {
			t.Errorf("type %v: err = %v, want UNSUPPORTED_ARRAY", typ, err)
		}
	}
}

func TestJSArrayType(t *testing.T) {
	tests := []struct {
		typ  DataType
		want string
	}{
		{TypeChar, "Int8Array"},
		{TypeUnsignedChar, "Uint8Array"},
		{TypeShort, "Int16Array"},
		{TypeUnsignedShort, "Uint16Array"},
		{TypeInt, "Int32Array"},
		{TypeUnsignedInt, "Uint32Array"},
		{TypeLong, "Int32Array"},
		{TypeUnsignedLong, "Uint32Array"},
		{TypeFloat, "Float32Array"},
		{TypeDouble, "Float64Array"},
		{TypeIDType, "Uint32Array"},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			got, ok := JSArrayType(tt.typ)
			if !ok || got != tt.want {
				t.Errorf("JSArrayType(%v) = %q, %v; want %q", tt.typ, got, ok, tt.want)
			}
		})
	}
}

func TestParseDataType(t *testing.T) {
	for typ := TypeVoid; typ <= TypeIDType; typ++ {
		got, ok := ParseDataType(typ.String())
		if !ok || got != typ {
			t.Errorf("ParseDataType(%q) = %v, %v", typ.String(), got, ok)
		}
	}
	if _, ok := ParseDataType("quad"); ok {
		t.Error("ParseDataType(quad) should fail")
	}
}

func TestArrayDefaults(t *testing.T) {
	a := &Array{Values: []float64{1, 2, 3}}
	if a.NumberOfComponents() != 1 {
		t.Errorf("components = %d, want 1", a.NumberOfComponents())
	}
	if a.NumberOfTuples() != 3 {
		t.Errorf("tuples = %d, want 3", a.NumberOfTuples())
	}
	if Len(nil) != 0 {
		t.Error("Len(nil) should be 0")
	}
}

func TestIsNil(t *testing.T) {
	var typed *Array
	tests := []struct {
		name string
		arr  DataArray
		want bool
	}{
		{"nil interface", nil, true},
		{"typed nil", typed, true},
		{"empty array", &Array{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNil(tt.arr); got != tt.want {
				t.Errorf("IsNil = %v, want %v", got, tt.want)
			}
			if tt.want && Len(tt.arr) != 0 {
				t.Error("Len of a nil array should be 0")
			}
		})
	}
}

func TestEncodeRejectsNilAndPartialTuples(t *testing.T) {
	tests := []struct {
		name string
		arr  DataArray
	}{
		{"nil", nil},
		{"typed nil", (*Array)(nil)},
		{"partial tuple", New("pts", TypeFloat, 3, 0, 0, 0, 1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Encode(tt.arr, ClassPoints); !errors.Is(err, errors.ErrCodeUnsupportedArray) {
				t.Errorf("err = %v, want UNSUPPORTED_ARRAY", err)
			}
		})
	}
}
