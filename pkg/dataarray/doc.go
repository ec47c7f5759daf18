// Package dataarray converts numeric buffers into typed-array descriptors.
//
// A rendering engine keeps point coordinates, cell connectivity and
// per-point/per-cell attributes in typed numeric buffers. [Encode] turns any
// [DataArray] into a [Descriptor], the JSON form a browser renderer can load
// straight into a JavaScript typed array:
//
//	pts := dataarray.New("points", dataarray.TypeFloat, 3,
//	    0, 0, 0,
//	    1, 0, 0,
//	)
//	d, err := dataarray.Encode(pts, dataarray.ClassPoints)
//	// d.DataType == "Float32Array", d.Size == 6
//
// The numeric type vocabulary is fixed: signed and unsigned 8/16/32-bit
// integers and 32/64-bit floats. Index-typed buffers are emitted as
// Uint32Array with negative values clamped to -1.
package dataarray
