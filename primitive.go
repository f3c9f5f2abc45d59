package netcdf3

import "fmt"

// Type is a NetCDF-3 scalar type tag. The six values and their on-disk
// integer encodings are fixed by the format; see the classic format
// specification's "nc_type" enumeration. Mirrors cdf/header.go's unexported
// datatype, made an exported, stringable type here since the data-set model
// (§4.3) surfaces it directly on Variable and Attribute.
type Type int32

const (
	_ Type = iota // 0 is not a valid on-disk type tag.

	// Int8 is a signed 8-bit integer ("NC_BYTE").
	Int8
	// Char is an unsigned 8-bit byte, used for text ("NC_CHAR").
	Char
	// Int16 is a signed big-endian 16-bit integer ("NC_SHORT").
	Int16
	// Int32 is a signed big-endian 32-bit integer ("NC_INT").
	Int32
	// Float32 is a big-endian IEEE-754 single ("NC_FLOAT").
	Float32
	// Float64 is a big-endian IEEE-754 double ("NC_DOUBLE").
	Float64
)

// elementSize gives the on-disk width, in bytes, of one element of each
// type, per spec.md §3 and cdf/header.go's dt2StorageSize table.
var elementSize = [...]int{0, 1, 1, 2, 4, 4, 8}

// Valid reports whether t is one of the six defined scalar types.
func (t Type) Valid() bool { return t >= Int8 && t <= Float64 }

// Size returns the on-disk element width of t in bytes, or 0 if t is invalid.
func (t Type) Size() int {
	if !t.Valid() {
		return 0
	}
	return elementSize[t]
}

var typeNames = [...]string{"<invalid>", "i8", "char", "i16", "i32", "f32", "f64"}

// String renders t as one of "i8", "char", "i16", "i32", "f32", "f64", or
// "<invalid Type N>" for out-of-range values.
func (t Type) String() string {
	if t.Valid() {
		return typeNames[t]
	}
	return fmt.Sprintf("<invalid Type %d>", int32(t))
}

// FillValue returns t's default fill value, the value NetCDF-3 tools use to
// pre-populate a variable's storage before real data is written, as a
// single scalar of t's Go type. Mirrors cdf/header.go's datatype.FillValue,
// carrying over its literal constants (the classic format spec's
// "Fill Values" table).
func (t Type) FillValue() interface{} {
	switch t {
	case Int8:
		return int8(-127)
	case Char:
		return uint8(0)
	case Int16:
		return int16(-32767)
	case Int32:
		return int32(-2147483647)
	case Float32:
		return float32(9.9692099683868690e+36)
	case Float64:
		return float64(9.9692099683868690e+36)
	}
	return nil
}

// pad4 rounds x up to the nearest multiple of 4, the uniform alignment rule
// §4.2 requires for every variable-length vector in the header and
// (conditionally) for record strides. Identical to cdf/header.go's pad4.
func pad4(x int64) int64 { return (x + 3) &^ 3 }

// pad4Len is the int flavor of pad4, for header-size bookkeeping that stays
// within the range of an int (names, attribute byte counts).
func pad4Len(n int) int { return (n + 3) &^ 3 }

// zeroValues returns a freshly allocated, zero-filled slice of the Go type
// corresponding to t, of length n. Mirrors cdf/header.go's datatype.Zero,
// except Char returns a []byte (this package's on-disk "text" elements are
// addressed as bytes, with string conversion left to callers) rather than a
// Go string, so that whole-variable Char reads compose uniformly with the
// other five types.
func zeroValues(t Type, n int) interface{} {
	switch t {
	case Int8:
		return make([]int8, n)
	case Char:
		return make([]uint8, n)
	case Int16:
		return make([]int16, n)
	case Int32:
		return make([]int32, n)
	case Float32:
		return make([]float32, n)
	case Float64:
		return make([]float64, n)
	}
	return nil
}

// valueLen returns the number of elements in a typed value slice produced
// by zeroValues or supplied by a caller, or -1 if values is not one of the
// six recognized slice types.
func valueLen(values interface{}) int {
	switch v := values.(type) {
	case []int8:
		return len(v)
	case []uint8:
		return len(v)
	case []int16:
		return len(v)
	case []int32:
		return len(v)
	case []float32:
		return len(v)
	case []float64:
		return len(v)
	}
	return -1
}

// typeOfValues maps the dynamic type of values to its Type tag, or 0
// (invalid) if values is not one of the six recognized slice types.
// Mirrors cdf/header.go's dataTypeFromValues, generalized from cdf's
// BYTE/CHAR/SHORT/INT/FLOAT/DOUBLE naming to this package's Type constants.
func typeOfValues(values interface{}) Type {
	switch values.(type) {
	case []int8:
		return Int8
	case []uint8:
		return Char
	case []int16:
		return Int16
	case []int32:
		return Int32
	case []float32:
		return Float32
	case []float64:
		return Float64
	}
	return 0
}
