package netcdf3

import "math"

// intRange returns the representable [min, max] of an integer Type, or
// (0, 0, false) if t is not an integer type.
func intRange(t Type) (min, max int64, ok bool) {
	switch t {
	case Int8:
		return math.MinInt8, math.MaxInt8, true
	case Char:
		return 0, math.MaxUint8, true
	case Int16:
		return math.MinInt16, math.MaxInt16, true
	case Int32:
		return math.MinInt32, math.MaxInt32, true
	}
	return 0, 0, false
}

// elemAsInt64 returns element i of an integer-typed slice as an int64.
func elemAsInt64(values interface{}, i int) int64 {
	switch v := values.(type) {
	case []int8:
		return int64(v[i])
	case []uint8:
		return int64(v[i])
	case []int16:
		return int64(v[i])
	case []int32:
		return int64(v[i])
	}
	return 0
}

// elemAsFloat64 returns element i of any of the six typed slices as a
// float64.
func elemAsFloat64(values interface{}, i int) float64 {
	switch v := values.(type) {
	case []int8:
		return float64(v[i])
	case []uint8:
		return float64(v[i])
	case []int16:
		return float64(v[i])
	case []int32:
		return float64(v[i])
	case []float32:
		return float64(v[i])
	case []float64:
		return v[i]
	}
	return 0
}

func setInt(out interface{}, i int, n int64) {
	switch o := out.(type) {
	case []int8:
		o[i] = int8(n)
	case []uint8:
		o[i] = uint8(n)
	case []int16:
		o[i] = int16(n)
	case []int32:
		o[i] = int32(n)
	}
}

func setFloat(out interface{}, i int, f float64) {
	switch o := out.(type) {
	case []float32:
		o[i] = float32(f)
	case []float64:
		o[i] = f
	}
}

// convertValues coerces a typed value slice (as produced by zeroValues,
// readAttr, or the reader's decode) to target, per §4.6's coercion rules:
//
//   - identical source and target types are returned unchanged;
//   - integer widening (Int8/Char -> Int16 -> Int32) never fails;
//   - integer narrowing and any float -> integer conversion is checked
//     against the target's representable range and fails with
//     ValueOutOfRangeError if a value doesn't fit;
//   - any numeric type converts to Float32 or Float64 without a range
//     check (ordinary floating-point rounding applies);
//   - Char and Int8 interconvert like any other narrowing/widening pair,
//     range-checked against the target (Char: 0..255, Int8: -128..127),
//     never implicitly — only through this function.
//
// Grounded on cdf's dt2GoType table generalized from a fixed on-disk-to-Go
// mapping into a full conversion matrix, since cdf itself never needed to
// convert between types at read time.
func convertValues(src interface{}, target Type) (interface{}, error) {
	if !target.Valid() {
		return nil, &InvalidTypeTagError{Tag: int32(target)}
	}
	srcType := typeOfValues(src)
	if srcType == target {
		return src, nil
	}
	n := valueLen(src)
	out := zeroValues(target, n)

	_, isSrcFloat := src.([]float32)
	if !isSrcFloat {
		_, isSrcFloat = src.([]float64)
	}

	if target == Float32 || target == Float64 {
		for i := 0; i < n; i++ {
			setFloat(out, i, elemAsFloat64(src, i))
		}
		return out, nil
	}

	min, max, _ := intRange(target)
	for i := 0; i < n; i++ {
		var v int64
		if isSrcFloat {
			f := elemAsFloat64(src, i)
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, &ValueOutOfRangeError{Index: i, Value: f, Target: target}
			}
			v = int64(math.Trunc(f))
		} else {
			v = elemAsInt64(src, i)
		}
		if v < min || v > max {
			return nil, &ValueOutOfRangeError{Index: i, Value: v, Target: target}
		}
		setInt(out, i, v)
	}
	return out, nil
}
