package netcdf3

import (
	"testing"

	"gonum.org/v1/gonum/floats"
)

// TestFloat32RoundTripWithinTolerance exercises §8's float round-trip
// property using the pack's gonum/floats tolerance helper rather than a
// bit-exact comparison: writing and reading Float32/Float64 data should
// reproduce the written values to within floating-point rounding, not
// necessarily bit-for-bit if a caller's data passed through an
// intermediate float64 computation before being narrowed to float32.
// Grounded on inmap's sr package, which uses floats.EqualWithinAbsOrRel
// for exactly this kind of numerical regression check.
func TestFloat32RoundTripWithinTolerance(t *testing.T) {
	ds := NewDataSet()
	ds.AddFixedDim("x", 5)
	ds.AddVar("v", []string{"x"}, Float32)

	want := []float64{0, 0.1, 1.0 / 3.0, 1e6, -42.5}
	values := make([]float32, len(want))
	for i, w := range want {
		values[i] = float32(w)
	}

	f := &memFile{}
	data := &WriteData{Vars: map[string]interface{}{"v": values}}
	if err := Write(f, ds, data, VersionAuto); err != nil {
		t.Fatal(err)
	}

	rf, err := Open(f)
	if err != nil {
		t.Fatal(err)
	}
	got, err := rf.ReadVar("v")
	if err != nil {
		t.Fatal(err)
	}
	gotValues, ok := got.([]float32)
	if !ok || len(gotValues) != len(want) {
		t.Fatalf("ReadVar(v) = %v", got)
	}
	for i := range want {
		if !floats.EqualWithinAbsOrRel(float64(gotValues[i]), want[i], 1e-6, 1e-6) {
			t.Errorf("value[%d] = %v, want %v within tolerance", i, gotValues[i], want[i])
		}
	}
}
