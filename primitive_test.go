package netcdf3

import "testing"

func TestTypeSizeAndString(t *testing.T) {
	cases := []struct {
		typ  Type
		size int
		name string
	}{
		{Int8, 1, "i8"},
		{Char, 1, "char"},
		{Int16, 2, "i16"},
		{Int32, 4, "i32"},
		{Float32, 4, "f32"},
		{Float64, 8, "f64"},
	}
	for _, c := range cases {
		if !c.typ.Valid() {
			t.Errorf("%v should be valid", c.typ)
		}
		if got := c.typ.Size(); got != c.size {
			t.Errorf("%v.Size() = %d, want %d", c.typ, got, c.size)
		}
		if got := c.typ.String(); got != c.name {
			t.Errorf("%v.String() = %q, want %q", c.typ, got, c.name)
		}
	}
	if Type(0).Valid() {
		t.Error("Type(0) should be invalid")
	}
	if Type(7).Valid() {
		t.Error("Type(7) should be invalid")
	}
}

func TestPad4(t *testing.T) {
	cases := map[int64]int64{0: 0, 1: 4, 2: 4, 3: 4, 4: 4, 5: 8, 8: 8, 9: 12}
	for in, want := range cases {
		if got := pad4(in); got != want {
			t.Errorf("pad4(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestZeroValuesAndValueLen(t *testing.T) {
	for _, typ := range []Type{Int8, Char, Int16, Int32, Float32, Float64} {
		v := zeroValues(typ, 5)
		if got := valueLen(v); got != 5 {
			t.Errorf("valueLen(zeroValues(%v, 5)) = %d, want 5", typ, got)
		}
		if got := typeOfValues(v); got != typ {
			t.Errorf("typeOfValues(zeroValues(%v, ...)) = %v, want %v", typ, got, typ)
		}
	}
}

func TestValueLenUnrecognized(t *testing.T) {
	if got := valueLen("not a typed slice"); got != -1 {
		t.Errorf("valueLen(string) = %d, want -1", got)
	}
	if got := typeOfValues(42); got != 0 {
		t.Errorf("typeOfValues(int) = %v, want 0", got)
	}
}
