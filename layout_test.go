package netcdf3

import "testing"

func TestPlanLayoutFixedVarOffsetsIncreaseAndAlign(t *testing.T) {
	ds := NewDataSet()
	ds.AddFixedDim("x", 3)
	ds.AddVar("a", []string{"x"}, Int8) // 3 bytes raw, pads to 4
	ds.AddVar("b", []string{"x"}, Float64)

	lay, err := planLayout(ds, 0, VersionAuto)
	if err != nil {
		t.Fatal(err)
	}
	a := lay.entries[0]
	b := lay.entries[1]
	if a.begin%4 != 0 || b.begin%4 != 0 {
		t.Errorf("offsets must be 4-byte aligned: a=%d b=%d", a.begin, b.begin)
	}
	if b.begin != a.begin+pad4(a.vsizeRaw) {
		t.Errorf("b.begin = %d, want %d", b.begin, a.begin+pad4(a.vsizeRaw))
	}
	if lay.version != versionClassic {
		t.Errorf("version = %v, want classic", lay.version)
	}
}

func TestPlanLayoutSingleRecordVarNoInterRecordPad(t *testing.T) {
	ds := NewDataSet()
	ds.AddFixedDim("x", 3) // raw = 3 bytes, not a multiple of 4
	ds.SetUnlimitedDim("time", 0)
	ds.AddVar("v", []string{"time", "x"}, Int8)

	lay, err := planLayout(ds, 5, VersionAuto)
	if err != nil {
		t.Fatal(err)
	}
	if lay.recordStride != 3 {
		t.Errorf("recordStride = %d, want 3 (unpadded, single record variable)", lay.recordStride)
	}
}

func TestPlanLayoutMultiRecordVarPaddedStride(t *testing.T) {
	ds := NewDataSet()
	ds.AddFixedDim("x", 3)
	ds.SetUnlimitedDim("time", 0)
	ds.AddVar("v1", []string{"time", "x"}, Int8) // raw 3, padded 4
	ds.AddVar("v2", []string{"time", "x"}, Int8) // raw 3, padded 4

	lay, err := planLayout(ds, 2, VersionAuto)
	if err != nil {
		t.Fatal(err)
	}
	if lay.recordStride != 8 {
		t.Errorf("recordStride = %d, want 8 (sum of pad4(raw) across record vars)", lay.recordStride)
	}
}

func TestPlanLayoutPromotesTo64BitWhenRequired(t *testing.T) {
	ds := NewDataSet()
	ds.AddFixedDim("huge", 1<<31)
	ds.AddFixedDim("small", 1)
	ds.AddVar("a", []string{"huge"}, Int8)
	ds.AddVar("b", []string{"small"}, Int8)

	lay, err := planLayout(ds, 0, VersionAuto)
	if err != nil {
		t.Fatal(err)
	}
	if lay.version != version64BitOffset {
		t.Errorf("version = %v, want 64-bit-offset", lay.version)
	}
}

func TestPlanLayoutForcedClassicOverflows(t *testing.T) {
	ds := NewDataSet()
	ds.AddFixedDim("huge", 1<<31)
	ds.AddFixedDim("small", 1)
	ds.AddVar("a", []string{"huge"}, Int8)
	ds.AddVar("b", []string{"small"}, Int8)

	if _, err := planLayout(ds, 0, VersionClassic); err != ErrOffsetOverflow {
		t.Errorf("err = %v, want ErrOffsetOverflow", err)
	}
}

func TestPlanLayoutSingleFinalHugeVariableStaysClassic(t *testing.T) {
	// The NetCDF classic format's one documented large-file allowance: the
	// final (and here, only) variable may exceed 2^31 bytes because only
	// its begin offset, not its extent, needs to fit a signed 32-bit range.
	ds := NewDataSet()
	ds.AddFixedDim("huge", 1<<31)
	ds.AddVar("a", []string{"huge"}, Int8)

	lay, err := planLayout(ds, 0, VersionAuto)
	if err != nil {
		t.Fatal(err)
	}
	if lay.version != versionClassic {
		t.Errorf("version = %v, want classic", lay.version)
	}
}
