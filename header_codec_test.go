package netcdf3

import (
	"bytes"
	"testing"
)

func TestWriteReadStringRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := writeString(&buf, "hello"); err != nil {
		t.Fatal(err)
	}
	// 4-byte length + 5 bytes + 3 bytes padding = 12
	if buf.Len() != 12 {
		t.Errorf("encoded length = %d, want 12", buf.Len())
	}
	got, err := readString(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello" {
		t.Errorf("readString = %q, want %q", got, "hello")
	}
}

func TestWriteReadAttrOddInt16CountPads(t *testing.T) {
	a, err := NewAttribute("odd", []int16{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := writeAttr(&buf, a); err != nil {
		t.Fatal(err)
	}
	got, err := readAttr(&buf)
	if err != nil {
		t.Fatal(err)
	}
	vals, ok := got.Values().([]int16)
	if !ok || len(vals) != 3 || vals[2] != 3 {
		t.Errorf("readAttr round trip = %v", got.Values())
	}
}

func TestWriteReadAttrCharRoundTrip(t *testing.T) {
	a, err := NewAttribute("note", []uint8("abc"))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := writeAttr(&buf, a); err != nil {
		t.Fatal(err)
	}
	got, err := readAttr(&buf)
	if err != nil {
		t.Fatal(err)
	}
	text, ok := got.Text()
	if !ok || text != "abc" {
		t.Errorf("readAttr text round trip = %q, %v", text, ok)
	}
}

func TestHeaderSizeGrowsWithMoreDimensions(t *testing.T) {
	ds := NewDataSet()
	base := headerSize(ds, versionClassic)
	ds.AddFixedDim("x", 4)
	withDim := headerSize(ds, versionClassic)
	if withDim <= base {
		t.Errorf("headerSize with a dimension (%d) should exceed empty (%d)", withDim, base)
	}
}

func TestHeaderSize64BitWiderThanClassic(t *testing.T) {
	ds := NewDataSet()
	ds.AddFixedDim("x", 4)
	ds.AddVar("v", []string{"x"}, Int32)
	classic := headerSize(ds, versionClassic)
	offset64 := headerSize(ds, version64BitOffset)
	if offset64 <= classic {
		t.Errorf("64-bit-offset header (%d) should be larger than classic (%d)", offset64, classic)
	}
}
