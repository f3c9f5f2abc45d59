package netcdf3

import "testing"

func TestAddFixedDim(t *testing.T) {
	ds := NewDataSet()
	d, err := ds.AddFixedDim("x", 4)
	if err != nil {
		t.Fatal(err)
	}
	if d.Name() != "x" || d.Size() != 4 || !d.IsFixed() {
		t.Errorf("got %+v", d)
	}
	if _, err := ds.AddFixedDim("x", 8); err == nil {
		t.Fatal("expected DimensionAlreadyExistsError")
	} else if _, ok := err.(*DimensionAlreadyExistsError); !ok {
		t.Errorf("got %T, want *DimensionAlreadyExistsError", err)
	}
}

func TestSetUnlimitedDimOnce(t *testing.T) {
	ds := NewDataSet()
	d, err := ds.SetUnlimitedDim("time", 0)
	if err != nil {
		t.Fatal(err)
	}
	if !d.IsUnlimited() {
		t.Error("expected unlimited dimension")
	}
	if _, err := ds.SetUnlimitedDim("other", 0); err == nil {
		t.Fatal("expected UnlimitedAlreadyExistsError")
	} else if _, ok := err.(*UnlimitedAlreadyExistsError); !ok {
		t.Errorf("got %T, want *UnlimitedAlreadyExistsError", err)
	}
}

func TestUnlimitedDimSizeTracksRecordCount(t *testing.T) {
	ds := NewDataSet()
	ds.SetUnlimitedDim("time", 0)
	ds.setRecordCount(7)
	d, _ := ds.UnlimitedDim()
	if d.Size() != 7 {
		t.Errorf("Size() = %d, want 7", d.Size())
	}
	if ds.RecordCount() != 7 {
		t.Errorf("RecordCount() = %d, want 7", ds.RecordCount())
	}
}

func TestAddVarUnlimitedMustBeFirst(t *testing.T) {
	ds := NewDataSet()
	ds.AddFixedDim("x", 4)
	ds.SetUnlimitedDim("time", 0)

	if _, err := ds.AddVar("bad", []string{"x", "time"}, Float32); err == nil {
		t.Fatal("expected UnlimitedDimensionNotFirstError")
	} else if e, ok := err.(*UnlimitedDimensionNotFirstError); !ok {
		t.Errorf("got %T, want *UnlimitedDimensionNotFirstError", err)
	} else if e.Pos != 1 {
		t.Errorf("Pos = %d, want 1", e.Pos)
	}

	v, err := ds.AddVar("good", []string{"time", "x"}, Float32)
	if err != nil {
		t.Fatal(err)
	}
	if !v.IsRecordVariable() {
		t.Error("expected record variable")
	}
}

func TestAddVarUnlimitedUsedOnce(t *testing.T) {
	ds := NewDataSet()
	ds.SetUnlimitedDim("time", 0)
	if _, err := ds.AddVar("bad", []string{"time", "time"}, Float32); err == nil {
		t.Fatal("expected UnlimitedDimensionUsedMoreThanOnceError")
	} else if _, ok := err.(*UnlimitedDimensionUsedMoreThanOnceError); !ok {
		t.Errorf("got %T, want *UnlimitedDimensionUsedMoreThanOnceError", err)
	}
}

func TestAddVarUnknownDim(t *testing.T) {
	ds := NewDataSet()
	if _, err := ds.AddVar("v", []string{"nope"}, Float32); err == nil {
		t.Fatal("expected DimensionNotFoundError")
	} else if _, ok := err.(*DimensionNotFoundError); !ok {
		t.Errorf("got %T, want *DimensionNotFoundError", err)
	}
}

func TestRemoveDimInUse(t *testing.T) {
	ds := NewDataSet()
	ds.AddFixedDim("x", 4)
	ds.AddVar("v", []string{"x"}, Float32)
	if err := ds.RemoveDim("x"); err == nil {
		t.Fatal("expected DimensionInUseError")
	} else if e, ok := err.(*DimensionInUseError); !ok {
		t.Errorf("got %T, want *DimensionInUseError", err)
	} else if len(e.VarNames) != 1 || e.VarNames[0] != "v" {
		t.Errorf("VarNames = %v", e.VarNames)
	}
}

func TestRemoveDimShiftsIndices(t *testing.T) {
	ds := NewDataSet()
	ds.AddFixedDim("a", 2)
	ds.AddFixedDim("b", 3)
	ds.AddFixedDim("c", 4)
	v, _ := ds.AddVar("v", []string{"c"}, Int32)
	if err := ds.RemoveDim("a"); err != nil {
		t.Fatal(err)
	}
	dims := v.DimNames()
	if len(dims) != 1 || dims[0] != "c" {
		t.Errorf("DimNames() = %v, want [c]", dims)
	}
	d, ok := ds.Dim("c")
	if !ok || d.Size() != 4 {
		t.Errorf("Dim(c) = %+v, %v", d, ok)
	}
}

func TestRenameDimPreservesVarShape(t *testing.T) {
	ds := NewDataSet()
	ds.AddFixedDim("x", 4)
	v, _ := ds.AddVar("v", []string{"x"}, Int32)
	if err := ds.RenameDim("x", "x2"); err != nil {
		t.Fatal(err)
	}
	if got := v.DimNames(); len(got) != 1 || got[0] != "x2" {
		t.Errorf("DimNames() = %v, want [x2]", got)
	}
}

func TestAttrLifecycle(t *testing.T) {
	ds := NewDataSet()
	if _, err := ds.AddAttr("", "title", []uint8("hello")); err != nil {
		t.Fatal(err)
	}
	if !ds.HasAttr("", "title") {
		t.Error("expected attribute to exist")
	}
	if err := ds.RenameAttr("", "title", "name"); err != nil {
		t.Fatal(err)
	}
	a, ok := ds.Attr("", "name")
	if !ok {
		t.Fatal("expected renamed attribute to be found")
	}
	text, _ := a.Text()
	if text != "hello" {
		t.Errorf("Text() = %q, want %q", text, "hello")
	}
	if err := ds.RemoveAttr("", "name"); err != nil {
		t.Fatal(err)
	}
	if ds.HasAttr("", "name") {
		t.Error("expected attribute to be removed")
	}
}

func TestVarAttrOwnerNotFound(t *testing.T) {
	ds := NewDataSet()
	if _, err := ds.AddAttr("nosuchvar", "units", []uint8("m")); err == nil {
		t.Fatal("expected VariableNotFoundError")
	} else if _, ok := err.(*VariableNotFoundError); !ok {
		t.Errorf("got %T, want *VariableNotFoundError", err)
	}
}

func TestNumericAttrRequiresValue(t *testing.T) {
	ds := NewDataSet()
	if _, err := ds.AddAttr("", "empty", []int32{}); err == nil {
		t.Fatal("expected error for empty numeric attribute")
	}
}

func TestCheckFindsNoIssuesOnValidDataSet(t *testing.T) {
	ds := NewDataSet()
	ds.AddFixedDim("x", 4)
	ds.SetUnlimitedDim("time", 0)
	ds.AddVar("temp", []string{"time", "x"}, Float32)
	ds.AddAttr("", "title", []uint8("test"))
	if errs := ds.Check(); len(errs) != 0 {
		t.Errorf("Check() = %v, want no errors", errs)
	}
}
