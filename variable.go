package netcdf3

// varRecord is the DataSet's internal, index-addressed storage for one
// variable: its type, its shape as dimension indices (stable across
// renames, mirroring cdf/header.go's variable.dim []int32), and its own
// attribute list.
type varRecord struct {
	name   string
	dimIdx []int
	typ    Type
	attrs  attrList
}

// Variable is a read-only handle to one of a DataSet's variables. Unlike
// Dimension, it is not a snapshot: it refers to the variable by index into
// the DataSet it came from, so its methods report the variable's current
// name, shape, and attributes, and its Dims method re-resolves each
// dimension (picking up the unlimited dimension's current size) at call
// time rather than caching a stale copy.
type Variable struct {
	ds  *DataSet
	idx int
}

func (v Variable) rec() *varRecord { return &v.ds.vars[v.idx] }

// Name returns the variable's current name.
func (v Variable) Name() string { return v.rec().name }

// Type returns the variable's scalar element type.
func (v Variable) Type() Type { return v.rec().typ }

// NumDims returns the number of dimensions in the variable's shape.
func (v Variable) NumDims() int { return len(v.rec().dimIdx) }

// DimNames returns the current names of the variable's shape dimensions,
// in declaration order.
func (v Variable) DimNames() []string {
	rec := v.rec()
	names := make([]string, len(rec.dimIdx))
	for i, di := range rec.dimIdx {
		names[i] = v.ds.dims[di].name
	}
	return names
}

// Dims returns snapshots of the variable's shape dimensions, in
// declaration order, with the unlimited dimension (if present) reporting
// the data set's current record count.
func (v Variable) Dims() []Dimension {
	rec := v.rec()
	dims := make([]Dimension, len(rec.dimIdx))
	for i, di := range rec.dimIdx {
		dims[i] = v.ds.dimAt(di)
	}
	return dims
}

// IsRecordVariable reports whether the variable's shape begins with the
// data set's unlimited dimension.
func (v Variable) IsRecordVariable() bool {
	rec := v.rec()
	return len(rec.dimIdx) > 0 && v.ds.unlimitedIdx >= 0 && rec.dimIdx[0] == v.ds.unlimitedIdx
}

// NumAttrs returns the number of attributes attached to the variable.
func (v Variable) NumAttrs() int { return len(v.rec().attrs.items) }

// Attrs returns the variable's attributes in insertion order.
func (v Variable) Attrs() []Attribute {
	rec := v.rec()
	out := make([]Attribute, len(rec.attrs.items))
	copy(out, rec.attrs.items)
	return out
}

// AttrNames returns the names of the variable's attributes in insertion order.
func (v Variable) AttrNames() []string { return v.rec().attrs.names() }

// Attr looks up one of the variable's attributes by name.
func (v Variable) Attr(name string) (Attribute, bool) { return v.rec().attrs.get(name) }

// fixedElementCount returns the product of the sizes of the variable's
// non-record dimensions (i.e. all dimensions but a leading unlimited one),
// which is vsize_raw / element size in §4.5's layout planner, and also the
// per-record element count used by per-record reads (§4.6).
func (v Variable) fixedElementCount() int {
	rec := v.rec()
	n := 1
	for _, di := range rec.dimIdx {
		if di == v.ds.unlimitedIdx {
			continue
		}
		n *= v.ds.dims[di].size
	}
	return n
}

// wholeElementCount returns the total element count of a whole-variable
// read: fixedElementCount times the record count for a record variable,
// or fixedElementCount unchanged for a fixed variable.
func (v Variable) wholeElementCount() int {
	n := v.fixedElementCount()
	if v.IsRecordVariable() {
		n *= v.ds.unlimitedSize
	}
	return n
}

// fillValue returns the scalar value Fill/FillRecord should write for one
// element of v: the value of a scalar "_FillValue" attribute of the same
// type as v, if one is attached, otherwise v.Type()'s default fill value.
// Mirrors cdf/header.go's variable.fillValue.
func (v Variable) fillValue() interface{} {
	a, ok := v.Attr("_FillValue")
	if ok && a.Type() == v.Type() && a.Len() == 1 {
		switch vals := a.Values().(type) {
		case []int8:
			return vals[0]
		case []uint8:
			return vals[0]
		case []int16:
			return vals[0]
		case []int32:
			return vals[0]
		case []float32:
			return vals[0]
		case []float64:
			return vals[0]
		}
	}
	return v.Type().FillValue()
}
