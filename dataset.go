package netcdf3

import "fmt"

// DataSet is the in-memory model of a NetCDF-3 data set: an ordered list of
// dimensions, an ordered list of global attributes, and an ordered list of
// variables, each with its own ordered attribute list and shape. It owns
// all three; variables reference dimensions by stable index, never by name
// or pointer (see dimRecord), so a rename never invalidates a shape.
//
// Every mutator validates the invariants in spec.md §3 before applying any
// change; on failure the DataSet is left exactly as it was. This mirrors
// cdf.Header's pre-Define mutability (NewHeader/AddVariable/AddAttribute),
// generalized to support rename and remove, which cdf's immutable-header
// design does not need.
type DataSet struct {
	dims         []dimRecord
	dimByName    map[string]int
	unlimitedIdx int // -1 if no unlimited dimension has been set
	unlimitedSize int

	globalAttrs attrList

	vars      []varRecord
	varByName map[string]int
}

// NewDataSet returns an empty data set, ready for dimensions, variables,
// and attributes to be added.
func NewDataSet() *DataSet {
	return &DataSet{
		dimByName:    make(map[string]int),
		unlimitedIdx: -1,
		globalAttrs:  newAttrList(),
		varByName:    make(map[string]int),
	}
}

func (ds *DataSet) dimAt(idx int) Dimension {
	d := ds.dims[idx]
	size := d.size
	dt := FixedSize
	if d.unlimited {
		dt = UnlimitedSize
		size = ds.unlimitedSize
	}
	return Dimension{name: d.name, dimType: dt, size: size}
}

// ---- dimensions ----

// NumDims returns the number of dimensions in the data set.
func (ds *DataSet) NumDims() int { return len(ds.dims) }

// HasDim reports whether a dimension named name exists.
func (ds *DataSet) HasDim(name string) bool {
	_, ok := ds.dimByName[name]
	return ok
}

// HasUnlimitedDim reports whether the data set has an unlimited dimension.
func (ds *DataSet) HasUnlimitedDim() bool { return ds.unlimitedIdx >= 0 }

// Dim looks up a dimension by name.
func (ds *DataSet) Dim(name string) (Dimension, bool) {
	i, ok := ds.dimByName[name]
	if !ok {
		return Dimension{}, false
	}
	return ds.dimAt(i), true
}

// UnlimitedDim returns the data set's unlimited dimension, if any.
func (ds *DataSet) UnlimitedDim() (Dimension, bool) {
	if ds.unlimitedIdx < 0 {
		return Dimension{}, false
	}
	return ds.dimAt(ds.unlimitedIdx), true
}

// Dims returns snapshots of all dimensions, in insertion order.
func (ds *DataSet) Dims() []Dimension {
	out := make([]Dimension, len(ds.dims))
	for i := range ds.dims {
		out[i] = ds.dimAt(i)
	}
	return out
}

// AddFixedDim adds a new fixed-size dimension. Fails with InvalidNameError
// or DimensionAlreadyExistsError.
func (ds *DataSet) AddFixedDim(name string, size int) (Dimension, error) {
	if err := checkName(name); err != nil {
		return Dimension{}, err
	}
	if ds.HasDim(name) {
		return Dimension{}, &DimensionAlreadyExistsError{Name: name}
	}
	if size < 0 {
		return Dimension{}, fmt.Errorf("netcdf3: dimension %q: negative size %d", name, size)
	}
	ds.dims = append(ds.dims, dimRecord{name: name, size: size})
	ds.dimByName[name] = len(ds.dims) - 1
	return ds.dimAt(len(ds.dims) - 1), nil
}

// SetUnlimitedDim adds the data set's unlimited dimension with an initial
// record count of size. Fails with InvalidNameError,
// DimensionAlreadyExistsError, or UnlimitedAlreadyExistsError if one is
// already set.
func (ds *DataSet) SetUnlimitedDim(name string, size int) (Dimension, error) {
	if err := checkName(name); err != nil {
		return Dimension{}, err
	}
	if ds.unlimitedIdx >= 0 {
		return Dimension{}, &UnlimitedAlreadyExistsError{Existing: ds.dims[ds.unlimitedIdx].name}
	}
	if ds.HasDim(name) {
		return Dimension{}, &DimensionAlreadyExistsError{Name: name}
	}
	if size < 0 {
		return Dimension{}, fmt.Errorf("netcdf3: dimension %q: negative size %d", name, size)
	}
	ds.dims = append(ds.dims, dimRecord{name: name, unlimited: true})
	idx := len(ds.dims) - 1
	ds.dimByName[name] = idx
	ds.unlimitedIdx = idx
	ds.unlimitedSize = size
	return ds.dimAt(idx), nil
}

// RenameDim renames an existing dimension. Fails with
// DimensionNotFoundError, InvalidNameError, or DimensionAlreadyExistsError
// if new collides with an existing dimension.
func (ds *DataSet) RenameDim(old, new string) error {
	i, ok := ds.dimByName[old]
	if !ok {
		return &DimensionNotFoundError{Name: old}
	}
	if old == new {
		return nil
	}
	if err := checkName(new); err != nil {
		return err
	}
	if ds.HasDim(new) {
		return &DimensionAlreadyExistsError{Name: new}
	}
	ds.dims[i].name = new
	delete(ds.dimByName, old)
	ds.dimByName[new] = i
	return nil
}

// RemoveDim removes a dimension. Fails with DimensionNotFoundError, or
// DimensionInUseError if any variable still references it.
func (ds *DataSet) RemoveDim(name string) error {
	i, ok := ds.dimByName[name]
	if !ok {
		return &DimensionNotFoundError{Name: name}
	}
	var users []string
	for _, v := range ds.vars {
		for _, di := range v.dimIdx {
			if di == i {
				users = append(users, v.name)
				break
			}
		}
	}
	if len(users) > 0 {
		return &DimensionInUseError{Name: name, VarNames: users}
	}
	wasUnlimited := ds.dims[i].unlimited
	ds.dims = append(ds.dims[:i], ds.dims[i+1:]...)
	delete(ds.dimByName, name)
	for n, idx := range ds.dimByName {
		if idx > i {
			ds.dimByName[n] = idx - 1
		}
	}
	if wasUnlimited {
		ds.unlimitedIdx = -1
		ds.unlimitedSize = 0
	} else if ds.unlimitedIdx > i {
		ds.unlimitedIdx--
	}
	for vi := range ds.vars {
		for di := range ds.vars[vi].dimIdx {
			if ds.vars[vi].dimIdx[di] > i {
				ds.vars[vi].dimIdx[di]--
			}
		}
	}
	return nil
}

// ---- variables ----

// NumVars returns the number of variables in the data set.
func (ds *DataSet) NumVars() int { return len(ds.vars) }

// HasVar reports whether a variable named name exists.
func (ds *DataSet) HasVar(name string) bool {
	_, ok := ds.varByName[name]
	return ok
}

// Var looks up a variable by name.
func (ds *DataSet) Var(name string) (Variable, bool) {
	i, ok := ds.varByName[name]
	if !ok {
		return Variable{}, false
	}
	return Variable{ds: ds, idx: i}, true
}

// Vars returns handles to all variables, in insertion order.
func (ds *DataSet) Vars() []Variable {
	out := make([]Variable, len(ds.vars))
	for i := range ds.vars {
		out[i] = Variable{ds: ds, idx: i}
	}
	return out
}

// AddVar adds a new variable of type typ over the named dimensions (in
// shape order). Fails with InvalidNameError, VariableAlreadyExistsError,
// DimensionNotFoundError, UnlimitedDimensionNotFirstError, or
// UnlimitedDimensionUsedMoreThanOnceError.
func (ds *DataSet) AddVar(name string, dimNames []string, typ Type) (Variable, error) {
	if err := checkName(name); err != nil {
		return Variable{}, err
	}
	if ds.HasVar(name) {
		return Variable{}, &VariableAlreadyExistsError{Name: name}
	}
	if !typ.Valid() {
		return Variable{}, fmt.Errorf("netcdf3: variable %q: invalid type %v", name, typ)
	}
	dimIdx := make([]int, len(dimNames))
	unlimitedCount := 0
	for i, dn := range dimNames {
		di, ok := ds.dimByName[dn]
		if !ok {
			return Variable{}, &DimensionNotFoundError{Name: dn}
		}
		if di == ds.unlimitedIdx {
			unlimitedCount++
			if unlimitedCount > 1 {
				return Variable{}, &UnlimitedDimensionUsedMoreThanOnceError{Var: name, Dim: dn}
			}
			if i != 0 {
				return Variable{}, &UnlimitedDimensionNotFirstError{Var: name, Dim: dn, Pos: i}
			}
		}
		dimIdx[i] = di
	}
	ds.vars = append(ds.vars, varRecord{name: name, dimIdx: dimIdx, typ: typ, attrs: newAttrList()})
	ds.varByName[name] = len(ds.vars) - 1
	return Variable{ds: ds, idx: len(ds.vars) - 1}, nil
}

// RenameVar renames an existing variable. Fails with VariableNotFoundError,
// InvalidNameError, or VariableAlreadyExistsError.
func (ds *DataSet) RenameVar(old, new string) error {
	i, ok := ds.varByName[old]
	if !ok {
		return &VariableNotFoundError{Name: old}
	}
	if old == new {
		return nil
	}
	if err := checkName(new); err != nil {
		return err
	}
	if ds.HasVar(new) {
		return &VariableAlreadyExistsError{Name: new}
	}
	ds.vars[i].name = new
	delete(ds.varByName, old)
	ds.varByName[new] = i
	return nil
}

// RemoveVar removes a variable. Fails with VariableNotFoundError.
func (ds *DataSet) RemoveVar(name string) error {
	i, ok := ds.varByName[name]
	if !ok {
		return &VariableNotFoundError{Name: name}
	}
	ds.vars = append(ds.vars[:i], ds.vars[i+1:]...)
	delete(ds.varByName, name)
	for n, idx := range ds.varByName {
		if idx > i {
			ds.varByName[n] = idx - 1
		}
	}
	return nil
}

// ---- attributes ----

// ownerAttrs resolves the attribute list owned by owner ("" for global), or
// nil and VariableNotFoundError if owner names an unknown variable.
func (ds *DataSet) ownerAttrs(owner string) (*attrList, error) {
	if owner == "" {
		return &ds.globalAttrs, nil
	}
	i, ok := ds.varByName[owner]
	if !ok {
		return nil, &VariableNotFoundError{Name: owner}
	}
	return &ds.vars[i].attrs, nil
}

// NumAttrs returns the number of attributes owned by owner ("" for global).
func (ds *DataSet) NumAttrs(owner string) int {
	l, err := ds.ownerAttrs(owner)
	if err != nil {
		return 0
	}
	return len(l.items)
}

// HasAttr reports whether owner ("" for global) has an attribute named name.
func (ds *DataSet) HasAttr(owner, name string) bool {
	l, err := ds.ownerAttrs(owner)
	if err != nil {
		return false
	}
	return l.has(name)
}

// Attr looks up an attribute owned by owner ("" for global).
func (ds *DataSet) Attr(owner, name string) (Attribute, bool) {
	l, err := ds.ownerAttrs(owner)
	if err != nil {
		return Attribute{}, false
	}
	return l.get(name)
}

// Attrs returns, in insertion order, all attributes owned by owner ("" for
// global).
func (ds *DataSet) Attrs(owner string) []Attribute {
	l, err := ds.ownerAttrs(owner)
	if err != nil {
		return nil
	}
	out := make([]Attribute, len(l.items))
	copy(out, l.items)
	return out
}

// AddAttr adds an attribute named name with the given values, its type
// taken from the values' slice type (see NewAttribute), to owner ("" for
// global). Fails with VariableNotFoundError (unknown
// owner), InvalidNameError, or AttributeAlreadyExistsError.
func (ds *DataSet) AddAttr(owner, name string, values interface{}) (Attribute, error) {
	l, err := ds.ownerAttrs(owner)
	if err != nil {
		return Attribute{}, err
	}
	if l.has(name) {
		return Attribute{}, &AttributeAlreadyExistsError{Owner: owner, Name: name}
	}
	a, err := NewAttribute(name, values)
	if err != nil {
		return Attribute{}, err
	}
	l.add(a)
	return a, nil
}

// RenameAttr renames an attribute owned by owner ("" for global). Fails
// with VariableNotFoundError (unknown owner), AttributeNotFoundError,
// InvalidNameError, or AttributeAlreadyExistsError.
func (ds *DataSet) RenameAttr(owner, old, new string) error {
	l, err := ds.ownerAttrs(owner)
	if err != nil {
		return err
	}
	if !l.has(old) {
		return &AttributeNotFoundError{Owner: owner, Name: old}
	}
	if old == new {
		return nil
	}
	if err := checkName(new); err != nil {
		return err
	}
	if l.has(new) {
		return &AttributeAlreadyExistsError{Owner: owner, Name: new}
	}
	l.rename(old, new)
	return nil
}

// RemoveAttr removes an attribute owned by owner ("" for global). Fails
// with VariableNotFoundError (unknown owner) or AttributeNotFoundError.
func (ds *DataSet) RemoveAttr(owner, name string) error {
	l, err := ds.ownerAttrs(owner)
	if err != nil {
		return err
	}
	if !l.remove(name) {
		return &AttributeNotFoundError{Owner: owner, Name: name}
	}
	return nil
}

// setRecordCount sets the unlimited dimension's current size. Called only
// by the reader (from the file's header/length) and the writer (from the
// supplied record data's length), per spec.md §4.3's lifecycle note that
// this is the model's only interior mutation.
func (ds *DataSet) setRecordCount(n int) {
	if ds.unlimitedIdx < 0 {
		return
	}
	ds.unlimitedSize = n
}

// RecordCount returns the unlimited dimension's current size, or 0 if the
// data set has no unlimited dimension.
func (ds *DataSet) RecordCount() int {
	if ds.unlimitedIdx < 0 {
		return 0
	}
	return ds.unlimitedSize
}

// Check verifies the data set's structural invariants and returns every
// violation found, rather than failing fast on the first one. Mirrors
// cdf.Header.Check, which accumulates diagnostics the same way; unlike
// cdf's Check, it should never find anything on a DataSet built solely
// through this package's mutators (they already enforce every invariant
// atomically) — it exists for diagnosing a DataSet parsed from a file,
// whose attribute lists the header reader fills without the mutators'
// duplicate checks, and is what "ncdump3 verify" runs.
func (ds *DataSet) Check() []error {
	var errs []error

	seenDim := map[string]bool{}
	unlimitedCount := 0
	for _, d := range ds.dims {
		if seenDim[d.name] {
			errs = append(errs, &DimensionAlreadyExistsError{Name: d.name})
		}
		seenDim[d.name] = true
		if d.unlimited {
			unlimitedCount++
		}
	}
	if unlimitedCount > 1 {
		errs = append(errs, fmt.Errorf("netcdf3: multiple unlimited dimensions"))
	}

	seenVar := map[string]bool{}
	for _, v := range ds.vars {
		if seenVar[v.name] {
			errs = append(errs, &VariableAlreadyExistsError{Name: v.name})
		}
		seenVar[v.name] = true

		for i, di := range v.dimIdx {
			if di < 0 || di >= len(ds.dims) {
				errs = append(errs, fmt.Errorf("netcdf3: variable %q: invalid dimension index %d", v.name, di))
				continue
			}
			if ds.dims[di].unlimited && i != 0 {
				errs = append(errs, &UnlimitedDimensionNotFirstError{Var: v.name, Dim: ds.dims[di].name, Pos: i})
			}
		}
		if !v.typ.Valid() {
			errs = append(errs, fmt.Errorf("netcdf3: variable %q: invalid type", v.name))
		}
		errs = append(errs, checkAttrList(v.name, &v.attrs)...)
	}

	errs = append(errs, checkAttrList("", &ds.globalAttrs)...)

	return errs
}

func checkAttrList(owner string, l *attrList) []error {
	var errs []error
	seen := map[string]bool{}
	for _, a := range l.items {
		if seen[a.name] {
			errs = append(errs, &AttributeAlreadyExistsError{Owner: owner, Name: a.name})
		}
		seen[a.name] = true
		if !a.typ.Valid() {
			errs = append(errs, fmt.Errorf("netcdf3: attribute %s:%s: invalid type", owner, a.name))
		} else if a.typ != Char && a.Len() < 1 {
			errs = append(errs, fmt.Errorf("netcdf3: attribute %s:%s: numeric attribute has no values", owner, a.name))
		}
	}
	return errs
}
