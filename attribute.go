package netcdf3

import "fmt"

// Attribute is a named, typed, ordered sequence of scalar values attached
// either to a DataSet (a "global" attribute) or to a Variable. Mirrors
// cdf/header.go's attribute struct, made an exported value type here since
// spec.md's data model surfaces attributes directly to callers.
type Attribute struct {
	name   string
	typ    Type
	values interface{} // one of []int8, []uint8, []int16, []int32, []float32, []float64
}

// NewAttribute constructs an Attribute from a typed value slice. values
// must be one of []int8, []uint8, []int16, []int32, []float32, []float64;
// any other dynamic type returns an error, as does a numeric (non-[]uint8)
// values of length 0, per spec.md §3 ("length >= 1 for numeric, >= 0 for
// text").
func NewAttribute(name string, values interface{}) (Attribute, error) {
	if err := checkName(name); err != nil {
		return Attribute{}, err
	}
	t := typeOfValues(values)
	if !t.Valid() {
		return Attribute{}, fmt.Errorf("netcdf3: attribute %q: unsupported value type %T", name, values)
	}
	if t != Char && valueLen(values) < 1 {
		return Attribute{}, fmt.Errorf("netcdf3: attribute %q: numeric attributes require at least one value", name)
	}
	return Attribute{name: name, typ: t, values: values}, nil
}

// Name returns the attribute's current name.
func (a Attribute) Name() string { return a.name }

// Type returns the attribute's scalar type tag.
func (a Attribute) Type() Type { return a.typ }

// Len returns the number of values the attribute holds.
func (a Attribute) Len() int { return valueLen(a.values) }

// Values returns the attribute's values as their underlying typed slice:
// []int8, []uint8, []int16, []int32, []float32, or []float64. Text
// attributes (Type() == Char) are returned as []uint8, preserving any
// embedded NUL bytes verbatim, per spec.md §9.
func (a Attribute) Values() interface{} { return a.values }

// Text returns the attribute's value as a string, valid only when Type()
// == Char.
func (a Attribute) Text() (string, bool) {
	b, ok := a.values.([]uint8)
	if !ok {
		return "", false
	}
	return string(b), true
}

func (a Attribute) String() string {
	if a.typ == Char {
		s, _ := a.Text()
		return fmt.Sprintf("%s char %q", a.name, s)
	}
	return fmt.Sprintf("%s %s = %v", a.name, a.typ, a.values)
}

// attrList is an ordered, name-indexed collection of attributes shared by
// DataSet (global attributes) and varRecord (per-variable attributes).
// Mirrors the design note on "name-keyed lookup with preserved insertion
// order": a slice for iteration order plus a map side-index for lookup.
type attrList struct {
	items []Attribute
	index map[string]int
}

func newAttrList() attrList {
	return attrList{index: make(map[string]int)}
}

func (l *attrList) has(name string) bool {
	_, ok := l.index[name]
	return ok
}

func (l *attrList) get(name string) (Attribute, bool) {
	i, ok := l.index[name]
	if !ok {
		return Attribute{}, false
	}
	return l.items[i], true
}

func (l *attrList) add(a Attribute) {
	l.index[a.name] = len(l.items)
	l.items = append(l.items, a)
}

func (l *attrList) remove(name string) bool {
	i, ok := l.index[name]
	if !ok {
		return false
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	delete(l.index, name)
	for n, idx := range l.index {
		if idx > i {
			l.index[n] = idx - 1
		}
	}
	return true
}

func (l *attrList) rename(old, new string) bool {
	i, ok := l.index[old]
	if !ok {
		return false
	}
	l.items[i].name = new
	delete(l.index, old)
	l.index[new] = i
	return true
}

func (l *attrList) clone() attrList {
	out := newAttrList()
	out.items = append([]Attribute(nil), l.items...)
	for k, v := range l.index {
		out.index[k] = v
	}
	return out
}

func (l *attrList) names() []string {
	r := make([]string, len(l.items))
	for i, a := range l.items {
		r[i] = a.name
	}
	return r
}
