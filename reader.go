package netcdf3

import (
	"encoding/binary"
	"io"
)

// File is an open handle on a NetCDF-3 classic or 64-bit-offset file: the
// parsed DataSet plus the on-disk layout needed to address its variables'
// data. Mirrors cdf.File, generalized to expose typed and coercing reads
// directly rather than the strider/Reader indirection cdf.File.Reader
// returns, since spec.md §4.6 asks for whole-variable and per-record reads
// as first-class operations.
type File struct {
	ra  io.ReaderAt
	ds  *DataSet
	lay *layout
}

// Open parses the header at the start of ra and returns a File for
// reading its variables' data. Mirrors cdf.Open.
//
// If ra also implements io.Seeker (as *os.File and *bytes.Reader do), a
// numrecs field left at the streamingNumRecs sentinel is resolved against
// ra's length rather than left as an unusable negative count, per §4.4 and
// the same way cdf/numrecs.go's UpdateNumRecs resolves it against a file's
// stat'd size.
func Open(ra io.ReaderAt) (*File, error) {
	ds, lay, numrecs, err := readHeader(io.NewSectionReader(ra, 0, 1<<62))
	if err != nil {
		return nil, err
	}
	if numrecs < 0 {
		ds.setRecordCount(resolveRecordCount(ds, lay, numrecs, sourceSize(ra)))
	}
	return &File{ra: ra, ds: ds, lay: lay}, nil
}

// sourceSize reports ra's total length, or -1 if ra does not also
// implement io.Seeker. It seeks to the end and leaves the offset there,
// which is safe even for a source also being read concurrently through
// ReadAt, whose contract guarantees it does not depend on the current seek
// offset.
func sourceSize(ra io.ReaderAt) int64 {
	s, ok := ra.(io.Seeker)
	if !ok {
		return -1
	}
	n, err := s.Seek(0, io.SeekEnd)
	if err != nil {
		return -1
	}
	return n
}

// DataSet returns the file's parsed data model. Mutating it (adding or
// renaming dimensions, variables, or attributes) has no effect on the
// already-open file; use Write to persist a modified DataSet.
func (f *File) DataSet() *DataSet { return f.ds }

// Version reports which on-disk format the file was read as.
func (f *File) Version() Version {
	if f.lay.version == version64BitOffset {
		return VersionOffset64
	}
	return VersionClassic
}

// Dimensions returns the names of the data set's dimensions, in declaration
// order, if v is "". Given a variable name instead, it returns that
// variable's shape as dimension names, in shape order, or nil if v does not
// name a variable. Mirrors cdf.Header.Dimensions.
func (f *File) Dimensions(v string) []string {
	if v == "" {
		dims := f.ds.Dims()
		out := make([]string, len(dims))
		for i, d := range dims {
			out[i] = d.Name()
		}
		return out
	}
	vv, ok := f.ds.Var(v)
	if !ok {
		return nil
	}
	return vv.DimNames()
}

// Lengths returns the sizes of the data set's dimensions, in the same order
// as Dimensions(""), if v is "". Given a variable name instead, it returns
// that variable's shape as dimension sizes, in shape order, or nil if v
// does not name a variable. Mirrors cdf.Header.Lengths.
func (f *File) Lengths(v string) []int {
	if v == "" {
		dims := f.ds.Dims()
		out := make([]int, len(dims))
		for i, d := range dims {
			out[i] = d.Size()
		}
		return out
	}
	vv, ok := f.ds.Var(v)
	if !ok {
		return nil
	}
	dims := vv.Dims()
	out := make([]int, len(dims))
	for i, d := range dims {
		out[i] = d.Size()
	}
	return out
}

// Attributes returns the names of the data set's global attributes, in
// insertion order, if v is "". Given a variable name instead, it returns
// that variable's attribute names, or nil if v does not name a variable.
// Mirrors cdf.Header.Attributes.
func (f *File) Attributes(v string) []string {
	if v == "" {
		return attrNamesOf(f.ds.Attrs(""))
	}
	if _, ok := f.ds.Var(v); !ok {
		return nil
	}
	return attrNamesOf(f.ds.Attrs(v))
}

func attrNamesOf(attrs []Attribute) []string {
	out := make([]string, len(attrs))
	for i, a := range attrs {
		out[i] = a.Name()
	}
	return out
}

// GetAttribute returns the values of the attribute named a attached to v
// ("" for a global attribute), as its underlying typed slice ([]int8,
// []uint8, []int16, []int32, []float32, or []float64), or nil if no such
// attribute exists. Mirrors cdf.Header.GetAttribute.
func (f *File) GetAttribute(v, a string) interface{} {
	attr, ok := f.ds.Attr(v, a)
	if !ok {
		return nil
	}
	return attr.Values()
}

func (f *File) varLayout(name string) (Variable, *varLayout, error) {
	v, ok := f.ds.Var(name)
	if !ok {
		return Variable{}, nil, &VariableNotFoundError{Name: name}
	}
	lay, ok := f.lay.entries[v.idx]
	if !ok {
		return Variable{}, nil, &VariableNotFoundError{Name: name}
	}
	return v, lay, nil
}

// readBytes reads exactly len(buf) bytes at off, turning a short read at
// EOF into TruncatedError rather than the bare io.ErrUnexpectedEOF a
// caller would otherwise have to recognize.
func (f *File) readBytes(buf []byte, off int64) error {
	n, err := f.ra.ReadAt(buf, off)
	if n == len(buf) {
		return nil
	}
	if err != nil && err != io.EOF {
		return err
	}
	return &TruncatedError{Offset: off, Length: int64(len(buf))}
}

// readWhole reads a fixed variable's single contiguous block, or a record
// variable's per-record blocks across every current record, into one
// contiguous buffer in the variable's native byte order.
func (f *File) readWhole(v Variable, lay *varLayout) ([]byte, error) {
	if !lay.isRecord {
		buf := make([]byte, lay.vsizeRaw)
		if err := f.readBytes(buf, lay.begin); err != nil {
			return nil, err
		}
		return buf, nil
	}
	n := f.ds.RecordCount()
	buf := make([]byte, lay.vsizeRaw*int64(n))
	for i := 0; i < n; i++ {
		off := lay.begin + int64(i)*f.lay.recordStride
		if err := f.readBytes(buf[int64(i)*lay.vsizeRaw:int64(i+1)*lay.vsizeRaw], off); err != nil {
			return nil, err
		}
	}
	return buf, nil
}

// readOneRecord reads a single record's worth of bytes for a record
// variable, per §4.6's per-record read operation. recordIdx must be within
// [0, RecordCount).
func (f *File) readOneRecord(v Variable, lay *varLayout, recordIdx int) ([]byte, error) {
	n := f.ds.RecordCount()
	if recordIdx < 0 || recordIdx >= n {
		return nil, &RecordIndexOutOfBoundsError{Var: v.Name(), Index: recordIdx, RecordCount: n}
	}
	buf := make([]byte, lay.vsizeRaw)
	off := lay.begin + int64(recordIdx)*f.lay.recordStride
	if err := f.readBytes(buf, off); err != nil {
		return nil, err
	}
	return buf, nil
}

func decode(buf []byte, typ Type, n int) interface{} {
	values := zeroValues(typ, n)
	if typ == Char {
		copy(values.([]uint8), buf)
		return values
	}
	_ = binary.Read(newSliceReader(buf), binary.BigEndian, values)
	return values
}

// sliceReader adapts a []byte to io.Reader without an extra allocation
// round trip through bytes.Reader's larger API.
type sliceReader []byte

func (s *sliceReader) Read(p []byte) (int, error) {
	n := copy(p, *s)
	*s = (*s)[n:]
	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, nil
}

func newSliceReader(b []byte) *sliceReader { r := sliceReader(b); return &r }

// ReadVar reads a variable's entire data — every record, for a record
// variable — and returns it as a typed slice ([]int8, []uint8, []int16,
// []int32, []float32, or []float64) matching the variable's declared
// type.
func (f *File) ReadVar(name string) (interface{}, error) {
	v, lay, err := f.varLayout(name)
	if err != nil {
		return nil, err
	}
	buf, err := f.readWhole(v, lay)
	if err != nil {
		return nil, err
	}
	return decode(buf, v.Type(), v.wholeElementCount()), nil
}

// ReadRecord reads one record's worth of data from a record variable.
// Fails with VariableNotFoundError if name does not name a record
// variable, or RecordIndexOutOfBoundsError if recordIdx is out of range.
func (f *File) ReadRecord(name string, recordIdx int) (interface{}, error) {
	v, lay, err := f.varLayout(name)
	if err != nil {
		return nil, err
	}
	if !lay.isRecord {
		return nil, &VariableNotFoundError{Name: name}
	}
	buf, err := f.readOneRecord(v, lay, recordIdx)
	if err != nil {
		return nil, err
	}
	return decode(buf, v.Type(), v.fixedElementCount()), nil
}

// ReadVarAs reads a variable's entire data and coerces it to target,
// per §4.6's coercion rules: integer widening is always exact; integer
// narrowing and float-to-integer truncation are range-checked and fail
// with ValueOutOfRangeError; any numeric type converts to float32/float64
// without a range check (subject to ordinary floating-point rounding);
// Char and Int8 interconvert only through an explicit ReadVarAs call,
// never implicitly.
func (f *File) ReadVarAs(name string, target Type) (interface{}, error) {
	native, err := f.ReadVar(name)
	if err != nil {
		return nil, err
	}
	return convertValues(native, target)
}

// ReadRecordAs is ReadRecord followed by the same coercion ReadVarAs
// applies.
func (f *File) ReadRecordAs(name string, recordIdx int, target Type) (interface{}, error) {
	native, err := f.ReadRecord(name, recordIdx)
	if err != nil {
		return nil, err
	}
	return convertValues(native, target)
}
