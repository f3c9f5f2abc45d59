package netcdf3

import (
	"errors"
	"fmt"
)

// Sentinel codec errors, in the style of cdf/read.go's package-level
// badMagic/badVersion/badTag/badLength errors: cheap to compare with
// errors.Is, no contextual payload beyond what the wrapping fmt.Errorf
// adds at the call site.
var (
	// ErrInvalidMagic is returned when a file does not begin with "CDF".
	ErrInvalidMagic = errors.New("netcdf3: invalid magic number")

	// ErrInvalidVersion is returned when the byte following the magic is
	// neither 0x01 (classic) nor 0x02 (64-bit offset).
	ErrInvalidVersion = errors.New("netcdf3: invalid or unsupported version byte")

	// ErrUnexpectedEndOfInput is returned when the source is exhausted
	// before a header field or data element could be fully decoded.
	ErrUnexpectedEndOfInput = errors.New("netcdf3: unexpected end of input")

	// ErrOffsetOverflow is returned when a caller forces the classic
	// (32-bit offset) format but the layout planner determines that a
	// variable offset would exceed 2^31-1.
	ErrOffsetOverflow = errors.New("netcdf3: variable offset exceeds classic format's 32-bit range")
)

// InvalidNameError reports an identifier that fails the §4.1 name rule.
type InvalidNameError struct{ Name string }

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("netcdf3: invalid name %q", e.Name)
}

// InvalidTypeTagError reports an on-disk type tag outside 1..6.
type InvalidTypeTagError struct{ Tag int32 }

func (e *InvalidTypeTagError) Error() string {
	return fmt.Sprintf("netcdf3: invalid type tag %d", e.Tag)
}

// TruncatedError reports an attempt to read past the end of the source:
// Length bytes requested at Offset.
type TruncatedError struct {
	Offset, Length int64
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("netcdf3: truncated file: %d bytes at offset %d run past the end of the source", e.Length, e.Offset)
}

// DimensionAlreadyExistsError reports an add_*_dim call naming an existing dimension.
type DimensionAlreadyExistsError struct{ Name string }

func (e *DimensionAlreadyExistsError) Error() string {
	return fmt.Sprintf("netcdf3: dimension %q already exists", e.Name)
}

// UnlimitedAlreadyExistsError reports a second set_unlimited_dim call.
type UnlimitedAlreadyExistsError struct{ Existing string }

func (e *UnlimitedAlreadyExistsError) Error() string {
	return fmt.Sprintf("netcdf3: unlimited dimension already set to %q", e.Existing)
}

// VariableAlreadyExistsError reports an add_var call naming an existing variable.
type VariableAlreadyExistsError struct{ Name string }

func (e *VariableAlreadyExistsError) Error() string {
	return fmt.Sprintf("netcdf3: variable %q already exists", e.Name)
}

// AttributeAlreadyExistsError reports an add_attr call naming an existing attribute.
type AttributeAlreadyExistsError struct{ Owner, Name string }

func (e *AttributeAlreadyExistsError) Error() string {
	if e.Owner == "" {
		return fmt.Sprintf("netcdf3: global attribute %q already exists", e.Name)
	}
	return fmt.Sprintf("netcdf3: attribute %s:%s already exists", e.Owner, e.Name)
}

// DimensionNotFoundError reports a reference to an unknown dimension.
type DimensionNotFoundError struct{ Name string }

func (e *DimensionNotFoundError) Error() string {
	return fmt.Sprintf("netcdf3: dimension %q not found", e.Name)
}

// VariableNotFoundError reports a reference to an unknown variable.
type VariableNotFoundError struct{ Name string }

func (e *VariableNotFoundError) Error() string {
	return fmt.Sprintf("netcdf3: variable %q not found", e.Name)
}

// AttributeNotFoundError reports a reference to an unknown attribute.
type AttributeNotFoundError struct{ Owner, Name string }

func (e *AttributeNotFoundError) Error() string {
	if e.Owner == "" {
		return fmt.Sprintf("netcdf3: global attribute %q not found", e.Name)
	}
	return fmt.Sprintf("netcdf3: attribute %s:%s not found", e.Owner, e.Name)
}

// DimensionInUseError reports a remove_dim call on a dimension still
// referenced by one or more variables.
type DimensionInUseError struct {
	Name     string
	VarNames []string
}

func (e *DimensionInUseError) Error() string {
	return fmt.Sprintf("netcdf3: dimension %q is used by variables %v", e.Name, e.VarNames)
}

// UnlimitedDimensionNotFirstError reports a variable whose shape contains
// the unlimited dimension at a position other than 0.
type UnlimitedDimensionNotFirstError struct {
	Var string
	Dim string
	Pos int
}

func (e *UnlimitedDimensionNotFirstError) Error() string {
	return fmt.Sprintf("netcdf3: variable %q: unlimited dimension %q must appear first, found at position %d", e.Var, e.Dim, e.Pos)
}

// UnlimitedDimensionUsedMoreThanOnceError reports a variable whose shape
// repeats the unlimited dimension.
type UnlimitedDimensionUsedMoreThanOnceError struct {
	Var string
	Dim string
}

func (e *UnlimitedDimensionUsedMoreThanOnceError) Error() string {
	return fmt.Sprintf("netcdf3: variable %q: unlimited dimension %q used more than once", e.Var, e.Dim)
}

// DataTypeMismatchError reports a writer data-provider value of the wrong type.
type DataTypeMismatchError struct {
	Var       string
	Want, Got Type
}

func (e *DataTypeMismatchError) Error() string {
	return fmt.Sprintf("netcdf3: variable %q: expected data of type %s, got %s", e.Var, e.Want, e.Got)
}

// DataLengthMismatchError reports a writer data-provider slice of the wrong length.
type DataLengthMismatchError struct {
	Var       string
	Want, Got int
}

func (e *DataLengthMismatchError) Error() string {
	return fmt.Sprintf("netcdf3: variable %q: expected %d elements, got %d", e.Var, e.Want, e.Got)
}

// RecordLengthMismatchError reports a record variable whose record count
// disagrees with another record variable's.
type RecordLengthMismatchError struct {
	Var       string
	Want, Got int
}

func (e *RecordLengthMismatchError) Error() string {
	return fmt.Sprintf("netcdf3: variable %q: expected %d records (to match other record variables), got %d", e.Var, e.Want, e.Got)
}

// ValueOutOfRangeError reports a typed-coercion read that cannot
// represent a source value in the requested target type.
type ValueOutOfRangeError struct {
	Index  int
	Value  interface{}
	Target Type
}

func (e *ValueOutOfRangeError) Error() string {
	return fmt.Sprintf("netcdf3: value %v at index %d out of range for type %s", e.Value, e.Index, e.Target)
}

// RecordIndexOutOfBoundsError reports a per-record read past the current
// record count.
type RecordIndexOutOfBoundsError struct {
	Var         string
	Index       int
	RecordCount int
}

func (e *RecordIndexOutOfBoundsError) Error() string {
	return fmt.Sprintf("netcdf3: variable %q: record index %d out of bounds (record count %d)", e.Var, e.Index, e.RecordCount)
}
