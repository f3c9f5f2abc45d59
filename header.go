package netcdf3

import "fmt"

// version is the file-format variant: classic (32-bit offsets) or 64-bit
// offset. Mirrors cdf/header.go's unexported version type and its _V1/_V2
// constants.
type version byte

const (
	versionClassic     version = 1
	version64BitOffset version = 2
)

func (v version) String() string {
	switch v {
	case versionClassic:
		return "classic"
	case version64BitOffset:
		return "64-bit-offset"
	}
	return fmt.Sprintf("version(%d)", byte(v))
}

// Version selects the on-disk format a DataSet is written as. VersionAuto
// lets the layout planner choose classic unless 64-bit offsets are
// required (§4.5's promotion rule).
type Version int

const (
	// VersionAuto promotes to VersionOffset64 only if the layout planner
	// determines it is required.
	VersionAuto Version = iota
	// VersionClassic forces the 32-bit-offset "classic" format; the
	// writer fails with ErrOffsetOverflow if the layout does not fit.
	VersionClassic
	// VersionOffset64 forces the 64-bit-offset format.
	VersionOffset64
)

// On-disk list tags, per the classic format spec's NC_DIMENSION (0x0A),
// NC_VARIABLE (0x0B), NC_ATTRIBUTE (0x0C), and ABSENT (0x00) markers.
// Mirrors the literal tag values read.go/write.go switch on.
const (
	tagAbsent    int32 = 0x00
	tagDimension int32 = 0x0A
	tagVariable  int32 = 0x0B
	tagAttribute int32 = 0x0C
)

var magicPrefix = [3]byte{'C', 'D', 'F'}

// streamingNumRecs is the sentinel value of the on-disk numrecs field that
// means "indeterminate; compute from file length" (§9's open question,
// resolved against cdf/numrecs.go's _STREAMING).
const streamingNumRecs int32 = -1 // 0xFFFFFFFF as a signed int32

// numRecsOffset is the fixed byte position of the numrecs field, immediately
// following the 3-byte magic and 1-byte version. Mirrors cdf/numrecs.go's
// _NumRecsOffset.
const numRecsOffset = 4
