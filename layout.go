package netcdf3

// varLayout is the computed on-disk placement of one variable: its begin
// offset, its unpadded per-record (record variable) or whole-variable
// (fixed variable) byte span, and whether it is a record variable.
//
// Mirrors cdf/header.go's variable.{begin,strides}, generalized from that
// package's single computed-at-Define-time struct into a value produced
// fresh by planLayout for the record count being read or written.
type varLayout struct {
	begin    int64
	vsizeRaw int64
	isRecord bool
}

// layout is a complete placement plan for a DataSet at a given record
// count: every variable's varLayout, the chosen on-disk version, and the
// record stride (the byte distance from one record to the same record
// variable's next record).
type layout struct {
	version      version
	headerLen    int64 // pad4'd header length; data begins here
	entries      map[int]*varLayout
	recordStride int64
}

// recordSlab returns the byte offset of the first record in the first
// record variable and the shared record stride, or (0, 0) if ds has no
// record variables. Mirrors cdf/header.go's Header.slabs().
func recordSlab(ds *DataSet, lay *layout) (offs, stride int64) {
	for i := range ds.vars {
		if e, ok := lay.entries[i]; ok && e.isRecord {
			return e.begin, lay.recordStride
		}
	}
	return 0, 0
}

// deriveRecordCount computes the true record count from a source's length,
// independent of whatever the on-disk numrecs field says. Mirrors
// cdf/header.go's Header.NumRecs(fsize): size < 0 (length unknown) or a
// data set with no record variables (stride == 0) both report 0, and a
// length that doesn't even reach the first record also reports 0 rather
// than going negative.
func deriveRecordCount(ds *DataSet, lay *layout, size int64) int {
	if size < 0 {
		return 0
	}
	offs, stride := recordSlab(ds, lay)
	if stride == 0 || size < offs {
		return 0
	}
	return int((size - offs) / stride)
}

// resolveRecordCount turns a raw on-disk numrecs value into the data set's
// true record count. A non-negative, non-sentinel value is trusted as-is;
// the streamingNumRecs sentinel (or any other negative value some writer
// may have left behind) means "unknown", and the count is instead derived
// from the source's length via deriveRecordCount, the same way
// cdf/numrecs.go's UpdateNumRecs derives it via Header.NumRecs.
func resolveRecordCount(ds *DataSet, lay *layout, rawNumRecs int32, size int64) int {
	if rawNumRecs >= 0 {
		return int(rawNumRecs)
	}
	return deriveRecordCount(ds, lay, size)
}

// planLayout computes a DataSet's on-disk placement for recordCount
// records. forced selects VersionClassic or VersionOffset64 to require
// that format (failing with ErrOffsetOverflow if classic cannot hold the
// result); VersionAuto promotes to 64-bit offsets only if required.
//
// Mirrors cdf/header.go's Header.Define: offsets are assigned in two
// passes (fixed variables first, then record variables, each in
// declaration order — §4.5), using a header length computed as if every
// offset were 8 bytes wide; if the resulting offsets all fit within a
// 32-bit signed range, the plan is relabeled classic without recomputing
// those (slightly conservative) offsets, exactly as cdf's Define does.
func planLayout(ds *DataSet, recordCount int, forced Version) (*layout, error) {
	lay := &layout{
		version: version64BitOffset,
		entries: make(map[int]*varLayout, len(ds.vars)),
	}
	lay.headerLen = pad4(headerSize(ds, version64BitOffset))

	offs := lay.headerLen
	var last int64
	var recordVarIdx []int
	for i := range ds.vars {
		v := Variable{ds: ds, idx: i}
		if v.IsRecordVariable() {
			recordVarIdx = append(recordVarIdx, i)
			continue
		}
		raw := int64(v.fixedElementCount()) * int64(v.Type().Size())
		lay.entries[i] = &varLayout{begin: offs, vsizeRaw: raw}
		last = offs
		offs += pad4(raw)
	}

	var slab int64
	for _, i := range recordVarIdx {
		v := Variable{ds: ds, idx: i}
		raw := int64(v.fixedElementCount()) * int64(v.Type().Size())
		lay.entries[i] = &varLayout{begin: offs, vsizeRaw: raw, isRecord: true}
		last = offs
		if len(recordVarIdx) == 1 {
			slab = raw
		} else {
			slab += pad4(raw)
		}
		offs += pad4(raw)
	}
	lay.recordStride = slab

	// Mirrors cdf/header.go's Header.Define: only the begin offset of the
	// very last variable assigned (in fixed-then-record order) needs to fit
	// a 32-bit signed range for the classic format to be usable.
	requires64 := last >= (1 << 31)

	switch forced {
	case VersionClassic:
		if requires64 {
			return nil, ErrOffsetOverflow
		}
		lay.version = versionClassic
	case VersionOffset64:
		lay.version = version64BitOffset
	default: // VersionAuto
		if requires64 {
			lay.version = version64BitOffset
		} else {
			lay.version = versionClassic
		}
	}

	return lay, nil
}
