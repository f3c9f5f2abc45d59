package netcdf3

import (
	"encoding/binary"
	"io"
)

var zeroPad [4]byte

// writeString encodes s as NetCDF-3's (int32 byte count, bytes) string
// representation, padded with zero bytes to a multiple of 4. Mirrors
// cdf/write.go's writeString exactly.
func writeString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.BigEndian, int32(len(s))); err != nil {
		return err
	}
	if _, err := w.Write([]byte(s)); err != nil {
		return err
	}
	p := 4 - len(s)&3
	if p < 4 {
		_, err := w.Write(zeroPad[:p])
		return err
	}
	return nil
}

// writeAttr encodes one attribute: name, type tag, value count, values,
// trailing zero padding. Mirrors cdf/write.go's attribute.writeTo.
func writeAttr(w io.Writer, a Attribute) error {
	if err := writeString(w, a.name); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, int32(a.typ)); err != nil {
		return err
	}

	if a.typ == Char {
		b, _ := a.values.([]uint8)
		return writeString(w, string(b))
	}

	n := valueLen(a.values)
	if err := binary.Write(w, binary.BigEndian, int32(n)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, a.values); err != nil {
		return err
	}
	byteLen := n * a.typ.Size()
	if p := 4 - byteLen&3; p < 4 {
		_, err := w.Write(zeroPad[:p])
		return err
	}
	return nil
}

func writeAttrList(w io.Writer, l *attrList) error {
	if len(l.items) == 0 {
		return binary.Write(w, binary.BigEndian, [2]int32{tagAbsent, 0})
	}
	if err := binary.Write(w, binary.BigEndian, [2]int32{tagAttribute, int32(len(l.items))}); err != nil {
		return err
	}
	for _, a := range l.items {
		if err := writeAttr(w, a); err != nil {
			return err
		}
	}
	return nil
}

// encodedVsize applies cdf/header.go's setComputed oddity: the NetCDF
// grammar's vsize field is a signed 32-bit NON_NEG, so a raw size that
// would not fit is encoded as -1 rather than silently truncated.
func encodedVsize(padded int64) int32 {
	if padded > (1<<31 - 4) {
		return -1
	}
	return int32(padded)
}

// writeVar encodes one variable entry: name, dim id list, attribute list,
// type tag, vsize, and begin offset (4 or 8 bytes per offs64). Mirrors
// cdf/write.go's variable.writeTo.
func writeVar(w io.Writer, ds *DataSet, idx int, lay *varLayout, offs64 bool) error {
	rec := &ds.vars[idx]
	if err := writeString(w, rec.name); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, int32(len(rec.dimIdx))); err != nil {
		return err
	}
	for _, di := range rec.dimIdx {
		if err := binary.Write(w, binary.BigEndian, int32(di)); err != nil {
			return err
		}
	}
	if err := writeAttrList(w, &rec.attrs); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, int32(rec.typ)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, encodedVsize(pad4(lay.vsizeRaw))); err != nil {
		return err
	}
	if !offs64 {
		return binary.Write(w, binary.BigEndian, int32(lay.begin))
	}
	return binary.Write(w, binary.BigEndian, lay.begin)
}

// writeHeader encodes the complete file header: magic, numrecs, dimension
// list, global attribute list, variable list. lay supplies each variable's
// computed begin/vsize (see layout.go); numRecs is the value placed in the
// numrecs field (always the true record count for this package's writer,
// never the streaming sentinel — see §9's open-question resolution).
// Mirrors cdf/write.go's Header.WriteHeader.
func writeHeader(w io.Writer, ds *DataSet, v version, lay *layout, numRecs int32) error {
	if err := binary.Write(w, binary.BigEndian, [4]byte{magicPrefix[0], magicPrefix[1], magicPrefix[2], byte(v)}); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, numRecs); err != nil {
		return err
	}

	if len(ds.dims) == 0 {
		if err := binary.Write(w, binary.BigEndian, [2]int32{tagAbsent, 0}); err != nil {
			return err
		}
	} else {
		if err := binary.Write(w, binary.BigEndian, [2]int32{tagDimension, int32(len(ds.dims))}); err != nil {
			return err
		}
		for _, d := range ds.dims {
			if err := writeString(w, d.name); err != nil {
				return err
			}
			size := int32(d.size)
			if d.unlimited {
				size = 0
			}
			if err := binary.Write(w, binary.BigEndian, size); err != nil {
				return err
			}
		}
	}

	if err := writeAttrList(w, &ds.globalAttrs); err != nil {
		return err
	}

	if len(ds.vars) == 0 {
		if err := binary.Write(w, binary.BigEndian, [2]int32{tagAbsent, 0}); err != nil {
			return err
		}
	} else {
		if err := binary.Write(w, binary.BigEndian, [2]int32{tagVariable, int32(len(ds.vars))}); err != nil {
			return err
		}
		offs64 := v == version64BitOffset
		for i := range ds.vars {
			if err := writeVar(w, ds, i, lay.entries[i], offs64); err != nil {
				return err
			}
		}
	}

	return nil
}

// countingWriter discards bytes but counts them, for measuring an encoded
// header's length without materializing it. Mirrors cdf/write.go's
// nullWriter.
type countingWriter int64

func (c *countingWriter) Write(p []byte) (int, error) {
	*c += countingWriter(len(p))
	return len(p), nil
}

// headerSize returns the byte length a header for ds would encode to under
// version v, using placeholder (zero) offsets/vsizes — valid because the
// encoded width of those fields depends only on v, not on their values.
func headerSize(ds *DataSet, v version) int64 {
	placeholder := &layout{entries: make(map[int]*varLayout, len(ds.vars))}
	for i := range ds.vars {
		placeholder.entries[i] = &varLayout{}
	}
	var cw countingWriter
	_ = writeHeader(&cw, ds, v, placeholder, streamingNumRecs)
	return int64(cw)
}
