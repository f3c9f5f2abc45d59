package netcdf3

import (
	"encoding/binary"
	"io"
	"log"
)

// readString decodes NetCDF-3's (int32 byte count, bytes) string
// representation, discarding the trailing zero padding. Mirrors
// cdf/read.go's readString.
func readString(r io.Reader) (string, error) {
	var n int32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return "", err
	}
	if n < 0 {
		return "", ErrUnexpectedEndOfInput
	}
	buf := make([]byte, pad4Len(int(n)))
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf[:n]), nil
}

func readAttr(r io.Reader) (Attribute, error) {
	name, err := readString(r)
	if err != nil {
		return Attribute{}, err
	}
	var tag int32
	if err := binary.Read(r, binary.BigEndian, &tag); err != nil {
		return Attribute{}, err
	}
	typ := Type(tag)
	if !typ.Valid() {
		return Attribute{}, &InvalidTypeTagError{Tag: tag}
	}

	if typ == Char {
		text, err := readString(r)
		if err != nil {
			return Attribute{}, err
		}
		return Attribute{name: name, typ: Char, values: []uint8(text)}, nil
	}

	var n int32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return Attribute{}, err
	}
	if n < 0 {
		return Attribute{}, ErrUnexpectedEndOfInput
	}

	// Byte layout on disk is padded to a 4-byte boundary; narrow element
	// types (int8, int16) may need more elements read than nelems reports.
	// Mirrors cdf/read.go's attribute.readFrom padding table.
	var values interface{}
	switch typ {
	case Int8:
		buf := make([]int8, pad4Len(int(n)))
		if err := binary.Read(r, binary.BigEndian, buf); err != nil {
			return Attribute{}, err
		}
		values = buf[:n]
	case Int16:
		padded := (int(n) + 1) &^ 1
		buf := make([]int16, padded)
		if err := binary.Read(r, binary.BigEndian, buf); err != nil {
			return Attribute{}, err
		}
		values = buf[:n]
	case Int32:
		buf := make([]int32, n)
		if err := binary.Read(r, binary.BigEndian, buf); err != nil {
			return Attribute{}, err
		}
		values = buf
	case Float32:
		buf := make([]float32, n)
		if err := binary.Read(r, binary.BigEndian, buf); err != nil {
			return Attribute{}, err
		}
		values = buf
	case Float64:
		buf := make([]float64, n)
		if err := binary.Read(r, binary.BigEndian, buf); err != nil {
			return Attribute{}, err
		}
		values = buf
	}
	return Attribute{name: name, typ: typ, values: values}, nil
}

func readVar(r io.Reader, offs64 bool) (name string, dimIdx []int32, attrs attrList, typ Type, vsize int32, begin int64, err error) {
	if name, err = readString(r); err != nil {
		return
	}
	var n int32
	if err = binary.Read(r, binary.BigEndian, &n); err != nil {
		return
	}
	if n < 0 {
		err = ErrUnexpectedEndOfInput
		return
	}
	dimIdx = make([]int32, n)
	if err = binary.Read(r, binary.BigEndian, dimIdx); err != nil {
		return
	}

	var tag int32
	if err = binary.Read(r, binary.BigEndian, &tag); err != nil {
		return
	}
	var nattr int32
	if err = binary.Read(r, binary.BigEndian, &nattr); err != nil {
		return
	}
	attrs = newAttrList()
	switch tag {
	case tagAbsent:
		if nattr != 0 {
			err = ErrUnexpectedEndOfInput
			return
		}
	case tagAttribute:
		for i := int32(0); i < nattr; i++ {
			var a Attribute
			if a, err = readAttr(r); err != nil {
				return
			}
			attrs.add(a)
		}
	default:
		err = ErrUnexpectedEndOfInput
		return
	}

	var tt int32
	if err = binary.Read(r, binary.BigEndian, &tt); err != nil {
		return
	}
	typ = Type(tt)
	if !typ.Valid() {
		err = &InvalidTypeTagError{Tag: tt}
		return
	}

	if err = binary.Read(r, binary.BigEndian, &vsize); err != nil {
		return
	}

	if !offs64 {
		var b32 int32
		if err = binary.Read(r, binary.BigEndian, &b32); err != nil {
			return
		}
		begin = int64(b32)
		return
	}
	err = binary.Read(r, binary.BigEndian, &begin)
	return
}

// readHeader parses a complete NetCDF-3 file header from r, positioned at
// the start of the file, and returns the DataSet it describes together
// with the layout taken directly from the on-disk begin fields (rather
// than replanned, so that a round-tripped file's physical layout is
// observed exactly as written; per-variable sizes are recomputed from each
// shape, not read from vsize) and the raw numrecs field as read from
// disk, which the caller resolves against the source's length (see
// resolveRecordCount) since this function only sees a plain io.Reader.
//
// Mirrors cdf/read.go's ReadHeader: section order is expected to be
// dimensions, global attributes, variables but is tolerated out of order,
// logging a diagnostic (§4.4's carried-forward tolerance) rather than
// failing.
func readHeader(r io.Reader) (*DataSet, *layout, int32, error) {
	var magic [3]byte
	if err := binary.Read(r, binary.BigEndian, &magic); err != nil {
		return nil, nil, 0, err
	}
	if magic != magicPrefix {
		return nil, nil, 0, ErrInvalidMagic
	}

	var v byte
	if err := binary.Read(r, binary.BigEndian, &v); err != nil {
		return nil, nil, 0, err
	}
	ver := version(v)
	if ver != versionClassic && ver != version64BitOffset {
		return nil, nil, 0, ErrInvalidVersion
	}

	var numrecs int32
	if err := binary.Read(r, binary.BigEndian, &numrecs); err != nil {
		return nil, nil, 0, err
	}

	// The on-disk numrecs field may carry the streamingNumRecs sentinel
	// (§4.4), which SetUnlimitedDim/setRecordCount must never see:
	// SetUnlimitedDim rejects a negative size and setRecordCount would store
	// it unchecked. Parsing proceeds with a provisional count of
	// 0; resolveRecordCount fixes it up once the caller knows the source's
	// length and this function's layout has located the record variables.
	recordCountHint := int(numrecs)
	if numrecs == streamingNumRecs || numrecs < 0 {
		recordCountHint = 0
	}

	ds := NewDataSet()
	lay := &layout{version: ver, entries: make(map[int]*varLayout)}

	for section := 0; section < 3; section++ {
		var tag, nelems int32
		if err := binary.Read(r, binary.BigEndian, &tag); err != nil {
			return nil, nil, 0, err
		}
		if err := binary.Read(r, binary.BigEndian, &nelems); err != nil {
			return nil, nil, 0, err
		}
		if nelems < 0 {
			return nil, nil, 0, ErrUnexpectedEndOfInput
		}

		switch tag {
		case tagAbsent:
			if nelems != 0 {
				return nil, nil, 0, ErrUnexpectedEndOfInput
			}

		case tagDimension:
			if section != 0 {
				log.Printf("netcdf3: dimension section out of order at position %d", section)
			}
			for i := int32(0); i < nelems; i++ {
				name, err := readString(r)
				if err != nil {
					return nil, nil, 0, err
				}
				var size int32
				if err := binary.Read(r, binary.BigEndian, &size); err != nil {
					return nil, nil, 0, err
				}
				if size == 0 {
					if _, err := ds.SetUnlimitedDim(name, recordCountHint); err != nil {
						return nil, nil, 0, err
					}
				} else if _, err := ds.AddFixedDim(name, int(size)); err != nil {
					return nil, nil, 0, err
				}
			}

		case tagAttribute:
			if section != 1 {
				log.Printf("netcdf3: global attribute section out of order at position %d", section)
			}
			for i := int32(0); i < nelems; i++ {
				a, err := readAttr(r)
				if err != nil {
					return nil, nil, 0, err
				}
				ds.globalAttrs.add(a)
			}

		case tagVariable:
			if section != 2 {
				log.Printf("netcdf3: variable section out of order at position %d", section)
			}
			for i := int32(0); i < nelems; i++ {
				name, dimIdx32, attrs, typ, _, begin, err := readVar(r, ver == version64BitOffset)
				if err != nil {
					return nil, nil, 0, err
				}
				dimNames := make([]string, len(dimIdx32))
				for j, di := range dimIdx32 {
					if int(di) < 0 || int(di) >= len(ds.dims) {
						return nil, nil, 0, ErrUnexpectedEndOfInput
					}
					dimNames[j] = ds.dims[di].name
				}
				vv, err := ds.AddVar(name, dimNames, typ)
				if err != nil {
					return nil, nil, 0, err
				}
				ds.vars[vv.idx].attrs = attrs
				isRecord := vv.IsRecordVariable()
				// The on-disk vsize field is redundant with the variable's
				// shape (and may even be the -1 overflow sentinel), so the
				// unpadded size is recomputed from the shape rather than
				// trusted from disk.
				raw := int64(vv.fixedElementCount()) * int64(typ.Size())
				lay.entries[vv.idx] = &varLayout{begin: begin, vsizeRaw: raw, isRecord: isRecord}
			}
		default:
			return nil, nil, 0, ErrUnexpectedEndOfInput
		}
	}

	ds.setRecordCount(recordCountHint)
	fixRecordStrides(ds, lay)

	return ds, lay, numrecs, nil
}

// fixRecordStrides derives the shared record stride from the record
// variables' unpadded per-record sizes (as recomputed from their shapes by
// readHeader, not their on-disk vsize fields), applying §4.5's single-record-variable
// exception: with exactly one record variable, consecutive records are
// packed with no inter-record padding, so the stride is that variable's
// unpadded per-record size rather than its padded vsize.
//
// Mirrors cdf/header.go's Header.fixRecordStrides.
func fixRecordStrides(ds *DataSet, lay *layout) {
	var recordVarIdx []int
	for i := range ds.vars {
		if e, ok := lay.entries[i]; ok && e.isRecord {
			recordVarIdx = append(recordVarIdx, i)
		}
	}
	if len(recordVarIdx) == 0 {
		return
	}
	if len(recordVarIdx) == 1 {
		lay.recordStride = lay.entries[recordVarIdx[0]].vsizeRaw
		return
	}
	var stride int64
	for _, i := range recordVarIdx {
		stride += pad4(lay.entries[i].vsizeRaw)
	}
	lay.recordStride = stride
}
