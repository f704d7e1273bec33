package nvlist

import (
	"encoding/binary"
	"strings"
)

var bbe = binary.BigEndian

func xdrPad(n int) int { return (4 - n%4) % 4 }

func appendXDRBytes(buf []byte, b []byte) []byte {
	buf = bbe.AppendUint32(buf, uint32(len(b)))
	buf = append(buf, b...)
	for i := 0; i < xdrPad(len(b)); i++ {
		buf = append(buf, 0)
	}
	return buf
}

func solPack(l *solList) ([]byte, error) {
	body, err := solEncodeList(l)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 0, solPreambleSize+len(body))
	buf = append(buf, solEncodeXDR, solEndianBig, 0, 0)
	return append(buf, body...), nil
}

func solEncodeList(l *solList) ([]byte, error) {
	buf := bbe.AppendUint32(nil, solVersion)
	buf = bbe.AppendUint32(buf, solUniqueName)
	for i := range l.pairs {
		rec, err := solEncodePair(&l.pairs[i])
		if err != nil {
			return nil, err
		}
		buf = append(buf, rec...)
	}
	// zero encsize/decsize terminate the list
	buf = bbe.AppendUint32(buf, 0)
	buf = bbe.AppendUint32(buf, 0)
	return buf, nil
}

func solEncodePair(p *pair) ([]byte, error) {
	code, ok := solTag(p.typ)
	if !ok {
		return nil, ErrUnsupported
	}
	data, nelem, err := solEncodeData(p.datum)
	if err != nil {
		return nil, err
	}

	var rec []byte
	rec = appendXDRBytes(rec, []byte(p.name))
	rec = bbe.AppendUint32(rec, code)
	rec = bbe.AppendUint32(rec, nelem)
	rec = append(rec, data...)

	// encsize counts the whole record, the two size fields included;
	// decsize mirrors it since nothing here models in-memory size
	size := uint32(len(rec) + 8)
	out := bbe.AppendUint32(make([]byte, 0, len(rec)+8), size)
	out = bbe.AppendUint32(out, size)
	return append(out, rec...), nil
}

func appendXDRInt(buf []byte, u uint32) []byte { return bbe.AppendUint32(buf, u) }

func solEncodeData(v Value) (data []byte, nelem uint32, err error) {
	switch v := v.(type) {
	case Null:
		return nil, 0, nil
	case Bool:
		if v {
			return appendXDRInt(nil, 1), 1, nil
		}
		return appendXDRInt(nil, 0), 1, nil
	case Int8:
		return appendXDRInt(nil, uint32(int32(v))), 1, nil
	case Uint8:
		return appendXDRInt(nil, uint32(v)), 1, nil
	case Int16:
		return appendXDRInt(nil, uint32(int32(v))), 1, nil
	case Uint16:
		return appendXDRInt(nil, uint32(v)), 1, nil
	case Int32:
		return appendXDRInt(nil, uint32(v)), 1, nil
	case Uint32:
		return appendXDRInt(nil, uint32(v)), 1, nil
	case Int64:
		return bbe.AppendUint64(nil, uint64(v)), 1, nil
	case Uint64:
		return bbe.AppendUint64(nil, uint64(v)), 1, nil
	case String:
		return appendXDRBytes(nil, []byte(v)), 1, nil
	case Binary:
		data = append(data, v...)
		for i := 0; i < xdrPad(len(v)); i++ {
			data = append(data, 0)
		}
		return data, uint32(len(v)), nil
	case *List:
		data, err = solEncodeList(v.h.mustRaw().(*solList))
		return data, 1, err
	case BoolArray:
		for _, e := range v {
			if e {
				data = appendXDRInt(data, 1)
			} else {
				data = appendXDRInt(data, 0)
			}
		}
		return data, uint32(len(v)), nil
	case Int8Array:
		for _, e := range v {
			data = appendXDRInt(data, uint32(int32(e)))
		}
		return data, uint32(len(v)), nil
	case Uint8Array:
		for _, e := range v {
			data = appendXDRInt(data, uint32(e))
		}
		return data, uint32(len(v)), nil
	case Int16Array:
		for _, e := range v {
			data = appendXDRInt(data, uint32(int32(e)))
		}
		return data, uint32(len(v)), nil
	case Uint16Array:
		for _, e := range v {
			data = appendXDRInt(data, uint32(e))
		}
		return data, uint32(len(v)), nil
	case Int32Array:
		for _, e := range v {
			data = appendXDRInt(data, uint32(e))
		}
		return data, uint32(len(v)), nil
	case Uint32Array:
		for _, e := range v {
			data = appendXDRInt(data, uint32(e))
		}
		return data, uint32(len(v)), nil
	case Int64Array:
		for _, e := range v {
			data = bbe.AppendUint64(data, uint64(e))
		}
		return data, uint32(len(v)), nil
	case Uint64Array:
		for _, e := range v {
			data = bbe.AppendUint64(data, e)
		}
		return data, uint32(len(v)), nil
	case StringArray:
		for _, e := range v {
			data = appendXDRBytes(data, []byte(e))
		}
		return data, uint32(len(v)), nil
	case ListArray:
		for _, e := range v {
			child, err := solEncodeList(e.h.mustRaw().(*solList))
			if err != nil {
				return nil, 0, err
			}
			data = append(data, child...)
		}
		return data, uint32(len(v)), nil
	}
	return nil, 0, ErrUnsupported
}

// solReader walks a big-endian XDR buffer with bounds checks.
type solReader struct {
	b   []byte
	off int
}

func (r *solReader) remain() int { return len(r.b) - r.off }

func (r *solReader) bytes(n int) ([]byte, error) {
	if n < 0 || r.remain() < n {
		return nil, ErrTruncated
	}
	b := r.b[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *solReader) u32() (uint32, error) {
	b, err := r.bytes(4)
	if err != nil {
		return 0, err
	}
	return bbe.Uint32(b), nil
}

func (r *solReader) u64() (uint64, error) {
	b, err := r.bytes(8)
	if err != nil {
		return 0, err
	}
	return bbe.Uint64(b), nil
}

func (r *solReader) xdrBytes() ([]byte, error) {
	n, err := r.u32()
	if err != nil {
		return nil, err
	}
	if uint64(n) > uint64(r.remain()) {
		return nil, ErrCorrupt{errBadStringSize}
	}
	b, err := r.bytes(int(n))
	if err != nil {
		return nil, err
	}
	if _, err := r.bytes(xdrPad(int(n))); err != nil {
		return nil, err
	}
	return b, nil
}

func solUnpack(buf []byte) (nativeList, error) {
	if len(buf) < 1 || buf[0] != solEncodeXDR {
		return nil, ErrBadHeader
	}
	if len(buf) < solPreambleSize {
		return nil, ErrTruncated
	}
	if buf[1] != solEndianBig {
		return nil, ErrBadHeader
	}

	r := &solReader{b: buf, off: solPreambleSize}
	l, err := solDecodeList(r)
	if err != nil {
		return nil, err
	}
	if r.remain() != 0 {
		l.free()
		return nil, ErrCorrupt{errTrailingData}
	}
	return l, nil
}

func solDecodeList(r *solReader) (*solList, error) {
	version, err := r.u32()
	if err != nil {
		return nil, err
	}
	if version != solVersion {
		return nil, ErrCorrupt{errBadVersion}
	}
	if _, err := r.u32(); err != nil { // nvflag
		return nil, err
	}

	l := &solList{}
	fail := func(err error) (*solList, error) {
		l.free()
		return nil, err
	}
	for {
		encsize, err := r.u32()
		if err != nil {
			return fail(err)
		}
		decsize, err := r.u32()
		if err != nil {
			return fail(err)
		}
		if encsize == 0 && decsize == 0 {
			return l, nil
		}
		recStart := r.off - 8

		nameb, err := r.xdrBytes()
		if err != nil {
			return fail(err)
		}
		name := string(nameb)
		if name == "" || strings.IndexByte(name, 0) >= 0 {
			return fail(ErrCorrupt{errBadName})
		}
		code, err := r.u32()
		if err != nil {
			return fail(err)
		}
		nelem, err := r.u32()
		if err != nil {
			return fail(err)
		}
		v, err := solDecodeData(r, code, nelem)
		if err != nil {
			return fail(err)
		}
		if uint32(r.off-recStart) != encsize {
			freeDatum(v)
			return fail(ErrCorrupt{errBadPairSize})
		}
		l.pairStore.set(name, v)
	}
}

func solDecodeData(r *solReader, code, nelem uint32) (Value, error) {
	if uint64(nelem) > uint64(r.remain()) {
		return nil, ErrCorrupt{errBadArraySize}
	}

	u32s := func() ([]uint32, error) {
		out := make([]uint32, nelem)
		for i := range out {
			u, err := r.u32()
			if err != nil {
				return nil, err
			}
			out[i] = u
		}
		return out, nil
	}

	switch code {
	case solTypeBoolean:
		if nelem != 0 {
			return nil, ErrCorrupt{errBadPairSize}
		}
		return Null{}, nil

	case solTypeBooleanValue:
		u, err := r.u32()
		if err != nil {
			return nil, err
		}
		if u > 1 {
			return nil, ErrCorrupt{errBadPairSize}
		}
		return Bool(u == 1), nil

	case solTypeInt8:
		u, err := r.u32()
		return Int8(int32(u)), err
	case solTypeUint8:
		u, err := r.u32()
		return Uint8(u), err
	case solTypeInt16:
		u, err := r.u32()
		return Int16(int32(u)), err
	case solTypeUint16:
		u, err := r.u32()
		return Uint16(u), err
	case solTypeInt32:
		u, err := r.u32()
		return Int32(u), err
	case solTypeUint32:
		u, err := r.u32()
		return Uint32(u), err
	case solTypeInt64:
		u, err := r.u64()
		return Int64(u), err
	case solTypeUint64:
		u, err := r.u64()
		return Uint64(u), err

	case solTypeString:
		b, err := r.xdrBytes()
		if err != nil {
			return nil, err
		}
		s := string(b)
		if strings.IndexByte(s, 0) >= 0 {
			return nil, ErrCorrupt{errBadStringSize}
		}
		return String(s), nil

	case solTypeByteArray:
		b, err := r.bytes(int(nelem))
		if err != nil {
			return nil, err
		}
		if _, err := r.bytes(xdrPad(int(nelem))); err != nil {
			return nil, err
		}
		return Binary(copySlice(b)), nil

	case solTypeNvlist:
		child, err := solDecodeList(r)
		if err != nil {
			return nil, err
		}
		return wrap(Solaris, child), nil

	case solTypeNvlistArray:
		out := make(ListArray, 0, nelem)
		for uint32(len(out)) < nelem {
			child, err := solDecodeList(r)
			if err != nil {
				for _, c := range out {
					c.Close()
				}
				return nil, err
			}
			out = append(out, wrap(Solaris, child))
		}
		return out, nil

	case solTypeBooleanArray:
		us, err := u32s()
		if err != nil {
			return nil, err
		}
		out := make(BoolArray, nelem)
		for i, u := range us {
			if u > 1 {
				return nil, ErrCorrupt{errBadArraySize}
			}
			out[i] = u == 1
		}
		return out, nil

	case solTypeInt8Array:
		us, err := u32s()
		if err != nil {
			return nil, err
		}
		out := make(Int8Array, nelem)
		for i, u := range us {
			out[i] = int8(int32(u))
		}
		return out, nil
	case solTypeUint8Array:
		us, err := u32s()
		if err != nil {
			return nil, err
		}
		out := make(Uint8Array, nelem)
		for i, u := range us {
			out[i] = uint8(u)
		}
		return out, nil
	case solTypeInt16Array:
		us, err := u32s()
		if err != nil {
			return nil, err
		}
		out := make(Int16Array, nelem)
		for i, u := range us {
			out[i] = int16(int32(u))
		}
		return out, nil
	case solTypeUint16Array:
		us, err := u32s()
		if err != nil {
			return nil, err
		}
		out := make(Uint16Array, nelem)
		for i, u := range us {
			out[i] = uint16(u)
		}
		return out, nil
	case solTypeInt32Array:
		us, err := u32s()
		if err != nil {
			return nil, err
		}
		out := make(Int32Array, nelem)
		for i, u := range us {
			out[i] = int32(u)
		}
		return out, nil
	case solTypeUint32Array:
		us, err := u32s()
		if err != nil {
			return nil, err
		}
		return Uint32Array(us), nil

	case solTypeInt64Array:
		out := make(Int64Array, nelem)
		for i := range out {
			u, err := r.u64()
			if err != nil {
				return nil, err
			}
			out[i] = int64(u)
		}
		return out, nil
	case solTypeUint64Array:
		out := make(Uint64Array, nelem)
		for i := range out {
			u, err := r.u64()
			if err != nil {
				return nil, err
			}
			out[i] = u
		}
		return out, nil

	case solTypeStringArray:
		out := make(StringArray, nelem)
		for i := range out {
			b, err := r.xdrBytes()
			if err != nil {
				return nil, err
			}
			s := string(b)
			if strings.IndexByte(s, 0) >= 0 {
				return nil, ErrCorrupt{errBadStringSize}
			}
			out[i] = s
		}
		return out, nil

	case solTypeByte, solTypeHrtime:
		// native types with no portable model variant
		return nil, ErrUnsupported
	}
	return nil, ErrCorrupt{errBadTag}
}
