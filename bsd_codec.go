package nvlist

import (
	"bytes"
	"encoding/binary"
	"strings"
)

var ble = binary.LittleEndian

func appendUintN(buf []byte, u uint64, width byte) []byte {
	for i := byte(0); i < width; i++ {
		buf = append(buf, byte(u))
		u >>= 8
	}
	return buf
}

func readUintN(b []byte, width byte) uint64 {
	var u uint64
	for i := byte(0); i < width; i++ {
		u |= uint64(b[i]) << (8 * i)
	}
	return u
}

func bsdPack(l *bsdList) ([]byte, error) {
	var body []byte
	for i := range l.pairs {
		var err error
		body, err = bsdAppendPair(body, &l.pairs[i])
		if err != nil {
			return nil, err
		}
	}

	buf := make([]byte, 0, bsdHeaderSize+len(body))
	buf = append(buf, bsdMagic, bsdVersion, 0x00)
	buf = ble.AppendUint64(buf, 0) // descriptor count
	buf = ble.AppendUint64(buf, uint64(len(body)))
	return append(buf, body...), nil
}

func bsdAppendPair(buf []byte, p *pair) ([]byte, error) {
	tb, ok := bsdTag(p.typ)
	if !ok {
		return nil, ErrUnsupported
	}

	data, nitems, err := bsdEncodeData(p.datum)
	if err != nil {
		return nil, err
	}

	buf = append(buf, tb)
	buf = ble.AppendUint16(buf, uint16(len(p.name)+1))
	buf = ble.AppendUint64(buf, nitems)
	buf = ble.AppendUint64(buf, uint64(len(data)))
	buf = append(buf, p.name...)
	buf = append(buf, 0)
	return append(buf, data...), nil
}

func bsdEncodeData(v Value) (data []byte, nitems uint64, err error) {
	switch v := v.(type) {
	case Null:
		return nil, 0, nil
	case Bool:
		if v {
			return []byte{1}, 0, nil
		}
		return []byte{0}, 0, nil
	case Int8:
		return appendUintN(nil, uint64(uint8(v)), 1), 0, nil
	case Uint8:
		return appendUintN(nil, uint64(v), 1), 0, nil
	case Int16:
		return appendUintN(nil, uint64(uint16(v)), 2), 0, nil
	case Uint16:
		return appendUintN(nil, uint64(v), 2), 0, nil
	case Int32:
		return appendUintN(nil, uint64(uint32(v)), 4), 0, nil
	case Uint32:
		return appendUintN(nil, uint64(v), 4), 0, nil
	case Int64:
		return appendUintN(nil, uint64(v), 8), 0, nil
	case Uint64:
		return appendUintN(nil, uint64(v), 8), 0, nil
	case String:
		return append([]byte(v), 0), 0, nil
	case Binary:
		return v, 0, nil
	case *List:
		child, err := v.h.mustRaw().pack()
		return child, 0, err
	case BoolArray:
		for _, e := range v {
			if e {
				data = append(data, 1)
			} else {
				data = append(data, 0)
			}
		}
		return data, uint64(len(v)), nil
	case Int8Array:
		for _, e := range v {
			data = appendUintN(data, uint64(uint8(e)), 1)
		}
		return data, uint64(len(v)), nil
	case Uint8Array:
		for _, e := range v {
			data = appendUintN(data, uint64(e), 1)
		}
		return data, uint64(len(v)), nil
	case Int16Array:
		for _, e := range v {
			data = appendUintN(data, uint64(uint16(e)), 2)
		}
		return data, uint64(len(v)), nil
	case Uint16Array:
		for _, e := range v {
			data = appendUintN(data, uint64(e), 2)
		}
		return data, uint64(len(v)), nil
	case Int32Array:
		for _, e := range v {
			data = appendUintN(data, uint64(uint32(e)), 4)
		}
		return data, uint64(len(v)), nil
	case Uint32Array:
		for _, e := range v {
			data = appendUintN(data, uint64(e), 4)
		}
		return data, uint64(len(v)), nil
	case Int64Array:
		for _, e := range v {
			data = appendUintN(data, uint64(e), 8)
		}
		return data, uint64(len(v)), nil
	case Uint64Array:
		for _, e := range v {
			data = appendUintN(data, e, 8)
		}
		return data, uint64(len(v)), nil
	case StringArray:
		for _, e := range v {
			data = append(data, e...)
			data = append(data, 0)
		}
		return data, uint64(len(v)), nil
	case ListArray:
		for _, e := range v {
			child, err := e.h.mustRaw().pack()
			if err != nil {
				return nil, 0, err
			}
			data = ble.AppendUint64(data, uint64(len(child)))
			data = append(data, child...)
		}
		return data, uint64(len(v)), nil
	}
	return nil, 0, ErrUnsupported
}

func bsdUnpack(buf []byte) (nativeList, error) {
	if len(buf) < 1 || buf[0] != bsdMagic {
		return nil, ErrBadHeader
	}
	if len(buf) < bsdHeaderSize {
		return nil, ErrTruncated
	}
	if buf[1] != bsdVersion {
		return nil, ErrCorrupt{errBadVersion}
	}
	// buf[2] holds creation flags; none affect decoding here.
	if ble.Uint64(buf[3:11]) != 0 {
		// in-band descriptors are not representable portably
		return nil, ErrUnsupported
	}
	size := ble.Uint64(buf[11:19])
	payload := buf[bsdHeaderSize:]
	if size > uint64(len(payload)) {
		return nil, ErrTruncated
	}
	if size < uint64(len(payload)) {
		return nil, ErrCorrupt{errTrailingData}
	}

	l := &bsdList{}
	idx := 0
	for idx < len(payload) {
		var err error
		idx, err = bsdDecodePair(l, payload, idx)
		if err != nil {
			l.free()
			return nil, err
		}
	}
	return l, nil
}

func bsdDecodePair(l *bsdList, b []byte, idx int) (int, error) {
	if len(b)-idx < 19 {
		return 0, ErrTruncated
	}
	tb := b[idx]
	namesize := int(ble.Uint16(b[idx+1:]))
	nitems := ble.Uint64(b[idx+3:])
	datasize := ble.Uint64(b[idx+11:])
	idx += 19

	if namesize < 2 {
		return 0, ErrCorrupt{errBadName}
	}
	if len(b)-idx < namesize {
		return 0, ErrTruncated
	}
	nameb := b[idx : idx+namesize]
	if nameb[namesize-1] != 0 {
		return 0, ErrCorrupt{errBadName}
	}
	name := string(nameb[:namesize-1])
	if strings.IndexByte(name, 0) >= 0 {
		return 0, ErrCorrupt{errBadName}
	}
	idx += namesize

	if datasize > uint64(len(b)-idx) {
		return 0, ErrTruncated
	}
	data := b[idx : idx+int(datasize)]
	idx += int(datasize)

	v, err := bsdDecodeData(tb, nitems, data)
	if err != nil {
		return 0, err
	}
	l.pairStore.set(name, v)
	return idx, nil
}

func bsdDecodeData(tb byte, nitems uint64, data []byte) (Value, error) {
	code := tb & bsdCodeMask
	width := byte(1) << ((tb >> bsdWidthShift) & bsdWidthMask)
	signed := tb&bsdSignedFlag != 0

	// only number codes carry width and sign qualifiers
	if code != bsdTypeNumber && code != bsdTypeNumberArray && tb != code {
		return nil, ErrCorrupt{errBadTag}
	}

	switch code {
	case bsdTypeNull:
		if len(data) != 0 || nitems != 0 {
			return nil, ErrCorrupt{errBadPairSize}
		}
		return Null{}, nil

	case bsdTypeBool:
		if len(data) != 1 || data[0] > 1 {
			return nil, ErrCorrupt{errBadPairSize}
		}
		return Bool(data[0] == 1), nil

	case bsdTypeNumber:
		if len(data) != int(width) {
			return nil, ErrCorrupt{errBadPairSize}
		}
		return bsdNumberValue(readUintN(data, width), width, signed), nil

	case bsdTypeString:
		if len(data) < 1 || data[len(data)-1] != 0 {
			return nil, ErrCorrupt{errBadStringSize}
		}
		s := string(data[:len(data)-1])
		if strings.IndexByte(s, 0) >= 0 {
			return nil, ErrCorrupt{errBadStringSize}
		}
		return String(s), nil

	case bsdTypeBinary:
		return Binary(copySlice(data)), nil

	case bsdTypeNvlist:
		raw, err := bsdUnpack(data)
		if err != nil {
			return nil, err
		}
		return wrap(FreeBSD, raw), nil

	case bsdTypeBoolArray:
		if nitems != uint64(len(data)) {
			return nil, ErrCorrupt{errBadArraySize}
		}
		out := make(BoolArray, len(data))
		for i, e := range data {
			if e > 1 {
				return nil, ErrCorrupt{errBadArraySize}
			}
			out[i] = e == 1
		}
		return out, nil

	case bsdTypeNumberArray:
		if nitems > uint64(len(data)) || nitems*uint64(width) != uint64(len(data)) {
			return nil, ErrCorrupt{errBadArraySize}
		}
		return bsdNumberArray(data, nitems, width, signed), nil

	case bsdTypeStringArray:
		out := make(StringArray, 0, nitems)
		for uint64(len(out)) < nitems {
			i := bytes.IndexByte(data, 0)
			if i < 0 {
				return nil, ErrCorrupt{errBadArraySize}
			}
			out = append(out, string(data[:i]))
			data = data[i+1:]
		}
		if len(data) != 0 {
			return nil, ErrCorrupt{errBadArraySize}
		}
		return out, nil

	case bsdTypeNvlistArray:
		if nitems > uint64(len(data))/8 {
			return nil, ErrCorrupt{errBadArraySize}
		}
		out := make(ListArray, 0, nitems)
		fail := func(err error) (Value, error) {
			for _, c := range out {
				c.Close()
			}
			return nil, err
		}
		for uint64(len(out)) < nitems {
			if len(data) < 8 {
				return fail(ErrTruncated)
			}
			n := ble.Uint64(data)
			data = data[8:]
			if n > uint64(len(data)) {
				return fail(ErrTruncated)
			}
			raw, err := bsdUnpack(data[:n])
			if err != nil {
				return fail(err)
			}
			out = append(out, wrap(FreeBSD, raw))
			data = data[n:]
		}
		if len(data) != 0 {
			return fail(ErrCorrupt{errBadArraySize})
		}
		return out, nil

	case bsdTypeDescriptor:
		return nil, ErrUnsupported
	}
	return nil, ErrCorrupt{errBadTag}
}

func bsdNumberValue(u uint64, width byte, signed bool) Value {
	switch {
	case width == 1 && signed:
		return Int8(int8(u))
	case width == 1:
		return Uint8(uint8(u))
	case width == 2 && signed:
		return Int16(int16(u))
	case width == 2:
		return Uint16(uint16(u))
	case width == 4 && signed:
		return Int32(int32(u))
	case width == 4:
		return Uint32(uint32(u))
	case signed:
		return Int64(int64(u))
	default:
		return Uint64(u)
	}
}

func bsdNumberArray(data []byte, nitems uint64, width byte, signed bool) Value {
	switch {
	case width == 1 && signed:
		out := make(Int8Array, nitems)
		for i := range out {
			out[i] = int8(data[i])
		}
		return out
	case width == 1:
		out := make(Uint8Array, nitems)
		copy(out, data)
		return out
	case width == 2 && signed:
		out := make(Int16Array, nitems)
		for i := range out {
			out[i] = int16(readUintN(data[i*2:], 2))
		}
		return out
	case width == 2:
		out := make(Uint16Array, nitems)
		for i := range out {
			out[i] = uint16(readUintN(data[i*2:], 2))
		}
		return out
	case width == 4 && signed:
		out := make(Int32Array, nitems)
		for i := range out {
			out[i] = int32(readUintN(data[i*4:], 4))
		}
		return out
	case width == 4:
		out := make(Uint32Array, nitems)
		for i := range out {
			out[i] = uint32(readUintN(data[i*4:], 4))
		}
		return out
	case signed:
		out := make(Int64Array, nitems)
		for i := range out {
			out[i] = int64(readUintN(data[i*8:], 8))
		}
		return out
	default:
		out := make(Uint64Array, nitems)
		for i := range out {
			out[i] = readUintN(data[i*8:], 8)
		}
		return out
	}
}
