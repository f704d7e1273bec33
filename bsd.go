package nvlist

// bsdList is the BSD-origin native list. Storage is the shared pair
// store; what makes it this backend is the nv(9) tag space and the
// little-endian pack format in bsd_codec.go.
type bsdList struct {
	pairStore
}

func newBsdList() nativeList { return &bsdList{} }

func (l *bsdList) clone() nativeList {
	out := &bsdList{}
	l.copyInto(&out.pairStore)
	return out
}

func (l *bsdList) free() { l.freePairs() }

func (l *bsdList) set(name string, v Value) int {
	if _, ok := bsdTag(v.Type()); !ok {
		return nvEOPNOTSUPP
	}
	l.pairStore.set(name, v)
	return 0
}

func (l *bsdList) pack() ([]byte, error) { return bsdPack(l) }

func bsdWidthBits(width byte) byte {
	switch width {
	case 1:
		return 0
	case 2:
		return 1
	case 4:
		return 2
	default:
		return 3
	}
}

func bsdNumberTag(code, width byte, signed bool) byte {
	tb := code | bsdWidthBits(width)<<bsdWidthShift
	if signed {
		tb |= bsdSignedFlag
	}
	return tb
}

// bsdTag maps a model tag onto the packed nv(9) type byte.
func bsdTag(t Type) (byte, bool) {
	switch t {
	case TypeNull:
		return bsdTypeNull, true
	case TypeBool:
		return bsdTypeBool, true
	case TypeInt8:
		return bsdNumberTag(bsdTypeNumber, 1, true), true
	case TypeUint8:
		return bsdNumberTag(bsdTypeNumber, 1, false), true
	case TypeInt16:
		return bsdNumberTag(bsdTypeNumber, 2, true), true
	case TypeUint16:
		return bsdNumberTag(bsdTypeNumber, 2, false), true
	case TypeInt32:
		return bsdNumberTag(bsdTypeNumber, 4, true), true
	case TypeUint32:
		return bsdNumberTag(bsdTypeNumber, 4, false), true
	case TypeInt64:
		return bsdNumberTag(bsdTypeNumber, 8, true), true
	case TypeUint64:
		return bsdNumberTag(bsdTypeNumber, 8, false), true
	case TypeString:
		return bsdTypeString, true
	case TypeBinary:
		return bsdTypeBinary, true
	case TypeList:
		return bsdTypeNvlist, true
	case TypeBoolArray:
		return bsdTypeBoolArray, true
	case TypeInt8Array:
		return bsdNumberTag(bsdTypeNumberArray, 1, true), true
	case TypeUint8Array:
		return bsdNumberTag(bsdTypeNumberArray, 1, false), true
	case TypeInt16Array:
		return bsdNumberTag(bsdTypeNumberArray, 2, true), true
	case TypeUint16Array:
		return bsdNumberTag(bsdTypeNumberArray, 2, false), true
	case TypeInt32Array:
		return bsdNumberTag(bsdTypeNumberArray, 4, true), true
	case TypeUint32Array:
		return bsdNumberTag(bsdTypeNumberArray, 4, false), true
	case TypeInt64Array:
		return bsdNumberTag(bsdTypeNumberArray, 8, true), true
	case TypeUint64Array:
		return bsdNumberTag(bsdTypeNumberArray, 8, false), true
	case TypeStringArray:
		return bsdTypeStringArray, true
	case TypeListArray:
		return bsdTypeNvlistArray, true
	}
	return 0, false
}
