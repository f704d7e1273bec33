package nvlist

// solList is the storage-subsystem native list. Same pair store as the
// BSD variant; the DATA_TYPE_* tag space and the XDR pack format in
// sol_codec.go are what make it this backend.
type solList struct {
	pairStore
}

func newSolList() nativeList { return &solList{} }

func (l *solList) clone() nativeList {
	out := &solList{}
	l.copyInto(&out.pairStore)
	return out
}

func (l *solList) free() { l.freePairs() }

func (l *solList) set(name string, v Value) int {
	if _, ok := solTag(v.Type()); !ok {
		return nvEOPNOTSUPP
	}
	l.pairStore.set(name, v)
	return 0
}

func (l *solList) pack() ([]byte, error) { return solPack(l) }

// solTag maps a model tag onto the native DATA_TYPE_* code.
func solTag(t Type) (uint32, bool) {
	switch t {
	case TypeNull:
		return solTypeBoolean, true
	case TypeBool:
		return solTypeBooleanValue, true
	case TypeInt8:
		return solTypeInt8, true
	case TypeUint8:
		return solTypeUint8, true
	case TypeInt16:
		return solTypeInt16, true
	case TypeUint16:
		return solTypeUint16, true
	case TypeInt32:
		return solTypeInt32, true
	case TypeUint32:
		return solTypeUint32, true
	case TypeInt64:
		return solTypeInt64, true
	case TypeUint64:
		return solTypeUint64, true
	case TypeString:
		return solTypeString, true
	case TypeBinary:
		return solTypeByteArray, true
	case TypeList:
		return solTypeNvlist, true
	case TypeBoolArray:
		return solTypeBooleanArray, true
	case TypeInt8Array:
		return solTypeInt8Array, true
	case TypeUint8Array:
		return solTypeUint8Array, true
	case TypeInt16Array:
		return solTypeInt16Array, true
	case TypeUint16Array:
		return solTypeUint16Array, true
	case TypeInt32Array:
		return solTypeInt32Array, true
	case TypeUint32Array:
		return solTypeUint32Array, true
	case TypeInt64Array:
		return solTypeInt64Array, true
	case TypeUint64Array:
		return solTypeUint64Array, true
	case TypeStringArray:
		return solTypeStringArray, true
	case TypeListArray:
		return solTypeNvlistArray, true
	}
	return 0, false
}
