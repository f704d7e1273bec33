package nvlist

// BSD nv(9) wire format.
//
// Header: magic byte 'l', version byte, flags byte, descriptor count
// (uint64), payload size (uint64), all little-endian. Pair record:
// type byte, namesize (uint16, NUL included), nitems (uint64),
// datasize (uint64), name bytes with NUL, data.
//
// The type byte packs three fields: the low five bits carry the nv(9)
// type code, bits 5-6 carry log2 of the number width, bit 7 carries
// signedness. The historical library folds every number into a uint64;
// the width and sign qualifiers are what make typed round-trips exact.
const (
	bsdMagic   = 0x6c // 'l'
	bsdVersion = 0x00

	bsdHeaderSize = 19

	bsdTypeNull        = 0x01
	bsdTypeBool        = 0x02
	bsdTypeNumber      = 0x03
	bsdTypeString      = 0x04
	bsdTypeNvlist      = 0x05
	bsdTypeDescriptor  = 0x06
	bsdTypeBinary      = 0x07
	bsdTypeBoolArray   = 0x08
	bsdTypeNumberArray = 0x09
	bsdTypeStringArray = 0x0a
	bsdTypeNvlistArray = 0x0b

	bsdCodeMask   = 0x1f
	bsdWidthShift = 5
	bsdWidthMask  = 0x03
	bsdSignedFlag = 0x80
)

// Solaris nvpair XDR wire format.
//
// Preamble: encoding byte (1 = XDR), endian byte (0 = big), two
// reserved bytes. Then, big-endian throughout: version int32, nvflag
// uint32, and one record per pair: encsize uint32, decsize uint32,
// name as an XDR string, type int32, nelem uint32, data. A record with
// encsize and decsize both zero terminates the list. Nested lists
// repeat version/nvflag/records without the preamble.
const (
	solEncodeXDR    = 1
	solEndianBig    = 0
	solVersion      = 0
	solUniqueName   = 1
	solPreambleSize = 4

	solTypeBoolean      = 1 // presence flag, no payload
	solTypeByte         = 2
	solTypeInt16        = 3
	solTypeUint16       = 4
	solTypeInt32        = 5
	solTypeUint32       = 6
	solTypeInt64        = 7
	solTypeUint64       = 8
	solTypeString       = 9
	solTypeByteArray    = 10
	solTypeInt16Array   = 11
	solTypeUint16Array  = 12
	solTypeInt32Array   = 13
	solTypeUint32Array  = 14
	solTypeInt64Array   = 15
	solTypeUint64Array  = 16
	solTypeStringArray  = 17
	solTypeHrtime       = 18
	solTypeNvlist       = 19
	solTypeNvlistArray  = 20
	solTypeBooleanValue = 21
	solTypeInt8         = 22
	solTypeUint8        = 23
	solTypeBooleanArray = 24
	solTypeInt8Array    = 25
	solTypeUint8Array   = 26
)
