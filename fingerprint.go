package nvlist

import (
	"encoding/binary"
	"hash"
	"sort"

	"github.com/dchest/siphash"
)

// Fixed key so digests are comparable across processes.
var fingerprintKey = []byte("nvlist-entryset!")

// Fingerprint returns a 64-bit digest of the entry set: names, tags and
// values, names taken in sorted order so the digest is independent of
// insertion order and backend. Unequal fingerprints mean unequal lists;
// equal fingerprints still want Equal for certainty.
func (l *List) Fingerprint() uint64 {
	h := siphash.New(fingerprintKey)
	l.hashInto(h)
	return h.Sum64()
}

func (l *List) hashInto(h hash.Hash64) {
	raw := l.h.mustRaw()
	names := make([]string, 0, raw.count())
	raw.walk(func(name string, _ Value) bool {
		names = append(names, name)
		return true
	})
	sort.Strings(names)

	for _, name := range names {
		v, _ := raw.get(name)
		h.Write([]byte(name))
		h.Write([]byte{0, byte(v.Type())})
		hashValue(h, v)
	}
}

func hashU64(h hash.Hash64, u uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], u)
	h.Write(b[:])
}

func hashBytes(h hash.Hash64, b []byte) {
	hashU64(h, uint64(len(b)))
	h.Write(b)
}

func hashValue(h hash.Hash64, v Value) {
	switch v := v.(type) {
	case Null:
	case Bool:
		if v {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	case Int8:
		hashU64(h, uint64(v))
	case Uint8:
		hashU64(h, uint64(v))
	case Int16:
		hashU64(h, uint64(v))
	case Uint16:
		hashU64(h, uint64(v))
	case Int32:
		hashU64(h, uint64(v))
	case Uint32:
		hashU64(h, uint64(v))
	case Int64:
		hashU64(h, uint64(v))
	case Uint64:
		hashU64(h, uint64(v))
	case String:
		hashBytes(h, []byte(v))
	case Binary:
		hashBytes(h, v)
	case *List:
		// nested digest keeps the child order-independent too
		hashU64(h, v.Fingerprint())
	case BoolArray:
		hashU64(h, uint64(len(v)))
		for _, e := range v {
			hashValue(h, Bool(e))
		}
	case Int8Array:
		hashU64(h, uint64(len(v)))
		for _, e := range v {
			hashU64(h, uint64(e))
		}
	case Uint8Array:
		hashBytes(h, []byte(v))
	case Int16Array:
		hashU64(h, uint64(len(v)))
		for _, e := range v {
			hashU64(h, uint64(e))
		}
	case Uint16Array:
		hashU64(h, uint64(len(v)))
		for _, e := range v {
			hashU64(h, uint64(e))
		}
	case Int32Array:
		hashU64(h, uint64(len(v)))
		for _, e := range v {
			hashU64(h, uint64(e))
		}
	case Uint32Array:
		hashU64(h, uint64(len(v)))
		for _, e := range v {
			hashU64(h, uint64(e))
		}
	case Int64Array:
		hashU64(h, uint64(len(v)))
		for _, e := range v {
			hashU64(h, uint64(e))
		}
	case Uint64Array:
		hashU64(h, uint64(len(v)))
		for _, e := range v {
			hashU64(h, e)
		}
	case StringArray:
		hashU64(h, uint64(len(v)))
		for _, e := range v {
			hashBytes(h, []byte(e))
		}
	case ListArray:
		hashU64(h, uint64(len(v)))
		for _, e := range v {
			hashU64(h, e.Fingerprint())
		}
	default:
		panic("nvlist: unknown value variant")
	}
}
