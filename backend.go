package nvlist

import "sync/atomic"

// Backend selects which native list implementation a List is bound to.
// The choice is made at construction time and is carried by every list,
// clone and packed buffer derived from it. The two implementations are
// not ABI compatible: their type tag spaces and pack formats differ,
// and a buffer packed by one is rejected by the other's Unpack rather
// than decoded into garbage.
type Backend byte

const (
	// FreeBSD is the BSD-origin nv(9) implementation. Little-endian
	// pack format with a one-byte magic header.
	FreeBSD Backend = iota + 1
	// Solaris is the storage-subsystem nvpair implementation. XDR
	// (big-endian) pack format with DATA_TYPE_* tags.
	Solaris
)

func (b Backend) String() string {
	switch b {
	case FreeBSD:
		return "freebsd"
	case Solaris:
		return "solaris"
	}
	return "unknown"
}

func (b Backend) valid() bool { return b == FreeBSD || b == Solaris }

// nativeList is the capability set a native backend provides: create
// (per-backend constructors), free, deep clone, existence check, typed
// set/get, remove, iteration and pack. One nativeList is the storage
// behind exactly one handle.
//
// set returns a native errno (0 on success) which the container
// translates through errnoToErr. get and walk expose stored data
// without copying; the container copies before handing anything out.
type nativeList interface {
	clone() nativeList
	free()
	exists(name string) bool
	typeOf(name string) (Type, bool)
	set(name string, v Value) int
	get(name string) (Value, bool)
	remove(name string) bool
	count() int
	walk(fn func(name string, v Value) bool)
	pack() ([]byte, error)
}

func newNative(b Backend) nativeList {
	switch b {
	case FreeBSD:
		return newBsdList()
	case Solaris:
		return newSolList()
	}
	panic("nvlist: unknown backend")
}

func unpackNative(b Backend, buf []byte) (nativeList, error) {
	switch b {
	case FreeBSD:
		return bsdUnpack(buf)
	case Solaris:
		return solUnpack(buf)
	}
	panic("nvlist: unknown backend")
}

var liveHandles int64

// LiveHandles reports how many native handles are currently allocated
// and not yet released, counting nested lists. Intended for leak checks
// in tests.
func LiveHandles() int64 { return atomic.LoadInt64(&liveHandles) }
