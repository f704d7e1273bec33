package nvlist

import "strings"

// A List is a name-indexed collection of typed values bound to one
// backend. It owns exactly one native handle; Close releases it, nested
// lists first. Every insert copies its value, so the caller keeps
// ownership of whatever it passed in.
//
// A List is not safe for unsynchronized concurrent mutation, or for
// mutation concurrent with iteration. Callers needing shared access
// must serialize it externally. Nested lists extracted with Get or
// GetList are independent copies and may be used freely elsewhere.
type List struct {
	backend Backend
	h       handle
}

// New creates an empty list on the given backend.
func New(b Backend) *List {
	if !b.valid() {
		panic("nvlist: unknown backend")
	}
	return wrap(b, newNative(b))
}

func wrap(b Backend, raw nativeList) *List {
	return &List{backend: b, h: acquire(raw)}
}

// Unpack decodes a buffer previously produced by Pack on the same
// backend. The caller must know which backend packed the bytes; the
// formats are not self-describing relative to each other, and each
// backend validates its own preamble rather than guessing. On error no
// list is produced and nothing is left allocated.
func Unpack(b Backend, buf []byte) (*List, error) {
	if !b.valid() {
		panic("nvlist: unknown backend")
	}
	raw, err := unpackNative(b, buf)
	if err != nil {
		return nil, err
	}
	return wrap(b, raw), nil
}

// Backend reports which backend created this list.
func (l *List) Backend() Backend { return l.backend }

// Close releases the native handle exactly once; nested lists owned by
// entries are released first. Close is a no-op after the first call.
// Any other method called after Close panics: that is a bug in the
// caller, not recoverable input.
func (l *List) Close() { l.h.release() }

// Clone returns a deep duplicate with its own handle and independent
// lifetime. Nested lists are duplicated recursively.
func (l *List) Clone() *List {
	return wrap(l.backend, l.h.mustRaw().clone())
}

// Len returns the number of entries.
func (l *List) Len() int { return l.h.mustRaw().count() }

// Empty reports whether the list has no entries.
func (l *List) Empty() bool { return l.Len() == 0 }

// Contains reports whether an entry exists under name. It does not
// reveal the entry's type.
func (l *List) Contains(name string) bool { return l.h.mustRaw().exists(name) }

// ContainsType reports whether an entry of the given type exists under
// name.
func (l *List) ContainsType(name string, t Type) bool {
	got, ok := l.h.mustRaw().typeOf(name)
	return ok && got == t
}

func checkName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if strings.IndexByte(name, 0) >= 0 {
		return ErrNullByte
	}
	return nil
}

func (l *List) checkValue(v Value) error {
	switch v := v.(type) {
	case String:
		if strings.IndexByte(string(v), 0) >= 0 {
			return ErrNullByte
		}
	case StringArray:
		for _, s := range v {
			if strings.IndexByte(s, 0) >= 0 {
				return ErrNullByte
			}
		}
	case *List:
		v.h.mustRaw()
		if v.backend != l.backend {
			return ErrCrossBackend
		}
	case ListArray:
		for _, c := range v {
			c.h.mustRaw()
			if c.backend != l.backend {
				return ErrCrossBackend
			}
		}
	}
	return nil
}

// Insert stores value under name, overwriting any prior entry with the
// same name. The value is copied into the list's own storage: inserting
// a nested list performs a full native copy, and the original remains
// valid and separately owned. A failed insert leaves any prior entry
// unchanged.
func (l *List) Insert(name string, v Value) error {
	raw := l.h.mustRaw()
	if err := checkName(name); err != nil {
		return err
	}
	if v == nil {
		return ErrInvalidArgument
	}
	if err := l.checkValue(v); err != nil {
		return err
	}
	return errnoToErr(raw.set(name, copyValue(v)))
}

// Get returns the value stored under name, or ErrNotFound. The result
// shares no storage with the list; if it is (or contains) a nested
// list, the caller owns the copy and must Close it.
func (l *List) Get(name string) (Value, error) {
	v, ok := l.h.mustRaw().get(name)
	if !ok {
		return nil, ErrNotFound
	}
	return copyValue(v), nil
}

func get[T Value](l *List, name string) (T, error) {
	var zero T
	v, ok := l.h.mustRaw().get(name)
	if !ok {
		return zero, ErrNotFound
	}
	t, ok := v.(T)
	if !ok {
		return zero, TypeMismatchError{Name: name, Requested: zero.Type(), Actual: v.Type()}
	}
	return copyValue(t).(T), nil
}

func (l *List) GetBool(name string) (bool, error) {
	v, err := get[Bool](l, name)
	return bool(v), err
}

func (l *List) GetInt8(name string) (int8, error) {
	v, err := get[Int8](l, name)
	return int8(v), err
}

func (l *List) GetUint8(name string) (uint8, error) {
	v, err := get[Uint8](l, name)
	return uint8(v), err
}

func (l *List) GetInt16(name string) (int16, error) {
	v, err := get[Int16](l, name)
	return int16(v), err
}

func (l *List) GetUint16(name string) (uint16, error) {
	v, err := get[Uint16](l, name)
	return uint16(v), err
}

func (l *List) GetInt32(name string) (int32, error) {
	v, err := get[Int32](l, name)
	return int32(v), err
}

func (l *List) GetUint32(name string) (uint32, error) {
	v, err := get[Uint32](l, name)
	return uint32(v), err
}

func (l *List) GetInt64(name string) (int64, error) {
	v, err := get[Int64](l, name)
	return int64(v), err
}

func (l *List) GetUint64(name string) (uint64, error) {
	v, err := get[Uint64](l, name)
	return uint64(v), err
}

func (l *List) GetString(name string) (string, error) {
	v, err := get[String](l, name)
	return string(v), err
}

func (l *List) GetBinary(name string) ([]byte, error) {
	v, err := get[Binary](l, name)
	return []byte(v), err
}

// GetList returns a deep copy of the nested list stored under name.
// The caller owns it and must Close it.
func (l *List) GetList(name string) (*List, error) {
	return get[*List](l, name)
}

func (l *List) GetBoolArray(name string) ([]bool, error) {
	v, err := get[BoolArray](l, name)
	return []bool(v), err
}

func (l *List) GetInt8Array(name string) ([]int8, error) {
	v, err := get[Int8Array](l, name)
	return []int8(v), err
}

func (l *List) GetUint8Array(name string) ([]uint8, error) {
	v, err := get[Uint8Array](l, name)
	return []uint8(v), err
}

func (l *List) GetInt16Array(name string) ([]int16, error) {
	v, err := get[Int16Array](l, name)
	return []int16(v), err
}

func (l *List) GetUint16Array(name string) ([]uint16, error) {
	v, err := get[Uint16Array](l, name)
	return []uint16(v), err
}

func (l *List) GetInt32Array(name string) ([]int32, error) {
	v, err := get[Int32Array](l, name)
	return []int32(v), err
}

func (l *List) GetUint32Array(name string) ([]uint32, error) {
	v, err := get[Uint32Array](l, name)
	return []uint32(v), err
}

func (l *List) GetInt64Array(name string) ([]int64, error) {
	v, err := get[Int64Array](l, name)
	return []int64(v), err
}

func (l *List) GetUint64Array(name string) ([]uint64, error) {
	v, err := get[Uint64Array](l, name)
	return []uint64(v), err
}

func (l *List) GetStringArray(name string) ([]string, error) {
	v, err := get[StringArray](l, name)
	return []string(v), err
}

// GetListArray returns deep copies of the nested lists stored under
// name. The caller owns them and must Close each.
func (l *List) GetListArray(name string) ([]*List, error) {
	v, err := get[ListArray](l, name)
	return []*List(v), err
}

// Remove deletes the entry under name, releasing any nested lists it
// owned. It fails with ErrNotFound if the name is absent, leaving the
// list unchanged.
func (l *List) Remove(name string) error {
	if !l.h.mustRaw().remove(name) {
		return ErrNotFound
	}
	return nil
}

// Walk calls fn for each entry in native iteration order, which is
// backend-defined and not guaranteed to match insertion order. It stops
// early if fn returns false. Each value handed to fn is an independent
// copy; nested list copies become fn's responsibility to Close.
// Mutating the list while walking it is undefined at the native layer
// and must be prevented by the caller.
func (l *List) Walk(fn func(name string, v Value) bool) {
	l.h.mustRaw().walk(func(name string, v Value) bool {
		return fn(name, copyValue(v))
	})
}

// Entries materializes the full entry set in native iteration order.
func (l *List) Entries() []Entry {
	out := make([]Entry, 0, l.h.mustRaw().count())
	l.Walk(func(name string, v Value) bool {
		out = append(out, Entry{Name: name, Value: v})
		return true
	})
	return out
}

// Equal compares entry sets structurally: same names, same tags, same
// values, in any order. Handle identity and backend play no part.
func (l *List) Equal(other *List) bool {
	if l == nil || other == nil {
		return l == other
	}
	a, b := l.h.mustRaw(), other.h.mustRaw()
	if a.count() != b.count() {
		return false
	}
	eq := true
	a.walk(func(name string, v Value) bool {
		w, ok := b.get(name)
		if !ok || !valueEqual(v, w) {
			eq = false
			return false
		}
		return true
	})
	return eq
}

// Pack serializes the full entry set, nested lists included, into the
// backend's wire format. The buffer is opaque beyond the promise that
// the same backend's Unpack inverts it.
func (l *List) Pack() ([]byte, error) {
	return l.h.mustRaw().pack()
}
