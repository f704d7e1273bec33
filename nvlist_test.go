package nvlist

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var backends = []Backend{FreeBSD, Solaris}

// sampleEntries covers every variant. Nested lists are created on b;
// the caller owns them and must Close (closeEntries).
func sampleEntries(b Backend) []Entry {
	inner := New(b)
	inner.Insert("depth", Uint32(1))

	arr0 := New(b)
	arr0.Insert("idx", Int32(0))
	arr1 := New(b)
	arr1.Insert("idx", Int32(1))

	return []Entry{
		{"null", Null{}},
		{"bool", Bool(true)},
		{"i8", Int8(-8)},
		{"u8", Uint8(8)},
		{"i16", Int16(-1600)},
		{"u16", Uint16(1600)},
		{"i32", Int32(-320000)},
		{"u32", Uint32(320000)},
		{"i64", Int64(-64000000000)},
		{"u64", Uint64(64000000000)},
		{"str", String("hello, nvlist")},
		{"bin", Binary{0x00, 0xff, 0x10}},
		{"list", inner},
		{"bools", BoolArray{true, false, true}},
		{"i8s", Int8Array{-1, 0, 1}},
		{"u8s", Uint8Array{1, 2, 3}},
		{"i16s", Int16Array{-300, 300}},
		{"u16s", Uint16Array{300, 600}},
		{"i32s", Int32Array{-70000, 70000}},
		{"u32s", Uint32Array{70000, 140000}},
		{"i64s", Int64Array{-5000000000, 5000000000}},
		{"u64s", Uint64Array{5000000000, 10000000000}},
		{"strs", StringArray{"a", "", "ccc"}},
		{"lists", ListArray{arr0, arr1}},
	}
}

func closeEntries(entries []Entry) {
	for _, e := range entries {
		switch v := e.Value.(type) {
		case *List:
			v.Close()
		case ListArray:
			for _, c := range v {
				c.Close()
			}
		}
	}
}

func buildSample(t *testing.T, b Backend) *List {
	t.Helper()
	l := New(b)
	entries := sampleEntries(b)
	defer closeEntries(entries)
	for _, e := range entries {
		if err := l.Insert(e.Name, e.Value); err != nil {
			t.Fatalf("%s: Insert(%q): %s", b, e.Name, err)
		}
	}
	return l
}

func TestInsertGet(t *testing.T) {
	for _, b := range backends {
		entries := sampleEntries(b)
		l := buildSample(t, b)

		if l.Len() != len(entries) {
			t.Errorf("%s: Len()=%d, want %d", b, l.Len(), len(entries))
		}
		for _, e := range entries {
			got, err := l.Get(e.Name)
			if err != nil {
				t.Errorf("%s: Get(%q): %s", b, e.Name, err)
				continue
			}
			if !valueEqual(got, e.Value) {
				t.Errorf("%s: Get(%q)=%v, want %v", b, e.Name, got, e.Value)
			}
			closeEntries([]Entry{{e.Name, got}})
		}

		closeEntries(entries)
		l.Close()
	}
}

func TestTypedGetters(t *testing.T) {
	for _, b := range backends {
		l := buildSample(t, b)

		if v, err := l.GetBool("bool"); err != nil || v != true {
			t.Errorf("%s: GetBool=%v,%v", b, v, err)
		}
		if v, err := l.GetInt8("i8"); err != nil || v != -8 {
			t.Errorf("%s: GetInt8=%v,%v", b, v, err)
		}
		if v, err := l.GetUint8("u8"); err != nil || v != 8 {
			t.Errorf("%s: GetUint8=%v,%v", b, v, err)
		}
		if v, err := l.GetInt16("i16"); err != nil || v != -1600 {
			t.Errorf("%s: GetInt16=%v,%v", b, v, err)
		}
		if v, err := l.GetUint16("u16"); err != nil || v != 1600 {
			t.Errorf("%s: GetUint16=%v,%v", b, v, err)
		}
		if v, err := l.GetInt32("i32"); err != nil || v != -320000 {
			t.Errorf("%s: GetInt32=%v,%v", b, v, err)
		}
		if v, err := l.GetUint32("u32"); err != nil || v != 320000 {
			t.Errorf("%s: GetUint32=%v,%v", b, v, err)
		}
		if v, err := l.GetInt64("i64"); err != nil || v != -64000000000 {
			t.Errorf("%s: GetInt64=%v,%v", b, v, err)
		}
		if v, err := l.GetUint64("u64"); err != nil || v != 64000000000 {
			t.Errorf("%s: GetUint64=%v,%v", b, v, err)
		}
		if v, err := l.GetString("str"); err != nil || v != "hello, nvlist" {
			t.Errorf("%s: GetString=%q,%v", b, v, err)
		}
		if v, err := l.GetBinary("bin"); err != nil || !reflect.DeepEqual(v, []byte{0x00, 0xff, 0x10}) {
			t.Errorf("%s: GetBinary=%v,%v", b, v, err)
		}
		if v, err := l.GetStringArray("strs"); err != nil || !reflect.DeepEqual(v, []string{"a", "", "ccc"}) {
			t.Errorf("%s: GetStringArray=%v,%v", b, v, err)
		}
		if v, err := l.GetUint64Array("u64s"); err != nil || !reflect.DeepEqual(v, []uint64{5000000000, 10000000000}) {
			t.Errorf("%s: GetUint64Array=%v,%v", b, v, err)
		}

		inner, err := l.GetList("list")
		if err != nil {
			t.Fatalf("%s: GetList: %s", b, err)
		}
		if v, err := inner.GetUint32("depth"); err != nil || v != 1 {
			t.Errorf("%s: nested GetUint32=%v,%v", b, v, err)
		}
		inner.Close()

		arr, err := l.GetListArray("lists")
		if err != nil {
			t.Fatalf("%s: GetListArray: %s", b, err)
		}
		for i, c := range arr {
			if v, err := c.GetInt32("idx"); err != nil || v != int32(i) {
				t.Errorf("%s: lists[%d].idx=%v,%v", b, i, v, err)
			}
			c.Close()
		}

		l.Close()
	}
}

func TestGetNotFound(t *testing.T) {
	for _, b := range backends {
		l := New(b)
		if _, err := l.Get("missing"); !errors.Is(err, ErrNotFound) {
			t.Errorf("%s: Get(missing) err=%v, want ErrNotFound", b, err)
		}
		if _, err := l.GetUint32("missing"); !errors.Is(err, ErrNotFound) {
			t.Errorf("%s: GetUint32(missing) err=%v, want ErrNotFound", b, err)
		}
		if err := l.Remove("missing"); !errors.Is(err, ErrNotFound) {
			t.Errorf("%s: Remove(missing) err=%v, want ErrNotFound", b, err)
		}
		l.Close()
	}
}

func TestTypeMismatch(t *testing.T) {
	for _, b := range backends {
		l := New(b)
		l.Insert("name", String("disk0"))

		_, err := l.GetInt32("name")
		var tm TypeMismatchError
		if !errors.As(err, &tm) {
			t.Fatalf("%s: GetInt32 err=%v, want TypeMismatchError", b, err)
		}
		if tm.Name != "name" || tm.Requested != TypeInt32 || tm.Actual != TypeString {
			t.Errorf("%s: mismatch detail %+v", b, tm)
		}

		// the entry itself is untouched
		if v, err := l.GetString("name"); err != nil || v != "disk0" {
			t.Errorf("%s: entry damaged after mismatch: %q, %v", b, v, err)
		}
		l.Close()
	}
}

func TestInsertOverwrite(t *testing.T) {
	for _, b := range backends {
		l := New(b)
		l.Insert("k", Uint32(1))
		if err := l.Insert("k", String("two")); err != nil {
			t.Fatalf("%s: overwrite: %s", b, err)
		}
		if l.Len() != 1 {
			t.Errorf("%s: Len()=%d after overwrite, want 1", b, l.Len())
		}
		if v, err := l.GetString("k"); err != nil || v != "two" {
			t.Errorf("%s: overwritten value=%q,%v", b, v, err)
		}
		l.Close()
	}
}

func TestInsertValidation(t *testing.T) {
	for _, b := range backends {
		l := New(b)

		if err := l.Insert("", Bool(true)); !errors.Is(err, ErrEmptyName) {
			t.Errorf("%s: empty name err=%v", b, err)
		}
		if err := l.Insert("a\x00b", Bool(true)); !errors.Is(err, ErrNullByte) {
			t.Errorf("%s: NUL in name err=%v", b, err)
		}
		if err := l.Insert("s", String("a\x00b")); !errors.Is(err, ErrNullByte) {
			t.Errorf("%s: NUL in string err=%v", b, err)
		}
		if err := l.Insert("sa", StringArray{"ok", "a\x00b"}); !errors.Is(err, ErrNullByte) {
			t.Errorf("%s: NUL in string array err=%v", b, err)
		}
		if err := l.Insert("nil", nil); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%s: nil value err=%v", b, err)
		}
		// NUL is data in Binary, not a terminator
		if err := l.Insert("bin", Binary{0, 0, 0}); err != nil {
			t.Errorf("%s: NUL in binary err=%v", b, err)
		}

		if l.Len() != 1 {
			t.Errorf("%s: rejected inserts left entries behind: Len()=%d", b, l.Len())
		}
		l.Close()
	}
}

func TestInsertCrossBackend(t *testing.T) {
	outer := New(FreeBSD)
	inner := New(Solaris)

	if err := outer.Insert("child", inner); !errors.Is(err, ErrCrossBackend) {
		t.Errorf("Insert foreign list err=%v, want ErrCrossBackend", err)
	}
	if err := outer.Insert("children", ListArray{inner}); !errors.Is(err, ErrCrossBackend) {
		t.Errorf("Insert foreign list array err=%v, want ErrCrossBackend", err)
	}

	inner.Close()
	outer.Close()
}

func TestZeroLengthArrays(t *testing.T) {
	for _, b := range backends {
		l := New(b)
		l.Insert("empty", Uint32Array{})
		l.Insert("nostrings", StringArray{})

		if !l.ContainsType("empty", TypeUint32Array) {
			t.Errorf("%s: empty array lost its type", b)
		}
		if v, err := l.GetUint32Array("empty"); err != nil || len(v) != 0 {
			t.Errorf("%s: GetUint32Array=%v,%v", b, v, err)
		}

		buf, err := l.Pack()
		if err != nil {
			t.Fatalf("%s: Pack: %s", b, err)
		}
		got, err := Unpack(b, buf)
		if err != nil {
			t.Fatalf("%s: Unpack: %s", b, err)
		}
		if v, err := got.GetStringArray("nostrings"); err != nil || len(v) != 0 {
			t.Errorf("%s: roundtripped empty string array=%v,%v", b, v, err)
		}
		got.Close()
		l.Close()
	}
}

func TestNestedListIndependence(t *testing.T) {
	for _, b := range backends {
		inner := New(b)
		inner.Insert("a", Uint32(1))

		outer := New(b)
		if err := outer.Insert("child", inner); err != nil {
			t.Fatalf("%s: Insert: %s", b, err)
		}

		// mutate the original after insertion
		inner.Insert("a", Uint32(2))
		inner.Insert("b", Bool(true))

		got, err := outer.GetList("child")
		if err != nil {
			t.Fatalf("%s: GetList: %s", b, err)
		}
		if v, _ := got.GetUint32("a"); v != 1 {
			t.Errorf("%s: stored child saw mutation: a=%d", b, v)
		}
		if got.Contains("b") {
			t.Errorf("%s: stored child saw later insert", b)
		}

		// and the extracted copy is independent of the stored one
		got.Insert("c", Null{})
		again, _ := outer.GetList("child")
		if again.Contains("c") {
			t.Errorf("%s: extracted copy shares storage with list", b)
		}

		again.Close()
		got.Close()
		inner.Close()
		outer.Close()
	}
}

func TestContains(t *testing.T) {
	for _, b := range backends {
		l := New(b)
		l.Insert("present", Int64(7))

		if !l.Contains("present") || l.Contains("absent") {
			t.Errorf("%s: Contains wrong", b)
		}
		if !l.ContainsType("present", TypeInt64) {
			t.Errorf("%s: ContainsType(present, int64)=false", b)
		}
		if l.ContainsType("present", TypeUint64) {
			t.Errorf("%s: ContainsType matched wrong type", b)
		}
		if l.ContainsType("absent", TypeInt64) {
			t.Errorf("%s: ContainsType matched absent name", b)
		}
		l.Close()
	}
}

func TestRemove(t *testing.T) {
	for _, b := range backends {
		l := New(b)
		inner := New(b)
		inner.Insert("x", Bool(false))
		l.Insert("keep", Uint8(1))
		l.Insert("drop", inner)
		inner.Close()

		if err := l.Remove("drop"); err != nil {
			t.Fatalf("%s: Remove: %s", b, err)
		}
		if l.Contains("drop") || l.Len() != 1 {
			t.Errorf("%s: entry survived Remove", b)
		}
		if err := l.Remove("drop"); !errors.Is(err, ErrNotFound) {
			t.Errorf("%s: second Remove err=%v", b, err)
		}
		l.Close()
	}
}

func TestEntries(t *testing.T) {
	for _, b := range backends {
		l := New(b)
		l.Insert("one", Uint32(1))
		l.Insert("two", String("2"))
		l.Insert("three", Int8Array{3})

		want := []Entry{
			{"one", Uint32(1)},
			{"two", String("2")},
			{"three", Int8Array{3}},
		}
		if diff := cmp.Diff(want, l.Entries()); diff != "" {
			t.Errorf("%s: Entries mismatch (-want +got):\n%s", b, diff)
		}
		l.Close()
	}
}

func TestWalkEarlyStop(t *testing.T) {
	for _, b := range backends {
		l := New(b)
		l.Insert("a", Uint8(1))
		l.Insert("b", Uint8(2))
		l.Insert("c", Uint8(3))

		seen := 0
		l.Walk(func(string, Value) bool {
			seen++
			return seen < 2
		})
		if seen != 2 {
			t.Errorf("%s: walk visited %d entries after early stop", b, seen)
		}
		l.Close()
	}
}

func TestEqual(t *testing.T) {
	for _, b := range backends {
		x := New(b)
		x.Insert("a", Uint32(1))
		x.Insert("b", String("s"))

		// same entries, opposite insertion order
		y := New(b)
		y.Insert("b", String("s"))
		y.Insert("a", Uint32(1))

		if !x.Equal(y) {
			t.Errorf("%s: Equal=false for same entry set", b)
		}

		y.Insert("a", Uint32(2))
		if x.Equal(y) {
			t.Errorf("%s: Equal=true after value change", b)
		}

		y.Insert("a", Uint32(1))
		y.Insert("extra", Null{})
		if x.Equal(y) {
			t.Errorf("%s: Equal=true with extra entry", b)
		}

		x.Close()
		y.Close()
	}
}

func TestClone(t *testing.T) {
	for _, b := range backends {
		l := buildSample(t, b)
		c := l.Clone()

		if !l.Equal(c) {
			t.Errorf("%s: clone not equal to original", b)
		}
		c.Insert("str", String("changed"))
		if v, _ := l.GetString("str"); v != "hello, nvlist" {
			t.Errorf("%s: mutating clone changed original", b)
		}

		c.Close()
		l.Close()
	}
}

func TestCloseIdempotent(t *testing.T) {
	l := New(FreeBSD)
	l.Insert("a", Uint32(1))
	l.Close()
	l.Close() // no-op, must not panic
}

func TestUseAfterClosePanics(t *testing.T) {
	l := New(Solaris)
	l.Close()

	defer func() {
		if recover() == nil {
			t.Error("Len on closed list did not panic")
		}
	}()
	l.Len()
}

func TestLiveHandlesBalance(t *testing.T) {
	start := LiveHandles()

	for _, b := range backends {
		l := buildSample(t, b)
		c := l.Clone()

		buf, err := l.Pack()
		if err != nil {
			t.Fatalf("%s: Pack: %s", b, err)
		}
		u, err := Unpack(b, buf)
		if err != nil {
			t.Fatalf("%s: Unpack: %s", b, err)
		}

		inner, err := u.GetList("list")
		if err != nil {
			t.Fatalf("%s: GetList: %s", b, err)
		}

		inner.Close()
		u.Close()
		c.Close()
		l.Close()
	}

	if got := LiveHandles(); got != start {
		t.Errorf("leaked %d native handles", got-start)
	}
}

func TestUnpackErrorLeaksNothing(t *testing.T) {
	start := LiveHandles()

	for _, b := range backends {
		l := buildSample(t, b)
		buf, err := l.Pack()
		if err != nil {
			t.Fatalf("%s: Pack: %s", b, err)
		}
		l.Close()

		// every truncation point must fail without leaving handles
		for n := 0; n < len(buf); n++ {
			if u, err := Unpack(b, buf[:n]); err == nil {
				u.Close()
				t.Fatalf("%s: Unpack of %d/%d bytes succeeded", b, n, len(buf))
			}
		}
	}

	if got := LiveHandles(); got != start {
		t.Errorf("leaked %d native handles on error paths", got-start)
	}
}
