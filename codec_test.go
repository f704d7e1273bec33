package nvlist

import (
	"encoding/binary"
	"errors"
	"testing"
)

func TestPackUnpackRoundtrip(t *testing.T) {
	for _, b := range backends {
		l := buildSample(t, b)

		buf, err := l.Pack()
		if err != nil {
			t.Fatalf("%s: Pack: %s", b, err)
		}
		got, err := Unpack(b, buf)
		if err != nil {
			t.Fatalf("%s: Unpack: %s", b, err)
		}
		if !l.Equal(got) {
			t.Errorf("%s: roundtripped list differs", b)
		}

		got.Close()
		l.Close()
	}
}

// The canonical two-process exchange: pack a small config on one side,
// unpack it on the other, read the fields back.
func TestPackUnpackScenario(t *testing.T) {
	for _, b := range backends {
		l := New(b)
		if err := l.Insert("count", Uint32(3)); err != nil {
			t.Fatal(err)
		}
		if err := l.Insert("label", String("disk0")); err != nil {
			t.Fatal(err)
		}
		buf, err := l.Pack()
		if err != nil {
			t.Fatalf("%s: Pack: %s", b, err)
		}
		l.Close()

		got, err := Unpack(b, buf)
		if err != nil {
			t.Fatalf("%s: Unpack: %s", b, err)
		}
		if v, err := got.GetUint32("count"); err != nil || v != 3 {
			t.Errorf("%s: count=%v,%v", b, v, err)
		}
		if v, err := got.GetString("label"); err != nil || v != "disk0" {
			t.Errorf("%s: label=%q,%v", b, v, err)
		}
		got.Close()
	}
}

func TestPackEmpty(t *testing.T) {
	for _, b := range backends {
		l := New(b)
		buf, err := l.Pack()
		if err != nil {
			t.Fatalf("%s: Pack: %s", b, err)
		}
		got, err := Unpack(b, buf)
		if err != nil {
			t.Fatalf("%s: Unpack: %s", b, err)
		}
		if !got.Empty() {
			t.Errorf("%s: unpacked empty list has %d entries", b, got.Len())
		}
		got.Close()
		l.Close()
	}
}

func TestPackHeaders(t *testing.T) {
	fl := New(FreeBSD)
	fbuf, err := fl.Pack()
	if err != nil {
		t.Fatal(err)
	}
	fl.Close()

	if fbuf[0] != bsdMagic || fbuf[1] != bsdVersion {
		t.Errorf("freebsd header starts %#x %#x", fbuf[0], fbuf[1])
	}
	if len(fbuf) != bsdHeaderSize {
		t.Errorf("empty freebsd pack is %d bytes, want %d", len(fbuf), bsdHeaderSize)
	}
	if desc := binary.LittleEndian.Uint64(fbuf[3:11]); desc != 0 {
		t.Errorf("descriptor count %d in pure pack", desc)
	}

	sl := New(Solaris)
	sbuf, err := sl.Pack()
	if err != nil {
		t.Fatal(err)
	}
	sl.Close()

	if sbuf[0] != solEncodeXDR || sbuf[1] != solEndianBig {
		t.Errorf("solaris preamble starts %#x %#x", sbuf[0], sbuf[1])
	}
	// preamble, version+nvflag, empty terminator
	if want := solPreambleSize + 8 + 8; len(sbuf) != want {
		t.Errorf("empty solaris pack is %d bytes, want %d", len(sbuf), want)
	}
}

func TestUnpackRejectsOtherBackend(t *testing.T) {
	for _, b := range backends {
		other := FreeBSD
		if b == FreeBSD {
			other = Solaris
		}

		l := New(b)
		l.Insert("k", Uint64(1))
		buf, err := l.Pack()
		if err != nil {
			t.Fatal(err)
		}
		l.Close()

		if got, err := Unpack(other, buf); !errors.Is(err, ErrBadHeader) {
			if err == nil {
				got.Close()
			}
			t.Errorf("%s buffer unpacked by %s: err=%v, want ErrBadHeader", b, other, err)
		}
	}
}

func TestUnpackGarbage(t *testing.T) {
	for _, b := range backends {
		cases := [][]byte{
			nil,
			{},
			{0xde, 0xad, 0xbe, 0xef},
			make([]byte, 64), // zeros
		}
		for i, buf := range cases {
			if got, err := Unpack(b, buf); err == nil {
				got.Close()
				t.Errorf("%s: garbage case %d unpacked cleanly", b, i)
			}
		}
	}
}

func TestUnpackTrailingData(t *testing.T) {
	for _, b := range backends {
		l := New(b)
		l.Insert("k", Bool(true))
		buf, err := l.Pack()
		if err != nil {
			t.Fatal(err)
		}
		l.Close()

		buf = append(buf, 0xaa)
		got, err := Unpack(b, buf)
		if err == nil {
			got.Close()
			t.Fatalf("%s: unpack accepted trailing byte", b)
		}
		var c ErrCorrupt
		if !errors.As(err, &c) && !errors.Is(err, ErrTruncated) {
			t.Errorf("%s: trailing byte err=%v", b, err)
		}
	}
}

func TestUnpackBadVersion(t *testing.T) {
	l := New(FreeBSD)
	buf, err := l.Pack()
	if err != nil {
		t.Fatal(err)
	}
	l.Close()

	buf[1] = 0x7f
	var c ErrCorrupt
	if _, err := Unpack(FreeBSD, buf); !errors.As(err, &c) {
		t.Errorf("bad version err=%v, want ErrCorrupt", err)
	}
}

func TestUnpackDeepNesting(t *testing.T) {
	for _, b := range backends {
		leaf := New(b)
		leaf.Insert("v", Uint8(42))
		cur := leaf
		for i := 0; i < 8; i++ {
			parent := New(b)
			if err := parent.Insert("child", cur); err != nil {
				t.Fatal(err)
			}
			cur.Close()
			cur = parent
		}

		buf, err := cur.Pack()
		if err != nil {
			t.Fatalf("%s: Pack: %s", b, err)
		}
		got, err := Unpack(b, buf)
		if err != nil {
			t.Fatalf("%s: Unpack: %s", b, err)
		}
		if !cur.Equal(got) {
			t.Errorf("%s: deep list differs after roundtrip", b)
		}

		got.Close()
		cur.Close()
	}
}

func TestBsdDescriptorsRejected(t *testing.T) {
	l := New(FreeBSD)
	buf, err := l.Pack()
	if err != nil {
		t.Fatal(err)
	}
	l.Close()

	binary.LittleEndian.PutUint64(buf[3:11], 1)
	if _, err := Unpack(FreeBSD, buf); !errors.Is(err, ErrUnsupported) {
		t.Errorf("descriptor buffer err=%v, want ErrUnsupported", err)
	}
}
