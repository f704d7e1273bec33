package nvlist

import (
	"encoding/binary"
	"io"
)

// Transport frame: magic, backend id, compressor id, uvarint payload
// length, payload. The payload is the Pack output, optionally
// compressed. The frame names the backend so a receiver expecting the
// other one fails loudly instead of unpacking garbage.
const transportMagic = uint32(0x7874766e) // "nvtx"

// maxFrameSize bounds a declared payload length before any allocation.
const maxFrameSize = 1 << 30

// Send packs l and writes it to w as a single frame. If c is nil the
// payload travels uncompressed.
func Send(w io.Writer, l *List, c Compressor) error {
	payload, err := l.Pack()
	if err != nil {
		return err
	}

	cid := compNone
	if c != nil {
		payload, err = c.compress(payload)
		if err != nil {
			return err
		}
		cid = c.id()
	}
	if len(payload) > maxFrameSize {
		return ErrTooLarge
	}

	frame := ble.AppendUint32(make([]byte, 0, len(payload)+16), transportMagic)
	frame = append(frame, byte(l.Backend()), cid)
	frame = binary.AppendUvarint(frame, uint64(len(payload)))
	frame = append(frame, payload...)
	_, err = w.Write(frame)
	return err
}

// Recv reads one frame from r and unpacks it. The frame must have been
// sent from a list on backend b; a frame from the other backend fails
// with ErrCrossBackend.
func Recv(r io.Reader, b Backend) (*List, error) {
	if !b.valid() {
		panic("nvlist: unknown backend")
	}

	var head [6]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return nil, err
	}
	if ble.Uint32(head[:4]) != transportMagic {
		return nil, ErrBadHeader
	}
	if !Backend(head[4]).valid() {
		return nil, ErrBadHeader
	}
	if Backend(head[4]) != b {
		return nil, ErrCrossBackend
	}

	size, err := readUvarint(r)
	if err != nil {
		return nil, err
	}
	if size > maxFrameSize {
		return nil, ErrTooLarge
	}
	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}

	if cid := head[5]; cid != compNone {
		c, err := compressorFor(cid)
		if err != nil {
			return nil, err
		}
		payload, err = c.decompress(payload)
		if err != nil {
			return nil, err
		}
	}
	return Unpack(b, payload)
}

// readUvarint reads one byte at a time so it never consumes past the
// varint on a shared stream.
func readUvarint(r io.Reader) (uint64, error) {
	var u uint64
	var shift uint
	var one [1]byte
	for {
		if _, err := io.ReadFull(r, one[:]); err != nil {
			return 0, err
		}
		c := one[0]
		if shift > 63 || (shift == 63 && c > 1) {
			return 0, ErrCorrupt{errBadVarint}
		}
		u |= uint64(c&0x7f) << shift
		if c&0x80 == 0 {
			return u, nil
		}
		shift += 7
	}
}
