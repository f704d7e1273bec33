package nvlist

// A Compressor squeezes a packed buffer before framing and restores it
// on receive. Compression is a transport concern only: Pack output
// itself always stays in the backend's native format.
type Compressor interface {
	id() byte
	compress(b []byte) ([]byte, error)
	decompress(b []byte) ([]byte, error)
}

// Compressor ids carried in the transport frame.
const (
	compNone byte = iota
	compSnappy
	compZlib
	compZstd
)

func compressorFor(id byte) (Compressor, error) {
	switch id {
	case compSnappy:
		return SnappyCompressor{}, nil
	case compZlib:
		return ZlibCompressor{}, nil
	case compZstd:
		return ZstdCompressor{}, nil
	}
	return nil, ErrUnsupported
}
