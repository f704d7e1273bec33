package nvlist

// ZstdCompressor compresses a transport frame using the zstd format.
type ZstdCompressor struct {
	Level int // compression level, ZstdDefaultCompression when zero
}

// Zstd constants
const (
	ZstdBestSpeed          = 1
	ZstdBestCompression    = 20
	ZstdDefaultCompression = 3
)

func (ZstdCompressor) id() byte { return compZstd }

func (c ZstdCompressor) compress(b []byte) ([]byte, error) {
	if c.Level == 0 {
		c.Level = ZstdDefaultCompression
	}
	return zstdEncode(b, c.Level)
}

func (c ZstdCompressor) decompress(b []byte) ([]byte, error) {
	return zstdDecode(b)
}
