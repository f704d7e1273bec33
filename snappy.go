package nvlist

// SnappyCompressor compresses a transport frame using the Snappy
// format.
type SnappyCompressor struct{}

func (SnappyCompressor) id() byte { return compSnappy }

func (SnappyCompressor) compress(b []byte) ([]byte, error) {
	return snappyEncode(nil, b)
}

func (SnappyCompressor) decompress(b []byte) ([]byte, error) {
	return snappyDecode(nil, b)
}
