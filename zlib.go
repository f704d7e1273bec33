package nvlist

import (
	"bytes"
	"compress/zlib"
	"sync"
)

// ZlibCompressor compresses a transport frame using the zlib format.
type ZlibCompressor struct{}

var zlibWriterPool = sync.Pool{
	New: func() interface{} {
		zw, _ := zlib.NewWriterLevel(nil, zlib.DefaultCompression)
		return zw
	},
}

func (ZlibCompressor) id() byte { return compZlib }

func (ZlibCompressor) compress(b []byte) ([]byte, error) {
	var comp bytes.Buffer
	zw := zlibWriterPool.Get().(*zlib.Writer)
	defer zlibWriterPool.Put(zw)
	zw.Reset(&comp)

	if _, err := zw.Write(b); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return comp.Bytes(), nil
}

func (ZlibCompressor) decompress(b []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var dec bytes.Buffer
	if _, err := dec.ReadFrom(zr); err != nil {
		return nil, err
	}
	return dec.Bytes(), nil
}
