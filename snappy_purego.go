//go:build !clibs
// +build !clibs

package nvlist

import "github.com/golang/snappy"

func snappyEncode(dst, src []byte) ([]byte, error) { return snappy.Encode(dst, src), nil }

func snappyDecode(dst, src []byte) ([]byte, error) { return snappy.Decode(dst, src) }
