package main

import (
	crand "crypto/rand"
	"encoding/hex"
	"fmt"
	mrand "math/rand"

	"github.com/nvkit/nvlist"
)

func main() {
	// valid preambles so the random tail reaches the pair decoders
	preambles := map[nvlist.Backend][]byte{
		nvlist.FreeBSD: {0x6c, 0x00},
		nvlist.Solaris: {0x01, 0x00, 0x00, 0x00},
	}

	for {
		for be, pre := range preambles {
			tail := make([]byte, mrand.Intn(200))
			crand.Read(tail)
			doc := append(append([]byte(nil), pre...), tail...)
			fmt.Println(be)
			fmt.Println(hex.Dump(doc))
			l, err := nvlist.Unpack(be, doc)
			fmt.Println("err=", err)
			if err == nil {
				l.Close()
			}
		}
	}
}
