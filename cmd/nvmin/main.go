// nvmin shrinks a packed buffer that fails to unpack while preserving
// the failure, to make codec bugs easier to stare at.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/dgryski/go-ddmin"

	"github.com/nvkit/nvlist"
)

var (
	backendFlag = flag.String("backend", "freebsd", "backend that packed the input: freebsd or solaris")
	outFlag     = flag.String("o", "minimized.nv", "output file")
)

func main() {
	flag.Parse()

	var be nvlist.Backend
	switch *backendFlag {
	case "freebsd":
		be = nvlist.FreeBSD
	case "solaris":
		be = nvlist.Solaris
	default:
		log.Fatalf("unknown backend %q", *backendFlag)
	}

	if flag.NArg() != 1 {
		log.Fatal("usage: nvmin [-backend b] [-o out] file")
	}
	b, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	if l, err := nvlist.Unpack(be, b); err == nil {
		l.Close()
		log.Fatal("input unpacks cleanly; nothing to minimize")
	}

	m := ddmin.Minimize(b, func(d []byte) ddmin.Result {
		l, err := nvlist.Unpack(be, d)
		if err != nil {
			return ddmin.Fail
		}
		l.Close()
		return ddmin.Pass
	})

	log.Printf("minimized %d bytes to %d", len(b), len(m))
	if err := os.WriteFile(*outFlag, m, 0o644); err != nil {
		log.Fatal(err)
	}
}
