package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/davecgh/go-spew/spew"

	"github.com/nvkit/nvlist"
)

var backendFlag = flag.String("backend", "freebsd", "backend that packed the input: freebsd or solaris")

func backend() nvlist.Backend {
	switch *backendFlag {
	case "freebsd":
		return nvlist.FreeBSD
	case "solaris":
		return nvlist.Solaris
	}
	log.Fatalf("unknown backend %q", *backendFlag)
	return 0
}

// plain converts a list into nested maps for dumping. It takes
// ownership of l and the copies Entries hands out.
func plain(l *nvlist.List) map[string]interface{} {
	defer l.Close()
	m := make(map[string]interface{}, l.Len())
	for _, e := range l.Entries() {
		switch v := e.Value.(type) {
		case *nvlist.List:
			m[e.Name] = plain(v)
		case nvlist.ListArray:
			arr := make([]map[string]interface{}, len(v))
			for i, c := range v {
				arr[i] = plain(c)
			}
			m[e.Name] = arr
		default:
			m[e.Name] = v
		}
	}
	return m
}

func process(fname string, b []byte) {
	l, err := nvlist.Unpack(backend(), b)
	if err != nil {
		log.Fatalf("error processing %s: %s", fname, err)
	}
	spew.Dump(plain(l))
}

func main() {
	flag.Parse()

	if flag.NArg() == 0 {
		b, _ := io.ReadAll(os.Stdin)
		process("stdin", b)
		return
	}

	for _, arg := range flag.Args() {
		b, _ := os.ReadFile(arg)
		process(arg, b)
	}
}
