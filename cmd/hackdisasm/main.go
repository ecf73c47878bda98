package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"go.creack.net/hack/disasm"
)

func main() {
	log.SetFlags(0)
	strict := flag.Bool("strict", false, "strict mode, fail on undecodable words")
	flag.Parse()
	f := flag.Arg(0)
	if f == "" {
		tmp := strings.Split(os.Args[0], "/")
		binName := tmp[len(tmp)-1]
		fmt.Fprintf(os.Stderr, "usage: %s <.hack path> [options]\n", binName)
		flag.PrintDefaults()
		return
	}
	binData, err := os.ReadFile(f)
	if err != nil {
		log.Fatalf("failed to read file %q: %s", f, err)
	}

	tmp := strings.Split(f, "/")
	p, err := disasm.Disasm(tmp[len(tmp)-1], binData, *strict)
	if err != nil {
		log.Fatalf("fail: %s.", err)
	}
	for _, w := range p.Warnings {
		log.Printf("Warning: %s", w)
	}
	if p.Name != tmp[len(tmp)-1] {
		log.Printf("Found match in known sources: %s.", p.Name)
	}
	for _, elem := range p.PrettyPrint() {
		fmt.Printf("%s\n", elem)
	}
}
