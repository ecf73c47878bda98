package main

import (
	"fmt"
	"log"
	"os"
	"slices"
	"strings"

	"go.creack.net/hack/asm/parser"
	"go.creack.net/hack/cli"
	"go.creack.net/hack/op"
)

func debugDump(pr *parser.Program) {
	log.Printf("%s: %d instructions, %d words", pr.Name, pr.Instructions(), pr.Size())
	for i, w := range pr.Words() {
		log.Printf("%5d: %s (line %d)", i, op.FormatWord(w), pr.SourceMap[i])
	}
	labels := pr.Symbols().Labels()
	log.Printf("Labels (%d):", len(labels))
	for _, elem := range labels {
		log.Printf("\t%-20s %d", elem.Name, elem.Value)
	}
	vars := pr.Symbols().Variables()
	log.Printf("Vars (%d):", len(vars))
	for _, elem := range vars {
		log.Printf("\t%-20s %d", elem.Name, elem.Value)
	}
}

func run(args cli.Args, prettyPrint bool) error {
	if !strings.HasSuffix(args.Input, cli.SourceExt) {
		return fmt.Errorf("input %q is not a %s file", args.Input, cli.SourceExt)
	}
	in, err := cli.Load(args)
	if err != nil {
		return err
	}
	pr := in.Prog
	for _, w := range pr.Warnings {
		log.Printf("Warning: %s", w)
	}
	if args.Debug {
		debugDump(pr)
	}

	if prettyPrint {
		for _, elem := range pr.PrettyPrint() {
			fmt.Printf("%s\n", elem)
		}
		return nil
	}

	if err := os.WriteFile(args.Output, in.Data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

func main() {
	log.SetFlags(0)

	osArgs := os.Args[1:]
	prettyPrint := slices.Contains(osArgs, "-pretty")
	osArgs = slices.DeleteFunc(slices.Clone(osArgs), func(s string) bool { return s == "-pretty" })

	args, err := cli.ParseArgs(osArgs)
	if err != nil {
		tmp := strings.Split(os.Args[0], "/")
		binName := tmp[len(tmp)-1]
		fmt.Fprintf(os.Stderr, "usage: %s <.asm path> [output .hack path] [-d|--debug] [-strict] [-pretty]\n", binName)
		log.Fatalf("fail: %s.", err)
	}

	if err := run(args, prettyPrint); err != nil {
		log.Fatalf("fail: %s.", err)
	}
}
