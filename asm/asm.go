// Package asm assembles Hack source into binary text.
package asm

import (
	"bytes"
	"fmt"

	"go.creack.net/hack/asm/parser"
)

// Assemble translates raw source lines into 16 character binary words,
// one per instruction. Malformed input degrades to default encodings,
// it never fails.
func Assemble(lines []string) []string {
	pr := parser.NewProgram(parser.NewLinesParser("", lines), false)
	if _, err := pr.Encode(); err != nil {
		// Unreachable outside of strict mode.
		panic(fmt.Errorf("unexpected encode failure: %w", err))
	}
	return pr.Lines()
}

// Compile assembles the source into the .hack file content, each word on
// its own line. The program is returned for its symbols, warnings and
// source map.
func Compile(inputName, inputData string, strict bool) ([]byte, *parser.Program, error) {
	p := parser.NewParser(inputName, inputData)
	p.Parse()

	pr := parser.NewProgram(p, strict)
	if _, err := pr.Encode(); err != nil {
		return nil, nil, fmt.Errorf("failed to encode program: %w", err)
	}

	buf := bytes.NewBuffer(nil)
	for _, line := range pr.Lines() {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), pr, nil
}
