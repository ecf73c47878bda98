package asm

import (
	"fmt"
	"strings"
	"testing"
)

// smallProgram is the classic two numbers addition.
const smallProgram = `
@2
D=A
@3
D=D+A
@0
M=D
`

// largeProgram unrolls a body touching labels, variables and every
// field kind, n times.
func largeProgram(n int) string {
	var buf strings.Builder
	for i := range n {
		fmt.Fprintf(&buf, "(LOOP%d)\n", i)
		fmt.Fprintf(&buf, "  @var%d // load\n", i%64)
		buf.WriteString("  D=M\n  @SCREEN\n  AM=D+A\n  M=-1\n")
		fmt.Fprintf(&buf, "  @LOOP%d\n", (i+1)%n)
		buf.WriteString("  D;JNE\n")
	}
	return buf.String()
}

func BenchmarkCompile_Small(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _, err := Compile("small.asm", smallProgram, true)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCompile_Large(b *testing.B) {
	src := largeProgram(1000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, err := Compile("large.asm", src, true)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAssemble_Lines(b *testing.B) {
	lines := strings.Split(largeProgram(1000), "\n")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Assemble(lines)
	}
}
