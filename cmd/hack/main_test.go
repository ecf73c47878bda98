package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseRAM(t *testing.T) {
	got, err := parseRAM([]string{"0=3", "1=0x10", "2=-1"})
	if err != nil {
		t.Fatalf("parse: %s", err)
	}
	if got[0] != 3 || got[1] != 16 || got[2] != 0xffff {
		t.Fatalf("unexpected values: %v", got)
	}
	for _, bad := range []string{"1", "x=1", "-1=2", "1=70000", "1=y"} {
		if _, err := parseRAM([]string{bad}); err == nil {
			t.Errorf("%q: expected error", bad)
		}
	}
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	buf := bytes.NewBuffer(nil)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("%v: %s", args, err)
	}
	return buf.String()
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Max.asm")
	if err := os.WriteFile(src, []byte("@R0\nD=M\n@R1\nD=D-M\n@BIG\nD;JGT\n@R1\nD=M\n@OUT\n0;JMP\n(BIG)\n@R0\nD=M\n(OUT)\n@R2\nM=D\n(END)\n@END\n0;JMP\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if out := execute(t, "asm", src, "-o", "-"); !strings.HasPrefix(out, "0000000000000000\n1111110000010000\n") {
		t.Fatalf("unexpected asm output:\n%s", out)
	}
	execute(t, "asm", src, "-o", "")
	bin := filepath.Join(dir, "Max.hack")
	if _, err := os.Stat(bin); err != nil {
		t.Fatalf("expected default output: %s", err)
	}

	if out := execute(t, "disasm", bin); !strings.Contains(out, "D;JGT") {
		t.Fatalf("unexpected disasm output:\n%s", out)
	}

	out := execute(t, "run", src, "--ram", "0=3,1=9", "--dump", "8")
	if !strings.Contains(out, "0x0000: 0003 0009 0009") {
		t.Fatalf("unexpected dump:\n%s", out)
	}

	if out := execute(t, "symbols", src); !strings.Contains(out, "BIG") || !strings.Contains(out, "OUT") {
		t.Fatalf("unexpected symbols output:\n%s", out)
	}
}
