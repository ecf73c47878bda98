package disasm

import (
	"io/fs"
	"path"
	"slices"
	"strings"
	"testing"

	"go.creack.net/hack/asm"
	"go.creack.net/hack/assets"
)

func TestDisasmKnownSource(t *testing.T) {
	src, err := fs.ReadFile(assets.SrcFiles, path.Join(assets.SrcDir, "Max.asm"))
	if err != nil {
		t.Fatalf("read source: %s", err)
	}
	bin, want, err := asm.Compile("Max.asm", string(src), false)
	if err != nil {
		t.Fatalf("compile: %s", err)
	}

	pr, err := Disasm("Max.hack", bin, true)
	if err != nil {
		t.Fatalf("disasm: %s", err)
	}
	if pr.Name != "Max.asm" {
		t.Fatalf("expected the known source to be found, got %q", pr.Name)
	}
	if !slices.Equal(pr.Words(), want.Words()) {
		t.Fatal("known source words differ")
	}
	if len(pr.Symbols().Labels()) != 3 {
		t.Fatalf("expected labels to be restored, got %v", pr.Symbols().Labels())
	}
}

func TestDisasmUnknown(t *testing.T) {
	bin := "0000000000000111\r\n1110110000010000\n\n0000000000010000\n1110001100001000\n"
	pr, err := Disasm("x.hack", []byte(bin), true)
	if err != nil {
		t.Fatalf("disasm: %s", err)
	}
	if pr.Name != "x.hack" {
		t.Fatalf("unexpected match %q", pr.Name)
	}
	want := []string{"\t@7", "\tD=A", "\t@16", "\tM=D"}
	if got := pr.PrettyPrint(); !slices.Equal(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}

	// Re-assembling the disassembly yields the same binary.
	out, _, err := asm.Compile("x.asm", strings.Join(pr.PrettyPrint(), "\n"), true)
	if err != nil {
		t.Fatalf("compile: %s", err)
	}
	if string(out) != strings.ReplaceAll(strings.ReplaceAll(bin, "\r", ""), "\n\n", "\n") {
		t.Fatalf("round trip mismatch:\n%s", out)
	}
}

func TestDisasmErrors(t *testing.T) {
	if _, err := Disasm("bad.hack", []byte("0101\n"), false); err == nil {
		t.Fatal("expected error on malformed word")
	}
	if _, err := Disasm("bad.hack", []byte("1000000000000000\n"), true); err == nil {
		t.Fatal("expected error on invalid word in strict mode")
	}
	pr, err := Disasm("bad.hack", []byte("1000000000000000\n"), false)
	if err != nil {
		t.Fatalf("disasm: %s", err)
	}
	if len(pr.Warnings) != 1 {
		t.Fatalf("expected one warning, got %v", pr.Warnings)
	}
}
