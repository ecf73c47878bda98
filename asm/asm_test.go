package asm

import (
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"
	"testing"

	"go.creack.net/hack/assets"
)

func TestAssemble(t *testing.T) {
	for _, tc := range []struct {
		name  string
		lines []string
		want  []string
	}{
		{
			name:  "add",
			lines: []string{"@2", "D=A", "@3", "D=D+A", "@0", "M=D"},
			want: []string{
				"0000000000000010",
				"1110110000010000",
				"0000000000000011",
				"1110000010010000",
				"0000000000000000",
				"1110001100001000",
			},
		},
		{
			name:  "label",
			lines: []string{"(START)", "@START", "0;JMP"},
			want:  []string{"0000000000000000", "1110101010000111"},
		},
		{
			name:  "variable",
			lines: []string{"@foo", "M=1", "@foo", "M=0"},
			want:  []string{"0000000000010000", "1110111111001000", "0000000000010000", "1110101010001000"},
		},
		{
			name:  "degraded",
			lines: []string{"@12abc", "D=Q", "X=D;JXX"},
			want:  []string{"0000000000001100", "1110000000010000", "1110001100000000"},
		},
		{
			name:  "nothing to encode",
			lines: []string{"", "// only a comment", "(LABEL)"},
			want:  []string{},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := Assemble(tc.lines)
			if !slices.Equal(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for _, elem := range got {
				if len(elem) != 16 || strings.Trim(elem, "01") != "" {
					t.Fatalf("invalid word %q", elem)
				}
			}
		})
	}
}

func TestCompileGolden(t *testing.T) {
	entries, err := fs.ReadDir(assets.SrcFiles, assets.SrcDir)
	if err != nil {
		t.Fatalf("read assets: %s", err)
	}
	if len(entries) == 0 {
		t.Fatal("no sample sources")
	}
	for _, elem := range entries {
		name := strings.TrimSuffix(elem.Name(), ".asm")
		t.Run(name, func(t *testing.T) {
			src, err := fs.ReadFile(assets.SrcFiles, path.Join(assets.SrcDir, elem.Name()))
			if err != nil {
				t.Fatalf("read source: %s", err)
			}
			want, err := os.ReadFile("testdata/" + name + ".hack")
			if err != nil {
				t.Fatalf("read golden: %s", err)
			}

			got, pr, err := Compile(elem.Name(), string(src), true)
			if err != nil {
				t.Fatalf("compile: %s", err)
			}
			if string(got) != string(want) {
				t.Fatalf("output mismatch:\n%s\nwant:\n%s", got, want)
			}
			if len(pr.SourceMap) != pr.Size() {
				t.Fatalf("source map has %d entries for %d words", len(pr.SourceMap), pr.Size())
			}

			// The line based entry point agrees with Compile.
			lines := Assemble(strings.Split(string(src), "\n"))
			if strings.Join(lines, "\n")+"\n" != string(want) {
				t.Fatal("Assemble and Compile disagree")
			}
		})
	}
}

func TestCompileStrict(t *testing.T) {
	if _, _, err := Compile("bad.asm", "@1\nD=Q\n", true); err == nil {
		t.Fatal("expected error in strict mode")
	}
	out, pr, err := Compile("bad.asm", "@1\nD=Q\n", false)
	if err != nil {
		t.Fatalf("compile: %s", err)
	}
	if string(out) != "0000000000000001\n1110000000010000\n" {
		t.Fatalf("unexpected output %q", out)
	}
	if len(pr.Warnings) != 1 || pr.Warnings[0].Line != 2 {
		t.Fatalf("expected one warning on line 2, got %v", pr.Warnings)
	}
}
