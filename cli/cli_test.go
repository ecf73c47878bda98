package cli

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestParseArgs(t *testing.T) {
	for _, tc := range []struct {
		name string
		args []string
		want Args
		err  bool
	}{
		{
			name: "input only",
			args: []string{"prog/Max.asm"},
			want: Args{Input: "prog/Max.asm", Output: "prog/Max.hack"},
		},
		{
			name: "output and long debug",
			args: []string{"Max.asm", "out.hack", "--debug"},
			want: Args{Input: "Max.asm", Output: "out.hack", Debug: true},
		},
		{
			name: "flags first",
			args: []string{"-d", "-strict", "-n", "100", "Max.asm"},
			want: Args{Input: "Max.asm", Output: "Max.hack", Debug: true, Strict: true, Cycles: 100},
		},
		{
			name: "glued cycles",
			args: []string{"Max.hack", "-n42"},
			want: Args{Input: "Max.hack", Output: "Max.hack", Cycles: 42},
		},
		{name: "no input", args: []string{"-d"}, err: true},
		{name: "bad extension", args: []string{"Max.s"}, err: true},
		{name: "bad cycles", args: []string{"Max.asm", "-n", "x"}, err: true},
		{name: "negative cycles", args: []string{"Max.asm", "-n-1"}, err: true},
		{name: "unknown flag", args: []string{"Max.asm", "-x"}, err: true},
		{name: "too many", args: []string{"a.asm", "b.hack", "c.hack"}, err: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseArgs(tc.args)
			if tc.err {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse: %s", err)
			}
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestParseConfig(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Add.asm")
	if err := os.WriteFile(src, []byte("@2\nD=A\n@3\nD=D+A\n@0\nM=D\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, in, err := ParseConfig([]string{src, "-d"})
	if err != nil {
		t.Fatalf("parse config: %s", err)
	}
	if in.ShortName != "Add" {
		t.Fatalf("short name = %q", in.ShortName)
	}
	if len(cfg.Program) != 6 || !cfg.Trace {
		t.Fatalf("unexpected config %+v", cfg)
	}

	// Feed the assembled output back as a binary input.
	bin := filepath.Join(dir, "Add.hack")
	if err := os.WriteFile(bin, in.Data, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg2, in2, err := ParseConfig([]string{bin})
	if err != nil {
		t.Fatalf("parse config: %s", err)
	}
	if !slices.Equal(cfg.Program, cfg2.Program) {
		t.Fatalf("programs differ: %v vs %v", cfg.Program, cfg2.Program)
	}
	if in2.Prog.Name != "Add.asm" {
		t.Fatalf("expected the known source to be found, got %q", in2.Prog.Name)
	}

	if _, _, err := ParseConfig([]string{filepath.Join(dir, "missing.asm")}); err == nil {
		t.Fatal("expected error on missing file")
	}

	bad := filepath.Join(dir, "Bad.asm")
	if err := os.WriteFile(bad, []byte("D=Q\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := ParseConfig([]string{bad, "-strict"}); err == nil {
		t.Fatal("expected error in strict mode")
	}
	if _, in, err := ParseConfig([]string{bad}); err != nil || len(in.Prog.Warnings) != 1 {
		t.Fatalf("expected 1 warning without strict, got %v", err)
	}
}
