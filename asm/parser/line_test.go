package parser

import (
	"slices"
	"testing"
)

func TestNormalize(t *testing.T) {
	for _, tc := range []struct {
		name string
		raw  string
		kind LineKind
		text string
	}{
		{"empty", "", LineSkip, ""},
		{"spaces", "  \t ", LineSkip, ""},
		{"newline only", "\r\n", LineSkip, ""},
		{"comment", "// Adds 1 + 2", LineSkip, ""},
		{"indented comment", "\t  // x", LineSkip, ""},
		{"label", "(LOOP)", LineLabel, "(LOOP)"},
		{"indented label", "   (LOOP)\r\n", LineLabel, "(LOOP)"},
		{"address", "@R0", LineInstruction, "@R0"},
		{"crlf", "  @R0\r\n", LineInstruction, "@R0"},
		{"cr only", "@x\r", LineInstruction, "@x"},
		{"trailing comment", "D=A // set D", LineInstruction, "D=A"},
		{"glued comment", "D=A//x", LineInstruction, "D=A"},
		{"trailing spaces", "\t0;JMP\t ", LineInstruction, "0;JMP"},
		{"single slash", "D=A/2", LineInstruction, "D=A/2"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			l := Normalize(tc.raw)
			if l.Kind != tc.kind {
				t.Fatalf("kind = %s, want %s", l.Kind, tc.kind)
			}
			if l.Text != tc.text {
				t.Fatalf("text = %q, want %q", l.Text, tc.text)
			}
			if l.Raw != tc.raw {
				t.Fatalf("raw not preserved: %q", l.Raw)
			}
		})
	}
}

func TestLabelName(t *testing.T) {
	for _, tc := range []struct {
		raw    string
		name   string
		closed bool
	}{
		{"(LOOP)", "LOOP", true},
		{"(LOOP) // comment", "LOOP", true},
		{"(A)(B)", "A", true},
		{"(END", "END", false},
		{"()", "", true},
	} {
		name, closed := Normalize(tc.raw).LabelName()
		if name != tc.name || closed != tc.closed {
			t.Errorf("LabelName(%q) = %q, %t, want %q, %t", tc.raw, name, closed, tc.name, tc.closed)
		}
	}

	if name, closed := Normalize("@x").LabelName(); name != "" || closed {
		t.Errorf("instruction line should not have a label name, got %q", name)
	}
}

func TestSplitLines(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a\nb\n", []string{"a\n", "b\n"}},
		{"a\r\nb", []string{"a\r\n", "b"}},
		{"\n\n", []string{"\n", "\n"}},
	} {
		if got := SplitLines(tc.in); !slices.Equal(got, tc.want) {
			t.Errorf("SplitLines(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
