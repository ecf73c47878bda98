package parser

import (
	"errors"
	"slices"
	"testing"

	"go.creack.net/hack/op"
)

func TestDecodeInstruction(t *testing.T) {
	for _, tc := range []struct {
		word string
		want string
	}{
		{"0000000000000000", "@0"},
		{"0111111111111111", "@32767"},
		{"0100000000000000", "@16384"},
		{"1110101010000111", "0;JMP"},
		{"1111110111101000", "AM=M+1"},
		{"1110001100000001", "D;JGT"},
		{"1111010101111110", "AMD=D|M;JLE"},
		{"1110110000010000", "D=A"},
	} {
		w, err := op.ParseWord(tc.word)
		if err != nil {
			t.Fatalf("parse word: %s", err)
		}
		n, err := DecodeInstruction(w)
		if err != nil {
			t.Fatalf("decode %s: %s", tc.word, err)
		}
		if got := n.String(); got != tc.want {
			t.Errorf("decode %s = %q, want %q", tc.word, got, tc.want)
		}
	}
}

func TestDecodeInstructionInvalid(t *testing.T) {
	for _, word := range []string{
		"1000000000000000", // Missing compute prefix.
		"1100000000000000",
		"1110100000000000", // Unknown comp code.
		"1111001100000000", // D with the 'a' bit set.
	} {
		w, _ := op.ParseWord(word)
		if _, err := DecodeInstruction(w); !errors.Is(err, ErrInvalidWord) {
			t.Errorf("decode %s: expected ErrInvalidWord, got %v", word, err)
		}
	}
}

// Decoding then encoding any valid compute word is the identity.
func TestDecodeRoundTrip(t *testing.T) {
	var words []uint16
	for name, comp := range op.CompTable {
		for _, dest := range op.DestTable {
			for _, jump := range op.JumpTable {
				words = append(words, op.EncodeCompute(op.UsesMemory(name), comp, dest, jump))
			}
		}
		words = append(words, op.EncodeCompute(op.UsesMemory(name), comp, 0, 0))
	}
	for i := range 300 {
		words = append(words, op.EncodeAddress(uint16(i*109)))
	}

	pr := NewProgram(NewParser("test.hack", ""), true)
	if err := pr.Decode(words); err != nil {
		t.Fatalf("decode: %s", err)
	}
	got, err := pr.Encode()
	if err != nil {
		t.Fatalf("encode: %s", err)
	}
	if !slices.Equal(got, words) {
		t.Fatal("round trip mismatch")
	}
}

func TestProgramDecodeDegraded(t *testing.T) {
	words := []uint16{0b0000000000000101, 0b1000000000010001, 0b1110001100000001}

	pr := NewProgram(NewParser("test.hack", ""), false)
	if err := pr.Decode(words); err != nil {
		t.Fatalf("decode: %s", err)
	}
	if len(pr.Warnings) != 1 || pr.Warnings[0].Line != 2 {
		t.Fatalf("expected 1 warning on line 2, got %v", pr.Warnings)
	}
	var got []string
	for _, n := range pr.Nodes {
		got = append(got, n.String())
	}
	if want := []string{"@5", "D=0;JGT", "D;JGT"}; !slices.Equal(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	if !slices.Equal(pr.Words(), words) {
		t.Fatal("decoded program should keep the input words")
	}

	strict := NewProgram(NewParser("test.hack", ""), true)
	if err := strict.Decode(words); !errors.Is(err, ErrInvalidWord) {
		t.Fatalf("expected ErrInvalidWord in strict mode, got %v", err)
	}
}

func TestParseWords(t *testing.T) {
	words, err := ParseWords("0000000000000010\r\n1110110000010000\n\n")
	if err != nil {
		t.Fatalf("parse: %s", err)
	}
	if want := []uint16{2, 0b1110110000010000}; !slices.Equal(words, want) {
		t.Fatalf("got %v, want %v", words, want)
	}

	for _, in := range []string{"0101\n", "000000000000000x\n", "@1\n"} {
		if _, err := ParseWords(in); err == nil {
			t.Errorf("ParseWords(%q): expected error", in)
		}
	}
}
