package parser

import (
	"strings"
	"unicode"

	"go.creack.net/hack/op"
)

// LineKind enum type.
type LineKind int

const (
	LineSkip        LineKind = iota // Blank, whitespace only or full line comment.
	LineLabel                       // (NAME)
	LineInstruction                 // @value or dest=comp;jump.
)

func (k LineKind) String() string {
	switch k {
	case LineSkip:
		return "skip"
	case LineLabel:
		return "label"
	case LineInstruction:
		return "instruction"
	default:
		return "unknown"
	}
}

// Line is the normalized view of a raw source line.
type Line struct {
	Raw    string // As read, terminator included if any.
	Text   string // Cleaned content. Empty for skipped lines.
	Kind   LineKind
	Number int // 1-based position in the source, 0 when unknown.
}

// Normalize cleans and classifies a single raw line. It never fails,
// malformed content is left for the encoder to degrade.
func Normalize(raw string) Line {
	l := Line{Raw: raw, Kind: LineSkip}

	text := strings.TrimLeftFunc(raw, unicode.IsSpace)
	// Anything past a line terminator is dropped.
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		text = text[:i]
	}

	switch {
	case text == "":
		return l
	case strings.HasPrefix(text, op.CommentPrefix):
		return l
	case text[0] == op.LabelOpenChar:
		l.Kind = LineLabel
		l.Text = text
		return l
	}

	// Same-line comment: cut right before the "//" pair.
	if i := strings.Index(text, op.CommentPrefix); i >= 0 {
		text = text[:i]
	}
	l.Text = strings.TrimRightFunc(text, unicode.IsSpace)
	l.Kind = LineInstruction
	return l
}

// LabelName returns the name declared by a label line, i.e. the text
// between '(' and the first ')'. closed is false when ')' is missing,
// in which case the rest of the line is used.
func (l Line) LabelName() (name string, closed bool) {
	if l.Kind != LineLabel {
		return "", false
	}
	name = l.Text[1:]
	if i := strings.IndexByte(name, op.LabelCloseChar); i >= 0 {
		return name[:i], true
	}
	return name, false
}

// SplitLines splits the input on '\n'. The terminator is kept
// with each line so Normalize sees '\r\n' endings as well.
func SplitLines(input string) []string {
	if input == "" {
		return nil
	}
	lines := strings.SplitAfter(input, "\n")
	// A trailing newline yields an empty last element.
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
