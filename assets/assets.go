package assets

import (
	"embed"
)

// Sample Hack programs, one per file, named after what they compute.
// Used to recover labels and variables when disassembling a known
// binary, and as fixtures.
//
//go:embed srcs/*.asm
var SrcFiles embed.FS

// SrcDir is the root of SrcFiles.
const SrcDir = "srcs"
