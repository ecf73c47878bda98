// Package disasm turns .hack binary text back into Hack source.
package disasm

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"go.creack.net/hack/asm"
	"go.creack.net/hack/asm/parser"
	"go.creack.net/hack/assets"
)

func md5sum(words []uint16) string {
	h := md5.New()
	buf := make([]byte, 2)
	for _, w := range words {
		binary.BigEndian.PutUint16(buf, w)
		h.Write(buf)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// searchExistingSrc looks for an embedded source which assembles to the
// program with the given md5. Returns nil if none match.
func searchExistingSrc(srcs fs.FS, search string) (name string, src []byte, err error) {
	entries, err := fs.ReadDir(srcs, assets.SrcDir)
	if err != nil {
		return "", nil, fmt.Errorf("failed to list known sources: %w", err)
	}
	for _, elem := range entries {
		if elem.IsDir() || !strings.HasSuffix(elem.Name(), ".asm") {
			continue
		}
		data, err := fs.ReadFile(srcs, path.Join(assets.SrcDir, elem.Name()))
		if err != nil {
			return "", nil, fmt.Errorf("failed to read file %q: %w", elem.Name(), err)
		}
		_, pr, err := asm.Compile(elem.Name(), string(data), false)
		if err != nil {
			// Should not happen.
			return "", nil, fmt.Errorf("failed to compile known source %q: %w", elem.Name(), err)
		}
		if md5sum(pr.Words()) == search {
			return elem.Name(), data, nil
		}
	}
	return "", nil, nil
}

// Disasm decodes the .hack content. When the program matches one of
// the known sources, that source is returned instead so labels and
// variables are restored.
func Disasm(inputName string, data []byte, strict bool) (*parser.Program, error) {
	words, err := parser.ParseWords(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", inputName, err)
	}

	prog := parser.NewProgram(parser.NewParser(inputName, ""), strict)
	if err := prog.Decode(words); err != nil {
		return nil, fmt.Errorf("failed to decode program: %w", err)
	}

	name, existingSrc, err := searchExistingSrc(assets.SrcFiles, md5sum(words))
	if err != nil {
		return nil, fmt.Errorf("failed to search known sources: %w", err)
	}
	if existingSrc == nil {
		// If we didn't find a match, return what we have.
		return prog, nil
	}

	_, pr2, err := asm.Compile(name, string(existingSrc), strict)
	if err != nil {
		return nil, fmt.Errorf("failed to compile known source %q: %w", name, err)
	}
	return pr2, nil
}
