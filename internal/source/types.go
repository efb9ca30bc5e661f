package source

import (
	"fmt"
	"strings"
)

// FileID is the index of a file inside its FileSet.
type FileID uint32

// FileFlags records how a file entered the FileSet.
type FileFlags uint8

const (
	FileVirtual FileFlags = 1 << iota // из памяти: stdin, тесты
	FileHadBOM                        // при загрузке срезан UTF-8 BOM
)

// StdinName — путь, под которым регистрируется ввод из stdin.
const StdinName = "<stdin>"

// Has reports whether every bit of flag is set.
func (f FileFlags) Has(flag FileFlags) bool {
	return f&flag == flag
}

func (f FileFlags) String() string {
	if f == 0 {
		return "-"
	}
	parts := make([]string, 0, 2)
	if f.Has(FileVirtual) {
		parts = append(parts, "virtual")
	}
	if f.Has(FileHadBOM) {
		parts = append(parts, "bom")
	}
	return strings.Join(parts, "|")
}

// File is one Kind source buffer. Content keeps the bytes as read (CRLF
// included, BOM stripped); LineIdx holds the offset of every '\n'.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Flags   FileFlags
}

// Synthetic reports whether Path is a placeholder such as "<stdin>"
// rather than something on disk.
func (f *File) Synthetic() bool {
	return len(f.Path) > 1 && strings.HasPrefix(f.Path, "<") && strings.HasSuffix(f.Path, ">")
}

// LineCol is a 1-based position; Col counts bytes.
type LineCol struct {
	Line uint32
	Col  uint32
}

func (lc LineCol) String() string {
	return fmt.Sprintf("%d:%d", lc.Line, lc.Col)
}
