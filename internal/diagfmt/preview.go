package diagfmt

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"kind/internal/diag"
	"kind/internal/source"
)

// fixPreview — строки, затронутые правкой, до и после её применения.
type fixPreview struct {
	before []string
	after  []string
}

func buildFixPreview(fs *source.FileSet, edit diag.FixEdit) (fixPreview, error) {
	if fs == nil {
		return fixPreview{}, fmt.Errorf("nil FileSet")
	}
	file := fs.Get(edit.Span.File)
	if file == nil {
		return fixPreview{}, fmt.Errorf("file %d not found in FileSet", edit.Span.File)
	}

	startPos, endPos := fs.Resolve(edit.Span)
	blockStart, _, err := lineBounds(file, startPos.Line)
	if err != nil {
		return fixPreview{}, err
	}
	_, blockEnd, err := lineBounds(file, max(endPos.Line, startPos.Line))
	if err != nil {
		return fixPreview{}, err
	}

	if edit.Span.Start < blockStart || edit.Span.End > blockEnd || edit.Span.End < edit.Span.Start {
		return fixPreview{}, fmt.Errorf("edit span %d..%d outside lines %d..%d",
			edit.Span.Start, edit.Span.End, blockStart, blockEnd)
	}
	original := file.Content[blockStart:blockEnd]
	relStart := edit.Span.Start - blockStart
	relEnd := edit.Span.End - blockStart

	after := make([]byte, 0, len(original)+len(edit.NewText))
	after = append(after, original[:relStart]...)
	after = append(after, edit.NewText...)
	after = append(after, original[relEnd:]...)

	return fixPreview{
		before: splitPreviewLines(original),
		after:  splitPreviewLines(after),
	}, nil
}

// splitPreviewLines режет по '\n'; завершающий перевод строки не даёт пустой строки.
func splitPreviewLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimRight(string(content), "\n"), "\n")
}

// lineBounds — байтовые границы строки line (1-based) без '\n'.
func lineBounds(f *source.File, line uint32) (start, end uint32, err error) {
	size, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		return 0, 0, fmt.Errorf("file content overflow: %w", err)
	}
	if line == 0 {
		return 0, 0, nil
	}
	idx := int(line) - 1
	switch {
	case idx == 0:
		start = 0
	case idx-1 < len(f.LineIdx):
		start = f.LineIdx[idx-1] + 1
	default:
		return size, size, nil
	}
	end = size
	if idx < len(f.LineIdx) {
		end = f.LineIdx[idx]
	}
	return start, end, nil
}
