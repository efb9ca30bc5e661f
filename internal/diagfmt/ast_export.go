package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// ASTOutput — результат `kind parse --format json|msgpack` для набора файлов.
type ASTOutput struct {
	Files []*FileNode `json:"files" msgpack:"files"`
}

// FormatASTJSON пишет деревья в JSON с отступами.
func FormatASTJSON(w io.Writer, out ASTOutput) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// FormatASTMsgpack пишет деревья в msgpack для внешних потребителей.
// Ключи совпадают с JSON.
func FormatASTMsgpack(w io.Writer, out ASTOutput) error {
	if err := msgpack.NewEncoder(w).Encode(out); err != nil {
		return fmt.Errorf("msgpack encode: %w", err)
	}
	return nil
}

// DecodeASTMsgpack читает результат FormatASTMsgpack.
func DecodeASTMsgpack(r io.Reader) (ASTOutput, error) {
	var out ASTOutput
	if err := msgpack.NewDecoder(r).Decode(&out); err != nil {
		return ASTOutput{}, fmt.Errorf("msgpack decode: %w", err)
	}
	return out, nil
}
