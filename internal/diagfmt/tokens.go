package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"kind/internal/source"
	"kind/internal/token"
)

type TriviaOutput struct {
	Kind string `json:"kind"`
	Text string `json:"text,omitempty"`
}

type TokenOutput struct {
	Kind      string         `json:"kind"`
	Text      string         `json:"text,omitempty"`
	Span      source.Span    `json:"span"`
	Line      uint32         `json:"line"`
	Col       uint32         `json:"col"`
	Synthetic bool           `json:"synthetic,omitempty"`
	Leading   []TriviaOutput `json:"leading,omitempty"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате, по одному на строку.
// Пробельная trivia показывается только видом, комментарии — с текстом.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		var sb strings.Builder
		fmt.Fprintf(&sb, "%3d: %-15s", i+1, tok.Kind.String())
		if tok.Text != "" && !tok.Kind.IsSeparator() {
			fmt.Fprintf(&sb, " %q", tok.Text)
		}
		fmt.Fprintf(&sb, " at %s-%s", startPos, endPos)

		if len(tok.Leading) > 0 {
			leading := make([]string, 0, len(tok.Leading))
			for _, tr := range tok.Leading {
				if tr.Kind == token.TriviaSpace {
					leading = append(leading, tr.Kind.String())
					continue
				}
				leading = append(leading, fmt.Sprintf("%s %q", tr.Kind, tr.Text))
			}
			fmt.Fprintf(&sb, " (leading: %s)", strings.Join(leading, ", "))
		}
		sb.WriteByte('\n')

		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// BuildTokensOutput — токены до EOF включительно в сериализуемом виде.
func BuildTokensOutput(tokens []token.Token, fs *source.FileSet) []TokenOutput {
	out := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		pos, _ := fs.Resolve(tok.Span)
		to := TokenOutput{
			Kind:      tok.Kind.String(),
			Text:      tok.Text,
			Span:      tok.Span,
			Line:      pos.Line,
			Col:       pos.Col,
			Synthetic: tok.Synthetic,
		}
		for _, tr := range tok.Leading {
			to.Leading = append(to.Leading, TriviaOutput{Kind: tr.Kind.String(), Text: tr.Text})
		}
		out = append(out, to)
		if tok.Kind == token.EOF {
			break
		}
	}
	return out
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTokensOutput(tokens, fs))
}
