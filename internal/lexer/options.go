package lexer

import (
	"kind/internal/diag"
	"kind/internal/source"
)

// maxTokenLength caps a single token; longer tokens are reported and
// turned into Invalid.
const maxTokenLength = 1 << 16

type Options struct {
	// Reporter может быть nil — тогда ошибки игнорируем (но продолжаем лексить).
	Reporter diag.Reporter
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil, nil)
	}
}
