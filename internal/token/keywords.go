package token

var keywords = map[string]Kind{
	"record":     KwRecord,
	"type":       KwType,
	"use":        KwUse,
	"match":      KwMatch,
	"do":         KwDo,
	"ask":        KwAsk,
	"open":       KwOpen,
	"return":     KwReturn,
	"let":        KwLet,
	"if":         KwIf,
	"else":       KwElse,
	"with":       KwWith,
	"specialize": KwSpecialize,
	"into":       KwInto,
	"in":         KwIn,
}

// LookupKeyword returns the keyword kind for an exact (case-sensitive) match.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= KwRecord && k <= KwIn
}
