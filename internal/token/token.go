package token

import "kind/internal/source"

// Token is a single lexical unit.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	// Synthetic is set for names written with a leading `%`.
	Synthetic bool
	// Leading holds the trivia in front of the token.
	Leading []Trivia
}

func (t Token) IsLiteral() bool {
	return t.Kind == CharLit || t.Kind == StringLit || t.Kind.IsNumber()
}

// IsName reports whether the token may begin a (possibly qualified) name.
func (t Token) IsName() bool {
	return t.Kind == LowerIdent || t.Kind == UpperIdent
}

// IsAccess reports whether the token is an access segment.
func (t Token) IsAccess() bool {
	return t.Kind == DotAccess || t.Kind == SlashAccess
}

// DocComments returns the text of doc comments in the leading trivia, in order.
func (t Token) DocComments() []string {
	var out []string
	for _, tr := range t.Leading {
		if tr.Kind == TriviaDocComment {
			out = append(out, tr.Text)
		}
	}
	return out
}
