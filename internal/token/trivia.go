package token

import "kind/internal/source"

// TriviaKind classifies non-significant source pieces.
type TriviaKind uint8

const (
	// TriviaSpace is horizontal whitespace (space, tab, U+2060, U+200B).
	TriviaSpace TriviaKind = iota
	// TriviaLineComment is `//` up to end of line.
	TriviaLineComment
	// TriviaDocComment is `//!` up to end of line.
	TriviaDocComment
	// TriviaHashBang is the `#!` line at the start of a file.
	TriviaHashBang
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaLineComment:
		return "LineComment"
	case TriviaDocComment:
		return "DocComment"
	case TriviaHashBang:
		return "HashBang"
	default:
		return "Trivia(?)"
	}
}

// Trivia is a piece of source attached to the following token.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
