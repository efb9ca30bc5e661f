package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token; the lexer has already reported it.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// LowerIdent is an identifier starting with [a-z_].
	LowerIdent
	// UpperIdent is a constructor identifier starting with [A-Z].
	UpperIdent
	// DotAccess is a `.segment` glued to a preceding name.
	DotAccess
	// SlashAccess is a `/segment` glued to a preceding name.
	SlashAccess
	// AttrID is an attribute id such as `#inline`.
	AttrID

	// KwRecord represents the 'record' keyword.
	KwRecord // record
	// KwType represents the 'type' keyword.
	KwType // type
	// KwUse represents the 'use' keyword.
	KwUse // use
	// KwMatch represents the 'match' keyword.
	KwMatch // match
	// KwDo represents the 'do' keyword.
	KwDo // do
	// KwAsk represents the 'ask' keyword.
	KwAsk // ask
	// KwOpen represents the 'open' keyword.
	KwOpen // open
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwWith represents the 'with' keyword.
	KwWith // with
	// KwSpecialize represents the 'specialize' keyword.
	KwSpecialize // specialize
	// KwInto represents the 'into' keyword.
	KwInto // into
	// KwIn represents the 'in' keyword.
	KwIn // in

	// CharLit is a single-quoted character literal.
	CharLit
	// StringLit is a double-quoted string literal.
	StringLit
	// F60Lit is a float literal; also every suffix-less decimal numeral.
	F60Lit
	// U60Lit is a 60-bit unsigned literal.
	U60Lit
	// U120Lit is a 120-bit unsigned literal.
	U120Lit
	// NLit is a natural-number literal (`n` suffix).
	NLit

	// Sep is a lenient separator run (newlines / semicolons).
	Sep
	// SepStrict is a separator run terminating a line that carries code.
	SepStrict

	LBrace     // {
	RBrace     // }
	LParen     // (
	RParen     // )
	LBracket   // [
	RBracket   // ]
	Colon      // :
	ColonColon // ::
	Assign     // =
	FatArrow   // =>
	Arrow      // ->
	Comma      // ,
	Dot        // .
	DotDot     // ..
	Hash       // #
	Question   // ?
	At         // @

	Dollar  // $
	Plus    // +
	Minus   // -
	Star    // *
	Slash   // /
	Percent // %
	Caret   // ^
	Amp     // &
	Pipe    // |
	AndAnd  // &&
	OrOr    // ||
	Bang    // !
	Tilde   // ~
	EqEq    // ==
	BangEq  // !=
	Lt      // <
	Gt      // >
	LtEq    // <=
	GtEq    // >=
	Shl     // <<
	Shr     // >>

	kindCount
)

var kindNames = [...]string{
	Invalid:      "Invalid",
	EOF:          "EOF",
	LowerIdent:   "LowerIdent",
	UpperIdent:   "UpperIdent",
	DotAccess:    "DotAccess",
	SlashAccess:  "SlashAccess",
	AttrID:       "AttrID",
	KwRecord:     "KwRecord",
	KwType:       "KwType",
	KwUse:        "KwUse",
	KwMatch:      "KwMatch",
	KwDo:         "KwDo",
	KwAsk:        "KwAsk",
	KwOpen:       "KwOpen",
	KwReturn:     "KwReturn",
	KwLet:        "KwLet",
	KwIf:         "KwIf",
	KwElse:       "KwElse",
	KwWith:       "KwWith",
	KwSpecialize: "KwSpecialize",
	KwInto:       "KwInto",
	KwIn:         "KwIn",
	CharLit:      "CharLit",
	StringLit:    "StringLit",
	F60Lit:       "F60Lit",
	U60Lit:       "U60Lit",
	U120Lit:      "U120Lit",
	NLit:         "NLit",
	Sep:          "Sep",
	SepStrict:    "SepStrict",
	LBrace:       "LBrace",
	RBrace:       "RBrace",
	LParen:       "LParen",
	RParen:       "RParen",
	LBracket:     "LBracket",
	RBracket:     "RBracket",
	Colon:        "Colon",
	ColonColon:   "ColonColon",
	Assign:       "Assign",
	FatArrow:     "FatArrow",
	Arrow:        "Arrow",
	Comma:        "Comma",
	Dot:          "Dot",
	DotDot:       "DotDot",
	Hash:         "Hash",
	Question:     "Question",
	At:           "At",
	Dollar:       "Dollar",
	Plus:         "Plus",
	Minus:        "Minus",
	Star:         "Star",
	Slash:        "Slash",
	Percent:      "Percent",
	Caret:        "Caret",
	Amp:          "Amp",
	Pipe:         "Pipe",
	AndAnd:       "AndAnd",
	OrOr:         "OrOr",
	Bang:         "Bang",
	Tilde:        "Tilde",
	EqEq:         "EqEq",
	BangEq:       "BangEq",
	Lt:           "Lt",
	Gt:           "Gt",
	LtEq:         "LtEq",
	GtEq:         "GtEq",
	Shl:          "Shl",
	Shr:          "Shr",
}

func (k Kind) String() string {
	if k < kindCount && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsSymbolOp reports whether k belongs to the closed symbol-operator set
// `$ + - * / % ^ & | && || ! ~ == != < > <= >= << >>`.
func (k Kind) IsSymbolOp() bool {
	return k >= Dollar && k <= Shr
}

// IsSeparator reports whether k is either separator strength.
func (k Kind) IsSeparator() bool {
	return k == Sep || k == SepStrict
}

// IsNumber reports whether k is one of the numeric literal classes.
func (k Kind) IsNumber() bool {
	return k >= F60Lit && k <= NLit
}
