package diag

import "fmt"

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexUnterminatedChar   Code = 1003
	LexBadNumber          Code = 1004
	LexTokenTooLong       Code = 1005
	LexEmptyChar          Code = 1006

	// Синтаксические
	SynInfo                 Code = 2000
	SynUnexpectedToken      Code = 2001
	SynUnclosedDelimiter    Code = 2002
	SynMissingSeparator     Code = 2003
	SynAmbiguousDeclaration Code = 2004
	SynExpectExpression     Code = 2005
	SynExpectIdentifier     Code = 2006
	SynExpectPattern        Code = 2007
	SynExpectConstructor    Code = 2008
	SynExpectParameter      Code = 2009
	SynExpectNumber         Code = 2010
	SynEmptyBlock           Code = 2011

	// Ввод/вывод драйвера
	IOLoadFileError Code = 4001
	IOReadDirError  Code = 4002
)

var codeDescription = map[Code]string{
	UnknownCode:             "Unknown error",
	LexInfo:                 "Lexical information",
	LexUnknownChar:          "Unknown character",
	LexUnterminatedString:   "Unterminated string literal",
	LexUnterminatedChar:     "Unterminated character literal",
	LexBadNumber:            "Malformed numeric literal",
	LexTokenTooLong:         "Token is too long",
	LexEmptyChar:            "Empty character literal",
	SynInfo:                 "Syntax information",
	SynUnexpectedToken:      "Unexpected token",
	SynUnclosedDelimiter:    "Unclosed delimiter",
	SynMissingSeparator:     "Missing line break",
	SynAmbiguousDeclaration: "Not a declaration",
	SynExpectExpression:     "Expected expression",
	SynExpectIdentifier:     "Expected identifier",
	SynExpectPattern:        "Expected pattern",
	SynExpectConstructor:    "Expected constructor name",
	SynExpectParameter:      "Expected parameter",
	SynExpectNumber:         "Expected number",
	SynEmptyBlock:           "Empty block",
	IOLoadFileError:         "Cannot load file",
	IOReadDirError:          "Cannot read directory",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// IsLexical reports whether the code was produced by the lexer.
func (c Code) IsLexical() bool {
	return c >= 1000 && c < 2000
}
