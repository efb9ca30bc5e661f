// Package token defines lexical token kinds and trivia for the Kind front end.
// Invariants:
//   - Token.Text is the exact source text of the token (Span.Start..Span.End),
//     except for access segments, whose Text omits the leading '.' or '/'.
//   - Case of the first identifier letter decides LowerIdent vs UpperIdent;
//     the parser relies on it for syntactic roles.
//   - Separator runs are collapsed into a single Sep or SepStrict token.
//   - Comments, doc comments, whitespace and the hash-bang line are leading
//     Trivia and never appear in the main token stream.
//   - `rule`, `val` and `as` are ordinary identifiers.
package token
