// Package diag defines the diagnostic model shared by the lexer and the parser.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity: Info, Warning or Error (severity.go).
//   - Code: compact numeric identifier with a stable string form (LEX1001,
//     SYN2003, ...). Lexical codes live in 1000..1999, syntax codes in
//     2000..2999, driver and I/O codes in 4000..4999.
//   - Message: short human text.
//   - Primary: the source.Span the diagnostic points at. Every diagnostic has
//     one; an empty span marks a position (for example end of file).
//   - Notes: optional secondary spans, e.g. "delimiter opened here".
//   - Fixes: optional textual edits, e.g. inserting a missing line break.
//
// # Emitting
//
// Producers depend only on Reporter. ReportBuilder accumulates notes and
// fixes before calling Emit; BagReporter collects into a Bag, which supports
// sorting, deduplication and a hard limit on stored items.
//
// Rendering lives in internal/diagfmt. This package performs no I/O.
package diag
