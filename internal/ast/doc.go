// Package ast holds the syntax tree produced by the parser.
//
// Nodes live in typed arenas owned by a Builder and are addressed by 1-based
// IDs (0 means "absent"). Each node has a Kind, a Span and a Payload index
// into the per-kind arena; typed accessors (Exprs.Call, Decls.Val, ...)
// return the payload together with an ok flag.
//
// The tree is built once per parse and never mutated afterwards; the Builder
// and everything reachable from it belong to the caller.
package ast
