// Package trace provides the tracing subsystem of the kind front end.
//
// Tracing records where time goes while files are loaded, lexed and
// parsed. It is disabled by default and costs one interface call per
// span when off.
//
// # Usage
//
//	kind parse --trace=- --trace-level=detail ./examples
//
// # Tracers
//
//   - Nop: no-op tracer used when tracing is off
//   - StreamTracer: writes every event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events for a dump on failure
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// A Level selects which Scope is emitted: LevelPhase shows driver and
// pass spans, LevelDetail adds one span per file, LevelDebug adds one
// span per top-level declaration.
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Open(ctx, trace.ScopeFile, "file:"+path)
//	defer span.Count("decls", n).End("ok")
package trace
