// Package trace provides a tracing subsystem for the pdfsyn front end.
//
// The trace package enables tracking of lexing and parsing passes, per-file
// processing and individual tokens to help diagnose performance issues and hangs.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	pdfsyn diag --trace=- --trace-level=phase docs/
//
// # Architecture
//
// The package provides several tracer implementations:
//
//   - Nop: no-op tracer when disabled
//   - StreamTracer: immediate write to a file or stderr
//   - RingTracer: last N events, dumped when the command exits
//   - ModeBoth: stream and ring fed from one Emit
//
// Token events carry the file path, byte offset and full width of the token,
// so a debug trace can be lined up with `pdfsyn tokenize` output.
//
// # Levels
//
// Tracing verbosity is controlled by levels:
//
//   - LevelOff: No tracing
//   - LevelError: Only crash dumps
//   - LevelPhase: Driver and pass boundaries
//   - LevelDetail: File-level events
//   - LevelDebug: Everything including tokens
//
// # Scopes
//
// Events are categorized by scope:
//
//   - ScopeDriver: Top-level CLI operations
//   - ScopePass: Front-end passes (lex, parse, diagnose)
//   - ScopeFile: Per-file processing
//   - ScopeToken: Individual tokens produced by the lexer
//
// # Context Propagation
//
// Tracers are propagated through the driver via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "parse", parentID)
//	defer span.End("")
package trace
