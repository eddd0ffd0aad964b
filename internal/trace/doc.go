// Package trace records what the analyzer is doing: driver runs, per-file
// passes and, at debug level, individual resolver queries.
//
// Enable it from the command line:
//
//	zigscope check --trace=- --trace-level=phase ./src
//
// Tracers:
//
//   - Nop: used when tracing is off
//   - StreamTracer: writes every event as it happens
//   - RingTracer: keeps the last N events for a dump on failure
//
// Scopes, coarse to fine: driver, pass, file, query.
//
// The tracer travels through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End(path)
package trace
