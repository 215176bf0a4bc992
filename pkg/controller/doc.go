// Package controller contains HTTP middlewares and handlers used by the
// diagnostics server.
//
// Provided middlewares:
//   - WithLogger: attaches the base logger and a request ID to the request context and logs each request.
//   - WithRecover: turns handler panics into 500 responses.
//
// Provided helpers:
//   - PprofMux: returns a ServeMux exposing net/http/pprof handlers under /debug/pprof/.
package controller
