// Package logger wraps zap for the setup tool:
//   - a global sugared logger writing console lines to stderr,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level configuration and parsing utilities,
//   - convenience functions (DebugKV, Warnf, etc.).
//
// Operator-facing status lines are printed to stdout by the services
// themselves; this package carries diagnostics only.
package logger
