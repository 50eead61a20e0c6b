// Package logger provides a small wrapper around zap to offer:
//   - a global sugared logger with a console encoder,
//   - a rotating file sink for the terminal UI, which owns stdout,
//   - context helpers (ToContext/FromContext/WithName/WithKV/WithFields),
//   - level parsing and convenience functions (Infof, ErrorKV, etc.).
//
// Services accept a context and extract the logger from it, so every log
// line carries the name of the component that wrote it.
package logger
