// Package app contains the application logic behind the command line: it
// loads a model from HCL or YAML, and validates, exports, traces or prints
// it. It is decoupled from any specific entrypoint like a CLI.
package app
