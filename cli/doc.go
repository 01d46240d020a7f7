// Package cli contains the command line interface for konfi.
//
// # Usage
//
// The CLI evaluates konfi modules and prints the resulting value:
//
//	konfi eval config.konfi
//	cat config.konfi | konfi eval --output=json
//
// Subcommands:
//   - eval: Evaluate a module and print its value (konfi, JSON, or YAML)
//   - fmt:  Parse a module and reprint it with canonical formatting
//   - repl: Load a module and evaluate expressions against it interactively
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorized pretty printing for text format
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/konfi/pprof)
//
// # Examples
//
//	# Debug logging with CPU profiling
//	konfi --log-level=debug --pprof-mode=cpu eval config.konfi
//
//	# Emit YAML with 4-space indent
//	konfi eval --output=yaml --indent=4 config.konfi
package cli
