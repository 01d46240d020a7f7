// Package log provides a small logging layer over [log/slog] with an
// additional Trace level, selectable text or JSON output, and a colorized
// handler for interactive use.
//
// Loggers are immutable values:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithPretty(true))
//
//	logger = logger.With(slog.String("component", "eval"))
//	logger.Debug("field resolved", slog.String("name", "port"))
//
// A process-wide default logger backs the package-level functions. It is
// reconfigured once at startup from command-line flags:
//
//	log.Config(log.WithLevel(log.LevelTrace))
//	log.Info("ready")
//
// Every level has a context-aware variant (for example [InfoContext]);
// the context-unaware functions call them with [DefaultContextProvider].
package log
