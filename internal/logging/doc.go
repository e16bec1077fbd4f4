// Structured logging for the darvos command line.
//
// The handler writes slog text records and splits them by severity: records
// below [slog.LevelWarn] go to one stream (stdout), warnings and errors to
// the other (stderr). When a stream is a terminal the level label is colored.
//
// Example usage:
//
//	h := logging.NewHandler(os.Stdout, os.Stderr, logging.Options{
//	    Level: slog.LevelInfo,
//	})
//	slog.SetDefault(slog.New(h))
//
//	slog.Info("using keyboard", "name", "Logitech G915")  // stdout
//	slog.Warn("failed to find input device")               // stderr
//
//	h.SetLevel(slog.LevelDebug)
package logging
