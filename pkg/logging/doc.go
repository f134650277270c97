// Package logging builds the structured loggers used across apputil.
//
// It wraps log/slog so every component logs the same way:
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatJSON,
//	})
//
//	logger.Debug("storage loaded", "path", path, "items", n)
//
// A Config with a Mirror writer additionally copies every record, as JSON,
// to that writer (the CLI uses this for --log-file).
//
// Components accept a *slog.Logger in their constructor. A nil logger means
// Nop().
package logging
