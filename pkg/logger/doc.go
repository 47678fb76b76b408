// Package logger builds log/slog loggers from environment-driven
// configuration and provides typed attribute constructors for the log keys
// used across this repository.
//
// JSON output is intended for production log aggregation; text output for
// local development.
//
// # Usage
//
//	var cfg logger.Config
//	config.MustLoad(&cfg)
//
//	log := logger.New(cfg)
//	log.Info("server started", slog.String("addr", addr))
//
// Services accept a *slog.Logger through their options and default to a
// discard logger, so logging is always opt-in at the composition root.
package logger
