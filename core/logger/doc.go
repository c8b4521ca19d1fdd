// Package logger builds the application's structured Zap loggers.
//
// Loggers come in two presets: a development preset (level "debug") with
// console-friendly output, and a production preset emitting JSON. Every
// component receives its logger from here, including the sync pipeline,
// the API clients, and the HTTP handlers.
//
// # Request Correlation
//
// The WithRayID helper reads the ray_id that the rayid middleware stored in
// the Fiber context and attaches it to the logger, so all log lines produced
// while serving one request share an identifier.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("sync pass finished")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("trigger failed", zap.Error(err))
package logger
