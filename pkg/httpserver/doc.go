// Package httpserver runs the HTTP listener with graceful shutdown.
//
// Run blocks until the context is cancelled or SIGINT/SIGTERM arrives, then
// drains in-flight requests within the configured shutdown timeout.
// HealthcheckHandler builds a health endpoint from dependency check
// functions, such as the ones returned by mongodb.Healthcheck.
package httpserver
