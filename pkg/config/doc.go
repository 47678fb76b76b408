// Package config loads environment variables into typed configuration
// structs.
//
// Each package in this repository declares its own Config struct with `env`
// tags and sensible defaults; the application entry point loads them once at
// startup and treats them as immutable afterwards.
//
// A .env file in the working directory is loaded once, if present, before the
// first Parse call. Missing .env files are not an error.
//
// # Usage
//
//	type ServerConfig struct {
//		Addr        string        `env:"SERVER_ADDR" envDefault:":8080"`
//		ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"5s"`
//	}
//
//	var cfg ServerConfig
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
//
// MustLoad panics on failure and is intended for configuration the process
// cannot start without.
package config
