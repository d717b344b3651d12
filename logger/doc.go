// Package logger provides structured logging backed by zerolog.
//
// A Logger carries a service name and optional component tag. Fields are
// passed as maps so call sites stay free of zerolog's builder API:
//
//	log := logger.NewDefault("hello-api").WithComponent("route")
//	log.Error("route function failed", logger.Fields("path", "/api/hello", "error", err.Error()))
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"   # json | console | pretty
//	  output: "stdout" # stdout | stderr
package logger
