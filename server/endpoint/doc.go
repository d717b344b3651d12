// Package endpoint provides the gin handlers the server registers by
// default: /health, /info and /version.
package endpoint
