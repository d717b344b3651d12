// Package util holds small parsing helpers shared by the server and the
// example service.
package util
