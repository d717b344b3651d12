// Package version exposes build information for the /info and /version
// endpoints and for startup logs.
//
// Values are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/funcroute/version.Version=1.0.0 \
//	    -X github.com/kbukum/funcroute/version.GitCommit=$(git rev-parse --short HEAD)"
//
// Anything left unset is filled from debug.ReadBuildInfo when available.
package version
