package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/funcroute/version"
)

// InfoResponse is the /info body: the build information plus the service
// name and how long the process has been up.
type InfoResponse struct {
	Service string `json:"service"`
	*version.Info
	StartedAt string `json:"started_at"`
	Uptime    string `json:"uptime"`
	Timestamp string `json:"timestamp"`
}

var startTime = time.Now()

// Info returns a handler reporting the service name, build information and
// uptime.
func Info(serviceName string) gin.HandlerFunc {
	started := startTime.UTC().Format(time.RFC3339)
	return func(c *gin.Context) {
		now := time.Now()
		c.JSON(http.StatusOK, InfoResponse{
			Service:   serviceName,
			Info:      version.Get(),
			StartedAt: started,
			Uptime:    now.Sub(startTime).Round(time.Second).String(),
			Timestamp: now.UTC().Format(time.RFC3339),
		})
	}
}
