package router

import (
	"github.com/gin-gonic/gin"

	statushandler "crypto_signal_bot/internal/feature/status/transport/handler"
)

// NewRouter wires the read-only status API. There is no authentication:
// the endpoints expose nothing beyond scan summaries and a count.
func NewRouter(status *statushandler.StatusHandler) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", statushandler.Health)
	r.GET("/scan/latest", status.LatestScan)
	r.GET("/subscribers", status.Subscribers)

	return r
}
