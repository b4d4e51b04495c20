// Package handler provides the HTTP handlers of the status API.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	scanentity "crypto_signal_bot/internal/feature/scan/domain/entity"
	"crypto_signal_bot/internal/feature/status/transport/http/dto"
	subentity "crypto_signal_bot/internal/feature/subscriber/domain/entity"
)

// ScanSnapshot exposes the most recent completed scan.
// Following Go convention: interfaces are defined by the consumer
// (handler), not the provider (usecase).
type ScanSnapshot interface {
	Get() *scanentity.ScanResult
}

// SubscriberLister lists the active subscribers.
type SubscriberLister interface {
	ListActive(ctx context.Context) ([]subentity.Subscriber, error)
}

// StatusHandler serves the read-only status endpoints.
type StatusHandler struct {
	latest ScanSnapshot
	subs   SubscriberLister
}

// NewStatusHandler creates a StatusHandler.
func NewStatusHandler(latest ScanSnapshot, subs SubscriberLister) *StatusHandler {
	return &StatusHandler{latest: latest, subs: subs}
}

// Health reports process liveness.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// LatestScan returns a summary of the most recent completed scan, or 404
// before the first scan has finished.
func (h *StatusHandler) LatestScan(c *gin.Context) {
	result := h.latest.Get()
	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no scan completed yet"})
		return
	}

	out := dto.LatestScanResponse{
		Quote:     result.Quote,
		ScannedAt: result.ScannedAt,
		Scanned:   result.Scanned,
		Skipped:   len(result.Skipped),
		Matches:   make([]dto.MatchItem, 0, len(result.Matches)),
	}
	for _, m := range result.Matches {
		out.Matches = append(out.Matches, dto.MatchItem{
			Symbol:   m.Symbol,
			Close:    m.Close,
			Date:     m.Time.UTC().Format("2006-01-02"),
			MA28:     m.MA28,
			StopLoss: m.StopLoss,
			RiskPct:  m.RiskPct,
			Volume:   m.Volume,
		})
	}
	c.JSON(http.StatusOK, out)
}

// Subscribers returns the number of active subscribers. Chat ids are
// deliberately not exposed.
func (h *StatusHandler) Subscribers(c *gin.Context) {
	subs, err := h.subs.ListActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.SubscribersResponse{Active: len(subs)})
}
