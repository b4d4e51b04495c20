// Package usecase holds the in-process snapshot of the most recent scan.
package usecase

import (
	"sync"

	scanentity "crypto_signal_bot/internal/feature/scan/domain/entity"
)

// LatestScan is a concurrency-safe holder for the most recent completed
// ScanResult. Results are immutable after construction, so readers get
// the pointer as-is; each new scan supersedes the previous snapshot.
type LatestScan struct {
	mu     sync.RWMutex
	result *scanentity.ScanResult
}

// NewLatestScan creates an empty holder.
func NewLatestScan() *LatestScan {
	return &LatestScan{}
}

// Publish stores a completed scan result as the current snapshot.
func (l *LatestScan) Publish(r *scanentity.ScanResult) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.result = r
}

// Get returns the current snapshot, nil before the first completed scan.
func (l *LatestScan) Get() *scanentity.ScanResult {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.result
}
