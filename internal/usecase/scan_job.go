package usecase

import (
	"context"

	applogger "StockSage/pkg/logger"
	"StockSage/pkg/queue"
)

// ScanJobType is the queue message type that triggers a watchlist sweep.
const ScanJobType = "watchlist_scan"

// ScanJobPayload optionally narrows the sweep to specific symbols.
type ScanJobPayload struct {
	Symbols []string `json:"symbols,omitempty"`
}

// ScanJob runs the watchlist sweep when a scan message arrives on the
// queue. The scheduler and the HTTP trigger both publish this job so scans
// serialize through one place.
type ScanJob struct {
	scan *ScanUseCase
	l    *applogger.Logger
}

func NewScanJob(scan *ScanUseCase, l *applogger.Logger) *ScanJob {
	return &ScanJob{scan: scan, l: l}
}

func (j *ScanJob) Name() string { return "watchlist-scan" }
func (j *ScanJob) Type() string { return ScanJobType }

func (j *ScanJob) Handle(ctx context.Context, payload interface{}) error {
	p, err := queue.ParsePayload[ScanJobPayload](payload)
	if err != nil {
		return err
	}

	items := j.scan.Scan(ctx)
	triggered := 0
	for _, it := range items {
		if len(p.Symbols) > 0 && !contains(p.Symbols, it.Symbol) {
			continue
		}
		if it.Err == nil && it.Result.Alert.Triggered {
			triggered++
		}
	}
	if j.l != nil {
		j.l.Info("scan job complete",
			applogger.Int("entries", len(items)),
			applogger.Int("triggered", triggered),
		)
	}
	return nil
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}

var _ queue.Job = (*ScanJob)(nil)
