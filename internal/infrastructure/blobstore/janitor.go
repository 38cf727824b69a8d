package blobstore

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Janitor periodically removes staged uploads that were never published,
// e.g. after a crash between the blob write and the metadata commit.
type Janitor struct {
	store    *Store
	ttl      time.Duration
	interval time.Duration
	log      *zap.Logger
	mCounter *prometheus.CounterVec
}

func NewJanitor(
	store *Store,
	ttl, interval time.Duration,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
) *Janitor {
	return &Janitor{
		store:    store,
		ttl:      ttl,
		interval: interval,
		log:      logger,
		mCounter: mCounter,
	}
}

func (j *Janitor) Worker(ctx context.Context) {
	j.log.Info("starting staging janitor", zap.Duration("interval", j.interval), zap.Duration("ttl", j.ttl))

	defer func() {
		j.log.Info("staging janitor gracefully stopped")
	}()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.RunOnce()
	for {
		select {
		case <-ticker.C:
			j.RunOnce()
		case <-ctx.Done():
			return
		}
	}
}

func (j *Janitor) RunOnce() int {
	removed, err := j.store.SweepStaging(j.ttl)
	if err != nil {
		j.log.Error("staging sweep error", zap.Error(err))
	}
	if removed > 0 {
		j.log.Info("removed orphaned staged uploads", zap.Int("count", removed))
		if j.mCounter != nil {
			j.mCounter.WithLabelValues("staged_blobs_swept_total").Add(float64(removed))
		}
	}

	return removed
}
