package soil_defaulter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/LeonardoBeccarini/soilparams/internal/model/entities"
)

// PointWriter is the subset of api.WriteAPIBlocking used by the audit writer.
type PointWriter interface {
	WritePoint(ctx context.Context, point ...*write.Point) error
}

// Writer incapsula la WriteAPI bloccante dietro un circuit breaker e traccia l'ultimo
// errore di scrittura per /healthz e /readyz.
type Writer struct {
	api     PointWriter
	cb      *gobreaker.CircuitBreaker
	logger  *zap.Logger
	mu      sync.RWMutex
	lastErr time.Time
	points  int64
}

// NewWriter builds an audit writer. cb may be nil, in which case writes go straight
// to InfluxDB.
func NewWriter(w PointWriter, cb *gobreaker.CircuitBreaker, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{
		api:     w,
		cb:      cb,
		logger:  logger,
		lastErr: time.Now().Add(-24 * time.Hour), // di default "lontano nel tempo"
	}
}

// Write stores one point per crop layer of p.
func (w *Writer) Write(ctx context.Context, profileID string, p *entities.SoilProfile, ts time.Time) error {
	points := ProfileToPoints(profileID, p, ts)
	if len(points) == 0 {
		return nil
	}

	do := func() (interface{}, error) {
		return nil, w.api.WritePoint(ctx, points...)
	}
	var err error
	if w.cb != nil {
		_, err = w.cb.Execute(do)
	} else {
		_, err = do()
	}
	if err != nil {
		w.mu.Lock()
		w.lastErr = time.Now()
		w.mu.Unlock()
		return fmt.Errorf("influx write %s: %w", profileID, err)
	}

	w.mu.Lock()
	w.points += int64(len(points))
	w.mu.Unlock()
	w.logger.Debug("audit written", zap.String("profile", profileID), zap.Int("points", len(points)))
	return nil
}

// LastErrorAge ritorna da quanto tempo non si verificano errori di scrittura.
func (w *Writer) LastErrorAge() time.Duration {
	if w == nil {
		return 99999 * time.Hour
	}
	w.mu.RLock()
	t := w.lastErr
	w.mu.RUnlock()
	return time.Since(t)
}

// Points returns how many points have been written so far.
func (w *Writer) Points() int64 {
	if w == nil {
		return 0
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.points
}
