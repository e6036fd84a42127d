package soil_defaulter

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthServiceName is the gRPC health service reported by the soil-defaulter.
const HealthServiceName = "soil.defaulter"

// ConnChecker reports whether the broker connection is usable. mqtt.Client
// satisfies it.
type ConnChecker interface {
	IsConnectionOpen() bool
}

type healthHandler struct {
	mqtt   ConnChecker
	writer *Writer
}

// NewHealthHandler serves /healthz. writer is nil when the audit trail is disabled.
func NewHealthHandler(m ConnChecker, w *Writer) http.Handler {
	return &healthHandler{mqtt: m, writer: w}
}

func (h *healthHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	type status struct {
		Status          string  `json:"status"`
		MQTTConnected   bool    `json:"mqtt_connected"`
		AuditEnabled    bool    `json:"audit_enabled"`
		LastWriteErrorS float64 `json:"last_write_error_age_sec,omitempty"`
	}
	st := status{
		MQTTConnected: h.mqtt != nil && h.mqtt.IsConnectionOpen(),
		AuditEnabled:  h.writer != nil,
	}
	auditOK := true
	if h.writer != nil {
		st.LastWriteErrorS = h.writer.LastErrorAge().Seconds()
		auditOK = h.writer.LastErrorAge() > 30*time.Second
	}

	// ok se deps ok e nessun errore recente di scrittura
	switch {
	case st.MQTTConnected && auditOK:
		st.Status = "ok"
	case st.MQTTConnected:
		st.Status = "degraded"
	default:
		st.Status = "down"
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(st)
}

// Handler /readyz: 200 solo se il broker è connesso.
type readyHandler struct {
	mqtt ConnChecker
}

func NewReadyHandler(m ConnChecker) http.Handler {
	return &readyHandler{mqtt: m}
}

func (h *readyHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	ready := h.mqtt != nil && h.mqtt.IsConnectionOpen()
	w.Header().Set("Content-Type", "application/json")
	if !ready {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	type resp struct {
		Ready bool `json:"ready"`
	}
	_ = json.NewEncoder(w).Encode(resp{Ready: ready})
}

// UpdateHealth sets the gRPC serving status from the broker connection.
func UpdateHealth(hs *health.Server, m ConnChecker) healthpb.HealthCheckResponse_ServingStatus {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if m != nil && m.IsConnectionOpen() {
		st = healthpb.HealthCheckResponse_SERVING
	}
	hs.SetServingStatus("", st)
	hs.SetServingStatus(HealthServiceName, st)
	return st
}

// WatchHealth refreshes the gRPC serving status every interval until ctx is done.
func WatchHealth(ctx context.Context, hs *health.Server, m ConnChecker, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	UpdateHealth(hs, m)
	for {
		select {
		case <-ctx.Done():
			hs.Shutdown()
			return
		case <-t.C:
			UpdateHealth(hs, m)
		}
	}
}
