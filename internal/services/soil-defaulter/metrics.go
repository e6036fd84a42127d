package soil_defaulter

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/LeonardoBeccarini/soilparams/internal/model/entities"
	"github.com/LeonardoBeccarini/soilparams/internal/soil/defaults"
)

const (
	resultDefaulted = "defaulted"
	resultRejected  = "rejected"
	resultMalformed = "malformed"
	resultDuplicate = "duplicate"
)

// Metrics of the soil-defaulter. A nil *Metrics records nothing.
type Metrics struct {
	Profiles       *prometheus.CounterVec
	Estimated      *prometheus.CounterVec
	PredictedCrops *prometheus.CounterVec
	Duration       prometheus.Histogram
	AuditFailures  prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Profiles: f.NewCounterVec(prometheus.CounterOpts{
			Name: "soil_profiles_defaulted_total",
			Help: "Soil profiles processed by result",
		}, []string{"result"}), // defaulted | rejected | malformed | duplicate

		Estimated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "soil_values_estimated_total",
			Help: "Layer values estimated by record",
		}, []string{"record"}), // crop | predicted

		PredictedCrops: f.NewCounterVec(prometheus.CounterOpts{
			Name: "soil_predicted_crops_total",
			Help: "Crops synthesized from the vertosol regressions",
		}, []string{"crop"}),

		Duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "soil_defaulting_duration_seconds",
			Help:    "Duration of a defaulting pass",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05},
		}),

		AuditFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "soil_audit_write_failures_total",
			Help: "Failed audit writes to InfluxDB",
		}),
	}
}

func (m *Metrics) incProfile(result string) {
	if m != nil {
		m.Profiles.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) observeDuration(d time.Duration) {
	if m != nil {
		m.Duration.Observe(d.Seconds())
	}
}

func (m *Metrics) incAuditFailure() {
	if m != nil {
		m.AuditFailures.Inc()
	}
}

func (m *Metrics) observeReport(p *entities.SoilProfile, rep defaults.Report) {
	if m == nil {
		return
	}
	m.Profiles.WithLabelValues(resultDefaulted).Inc()
	m.Estimated.WithLabelValues("crop").Add(float64(rep.Estimated))
	if p.Physical == nil {
		return
	}
	for _, name := range rep.AddedCrops {
		m.PredictedCrops.WithLabelValues(name).Inc()
		if c := p.Physical.Crop(name); c != nil {
			m.Estimated.WithLabelValues("predicted").Add(float64(c.EstimatedCount()))
		}
	}
}
