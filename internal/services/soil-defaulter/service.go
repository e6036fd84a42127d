package soil_defaulter

import (
	"context"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"github.com/LeonardoBeccarini/soilparams/internal/model/entities"
	msg "github.com/LeonardoBeccarini/soilparams/internal/model/messages"
	"github.com/LeonardoBeccarini/soilparams/internal/soil/defaults"
	"github.com/LeonardoBeccarini/soilparams/pkg/dedup"
	"github.com/LeonardoBeccarini/soilparams/pkg/rabbitmq"
)

// RawTopic is the subscription for incoming profiles.
const RawTopic = msg.RawTopicPrefix + "#"

// Auditor records defaulted profiles. Failures are reported but never stop the
// result from being published.
type Auditor interface {
	Write(ctx context.Context, profileID string, p *entities.SoilProfile, ts time.Time) error
}

// Result is the outcome of a single defaulting pass.
type Result struct {
	ProfileID string
	Profile   *entities.SoilProfile
	Report    defaults.Report
}

// Event builds the message published for a defaulted profile.
func (r Result) Event(ts time.Time) msg.SoilProfileDefaultedEvent {
	return msg.SoilProfileDefaultedEvent{
		ProfileID:       r.ProfileID,
		Profile:         msg.FromEntity(r.Profile),
		AddedCrops:      r.Report.AddedCrops,
		EstimatedValues: r.Report.Estimated,
		WheatConstraint: string(r.Report.WheatConstraint),
		Timestamp:       ts,
	}
}

type Service struct {
	defaulter    *defaults.Defaulter
	publisher    rabbitmq.IPublisher
	auditor      Auditor
	deduper      *dedup.Deduper
	metrics      *Metrics
	logger       *zap.Logger
	auditTimeout time.Duration
	now          func() time.Time
}

type ServiceOption func(*Service)

func WithAuditor(a Auditor) ServiceOption        { return func(s *Service) { s.auditor = a } }
func WithDeduper(d *dedup.Deduper) ServiceOption { return func(s *Service) { s.deduper = d } }
func WithMetrics(m *Metrics) ServiceOption       { return func(s *Service) { s.metrics = m } }
func WithAuditTimeout(d time.Duration) ServiceOption {
	return func(s *Service) { s.auditTimeout = d }
}

func NewService(d *defaults.Defaulter, p rabbitmq.IPublisher, logger *zap.Logger, opts ...ServiceOption) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if d == nil {
		d = defaults.NewDefaulter(defaults.WithLogger(logger))
	}
	s := &Service{
		defaulter:    d,
		publisher:    p,
		logger:       logger,
		auditTimeout: 3 * time.Second,
		now:          time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Handle consumes a raw profile from soil/profile/raw/{profile}. Malformed payloads
// are returned as errors (the consumer logs them); configuration errors are
// answered with a rejected event.
func (s *Service) Handle(_ string, m mqtt.Message) error {
	topic, payload := m.Topic(), m.Payload()

	// QoS1 → possibili redelivery, stesso payload = stesso hash.
	// La chiave viene registrata solo dopo la publish riuscita.
	key := dedup.PayloadKey(topic, payload)
	if s.deduper != nil && s.deduper.Seen(key) {
		s.metrics.incProfile(resultDuplicate)
		s.logger.Debug("duplicate profile dropped", zap.String("topic", topic))
		return nil
	}

	doc, err := msg.DecodeProfile(payload, msg.FormatJSON)
	if err != nil {
		s.metrics.incProfile(resultMalformed)
		return fmt.Errorf("soil-defaulter: topic %s: %w", topic, err)
	}

	id := profileID(topic, doc.Name)
	res, err := s.Default(context.Background(), id, doc)
	if err != nil {
		if !errors.Is(err, defaults.ErrConfiguration) {
			return err
		}
		rej := msg.SoilProfileRejectedEvent{ProfileID: id, Reason: err.Error(), Timestamp: s.now().UTC()}
		if perr := s.publisher.PublishTo(msg.RejectedTopic(id), rej); perr != nil {
			return fmt.Errorf("publish rejected profile %s: %w", id, perr)
		}
		s.markProcessed(key)
		s.logger.Warn("profile rejected", zap.String("profile", id), zap.Error(err))
		return nil
	}

	if err := s.publisher.PublishTo(msg.DefaultedTopic(id), res.Event(s.now().UTC())); err != nil {
		return fmt.Errorf("publish defaulted profile %s: %w", id, err)
	}
	s.markProcessed(key)
	s.logger.Info("profile defaulted",
		zap.String("profile", id),
		zap.Strings("added_crops", res.Report.AddedCrops),
		zap.Int("estimated", res.Report.Estimated))
	return nil
}

func (s *Service) markProcessed(key string) {
	if s.deduper != nil {
		s.deduper.Mark(key)
	}
}

// Default runs a defaulting pass over doc and writes the audit trail.
func (s *Service) Default(ctx context.Context, id string, doc msg.SoilProfilePayload) (Result, error) {
	p := doc.ToEntity()

	start := time.Now()
	rep, err := s.defaulter.Run(p)
	s.metrics.observeDuration(time.Since(start))
	if err != nil {
		s.metrics.incProfile(resultRejected)
		return Result{ProfileID: id}, err
	}
	s.metrics.observeReport(p, rep)

	if s.auditor != nil {
		actx, cancel := context.WithTimeout(ctx, s.auditTimeout)
		defer cancel()
		if aerr := s.auditor.Write(actx, id, p, s.now().UTC()); aerr != nil {
			s.metrics.incAuditFailure()
			s.logger.Warn("audit write failed", zap.String("profile", id), zap.Error(aerr))
		}
	}
	return Result{ProfileID: id, Profile: p, Report: rep}, nil
}

// profileID usa il topic "soil/profile/raw/{profile}", oppure il nome del profilo.
func profileID(topic, name string) string {
	if id, ok := msg.ProfileIDFromTopic(topic, msg.RawTopicPrefix); ok {
		return id
	}
	return msg.ProfileSlug(name)
}
