package profile_publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	msg "github.com/LeonardoBeccarini/soilparams/internal/model/messages"
	"github.com/LeonardoBeccarini/soilparams/pkg/dedup"
	"github.com/LeonardoBeccarini/soilparams/pkg/rabbitmq"
)

// ResultTopics are the subscriptions for defaulter answers.
var ResultTopics = []string{msg.DefaultedTopicPrefix + "#", msg.RejectedTopicPrefix + "#"}

type ProfilePublisher struct {
	dir       string
	publisher rabbitmq.IPublisher
	consumer  rabbitmq.IConsumer
	deduper   *dedup.Deduper
	logger    *zap.Logger
}

func NewProfilePublisher(dir string, consumer rabbitmq.IConsumer, publisher rabbitmq.IPublisher, logger *zap.Logger) *ProfilePublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfilePublisher{
		dir:       dir,
		publisher: publisher,
		consumer:  consumer,
		deduper:   dedup.New(2*time.Minute, 10000), // TTL e cap
		logger:    logger,
	}
}

// Start avvia l'ascolto dei risultati e pubblica i profili della directory.
// Con interval > 0 ripubblica a intervalli regolari, altrimenti pubblica una volta e
// attende wait per i risultati.
func (p *ProfilePublisher) Start(ctx context.Context, interval, wait time.Duration) error {
	if p.consumer != nil {
		p.consumer.SetHandler(p.handleResult)
		go p.consumer.ConsumeMessage(ctx)
	}
	defer p.publisher.Close()

	if _, err := p.PublishAll(); err != nil {
		return err
	}
	if interval <= 0 {
		select {
		case <-ctx.Done():
		case <-time.After(wait):
		}
		return nil
	}

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if _, err := p.PublishAll(); err != nil {
				p.logger.Error("publish round failed", zap.Error(err))
			}
		}
	}
}

// PublishAll publishes every profile of the directory and returns how many were sent.
func (p *ProfilePublisher) PublishAll() (int, error) {
	files, err := LoadProfiles(p.dir)
	if err != nil {
		return 0, err
	}
	sent := 0
	for _, f := range files {
		topic := msg.RawTopic(f.ID)
		if err := p.publisher.PublishTo(topic, f.Payload); err != nil {
			p.logger.Error("publish error", zap.String("topic", topic), zap.Error(err))
			continue
		}
		p.logger.Info("profile published", zap.String("file", f.Path), zap.String("topic", topic))
		sent++
	}
	if sent == 0 && len(files) > 0 {
		return 0, fmt.Errorf("no profile published out of %d", len(files))
	}
	return sent, nil
}

func (p *ProfilePublisher) handleResult(_ string, m mqtt.Message) error {
	// Dedup a payload: redelivery QoS1 ha lo stesso payload → stesso hash
	if p.deduper != nil && !p.deduper.ShouldProcessPayload(m.Topic(), m.Payload()) {
		return nil
	}

	switch topic := m.Topic(); {
	case strings.HasPrefix(topic, msg.DefaultedTopicPrefix):
		var evt msg.SoilProfileDefaultedEvent
		if err := json.Unmarshal(m.Payload(), &evt); err != nil {
			return fmt.Errorf("invalid SoilProfileDefaultedEvent: %w", err)
		}
		crops := 0
		if evt.Profile.Physical != nil {
			crops = len(evt.Profile.Physical.Crops)
		}
		p.logger.Info("profile defaulted",
			zap.String("profile", evt.ProfileID),
			zap.Int("crops", crops),
			zap.Strings("added_crops", evt.AddedCrops),
			zap.Int("estimated", evt.EstimatedValues),
			zap.String("wheat_constraint", evt.WheatConstraint))
	case strings.HasPrefix(topic, msg.RejectedTopicPrefix):
		var evt msg.SoilProfileRejectedEvent
		if err := json.Unmarshal(m.Payload(), &evt); err != nil {
			return fmt.Errorf("invalid SoilProfileRejectedEvent: %w", err)
		}
		p.logger.Warn("profile rejected", zap.String("profile", evt.ProfileID), zap.String("reason", evt.Reason))
	}
	return nil
}
