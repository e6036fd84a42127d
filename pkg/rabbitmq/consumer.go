package rabbitmq

import (
	"context"
	"strings"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

// Handler processes one message received on topic.
type Handler func(topic string, message mqtt.Message) error

// IConsumer subscribes to one or more topics and dispatches to a handler.
type IConsumer interface {
	ConsumeMessage(ctx context.Context)
	SetHandler(handler Handler)
}

// Consumer holds the client and topic for subscribing
type Consumer struct {
	client  mqtt.Client
	handler Handler
	topic   string
	logger  *zap.Logger
}

// NewConsumer creates a Consumer on the shared MQTT client. A nil handler can be
// injected later with SetHandler.
func NewConsumer(client mqtt.Client, topic string, handler Handler, logger *zap.Logger) *Consumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Consumer{
		client:  client,
		topic:   topic,
		handler: handler,
		logger:  logger,
	}
}

func (c *Consumer) SetHandler(handler Handler) {
	c.handler = handler
}

// QoS 1 for profile traffic (no profile must be lost), 0 for the rest.
func qosFor(topic string) byte {
	t := strings.TrimSpace(topic)
	if strings.HasPrefix(t, "soil/profile/raw") ||
		strings.HasPrefix(t, "soil/profile/defaulted") ||
		strings.HasPrefix(t, "soil/profile/rejected") {
		return 1
	}
	return 0
}

func dispatch(logger *zap.Logger, handler Handler, topic string) mqtt.MessageHandler {
	return func(_ mqtt.Client, msg mqtt.Message) {
		if handler == nil {
			logger.Warn("no handler set", zap.String("topic", topic))
			return
		}
		if err := handler(msg.Topic(), msg); err != nil {
			logger.Error("error handling message", zap.String("topic", msg.Topic()), zap.Error(err))
		}
	}
}

// ConsumeMessage subscribes to the topic and processes messages with the handler.
// It blocks until the context is cancelled.
func (c *Consumer) ConsumeMessage(ctx context.Context) {
	token := c.client.Subscribe(c.topic, qosFor(c.topic), dispatch(c.logger, c.handler, c.topic))
	if token.Wait() && token.Error() != nil {
		c.logger.Error("subscribe failed", zap.String("topic", c.topic), zap.Error(token.Error()))
		return
	}
	c.logger.Info("subscribed", zap.String("topic", c.topic))

	<-ctx.Done()

	unsubToken := c.client.Unsubscribe(c.topic)
	unsubToken.Wait()
}

// MultiConsumer -------------------------- [] ---------------------- [] ---------------------
type MultiConsumer struct {
	client  mqtt.Client
	topics  []string
	handler Handler
	logger  *zap.Logger
}

func NewMultiConsumer(client mqtt.Client, topics []string, handler Handler, logger *zap.Logger) *MultiConsumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MultiConsumer{
		client:  client,
		topics:  topics,
		handler: handler,
		logger:  logger,
	}
}

func (m *MultiConsumer) SetHandler(handler Handler) {
	m.handler = handler
}

func (m *MultiConsumer) ConsumeMessage(ctx context.Context) {
	for _, topic := range m.topics {
		token := m.client.Subscribe(topic, qosFor(topic), dispatch(m.logger, m.handler, topic))
		token.Wait()
		if token.Error() != nil {
			m.logger.Error("subscribe failed", zap.String("topic", topic), zap.Error(token.Error()))
		} else {
			m.logger.Info("subscribed", zap.String("topic", topic))
		}
	}

	<-ctx.Done()

	// On context cancel: unsubscribe from all
	for _, topic := range m.topics {
		m.client.Unsubscribe(topic)
	}
}
