package soil_defaulter

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/LeonardoBeccarini/soilparams/internal/model/entities"
)

type published struct {
	topic   string
	payload []byte
}

type fakePublisher struct {
	mu   sync.Mutex
	msgs []published
	err  error
}

func (f *fakePublisher) PublishMessage(message interface{}) error {
	return f.PublishTo("default", message)
}

func (f *fakePublisher) PublishTo(topic string, message interface{}) error {
	if f.err != nil {
		return f.err
	}
	b, err := json.Marshal(message)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.msgs = append(f.msgs, published{topic: topic, payload: b})
	f.mu.Unlock()
	return nil
}

func (f *fakePublisher) Close() {}

type fakeMessage struct {
	topic   string
	payload []byte
}

func (m fakeMessage) Duplicate() bool   { return false }
func (m fakeMessage) Qos() byte         { return 1 }
func (m fakeMessage) Retained() bool    { return false }
func (m fakeMessage) Topic() string     { return m.topic }
func (m fakeMessage) MessageID() uint16 { return 1 }
func (m fakeMessage) Payload() []byte   { return m.payload }
func (m fakeMessage) Ack()              {}

type fakePointWriter struct {
	mu     sync.Mutex
	points []*write.Point
	err    error
}

func (f *fakePointWriter) WritePoint(_ context.Context, point ...*write.Point) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	f.points = append(f.points, point...)
	f.mu.Unlock()
	return nil
}

type fakeAuditor struct {
	calls int
	err   error
}

func (f *fakeAuditor) Write(context.Context, string, *entities.SoilProfile, time.Time) error {
	f.calls++
	return f.err
}

type fakeConn bool

func (c fakeConn) IsConnectionOpen() bool { return bool(c) }

var errBroker = errors.New("broker down")

const jimbourJSON = `{
  "name": "Jimbour",
  "soil_type": "Black Vertosol",
  "physical": {
    "thickness": [150, 150, 300, 300, 300, 300, 300],
    "ll15": [0.22, 0.23, 0.25, 0.27, 0.29, 0.30, 0.31],
    "dul": [0.48, 0.48, 0.47, 0.46, 0.45, 0.44, 0.43],
    "crops": [
      {"name": "Wheat", "ll": [0.23, null, 0.26, null, null, 0.31, 0.32]}
    ]
  },
  "samples": [
    {"name": "Initial", "thickness": [150, 150, 300, 300, 300, 300, 300], "sw": [0.3, null, null, null, null, null, null]}
  ]
}`

const namelessCropJSON = `{
  "name": "Broken",
  "soil_type": "Black Vertosol",
  "physical": {
    "thickness": [150, 150],
    "ll15": [0.22, 0.23],
    "dul": [0.48, 0.48],
    "crops": [{"name": "  "}]
  }
}`

const jimbourYAML = `name: Jimbour
soil_type: Grey Vertosol
physical:
  thickness: [150, 150, 300]
  ll15: [0.22, 0.23, 0.25]
  dul: [0.48, 0.48, 0.47]
`
