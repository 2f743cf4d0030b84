package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// CloudEvent is the envelope for all events on the bus.
type CloudEvent struct {
	ID     string          `json:"id"`
	Source string          `json:"source"`
	Type   string          `json:"type"`
	Time   time.Time       `json:"time"`
	Data   json.RawMessage `json:"data"`
}

// NewCloudEvent wraps a payload in a CloudEvent envelope.
func NewCloudEvent(source, eventType string, data interface{}) (*CloudEvent, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &CloudEvent{
		ID:     uuid.New().String(),
		Source: source,
		Type:   eventType,
		Time:   time.Now().UTC(),
		Data:   raw,
	}, nil
}

// ParseData unmarshals the event payload into v.
func (e *CloudEvent) ParseData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// ParseCloudEvent decodes a raw message into a CloudEvent envelope.
func ParseCloudEvent(raw []byte) (CloudEvent, error) {
	var e CloudEvent
	if err := json.Unmarshal(raw, &e); err != nil {
		return CloudEvent{}, err
	}
	return e, nil
}

// Producer publishes CloudEvents to a single Kafka topic.
type Producer struct {
	writer *kafkago.Writer
	source string
	logger *zap.Logger
}

// NewProducer creates a Producer for the given brokers and topic.
func NewProducer(brokers []string, topic, source string, logger *zap.Logger) *Producer {
	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Producer{writer: writer, source: source, logger: logger}
}

// PublishEvent wraps the payload in a CloudEvent and writes it keyed by the
// given key, so events for one booking stay ordered within a partition.
func (p *Producer) PublishEvent(ctx context.Context, eventType, key string, data interface{}) error {
	event, err := NewCloudEvent(p.source, eventType, data)
	if err != nil {
		return err
	}

	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafkago.Message{
		Key:   []byte(key),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return err
	}

	p.logger.Debug("published event",
		zap.String("type", eventType),
		zap.String("key", key),
	)
	return nil
}

// Close closes the underlying Kafka writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}
