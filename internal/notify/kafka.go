package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"gymbook/internal/metrics"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/compress"
)

const (
	headerEventID   = "event-id"
	headerEventType = "event-type"
	headerSource    = "source"
	headerTimestamp = "timestamp"
)

// KafkaPublisher writes email jobs to the notifications topic. Messages are
// keyed by recipient set so retries for the same audience stay ordered on
// one partition.
type KafkaPublisher struct {
	writer *kafka.Writer
	source string
	mu     sync.Mutex
	closed bool
}

func NewKafkaPublisher(brokers []string, topic string, source string) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Compression:  compress.Snappy,
		BatchTimeout: 50 * time.Millisecond,
	}

	return &KafkaPublisher{writer: writer, source: source}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, msg EmailMessage) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return fmt.Errorf("publisher is closed")
	}
	p.mu.Unlock()

	kafkaMsg, err := buildMessage(msg, p.source)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, kafkaMsg); err != nil {
		return fmt.Errorf("failed to publish %s notification: %w", msg.Kind, err)
	}

	metrics.IncNotification(msg.Kind)
	return nil
}

func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	return p.writer.Close()
}

func buildMessage(msg EmailMessage, source string) (kafka.Message, error) {
	if len(msg.To) == 0 {
		return kafka.Message{}, fmt.Errorf("email message has no recipients")
	}

	value, err := json.Marshal(msg)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to encode email message: %w", err)
	}

	return kafka.Message{
		Key:   []byte(strings.Join(msg.To, ",")),
		Value: value,
		Headers: []kafka.Header{
			{Key: headerEventID, Value: []byte(uuid.NewString())},
			{Key: headerEventType, Value: []byte(msg.Kind)},
			{Key: headerSource, Value: []byte(source)},
			{Key: headerTimestamp, Value: []byte(time.Now().UTC().Format(time.RFC3339))},
		},
	}, nil
}
