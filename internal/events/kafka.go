package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaPublisher writes events to Kafka, one topic per stream name.
type KafkaPublisher struct {
	brokers []string

	mu      sync.Mutex
	writers map[string]*kafka.Writer
}

func NewKafkaPublisher(brokers []string) *KafkaPublisher {
	return &KafkaPublisher{
		brokers: brokers,
		writers: make(map[string]*kafka.Writer),
	}
}

func (p *KafkaPublisher) writer(stream string) *kafka.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	w, ok := p.writers[stream]
	if !ok {
		w = &kafka.Writer{
			Addr:     kafka.TCP(p.brokers...),
			Topic:    stream,
			Balancer: &kafka.LeastBytes{},
		}
		p.writers[stream] = w
	}
	return w
}

func (p *KafkaPublisher) Publish(ctx context.Context, stream, eventType string, data any) error {
	event := Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.writer(stream).WriteMessages(ctx, kafka.Message{
		Key:   []byte(eventType),
		Value: eventJSON,
	}); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// Close shuts down all topic writers.
func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for _, w := range p.writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

var _ Publisher = (*KafkaPublisher)(nil)
