package sink

import (
	"context"
	"encoding/json"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/mr1hm/go-sachet-alerts/internal/config"
	"github.com/mr1hm/go-sachet-alerts/internal/models"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Kafka publishes every record of a batch as one message keyed by alert id.
type Kafka struct {
	writer messageWriter
}

func NewKafka(cfg config.KafkaConfig) *Kafka {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Kafka{writer: w}
}

func (k *Kafka) Name() string {
	return "kafka"
}

func (k *Kafka) Deliver(ctx context.Context, batch []models.Disaster) error {
	if len(batch) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(batch))
	for i := range batch {
		msg, err := serializeToMessage(batch[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return k.writer.WriteMessages(ctx, msgs...)
}

func (k *Kafka) Close() error {
	return k.writer.Close()
}

func serializeToMessage(d models.Disaster) (kafkago.Message, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize disaster: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(d.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "disaster_type", Value: []byte(d.Type)},
			{Key: "severity", Value: []byte(d.Severity)},
		},
	}, nil
}
