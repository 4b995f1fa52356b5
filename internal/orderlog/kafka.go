package orderlog

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/segmentio/kafka-go"
)

const DefaultTopic = "order.placed"

// Kafka publishes each placed order keyed by its id. Writes are synchronous
// so a failed publish is reported to the caller.
type Kafka struct {
	w *kafka.Writer
}

func NewKafka(brokers []string, topic string) *Kafka {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Kafka{w: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}}
}

func message(r Record) (kafka.Message, error) {
	v, err := json.Marshal(r)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(strconv.Itoa(r.ID)),
		Value: v,
		Time:  r.PlacedAt,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte("order.placed")},
		},
	}, nil
}

func (k *Kafka) Append(ctx context.Context, r Record) error {
	m, err := message(r)
	if err != nil {
		return err
	}
	return k.w.WriteMessages(ctx, m)
}

func (k *Kafka) Close() error { return k.w.Close() }
