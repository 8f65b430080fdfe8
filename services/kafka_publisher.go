package services

import (
	"context"

	"github.com/IBM/sarama"
)

// KafkaPublisher sends audit entries through a sarama sync producer.
type KafkaPublisher struct {
	sync sarama.SyncProducer
}

func NewKafkaPublisher(brokers []string, cfg *sarama.Config) (*KafkaPublisher, error) {
	if cfg == nil {
		cfg = sarama.NewConfig()
	}
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Idempotent = true
	cfg.Producer.Return.Successes = true
	cfg.Net.MaxOpenRequests = 1
	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}
	return &KafkaPublisher{sync: producer}, nil
}

// NewKafkaPublisherFromProducer wraps an existing producer.
func NewKafkaPublisherFromProducer(p sarama.SyncProducer) *KafkaPublisher {
	return &KafkaPublisher{sync: p}
}

func (p *KafkaPublisher) Publish(ctx context.Context, topic, key string, payload []byte, headers map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	hs := make([]sarama.RecordHeader, 0, len(headers))
	for k, v := range headers {
		hs = append(hs, sarama.RecordHeader{Key: []byte(k), Value: []byte(v)})
	}
	msg := &sarama.ProducerMessage{
		Topic:   topic,
		Value:   sarama.ByteEncoder(payload),
		Headers: hs,
	}
	if key != "" {
		msg.Key = sarama.StringEncoder(key)
	}
	_, _, err := p.sync.SendMessage(msg)
	return err
}

func (p *KafkaPublisher) Close() error {
	if p.sync == nil {
		return nil
	}
	return p.sync.Close()
}
