package kafka

import (
	"blogpessoal/internal/api/config"
	"blogpessoal/internal/api/dto"
	"context"
	log "log/slog"
	"strconv"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// PostagemProducer 将帖子变更事件写入 Kafka，key 为帖子 ID 以保证同一帖子有序
type PostagemProducer struct {
	producer sarama.SyncProducer
	topic    string
}

// NewPostagemProducer 根据配置连接 broker
func NewPostagemProducer(cfg config.KafkaConfig) (*PostagemProducer, error) {
	producer, err := sarama.NewSyncProducer(cfg.Brokers, newSaramaConfig(cfg))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create kafka producer")
	}
	return NewPostagemProducerWith(producer, cfg.Topic), nil
}

func NewPostagemProducerWith(producer sarama.SyncProducer, topic string) *PostagemProducer {
	return &PostagemProducer{
		producer: producer,
		topic:    topic,
	}
}

func (s *PostagemProducer) Publish(ctx context.Context, event *dto.PostagemEventDTO) error {
	value, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal postagem event")
	}

	msg := &sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(strconv.FormatUint(event.ID, 10)),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.Type)},
		},
	}

	partition, offset, err := s.producer.SendMessage(msg)
	if err != nil {
		return errors.Wrapf(err, "send postagem event %s/%d", event.Type, event.ID)
	}

	log.DebugContext(ctx, "postagem event published",
		"type", event.Type,
		"id", event.ID,
		"partition", partition,
		"offset", offset,
	)
	return nil
}

func (s *PostagemProducer) Close() error {
	log.Info("Kafka producer closing...")
	return s.producer.Close()
}
