package kafka

import (
	"blogpessoal/internal/api/config"
	"time"

	"github.com/IBM/sarama"
)

// newSaramaConfig 统一初始化生产者使用的 sarama.Config
func newSaramaConfig(kafkaCfg config.KafkaConfig) *sarama.Config {
	c := sarama.NewConfig()

	if kafkaCfg.Sasl.Enable {
		c.Net.SASL.Enable = true
		c.Net.SASL.Mechanism = sarama.SASLTypePlaintext
		c.Net.SASL.User = kafkaCfg.Sasl.Username
		c.Net.SASL.Password = kafkaCfg.Sasl.Password
	}

	// SyncProducer 要求两者均为 true
	c.Producer.Return.Successes = true
	c.Producer.Return.Errors = true
	c.Producer.RequiredAcks = sarama.WaitForAll
	c.Producer.Idempotent = false
	c.Producer.Partitioner = sarama.NewHashPartitioner
	c.Producer.Timeout = time.Duration(kafkaCfg.Producer.Timeout) * time.Second
	c.Producer.Retry.Max = kafkaCfg.Producer.RetryMax
	c.Producer.Retry.Backoff = time.Duration(kafkaCfg.Producer.RetryBackoff) * time.Millisecond

	return c
}
