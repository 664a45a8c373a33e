package kafka

import (
	"Bulletin/internal/api/config"
	"Bulletin/internal/repository"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	imagesConsumer sarama.ConsumerGroup
	imagesHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(
	cfg *config.Config,
	articleRepo repository.ArticleRepo,
) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	imagesConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaImageConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	imagesHandler := NewArticleImagesHandler(articleRepo)

	return &ConsumerManager{
		imagesConsumer: imagesConsumer,
		imagesHandler:  imagesHandler,
	}, nil
}

// Start 启动所有消费者
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	go func() {
		topic := cfg.KafkaImageConsumer.Topic
		log.Info("Article images consumer started", "topic", topic)
		for {
			if err := m.imagesConsumer.Consume(ctx, []string{topic}, m.imagesHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.imagesConsumer.Close(); err != nil {
		log.Error("Failed to close images consumer", "err", err)
	}

	return nil
}
