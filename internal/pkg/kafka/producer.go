package kafka

import (
	"Bulletin/internal/api/config"
	"Bulletin/internal/model"
	"context"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// ArticleCreatedEvent 文章创建事件
type ArticleCreatedEvent struct {
	ArticleID  string    `json:"articleId"`
	Title      string    `json:"title"`
	WriterID   string    `json:"writerId"`
	BoardID    string    `json:"boardId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// ArticleDeletedEvent 文章删除事件
type ArticleDeletedEvent struct {
	ArticleID  string    `json:"articleId"`
	Title      string    `json:"title"`
	WriterID   string    `json:"writerId"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Producer 文章生命周期事件发布器。尽力而为：发布失败只记日志，不重试不回滚。
type Producer struct {
	producer sarama.AsyncProducer
	topic    string
}

func NewProducer(cfg *config.Config) (*Producer, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	ap, err := sarama.NewAsyncProducer(cfg.Kafka.Brokers, saramaCfg)
	if err != nil {
		return nil, err
	}

	p := &Producer{
		producer: ap,
		topic:    cfg.KafkaArticleProducer.Topic,
	}

	// 异步回收发送错误
	go func() {
		for err := range ap.Errors() {
			log.Error("article event publish error", "topic", err.Msg.Topic, "err", err.Err)
		}
	}()

	return p, nil
}

func (p *Producer) PublishArticleCreated(ctx context.Context, article *model.Article) {
	p.publish(ctx, article.ID, ArticleCreatedEvent{
		ArticleID:  article.ID,
		Title:      article.Title,
		WriterID:   article.WriterID,
		BoardID:    article.BoardID,
		OccurredAt: time.Now(),
	})
}

func (p *Producer) PublishArticleDeleted(ctx context.Context, article *model.Article, reason string) {
	p.publish(ctx, article.ID, ArticleDeletedEvent{
		ArticleID:  article.ID,
		Title:      article.Title,
		WriterID:   article.WriterID,
		Reason:     reason,
		OccurredAt: time.Now(),
	})
}

func (p *Producer) publish(ctx context.Context, key string, event interface{}) {
	b, err := json.Marshal(event)
	if err != nil {
		log.ErrorContext(ctx, "marshal article event error", "err", err)
		return
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(b),
	}

	select {
	case p.producer.Input() <- msg:
	case <-ctx.Done():
		log.WarnContext(ctx, "article event publish canceled", "article_id", key)
	}
}

func (p *Producer) Close() error {
	return p.producer.Close()
}
