package kafka

import (
	"Bulletin/internal/model"
	"Bulletin/internal/repository"
	"context"
	log "log/slog"
	"sort"
	"strings"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

var acceptedImageURLPrefixes = []string{"http://", "https://", "/"}

// ArticleImagesHandler 消费图片变更事件，对文章图片集合做幂等的全量替换
type ArticleImagesHandler struct {
	articleRepo repository.ArticleRepo
}

func NewArticleImagesHandler(articleRepo repository.ArticleRepo) *ArticleImagesHandler {
	return &ArticleImagesHandler{
		articleRepo: articleRepo,
	}
}

func (s *ArticleImagesHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("article images consumer setup")
	return nil
}

func (s *ArticleImagesHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("article images consumer cleanup")
	return nil
}

func (s *ArticleImagesHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-article-images consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-article-images process batch error", "err", err)
		return err
	}
	log.Info("topic-article-images consume claim end")
	return nil
}

// logic 单条消息入口。畸形事件在这里被消化掉（返回 nil 即 ack），
// 只有基础设施错误（读库、保存冲突）才返回 error 交给重试。
func (s *ArticleImagesHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	outcome, err := s.Apply(ctx, msg.Value)
	if err != nil {
		return err
	}

	switch outcome.Kind {
	case OutcomeApplied:
		log.InfoContext(ctx, "图片变更事件已应用", "images", outcome.Applied)
	case OutcomeSkipped:
		log.InfoContext(ctx, "图片变更事件已跳过", "reason", outcome.Reason)
	case OutcomeDropped:
		log.WarnContext(ctx, "图片变更事件已丢弃", "reason", outcome.Reason)
	}
	return nil
}

// Apply 执行事件处理状态机：校验信封、定位文章、稳定排序、
// 过滤非法图片对、全量替换、保存。重复投递同一事件得到同一终态。
func (s *ArticleImagesHandler) Apply(ctx context.Context, payload []byte) (Outcome, error) {
	var event ArticleImageEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return dropped("unmarshal: " + err.Error()), nil
	}

	if event.ReferenceID == "" {
		return dropped("referenceId missing"), nil
	}
	if event.Images == nil {
		return dropped("images field missing"), nil
	}

	article, err := s.articleRepo.GetArticle(ctx, event.ReferenceID)
	if err != nil {
		return Outcome{}, errors.Wrap(err, "get article")
	}
	if article == nil {
		// 事件流可能与删除竞态，当作已删除处理
		return skipped("article not found: " + event.ReferenceID), nil
	}

	images := make([]EventImage, len(*event.Images))
	copy(images, *event.Images)

	// 按 sequence 稳定排序，空 sequence 视为相等以保持输入相对顺序
	sort.SliceStable(images, func(i, j int) bool {
		si, sj := images[i].Sequence, images[j].Sequence
		if si == nil || sj == nil {
			return false
		}
		return *si < *sj
	})

	refs := make([]model.ImageRef, 0, len(images))
	for _, img := range images {
		if img.ImageID == "" || img.ImageURL == "" || !acceptedImageURL(img.ImageURL) {
			log.WarnContext(ctx, "丢弃非法图片项",
				"article_id", event.ReferenceID, "image_id", img.ImageID, "image_url", img.ImageURL)
			continue
		}
		refs = append(refs, model.ImageRef{
			ImageID:  img.ImageID,
			ImageURL: img.ImageURL,
		})
	}

	// 过滤后为空与显式空事件等价，都表示删除全部图片
	article.ReplaceImages(refs)

	if err = s.articleRepo.SaveArticle(ctx, article); err != nil {
		return Outcome{}, errors.Wrap(err, "save article")
	}
	return applied(len(refs)), nil
}

func acceptedImageURL(url string) bool {
	for _, prefix := range acceptedImageURLPrefixes {
		if strings.HasPrefix(url, prefix) {
			return true
		}
	}
	return false
}
