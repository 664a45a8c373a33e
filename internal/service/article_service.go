package service

import (
	"Bulletin/internal/api/dto"
	"Bulletin/internal/model"
	"Bulletin/internal/pkg/consts"
	"Bulletin/internal/pkg/kafka"
	"Bulletin/internal/pkg/redis"
	"Bulletin/internal/pkg/refstore"
	"Bulletin/internal/pkg/util"
	"Bulletin/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
)

const articleCacheTTL = 10 * time.Minute

type ArticleService interface {
	CreateArticle(ctx context.Context, writerID string, baseDTO *dto.ArticleBaseDTO) (*dto.ArticleDTO, error)
	GetArticle(ctx context.Context, articleID string) (*dto.ArticleDTO, error)
	UpdateArticle(ctx context.Context, writerID, articleID string, updateDTO *dto.ArticleUpdateDTO) (*dto.ArticleDTO, error)
	DeleteArticle(ctx context.Context, writerID, articleID, reason string) error
}

type articleServiceImpl struct {
	articleRepo repository.ArticleRepo
	keywordRepo repository.KeywordRepo
	refStore    *refstore.Store
	producer    *kafka.Producer
}

func NewArticleService(articleRepo repository.ArticleRepo, keywordRepo repository.KeywordRepo,
	refStore *refstore.Store, producer *kafka.Producer) ArticleService {
	return &articleServiceImpl{
		articleRepo: articleRepo,
		keywordRepo: keywordRepo,
		refStore:    refStore,
		producer:    producer,
	}
}

// CreateArticle 创建文章：校验板块与关键词引用，建立聚合后单事务落库，
// 成功后尽力发布创建事件。
func (s *articleServiceImpl) CreateArticle(ctx context.Context, writerID string, baseDTO *dto.ArticleBaseDTO) (*dto.ArticleDTO, error) {
	if writerID == "" {
		return nil, ErrMissingWriter
	}
	if err := util.ValidateDTO(baseDTO); err != nil {
		return nil, ErrParamInvalid
	}
	if _, ok := s.refStore.Board(baseDTO.BoardID); !ok {
		return nil, ErrBoardNotFound
	}

	keywords, err := s.resolveKeywords(ctx, baseDTO.BoardID, baseDTO.KeywordIDs)
	if err != nil {
		return nil, err
	}

	id, err := util.NewArticleID()
	if err != nil {
		return nil, err
	}

	article, err := model.NewArticle(id, model.ArticleKind(baseDTO.Kind),
		baseDTO.BoardID, baseDTO.Title, baseDTO.Content, writerID)
	if err != nil {
		return nil, err
	}
	if err = article.WithEventPeriod(baseDTO.EventStartAt, baseDTO.EventEndAt); err != nil {
		return nil, err
	}
	article.AddKeywords(keywords)

	if err = s.articleRepo.CreateArticle(ctx, article); err != nil {
		return nil, err
	}

	s.producer.PublishArticleCreated(ctx, article)

	return toArticleDTO(article)
}

// GetArticle 读取文章，带 redis 读穿缓存，命中与否都会异步累加阅读数
func (s *articleServiceImpl) GetArticle(ctx context.Context, articleID string) (*dto.ArticleDTO, error) {
	cacheKey := consts.ArticleInfoKey + articleID

	if cached, err := redis.GetValue(ctx, cacheKey); err == nil && cached != "" {
		var out dto.ArticleDTO
		if err = json.Unmarshal([]byte(cached), &out); err == nil {
			s.bumpViewCount(articleID)
			return &out, nil
		}
	}

	article, err := s.articleRepo.GetArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article == nil || article.IsDeleted() {
		return nil, ErrArticleNotFound
	}

	out, err := toArticleDTO(article)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		if err = redis.SetWithExpiration(ctx, cacheKey, b, articleCacheTTL); err != nil {
			log.WarnContext(ctx, "缓存文章失败", "article_id", articleID, "err", err)
		}
	}

	s.bumpViewCount(articleID)
	return out, nil
}

// UpdateArticle 更新标题、正文与关键词映射（关键词为全量替换）
func (s *articleServiceImpl) UpdateArticle(ctx context.Context, writerID, articleID string, updateDTO *dto.ArticleUpdateDTO) (*dto.ArticleDTO, error) {
	if writerID == "" {
		return nil, ErrMissingWriter
	}
	if err := util.ValidateDTO(updateDTO); err != nil {
		return nil, ErrParamInvalid
	}

	article, err := s.articleRepo.GetArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article == nil || article.IsDeleted() {
		return nil, ErrArticleNotFound
	}
	if !article.IsWrittenBy(writerID) {
		return nil, UnauthorizedError
	}

	if err = article.UpdateContent(updateDTO.Title, updateDTO.Content); err != nil {
		return nil, err
	}

	next, err := s.resolveKeywords(ctx, article.BoardID, updateDTO.KeywordIDs)
	if err != nil {
		return nil, err
	}
	article.ReplaceKeywords(s.resolveMapped(article.KeywordIDs()), next)

	if err = s.saveArticle(ctx, article); err != nil {
		return nil, err
	}

	return toArticleDTO(article)
}

// DeleteArticle 软删除。重复删除是 no-op，且不再发布删除事件。
func (s *articleServiceImpl) DeleteArticle(ctx context.Context, writerID, articleID, reason string) error {
	if writerID == "" {
		return ErrMissingWriter
	}

	article, err := s.articleRepo.GetArticle(ctx, articleID)
	if err != nil {
		return err
	}
	if article == nil {
		return ErrArticleNotFound
	}
	if !article.IsWrittenBy(writerID) {
		return UnauthorizedError
	}

	if !article.Delete() {
		return nil
	}

	if err = s.saveArticle(ctx, article); err != nil {
		return err
	}

	s.producer.PublishArticleDeleted(ctx, article, reason)
	return nil
}

// saveArticle 保存聚合并失效缓存，乐观锁冲突翻译为业务错误交调用方重试
func (s *articleServiceImpl) saveArticle(ctx context.Context, article *model.Article) error {
	if err := s.articleRepo.SaveArticle(ctx, article); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return ErrVersionConflict
		}
		return err
	}
	if err := redis.DeleteKey(ctx, consts.ArticleInfoKey+article.ID); err != nil {
		log.WarnContext(ctx, "失效文章缓存失败", "article_id", article.ID, "err", err)
	}
	return nil
}

func (s *articleServiceImpl) bumpViewCount(articleID string) {
	go func() {
		bgCtx := context.Background()
		if err := s.articleRepo.IncrementViewCount(bgCtx, articleID); err != nil {
			log.Error("累加阅读数失败", "article_id", articleID, "err", err)
		}
	}()
}

// resolveKeywords 从快照解析关键词并做板块归属校验，返回副本可安全修改。
// 快照未命中的 ID 回落到数据库批量查一次（新建关键词在下次刷新前不在快照里），
// 库里也没有才算不存在。
func (s *articleServiceImpl) resolveKeywords(ctx context.Context, boardID string, keywordIDs []string) ([]*model.Keyword, error) {
	keywords := make([]*model.Keyword, 0, len(keywordIDs))
	var missing []string
	for _, kwID := range keywordIDs {
		kw, ok := s.refStore.Keyword(kwID)
		if !ok {
			missing = append(missing, kwID)
			continue
		}
		if !kw.UsableIn(boardID) {
			return nil, ErrKeywordNotUsable
		}
		keywords = append(keywords, &kw)
	}

	if len(missing) > 0 {
		fetched, err := s.keywordRepo.GetKeywordsByIds(ctx, missing)
		if err != nil {
			return nil, err
		}
		byID := make(map[string]*model.Keyword, len(fetched))
		for _, kw := range fetched {
			byID[kw.ID] = kw
		}
		for _, kwID := range missing {
			kw, ok := byID[kwID]
			if !ok {
				return nil, ErrKeywordNotFound
			}
			if !kw.UsableIn(boardID) {
				return nil, ErrKeywordNotUsable
			}
			keywords = append(keywords, kw)
		}
	}
	return keywords, nil
}

// resolveMapped 按映射 ID 解析当前关键词行，快照里已不存在的跳过
// （其 usage 回收由仓储按映射差量完成）
func (s *articleServiceImpl) resolveMapped(keywordIDs []string) []*model.Keyword {
	keywords := make([]*model.Keyword, 0, len(keywordIDs))
	for _, kwID := range keywordIDs {
		if kw, ok := s.refStore.Keyword(kwID); ok {
			keywords = append(keywords, &kw)
		}
	}
	return keywords
}

// toArticleDTO 将 Model 转换为返回给前端的 DTO
func toArticleDTO(article *model.Article) (*dto.ArticleDTO, error) {
	out := &dto.ArticleDTO{}
	if err := copier.Copy(out, article); err != nil {
		return nil, err
	}
	out.CreatedAt = article.CreatedAt.Format("2006-01-02 15:04:05")
	out.UpdatedAt = article.UpdatedAt.Format("2006-01-02 15:04:05")
	if article.EventStartAt != nil {
		v := article.EventStartAt.Format("2006-01-02 15:04:05")
		out.EventStartAt = &v
	}
	if article.EventEndAt != nil {
		v := article.EventEndAt.Format("2006-01-02 15:04:05")
		out.EventEndAt = &v
	}

	out.Images = make([]*dto.ArticleImageDTO, 0, len(article.Images))
	for _, img := range article.Images {
		out.Images = append(out.Images, &dto.ArticleImageDTO{
			Sequence: img.Sequence,
			ImageID:  img.ImageID,
			ImageURL: img.ImageURL,
		})
	}
	out.KeywordIDs = article.KeywordIDs()

	return out, nil
}
