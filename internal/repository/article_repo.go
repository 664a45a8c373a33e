package repository

import (
	"Bulletin/internal/model"
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ErrVersionConflict 乐观锁版本号不匹配，调用方需重试
var ErrVersionConflict = errors.New("版本冲突")

// ArticleSearchCond 游标搜索条件，各字段按 AND 组合，零值跳过
type ArticleSearchCond struct {
	BoardID    string
	Title      string
	Content    string
	WriterIDs  []string
	Statuses   []model.ArticleStatus
	KeywordIDs []string

	// 游标：排序键 (created_at DESC, id DESC) 上最后一行的取值
	CursorCreatedAt *time.Time
	CursorID        string
}

type ArticleRepo interface {
	CreateArticle(ctx context.Context, article *model.Article) error
	GetArticle(ctx context.Context, id string) (*model.Article, error)
	SaveArticle(ctx context.Context, article *model.Article) error
	ExistsByID(ctx context.Context, id string) (bool, error)
	IncrementViewCount(ctx context.Context, id string) error
	SearchByCursor(ctx context.Context, cond *ArticleSearchCond, limit int) ([]*model.Article, error)
	DeleteWhereStatus(ctx context.Context, status model.ArticleStatus) (int64, error)
}

type articleRepoImpl struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepo {
	return &articleRepoImpl{
		db: db,
	}
}

// CreateArticle 在一个事务内落文章、图片、关键词映射，并同步 usage_count
func (s *articleRepoImpl) CreateArticle(ctx context.Context, article *model.Article) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Images", "Mappings").Create(article).Error; err != nil {
			return err
		}
		if len(article.Images) > 0 {
			if err := tx.Create(article.Images).Error; err != nil {
				return err
			}
		}
		if len(article.Mappings) > 0 {
			if err := tx.Create(article.Mappings).Error; err != nil {
				return err
			}
			if err := incrementUsage(tx, article.KeywordIDs(), 1); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	article.MarkLoaded()
	return nil
}

func (s *articleRepoImpl) GetArticle(ctx context.Context, id string) (*model.Article, error) {
	var article model.Article
	err := s.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		Preload("Mappings").
		First(&article, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	article.MarkLoaded()
	return &article, nil
}

// SaveArticle 按版本号条件更新文章行，并在同一事务内应用图片替换与映射差量。
// 版本不匹配（或行已不存在）时返回 ErrVersionConflict。
func (s *articleRepoImpl) SaveArticle(ctx context.Context, article *model.Article) error {
	added, removed := article.KeywordChanges()
	now := time.Now()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Article{}).
			Where("id = ? AND version = ?", article.ID, article.Version).
			Updates(map[string]interface{}{
				"title":           article.Title,
				"content":         article.Content,
				"status":          article.Status,
				"first_image_url": article.FirstImageURL,
				"event_start_at":  article.EventStartAt,
				"event_end_at":    article.EventEndAt,
				"version":         article.Version + 1,
				"updated_at":      now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrVersionConflict
		}

		if article.ImagesReplaced() {
			if err := tx.Delete(&model.ArticleImage{}, "article_id = ?", article.ID).Error; err != nil {
				return err
			}
			if len(article.Images) > 0 {
				if err := tx.Create(article.Images).Error; err != nil {
					return err
				}
			}
		}

		if len(removed) > 0 {
			if err := tx.Delete(&model.KeywordMapping{},
				"article_id = ? AND keyword_id IN ?", article.ID, removed).Error; err != nil {
				return err
			}
			if err := incrementUsage(tx, removed, -1); err != nil {
				return err
			}
		}
		if len(added) > 0 {
			mappings := make([]model.KeywordMapping, 0, len(added))
			for _, kwID := range added {
				mappings = append(mappings, model.KeywordMapping{
					ArticleID: article.ID,
					KeywordID: kwID,
				})
			}
			if err := tx.Create(mappings).Error; err != nil {
				return err
			}
			if err := incrementUsage(tx, added, 1); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	article.Version++
	article.UpdatedAt = now
	article.MarkLoaded()
	return nil
}

func (s *articleRepoImpl) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Article{}).
		Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// IncrementViewCount 原子自增阅读数，不参与版本号仲裁
func (s *articleRepoImpl) IncrementViewCount(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Model(&model.Article{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// SearchByCursor 游标分页查询，排序固定为 (created_at DESC, id DESC)
func (s *articleRepoImpl) SearchByCursor(ctx context.Context, cond *ArticleSearchCond, limit int) ([]*model.Article, error) {
	q := applyArticleSearchCond(s.db.WithContext(ctx).Model(&model.Article{}), cond)

	var articles []*model.Article
	err := q.Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&articles).Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}

func applyArticleSearchCond(q *gorm.DB, cond *ArticleSearchCond) *gorm.DB {
	if cond.BoardID != "" {
		q = q.Where("board_id = ?", cond.BoardID)
	}
	if cond.Title != "" {
		q = q.Where("LOWER(title) LIKE ?", likePattern(cond.Title))
	}
	if cond.Content != "" {
		q = q.Where("LOWER(content) LIKE ?", likePattern(cond.Content))
	}
	if len(cond.WriterIDs) > 0 {
		q = q.Where("writer_id IN ?", cond.WriterIDs)
	}
	if len(cond.Statuses) > 0 {
		q = q.Where("status IN ?", cond.Statuses)
	} else {
		q = q.Where("status NOT IN ?", []model.ArticleStatus{model.StatusDeleted, model.StatusBlocked})
	}
	if len(cond.KeywordIDs) > 0 {
		// 存在性子查询而不是 JOIN，避免多映射导致的行重复
		q = q.Where("EXISTS (SELECT 1 FROM keyword_mappings WHERE keyword_mappings.article_id = articles.id AND keyword_mappings.keyword_id IN ?)",
			cond.KeywordIDs)
	}
	if cond.CursorCreatedAt != nil {
		// 复合谓词保证同一时间戳下不丢行、不重复
		q = q.Where("created_at < ? OR (created_at = ? AND id < ?)",
			*cond.CursorCreatedAt, *cond.CursorCreatedAt, cond.CursorID)
	}
	return q
}

func likePattern(s string) string {
	s = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return "%" + strings.ToLower(s) + "%"
}

// DeleteWhereStatus 物理清除指定状态的文章及其图片与映射，映射删除时回收 usage_count
func (s *articleRepoImpl) DeleteWhereStatus(ctx context.Context, status model.ArticleStatus) (int64, error) {
	var deleted int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []string
		if err := tx.Model(&model.Article{}).
			Where("status = ?", status).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		if err := tx.Exec(`UPDATE keywords k
			JOIN (SELECT keyword_id, COUNT(*) AS cnt FROM keyword_mappings WHERE article_id IN ? GROUP BY keyword_id) m
			ON m.keyword_id = k.id
			SET k.usage_count = k.usage_count - m.cnt`, ids).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.KeywordMapping{}, "article_id IN ?", ids).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.ArticleImage{}, "article_id IN ?", ids).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Article{}, "id IN ?", ids)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	return deleted, err
}

func incrementUsage(tx *gorm.DB, keywordIDs []string, delta int) error {
	if len(keywordIDs) == 0 {
		return nil
	}
	return tx.Model(&model.Keyword{}).
		Where("id IN ?", keywordIDs).
		UpdateColumn("usage_count", gorm.Expr("usage_count + ?", delta)).Error
}
