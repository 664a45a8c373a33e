package model

import (
	"errors"
	"time"
)

type ArticleKind string

const (
	KindRegular ArticleKind = "regular"
	KindEvent   ArticleKind = "event"
	KindNotice  ArticleKind = "notice"
)

type ArticleStatus string

const (
	StatusActive  ArticleStatus = "ACTIVE"
	StatusBlocked ArticleStatus = "BLOCKED"
	StatusDeleted ArticleStatus = "DELETED"
)

const (
	ArticleIDMinLen = 10
	ArticleIDMaxLen = 50
)

var (
	ErrArticleFieldInvalid = errors.New("文章字段不合法")
	ErrEventPeriodInvalid  = errors.New("活动时间不合法")
)

// Article 文章聚合根，独占 Images 与 Mappings 两个子集合
type Article struct {
	ID            string        `gorm:"primaryKey;type:varchar(50)" json:"id"`
	BoardID       string        `gorm:"type:varchar(50);not null;index:idx_board_id" json:"board_id"`
	Kind          ArticleKind   `gorm:"type:varchar(16);not null" json:"kind"`
	Title         string        `gorm:"type:varchar(255);not null" json:"title"`
	Content       string        `gorm:"not null" json:"content"`
	WriterID      string        `gorm:"type:varchar(50);not null;index:idx_writer_id" json:"writer_id"`
	Status        ArticleStatus `gorm:"type:varchar(16);not null;default:ACTIVE" json:"status"`
	ViewCount     int64         `gorm:"not null;default:0" json:"view_count"`
	FirstImageURL *string       `gorm:"type:varchar(512)" json:"first_image_url"`
	EventStartAt  *time.Time    `json:"event_start_at"`
	EventEndAt    *time.Time    `json:"event_end_at"`
	Version       int64         `gorm:"not null;default:0" json:"version"`
	CreatedAt     time.Time     `gorm:"index:idx_created_at_id,priority:1" json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	// 关联关系
	Images   []ArticleImage   `gorm:"foreignKey:ArticleID;references:ID"`
	Mappings []KeywordMapping `gorm:"foreignKey:ArticleID;references:ID"`

	// 变更追踪，由仓储在保存时消费
	imagesReplaced   bool
	loadedKeywordIDs []string
}

func (Article) TableName() string {
	return "articles"
}

// ImageRef 替换图片时由调用方给出的 (imageId, imageUrl) 对，顺序即持久化顺序
type ImageRef struct {
	ImageID  string
	ImageURL string
}

// NewArticle 构造并校验文章，标量校验只发生在这里
func NewArticle(id string, kind ArticleKind, boardID, title, content, writerID string) (*Article, error) {
	if len(id) < ArticleIDMinLen || len(id) > ArticleIDMaxLen {
		return nil, ErrArticleFieldInvalid
	}
	if err := validateArticleFields(title, content); err != nil {
		return nil, err
	}
	if boardID == "" || writerID == "" {
		return nil, ErrArticleFieldInvalid
	}
	switch kind {
	case KindRegular, KindEvent, KindNotice:
	default:
		return nil, ErrArticleFieldInvalid
	}

	return &Article{
		ID:       id,
		BoardID:  boardID,
		Kind:     kind,
		Title:    title,
		Content:  content,
		WriterID: writerID,
		Status:   StatusActive,
	}, nil
}

// WithEventPeriod 为 event 类型文章设置活动时间，其余类型不允许携带
func (a *Article) WithEventPeriod(startAt, endAt *time.Time) error {
	if a.Kind != KindEvent {
		if startAt != nil || endAt != nil {
			return ErrEventPeriodInvalid
		}
		return nil
	}
	if startAt == nil || endAt == nil || endAt.Before(*startAt) {
		return ErrEventPeriodInvalid
	}
	a.EventStartAt = startAt
	a.EventEndAt = endAt
	return nil
}

func validateArticleFields(title, content string) error {
	if title == "" || content == "" {
		return ErrArticleFieldInvalid
	}
	return nil
}

// UpdateContent 更新标题与正文，沿用构造期的标量校验
func (a *Article) UpdateContent(title, content string) error {
	if err := validateArticleFields(title, content); err != nil {
		return err
	}
	a.Title = title
	a.Content = content
	return nil
}

// ReplaceImages 全量替换图片集合。先清空再按调用方给定顺序赋 1..N 连续序号，
// 空列表是显式的「删除全部图片」而不是 no-op。
func (a *Article) ReplaceImages(images []ImageRef) {
	a.Images = a.Images[:0]
	a.FirstImageURL = nil
	a.imagesReplaced = true

	for i, img := range images {
		a.Images = append(a.Images, ArticleImage{
			ArticleID: a.ID,
			Sequence:  i + 1,
			ImageID:   img.ImageID,
			ImageURL:  img.ImageURL,
		})
	}
	if len(a.Images) > 0 {
		url := a.Images[0].ImageURL
		a.FirstImageURL = &url
	}
}

// AddKeywords 为未映射的关键词建立映射并将其 usageCount 加一。
// 输入按关键词 ID 去重，已映射的关键词静默跳过，整体幂等。
func (a *Article) AddKeywords(keywords []*Keyword) int {
	mapped := a.mappedKeywordSet()
	added := 0
	for _, kw := range keywords {
		if kw == nil || kw.ID == "" {
			continue
		}
		if _, ok := mapped[kw.ID]; ok {
			continue
		}
		mapped[kw.ID] = struct{}{}
		a.Mappings = append(a.Mappings, KeywordMapping{
			ArticleID: a.ID,
			KeywordID: kw.ID,
		})
		kw.UsageCount++
		added++
	}
	return added
}

// RemoveKeywords 解除映射并将对应 usageCount 减一，不存在的映射跳过
func (a *Article) RemoveKeywords(keywords []*Keyword) int {
	removed := 0
	for _, kw := range keywords {
		if kw == nil {
			continue
		}
		for i, m := range a.Mappings {
			if m.KeywordID == kw.ID {
				a.Mappings = append(a.Mappings[:i], a.Mappings[i+1:]...)
				kw.UsageCount--
				removed++
				break
			}
		}
	}
	return removed
}

// ReplaceKeywords 全量替换关键词映射：先移除 current 中的全部现有映射，
// 再执行 AddKeywords(next)。current 须覆盖当前映射的关键词行（按映射 ID 查出）。
func (a *Article) ReplaceKeywords(current, next []*Keyword) {
	a.RemoveKeywords(current)
	a.Mappings = a.Mappings[:0]
	a.AddKeywords(next)
}

// Delete 软删除，返回状态是否发生迁移。重复删除是 no-op 且不应再发领域事件。
func (a *Article) Delete() bool {
	if a.Status == StatusDeleted {
		return false
	}
	a.Status = StatusDeleted
	return true
}

func (a *Article) IsWrittenBy(writerID string) bool {
	return writerID != "" && a.WriterID == writerID
}

func (a *Article) IsActive() bool  { return a.Status == StatusActive }
func (a *Article) IsBlocked() bool { return a.Status == StatusBlocked }
func (a *Article) IsDeleted() bool { return a.Status == StatusDeleted }

func (a *Article) mappedKeywordSet() map[string]struct{} {
	set := make(map[string]struct{}, len(a.Mappings))
	for _, m := range a.Mappings {
		set[m.KeywordID] = struct{}{}
	}
	return set
}

// MarkLoaded 由仓储在加载或保存成功后调用，重置变更追踪基线
func (a *Article) MarkLoaded() {
	a.imagesReplaced = false
	a.loadedKeywordIDs = a.loadedKeywordIDs[:0]
	for _, m := range a.Mappings {
		a.loadedKeywordIDs = append(a.loadedKeywordIDs, m.KeywordID)
	}
}

// ImagesReplaced 自上次加载以来图片集合是否被整体替换过
func (a *Article) ImagesReplaced() bool {
	return a.imagesReplaced
}

// KeywordChanges 对比当前映射与加载基线，给出新增与移除的关键词 ID
func (a *Article) KeywordChanges() (added, removed []string) {
	loaded := make(map[string]struct{}, len(a.loadedKeywordIDs))
	for _, id := range a.loadedKeywordIDs {
		loaded[id] = struct{}{}
	}
	mapped := a.mappedKeywordSet()

	for id := range mapped {
		if _, ok := loaded[id]; !ok {
			added = append(added, id)
		}
	}
	for _, id := range a.loadedKeywordIDs {
		if _, ok := mapped[id]; !ok {
			removed = append(removed, id)
		}
	}
	return added, removed
}

// KeywordIDs 当前映射的关键词 ID 列表，按映射顺序
func (a *Article) KeywordIDs() []string {
	ids := make([]string, 0, len(a.Mappings))
	for _, m := range a.Mappings {
		ids = append(ids, m.KeywordID)
	}
	return ids
}
