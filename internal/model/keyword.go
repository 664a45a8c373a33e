package model

import "time"

// Keyword 关键词。BoardID 为空表示全板块通用，否则仅限所属板块使用。
// UsageCount 与指向它的映射行数保持一致，由仓储在映射增删时同步。
type Keyword struct {
	ID         string    `gorm:"primaryKey;type:varchar(50)"`
	BoardID    *string   `gorm:"type:varchar(50);index:idx_kw_board_id"`
	Name       string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_keyword_name"`
	UsageCount int64     `gorm:"not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Keyword) TableName() string {
	return "keywords"
}

func (k *Keyword) IsCommon() bool {
	return k.BoardID == nil || *k.BoardID == ""
}

// UsableIn 判断关键词能否用于指定板块
func (k *Keyword) UsableIn(boardID string) bool {
	if k.IsCommon() {
		return true
	}
	return *k.BoardID == boardID
}
