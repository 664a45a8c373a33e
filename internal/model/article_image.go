package model

import (
	"time"
)

// ArticleImage 文章图片，(article_id, sequence) 唯一，sequence 从 1 开始连续
type ArticleImage struct {
	ArticleID string    `gorm:"primaryKey;type:varchar(50)" json:"article_id"`
	Sequence  int       `gorm:"primaryKey" json:"sequence"`
	ImageID   string    `gorm:"type:varchar(100);not null" json:"image_id"`
	ImageURL  string    `gorm:"type:varchar(512);not null" json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

func (ArticleImage) TableName() string {
	return "article_images"
}
