package model

// KeywordMapping 文章与关键词的多对多映射，存在即登记
type KeywordMapping struct {
	KeywordID string `gorm:"primaryKey;type:varchar(50);index:idx_mapping_keyword_id" json:"keyword_id"`
	ArticleID string `gorm:"primaryKey;type:varchar(50)" json:"article_id"`
}

func (KeywordMapping) TableName() string {
	return "keyword_mappings"
}
