package dto

import "time"

// ArticleBaseDTO 文章 - 新增
type ArticleBaseDTO struct {
	BoardID      string     `json:"board_id" binding:"required" validate:"min=1,max=50"`
	Kind         string     `json:"kind" binding:"required,oneof=regular event notice"`
	Title        string     `json:"title" binding:"required" validate:"min=1,max=255"`
	Content      string     `json:"content" binding:"required"`
	KeywordIDs   []string   `json:"keyword_ids" validate:"max=20"`
	EventStartAt *time.Time `json:"event_start_at,omitempty"`
	EventEndAt   *time.Time `json:"event_end_at,omitempty"`
}

// ArticleUpdateDTO 文章 - 修改
type ArticleUpdateDTO struct {
	Title      string   `json:"title" binding:"required" validate:"min=1,max=255"`
	Content    string   `json:"content" binding:"required"`
	KeywordIDs []string `json:"keyword_ids" validate:"max=20"`
}
