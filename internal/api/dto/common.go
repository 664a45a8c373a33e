package dto

// Response 统一响应封装
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// BoardDTO 板块
type BoardDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// KeywordDTO 关键词
type KeywordDTO struct {
	ID         string  `json:"id"`
	BoardID    *string `json:"board_id,omitempty"`
	Name       string  `json:"name"`
	UsageCount int64   `json:"usage_count"`
}
