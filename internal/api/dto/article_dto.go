package dto

// ArticleDTO 文章
type ArticleDTO struct {
	ID            string  `json:"id"`
	BoardID       string  `json:"board_id"`
	Kind          string  `json:"kind"`
	Title         string  `json:"title"`
	Content       string  `json:"content"`
	WriterID      string  `json:"writer_id"`
	Status        string  `json:"status"`
	ViewCount     int64   `json:"view_count"`
	FirstImageURL *string `json:"first_image_url"`
	EventStartAt  *string `json:"event_start_at,omitempty"`
	EventEndAt    *string `json:"event_end_at,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`

	Images     []*ArticleImageDTO `json:"images"`
	KeywordIDs []string           `json:"keyword_ids"`
}

// ArticleImageDTO 文章图片
type ArticleImageDTO struct {
	Sequence int    `json:"sequence"`
	ImageID  string `json:"image_id"`
	ImageURL string `json:"image_url"`
}

// ArticleListDTO 文章列表页
type ArticleListDTO struct {
	List       []*ArticleDTO `json:"list"`
	NextCursor string        `json:"next_cursor"`
	HasMore    bool          `json:"has_more"`
}
