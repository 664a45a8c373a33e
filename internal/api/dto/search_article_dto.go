package dto

// SearchArticleDTO 文章游标搜索条件，全部可选且按 AND 组合
type SearchArticleDTO struct {
	BoardID    string   `form:"board_id"`
	Title      string   `form:"title"`
	Content    string   `form:"content"`
	WriterIDs  []string `form:"writer_id"`
	Status     string   `form:"status"`
	KeywordIDs []string `form:"keyword_id"`
	Cursor     string   `form:"cursor"`
	Size       int      `form:"size" binding:"omitempty,min=1,max=50"`
}
