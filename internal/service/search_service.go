package service

import (
	"Bulletin/internal/api/dto"
	"Bulletin/internal/model"
	"Bulletin/internal/pkg/consts"
	"Bulletin/internal/pkg/util"
	"Bulletin/internal/repository"
	"context"
)

type SearchService interface {
	SearchArticles(ctx context.Context, searchDTO *dto.SearchArticleDTO) (*dto.ArticleListDTO, error)
}

type searchServiceImpl struct {
	articleRepo repository.ArticleRepo
}

func NewSearchService(articleRepo repository.ArticleRepo) SearchService {
	return &searchServiceImpl{
		articleRepo: articleRepo,
	}
}

// SearchArticles 游标分页搜索。多取一行判定 has_more，游标由最后一行的
// 排序键 (created_at, id) 派生，不做 offset 与总数计算。
func (s *searchServiceImpl) SearchArticles(ctx context.Context, searchDTO *dto.SearchArticleDTO) (*dto.ArticleListDTO, error) {
	// 畸形游标在任何查询执行前拒绝
	cursor, err := util.DecodeArticleCursor(searchDTO.Cursor)
	if err != nil {
		return nil, ErrCursorInvalid
	}

	cond, err := buildSearchCond(searchDTO, cursor)
	if err != nil {
		return nil, err
	}

	pageSize := searchDTO.Size
	if pageSize <= 0 {
		pageSize = consts.DefaultPageSize
	}
	if pageSize > consts.MaxPageSize {
		pageSize = consts.MaxPageSize
	}

	articles, err := s.articleRepo.SearchByCursor(ctx, cond, pageSize+1)
	if err != nil {
		return nil, err
	}

	hasMore := false
	if len(articles) > pageSize {
		hasMore = true
		articles = articles[:pageSize]
	}

	items := make([]*dto.ArticleDTO, 0, len(articles))
	for _, article := range articles {
		item, err := toArticleDTO(article)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	var nextCursor string
	if hasMore && len(articles) > 0 {
		last := articles[len(articles)-1]
		nextCursor = util.EncodeArticleCursor(last.CreatedAt, last.ID)
	}

	return &dto.ArticleListDTO{
		List:       items,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}, nil
}

func buildSearchCond(searchDTO *dto.SearchArticleDTO, cursor *util.ArticleCursor) (*repository.ArticleSearchCond, error) {
	cond := &repository.ArticleSearchCond{
		BoardID:    searchDTO.BoardID,
		Title:      searchDTO.Title,
		Content:    searchDTO.Content,
		WriterIDs:  searchDTO.WriterIDs,
		KeywordIDs: searchDTO.KeywordIDs,
	}

	// 状态缺省为「非删除且非屏蔽」，由仓储用 NOT IN 表达
	if searchDTO.Status != "" {
		status := model.ArticleStatus(searchDTO.Status)
		switch status {
		case model.StatusActive, model.StatusBlocked, model.StatusDeleted:
			cond.Statuses = []model.ArticleStatus{status}
		default:
			return nil, ErrStatusInvalid
		}
	}

	if cursor != nil {
		t := cursor.Time()
		cond.CursorCreatedAt = &t
		cond.CursorID = cursor.ID
	}
	return cond, nil
}
