package service

import (
	"Bulletin/internal/api/dto"
	"Bulletin/internal/pkg/refstore"
	"context"
	"sort"
)

type BoardService interface {
	GetBoards(ctx context.Context) ([]*dto.BoardDTO, error)
	GetKeywords(ctx context.Context, boardID string) ([]*dto.KeywordDTO, error)
}

type boardServiceImpl struct {
	refStore *refstore.Store
}

func NewBoardService(refStore *refstore.Store) BoardService {
	return &boardServiceImpl{
		refStore: refStore,
	}
}

// GetBoards 从快照读板块列表，接受最终一致
func (s *boardServiceImpl) GetBoards(_ context.Context) ([]*dto.BoardDTO, error) {
	snap := s.refStore.Snapshot()
	out := make([]*dto.BoardDTO, 0, len(snap.Boards))
	for _, b := range snap.Boards {
		out = append(out, &dto.BoardDTO{ID: b.ID, Name: b.Name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetKeywords 返回指定板块可用的关键词（通用 + 板块专属）；boardID 为空时返回全部
func (s *boardServiceImpl) GetKeywords(_ context.Context, boardID string) ([]*dto.KeywordDTO, error) {
	snap := s.refStore.Snapshot()
	out := make([]*dto.KeywordDTO, 0, len(snap.Keywords))
	for _, kw := range snap.Keywords {
		if boardID != "" && !kw.UsableIn(boardID) {
			continue
		}
		out = append(out, &dto.KeywordDTO{
			ID:         kw.ID,
			BoardID:    kw.BoardID,
			Name:       kw.Name,
			UsageCount: kw.UsageCount,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
