package refstore

import (
	"Bulletin/internal/model"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBoardRepo struct {
	boards []*model.Board
	err    error
}

func (f *fakeBoardRepo) GetAllBoards(_ context.Context) ([]*model.Board, error) {
	return f.boards, f.err
}

type fakeKeywordRepo struct {
	keywords []*model.Keyword
	err      error
}

func (f *fakeKeywordRepo) GetAllKeywords(_ context.Context) ([]*model.Keyword, error) {
	return f.keywords, f.err
}

func (f *fakeKeywordRepo) GetKeywordsByIds(_ context.Context, _ []string) ([]*model.Keyword, error) {
	return nil, nil
}

func TestStoreStartsEmpty(t *testing.T) {
	store := NewStore(&fakeBoardRepo{}, &fakeKeywordRepo{})

	_, ok := store.Board("board-1")
	assert.False(t, ok)
	assert.Empty(t, store.Snapshot().Boards)
}

func TestStoreRefresh(t *testing.T) {
	boardRepo := &fakeBoardRepo{boards: []*model.Board{{ID: "board-1", Name: "公告板"}}}
	keywordRepo := &fakeKeywordRepo{keywords: []*model.Keyword{{ID: "kw-1", Name: "golang"}}}
	store := NewStore(boardRepo, keywordRepo)

	require.NoError(t, store.Refresh(context.Background()))

	board, ok := store.Board("board-1")
	require.True(t, ok)
	assert.Equal(t, "公告板", board.Name)

	kw, ok := store.Keyword("kw-1")
	require.True(t, ok)
	assert.Equal(t, "golang", kw.Name)
	assert.False(t, store.Snapshot().LoadedAt.IsZero())
}

func TestStoreRefreshFailureKeepsOldSnapshot(t *testing.T) {
	boardRepo := &fakeBoardRepo{boards: []*model.Board{{ID: "board-1", Name: "公告板"}}}
	keywordRepo := &fakeKeywordRepo{}
	store := NewStore(boardRepo, keywordRepo)
	require.NoError(t, store.Refresh(context.Background()))

	// 刷新失败时旧快照继续可读
	boardRepo.err = errors.New("db down")
	assert.Error(t, store.Refresh(context.Background()))

	_, ok := store.Board("board-1")
	assert.True(t, ok)
}

func TestStoreReturnsCopies(t *testing.T) {
	boardRepo := &fakeBoardRepo{boards: []*model.Board{{ID: "board-1", Name: "公告板"}}}
	store := NewStore(boardRepo, &fakeKeywordRepo{})
	require.NoError(t, store.Refresh(context.Background()))

	board, _ := store.Board("board-1")
	board.Name = "改名"

	again, _ := store.Board("board-1")
	assert.Equal(t, "公告板", again.Name)
}
