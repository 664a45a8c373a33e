package service

import (
	"Bulletin/internal/model"
	"Bulletin/internal/pkg/refstore"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBoardRepo struct {
	boards []*model.Board
}

func (f *fakeBoardRepo) GetAllBoards(_ context.Context) ([]*model.Board, error) {
	return f.boards, nil
}

type fakeKeywordRepo struct {
	all  []*model.Keyword
	byID map[string]*model.Keyword
	err  error
}

func (f *fakeKeywordRepo) GetAllKeywords(_ context.Context) ([]*model.Keyword, error) {
	return f.all, nil
}

func (f *fakeKeywordRepo) GetKeywordsByIds(_ context.Context, ids []string) ([]*model.Keyword, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*model.Keyword
	for _, id := range ids {
		if kw, ok := f.byID[id]; ok {
			out = append(out, kw)
		}
	}
	return out, nil
}

func keywordResolverFixture(t *testing.T) (*articleServiceImpl, *fakeKeywordRepo) {
	t.Helper()
	otherBoard := "board-2"

	// kw-snap 在快照里，kw-db 与 kw-scoped 只在库里（模拟刷新间隙新建的关键词）
	kwRepo := &fakeKeywordRepo{
		all: []*model.Keyword{{ID: "kw-snap", Name: "快照词"}},
		byID: map[string]*model.Keyword{
			"kw-db":     {ID: "kw-db", Name: "新建词"},
			"kw-scoped": {ID: "kw-scoped", Name: "他板词", BoardID: &otherBoard},
		},
	}
	store := refstore.NewStore(&fakeBoardRepo{}, kwRepo)
	require.NoError(t, store.Refresh(context.Background()))

	return &articleServiceImpl{keywordRepo: kwRepo, refStore: store}, kwRepo
}

func TestResolveKeywords(t *testing.T) {
	ctx := context.Background()

	t.Run("快照命中", func(t *testing.T) {
		svc, _ := keywordResolverFixture(t)
		kws, err := svc.resolveKeywords(ctx, "board-1", []string{"kw-snap"})
		require.NoError(t, err)
		require.Len(t, kws, 1)
		assert.Equal(t, "kw-snap", kws[0].ID)
	})

	t.Run("快照未命中回落数据库", func(t *testing.T) {
		svc, _ := keywordResolverFixture(t)
		kws, err := svc.resolveKeywords(ctx, "board-1", []string{"kw-snap", "kw-db"})
		require.NoError(t, err)
		require.Len(t, kws, 2)
		assert.Equal(t, "kw-db", kws[1].ID)
	})

	t.Run("库里也没有才算不存在", func(t *testing.T) {
		svc, _ := keywordResolverFixture(t)
		_, err := svc.resolveKeywords(ctx, "board-1", []string{"kw-ghost"})
		assert.ErrorIs(t, err, ErrKeywordNotFound)
	})

	t.Run("回落结果同样做板块归属校验", func(t *testing.T) {
		svc, _ := keywordResolverFixture(t)
		_, err := svc.resolveKeywords(ctx, "board-1", []string{"kw-scoped"})
		assert.ErrorIs(t, err, ErrKeywordNotUsable)
	})

	t.Run("回落查询失败原样上抛", func(t *testing.T) {
		svc, kwRepo := keywordResolverFixture(t)
		kwRepo.err = errors.New("db down")
		_, err := svc.resolveKeywords(ctx, "board-1", []string{"kw-db"})
		assert.ErrorIs(t, err, kwRepo.err)
	})
}
