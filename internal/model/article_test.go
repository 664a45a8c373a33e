package model

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testArticleID = "0195c2a6-7c9e-7000-8000-000000000001"

func newTestArticle(t *testing.T) *Article {
	t.Helper()
	article, err := NewArticle(testArticleID, KindRegular, "board-1", "标题", "正文", "writer-1")
	require.NoError(t, err)
	return article
}

func TestNewArticle(t *testing.T) {
	t.Run("合法入参创建成功", func(t *testing.T) {
		article := newTestArticle(t)
		assert.Equal(t, StatusActive, article.Status)
		assert.Empty(t, article.Images)
		assert.Nil(t, article.FirstImageURL)
	})

	cases := []struct {
		name     string
		id       string
		kind     ArticleKind
		boardID  string
		title    string
		content  string
		writerID string
	}{
		{"ID 过短", "short", KindRegular, "board-1", "标题", "正文", "writer-1"},
		{"ID 过长", strings.Repeat("x", 51), KindRegular, "board-1", "标题", "正文", "writer-1"},
		{"标题为空", testArticleID, KindRegular, "board-1", "", "正文", "writer-1"},
		{"正文为空", testArticleID, KindRegular, "board-1", "标题", "", "writer-1"},
		{"板块为空", testArticleID, KindRegular, "", "标题", "正文", "writer-1"},
		{"作者为空", testArticleID, KindRegular, "board-1", "标题", "正文", ""},
		{"类型非法", testArticleID, ArticleKind("poll"), "board-1", "标题", "正文", "writer-1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewArticle(tc.id, tc.kind, tc.boardID, tc.title, tc.content, tc.writerID)
			assert.ErrorIs(t, err, ErrArticleFieldInvalid)
		})
	}
}

func TestWithEventPeriod(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)

	t.Run("event 类型设置活动时间", func(t *testing.T) {
		article, err := NewArticle(testArticleID, KindEvent, "board-1", "标题", "正文", "writer-1")
		require.NoError(t, err)
		require.NoError(t, article.WithEventPeriod(&start, &end))
		assert.Equal(t, start, *article.EventStartAt)
		assert.Equal(t, end, *article.EventEndAt)
	})

	t.Run("event 类型缺少结束时间", func(t *testing.T) {
		article, err := NewArticle(testArticleID, KindEvent, "board-1", "标题", "正文", "writer-1")
		require.NoError(t, err)
		assert.ErrorIs(t, article.WithEventPeriod(&start, nil), ErrEventPeriodInvalid)
	})

	t.Run("event 类型结束早于开始", func(t *testing.T) {
		article, err := NewArticle(testArticleID, KindEvent, "board-1", "标题", "正文", "writer-1")
		require.NoError(t, err)
		before := start.Add(-time.Hour)
		assert.ErrorIs(t, article.WithEventPeriod(&start, &before), ErrEventPeriodInvalid)
	})

	t.Run("非 event 类型不允许携带活动时间", func(t *testing.T) {
		article := newTestArticle(t)
		assert.ErrorIs(t, article.WithEventPeriod(&start, &end), ErrEventPeriodInvalid)
	})

	t.Run("非 event 类型不携带时间是 no-op", func(t *testing.T) {
		article := newTestArticle(t)
		assert.NoError(t, article.WithEventPeriod(nil, nil))
	})
}

func TestReplaceImages(t *testing.T) {
	t.Run("序号重排为 1..N 连续", func(t *testing.T) {
		article := newTestArticle(t)
		article.ReplaceImages([]ImageRef{
			{ImageID: "i1", ImageURL: "https://cdn/a.png"},
			{ImageID: "i2", ImageURL: "https://cdn/b.png"},
			{ImageID: "i3", ImageURL: "https://cdn/c.png"},
		})

		require.Len(t, article.Images, 3)
		for i, img := range article.Images {
			assert.Equal(t, i+1, img.Sequence)
			assert.Equal(t, testArticleID, img.ArticleID)
		}
		require.NotNil(t, article.FirstImageURL)
		assert.Equal(t, "https://cdn/a.png", *article.FirstImageURL)
		assert.True(t, article.ImagesReplaced())
	})

	t.Run("空列表删除全部图片", func(t *testing.T) {
		article := newTestArticle(t)
		article.ReplaceImages([]ImageRef{{ImageID: "i1", ImageURL: "https://cdn/a.png"}})
		article.ReplaceImages(nil)

		assert.Empty(t, article.Images)
		assert.Nil(t, article.FirstImageURL)
		assert.True(t, article.ImagesReplaced())
	})

	t.Run("重复替换同一列表结果一致", func(t *testing.T) {
		refs := []ImageRef{
			{ImageID: "i1", ImageURL: "https://cdn/a.png"},
			{ImageID: "i2", ImageURL: "https://cdn/b.png"},
		}
		article := newTestArticle(t)
		article.ReplaceImages(refs)
		first := make([]ArticleImage, len(article.Images))
		copy(first, article.Images)

		article.ReplaceImages(refs)
		assert.Equal(t, first, article.Images)
		assert.Equal(t, "https://cdn/a.png", *article.FirstImageURL)
	})
}

func TestAddKeywords(t *testing.T) {
	t.Run("输入去重且已映射的跳过", func(t *testing.T) {
		article := newTestArticle(t)
		kw := &Keyword{ID: "kw-1", Name: "golang"}

		assert.Equal(t, 1, article.AddKeywords([]*Keyword{kw, kw}))
		assert.Equal(t, int64(1), kw.UsageCount)

		// 再次添加同一关键词是 no-op
		assert.Equal(t, 0, article.AddKeywords([]*Keyword{kw}))
		assert.Equal(t, int64(1), kw.UsageCount)
		assert.Len(t, article.Mappings, 1)
	})

	t.Run("nil 与空 ID 跳过", func(t *testing.T) {
		article := newTestArticle(t)
		assert.Equal(t, 0, article.AddKeywords([]*Keyword{nil, {ID: ""}}))
		assert.Empty(t, article.Mappings)
	})
}

func TestRemoveKeywords(t *testing.T) {
	article := newTestArticle(t)
	kw1 := &Keyword{ID: "kw-1"}
	kw2 := &Keyword{ID: "kw-2"}
	article.AddKeywords([]*Keyword{kw1, kw2})

	assert.Equal(t, 1, article.RemoveKeywords([]*Keyword{kw1}))
	assert.Equal(t, int64(0), kw1.UsageCount)
	assert.Equal(t, []string{"kw-2"}, article.KeywordIDs())

	// 不存在的映射不扣减
	assert.Equal(t, 0, article.RemoveKeywords([]*Keyword{kw1}))
	assert.Equal(t, int64(0), kw1.UsageCount)
}

func TestReplaceKeywords(t *testing.T) {
	t.Run("跨文章共享关键词时总量守恒", func(t *testing.T) {
		shared := &Keyword{ID: "kw-shared"}
		only1 := &Keyword{ID: "kw-a"}
		only2 := &Keyword{ID: "kw-b"}

		a1 := newTestArticle(t)
		a2, err := NewArticle("0195c2a6-7c9e-7000-8000-000000000002", KindRegular, "board-1", "标题", "正文", "writer-2")
		require.NoError(t, err)

		a1.AddKeywords([]*Keyword{shared, only1})
		a2.AddKeywords([]*Keyword{shared})
		require.Equal(t, int64(2), shared.UsageCount)

		// a1 换掉自己的映射，shared 在 a2 上的计数不受影响
		a1.ReplaceKeywords([]*Keyword{shared, only1}, []*Keyword{only2})
		assert.Equal(t, int64(1), shared.UsageCount)
		assert.Equal(t, int64(0), only1.UsageCount)
		assert.Equal(t, int64(1), only2.UsageCount)
		assert.Equal(t, []string{"kw-b"}, a1.KeywordIDs())
	})

	t.Run("新旧集合重叠时净变化为零", func(t *testing.T) {
		kw := &Keyword{ID: "kw-1"}
		article := newTestArticle(t)
		article.AddKeywords([]*Keyword{kw})

		article.ReplaceKeywords([]*Keyword{kw}, []*Keyword{kw})
		assert.Equal(t, int64(1), kw.UsageCount)
		assert.Equal(t, []string{"kw-1"}, article.KeywordIDs())
	})
}

func TestDelete(t *testing.T) {
	article := newTestArticle(t)

	assert.True(t, article.Delete())
	assert.True(t, article.IsDeleted())

	// 重复删除不发生状态迁移
	assert.False(t, article.Delete())
	assert.True(t, article.IsDeleted())
}

func TestKeywordChanges(t *testing.T) {
	article := newTestArticle(t)
	kw1 := &Keyword{ID: "kw-1"}
	kw2 := &Keyword{ID: "kw-2"}
	kw3 := &Keyword{ID: "kw-3"}
	article.AddKeywords([]*Keyword{kw1, kw2})
	article.MarkLoaded()

	t.Run("基线无变化时差量为空", func(t *testing.T) {
		added, removed := article.KeywordChanges()
		assert.Empty(t, added)
		assert.Empty(t, removed)
	})

	t.Run("替换后给出新增与移除", func(t *testing.T) {
		article.ReplaceKeywords([]*Keyword{kw1, kw2}, []*Keyword{kw2, kw3})
		added, removed := article.KeywordChanges()
		assert.ElementsMatch(t, []string{"kw-3"}, added)
		assert.ElementsMatch(t, []string{"kw-1"}, removed)
	})

	t.Run("MarkLoaded 重置基线", func(t *testing.T) {
		article.MarkLoaded()
		added, removed := article.KeywordChanges()
		assert.Empty(t, added)
		assert.Empty(t, removed)
		assert.False(t, article.ImagesReplaced())
	})
}

func TestIsWrittenBy(t *testing.T) {
	article := newTestArticle(t)
	assert.True(t, article.IsWrittenBy("writer-1"))
	assert.False(t, article.IsWrittenBy("writer-2"))
	assert.False(t, article.IsWrittenBy(""))
}
