package kafka

import (
	"Bulletin/internal/model"
	"Bulletin/internal/repository"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testArticleID = "0195c2a6-7c9e-7000-8000-000000000001"

// fakeArticleRepo 内存实现，模拟加载基线与版本推进，够用于事件处理测试
type fakeArticleRepo struct {
	articles map[string]*model.Article
	getErr   error
	saveErr  error
	saves    int
}

func newFakeArticleRepo() *fakeArticleRepo {
	return &fakeArticleRepo{articles: make(map[string]*model.Article)}
}

func (f *fakeArticleRepo) CreateArticle(_ context.Context, article *model.Article) error {
	f.articles[article.ID] = article
	article.MarkLoaded()
	return nil
}

func (f *fakeArticleRepo) GetArticle(_ context.Context, id string) (*model.Article, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	article, ok := f.articles[id]
	if !ok {
		return nil, nil
	}
	article.MarkLoaded()
	return article, nil
}

func (f *fakeArticleRepo) SaveArticle(_ context.Context, article *model.Article) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.articles[article.ID] = article
	f.saves++
	article.Version++
	article.MarkLoaded()
	return nil
}

func (f *fakeArticleRepo) ExistsByID(_ context.Context, id string) (bool, error) {
	_, ok := f.articles[id]
	return ok, nil
}

func (f *fakeArticleRepo) IncrementViewCount(_ context.Context, id string) error { return nil }

func (f *fakeArticleRepo) SearchByCursor(_ context.Context, _ *repository.ArticleSearchCond, _ int) ([]*model.Article, error) {
	return nil, nil
}

func (f *fakeArticleRepo) DeleteWhereStatus(_ context.Context, _ model.ArticleStatus) (int64, error) {
	return 0, nil
}

func seedArticle(t *testing.T, repo *fakeArticleRepo) *model.Article {
	t.Helper()
	article, err := model.NewArticle(testArticleID, model.KindRegular, "board-1", "标题", "正文", "writer-1")
	require.NoError(t, err)
	require.NoError(t, repo.CreateArticle(context.Background(), article))
	return article
}

func TestApplyDropsMalformedEvents(t *testing.T) {
	repo := newFakeArticleRepo()
	handler := NewArticleImagesHandler(repo)
	ctx := context.Background()

	cases := []struct {
		name    string
		payload string
	}{
		{"非法 JSON", `{not-json`},
		{"缺少 referenceId", `{"images":[]}`},
		{"缺少 images 字段", `{"referenceId":"` + testArticleID + `"}`},
		{"images 为 null", `{"referenceId":"` + testArticleID + `","images":null}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			outcome, err := handler.Apply(ctx, []byte(tc.payload))
			require.NoError(t, err)
			assert.Equal(t, OutcomeDropped, outcome.Kind)
			assert.Zero(t, repo.saves)
		})
	}
}

func TestApplySkipsUnknownArticle(t *testing.T) {
	repo := newFakeArticleRepo()
	handler := NewArticleImagesHandler(repo)

	outcome, err := handler.Apply(context.Background(),
		[]byte(`{"referenceId":"missing-article-001","images":[]}`))
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, outcome.Kind)
	assert.Zero(t, repo.saves)
}

func TestApplyReturnsInfraErrors(t *testing.T) {
	t.Run("读库失败交给重试", func(t *testing.T) {
		repo := newFakeArticleRepo()
		repo.getErr = errors.New("db down")
		handler := NewArticleImagesHandler(repo)

		_, err := handler.Apply(context.Background(),
			[]byte(`{"referenceId":"`+testArticleID+`","images":[]}`))
		assert.Error(t, err)
	})

	t.Run("保存失败交给重试", func(t *testing.T) {
		repo := newFakeArticleRepo()
		seedArticle(t, repo)
		repo.saveErr = errors.New("version conflict")
		handler := NewArticleImagesHandler(repo)

		_, err := handler.Apply(context.Background(),
			[]byte(`{"referenceId":"`+testArticleID+`","images":[]}`))
		assert.Error(t, err)
	})
}

func TestApplyFiltersInvalidImages(t *testing.T) {
	repo := newFakeArticleRepo()
	article := seedArticle(t, repo)
	handler := NewArticleImagesHandler(repo)

	payload := `{"referenceId":"` + testArticleID + `","images":[` +
		`{"imageId":"i1","imageUrl":""},` +
		`{"imageId":"i2","imageUrl":"https://x/y.png","sequence":1}]}`

	outcome, err := handler.Apply(context.Background(), []byte(payload))
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, outcome.Kind)
	assert.Equal(t, 1, outcome.Applied)

	require.Len(t, article.Images, 1)
	assert.Equal(t, "i2", article.Images[0].ImageID)
	assert.Equal(t, 1, article.Images[0].Sequence)
	require.NotNil(t, article.FirstImageURL)
	assert.Equal(t, "https://x/y.png", *article.FirstImageURL)
}

func TestApplyURLPrefixWhitelist(t *testing.T) {
	repo := newFakeArticleRepo()
	article := seedArticle(t, repo)
	handler := NewArticleImagesHandler(repo)

	payload := `{"referenceId":"` + testArticleID + `","images":[` +
		`{"imageId":"i1","imageUrl":"ftp://cdn/a.png"},` +
		`{"imageId":"i2","imageUrl":"/static/b.png"},` +
		`{"imageId":"i3","imageUrl":"javascript:alert(1)"}]}`

	outcome, err := handler.Apply(context.Background(), []byte(payload))
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Applied)
	require.Len(t, article.Images, 1)
	assert.Equal(t, "/static/b.png", article.Images[0].ImageURL)
}

func TestApplySortsBySequence(t *testing.T) {
	t.Run("乱序 sequence 重排后序号连续", func(t *testing.T) {
		repo := newFakeArticleRepo()
		article := seedArticle(t, repo)
		handler := NewArticleImagesHandler(repo)

		payload := `{"referenceId":"` + testArticleID + `","images":[` +
			`{"imageId":"i3","imageUrl":"https://cdn/c.png","sequence":7},` +
			`{"imageId":"i1","imageUrl":"https://cdn/a.png","sequence":2},` +
			`{"imageId":"i2","imageUrl":"https://cdn/b.png","sequence":5}]}`

		outcome, err := handler.Apply(context.Background(), []byte(payload))
		require.NoError(t, err)
		assert.Equal(t, 3, outcome.Applied)

		require.Len(t, article.Images, 3)
		assert.Equal(t, []string{"i1", "i2", "i3"},
			[]string{article.Images[0].ImageID, article.Images[1].ImageID, article.Images[2].ImageID})
		assert.Equal(t, []int{1, 2, 3},
			[]int{article.Images[0].Sequence, article.Images[1].Sequence, article.Images[2].Sequence})
		assert.Equal(t, "https://cdn/a.png", *article.FirstImageURL)
	})

	t.Run("sequence 全空时保持事件顺序", func(t *testing.T) {
		repo := newFakeArticleRepo()
		article := seedArticle(t, repo)
		handler := NewArticleImagesHandler(repo)

		payload := `{"referenceId":"` + testArticleID + `","images":[` +
			`{"imageId":"i2","imageUrl":"https://cdn/b.png"},` +
			`{"imageId":"i1","imageUrl":"https://cdn/a.png"}]}`

		_, err := handler.Apply(context.Background(), []byte(payload))
		require.NoError(t, err)
		require.Len(t, article.Images, 2)
		assert.Equal(t, "i2", article.Images[0].ImageID)
		assert.Equal(t, "i1", article.Images[1].ImageID)
	})
}

func TestApplyEmptyListDeletesAllImages(t *testing.T) {
	repo := newFakeArticleRepo()
	article := seedArticle(t, repo)
	article.ReplaceImages([]model.ImageRef{{ImageID: "i1", ImageURL: "https://cdn/a.png"}})
	article.MarkLoaded()
	handler := NewArticleImagesHandler(repo)

	outcome, err := handler.Apply(context.Background(),
		[]byte(`{"referenceId":"`+testArticleID+`","images":[]}`))
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, outcome.Kind)
	assert.Zero(t, outcome.Applied)
	assert.Empty(t, article.Images)
	assert.Nil(t, article.FirstImageURL)
}

func TestApplyIsIdempotent(t *testing.T) {
	repo := newFakeArticleRepo()
	article := seedArticle(t, repo)
	handler := NewArticleImagesHandler(repo)

	payload := `{"referenceId":"` + testArticleID + `","images":[` +
		`{"imageId":"i1","imageUrl":"https://cdn/a.png","sequence":1},` +
		`{"imageId":"i2","imageUrl":"https://cdn/b.png","sequence":2}]}`

	// 至少一次投递下同一事件可能被重复消费
	for i := 0; i < 3; i++ {
		outcome, err := handler.Apply(context.Background(), []byte(payload))
		require.NoError(t, err)
		assert.Equal(t, OutcomeApplied, outcome.Kind)
		assert.Equal(t, 2, outcome.Applied)
	}

	require.Len(t, article.Images, 2)
	assert.Equal(t, 1, article.Images[0].Sequence)
	assert.Equal(t, 2, article.Images[1].Sequence)
	assert.Equal(t, "https://cdn/a.png", *article.FirstImageURL)
	assert.Equal(t, 3, repo.saves)
}
