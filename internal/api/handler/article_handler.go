package handler

import (
	"Bulletin/internal/api/dto"
	"Bulletin/internal/pkg/response"
	"Bulletin/internal/service"

	"github.com/gin-gonic/gin"
)

type ArticleHandler struct {
	articleSvc service.ArticleService
	searchSvc  service.SearchService
}

func NewArticleHandler(articleSvc service.ArticleService, searchSvc service.SearchService) *ArticleHandler {
	return &ArticleHandler{
		articleSvc: articleSvc,
		searchSvc:  searchSvc,
	}
}

// writerID 上游网关鉴权后注入的写作者标识
func writerID(c *gin.Context) string {
	return c.GetHeader("X-Writer-Id")
}

func (s *ArticleHandler) CreateArticle(c *gin.Context) {
	var req dto.ArticleBaseDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	article, err := s.articleSvc.CreateArticle(c.Request.Context(), writerID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, article)
}

func (s *ArticleHandler) GetArticle(c *gin.Context) {
	articleID := c.Param("article_id")

	article, err := s.articleSvc.GetArticle(c.Request.Context(), articleID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, article)
}

func (s *ArticleHandler) UpdateArticle(c *gin.Context) {
	articleID := c.Param("article_id")

	var req dto.ArticleUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	article, err := s.articleSvc.UpdateArticle(c.Request.Context(), writerID(c), articleID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, article)
}

func (s *ArticleHandler) DeleteArticle(c *gin.Context) {
	articleID := c.Param("article_id")
	reason := c.Query("reason")

	if err := s.articleSvc.DeleteArticle(c.Request.Context(), writerID(c), articleID, reason); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func (s *ArticleHandler) SearchArticles(c *gin.Context) {
	var searchDTO dto.SearchArticleDTO
	if err := c.ShouldBindQuery(&searchDTO); err != nil {
		response.Error(c, err)
		return
	}

	articles, err := s.searchSvc.SearchArticles(c.Request.Context(), &searchDTO)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, articles)
}
