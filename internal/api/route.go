package api

import (
	"Bulletin/internal/api/middleware"
	"Bulletin/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		articleGroup := apiGroup.Group("/articles")
		{
			articleGroup.GET("/search", group.ArticleHandler.SearchArticles)
			articleGroup.GET("/:article_id", group.ArticleHandler.GetArticle)
			articleGroup.POST("", group.ArticleHandler.CreateArticle)
			articleGroup.PUT("/:article_id", group.ArticleHandler.UpdateArticle)
			articleGroup.DELETE("/:article_id", group.ArticleHandler.DeleteArticle)
		}

		boardGroup := apiGroup.Group("/boards")
		{
			boardGroup.GET("", group.BoardHandler.GetBoards)
			boardGroup.GET("/keywords", group.BoardHandler.GetKeywords)
		}
	}

	return r
}
