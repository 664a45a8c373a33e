package handler

import (
	"Bulletin/internal/pkg/response"
	"Bulletin/internal/service"

	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	boardSvc service.BoardService
}

func NewBoardHandler(boardSvc service.BoardService) *BoardHandler {
	return &BoardHandler{
		boardSvc: boardSvc,
	}
}

func (s *BoardHandler) GetBoards(c *gin.Context) {
	boards, err := s.boardSvc.GetBoards(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, boards)
}

func (s *BoardHandler) GetKeywords(c *gin.Context) {
	boardID := c.Query("board_id")

	keywords, err := s.boardSvc.GetKeywords(c.Request.Context(), boardID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, keywords)
}
