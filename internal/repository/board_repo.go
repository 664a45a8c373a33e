package repository

import (
	"Bulletin/internal/model"
	"context"

	"gorm.io/gorm"
)

type BoardRepo interface {
	GetAllBoards(ctx context.Context) ([]*model.Board, error)
}

type boardRepoImpl struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) BoardRepo {
	return &boardRepoImpl{
		db: db,
	}
}

func (s *boardRepoImpl) GetAllBoards(ctx context.Context) ([]*model.Board, error) {
	var boards []*model.Board
	err := s.db.WithContext(ctx).Find(&boards).Error
	if err != nil {
		return nil, err
	}
	return boards, nil
}
