package repository

import (
	"Bulletin/internal/model"
	"context"

	"gorm.io/gorm"
)

type KeywordRepo interface {
	GetAllKeywords(ctx context.Context) ([]*model.Keyword, error)
	GetKeywordsByIds(ctx context.Context, ids []string) ([]*model.Keyword, error)
}

type keywordRepoImpl struct {
	db *gorm.DB
}

func NewKeywordRepository(db *gorm.DB) KeywordRepo {
	return &keywordRepoImpl{
		db: db,
	}
}

func (s *keywordRepoImpl) GetAllKeywords(ctx context.Context) ([]*model.Keyword, error) {
	var keywords []*model.Keyword
	err := s.db.WithContext(ctx).Find(&keywords).Error
	if err != nil {
		return nil, err
	}
	return keywords, nil
}

func (s *keywordRepoImpl) GetKeywordsByIds(ctx context.Context, ids []string) ([]*model.Keyword, error) {
	var keywords []*model.Keyword
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&keywords).Error
	if err != nil {
		return nil, err
	}
	return keywords, nil
}
