package services

import (
	"context"

	"bookstore/internal/common"
	"bookstore/internal/models"
	"bookstore/internal/repositories"
)

type SearchKeywordService interface {
	List(ctx context.Context, paging common.Paging) ([]*models.SearchKeyword, int64, error)
	Delete(ctx context.Context, id int64) error
}

type searchKeywordService struct {
	repo repositories.SearchKeywordRepository
}

func NewSearchKeywordService(repo repositories.SearchKeywordRepository) SearchKeywordService {
	return &searchKeywordService{repo: repo}
}

func (s *searchKeywordService) List(ctx context.Context, paging common.Paging) ([]*models.SearchKeyword, int64, error) {
	paging = paging.Clamp(common.DefaultMaxPageSize)
	return s.repo.List(ctx, paging.Limit, paging.Offset)
}

func (s *searchKeywordService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
