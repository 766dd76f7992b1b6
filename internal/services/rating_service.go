package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"bookstore/internal/common"
	"bookstore/internal/models"
	"bookstore/internal/repositories"
)

type RatingService interface {
	// Create records a rating from a reader who bought the product.
	Create(ctx context.Context, req *models.CreateRatingRequest) (*models.Rating, error)
	ListByProduct(ctx context.Context, productID int64, paging common.Paging) ([]*models.Rating, int64, error)
	Summary(ctx context.Context, productID int64) (*models.RatingSummary, error)
	// Delete is limited to the rating's author or an admin.
	Delete(ctx context.Context, id int64) error
}

type ratingService struct {
	ratingRepo repositories.RatingRepository
}

func NewRatingService(ratingRepo repositories.RatingRepository) RatingService {
	return &ratingService{ratingRepo: ratingRepo}
}

func (s *ratingService) Create(ctx context.Context, req *models.CreateRatingRequest) (*models.Rating, error) {
	req.Content = strings.TrimSpace(req.Content)
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}
	if !common.CanActFor(ctx, *req.UserID) {
		return nil, common.ErrForbidden
	}

	bought, err := s.ratingRepo.HasPurchased(ctx, *req.UserID, *req.ProductID)
	if err != nil {
		return nil, err
	}
	if !bought {
		return nil, fmt.Errorf("user %d has not bought product %d: %w", *req.UserID, *req.ProductID, common.ErrForbidden)
	}

	rating := &models.Rating{ProductID: *req.ProductID, UserID: *req.UserID, Star: req.Star, Content: req.Content}
	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		return nil, err
	}
	log.Printf("Rating %d: product %d got %d stars from user %d", rating.ID, rating.ProductID, rating.Star, rating.UserID)
	return rating, nil
}

func (s *ratingService) ListByProduct(ctx context.Context, productID int64, paging common.Paging) ([]*models.Rating, int64, error) {
	paging = paging.Clamp(common.DefaultMaxPageSize)
	return s.ratingRepo.ListByProduct(ctx, productID, paging.Limit, paging.Offset)
}

func (s *ratingService) Summary(ctx context.Context, productID int64) (*models.RatingSummary, error) {
	return s.ratingRepo.Summary(ctx, productID)
}

func (s *ratingService) Delete(ctx context.Context, id int64) error {
	rating, err := s.ratingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !common.CanActFor(ctx, rating.UserID) {
		return common.ErrForbidden
	}
	return s.ratingRepo.Delete(ctx, id)
}
