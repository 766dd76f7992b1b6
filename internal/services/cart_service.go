package services

import (
	"context"

	"bookstore/internal/common"
	"bookstore/internal/models"
	"bookstore/internal/repositories"
)

type CartService interface {
	// GetCart returns the user's cart priced with each product's current discount.
	GetCart(ctx context.Context, userID int64) (*models.Cart, error)
	AddItem(ctx context.Context, req *models.CartItemRequest) error
	UpdateItem(ctx context.Context, req *models.CartItemRequest) error
	RemoveItem(ctx context.Context, req *models.CartRemoveRequest) error
	Clear(ctx context.Context, userID int64) error
}

type cartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) CartService {
	return &cartService{cartRepo: cartRepo, productRepo: productRepo}
}

func (s *cartService) GetCart(ctx context.Context, userID int64) (*models.Cart, error) {
	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart := &models.Cart{UserID: userID, Items: items}
	for _, item := range items {
		item.LineTotal = item.UnitPrice() * int64(item.Quantity)
		cart.Total += item.LineTotal
	}
	return cart, nil
}

func (s *cartService) AddItem(ctx context.Context, req *models.CartItemRequest) error {
	if err := common.ValidateStruct(req); err != nil {
		return err
	}
	if _, err := s.productRepo.GetByID(ctx, *req.ProductID); err != nil {
		return err
	}
	return s.cartRepo.Add(ctx, *req.UserID, *req.ProductID, req.Quantity)
}

func (s *cartService) UpdateItem(ctx context.Context, req *models.CartItemRequest) error {
	if err := common.ValidateStruct(req); err != nil {
		return err
	}
	return s.cartRepo.SetQuantity(ctx, *req.UserID, *req.ProductID, req.Quantity)
}

func (s *cartService) RemoveItem(ctx context.Context, req *models.CartRemoveRequest) error {
	if err := common.ValidateStruct(req); err != nil {
		return err
	}
	return s.cartRepo.Remove(ctx, *req.UserID, *req.ProductID)
}

func (s *cartService) Clear(ctx context.Context, userID int64) error {
	return s.cartRepo.Clear(ctx, userID)
}
