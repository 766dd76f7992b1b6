package handlers

import (
	"bookstore/internal/common"
	"bookstore/internal/models"
	"bookstore/internal/services"

	"github.com/labstack/echo/v4"
)

// CartHandlers handles HTTP requests for shopping carts
type CartHandlers struct {
	cartService services.CartService
}

func NewCartHandlers(cartService services.CartService) *CartHandlers {
	return &CartHandlers{cartService: cartService}
}

// GetCart handles GET /cart/:userId
func (h *CartHandlers) GetCart(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return common.SendFailure(c, "Invalid user ID", err)
	}
	ctx := c.Request().Context()
	if !common.CanActFor(ctx, userID) {
		return common.SendForbiddenError(c)
	}

	cart, err := h.cartService.GetCart(ctx, userID)
	if err != nil {
		return common.SendFailure(c, "Failed to get cart", err)
	}
	return common.SendSuccess(c, "Cart retrieved successfully", cart)
}

// AddItem handles POST /cart/add
func (h *CartHandlers) AddItem(c echo.Context) error {
	var req models.CartItemRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	ctx := c.Request().Context()
	if req.UserID != nil && !common.CanActFor(ctx, *req.UserID) {
		return common.SendForbiddenError(c)
	}

	if err := h.cartService.AddItem(ctx, &req); err != nil {
		return common.SendFailure(c, "Failed to add item", err)
	}
	return common.SendCreated(c, "Item added to cart", nil)
}

// UpdateItem handles PUT /cart/update
func (h *CartHandlers) UpdateItem(c echo.Context) error {
	var req models.CartItemRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	ctx := c.Request().Context()
	if req.UserID != nil && !common.CanActFor(ctx, *req.UserID) {
		return common.SendForbiddenError(c)
	}

	if err := h.cartService.UpdateItem(ctx, &req); err != nil {
		return common.SendFailure(c, "Failed to update item", err)
	}
	return common.SendSuccess(c, "Cart item updated", nil)
}

// RemoveItem handles DELETE /cart/remove
func (h *CartHandlers) RemoveItem(c echo.Context) error {
	var req models.CartRemoveRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	ctx := c.Request().Context()
	if req.UserID != nil && !common.CanActFor(ctx, *req.UserID) {
		return common.SendForbiddenError(c)
	}

	if err := h.cartService.RemoveItem(ctx, &req); err != nil {
		return common.SendFailure(c, "Failed to remove item", err)
	}
	return common.SendSuccess(c, "Cart item removed", nil)
}

// Clear handles DELETE /cart/clear/:userId
func (h *CartHandlers) Clear(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return common.SendFailure(c, "Invalid user ID", err)
	}
	ctx := c.Request().Context()
	if !common.CanActFor(ctx, userID) {
		return common.SendForbiddenError(c)
	}

	if err := h.cartService.Clear(ctx, userID); err != nil {
		return common.SendFailure(c, "Failed to clear cart", err)
	}
	return common.SendSuccess(c, "Cart cleared", nil)
}
