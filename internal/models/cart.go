package models

import "github.com/shopspring/decimal"

type CartItem struct {
	ID          int64  `json:"id" db:"id"`
	UserID      int64  `json:"user_id" db:"user_id"`
	ProductID   int64  `json:"product_id" db:"product_id"`
	Quantity    int    `json:"quantity" db:"quantity"`
	ProductName string `json:"product_name" db:"product_name"`
	Image       string `json:"image" db:"image"`
	Price       int64  `json:"price" db:"price"`
	SalePrice   int64  `json:"saleprice" db:"saleprice"`
	LineTotal   int64  `json:"line_total" db:"-"`
}

// UnitPrice is the price after the percentage discount, rounded half up to whole units.
func (c *CartItem) UnitPrice() int64 {
	return DiscountedPrice(c.Price, c.SalePrice)
}

// DiscountedPrice applies a percentage discount to price.
func DiscountedPrice(price, discountPercent int64) int64 {
	p := decimal.NewFromInt(price)
	off := p.Mul(decimal.NewFromInt(discountPercent)).Div(decimal.NewFromInt(100))
	return p.Sub(off).Round(0).IntPart()
}

type Cart struct {
	UserID int64       `json:"user_id"`
	Items  []*CartItem `json:"items"`
	Total  int64       `json:"total"`
}

type CartItemRequest struct {
	UserID    *int64 `json:"user_id" validate:"required"`
	ProductID *int64 `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

type CartRemoveRequest struct {
	UserID    *int64 `json:"user_id" validate:"required"`
	ProductID *int64 `json:"product_id" validate:"required"`
}
