package models

import "time"

type Product struct {
	ID            int64     `json:"id" db:"id"`
	ProductName   string    `json:"product_name" db:"product_name"`
	Publisher     string    `json:"publisher" db:"publisher"`
	Author        string    `json:"author" db:"author"`
	CategoryID    int64     `json:"category_id" db:"category_id"`
	Sale          int       `json:"sale" db:"sale"`
	Image         string    `json:"image" db:"image"`
	Quantity      int       `json:"quantity" db:"quantity"` // stock on hand
	Price         int64     `json:"price" db:"price"`
	SalePrice     int64     `json:"saleprice" db:"saleprice"` // discount percentage applied to price
	ProductDetail string    `json:"product_detail" db:"product_detail"`
	Status        int       `json:"status" db:"status"` // 1 visible, 0 hidden
	Trash         int       `json:"trash" db:"trash"`   // 1 soft-deleted
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

type CreateProductRequest struct {
	ProductName   string `json:"product_name" validate:"required"`
	Publisher     string `json:"publisher" validate:"required"`
	Author        string `json:"author" validate:"required"`
	CategoryID    *int64 `json:"category_id" validate:"required"`
	Sale          int    `json:"sale" validate:"oneof=0 1"`
	Quantity      *int   `json:"quantity" validate:"required,gte=0"`
	Price         int64  `json:"price" validate:"gt=0"`
	SalePrice     int64  `json:"saleprice" validate:"gte=0,lte=100"`
	ProductDetail string `json:"product_detail"`
	Status        int    `json:"status" validate:"oneof=0 1"`
	Trash         int    `json:"trash" validate:"oneof=0 1"`
}

func (r *CreateProductRequest) ToProduct() *Product {
	return &Product{
		ProductName:   r.ProductName,
		Publisher:     r.Publisher,
		Author:        r.Author,
		CategoryID:    *r.CategoryID,
		Sale:          r.Sale,
		Quantity:      *r.Quantity,
		Price:         r.Price,
		SalePrice:     r.SalePrice,
		ProductDetail: r.ProductDetail,
		Status:        r.Status,
		Trash:         r.Trash,
	}
}
