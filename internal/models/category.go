package models

import "time"

type Category struct {
	ID           int64     `json:"id" db:"id"`
	CategoryName string    `json:"category_name" db:"category_name"`
	Illustration string    `json:"illustration" db:"illustration"`
	Status       int       `json:"status" db:"status"` // 1 visible, 0 hidden
	Trash        int       `json:"trash" db:"trash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type CreateCategoryRequest struct {
	CategoryName string `json:"category_name" validate:"required,max=255"`
	Status       int    `json:"status" validate:"oneof=0 1"`
	Trash        int    `json:"trash" validate:"oneof=0 1"`
}

// FlagRequest sets a 0/1 flag such as status or trash.
type FlagRequest struct {
	Value *int `json:"value" validate:"required,oneof=0 1"`
}
