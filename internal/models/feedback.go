package models

import "time"

// Comment is a reader's comment on a book, joined with the author's profile.
type Comment struct {
	ID         int64     `json:"id" db:"id"`
	BookID     int64     `json:"book_id" db:"book_id"`
	UserID     int64     `json:"user_id" db:"user_id"`
	Content    string    `json:"content" db:"content"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UserName   string    `json:"user_name" db:"user_name"`
	UserAvatar string    `json:"user_avatar" db:"user_avatar"`
}

type CreateCommentRequest struct {
	BookID  *int64 `json:"book_id" validate:"required"`
	UserID  *int64 `json:"user_id" validate:"required"`
	Content string `json:"content" validate:"required,max=5000"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
}

// Rating is a 1-5 star review; a reader rates a product at most once.
type Rating struct {
	ID         int64     `json:"id" db:"id"`
	ProductID  int64     `json:"product_id" db:"product_id"`
	UserID     int64     `json:"user_id" db:"user_id"`
	Star       int       `json:"star" db:"star"`
	Content    string    `json:"content" db:"content"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UserName   string    `json:"user_name" db:"user_name"`
	UserAvatar string    `json:"user_avatar" db:"user_avatar"`
}

type CreateRatingRequest struct {
	ProductID *int64 `json:"product_id" validate:"required"`
	UserID    *int64 `json:"user_id" validate:"required"`
	Star      int    `json:"star" validate:"min=1,max=5"`
	Content   string `json:"content" validate:"max=5000"`
}

// RatingSummary is the star average over every rating of a product.
type RatingSummary struct {
	ProductID int64   `json:"product_id"`
	Count     int64   `json:"count"`
	Average   float64 `json:"average"`
}
