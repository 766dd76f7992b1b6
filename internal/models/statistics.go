package models

import "time"

type ProductsSold struct {
	TotalProductsSold int64 `json:"totalProductsSold"` // distinct products ever ordered
	TotalQuantitySold int64 `json:"totalQuantitySold"`
}

type StatusCount struct {
	Delivered  int   `json:"delivered"`
	OrderCount int64 `json:"orderCount"`
}

type BestSeller struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Image       string `json:"image"`
	TotalSold   int64  `json:"totalSold"`
}

type KeywordCount struct {
	Keyword    string `json:"keyword"`
	TimeSearch int64  `json:"time_search"`
}

type MonthlyRevenue struct {
	Month   string `json:"month"` // YYYY-MM
	Revenue int64  `json:"revenue"`
}

// DailyRevenue covers completed orders placed today.
type DailyRevenue struct {
	Day     time.Time `json:"day"`
	Revenue int64     `json:"revenue"`
	Orders  int64     `json:"orders"`
}

type SearchKeyword struct {
	ID         int64     `json:"id" db:"id"`
	Keyword    string    `json:"keyword" db:"keyword"`
	TimeSearch int       `json:"time_search" db:"time_search"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
