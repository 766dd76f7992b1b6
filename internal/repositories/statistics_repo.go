package repositories

import (
	"context"

	"bookstore/internal/models"
)

const (
	productsSoldSQL = `SELECT COUNT(DISTINCT product_id), COALESCE(SUM(quantity), 0)::BIGINT FROM order_details`
	statusCountSQL  = `SELECT delivered, COUNT(*) FROM orders GROUP BY delivered ORDER BY delivered`
	bestSellingSQL  = `SELECT p.id, p.product_name, p.image, SUM(od.quantity)::BIGINT AS total_sold
		FROM products p
		JOIN order_details od ON p.id = od.product_id
		GROUP BY p.id, p.product_name, p.image
		ORDER BY total_sold DESC
		LIMIT $1`
	topKeywordsSQL    = `SELECT keyword, time_search FROM search_keywords ORDER BY time_search DESC LIMIT $1`
	monthlyRevenueSQL = `SELECT TO_CHAR(order_date, 'YYYY-MM') AS month, COALESCE(SUM(total), 0)::BIGINT
		FROM orders
		WHERE delivered = $1 AND order_date >= CURRENT_DATE - INTERVAL '6 months'
		GROUP BY month
		ORDER BY month DESC`
	dailyRevenueSQL = `SELECT CURRENT_DATE::TIMESTAMPTZ, COALESCE(SUM(total), 0)::BIGINT, COUNT(*)
		FROM orders
		WHERE delivered = $1 AND order_date::DATE = CURRENT_DATE`
)

// StatisticsRepository aggregates sales data. Revenue counts completed orders only.
type StatisticsRepository interface {
	ProductsSold(ctx context.Context) (*models.ProductsSold, error)
	OrderCountByStatus(ctx context.Context) ([]*models.StatusCount, error)
	BestSelling(ctx context.Context, limit int) ([]*models.BestSeller, error)
	TopKeywords(ctx context.Context, limit int) ([]*models.KeywordCount, error)
	MonthlyRevenue(ctx context.Context) ([]*models.MonthlyRevenue, error)
	DailyRevenue(ctx context.Context) (*models.DailyRevenue, error)
}

type statisticsRepo struct {
	db Database
}

func NewStatisticsRepo(db Database) StatisticsRepository {
	return &statisticsRepo{db: db}
}

func (r *statisticsRepo) ProductsSold(ctx context.Context) (*models.ProductsSold, error) {
	out := &models.ProductsSold{}
	if err := r.db.QueryRow(ctx, productsSoldSQL).Scan(&out.TotalProductsSold, &out.TotalQuantitySold); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *statisticsRepo) OrderCountByStatus(ctx context.Context) ([]*models.StatusCount, error) {
	return collect(ctx, r.db, statusCountSQL, nil, func(row rowScanner) (*models.StatusCount, error) {
		sc := &models.StatusCount{}
		return sc, row.Scan(&sc.Delivered, &sc.OrderCount)
	})
}

func (r *statisticsRepo) BestSelling(ctx context.Context, limit int) ([]*models.BestSeller, error) {
	return collect(ctx, r.db, bestSellingSQL, []interface{}{limit}, func(row rowScanner) (*models.BestSeller, error) {
		b := &models.BestSeller{}
		return b, row.Scan(&b.ProductID, &b.ProductName, &b.Image, &b.TotalSold)
	})
}

func (r *statisticsRepo) TopKeywords(ctx context.Context, limit int) ([]*models.KeywordCount, error) {
	return collect(ctx, r.db, topKeywordsSQL, []interface{}{limit}, func(row rowScanner) (*models.KeywordCount, error) {
		k := &models.KeywordCount{}
		return k, row.Scan(&k.Keyword, &k.TimeSearch)
	})
}

func (r *statisticsRepo) MonthlyRevenue(ctx context.Context) ([]*models.MonthlyRevenue, error) {
	return collect(ctx, r.db, monthlyRevenueSQL, []interface{}{models.DeliveryCompleted}, func(row rowScanner) (*models.MonthlyRevenue, error) {
		m := &models.MonthlyRevenue{}
		return m, row.Scan(&m.Month, &m.Revenue)
	})
}

func (r *statisticsRepo) DailyRevenue(ctx context.Context) (*models.DailyRevenue, error) {
	d := &models.DailyRevenue{}
	if err := r.db.QueryRow(ctx, dailyRevenueSQL, models.DeliveryCompleted).Scan(&d.Day, &d.Revenue, &d.Orders); err != nil {
		return nil, err
	}
	return d, nil
}

func collect[T any](ctx context.Context, db Database, query string, args []interface{}, scan func(rowScanner) (T, error)) ([]T, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
