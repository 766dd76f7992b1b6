package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"bookstore/internal/caching"
	"bookstore/internal/models"
	"bookstore/internal/repositories"
)

const (
	DefaultStatsLimit = 10
	maxStatsLimit     = 100

	statsProductsSoldKey   = "stats:products-sold"
	statsStatusCountKey    = "stats:order-count-by-status"
	statsMonthlyRevenueKey = "stats:monthly-revenue"
	statsDailyRevenueKey   = "stats:daily-revenue"
)

type StatisticsServiceInterface interface {
	TotalProductsSold(ctx context.Context) (*models.ProductsSold, error)
	OrderCountByStatus(ctx context.Context) ([]*models.StatusCount, error)
	BestSelling(ctx context.Context, limit int) ([]*models.BestSeller, error)
	TopKeywords(ctx context.Context, limit int) ([]*models.KeywordCount, error)
	MonthlyRevenue(ctx context.Context) ([]*models.MonthlyRevenue, error)
	DailyRevenue(ctx context.Context) (*models.DailyRevenue, error)

	// Refresh recomputes every default statistic and overwrites the cache.
	Refresh(ctx context.Context) error
	// Invalidate drops the cached default statistics.
	Invalidate(ctx context.Context)
}

type statisticsService struct {
	repo  repositories.StatisticsRepository
	cache caching.CacheService
	ttl   time.Duration
}

func NewStatisticsService(repo repositories.StatisticsRepository, cache caching.CacheService, ttl time.Duration) StatisticsServiceInterface {
	return &statisticsService{repo: repo, cache: cache, ttl: ttl}
}

// cached serves key from the cache, falling back to load. Cache failures are
// logged and never fail the request.
func cached[T any](ctx context.Context, s *statisticsService, key string, load func(context.Context) (T, error)) (T, error) {
	var out T
	if s.cache != nil {
		hit, err := s.cache.GetJSON(ctx, key, &out)
		if err != nil {
			log.Printf("WARN: statistics cache read %s: %v", key, err)
		} else if hit {
			return out, nil
		}
	}

	out, err := load(ctx)
	if err != nil {
		return out, err
	}
	s.store(ctx, key, out)
	return out, nil
}

func (s *statisticsService) store(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, value, s.ttl); err != nil {
		log.Printf("WARN: statistics cache write %s: %v", key, err)
	}
}

func (s *statisticsService) TotalProductsSold(ctx context.Context) (*models.ProductsSold, error) {
	return cached(ctx, s, statsProductsSoldKey, s.repo.ProductsSold)
}

func (s *statisticsService) OrderCountByStatus(ctx context.Context) ([]*models.StatusCount, error) {
	return cached(ctx, s, statsStatusCountKey, s.repo.OrderCountByStatus)
}

func (s *statisticsService) BestSelling(ctx context.Context, limit int) ([]*models.BestSeller, error) {
	limit = clampStatsLimit(limit)
	return cached(ctx, s, bestSellingKey(limit), func(ctx context.Context) ([]*models.BestSeller, error) {
		return s.repo.BestSelling(ctx, limit)
	})
}

func (s *statisticsService) TopKeywords(ctx context.Context, limit int) ([]*models.KeywordCount, error) {
	limit = clampStatsLimit(limit)
	return cached(ctx, s, topKeywordsKey(limit), func(ctx context.Context) ([]*models.KeywordCount, error) {
		return s.repo.TopKeywords(ctx, limit)
	})
}

func (s *statisticsService) MonthlyRevenue(ctx context.Context) ([]*models.MonthlyRevenue, error) {
	return cached(ctx, s, statsMonthlyRevenueKey, s.repo.MonthlyRevenue)
}

func (s *statisticsService) DailyRevenue(ctx context.Context) (*models.DailyRevenue, error) {
	return cached(ctx, s, statsDailyRevenueKey, s.repo.DailyRevenue)
}

func (s *statisticsService) Refresh(ctx context.Context) error {
	sold, err := s.repo.ProductsSold(ctx)
	if err != nil {
		return fmt.Errorf("products sold: %w", err)
	}
	s.store(ctx, statsProductsSoldKey, sold)

	counts, err := s.repo.OrderCountByStatus(ctx)
	if err != nil {
		return fmt.Errorf("order count by status: %w", err)
	}
	s.store(ctx, statsStatusCountKey, counts)

	best, err := s.repo.BestSelling(ctx, DefaultStatsLimit)
	if err != nil {
		return fmt.Errorf("best selling: %w", err)
	}
	s.store(ctx, bestSellingKey(DefaultStatsLimit), best)

	keywords, err := s.repo.TopKeywords(ctx, DefaultStatsLimit)
	if err != nil {
		return fmt.Errorf("top keywords: %w", err)
	}
	s.store(ctx, topKeywordsKey(DefaultStatsLimit), keywords)

	monthly, err := s.repo.MonthlyRevenue(ctx)
	if err != nil {
		return fmt.Errorf("monthly revenue: %w", err)
	}
	s.store(ctx, statsMonthlyRevenueKey, monthly)

	daily, err := s.repo.DailyRevenue(ctx)
	if err != nil {
		return fmt.Errorf("daily revenue: %w", err)
	}
	s.store(ctx, statsDailyRevenueKey, daily)
	return nil
}

func (s *statisticsService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	err := s.cache.Delete(ctx,
		statsProductsSoldKey,
		statsStatusCountKey,
		bestSellingKey(DefaultStatsLimit),
		topKeywordsKey(DefaultStatsLimit),
		statsMonthlyRevenueKey,
		statsDailyRevenueKey,
	)
	if err != nil {
		log.Printf("WARN: statistics cache invalidation: %v", err)
	}
}

func clampStatsLimit(limit int) int {
	if limit <= 0 {
		return DefaultStatsLimit
	}
	if limit > maxStatsLimit {
		return maxStatsLimit
	}
	return limit
}

func bestSellingKey(limit int) string { return fmt.Sprintf("stats:best-selling:%d", limit) }
func topKeywordsKey(limit int) string { return fmt.Sprintf("stats:top-keywords:%d", limit) }
