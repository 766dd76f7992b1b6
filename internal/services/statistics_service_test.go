package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"bookstore/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStatistics_CacheHitSkipsStore(t *testing.T) {
	repo := new(MockStatisticsRepository)
	cache := new(MockCacheService)
	svc := NewStatisticsService(repo, cache, time.Minute)
	ctx := context.Background()

	cache.On("GetJSON", ctx, statsProductsSoldKey, mock.Anything).Run(func(args mock.Arguments) {
		dest := args.Get(2).(**models.ProductsSold)
		*dest = &models.ProductsSold{TotalProductsSold: 4, TotalQuantitySold: 9}
	}).Return(true, nil)

	sold, err := svc.TotalProductsSold(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(9), sold.TotalQuantitySold)
	repo.AssertNotCalled(t, "ProductsSold", mock.Anything)
	cache.AssertExpectations(t)
}

func TestStatistics_MissLoadsAndStores(t *testing.T) {
	repo := new(MockStatisticsRepository)
	cache := new(MockCacheService)
	svc := NewStatisticsService(repo, cache, time.Minute)
	ctx := context.Background()

	best := []*models.BestSeller{{ProductID: 1, TotalSold: 12}}
	cache.On("GetJSON", ctx, "stats:best-selling:5", mock.Anything).Return(false, nil)
	repo.On("BestSelling", ctx, 5).Return(best, nil)
	cache.On("SetJSON", ctx, "stats:best-selling:5", best, time.Minute).Return(nil)

	got, err := svc.BestSelling(ctx, 5)

	require.NoError(t, err)
	assert.Equal(t, best, got)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestStatistics_CacheErrorFallsBackToStore(t *testing.T) {
	repo := new(MockStatisticsRepository)
	cache := new(MockCacheService)
	svc := NewStatisticsService(repo, cache, time.Minute)
	ctx := context.Background()

	monthly := []*models.MonthlyRevenue{{Month: "2026-09", Revenue: 1200}}
	cache.On("GetJSON", ctx, statsMonthlyRevenueKey, mock.Anything).Return(false, errors.New("redis down"))
	repo.On("MonthlyRevenue", ctx).Return(monthly, nil)
	cache.On("SetJSON", ctx, statsMonthlyRevenueKey, monthly, time.Minute).Return(errors.New("redis down"))

	got, err := svc.MonthlyRevenue(ctx)

	require.NoError(t, err)
	assert.Equal(t, monthly, got)
}

func TestStatistics_LimitClamped(t *testing.T) {
	repo := new(MockStatisticsRepository)
	svc := NewStatisticsService(repo, nil, time.Minute)
	ctx := context.Background()

	repo.On("TopKeywords", ctx, DefaultStatsLimit).Return([]*models.KeywordCount{}, nil)
	repo.On("TopKeywords", ctx, maxStatsLimit).Return([]*models.KeywordCount{}, nil)

	_, err := svc.TopKeywords(ctx, 0)
	require.NoError(t, err)
	_, err = svc.TopKeywords(ctx, 5000)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestStatistics_RefreshStoresEveryDefault(t *testing.T) {
	repo := new(MockStatisticsRepository)
	cache := new(MockCacheService)
	svc := NewStatisticsService(repo, cache, time.Minute)
	ctx := context.Background()

	repo.On("ProductsSold", ctx).Return(&models.ProductsSold{}, nil)
	repo.On("OrderCountByStatus", ctx).Return([]*models.StatusCount{}, nil)
	repo.On("BestSelling", ctx, DefaultStatsLimit).Return([]*models.BestSeller{}, nil)
	repo.On("TopKeywords", ctx, DefaultStatsLimit).Return([]*models.KeywordCount{}, nil)
	repo.On("MonthlyRevenue", ctx).Return([]*models.MonthlyRevenue{}, nil)
	repo.On("DailyRevenue", ctx).Return(&models.DailyRevenue{}, nil)
	cache.On("SetJSON", ctx, mock.AnythingOfType("string"), mock.Anything, time.Minute).Return(nil).Times(6)

	require.NoError(t, svc.Refresh(ctx))
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestStatistics_RefreshStopsOnStoreError(t *testing.T) {
	repo := new(MockStatisticsRepository)
	svc := NewStatisticsService(repo, nil, time.Minute)
	ctx := context.Background()

	repo.On("ProductsSold", ctx).Return(nil, errors.New("db down"))

	err := svc.Refresh(ctx)

	assert.ErrorContains(t, err, "products sold")
}

func TestStatistics_InvalidateDeletesDefaultKeys(t *testing.T) {
	cache := new(MockCacheService)
	svc := NewStatisticsService(new(MockStatisticsRepository), cache, time.Minute)
	ctx := context.Background()

	cache.On("Delete", ctx, mock.MatchedBy(func(keys []string) bool {
		return len(keys) == 6 && keys[0] == statsProductsSoldKey
	})).Return(nil)

	svc.Invalidate(ctx)
	cache.AssertExpectations(t)
}
