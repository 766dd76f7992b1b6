package repositories

import (
	"context"
	"regexp"
	"testing"

	"bookstore/internal/models"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatisticsRepo_MonthlyRevenueCountsCompletedOrders(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(monthlyRevenueSQL)).WithArgs(models.DeliveryCompleted).
		WillReturnRows(pgxmock.NewRows([]string{"month", "revenue"}).
			AddRow("2026-10", int64(1500)).
			AddRow("2026-09", int64(900)))

	months, err := NewStatisticsRepo(mock).MonthlyRevenue(context.Background())
	require.NoError(t, err)
	require.Len(t, months, 2)
	assert.Equal(t, "2026-10", months[0].Month)
	assert.Equal(t, int64(1500), months[0].Revenue)
}

func TestStatisticsRepo_BestSelling(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(bestSellingSQL)).WithArgs(5).
		WillReturnRows(pgxmock.NewRows([]string{"id", "product_name", "image", "total_sold"}).
			AddRow(int64(1), "Go in Action", "", int64(42)))

	best, err := NewStatisticsRepo(mock).BestSelling(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, best, 1)
	assert.Equal(t, int64(42), best[0].TotalSold)
}

func TestStatisticsRepo_ProductsSold(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(productsSoldSQL)).
		WillReturnRows(pgxmock.NewRows([]string{"count", "sum"}).AddRow(int64(3), int64(17)))

	sold, err := NewStatisticsRepo(mock).ProductsSold(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), sold.TotalProductsSold)
	assert.Equal(t, int64(17), sold.TotalQuantitySold)
}

func TestSearchKeywordRepo_RecordAndDelete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta(recordKeywordSQL)).WithArgs("golang").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(regexp.QuoteMeta(deleteKeywordSQL)).WithArgs(int64(4)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewSearchKeywordRepo(mock)
	assert.NoError(t, repo.Record(context.Background(), "golang"))
	assert.Error(t, repo.Delete(context.Background(), 4))
	assert.NoError(t, mock.ExpectationsWereMet())
}
