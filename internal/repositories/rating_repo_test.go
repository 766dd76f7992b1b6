package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"bookstore/internal/common"
	"bookstore/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RatingRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    RatingRepository
	context context.Context
}

func (suite *RatingRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock
	suite.repo = NewRatingRepo(mock)
	suite.context = context.Background()
}

func (suite *RatingRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestRatingRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RatingRepoTestSuite))
}

var ratingRowColumns = []string{"id", "product_id", "user_id", "star", "content", "created_at", "name", "avatar"}

func (suite *RatingRepoTestSuite) TestCreate_SecondRatingConflicts() {
	rt := &models.Rating{ProductID: 7, UserID: 3, Star: 5}

	suite.mock.ExpectQuery(regexp.QuoteMeta(insertRatingSQL)).
		WithArgs(int64(7), int64(3), 5, "").
		WillReturnError(&pgconn.PgError{Code: uniqueViolation})

	assert.ErrorIs(suite.T(), suite.repo.Create(suite.context, rt), common.ErrConflict)
}

func (suite *RatingRepoTestSuite) TestCreate_ReturnsID() {
	rt := &models.Rating{ProductID: 7, UserID: 3, Star: 4, Content: "good"}

	suite.mock.ExpectQuery(regexp.QuoteMeta(insertRatingSQL)).
		WithArgs(int64(7), int64(3), 4, "good").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(2), time.Now()))

	require.NoError(suite.T(), suite.repo.Create(suite.context, rt))
	assert.Equal(suite.T(), int64(2), rt.ID)
}

func (suite *RatingRepoTestSuite) TestListByProduct() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(listRatingsSQL+" WHERE product_id = $1 ORDER BY r.created_at DESC, r.id DESC LIMIT $2 OFFSET $3")).
		WithArgs(int64(7), 10, 10).
		WillReturnRows(pgxmock.NewRows(ratingRowColumns).
			AddRow(int64(2), int64(7), int64(3), 4, "good", time.Now(), "Ann", ""))
	suite.mock.ExpectQuery(regexp.QuoteMeta(countRatingsSQL + " WHERE product_id = $1")).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(11)))

	ratings, total, err := suite.repo.ListByProduct(suite.context, 7, 10, 10)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), ratings, 1)
	assert.Equal(suite.T(), "Ann", ratings[0].UserName)
	assert.Equal(suite.T(), int64(11), total)
}

func (suite *RatingRepoTestSuite) TestSummary() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(ratingSummarySQL)).WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"count", "avg"}).AddRow(int64(4), 4.25))

	summary, err := suite.repo.Summary(suite.context, 7)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(4), summary.Count)
	assert.InDelta(suite.T(), 4.25, summary.Average, 1e-9)
}

func (suite *RatingRepoTestSuite) TestHasPurchased_IgnoresCancelledOrders() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(hasPurchasedSQL)).
		WithArgs(int64(3), int64(7), models.DeliveryCancelled).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	ok, err := suite.repo.HasPurchased(suite.context, 3, 7)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), ok)
}

func (suite *RatingRepoTestSuite) TestDelete_NotFound() {
	suite.mock.ExpectExec(regexp.QuoteMeta(deleteRatingSQL)).WithArgs(int64(2)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.ErrorIs(suite.T(), suite.repo.Delete(suite.context, 2), common.ErrNotFound)
}
