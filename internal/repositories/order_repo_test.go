package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"bookstore/internal/common"
	"bookstore/internal/models"

	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type OrderRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    OrderRepository
	context context.Context
	order   *models.Order
	details []*models.OrderDetail
}

func (suite *OrderRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock
	suite.repo = NewOrderRepo(mock)
	suite.context = context.Background()

	suite.order = &models.Order{
		CustomerID: 5,
		Name:       "Alice",
		Phone:      "0912345678",
		Address:    "",
		Total:      300,
		Method:     1,
		Payment:    0,
		Note:       "leave at door",
		Delivered:  models.DeliveryPlaced,
	}
	suite.details = []*models.OrderDetail{
		{ProductID: 1, Quantity: 2, Price: 100},
		{ProductID: 2, Quantity: 1, Price: 100},
	}
}

func (suite *OrderRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestOrderRepoTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepoTestSuite))
}

func (suite *OrderRepoTestSuite) expectOrderInsert() *pgxmock.ExpectedQuery {
	o := suite.order
	return suite.mock.ExpectQuery(regexp.QuoteMeta(insertOrderSQL)).
		WithArgs(o.CustomerID, o.Name, o.Phone, o.Address, o.Total, o.Method, o.Payment, o.Note, o.Delivered)
}

func (suite *OrderRepoTestSuite) expectLineCopy() *pgxmock.ExpectedCopyFrom {
	return suite.mock.ExpectCopyFrom(pgx.Identifier{"order_details"}, orderDetailColumns)
}

func (suite *OrderRepoTestSuite) expectCartClear() *pgxmock.ExpectedExec {
	return suite.mock.ExpectExec(regexp.QuoteMeta(clearCartSQL)).WithArgs(int64(5))
}

func (suite *OrderRepoTestSuite) expectStockUpdate(quantity int, productID int64) *pgxmock.ExpectedExec {
	return suite.mock.ExpectExec(regexp.QuoteMeta(decrementStockSQL)).WithArgs(quantity, productID)
}

func (suite *OrderRepoTestSuite) assertStage(err error, stage string) {
	var stageErr *common.StageError
	require.ErrorAs(suite.T(), err, &stageErr)
	assert.Equal(suite.T(), stage, stageErr.Stage)
}

func (suite *OrderRepoTestSuite) TestCreateWithDetails_Success() {
	suite.mock.ExpectBegin()
	suite.expectOrderInsert().WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))
	suite.expectLineCopy().WillReturnResult(2)
	suite.expectCartClear().WillReturnResult(pgxmock.NewResult("DELETE", 3))
	suite.expectStockUpdate(2, 1).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.expectStockUpdate(1, 2).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	id, err := suite.repo.CreateWithDetails(suite.context, suite.order, suite.details)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(42), id)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *OrderRepoTestSuite) TestCreateWithDetails_PersistsTotalVerbatim() {
	// total disagrees with the lines (2*100 + 1*100 = 300) and is still stored as given
	suite.order.Total = 1
	suite.mock.ExpectBegin()
	suite.expectOrderInsert().WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(43)))
	suite.expectLineCopy().WillReturnResult(2)
	suite.expectCartClear().WillReturnResult(pgxmock.NewResult("DELETE", 0))
	suite.expectStockUpdate(2, 1).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.expectStockUpdate(1, 2).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	_, err := suite.repo.CreateWithDetails(suite.context, suite.order, suite.details)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *OrderRepoTestSuite) TestCreateWithDetails_NoStockCheck() {
	// quantity beyond any stock level goes straight to the decrement, no locking read first
	suite.details = []*models.OrderDetail{{ProductID: 1, Quantity: 1000000, Price: 100}}
	suite.mock.ExpectBegin()
	suite.expectOrderInsert().WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(44)))
	suite.expectLineCopy().WillReturnResult(1)
	suite.expectCartClear().WillReturnResult(pgxmock.NewResult("DELETE", 0))
	suite.expectStockUpdate(1000000, 1).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	_, err := suite.repo.CreateWithDetails(suite.context, suite.order, suite.details)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *OrderRepoTestSuite) TestCreateWithDetails_BeginFails() {
	suite.mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

	_, err := suite.repo.CreateWithDetails(suite.context, suite.order, suite.details)
	suite.assertStage(err, common.StageBegin)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *OrderRepoTestSuite) TestCreateWithDetails_OrderInsertFails() {
	suite.mock.ExpectBegin()
	suite.expectOrderInsert().WillReturnError(errors.New("fk violation"))
	suite.mock.ExpectRollback()

	_, err := suite.repo.CreateWithDetails(suite.context, suite.order, suite.details)
	suite.assertStage(err, common.StageOrderInsert)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *OrderRepoTestSuite) TestCreateWithDetails_LineInsertFails() {
	suite.mock.ExpectBegin()
	suite.expectOrderInsert().WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))
	suite.expectLineCopy().WillReturnError(errors.New("unknown product"))
	suite.mock.ExpectRollback()

	_, err := suite.repo.CreateWithDetails(suite.context, suite.order, suite.details)
	suite.assertStage(err, common.StageLineInsert)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *OrderRepoTestSuite) TestCreateWithDetails_PartialLineInsert() {
	suite.mock.ExpectBegin()
	suite.expectOrderInsert().WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))
	suite.expectLineCopy().WillReturnResult(1)
	suite.mock.ExpectRollback()

	_, err := suite.repo.CreateWithDetails(suite.context, suite.order, suite.details)
	suite.assertStage(err, common.StageLineInsert)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *OrderRepoTestSuite) TestCreateWithDetails_CartClearFails() {
	suite.mock.ExpectBegin()
	suite.expectOrderInsert().WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))
	suite.expectLineCopy().WillReturnResult(2)
	suite.expectCartClear().WillReturnError(errors.New("lock timeout"))
	suite.mock.ExpectRollback()

	_, err := suite.repo.CreateWithDetails(suite.context, suite.order, suite.details)
	suite.assertStage(err, common.StageCartClear)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *OrderRepoTestSuite) TestCreateWithDetails_InventoryUpdateFails() {
	suite.mock.ExpectBegin()
	suite.expectOrderInsert().WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))
	suite.expectLineCopy().WillReturnResult(2)
	suite.expectCartClear().WillReturnResult(pgxmock.NewResult("DELETE", 1))
	suite.expectStockUpdate(2, 1).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.expectStockUpdate(1, 2).WillReturnError(errors.New("check constraint"))
	suite.mock.ExpectRollback()

	_, err := suite.repo.CreateWithDetails(suite.context, suite.order, suite.details)
	suite.assertStage(err, common.StageInventoryUpdate)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *OrderRepoTestSuite) TestCreateWithDetails_CommitFails() {
	suite.mock.ExpectBegin()
	suite.expectOrderInsert().WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))
	suite.expectLineCopy().WillReturnResult(2)
	suite.expectCartClear().WillReturnResult(pgxmock.NewResult("DELETE", 1))
	suite.expectStockUpdate(2, 1).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.expectStockUpdate(1, 2).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))
	suite.mock.ExpectRollback()

	_, err := suite.repo.CreateWithDetails(suite.context, suite.order, suite.details)
	suite.assertStage(err, common.StageCommit)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *OrderRepoTestSuite) TestGetByID_WithDetails() {
	now := time.Now()
	suite.mock.ExpectQuery(regexp.QuoteMeta(selectOrderSQL)).WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "customer_id", "name", "phone", "address", "total", "method", "payment", "note", "delivered", "order_date"}).
			AddRow(int64(42), int64(5), "Alice", "0912345678", "", int64(300), 1, 0, "", 0, now))
	suite.mock.ExpectQuery(regexp.QuoteMeta(selectDetailsSQL)).WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows([]string{"order_id", "product_id", "quantity", "price", "product_name", "image"}).
			AddRow(int64(42), int64(1), 2, int64(100), "Go in Action", "products/go.jpg").
			AddRow(int64(42), int64(2), 1, int64(100), "The Go Programming Language", ""))

	order, err := suite.repo.GetByID(suite.context, 42)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(300), order.Total)
	require.Len(suite.T(), order.OrderDetails, 2)
	assert.Equal(suite.T(), "Go in Action", order.OrderDetails[0].ProductName)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *OrderRepoTestSuite) TestGetByID_NotFound() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(selectOrderSQL)).WithArgs(int64(99)).WillReturnError(pgx.ErrNoRows)

	_, err := suite.repo.GetByID(suite.context, 99)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *OrderRepoTestSuite) TestGetByID_StoreError() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(selectOrderSQL)).WithArgs(int64(99)).WillReturnError(errors.New("connection reset"))

	_, err := suite.repo.GetByID(suite.context, 99)
	assert.Error(suite.T(), err)
	assert.NotErrorIs(suite.T(), err, common.ErrNotFound)
}

func orderRows(ids ...int64) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{"id", "customer_id", "name", "phone", "address", "total", "method", "payment", "note", "delivered", "order_date"})
	for _, id := range ids {
		rows.AddRow(id, int64(5), "Alice", "0912345678", "", int64(100), 1, 0, "", 0, time.Now())
	}
	return rows
}

func (suite *OrderRepoTestSuite) TestList_Pagination() {
	listSQL := listOrdersSQL + " ORDER BY order_date DESC, id DESC LIMIT $1 OFFSET $2"

	suite.mock.ExpectQuery(regexp.QuoteMeta(listSQL)).WithArgs(2, 0).WillReturnRows(orderRows(5, 4))
	suite.mock.ExpectQuery(regexp.QuoteMeta(countOrdersSQL)).WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(5)))

	orders, total, err := suite.repo.List(suite.context, nil, 2, 0)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), orders, 2)
	assert.Equal(suite.T(), int64(5), total)

	suite.mock.ExpectQuery(regexp.QuoteMeta(listSQL)).WithArgs(2, 4).WillReturnRows(orderRows(1))
	suite.mock.ExpectQuery(regexp.QuoteMeta(countOrdersSQL)).WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(5)))

	orders, total, err = suite.repo.List(suite.context, nil, 2, 4)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), orders, 1)
	assert.Equal(suite.T(), int64(5), total)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *OrderRepoTestSuite) TestList_FiltersShareCountPredicate() {
	filters := []common.FieldValue{
		{Column: "delivered", Value: int64(0)},
		{Column: "phone", Value: "0912345678"},
	}
	where := " WHERE delivered = $1 AND phone = $2"

	suite.mock.ExpectQuery(regexp.QuoteMeta(listOrdersSQL+where+" ORDER BY order_date DESC, id DESC LIMIT $3 OFFSET $4")).
		WithArgs(int64(0), "0912345678", 10, 0).
		WillReturnRows(orderRows())
	suite.mock.ExpectQuery(regexp.QuoteMeta(countOrdersSQL+where)).
		WithArgs(int64(0), "0912345678").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))

	orders, total, err := suite.repo.List(suite.context, filters, 10, 0)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), orders)
	assert.NotNil(suite.T(), orders)
	assert.Equal(suite.T(), int64(0), total)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *OrderRepoTestSuite) TestUpdate_Success() {
	assignments := []common.FieldValue{
		{Column: "address", Value: "12 Main St"},
		{Column: "delivered", Value: int64(1)},
	}
	suite.mock.ExpectExec(regexp.QuoteMeta("UPDATE orders SET address = $1, delivered = $2 WHERE id = $3")).
		WithArgs("12 Main St", int64(1), int64(42)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.Update(suite.context, 42, assignments)
	assert.NoError(suite.T(), err)
}

func (suite *OrderRepoTestSuite) TestUpdate_NotFound() {
	suite.mock.ExpectExec(regexp.QuoteMeta("UPDATE orders SET name = $1 WHERE id = $2")).
		WithArgs("Bob", int64(42)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := suite.repo.Update(suite.context, 42, []common.FieldValue{{Column: "name", Value: "Bob"}})
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *OrderRepoTestSuite) TestSetDelivered_Cancel() {
	suite.mock.ExpectExec(regexp.QuoteMeta(setDeliveredSQL)).
		WithArgs(models.DeliveryCancelled, int64(42)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.SetDelivered(suite.context, 42, models.DeliveryCancelled)
	assert.NoError(suite.T(), err)
	// no stock or cart statements were issued
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *OrderRepoTestSuite) TestSetPayment_NotFound() {
	suite.mock.ExpectExec(regexp.QuoteMeta(setPaymentSQL)).
		WithArgs(1, int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := suite.repo.SetPayment(suite.context, 7, 1)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *OrderRepoTestSuite) TestDeleteWithDetails_Success() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(regexp.QuoteMeta(deleteOrderDetailsSQL)).WithArgs(int64(42)).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	suite.mock.ExpectExec(regexp.QuoteMeta(deleteOrderSQL)).WithArgs(int64(42)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	suite.mock.ExpectCommit()

	err := suite.repo.DeleteWithDetails(suite.context, 42)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *OrderRepoTestSuite) TestDeleteWithDetails_NotFoundRollsBack() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(regexp.QuoteMeta(deleteOrderDetailsSQL)).WithArgs(int64(99)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	suite.mock.ExpectExec(regexp.QuoteMeta(deleteOrderSQL)).WithArgs(int64(99)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	suite.mock.ExpectRollback()

	err := suite.repo.DeleteWithDetails(suite.context, 99)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *OrderRepoTestSuite) TestDeleteWithDetails_LineDeleteFails() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(regexp.QuoteMeta(deleteOrderDetailsSQL)).WithArgs(int64(42)).
		WillReturnError(errors.New("deadlock detected"))
	suite.mock.ExpectRollback()

	err := suite.repo.DeleteWithDetails(suite.context, 42)
	suite.assertStage(err, common.StageLineDelete)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *OrderRepoTestSuite) TestDeleteWithDetails_OrderDeleteFails() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(regexp.QuoteMeta(deleteOrderDetailsSQL)).WithArgs(int64(42)).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	suite.mock.ExpectExec(regexp.QuoteMeta(deleteOrderSQL)).WithArgs(int64(42)).
		WillReturnError(errors.New("deadlock detected"))
	suite.mock.ExpectRollback()

	err := suite.repo.DeleteWithDetails(suite.context, 42)
	suite.assertStage(err, common.StageOrderDelete)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}
