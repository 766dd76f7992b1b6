package repositories

import (
	"context"
	"fmt"

	"bookstore/internal/common"
	"bookstore/internal/models"

	"github.com/jackc/pgx/v5"
)

// OrderFilterColumns may appear in equality filters on orders.
var OrderFilterColumns = common.Columns{
	"id":          common.IntColumn,
	"customer_id": common.IntColumn,
	"name":        common.TextColumn,
	"phone":       common.PhoneColumn,
	"delivered":   common.IntColumn,
	"method":      common.IntColumn,
	"payment":     common.IntColumn,
}

// OrderUpdateColumns may be assigned by a partial order update.
var OrderUpdateColumns = common.Columns{
	"name":      common.TextColumn,
	"phone":     common.PhoneColumn,
	"address":   common.TextColumn,
	"total":     common.IntColumn,
	"method":    common.IntColumn,
	"payment":   common.IntColumn,
	"note":      common.NullableTextColumn,
	"delivered": common.IntColumn,
}

const (
	orderColumns = `id, customer_id, name, phone, address, total, method, payment, COALESCE(note, ''), delivered, order_date`

	insertOrderSQL = `INSERT INTO orders (customer_id, name, phone, address, total, method, payment, note, delivered, order_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING id`
	clearCartSQL      = `DELETE FROM cart WHERE user_id = $1`
	decrementStockSQL = `UPDATE products SET quantity = quantity - $1 WHERE id = $2`

	selectOrderSQL   = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	selectDetailsSQL = `SELECT od.order_id, od.product_id, od.quantity, od.price, COALESCE(p.product_name, ''), COALESCE(p.image, '')
		FROM order_details od
		LEFT JOIN products p ON p.id = od.product_id
		WHERE od.order_id = $1
		ORDER BY od.id`
	listOrdersSQL  = `SELECT ` + orderColumns + ` FROM orders`
	countOrdersSQL = `SELECT COUNT(*) FROM orders`

	setDeliveredSQL = `UPDATE orders SET delivered = $1 WHERE id = $2`
	setPaymentSQL   = `UPDATE orders SET payment = $1 WHERE id = $2`

	deleteOrderDetailsSQL = `DELETE FROM order_details WHERE order_id = $1`
	deleteOrderSQL        = `DELETE FROM orders WHERE id = $1`
)

var orderDetailColumns = []string{"order_id", "product_id", "quantity", "price"}

type OrderRepository interface {
	// CreateWithDetails inserts the order and its lines, clears the customer's
	// cart and decrements stock in one transaction, returning the new id.
	CreateWithDetails(ctx context.Context, order *models.Order, details []*models.OrderDetail) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	List(ctx context.Context, filters []common.FieldValue, limit, offset int) ([]*models.Order, int64, error)
	Update(ctx context.Context, id int64, assignments []common.FieldValue) error
	SetDelivered(ctx context.Context, id int64, delivered int) error
	SetPayment(ctx context.Context, id int64, payment int) error
	// DeleteWithDetails removes the order's lines and then the order in one transaction.
	DeleteWithDetails(ctx context.Context, id int64) error
}

type orderRepo struct {
	db Database
}

func NewOrderRepo(db Database) OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) CreateWithDetails(ctx context.Context, order *models.Order, details []*models.OrderDetail) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, &common.StageError{Stage: common.StageBegin, Err: err}
	}

	var orderID int64
	err = tx.QueryRow(ctx, insertOrderSQL,
		order.CustomerID, order.Name, order.Phone, order.Address, order.Total,
		order.Method, order.Payment, order.Note, order.Delivered,
	).Scan(&orderID)
	if err != nil {
		return 0, rollback(ctx, tx, common.StageOrderInsert, err)
	}

	rows := make([][]interface{}, 0, len(details))
	for _, d := range details {
		rows = append(rows, []interface{}{orderID, d.ProductID, d.Quantity, d.Price})
	}
	copied, err := tx.CopyFrom(ctx, pgx.Identifier{"order_details"}, orderDetailColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, rollback(ctx, tx, common.StageLineInsert, err)
	}
	if copied != int64(len(details)) {
		return 0, rollback(ctx, tx, common.StageLineInsert,
			fmt.Errorf("inserted %d of %d order lines", copied, len(details)))
	}

	if _, err := tx.Exec(ctx, clearCartSQL, order.CustomerID); err != nil {
		return 0, rollback(ctx, tx, common.StageCartClear, err)
	}

	// One statement per line: a transaction's connection cannot run them concurrently.
	for _, d := range details {
		if _, err := tx.Exec(ctx, decrementStockSQL, d.Quantity, d.ProductID); err != nil {
			return 0, rollback(ctx, tx, common.StageInventoryUpdate, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, rollback(ctx, tx, common.StageCommit, err)
	}
	return orderID, nil
}

func (r *orderRepo) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	order, err := scanOrder(r.db.QueryRow(ctx, selectOrderSQL, id))
	if err != nil {
		if noRows(err) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}

	rows, err := r.db.Query(ctx, selectDetailsSQL, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	order.OrderDetails = make([]*models.OrderDetail, 0)
	for rows.Next() {
		d := &models.OrderDetail{}
		if err := rows.Scan(&d.OrderID, &d.ProductID, &d.Quantity, &d.Price, &d.ProductName, &d.Image); err != nil {
			return nil, err
		}
		order.OrderDetails = append(order.OrderDetails, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return order, nil
}

// List returns one page of orders matching every filter and the total number
// of matching orders.
func (r *orderRepo) List(ctx context.Context, filters []common.FieldValue, limit, offset int) ([]*models.Order, int64, error) {
	return listPage(ctx, r.db, listOrdersSQL, countOrdersSQL, "order_date DESC, id DESC", filters, limit, offset, scanOrder)
}

func (r *orderRepo) Update(ctx context.Context, id int64, assignments []common.FieldValue) error {
	set, args := setClause(assignments, 1)
	query := fmt.Sprintf("UPDATE orders SET %s WHERE id = $%d", set, len(args)+1)
	return execAffecting(ctx, r.db, query, append(args, id)...)
}

func (r *orderRepo) SetDelivered(ctx context.Context, id int64, delivered int) error {
	return execAffecting(ctx, r.db, setDeliveredSQL, delivered, id)
}

func (r *orderRepo) SetPayment(ctx context.Context, id int64, payment int) error {
	return execAffecting(ctx, r.db, setPaymentSQL, payment, id)
}

func (r *orderRepo) DeleteWithDetails(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return &common.StageError{Stage: common.StageBegin, Err: err}
	}

	if _, err := tx.Exec(ctx, deleteOrderDetailsSQL, id); err != nil {
		return rollback(ctx, tx, common.StageLineDelete, err)
	}

	tag, err := tx.Exec(ctx, deleteOrderSQL, id)
	if err != nil {
		return rollback(ctx, tx, common.StageOrderDelete, err)
	}
	if tag.RowsAffected() == 0 {
		if err := tx.Rollback(ctx); err != nil {
			return &common.StageError{Stage: common.StageRollback, Err: err}
		}
		return common.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return rollback(ctx, tx, common.StageCommit, err)
	}
	return nil
}

func scanOrder(row rowScanner) (*models.Order, error) {
	o := &models.Order{}
	err := row.Scan(&o.ID, &o.CustomerID, &o.Name, &o.Phone, &o.Address, &o.Total,
		&o.Method, &o.Payment, &o.Note, &o.Delivered, &o.OrderDate)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// execAffecting runs a single-row mutation and maps zero affected rows to ErrNotFound.
func execAffecting(ctx context.Context, db Database, query string, args ...interface{}) error {
	tag, err := db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}
