package repositories

import (
	"context"

	"bookstore/internal/models"
)

const (
	selectCartSQL = `SELECT c.id, c.user_id, c.product_id, c.quantity, p.product_name, p.image, p.price, p.saleprice
		FROM cart c
		JOIN products p ON p.id = c.product_id
		WHERE c.user_id = $1
		ORDER BY c.id`
	upsertCartSQL = `INSERT INTO cart (user_id, product_id, quantity) VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id) DO UPDATE SET quantity = cart.quantity + EXCLUDED.quantity`
	updateCartSQL = `UPDATE cart SET quantity = $1 WHERE user_id = $2 AND product_id = $3`
	removeCartSQL = `DELETE FROM cart WHERE user_id = $1 AND product_id = $2`
)

type CartRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]*models.CartItem, error)
	// Add inserts the line or increments the quantity already in the cart.
	Add(ctx context.Context, userID, productID int64, quantity int) error
	SetQuantity(ctx context.Context, userID, productID int64, quantity int) error
	Remove(ctx context.Context, userID, productID int64) error
	Clear(ctx context.Context, userID int64) error
}

type cartRepo struct {
	db Database
}

func NewCartRepo(db Database) CartRepository {
	return &cartRepo{db: db}
}

func (r *cartRepo) ListByUser(ctx context.Context, userID int64) ([]*models.CartItem, error) {
	rows, err := r.db.Query(ctx, selectCartSQL, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*models.CartItem, 0)
	for rows.Next() {
		item := &models.CartItem{}
		if err := rows.Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity,
			&item.ProductName, &item.Image, &item.Price, &item.SalePrice); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *cartRepo) Add(ctx context.Context, userID, productID int64, quantity int) error {
	_, err := r.db.Exec(ctx, upsertCartSQL, userID, productID, quantity)
	return err
}

func (r *cartRepo) SetQuantity(ctx context.Context, userID, productID int64, quantity int) error {
	return execAffecting(ctx, r.db, updateCartSQL, quantity, userID, productID)
}

func (r *cartRepo) Remove(ctx context.Context, userID, productID int64) error {
	return execAffecting(ctx, r.db, removeCartSQL, userID, productID)
}

// Clear empties the cart; an already empty cart is not an error.
func (r *cartRepo) Clear(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, clearCartSQL, userID)
	return err
}
