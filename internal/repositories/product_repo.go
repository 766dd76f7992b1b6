package repositories

import (
	"context"
	"fmt"

	"bookstore/internal/common"
	"bookstore/internal/models"
)

// ProductFilterColumns may appear in equality filters on products.
var ProductFilterColumns = common.Columns{
	"category_id": common.IntColumn,
	"status":      common.IntColumn,
	"trash":       common.IntColumn,
	"sale":        common.IntColumn,
	"author":      common.TextColumn,
	"publisher":   common.TextColumn,
}

// ProductUpdateColumns may be assigned by a partial product update.
var ProductUpdateColumns = common.Columns{
	"product_name":   common.TextColumn,
	"publisher":      common.TextColumn,
	"author":         common.TextColumn,
	"category_id":    common.IntColumn,
	"sale":           common.IntColumn,
	"quantity":       common.IntColumn,
	"price":          common.IntColumn,
	"saleprice":      common.IntColumn,
	"product_detail": common.TextColumn,
	"status":         common.IntColumn,
	"trash":          common.IntColumn,
}

const (
	productColumns = `id, product_name, publisher, author, category_id, sale, image, quantity, price, saleprice, product_detail, status, trash, created_at`

	insertProductSQL = `INSERT INTO products (product_name, publisher, author, category_id, sale, image, quantity, price, saleprice, product_detail, status, trash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		RETURNING id, created_at`
	selectProductSQL    = `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	listProductsSQL     = `SELECT ` + productColumns + ` FROM products`
	countProductsSQL    = `SELECT COUNT(*) FROM products`
	toggleStatusSQL     = `UPDATE products SET status = 1 - status WHERE id = $1`
	toggleTrashSQL      = `UPDATE products SET trash = 1 - trash WHERE id = $1`
	setProductImageSQL  = `UPDATE products SET image = $1 WHERE id = $2`
	deleteProductSQL    = `DELETE FROM products WHERE id = $1`
	searchPredicate     = ` WHERE status = 1 AND trash = 0 AND (product_name ILIKE $1 OR author ILIKE $1 OR publisher ILIKE $1)`
	searchProductsSQL   = `SELECT ` + productColumns + ` FROM products` + searchPredicate + ` ORDER BY id DESC LIMIT $2 OFFSET $3`
	countSearchProducts = `SELECT COUNT(*) FROM products` + searchPredicate
	lowStockSQL         = `SELECT ` + productColumns + ` FROM products WHERE trash = 0 AND quantity <= $1 ORDER BY quantity, id LIMIT $2`
)

// visibleProducts restricts browsing listings to published, untrashed products.
var visibleProducts = []common.FieldValue{
	{Column: "status", Value: int64(1)},
	{Column: "trash", Value: int64(0)},
}

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	List(ctx context.Context, filters []common.FieldValue, limit, offset int) ([]*models.Product, int64, error)
	// ListVisible pages through published, untrashed products matching filters, newest first.
	ListVisible(ctx context.Context, filters []common.FieldValue, limit, offset int) ([]*models.Product, int64, error)
	Update(ctx context.Context, id int64, assignments []common.FieldValue) error
	ToggleStatus(ctx context.Context, id int64) error
	ToggleTrash(ctx context.Context, id int64) error
	SetImage(ctx context.Context, id int64, image string) error
	Delete(ctx context.Context, id int64) error
	// Search matches visible products by title, author or publisher.
	Search(ctx context.Context, query string, limit, offset int) ([]*models.Product, int64, error)
	// LowStock lists untrashed products with quantity at or below threshold, lowest first.
	LowStock(ctx context.Context, threshold, limit int) ([]*models.Product, error)
}

type productRepo struct {
	db Database
}

func NewProductRepo(db Database) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, p *models.Product) error {
	err := r.db.QueryRow(ctx, insertProductSQL,
		p.ProductName, p.Publisher, p.Author, p.CategoryID, p.Sale, p.Image, p.Quantity,
		p.Price, p.SalePrice, p.ProductDetail, p.Status, p.Trash,
	).Scan(&p.ID, &p.CreatedAt)
	if isForeignKeyViolation(err) {
		return common.NewValidationError("category_id", "category does not exist")
	}
	return err
}

func (r *productRepo) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	product, err := scanProduct(r.db.QueryRow(ctx, selectProductSQL, id))
	if err != nil {
		if noRows(err) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

func (r *productRepo) List(ctx context.Context, filters []common.FieldValue, limit, offset int) ([]*models.Product, int64, error) {
	return listPage(ctx, r.db, listProductsSQL, countProductsSQL, "id DESC", filters, limit, offset, scanProduct)
}

func (r *productRepo) ListVisible(ctx context.Context, filters []common.FieldValue, limit, offset int) ([]*models.Product, int64, error) {
	all := make([]common.FieldValue, 0, len(filters)+len(visibleProducts))
	all = append(all, filters...)
	all = append(all, visibleProducts...)
	return listPage(ctx, r.db, listProductsSQL, countProductsSQL, "created_at DESC, id DESC", all, limit, offset, scanProduct)
}

func (r *productRepo) Update(ctx context.Context, id int64, assignments []common.FieldValue) error {
	set, args := setClause(assignments, 1)
	query := fmt.Sprintf("UPDATE products SET %s WHERE id = $%d", set, len(args)+1)
	err := execAffecting(ctx, r.db, query, append(args, id)...)
	if isForeignKeyViolation(err) {
		return common.NewValidationError("category_id", "category does not exist")
	}
	return err
}

func (r *productRepo) ToggleStatus(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.db, toggleStatusSQL, id)
}

func (r *productRepo) ToggleTrash(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.db, toggleTrashSQL, id)
}

func (r *productRepo) SetImage(ctx context.Context, id int64, image string) error {
	return execAffecting(ctx, r.db, setProductImageSQL, image, id)
}

// Delete removes a product nobody ordered or has in a cart. Referenced
// products answer ErrConflict; trash them instead.
func (r *productRepo) Delete(ctx context.Context, id int64) error {
	err := execAffecting(ctx, r.db, deleteProductSQL, id)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("product %d is still referenced: %w", id, common.ErrConflict)
	}
	return err
}

func (r *productRepo) Search(ctx context.Context, query string, limit, offset int) ([]*models.Product, int64, error) {
	pattern := "%" + query + "%"
	rows, err := r.db.Query(ctx, searchProductsSQL, pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := make([]*models.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSearchProducts, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepo) LowStock(ctx context.Context, threshold, limit int) ([]*models.Product, error) {
	return collect(ctx, r.db, lowStockSQL, []interface{}{threshold, limit}, scanProduct)
}

func scanProduct(row rowScanner) (*models.Product, error) {
	p := &models.Product{}
	err := row.Scan(&p.ID, &p.ProductName, &p.Publisher, &p.Author, &p.CategoryID, &p.Sale, &p.Image,
		&p.Quantity, &p.Price, &p.SalePrice, &p.ProductDetail, &p.Status, &p.Trash, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}
