package testhelpers

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"testing"

	"bookstore/internal/models"
	"bookstore/pkg/database"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TestDB holds the database connection for testing
type TestDB struct {
	Pool    *pgxpool.Pool
	Cleanup func()
}

var seq atomic.Int64

// SetupTestDB connects to TEST_DATABASE_URL, applies the schema and empties
// every table. The test is skipped when the variable is unset.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database test")
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, connString, database.PoolOptions{MaxConns: 4})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE ratings, comments, order_details, orders, cart, search_keywords, products, categories, users RESTART IDENTITY`); err != nil {
		pool.Close()
		t.Fatalf("Failed to reset test database: %v", err)
	}

	db := &TestDB{Pool: pool, Cleanup: pool.Close}
	t.Cleanup(db.Cleanup)
	return db
}

// SeedUser creates an active customer.
func SeedUser(t *testing.T, db *TestDB) *models.User {
	t.Helper()

	n := seq.Add(1)
	user := &models.User{
		Email:        fmt.Sprintf("reader%d@example.com", n),
		PasswordHash: "x",
		Name:         "Test Reader",
		Phone:        "0912345678",
		Status:       1,
		Role:         models.RoleCustomer,
	}
	query := `
		INSERT INTO users (email, password, name, phone, status, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := db.Pool.QueryRow(context.Background(), query,
		user.Email, user.PasswordHash, user.Name, user.Phone, user.Status, user.Role,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// SeedCategory creates a visible category.
func SeedCategory(t *testing.T, db *TestDB) *models.Category {
	t.Helper()

	category := &models.Category{CategoryName: fmt.Sprintf("Test Category %d", seq.Add(1)), Status: 1}
	query := `
		INSERT INTO categories (category_name, status)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	err := db.Pool.QueryRow(context.Background(), query, category.CategoryName, category.Status).
		Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test category: %v", err)
	}
	return category
}

// SeedProduct creates a visible product with the given stock in a fresh category.
func SeedProduct(t *testing.T, db *TestDB, quantity int) *models.Product {
	t.Helper()

	category := SeedCategory(t, db)
	product := &models.Product{
		ProductName: fmt.Sprintf("Test Book %d", seq.Add(1)),
		Publisher:   "Test Press",
		Author:      "Test Author",
		CategoryID:  category.ID,
		Sale:        1,
		Quantity:    quantity,
		Price:       100,
		Status:      1,
	}
	query := `
		INSERT INTO products (product_name, publisher, author, category_id, sale, quantity, price, saleprice, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`
	err := db.Pool.QueryRow(context.Background(), query,
		product.ProductName, product.Publisher, product.Author, product.CategoryID, product.Sale,
		product.Quantity, product.Price, product.SalePrice, product.Status,
	).Scan(&product.ID, &product.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test product: %v", err)
	}
	return product
}

// Count returns the number of rows in table matching where.
func Count(t *testing.T, db *TestDB, table, where string, args ...interface{}) int {
	t.Helper()

	var n int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", table, where)
	if err := db.Pool.QueryRow(context.Background(), query, args...).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}
