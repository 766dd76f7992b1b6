package repositories

import (
	"context"
	"fmt"

	"bookstore/internal/common"
	"bookstore/internal/models"
)

// CategoryFilterColumns may appear in equality filters on categories.
var CategoryFilterColumns = common.Columns{
	"category_name": common.TextColumn,
	"status":        common.IntColumn,
	"trash":         common.IntColumn,
}

// CategoryUpdateColumns may be assigned by a partial category update.
var CategoryUpdateColumns = common.Columns{
	"category_name": common.TextColumn,
	"status":        common.IntColumn,
	"trash":         common.IntColumn,
}

const (
	categoryColumns = `id, category_name, illustration, status, trash, created_at`

	insertCategorySQL = `INSERT INTO categories (category_name, illustration, status, trash, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at`
	selectCategorySQL    = `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	listCategoriesSQL    = `SELECT ` + categoryColumns + ` FROM categories`
	countCategoriesSQL   = `SELECT COUNT(*) FROM categories`
	allCategoriesSQL     = `SELECT ` + categoryColumns + ` FROM categories ORDER BY id`
	setCategoryStatusSQL = `UPDATE categories SET status = $1 WHERE id = $2`
	setCategoryTrashSQL  = `UPDATE categories SET trash = $1 WHERE id = $2`
	setIllustrationSQL   = `UPDATE categories SET illustration = $1 WHERE id = $2`
	deleteCategorySQL    = `DELETE FROM categories WHERE id = $1`
)

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	All(ctx context.Context) ([]*models.Category, error)
	List(ctx context.Context, filters []common.FieldValue, limit, offset int) ([]*models.Category, int64, error)
	Update(ctx context.Context, id int64, assignments []common.FieldValue) error
	SetStatus(ctx context.Context, id int64, status int) error
	SetTrash(ctx context.Context, id int64, trash int) error
	SetIllustration(ctx context.Context, id int64, illustration string) error
	// Delete answers ErrConflict while products still belong to the category.
	Delete(ctx context.Context, id int64) error
}

type categoryRepo struct {
	db Database
}

func NewCategoryRepo(db Database) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) Create(ctx context.Context, c *models.Category) error {
	return r.db.QueryRow(ctx, insertCategorySQL, c.CategoryName, c.Illustration, c.Status, c.Trash).
		Scan(&c.ID, &c.CreatedAt)
}

func (r *categoryRepo) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	category, err := scanCategory(r.db.QueryRow(ctx, selectCategorySQL, id))
	if err != nil {
		if noRows(err) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return category, nil
}

func (r *categoryRepo) All(ctx context.Context) ([]*models.Category, error) {
	return collect(ctx, r.db, allCategoriesSQL, nil, scanCategory)
}

func (r *categoryRepo) List(ctx context.Context, filters []common.FieldValue, limit, offset int) ([]*models.Category, int64, error) {
	return listPage(ctx, r.db, listCategoriesSQL, countCategoriesSQL, "id DESC", filters, limit, offset, scanCategory)
}

func (r *categoryRepo) Update(ctx context.Context, id int64, assignments []common.FieldValue) error {
	set, args := setClause(assignments, 1)
	query := fmt.Sprintf("UPDATE categories SET %s WHERE id = $%d", set, len(args)+1)
	return execAffecting(ctx, r.db, query, append(args, id)...)
}

func (r *categoryRepo) SetStatus(ctx context.Context, id int64, status int) error {
	return execAffecting(ctx, r.db, setCategoryStatusSQL, status, id)
}

func (r *categoryRepo) SetTrash(ctx context.Context, id int64, trash int) error {
	return execAffecting(ctx, r.db, setCategoryTrashSQL, trash, id)
}

func (r *categoryRepo) SetIllustration(ctx context.Context, id int64, illustration string) error {
	return execAffecting(ctx, r.db, setIllustrationSQL, illustration, id)
}

func (r *categoryRepo) Delete(ctx context.Context, id int64) error {
	err := execAffecting(ctx, r.db, deleteCategorySQL, id)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("category %d still has products: %w", id, common.ErrConflict)
	}
	return err
}

func scanCategory(row rowScanner) (*models.Category, error) {
	c := &models.Category{}
	if err := row.Scan(&c.ID, &c.CategoryName, &c.Illustration, &c.Status, &c.Trash, &c.CreatedAt); err != nil {
		return nil, err
	}
	return c, nil
}
