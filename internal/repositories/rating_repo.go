package repositories

import (
	"context"
	"fmt"

	"bookstore/internal/common"
	"bookstore/internal/models"
)

const (
	ratingColumns = `r.id, r.product_id, r.user_id, r.star, r.content, r.created_at, u.name, u.avatar`
	ratingFrom    = ` FROM ratings r JOIN users u ON u.id = r.user_id`

	insertRatingSQL = `INSERT INTO ratings (product_id, user_id, star, content, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at`
	selectRatingSQL  = `SELECT ` + ratingColumns + ratingFrom + ` WHERE r.id = $1`
	listRatingsSQL   = `SELECT ` + ratingColumns + ratingFrom
	countRatingsSQL  = `SELECT COUNT(*) FROM ratings r`
	deleteRatingSQL  = `DELETE FROM ratings WHERE id = $1`
	ratingSummarySQL = `SELECT COUNT(*), COALESCE(AVG(star), 0)::float8 FROM ratings WHERE product_id = $1`
	hasPurchasedSQL  = `SELECT EXISTS (
		SELECT 1 FROM order_details d JOIN orders o ON o.id = d.order_id
		WHERE o.customer_id = $1 AND d.product_id = $2 AND o.delivered <> $3)`
)

type RatingRepository interface {
	// Create answers ErrConflict when the user already rated the product.
	Create(ctx context.Context, rating *models.Rating) error
	GetByID(ctx context.Context, id int64) (*models.Rating, error)
	ListByProduct(ctx context.Context, productID int64, limit, offset int) ([]*models.Rating, int64, error)
	Summary(ctx context.Context, productID int64) (*models.RatingSummary, error)
	Delete(ctx context.Context, id int64) error
	// HasPurchased reports whether the user has a non-cancelled order containing the product.
	HasPurchased(ctx context.Context, userID, productID int64) (bool, error)
}

type ratingRepo struct {
	db Database
}

func NewRatingRepo(db Database) RatingRepository {
	return &ratingRepo{db: db}
}

func (r *ratingRepo) Create(ctx context.Context, rt *models.Rating) error {
	err := r.db.QueryRow(ctx, insertRatingSQL, rt.ProductID, rt.UserID, rt.Star, rt.Content).Scan(&rt.ID, &rt.CreatedAt)
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("user %d already rated product %d: %w", rt.UserID, rt.ProductID, common.ErrConflict)
	case isForeignKeyViolation(err):
		return common.NewValidationError("product_id", "product does not exist")
	}
	return err
}

func (r *ratingRepo) GetByID(ctx context.Context, id int64) (*models.Rating, error) {
	rating, err := scanRating(r.db.QueryRow(ctx, selectRatingSQL, id))
	if err != nil {
		if noRows(err) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return rating, nil
}

func (r *ratingRepo) ListByProduct(ctx context.Context, productID int64, limit, offset int) ([]*models.Rating, int64, error) {
	filters := []common.FieldValue{{Column: "product_id", Value: productID}}
	return listPage(ctx, r.db, listRatingsSQL, countRatingsSQL, "r.created_at DESC, r.id DESC", filters, limit, offset, scanRating)
}

func (r *ratingRepo) Summary(ctx context.Context, productID int64) (*models.RatingSummary, error) {
	summary := &models.RatingSummary{ProductID: productID}
	if err := r.db.QueryRow(ctx, ratingSummarySQL, productID).Scan(&summary.Count, &summary.Average); err != nil {
		return nil, err
	}
	return summary, nil
}

func (r *ratingRepo) Delete(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.db, deleteRatingSQL, id)
}

func (r *ratingRepo) HasPurchased(ctx context.Context, userID, productID int64) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, hasPurchasedSQL, userID, productID, models.DeliveryCancelled).Scan(&ok)
	return ok, err
}

func scanRating(row rowScanner) (*models.Rating, error) {
	rt := &models.Rating{}
	err := row.Scan(&rt.ID, &rt.ProductID, &rt.UserID, &rt.Star, &rt.Content, &rt.CreatedAt, &rt.UserName, &rt.UserAvatar)
	if err != nil {
		return nil, err
	}
	return rt, nil
}
