package repositories

import (
	"context"
	"errors"
	"fmt"

	"bookstore/internal/common"
	"bookstore/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
)

// UserFilterColumns may appear in equality filters on users.
var UserFilterColumns = common.Columns{
	"email":  common.TextColumn,
	"phone":  common.PhoneColumn,
	"status": common.IntColumn,
	"role":   common.IntColumn,
}

// UserUpdateColumns may be assigned by a partial user update. Password and
// email changes go through dedicated flows.
var UserUpdateColumns = common.Columns{
	"name":    common.TextColumn,
	"phone":   common.PhoneColumn,
	"address": common.TextColumn,
	"status":  common.IntColumn,
	"role":    common.IntColumn,
}

const (
	userColumns = `id, email, password, name, phone, address, avatar, status, role, created_at`

	insertUserSQL = `INSERT INTO users (email, password, name, phone, address, avatar, status, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at`
	selectUserSQL        = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	selectUserByEmailSQL = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	listUsersSQL         = `SELECT ` + userColumns + ` FROM users`
	countUsersSQL        = `SELECT COUNT(*) FROM users`
	setAvatarSQL         = `UPDATE users SET avatar = $1 WHERE id = $2`
	setPasswordSQL       = `UPDATE users SET password = $1 WHERE id = $2`

	deleteCustomerOrderDetailsSQL = `DELETE FROM order_details WHERE order_id IN (SELECT id FROM orders WHERE customer_id = $1)`
	deleteCustomerOrdersSQL       = `DELETE FROM orders WHERE customer_id = $1`
	deleteUserCommentsSQL         = `DELETE FROM comments WHERE user_id = $1`
	deleteUserRatingsSQL          = `DELETE FROM ratings WHERE user_id = $1`
	deleteUserSQL                 = `DELETE FROM users WHERE id = $1`
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, filters []common.FieldValue, limit, offset int) ([]*models.User, int64, error)
	Update(ctx context.Context, id int64, assignments []common.FieldValue) error
	SetAvatar(ctx context.Context, id int64, avatar string) error
	SetPassword(ctx context.Context, id int64, hash string) error
	// DeleteCascade removes the user's order lines, orders, cart rows, comments
	// and ratings and then the user in one transaction.
	DeleteCascade(ctx context.Context, id int64) error
}

type userRepo struct {
	db Database
}

func NewUserRepo(db Database) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	err := r.db.QueryRow(ctx, insertUserSQL,
		u.Email, u.PasswordHash, u.Name, u.Phone, u.Address, u.Avatar, u.Status, u.Role,
	).Scan(&u.ID, &u.CreatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("email %s already registered: %w", u.Email, common.ErrConflict)
	}
	return err
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, selectUserSQL, id)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, selectUserByEmailSQL, email)
}

func (r *userRepo) getOne(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if noRows(err) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepo) List(ctx context.Context, filters []common.FieldValue, limit, offset int) ([]*models.User, int64, error) {
	return listPage(ctx, r.db, listUsersSQL, countUsersSQL, "id DESC", filters, limit, offset, scanUser)
}

func (r *userRepo) Update(ctx context.Context, id int64, assignments []common.FieldValue) error {
	set, args := setClause(assignments, 1)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", set, len(args)+1)
	return execAffecting(ctx, r.db, query, append(args, id)...)
}

func (r *userRepo) SetAvatar(ctx context.Context, id int64, avatar string) error {
	return execAffecting(ctx, r.db, setAvatarSQL, avatar, id)
}

// SetPassword stores an already hashed password.
func (r *userRepo) SetPassword(ctx context.Context, id int64, hash string) error {
	return execAffecting(ctx, r.db, setPasswordSQL, hash, id)
}

func (r *userRepo) DeleteCascade(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return &common.StageError{Stage: common.StageBegin, Err: err}
	}

	if _, err := tx.Exec(ctx, deleteCustomerOrderDetailsSQL, id); err != nil {
		return rollback(ctx, tx, common.StageLineDelete, err)
	}
	if _, err := tx.Exec(ctx, deleteCustomerOrdersSQL, id); err != nil {
		return rollback(ctx, tx, common.StageOrderRemoval, err)
	}
	if _, err := tx.Exec(ctx, clearCartSQL, id); err != nil {
		return rollback(ctx, tx, common.StageCartClear, err)
	}
	for _, query := range []string{deleteUserCommentsSQL, deleteUserRatingsSQL} {
		if _, err := tx.Exec(ctx, query, id); err != nil {
			return rollback(ctx, tx, common.StageFeedbackDelete, err)
		}
	}

	tag, err := tx.Exec(ctx, deleteUserSQL, id)
	if err != nil {
		return rollback(ctx, tx, common.StageUserDelete, err)
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

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Phone, &u.Address,
		&u.Avatar, &u.Status, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// isForeignKeyViolation reports a row still referenced elsewhere (or a
// reference to a missing row).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}
