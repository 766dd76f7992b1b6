package repositories

import (
	"context"
	"fmt"

	"bookstore/internal/common"
	"bookstore/internal/models"
)

// CommentFilterColumns may appear in equality filters on comments.
var CommentFilterColumns = common.Columns{
	"book_id": common.IntColumn,
	"user_id": common.IntColumn,
}

const (
	commentColumns = `c.id, c.book_id, c.user_id, c.content, c.created_at, u.name, u.avatar`
	commentFrom    = ` FROM comments c JOIN users u ON u.id = c.user_id`

	insertCommentSQL = `INSERT INTO comments (book_id, user_id, content, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at`
	selectCommentSQL    = `SELECT ` + commentColumns + commentFrom + ` WHERE c.id = $1`
	allCommentsSQL      = `SELECT ` + commentColumns + commentFrom + ` ORDER BY c.id DESC`
	listCommentsSQL     = `SELECT ` + commentColumns + commentFrom
	countCommentsSQL    = `SELECT COUNT(*) FROM comments c`
	updateCommentSQL    = `UPDATE comments SET content = $1 WHERE id = $2`
	deleteCommentSQL    = `DELETE FROM comments WHERE id = $1`
	commentsNewestFirst = "c.created_at DESC, c.id DESC"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	All(ctx context.Context) ([]*models.Comment, error)
	// List pages through comments matching filters, newest first.
	List(ctx context.Context, filters []common.FieldValue, limit, offset int) ([]*models.Comment, int64, error)
	UpdateContent(ctx context.Context, id int64, content string) error
	Delete(ctx context.Context, id int64) error
}

type commentRepo struct {
	db Database
}

func NewCommentRepo(db Database) CommentRepository {
	return &commentRepo{db: db}
}

func (r *commentRepo) Create(ctx context.Context, c *models.Comment) error {
	err := r.db.QueryRow(ctx, insertCommentSQL, c.BookID, c.UserID, c.Content).Scan(&c.ID, &c.CreatedAt)
	if isForeignKeyViolation(err) {
		return common.NewValidationError("book_id", fmt.Sprintf("book %d or user %d does not exist", c.BookID, c.UserID))
	}
	return err
}

func (r *commentRepo) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	comment, err := scanComment(r.db.QueryRow(ctx, selectCommentSQL, id))
	if err != nil {
		if noRows(err) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return comment, nil
}

func (r *commentRepo) All(ctx context.Context) ([]*models.Comment, error) {
	return collect(ctx, r.db, allCommentsSQL, nil, scanComment)
}

func (r *commentRepo) List(ctx context.Context, filters []common.FieldValue, limit, offset int) ([]*models.Comment, int64, error) {
	return listPage(ctx, r.db, listCommentsSQL, countCommentsSQL, commentsNewestFirst, filters, limit, offset, scanComment)
}

func (r *commentRepo) UpdateContent(ctx context.Context, id int64, content string) error {
	return execAffecting(ctx, r.db, updateCommentSQL, content, id)
}

func (r *commentRepo) Delete(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.db, deleteCommentSQL, id)
}

func scanComment(row rowScanner) (*models.Comment, error) {
	c := &models.Comment{}
	if err := row.Scan(&c.ID, &c.BookID, &c.UserID, &c.Content, &c.CreatedAt, &c.UserName, &c.UserAvatar); err != nil {
		return nil, err
	}
	return c, nil
}
