package repositories

import (
	"context"

	"bookstore/internal/models"
)

const (
	recordKeywordSQL = `INSERT INTO search_keywords (keyword, time_search, created_at) VALUES ($1, 1, NOW())
		ON CONFLICT (keyword) DO UPDATE SET time_search = search_keywords.time_search + 1`
	listKeywordsSQL  = `SELECT id, keyword, time_search, created_at FROM search_keywords`
	countKeywordsSQL = `SELECT COUNT(*) FROM search_keywords`
	deleteKeywordSQL = `DELETE FROM search_keywords WHERE id = $1`
)

type SearchKeywordRepository interface {
	// Record counts one more search for keyword, creating it on first use.
	Record(ctx context.Context, keyword string) error
	List(ctx context.Context, limit, offset int) ([]*models.SearchKeyword, int64, error)
	Delete(ctx context.Context, id int64) error
}

type searchKeywordRepo struct {
	db Database
}

func NewSearchKeywordRepo(db Database) SearchKeywordRepository {
	return &searchKeywordRepo{db: db}
}

func (r *searchKeywordRepo) Record(ctx context.Context, keyword string) error {
	_, err := r.db.Exec(ctx, recordKeywordSQL, keyword)
	return err
}

func (r *searchKeywordRepo) List(ctx context.Context, limit, offset int) ([]*models.SearchKeyword, int64, error) {
	return listPage(ctx, r.db, listKeywordsSQL, countKeywordsSQL, "time_search DESC, id", nil, limit, offset,
		func(row rowScanner) (*models.SearchKeyword, error) {
			k := &models.SearchKeyword{}
			return k, row.Scan(&k.ID, &k.Keyword, &k.TimeSearch, &k.CreatedAt)
		})
}

func (r *searchKeywordRepo) Delete(ctx context.Context, id int64) error {
	return execAffecting(ctx, r.db, deleteKeywordSQL, id)
}
