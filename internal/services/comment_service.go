package services

import (
	"context"
	"log"
	"strings"

	"bookstore/internal/common"
	"bookstore/internal/models"
	"bookstore/internal/repositories"
)

type CommentService interface {
	GetAll(ctx context.Context) ([]*models.Comment, error)
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	List(ctx context.Context, filters []common.FieldValue, paging common.Paging) ([]*models.Comment, int64, error)
	Create(ctx context.Context, req *models.CreateCommentRequest) (*models.Comment, error)
	// Update and Delete are limited to the comment's author or an admin.
	Update(ctx context.Context, id int64, req *models.UpdateCommentRequest) error
	Delete(ctx context.Context, id int64) error
}

type commentService struct {
	commentRepo repositories.CommentRepository
}

func NewCommentService(commentRepo repositories.CommentRepository) CommentService {
	return &commentService{commentRepo: commentRepo}
}

func (s *commentService) GetAll(ctx context.Context) ([]*models.Comment, error) {
	return s.commentRepo.All(ctx)
}

func (s *commentService) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	return s.commentRepo.GetByID(ctx, id)
}

func (s *commentService) List(ctx context.Context, filters []common.FieldValue, paging common.Paging) ([]*models.Comment, int64, error) {
	paging = paging.Clamp(common.DefaultMaxPageSize)
	return s.commentRepo.List(ctx, filters, paging.Limit, paging.Offset)
}

func (s *commentService) Create(ctx context.Context, req *models.CreateCommentRequest) (*models.Comment, error) {
	req.Content = strings.TrimSpace(req.Content)
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}
	if !common.CanActFor(ctx, *req.UserID) {
		return nil, common.ErrForbidden
	}

	comment := &models.Comment{BookID: *req.BookID, UserID: *req.UserID, Content: req.Content}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	log.Printf("Comment %d added to book %d by user %d", comment.ID, comment.BookID, comment.UserID)
	return comment, nil
}

func (s *commentService) Update(ctx context.Context, id int64, req *models.UpdateCommentRequest) error {
	req.Content = strings.TrimSpace(req.Content)
	if err := common.ValidateStruct(req); err != nil {
		return err
	}
	if _, err := s.owned(ctx, id); err != nil {
		return err
	}
	return s.commentRepo.UpdateContent(ctx, id, req.Content)
}

func (s *commentService) Delete(ctx context.Context, id int64) error {
	if _, err := s.owned(ctx, id); err != nil {
		return err
	}
	return s.commentRepo.Delete(ctx, id)
}

func (s *commentService) owned(ctx context.Context, id int64) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !common.CanActFor(ctx, comment.UserID) {
		return nil, common.ErrForbidden
	}
	return comment, nil
}
