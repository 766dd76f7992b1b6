package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"bookstore/internal/common"
	"bookstore/internal/models"
	"bookstore/internal/repositories"
)

type CategoryService interface {
	Create(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error)
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	All(ctx context.Context) ([]*models.Category, error)
	List(ctx context.Context, filters []common.FieldValue, paging common.Paging) ([]*models.Category, int64, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) error
	SetStatus(ctx context.Context, id int64, status int) error
	SetTrash(ctx context.Context, id int64, trash int) error
	Delete(ctx context.Context, id int64) error
	UploadIllustration(ctx context.Context, id int64, upload *ImageUpload) (string, error)
}

type categoryService struct {
	categoryRepo repositories.CategoryRepository
	minioService MinioService
	bucket       string
}

func NewCategoryService(categoryRepo repositories.CategoryRepository, minioService MinioService, bucket string) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		minioService: minioService,
		bucket:       bucket,
	}
}

func (s *categoryService) Create(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {
	req.CategoryName = strings.TrimSpace(req.CategoryName)
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}
	category := &models.Category{CategoryName: req.CategoryName, Status: req.Status, Trash: req.Trash}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	log.Printf("Category %d created: %s", category.ID, category.CategoryName)
	return category, nil
}

func (s *categoryService) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

func (s *categoryService) All(ctx context.Context) ([]*models.Category, error) {
	return s.categoryRepo.All(ctx)
}

func (s *categoryService) List(ctx context.Context, filters []common.FieldValue, paging common.Paging) ([]*models.Category, int64, error) {
	paging = paging.Clamp(common.DefaultMaxPageSize)
	return s.categoryRepo.List(ctx, filters, paging.Limit, paging.Offset)
}

func (s *categoryService) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	assignments, err := repositories.CategoryUpdateColumns.Assignments(fields)
	if err != nil {
		return err
	}
	for _, a := range assignments {
		switch a.Column {
		case "category_name":
			if strings.TrimSpace(a.Value.(string)) == "" {
				return common.NewValidationError(a.Column, "is required")
			}
		case "status", "trash":
			if v := a.Value.(int64); v != 0 && v != 1 {
				return common.NewValidationError(a.Column, "must be one of [0 1]")
			}
		}
	}
	return s.categoryRepo.Update(ctx, id, assignments)
}

func (s *categoryService) SetStatus(ctx context.Context, id int64, status int) error {
	if status != 0 && status != 1 {
		return common.NewValidationError("status", "must be one of [0 1]")
	}
	return s.categoryRepo.SetStatus(ctx, id, status)
}

func (s *categoryService) SetTrash(ctx context.Context, id int64, trash int) error {
	if trash != 0 && trash != 1 {
		return common.NewValidationError("trash", "must be one of [0 1]")
	}
	return s.categoryRepo.SetTrash(ctx, id, trash)
}

func (s *categoryService) Delete(ctx context.Context, id int64) error {
	return s.categoryRepo.Delete(ctx, id)
}

// UploadIllustration stores the image and points the category at it.
func (s *categoryService) UploadIllustration(ctx context.Context, id int64, upload *ImageUpload) (string, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	objectName := imageObjectName("categories", category.CategoryName, upload.Filename)
	if err := s.minioService.UploadImage(ctx, s.bucket, objectName, upload.Reader, upload.Size, upload.ContentType); err != nil {
		return "", fmt.Errorf("failed to upload illustration: %w", err)
	}

	path := objectPath(s.bucket, objectName)
	if err := s.categoryRepo.SetIllustration(ctx, id, path); err != nil {
		if delErr := s.minioService.DeleteImage(ctx, s.bucket, objectName); delErr != nil {
			log.Printf("WARN: orphaned object %s: %v", objectName, delErr)
		}
		return "", err
	}
	return path, nil
}
