package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"bookstore/internal/common"
	"bookstore/internal/models"
	"bookstore/internal/repositories"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// ImageUpload is an uploaded file handed over by the HTTP layer.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type ProductService interface {
	Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	List(ctx context.Context, filters []common.FieldValue, paging common.Paging) ([]*models.Product, int64, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) error
	ToggleStatus(ctx context.Context, id int64) error
	ToggleTrash(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	// Search matches visible products and records the keyword.
	Search(ctx context.Context, query string, paging common.Paging) ([]*models.Product, int64, error)
	UploadImage(ctx context.Context, id int64, upload *ImageUpload) (string, error)
	// NewProducts, SaleProducts and ByCategory list visible products, newest first.
	NewProducts(ctx context.Context, paging common.Paging) ([]*models.Product, int64, error)
	SaleProducts(ctx context.Context, paging common.Paging) ([]*models.Product, int64, error)
	ByCategory(ctx context.Context, categoryID int64, paging common.Paging) ([]*models.Product, int64, error)
}

type productService struct {
	productRepo  repositories.ProductRepository
	keywordRepo  repositories.SearchKeywordRepository
	minioService MinioService
	bucket       string
}

func NewProductService(productRepo repositories.ProductRepository, keywordRepo repositories.SearchKeywordRepository,
	minioService MinioService, bucket string) ProductService {
	return &productService{
		productRepo:  productRepo,
		keywordRepo:  keywordRepo,
		minioService: minioService,
		bucket:       bucket,
	}
}

func (s *productService) Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}
	product := req.ToProduct()
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	log.Printf("Product %d created: %s", product.ID, product.ProductName)
	return product, nil
}

func (s *productService) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

func (s *productService) List(ctx context.Context, filters []common.FieldValue, paging common.Paging) ([]*models.Product, int64, error) {
	paging = paging.Clamp(common.DefaultMaxPageSize)
	return s.productRepo.List(ctx, filters, paging.Limit, paging.Offset)
}

func (s *productService) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	assignments, err := repositories.ProductUpdateColumns.Assignments(fields)
	if err != nil {
		return err
	}
	for _, a := range assignments {
		if err := checkProductField(a); err != nil {
			return err
		}
	}
	return s.productRepo.Update(ctx, id, assignments)
}

func checkProductField(a common.FieldValue) error {
	switch a.Column {
	case "quantity":
		if a.Value.(int64) < 0 {
			return common.NewValidationError(a.Column, "must be greater than or equal to 0")
		}
	case "price":
		if a.Value.(int64) <= 0 {
			return common.NewValidationError(a.Column, "must be greater than 0")
		}
	case "saleprice":
		if v := a.Value.(int64); v < 0 || v > 100 {
			return common.NewValidationError(a.Column, "must be between 0 and 100")
		}
	case "status", "trash", "sale":
		if v := a.Value.(int64); v != 0 && v != 1 {
			return common.NewValidationError(a.Column, "must be one of [0 1]")
		}
	case "product_name", "publisher", "author":
		if strings.TrimSpace(a.Value.(string)) == "" {
			return common.NewValidationError(a.Column, "is required")
		}
	}
	return nil
}

func (s *productService) ToggleStatus(ctx context.Context, id int64) error {
	return s.productRepo.ToggleStatus(ctx, id)
}

func (s *productService) ToggleTrash(ctx context.Context, id int64) error {
	return s.productRepo.ToggleTrash(ctx, id)
}

func (s *productService) Delete(ctx context.Context, id int64) error {
	return s.productRepo.Delete(ctx, id)
}

func (s *productService) Search(ctx context.Context, query string, paging common.Paging) ([]*models.Product, int64, error) {
	query = common.SanitizeSearchQuery(query)
	if query == "" {
		return nil, 0, common.NewValidationError("q", "is required")
	}
	if err := s.keywordRepo.Record(ctx, strings.ToLower(query)); err != nil {
		log.Printf("WARN: record search keyword %q: %v", query, err)
	}
	paging = paging.Clamp(common.DefaultMaxPageSize)
	return s.productRepo.Search(ctx, query, paging.Limit, paging.Offset)
}

func (s *productService) NewProducts(ctx context.Context, paging common.Paging) ([]*models.Product, int64, error) {
	return s.browse(ctx, nil, paging)
}

func (s *productService) SaleProducts(ctx context.Context, paging common.Paging) ([]*models.Product, int64, error) {
	return s.browse(ctx, []common.FieldValue{{Column: "sale", Value: int64(1)}}, paging)
}

func (s *productService) ByCategory(ctx context.Context, categoryID int64, paging common.Paging) ([]*models.Product, int64, error) {
	return s.browse(ctx, []common.FieldValue{{Column: "category_id", Value: categoryID}}, paging)
}

func (s *productService) browse(ctx context.Context, filters []common.FieldValue, paging common.Paging) ([]*models.Product, int64, error) {
	paging = paging.Clamp(common.DefaultMaxPageSize)
	return s.productRepo.ListVisible(ctx, filters, paging.Limit, paging.Offset)
}

// UploadImage stores the file in object storage and then points the product at it.
func (s *productService) UploadImage(ctx context.Context, id int64, upload *ImageUpload) (string, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	objectName := imageObjectName("products", product.ProductName, upload.Filename)
	if err := s.minioService.UploadImage(ctx, s.bucket, objectName, upload.Reader, upload.Size, upload.ContentType); err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	path := objectPath(s.bucket, objectName)
	if err := s.productRepo.SetImage(ctx, id, path); err != nil {
		if delErr := s.minioService.DeleteImage(ctx, s.bucket, objectName); delErr != nil {
			log.Printf("WARN: orphaned object %s: %v", objectName, delErr)
		}
		return "", err
	}
	return path, nil
}

// imageObjectName builds "<prefix>/<slug>-<uuid><ext>".
func imageObjectName(prefix, title, filename string) string {
	name := slug.Make(title)
	if name == "" {
		name = "image"
	}
	return fmt.Sprintf("%s/%s-%s%s", prefix, name, uuid.NewString(), strings.ToLower(filepath.Ext(filename)))
}

func objectPath(bucket, objectName string) string {
	return "/" + bucket + "/" + objectName
}
