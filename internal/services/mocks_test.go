package services

import (
	"context"
	"io"
	"time"

	"bookstore/internal/common"
	"bookstore/internal/models"

	"github.com/stretchr/testify/mock"
)

// Mock repositories and services

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateWithDetails(ctx context.Context, order *models.Order, details []*models.OrderDetail) (int64, error) {
	args := m.Called(ctx, order, details)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, filters []common.FieldValue, limit, offset int) ([]*models.Order, int64, error) {
	args := m.Called(ctx, filters, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) Update(ctx context.Context, id int64, assignments []common.FieldValue) error {
	args := m.Called(ctx, id, assignments)
	return args.Error(0)
}

func (m *MockOrderRepository) SetDelivered(ctx context.Context, id int64, delivered int) error {
	args := m.Called(ctx, id, delivered)
	return args.Error(0)
}

func (m *MockOrderRepository) SetPayment(ctx context.Context, id int64, payment int) error {
	args := m.Called(ctx, id, payment)
	return args.Error(0)
}

func (m *MockOrderRepository) DeleteWithDetails(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, filters []common.FieldValue, limit, offset int) ([]*models.Product, int64, error) {
	args := m.Called(ctx, filters, limit, offset)
	return args.Get(0).([]*models.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) ListVisible(ctx context.Context, filters []common.FieldValue, limit, offset int) ([]*models.Product, int64, error) {
	args := m.Called(ctx, filters, limit, offset)
	return args.Get(0).([]*models.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) Update(ctx context.Context, id int64, assignments []common.FieldValue) error {
	args := m.Called(ctx, id, assignments)
	return args.Error(0)
}

func (m *MockProductRepository) ToggleStatus(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductRepository) ToggleTrash(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductRepository) SetImage(ctx context.Context, id int64, image string) error {
	return m.Called(ctx, id, image).Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductRepository) Search(ctx context.Context, query string, limit, offset int) ([]*models.Product, int64, error) {
	args := m.Called(ctx, query, limit, offset)
	return args.Get(0).([]*models.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) LowStock(ctx context.Context, threshold, limit int) ([]*models.Product, error) {
	args := m.Called(ctx, threshold, limit)
	return args.Get(0).([]*models.Product), args.Error(1)
}

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) ListByUser(ctx context.Context, userID int64) ([]*models.CartItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CartItem), args.Error(1)
}

func (m *MockCartRepository) Add(ctx context.Context, userID, productID int64, quantity int) error {
	return m.Called(ctx, userID, productID, quantity).Error(0)
}

func (m *MockCartRepository) SetQuantity(ctx context.Context, userID, productID int64, quantity int) error {
	return m.Called(ctx, userID, productID, quantity).Error(0)
}

func (m *MockCartRepository) Remove(ctx context.Context, userID, productID int64) error {
	return m.Called(ctx, userID, productID).Error(0)
}

func (m *MockCartRepository) Clear(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, filters []common.FieldValue, limit, offset int) ([]*models.User, int64, error) {
	args := m.Called(ctx, filters, limit, offset)
	return args.Get(0).([]*models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) Update(ctx context.Context, id int64, assignments []common.FieldValue) error {
	return m.Called(ctx, id, assignments).Error(0)
}

func (m *MockUserRepository) SetAvatar(ctx context.Context, id int64, avatar string) error {
	return m.Called(ctx, id, avatar).Error(0)
}

func (m *MockUserRepository) SetPassword(ctx context.Context, id int64, hash string) error {
	return m.Called(ctx, id, hash).Error(0)
}

func (m *MockUserRepository) DeleteCascade(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockStatisticsRepository struct {
	mock.Mock
}

func (m *MockStatisticsRepository) ProductsSold(ctx context.Context) (*models.ProductsSold, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductsSold), args.Error(1)
}

func (m *MockStatisticsRepository) OrderCountByStatus(ctx context.Context) ([]*models.StatusCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.StatusCount), args.Error(1)
}

func (m *MockStatisticsRepository) BestSelling(ctx context.Context, limit int) ([]*models.BestSeller, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]*models.BestSeller), args.Error(1)
}

func (m *MockStatisticsRepository) TopKeywords(ctx context.Context, limit int) ([]*models.KeywordCount, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]*models.KeywordCount), args.Error(1)
}

func (m *MockStatisticsRepository) MonthlyRevenue(ctx context.Context) ([]*models.MonthlyRevenue, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.MonthlyRevenue), args.Error(1)
}

func (m *MockStatisticsRepository) DailyRevenue(ctx context.Context) (*models.DailyRevenue, error) {
	args := m.Called(ctx)
	return args.Get(0).(*models.DailyRevenue), args.Error(1)
}

type MockSearchKeywordRepository struct {
	mock.Mock
}

func (m *MockSearchKeywordRepository) Record(ctx context.Context, keyword string) error {
	return m.Called(ctx, keyword).Error(0)
}

func (m *MockSearchKeywordRepository) List(ctx context.Context, limit, offset int) ([]*models.SearchKeyword, int64, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.SearchKeyword), args.Get(1).(int64), args.Error(2)
}

func (m *MockSearchKeywordRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockMinioService struct {
	mock.Mock
}

func (m *MockMinioService) UploadImage(ctx context.Context, bucket, key string, reader io.Reader, size int64, contentType string) error {
	return m.Called(ctx, bucket, key, reader, size, contentType).Error(0)
}

func (m *MockMinioService) DeleteImage(ctx context.Context, bucket, key string) error {
	return m.Called(ctx, bucket, key).Error(0)
}

func (m *MockMinioService) BucketExists(ctx context.Context, bucket string) (bool, error) {
	args := m.Called(ctx, bucket)
	return args.Bool(0), args.Error(1)
}

func (m *MockMinioService) EnsureBucketExists(ctx context.Context, bucket string) error {
	return m.Called(ctx, bucket).Error(0)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	args := m.Called(ctx, key, dest)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheService) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockCacheService) Delete(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

func (m *MockCacheService) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	return m.Called(ctx, tokenID, ttl).Error(0)
}

func (m *MockCacheService) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockCacheService) Close() error {
	return m.Called().Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, eventType, key string, payload interface{}) error {
	return m.Called(ctx, eventType, key, payload).Error(0)
}

func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}

type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) Invalidate(ctx context.Context) {
	m.Called(ctx)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) All(ctx context.Context) ([]*models.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context, filters []common.FieldValue, limit, offset int) ([]*models.Category, int64, error) {
	args := m.Called(ctx, filters, limit, offset)
	return args.Get(0).([]*models.Category), args.Get(1).(int64), args.Error(2)
}

func (m *MockCategoryRepository) Update(ctx context.Context, id int64, assignments []common.FieldValue) error {
	return m.Called(ctx, id, assignments).Error(0)
}

func (m *MockCategoryRepository) SetStatus(ctx context.Context, id int64, status int) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockCategoryRepository) SetTrash(ctx context.Context, id int64, trash int) error {
	return m.Called(ctx, id, trash).Error(0)
}

func (m *MockCategoryRepository) SetIllustration(ctx context.Context, id int64, illustration string) error {
	return m.Called(ctx, id, illustration).Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) All(ctx context.Context) ([]*models.Comment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) List(ctx context.Context, filters []common.FieldValue, limit, offset int) ([]*models.Comment, int64, error) {
	args := m.Called(ctx, filters, limit, offset)
	return args.Get(0).([]*models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) UpdateContent(ctx context.Context, id int64, content string) error {
	return m.Called(ctx, id, content).Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) Create(ctx context.Context, rating *models.Rating) error {
	return m.Called(ctx, rating).Error(0)
}

func (m *MockRatingRepository) GetByID(ctx context.Context, id int64) (*models.Rating, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rating), args.Error(1)
}

func (m *MockRatingRepository) ListByProduct(ctx context.Context, productID int64, limit, offset int) ([]*models.Rating, int64, error) {
	args := m.Called(ctx, productID, limit, offset)
	return args.Get(0).([]*models.Rating), args.Get(1).(int64), args.Error(2)
}

func (m *MockRatingRepository) Summary(ctx context.Context, productID int64) (*models.RatingSummary, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RatingSummary), args.Error(1)
}

func (m *MockRatingRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRatingRepository) HasPurchased(ctx context.Context, userID, productID int64) (bool, error) {
	args := m.Called(ctx, userID, productID)
	return args.Bool(0), args.Error(1)
}
