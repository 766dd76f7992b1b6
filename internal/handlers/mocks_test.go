package handlers

import (
	"context"
	"net/http/httptest"
	"strings"

	"bookstore/internal/common"
	"bookstore/internal/jobs/background"
	"bookstore/internal/models"
	"bookstore/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderService) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderService) ListOrders(ctx context.Context, filters []common.FieldValue, paging common.Paging) ([]*models.Order, int64, error) {
	args := m.Called(ctx, filters, paging)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderService) UpdateOrder(ctx context.Context, id int64, fields map[string]interface{}) error {
	return m.Called(ctx, id, fields).Error(0)
}

func (m *MockOrderService) CancelOrder(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOrderService) UpdatePayment(ctx context.Context, id int64, payment int) error {
	return m.Called(ctx, id, payment).Error(0)
}

func (m *MockOrderService) DeleteOrder(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockReceiptService struct {
	mock.Mock
}

func (m *MockReceiptService) Receipt(ctx context.Context, orderID int64) ([]byte, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockReceiptService) Render(order *models.Order) ([]byte, error) {
	args := m.Called(order)
	return args.Get(0).([]byte), args.Error(1)
}

type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) GetCart(ctx context.Context, userID int64) (*models.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, req *models.CartItemRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockCartService) UpdateItem(ctx context.Context, req *models.CartItemRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockCartService) RemoveItem(ctx context.Context, req *models.CartRemoveRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockCartService) Clear(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

type MockStatisticsService struct {
	mock.Mock
	services.StatisticsServiceInterface
}

func (m *MockStatisticsService) BestSelling(ctx context.Context, limit int) ([]*models.BestSeller, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BestSeller), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TokenResponse), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, claims *models.TokenClaims) error {
	return m.Called(ctx, claims).Error(0)
}

func (m *MockAuthService) Me(ctx context.Context, userID int64) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) ValidateToken(ctx context.Context, token string) (*models.TokenClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TokenClaims), args.Error(1)
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, req *models.ForgotPasswordRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error {
	return m.Called(ctx, req).Error(0)
}

type MockCategoryService struct {
	mock.Mock
	services.CategoryService
}

func (m *MockCategoryService) List(ctx context.Context, filters []common.FieldValue, paging common.Paging) ([]*models.Category, int64, error) {
	args := m.Called(ctx, filters, paging)
	return args.Get(0).([]*models.Category), args.Get(1).(int64), args.Error(2)
}

func (m *MockCategoryService) SetStatus(ctx context.Context, id int64, status int) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockCategoryService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockCommentService struct {
	mock.Mock
	services.CommentService
}

func (m *MockCommentService) List(ctx context.Context, filters []common.FieldValue, paging common.Paging) ([]*models.Comment, int64, error) {
	args := m.Called(ctx, filters, paging)
	return args.Get(0).([]*models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockRatingService struct {
	mock.Mock
	services.RatingService
}

func (m *MockRatingService) Create(ctx context.Context, req *models.CreateRatingRequest) (*models.Rating, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rating), args.Error(1)
}

func (m *MockRatingService) ListByProduct(ctx context.Context, productID int64, paging common.Paging) ([]*models.Rating, int64, error) {
	args := m.Called(ctx, productID, paging)
	return args.Get(0).([]*models.Rating), args.Get(1).(int64), args.Error(2)
}

type MockProductService struct {
	mock.Mock
	services.ProductService
}

func (m *MockProductService) ByCategory(ctx context.Context, categoryID int64, paging common.Paging) ([]*models.Product, int64, error) {
	args := m.Called(ctx, categoryID, paging)
	return args.Get(0).([]*models.Product), args.Get(1).(int64), args.Error(2)
}

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called().Error(0)
}

type staticJobs []background.JobStatus

func (s staticJobs) GetJobStatus() []background.JobStatus { return s }

// newContext builds an echo context for method/target carrying body, acting
// as userID with role. userID 0 leaves the request anonymous.
func newContext(method, target, body string, userID int64, role int) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if userID != 0 {
		req = req.WithContext(common.WithUser(req.Context(), userID, role))
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withID(c echo.Context, name, value string) echo.Context {
	c.SetParamNames(name)
	c.SetParamValues(value)
	return c
}
