package services

import (
	"context"
	"log"
	"strconv"
	"time"

	"bookstore/internal/common"
	"bookstore/internal/events"
	"bookstore/internal/models"
	"bookstore/internal/repositories"
)

// OrderServiceInterface defines the interface for order service operations
type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error)
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	// ListOrders returns one page of orders matching every filter, plus the total match count.
	ListOrders(ctx context.Context, filters []common.FieldValue, paging common.Paging) ([]*models.Order, int64, error)
	UpdateOrder(ctx context.Context, id int64, fields map[string]interface{}) error
	CancelOrder(ctx context.Context, id int64) error
	UpdatePayment(ctx context.Context, id int64, payment int) error
	DeleteOrder(ctx context.Context, id int64) error
}

// StatisticsInvalidator is told when order data that feeds statistics changed.
type StatisticsInvalidator interface {
	Invalidate(ctx context.Context)
}

// sideEffectTimeout bounds the post-commit publish and invalidation so an
// unreachable broker or Redis cannot hold the response.
const sideEffectTimeout = time.Second

type orderService struct {
	orderRepo     repositories.OrderRepository
	publisher     events.Publisher
	stats         StatisticsInvalidator
	txTimeout     time.Duration
	maxPageSize   int
	effectTimeout time.Duration
}

// NewOrderService creates a new order service instance
func NewOrderService(orderRepo repositories.OrderRepository, publisher events.Publisher, stats StatisticsInvalidator,
	txTimeout time.Duration, maxPageSize int) OrderServiceInterface {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &orderService{
		orderRepo:     orderRepo,
		publisher:     publisher,
		stats:         stats,
		txTimeout:     txTimeout,
		maxPageSize:   maxPageSize,
		effectTimeout: sideEffectTimeout,
	}
}

// CreateOrder validates the request, runs the checkout transaction and
// returns the order as stored.
func (s *orderService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}
	order, details := req.ToOrder()

	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	id, err := s.orderRepo.CreateWithDetails(txCtx, order, details)
	cancel()
	if err != nil {
		log.Printf("ERROR: create order for customer %d: %v", order.CustomerID, err)
		return nil, err
	}

	stored, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		// the order is committed; answer with what was submitted
		log.Printf("WARN: re-read of committed order %d failed: %v", id, err)
		order.ID = id
		order.OrderDate = time.Now()
		order.OrderDetails = details
		for _, d := range details {
			d.OrderID = id
		}
		stored = order
	}

	s.afterCommit(ctx, models.OrderCreatedEvent, &models.OrderEvent{
		OrderID:    id,
		CustomerID: stored.CustomerID,
		Total:      stored.Total,
		Delivered:  stored.Delivered,
		Lines:      stored.OrderDetails,
	})
	return stored, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

func (s *orderService) ListOrders(ctx context.Context, filters []common.FieldValue, paging common.Paging) ([]*models.Order, int64, error) {
	if paging.Offset < 0 {
		return nil, 0, common.NewValidationError("skip", "must be a non-negative integer")
	}
	if paging.Limit <= 0 || paging.Limit > s.maxPageSize {
		paging.Limit = s.maxPageSize
	}
	return s.orderRepo.List(ctx, filters, paging.Limit, paging.Offset)
}

// UpdateOrder applies a partial update restricted to the order update allow-list.
func (s *orderService) UpdateOrder(ctx context.Context, id int64, fields map[string]interface{}) error {
	assignments, err := repositories.OrderUpdateColumns.Assignments(fields)
	if err != nil {
		return err
	}
	cancelled := false
	for _, a := range assignments {
		if a.Column == "delivered" {
			v := a.Value.(int64)
			if v < models.DeliveryPlaced || v > models.DeliveryCancelled {
				return common.NewValidationError(a.Column, "must be between 0 and 4")
			}
			cancelled = v == models.DeliveryCancelled
		}
	}
	if err := s.orderRepo.Update(ctx, id, assignments); err != nil {
		return err
	}

	if cancelled {
		s.afterCommit(ctx, models.OrderCancelledEvent, &models.OrderEvent{OrderID: id, Delivered: models.DeliveryCancelled})
		return nil
	}
	effectCtx, cancel := detach(ctx, s.effectTimeout)
	defer cancel()
	s.stats.Invalidate(effectCtx)
	return nil
}

// CancelOrder marks the order cancelled. Stock and carts are left untouched.
func (s *orderService) CancelOrder(ctx context.Context, id int64) error {
	if err := s.orderRepo.SetDelivered(ctx, id, models.DeliveryCancelled); err != nil {
		return err
	}
	s.afterCommit(ctx, models.OrderCancelledEvent, &models.OrderEvent{OrderID: id, Delivered: models.DeliveryCancelled})
	return nil
}

func (s *orderService) UpdatePayment(ctx context.Context, id int64, payment int) error {
	return s.orderRepo.SetPayment(ctx, id, payment)
}

func (s *orderService) DeleteOrder(ctx context.Context, id int64) error {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	if err := s.orderRepo.DeleteWithDetails(txCtx, id); err != nil {
		return err
	}
	s.afterCommit(ctx, models.OrderDeletedEvent, &models.OrderEvent{OrderID: id})
	return nil
}

// afterCommit publishes the event and marks statistics stale. Failures here
// never undo the committed change, and both steps share one short deadline
// detached from the request.
func (s *orderService) afterCommit(ctx context.Context, eventType string, payload *models.OrderEvent) {
	ctx, cancel := detach(ctx, s.effectTimeout)
	defer cancel()

	if err := s.publisher.Publish(ctx, eventType, strconv.FormatInt(payload.OrderID, 10), payload); err != nil {
		log.Printf("WARN: publish %s for order %d: %v", eventType, payload.OrderID, err)
	}
	s.stats.Invalidate(ctx)
}

// detach keeps ctx values but drops its cancellation, then applies timeout.
func detach(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), timeout)
}
