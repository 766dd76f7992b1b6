package models

import "time"

// Delivery states stored in orders.delivered.
const (
	DeliveryPlaced    = 0
	DeliveryConfirmed = 1
	DeliveryShipping  = 2
	DeliveryCompleted = 3
	DeliveryCancelled = 4
)

type Order struct {
	ID           int64          `json:"id" db:"id"`
	CustomerID   int64          `json:"customer_id" db:"customer_id"`
	Name         string         `json:"name" db:"name"`
	Phone        string         `json:"phone" db:"phone"`
	Address      string         `json:"address" db:"address"`
	Total        int64          `json:"total" db:"total"`     // persisted as submitted, never recomputed
	Method       int            `json:"method" db:"method"`   // payment method code
	Payment      int            `json:"payment" db:"payment"` // payment status code
	Note         string         `json:"note" db:"note"`
	Delivered    int            `json:"delivered" db:"delivered"`
	OrderDate    time.Time      `json:"order_date" db:"order_date"`
	OrderDetails []*OrderDetail `json:"orderDetails,omitempty" db:"-"`
}

// OrderDetail is one line of an order; price is copied at purchase time.
type OrderDetail struct {
	OrderID     int64  `json:"order_id" db:"order_id"`
	ProductID   int64  `json:"product_id" db:"product_id"`
	Quantity    int    `json:"quantity" db:"quantity"`
	Price       int64  `json:"price" db:"price"`
	ProductName string `json:"product_name,omitempty" db:"product_name"`
	Image       string `json:"image,omitempty" db:"image"`
}

// CreateOrderRequest is the checkout payload. Pointers distinguish an absent
// field from a zero value so "required" means present.
type CreateOrderRequest struct {
	CustomerID   *int64                `json:"customer_id" validate:"required"`
	Name         *string               `json:"name" validate:"required,min=1"`
	Phone        *string               `json:"phone" validate:"required,phone10"`
	Address      *string               `json:"address" validate:"required"`
	Total        *int64                `json:"total" validate:"required"`
	Method       *int                  `json:"method" validate:"required"`
	Payment      *int                  `json:"payment" validate:"required"`
	Note         *string               `json:"note"`
	Delivered    *int                  `json:"delivered" validate:"omitempty,min=0,max=4"`
	OrderDetails []*OrderDetailRequest `json:"orderDetails" validate:"required,min=1,dive,required"`
}

type OrderDetailRequest struct {
	ProductID *int64 `json:"product_id" validate:"required"`
	Quantity  *int   `json:"quantity" validate:"required,gt=0"`
	Price     *int64 `json:"price" validate:"required,gte=0"`
}

// ToOrder converts a validated request into the order and its lines.
func (r *CreateOrderRequest) ToOrder() (*Order, []*OrderDetail) {
	order := &Order{
		CustomerID: *r.CustomerID,
		Name:       *r.Name,
		Phone:      *r.Phone,
		Address:    *r.Address,
		Total:      *r.Total,
		Method:     *r.Method,
		Payment:    *r.Payment,
		Delivered:  DeliveryPlaced,
	}
	if r.Note != nil {
		order.Note = *r.Note
	}
	if r.Delivered != nil {
		order.Delivered = *r.Delivered
	}

	details := make([]*OrderDetail, 0, len(r.OrderDetails))
	for _, line := range r.OrderDetails {
		details = append(details, &OrderDetail{
			ProductID: *line.ProductID,
			Quantity:  *line.Quantity,
			Price:     *line.Price,
		})
	}
	return order, details
}

// PaymentUpdateRequest carries the new payment status.
type PaymentUpdateRequest struct {
	Payment *int `json:"payment" validate:"required"`
}

// OrderEvent is the payload published after an order mutation commits.
type OrderEvent struct {
	OrderID    int64          `json:"order_id"`
	CustomerID int64          `json:"customer_id,omitempty"`
	Total      int64          `json:"total,omitempty"`
	Delivered  int            `json:"delivered"`
	Lines      []*OrderDetail `json:"lines,omitempty"`
}

const (
	OrderCreatedEvent   = "order.created"
	OrderCancelledEvent = "order.cancelled"
	OrderDeletedEvent   = "order.deleted"
)
