package handlers

import (
	"fmt"
	"net/http"

	"bookstore/internal/common"
	"bookstore/internal/models"
	"bookstore/internal/repositories"
	"bookstore/internal/services"

	"github.com/labstack/echo/v4"
)

// orderComboFilters are the query parameters accepted by GET /orders/get-lists.
var orderComboFilters = []string{"phone", "delivered", "method", "payment", "customer_id"}

// OrderHandlers handles HTTP requests for orders
type OrderHandlers struct {
	orderService   services.OrderServiceInterface
	receiptService services.ReceiptService
}

// NewOrderHandlers creates a new order handlers instance
func NewOrderHandlers(orderService services.OrderServiceInterface, receiptService services.ReceiptService) *OrderHandlers {
	return &OrderHandlers{
		orderService:   orderService,
		receiptService: receiptService,
	}
}

// GetList handles GET /orders/get-list
// @Summary List orders
// @Tags orders
// @Produce json
// @Success 200 {object} common.Response
// @Router /orders/get-list [get]
func (h *OrderHandlers) GetList(c echo.Context) error {
	paging, err := common.ParsePaging(c.QueryParam("take"), c.QueryParam("skip"), 0, false)
	if err != nil {
		return common.SendFailure(c, "Invalid paging", err)
	}

	orders, total, err := h.orderService.ListOrders(c.Request().Context(), nil, paging)
	if err != nil {
		return common.SendFailure(c, "Failed to get orders", err)
	}
	return common.SendList(c, "Orders retrieved successfully", orders, total)
}

// GetLists handles GET /orders/get-lists?take&skip with optional equality filters.
// @Summary List orders matching a filter combination
// @Tags orders
// @Produce json
// @Param take query int true "page size"
// @Param skip query int true "offset"
// @Param phone query string false "phone"
// @Param delivered query int false "delivery status"
// @Param method query int false "payment method"
// @Param payment query int false "payment status"
// @Param customer_id query int false "customer"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.Response
// @Router /orders/get-lists [get]
func (h *OrderHandlers) GetLists(c echo.Context) error {
	paging, err := common.ParsePaging(c.QueryParam("take"), c.QueryParam("skip"), 0, true)
	if err != nil {
		return common.SendFailure(c, "Invalid paging", err)
	}
	filters, err := repositories.OrderFilterColumns.Filters(queryFilters(c, orderComboFilters...))
	if err != nil {
		return common.SendFailure(c, "Invalid filter", err)
	}

	orders, total, err := h.orderService.ListOrders(c.Request().Context(), filters, paging)
	if err != nil {
		return common.SendFailure(c, "Failed to get orders", err)
	}
	return common.SendList(c, "Orders retrieved successfully", orders, total)
}

// GetListByField handles GET /orders/get-list-by-field?field&value&take&skip
// @Summary List orders by one field
// @Tags orders
// @Produce json
// @Param field query string true "allow-listed column"
// @Param value query string true "value"
// @Param take query int true "page size"
// @Param skip query int true "offset"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.Response
// @Router /orders/get-list-by-field [get]
func (h *OrderHandlers) GetListByField(c echo.Context) error {
	field, value := c.QueryParam("field"), c.QueryParam("value")
	if field == "" {
		return common.SendValidationError(c, "field", "is required")
	}
	if value == "" {
		return common.SendValidationError(c, "value", "is required")
	}
	paging, err := common.ParsePaging(c.QueryParam("take"), c.QueryParam("skip"), 0, true)
	if err != nil {
		return common.SendFailure(c, "Invalid paging", err)
	}
	filter, err := repositories.OrderFilterColumns.Coerce(field, value)
	if err != nil {
		return common.SendFailure(c, "Invalid filter", err)
	}

	orders, total, err := h.orderService.ListOrders(c.Request().Context(), []common.FieldValue{filter}, paging)
	if err != nil {
		return common.SendFailure(c, "Failed to get orders", err)
	}
	return common.SendList(c, "Orders retrieved successfully", orders, total)
}

// GetDetail handles GET /orders/order-detail/:id
// @Summary Order with its lines
// @Tags orders
// @Produce json
// @Param id path int true "order id"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.Response
// @Router /orders/order-detail/{id} [get]
func (h *OrderHandlers) GetDetail(c echo.Context) error {
	order, err := h.ownedOrder(c)
	if err != nil || order == nil {
		return err
	}
	return common.SendSuccess(c, "Order retrieved successfully", order)
}

// CreateOrder handles POST /orders/create
// @Summary Place an order
// @Tags orders
// @Accept json
// @Produce json
// @Param order body models.CreateOrderRequest true "order"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.Response
// @Failure 500 {object} common.Response
// @Router /orders/create [post]
func (h *OrderHandlers) CreateOrder(c echo.Context) error {
	var req models.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	ctx := c.Request().Context()
	if req.CustomerID != nil && !common.CanActFor(ctx, *req.CustomerID) {
		return common.SendForbiddenError(c)
	}

	order, err := h.orderService.CreateOrder(ctx, &req)
	if err != nil {
		return common.SendFailure(c, "Failed to create order", err)
	}
	return common.SendCreated(c, "Order created successfully", order)
}

// UpdateOrder handles PUT /orders/update/:id
// @Summary Partially update an order
// @Tags orders
// @Accept json
// @Produce json
// @Param id path int true "order id"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.Response
// @Router /orders/update/{id} [put]
func (h *OrderHandlers) UpdateOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return common.SendFailure(c, "Invalid order ID", err)
	}
	fields, err := bindFields(c)
	if err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := h.orderService.UpdateOrder(c.Request().Context(), id, fields); err != nil {
		return common.SendFailure(c, "Failed to update order", err)
	}
	return common.SendSuccess(c, "Order updated successfully", nil)
}

// CancelOrder handles PUT /orders/cancel/:id
// @Summary Cancel an order
// @Tags orders
// @Param id path int true "order id"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.Response
// @Router /orders/cancel/{id} [put]
func (h *OrderHandlers) CancelOrder(c echo.Context) error {
	order, err := h.ownedOrder(c)
	if err != nil || order == nil {
		return err
	}

	if err := h.orderService.CancelOrder(c.Request().Context(), order.ID); err != nil {
		return common.SendFailure(c, "Failed to cancel order", err)
	}
	return common.SendSuccess(c, "Order cancelled successfully", nil)
}

// UpdatePayment handles PUT /orders/payment/:id
// @Summary Update the payment status of an order
// @Tags orders
// @Accept json
// @Param id path int true "order id"
// @Param payment body models.PaymentUpdateRequest true "payment"
// @Success 200 {object} common.Response
// @Router /orders/payment/{id} [put]
func (h *OrderHandlers) UpdatePayment(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return common.SendFailure(c, "Invalid order ID", err)
	}
	var req models.PaymentUpdateRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateStruct(&req); err != nil {
		return common.SendFailure(c, "Validation failed", err)
	}

	if err := h.orderService.UpdatePayment(c.Request().Context(), id, *req.Payment); err != nil {
		return common.SendFailure(c, "Failed to update payment", err)
	}
	return common.SendSuccess(c, "Payment updated successfully", nil)
}

// DeleteOrder handles DELETE /orders/delete/:id
// @Summary Delete an order and its lines
// @Tags orders
// @Param id path int true "order id"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.Response
// @Router /orders/delete/{id} [delete]
func (h *OrderHandlers) DeleteOrder(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return common.SendFailure(c, "Invalid order ID", err)
	}

	if err := h.orderService.DeleteOrder(c.Request().Context(), id); err != nil {
		return common.SendFailure(c, "Failed to delete order", err)
	}
	return common.SendSuccess(c, "Order deleted successfully", nil)
}

// Receipt handles GET /orders/receipt/:id
// @Summary Order receipt as PDF
// @Tags orders
// @Produce application/pdf
// @Param id path int true "order id"
// @Success 200 {file} file
// @Router /orders/receipt/{id} [get]
func (h *OrderHandlers) Receipt(c echo.Context) error {
	order, err := h.ownedOrder(c)
	if err != nil || order == nil {
		return err
	}

	pdf, err := h.receiptService.Render(order)
	if err != nil {
		return common.SendFailure(c, "Failed to generate receipt", err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("inline; filename=order-%d.pdf", order.ID))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// ownedOrder loads the :id order and checks the caller may see it. When it
// returns a nil order the response has already been written.
func (h *OrderHandlers) ownedOrder(c echo.Context) (*models.Order, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return nil, common.SendFailure(c, "Invalid order ID", err)
	}

	ctx := c.Request().Context()
	order, err := h.orderService.GetOrderByID(ctx, id)
	if err != nil {
		return nil, common.SendFailure(c, "Order not found", err)
	}
	if !common.CanActFor(ctx, order.CustomerID) {
		// hide other customers' orders
		return nil, common.SendFailure(c, "Order not found", common.ErrNotFound)
	}
	return order, nil
}
