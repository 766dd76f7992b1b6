package handlers

import (
	"bookstore/internal/common"
	"bookstore/internal/models"
	"bookstore/internal/services"

	"github.com/labstack/echo/v4"
)

// RatingHandlers handles HTTP requests for product ratings
type RatingHandlers struct {
	ratingService services.RatingService
}

func NewRatingHandlers(ratingService services.RatingService) *RatingHandlers {
	return &RatingHandlers{ratingService: ratingService}
}

// CreateRating handles POST /ratings/create
func (h *RatingHandlers) CreateRating(c echo.Context) error {
	var req models.CreateRatingRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	rating, err := h.ratingService.Create(c.Request().Context(), &req)
	if err != nil {
		return common.SendFailure(c, "Failed to create rating", err)
	}
	return common.SendCreated(c, "Rating created successfully", rating)
}

// ListByProduct handles GET /ratings/list/:productId?take&skip
func (h *RatingHandlers) ListByProduct(c echo.Context) error {
	productID, err := pathID(c, "productId")
	if err != nil {
		return common.SendFailure(c, "Invalid product ID", err)
	}
	paging, err := common.ParsePaging(c.QueryParam("take"), c.QueryParam("skip"), 0, false)
	if err != nil {
		return common.SendFailure(c, "Invalid paging", err)
	}

	ratings, total, err := h.ratingService.ListByProduct(c.Request().Context(), productID, paging)
	if err != nil {
		return common.SendFailure(c, "Failed to get ratings", err)
	}
	return common.SendList(c, "Ratings retrieved successfully", ratings, total)
}

// Summary handles GET /ratings/summary/:productId
func (h *RatingHandlers) Summary(c echo.Context) error {
	productID, err := pathID(c, "productId")
	if err != nil {
		return common.SendFailure(c, "Invalid product ID", err)
	}

	summary, err := h.ratingService.Summary(c.Request().Context(), productID)
	if err != nil {
		return common.SendFailure(c, "Failed to get rating summary", err)
	}
	return common.SendSuccess(c, "Rating summary retrieved successfully", summary)
}

// DeleteRating handles DELETE /ratings/delete/:id
func (h *RatingHandlers) DeleteRating(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return common.SendFailure(c, "Invalid rating ID", err)
	}

	if err := h.ratingService.Delete(c.Request().Context(), id); err != nil {
		return common.SendFailure(c, "Failed to delete rating", err)
	}
	return common.SendSuccess(c, "Rating deleted successfully", nil)
}
