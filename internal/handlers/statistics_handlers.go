package handlers

import (
	"strconv"

	"bookstore/internal/common"
	"bookstore/internal/services"

	"github.com/labstack/echo/v4"
)

// StatisticsHandlers serves the admin dashboard figures.
type StatisticsHandlers struct {
	statsService services.StatisticsServiceInterface
}

func NewStatisticsHandlers(statsService services.StatisticsServiceInterface) *StatisticsHandlers {
	return &StatisticsHandlers{statsService: statsService}
}

func queryLimit(c echo.Context) (int, error) {
	raw := c.QueryParam("limit")
	if raw == "" {
		return services.DefaultStatsLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return 0, common.NewValidationError("limit", "must be a positive integer")
	}
	return limit, nil
}

// ProductsSold handles GET /statistics/total-products-sold
func (h *StatisticsHandlers) ProductsSold(c echo.Context) error {
	sold, err := h.statsService.TotalProductsSold(c.Request().Context())
	if err != nil {
		return common.SendFailure(c, "Failed to get statistics", err)
	}
	return common.SendSuccess(c, "Statistics retrieved successfully", sold)
}

// OrderCountByStatus handles GET /statistics/order-count-by-status
func (h *StatisticsHandlers) OrderCountByStatus(c echo.Context) error {
	counts, err := h.statsService.OrderCountByStatus(c.Request().Context())
	if err != nil {
		return common.SendFailure(c, "Failed to get statistics", err)
	}
	return common.SendSuccess(c, "Statistics retrieved successfully", counts)
}

// BestSelling handles GET /statistics/best-selling?limit
func (h *StatisticsHandlers) BestSelling(c echo.Context) error {
	limit, err := queryLimit(c)
	if err != nil {
		return common.SendFailure(c, "Invalid limit", err)
	}

	best, err := h.statsService.BestSelling(c.Request().Context(), limit)
	if err != nil {
		return common.SendFailure(c, "Failed to get statistics", err)
	}
	return common.SendSuccess(c, "Statistics retrieved successfully", best)
}

// TopKeywords handles GET /statistics/top-keywords?limit
func (h *StatisticsHandlers) TopKeywords(c echo.Context) error {
	limit, err := queryLimit(c)
	if err != nil {
		return common.SendFailure(c, "Invalid limit", err)
	}

	keywords, err := h.statsService.TopKeywords(c.Request().Context(), limit)
	if err != nil {
		return common.SendFailure(c, "Failed to get statistics", err)
	}
	return common.SendSuccess(c, "Statistics retrieved successfully", keywords)
}

// MonthlyRevenue handles GET /statistics/monthly-revenue
func (h *StatisticsHandlers) MonthlyRevenue(c echo.Context) error {
	revenue, err := h.statsService.MonthlyRevenue(c.Request().Context())
	if err != nil {
		return common.SendFailure(c, "Failed to get statistics", err)
	}
	return common.SendSuccess(c, "Statistics retrieved successfully", revenue)
}

// DailyRevenue handles GET /statistics/daily-revenue
func (h *StatisticsHandlers) DailyRevenue(c echo.Context) error {
	revenue, err := h.statsService.DailyRevenue(c.Request().Context())
	if err != nil {
		return common.SendFailure(c, "Failed to get statistics", err)
	}
	return common.SendSuccess(c, "Statistics retrieved successfully", revenue)
}
