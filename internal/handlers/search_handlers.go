package handlers

import (
	"bookstore/internal/common"
	"bookstore/internal/services"

	"github.com/labstack/echo/v4"
)

// SearchKeywordHandlers exposes the recorded search keywords to admins.
type SearchKeywordHandlers struct {
	keywordService services.SearchKeywordService
}

func NewSearchKeywordHandlers(keywordService services.SearchKeywordService) *SearchKeywordHandlers {
	return &SearchKeywordHandlers{keywordService: keywordService}
}

// GetList handles GET /search/keywords?take&skip
func (h *SearchKeywordHandlers) GetList(c echo.Context) error {
	paging, err := common.ParsePaging(c.QueryParam("take"), c.QueryParam("skip"), 0, false)
	if err != nil {
		return common.SendFailure(c, "Invalid paging", err)
	}

	keywords, total, err := h.keywordService.List(c.Request().Context(), paging)
	if err != nil {
		return common.SendFailure(c, "Failed to get search keywords", err)
	}
	return common.SendList(c, "Search keywords retrieved successfully", keywords, total)
}

// Delete handles DELETE /search/keywords/:id
func (h *SearchKeywordHandlers) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return common.SendFailure(c, "Invalid keyword ID", err)
	}

	if err := h.keywordService.Delete(c.Request().Context(), id); err != nil {
		return common.SendFailure(c, "Failed to delete search keyword", err)
	}
	return common.SendSuccess(c, "Search keyword deleted successfully", nil)
}
