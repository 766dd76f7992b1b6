package handlers

import (
	"strconv"

	"bookstore/internal/common"
	"bookstore/internal/models"
	"bookstore/internal/repositories"
	"bookstore/internal/services"

	"github.com/labstack/echo/v4"
)

// CategoryHandlers handles HTTP requests for book categories
type CategoryHandlers struct {
	categoryService services.CategoryService
}

func NewCategoryHandlers(categoryService services.CategoryService) *CategoryHandlers {
	return &CategoryHandlers{categoryService: categoryService}
}

// GetList handles GET /categories/get-list
func (h *CategoryHandlers) GetList(c echo.Context) error {
	categories, err := h.categoryService.All(c.Request().Context())
	if err != nil {
		return common.SendFailure(c, "Failed to get categories", err)
	}
	return common.SendList(c, "Categories retrieved successfully", categories, int64(len(categories)))
}

// GetLists handles GET /categories/get-lists?take&skip with optional status/trash filters
func (h *CategoryHandlers) GetLists(c echo.Context) error {
	paging, err := common.ParsePaging(c.QueryParam("take"), c.QueryParam("skip"), 0, true)
	if err != nil {
		return common.SendFailure(c, "Invalid paging", err)
	}
	filters, err := repositories.CategoryFilterColumns.Filters(queryFilters(c, "status", "trash"))
	if err != nil {
		return common.SendFailure(c, "Invalid filter", err)
	}
	return h.list(c, filters, paging)
}

// GetByStatus handles GET /categories/status/:status
func (h *CategoryHandlers) GetByStatus(c echo.Context) error {
	return h.byFlag(c, "status")
}

// GetByTrash handles GET /categories/trash/:trash
func (h *CategoryHandlers) GetByTrash(c echo.Context) error {
	return h.byFlag(c, "trash")
}

func (h *CategoryHandlers) byFlag(c echo.Context, column string) error {
	filter, err := repositories.CategoryFilterColumns.Coerce(column, c.Param(column))
	if err != nil {
		return common.SendFailure(c, "Invalid filter", err)
	}
	paging, err := common.ParsePaging(c.QueryParam("take"), c.QueryParam("skip"), 0, false)
	if err != nil {
		return common.SendFailure(c, "Invalid paging", err)
	}
	return h.list(c, []common.FieldValue{filter}, paging)
}

// GetListByField handles GET /categories/get-list-by-field?field&value&take&skip
func (h *CategoryHandlers) GetListByField(c echo.Context) error {
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
	filter, err := repositories.CategoryFilterColumns.Coerce(field, value)
	if err != nil {
		return common.SendFailure(c, "Invalid filter", err)
	}
	return h.list(c, []common.FieldValue{filter}, paging)
}

func (h *CategoryHandlers) list(c echo.Context, filters []common.FieldValue, paging common.Paging) error {
	categories, total, err := h.categoryService.List(c.Request().Context(), filters, paging)
	if err != nil {
		return common.SendFailure(c, "Failed to get categories", err)
	}
	return common.SendList(c, "Categories retrieved successfully", categories, total)
}

// GetDetail handles GET /categories/category-detail/:id
func (h *CategoryHandlers) GetDetail(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return common.SendFailure(c, "Invalid category ID", err)
	}

	category, err := h.categoryService.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.SendFailure(c, "Category not found", err)
	}
	return common.SendSuccess(c, "Category retrieved successfully", category)
}

// CreateCategory handles POST /categories/create
func (h *CategoryHandlers) CreateCategory(c echo.Context) error {
	var req models.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	category, err := h.categoryService.Create(c.Request().Context(), &req)
	if err != nil {
		return common.SendFailure(c, "Failed to create category", err)
	}
	return common.SendCreated(c, "Category created successfully", category)
}

// UpdateCategory handles PUT /categories/update/:id
func (h *CategoryHandlers) UpdateCategory(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return common.SendFailure(c, "Invalid category ID", err)
	}
	fields, err := bindFields(c)
	if err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := h.categoryService.Update(c.Request().Context(), id, fields); err != nil {
		return common.SendFailure(c, "Failed to update category", err)
	}
	return common.SendSuccess(c, "Category updated successfully", nil)
}

// UpdateStatus handles PUT /categories/update-status/:id with {"value": 0|1}
func (h *CategoryHandlers) UpdateStatus(c echo.Context) error {
	id, value, err := h.flagRequest(c)
	if err != nil {
		return common.SendFailure(c, "Invalid request", err)
	}
	if err := h.categoryService.SetStatus(c.Request().Context(), id, value); err != nil {
		return common.SendFailure(c, "Failed to update category status", err)
	}
	return common.SendSuccess(c, "Category status updated to "+strconv.Itoa(value), nil)
}

// UpdateTrash handles PUT /categories/update-trash/:id with {"value": 0|1}
func (h *CategoryHandlers) UpdateTrash(c echo.Context) error {
	id, value, err := h.flagRequest(c)
	if err != nil {
		return common.SendFailure(c, "Invalid request", err)
	}
	if err := h.categoryService.SetTrash(c.Request().Context(), id, value); err != nil {
		return common.SendFailure(c, "Failed to update category trash", err)
	}
	return common.SendSuccess(c, "Category trash updated to "+strconv.Itoa(value), nil)
}

func (h *CategoryHandlers) flagRequest(c echo.Context) (int64, int, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return 0, 0, err
	}
	var req models.FlagRequest
	if err := c.Bind(&req); err != nil {
		return 0, 0, common.NewValidationError("value", "invalid request format")
	}
	if err := common.ValidateStruct(&req); err != nil {
		return 0, 0, err
	}
	return id, *req.Value, nil
}

// DeleteCategory handles DELETE /categories/delete/:id
func (h *CategoryHandlers) DeleteCategory(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return common.SendFailure(c, "Invalid category ID", err)
	}

	if err := h.categoryService.Delete(c.Request().Context(), id); err != nil {
		return common.SendFailure(c, "Failed to delete category", err)
	}
	return common.SendSuccess(c, "Category deleted successfully", nil)
}

// UploadIllustration handles POST /categories/upload-illustration/:id (multipart field "illustration")
func (h *CategoryHandlers) UploadIllustration(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return common.SendFailure(c, "Invalid category ID", err)
	}
	upload, closeFn, err := formImage(c, "illustration")
	if err != nil {
		return common.SendFailure(c, "Invalid image", err)
	}
	defer closeFn()

	path, err := h.categoryService.UploadIllustration(c.Request().Context(), id, upload)
	if err != nil {
		return common.SendFailure(c, "Failed to upload illustration", err)
	}
	return common.SendCreated(c, "Illustration uploaded successfully", map[string]string{"illustration": path})
}
