package handlers

import (
	"bookstore/internal/common"
	"bookstore/internal/models"
	"bookstore/internal/repositories"
	"bookstore/internal/services"

	"github.com/labstack/echo/v4"
)

var productComboFilters = []string{"category_id", "status", "trash", "sale", "author", "publisher"}

// ProductHandlers handles HTTP requests for products
type ProductHandlers struct {
	productService services.ProductService
}

// NewProductHandlers creates a new product handlers instance
func NewProductHandlers(productService services.ProductService) *ProductHandlers {
	return &ProductHandlers{productService: productService}
}

// GetList handles GET /products/get-list
func (h *ProductHandlers) GetList(c echo.Context) error {
	paging, err := common.ParsePaging(c.QueryParam("take"), c.QueryParam("skip"), 0, false)
	if err != nil {
		return common.SendFailure(c, "Invalid paging", err)
	}

	products, total, err := h.productService.List(c.Request().Context(), nil, paging)
	if err != nil {
		return common.SendFailure(c, "Failed to get products", err)
	}
	return common.SendList(c, "Products retrieved successfully", products, total)
}

// GetLists handles GET /products/get-lists?take&skip with optional filters
func (h *ProductHandlers) GetLists(c echo.Context) error {
	paging, err := common.ParsePaging(c.QueryParam("take"), c.QueryParam("skip"), 0, true)
	if err != nil {
		return common.SendFailure(c, "Invalid paging", err)
	}
	filters, err := repositories.ProductFilterColumns.Filters(queryFilters(c, productComboFilters...))
	if err != nil {
		return common.SendFailure(c, "Invalid filter", err)
	}

	products, total, err := h.productService.List(c.Request().Context(), filters, paging)
	if err != nil {
		return common.SendFailure(c, "Failed to get products", err)
	}
	return common.SendList(c, "Products retrieved successfully", products, total)
}

// GetDetail handles GET /products/product-detail/:id
func (h *ProductHandlers) GetDetail(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return common.SendFailure(c, "Invalid product ID", err)
	}

	product, err := h.productService.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.SendFailure(c, "Product not found", err)
	}
	return common.SendSuccess(c, "Product retrieved successfully", product)
}

// Search handles GET /products/search?q
func (h *ProductHandlers) Search(c echo.Context) error {
	paging, err := common.ParsePaging(c.QueryParam("take"), c.QueryParam("skip"), 0, false)
	if err != nil {
		return common.SendFailure(c, "Invalid paging", err)
	}

	products, total, err := h.productService.Search(c.Request().Context(), c.QueryParam("q"), paging)
	if err != nil {
		return common.SendFailure(c, "Failed to search products", err)
	}
	return common.SendList(c, "Products retrieved successfully", products, total)
}

// CreateProduct handles POST /products/create
func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	var req models.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	product, err := h.productService.Create(c.Request().Context(), &req)
	if err != nil {
		return common.SendFailure(c, "Failed to create product", err)
	}
	return common.SendCreated(c, "Product created successfully", product)
}

// UpdateProduct handles PUT /products/update/:id
func (h *ProductHandlers) UpdateProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return common.SendFailure(c, "Invalid product ID", err)
	}
	fields, err := bindFields(c)
	if err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := h.productService.Update(c.Request().Context(), id, fields); err != nil {
		return common.SendFailure(c, "Failed to update product", err)
	}
	return common.SendSuccess(c, "Product updated successfully", nil)
}

// ToggleStatus handles PUT /products/toggle-status/:id
func (h *ProductHandlers) ToggleStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return common.SendFailure(c, "Invalid product ID", err)
	}

	if err := h.productService.ToggleStatus(c.Request().Context(), id); err != nil {
		return common.SendFailure(c, "Failed to toggle product status", err)
	}
	return common.SendSuccess(c, "Product status toggled", nil)
}

// ToggleTrash handles PUT /products/toggle-trash/:id
func (h *ProductHandlers) ToggleTrash(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return common.SendFailure(c, "Invalid product ID", err)
	}

	if err := h.productService.ToggleTrash(c.Request().Context(), id); err != nil {
		return common.SendFailure(c, "Failed to toggle product trash", err)
	}
	return common.SendSuccess(c, "Product trash toggled", nil)
}

// DeleteProduct handles DELETE /products/delete/:id
func (h *ProductHandlers) DeleteProduct(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return common.SendFailure(c, "Invalid product ID", err)
	}

	if err := h.productService.Delete(c.Request().Context(), id); err != nil {
		return common.SendFailure(c, "Failed to delete product", err)
	}
	return common.SendSuccess(c, "Product deleted successfully", nil)
}

// UploadImage handles POST /products/upload-image/:id (multipart field "image")
func (h *ProductHandlers) UploadImage(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return common.SendFailure(c, "Invalid product ID", err)
	}
	upload, closeFn, err := formImage(c, "image")
	if err != nil {
		return common.SendFailure(c, "Invalid image", err)
	}
	defer closeFn()

	path, err := h.productService.UploadImage(c.Request().Context(), id, upload)
	if err != nil {
		return common.SendFailure(c, "Failed to upload image", err)
	}
	return common.SendCreated(c, "Image uploaded successfully", map[string]string{"image": path})
}

// GetNewProducts handles GET /products/get-new-products?take&skip
func (h *ProductHandlers) GetNewProducts(c echo.Context) error {
	paging, err := common.ParsePaging(c.QueryParam("take"), c.QueryParam("skip"), 0, false)
	if err != nil {
		return common.SendFailure(c, "Invalid paging", err)
	}

	products, total, err := h.productService.NewProducts(c.Request().Context(), paging)
	if err != nil {
		return common.SendFailure(c, "Failed to get products", err)
	}
	return common.SendList(c, "Products retrieved successfully", products, total)
}

// GetSaleProducts handles GET /products/get-sale-products?take&skip
func (h *ProductHandlers) GetSaleProducts(c echo.Context) error {
	paging, err := common.ParsePaging(c.QueryParam("take"), c.QueryParam("skip"), 0, false)
	if err != nil {
		return common.SendFailure(c, "Invalid paging", err)
	}

	products, total, err := h.productService.SaleProducts(c.Request().Context(), paging)
	if err != nil {
		return common.SendFailure(c, "Failed to get products", err)
	}
	return common.SendList(c, "Products retrieved successfully", products, total)
}

// GetByCategory handles GET /products/get-products-by-category?category_id&take&skip
func (h *ProductHandlers) GetByCategory(c echo.Context) error {
	categoryID, err := common.ParseID(c.QueryParam("category_id"), "category_id")
	if err != nil {
		return common.SendFailure(c, "Invalid category ID", err)
	}
	paging, err := common.ParsePaging(c.QueryParam("take"), c.QueryParam("skip"), 0, false)
	if err != nil {
		return common.SendFailure(c, "Invalid paging", err)
	}

	products, total, err := h.productService.ByCategory(c.Request().Context(), categoryID, paging)
	if err != nil {
		return common.SendFailure(c, "Failed to get products", err)
	}
	return common.SendList(c, "Products retrieved successfully", products, total)
}
