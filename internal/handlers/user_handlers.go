package handlers

import (
	"bookstore/internal/common"
	"bookstore/internal/models"
	"bookstore/internal/repositories"
	"bookstore/internal/services"

	"github.com/labstack/echo/v4"
)

var userComboFilters = []string{"email", "phone", "status", "role"}

// UserHandlers handles HTTP requests for users
type UserHandlers struct {
	userService services.UserService
}

// NewUserHandlers creates a new user handlers instance
func NewUserHandlers(userService services.UserService) *UserHandlers {
	return &UserHandlers{userService: userService}
}

// GetList handles GET /users/get-list
func (h *UserHandlers) GetList(c echo.Context) error {
	paging, err := common.ParsePaging(c.QueryParam("take"), c.QueryParam("skip"), 0, false)
	if err != nil {
		return common.SendFailure(c, "Invalid paging", err)
	}

	users, total, err := h.userService.List(c.Request().Context(), nil, paging)
	if err != nil {
		return common.SendFailure(c, "Failed to get users", err)
	}
	return common.SendList(c, "Users retrieved successfully", users, total)
}

// GetLists handles GET /users/get-lists?take&skip with optional filters
func (h *UserHandlers) GetLists(c echo.Context) error {
	paging, err := common.ParsePaging(c.QueryParam("take"), c.QueryParam("skip"), 0, true)
	if err != nil {
		return common.SendFailure(c, "Invalid paging", err)
	}
	filters, err := repositories.UserFilterColumns.Filters(queryFilters(c, userComboFilters...))
	if err != nil {
		return common.SendFailure(c, "Invalid filter", err)
	}

	users, total, err := h.userService.List(c.Request().Context(), filters, paging)
	if err != nil {
		return common.SendFailure(c, "Failed to get users", err)
	}
	return common.SendList(c, "Users retrieved successfully", users, total)
}

// GetDetail handles GET /users/user-detail/:id
func (h *UserHandlers) GetDetail(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return common.SendFailure(c, "Invalid user ID", err)
	}

	user, err := h.userService.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.SendFailure(c, "User not found", err)
	}
	return common.SendSuccess(c, "User retrieved successfully", user)
}

// CreateUser handles POST /users/create (registration)
func (h *UserHandlers) CreateUser(c echo.Context) error {
	var req models.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	user, err := h.userService.Create(c.Request().Context(), &req)
	if err != nil {
		return common.SendFailure(c, "Failed to create user", err)
	}
	return common.SendCreated(c, "User created successfully", user)
}

// UpdateUser handles PUT /users/update/:id
func (h *UserHandlers) UpdateUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return common.SendFailure(c, "Invalid user ID", err)
	}
	fields, err := bindFields(c)
	if err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	// customers may edit their profile but not their own role or status
	if role, _ := common.GetRoleFromContext(c.Request().Context()); role != models.RoleAdmin {
		delete(fields, "role")
		delete(fields, "status")
	}

	if err := h.userService.Update(c.Request().Context(), id, fields); err != nil {
		return common.SendFailure(c, "Failed to update user", err)
	}
	return common.SendSuccess(c, "User updated successfully", nil)
}

// DeleteUser handles DELETE /users/delete/:id
func (h *UserHandlers) DeleteUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return common.SendFailure(c, "Invalid user ID", err)
	}

	if err := h.userService.Delete(c.Request().Context(), id); err != nil {
		return common.SendFailure(c, "Failed to delete user", err)
	}
	return common.SendSuccess(c, "User deleted successfully", nil)
}

// UploadAvatar handles POST /users/upload-avatar/:id (multipart field "avatar")
func (h *UserHandlers) UploadAvatar(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return common.SendFailure(c, "Invalid user ID", err)
	}
	upload, closeFn, err := formImage(c, "avatar")
	if err != nil {
		return common.SendFailure(c, "Invalid image", err)
	}
	defer closeFn()

	path, err := h.userService.UploadAvatar(c.Request().Context(), id, upload)
	if err != nil {
		return common.SendFailure(c, "Failed to upload avatar", err)
	}
	return common.SendCreated(c, "Avatar uploaded successfully", map[string]string{"avatar": path})
}
