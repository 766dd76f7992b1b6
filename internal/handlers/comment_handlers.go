package handlers

import (
	"bookstore/internal/common"
	"bookstore/internal/models"
	"bookstore/internal/repositories"
	"bookstore/internal/services"

	"github.com/labstack/echo/v4"
)

// CommentHandlers handles HTTP requests for book comments
type CommentHandlers struct {
	commentService services.CommentService
}

func NewCommentHandlers(commentService services.CommentService) *CommentHandlers {
	return &CommentHandlers{commentService: commentService}
}

// GetAll handles GET /comments/get-all
func (h *CommentHandlers) GetAll(c echo.Context) error {
	comments, err := h.commentService.GetAll(c.Request().Context())
	if err != nil {
		return common.SendFailure(c, "Failed to get comments", err)
	}
	return common.SendList(c, "Comments retrieved successfully", comments, int64(len(comments)))
}

// GetDetail handles GET /comments/detail/:id
func (h *CommentHandlers) GetDetail(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return common.SendFailure(c, "Invalid comment ID", err)
	}

	comment, err := h.commentService.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.SendFailure(c, "Comment not found", err)
	}
	return common.SendSuccess(c, "Comment retrieved successfully", comment)
}

// GetList handles GET /comments/list?take&skip
func (h *CommentHandlers) GetList(c echo.Context) error {
	paging, err := common.ParsePaging(c.QueryParam("take"), c.QueryParam("skip"), 0, true)
	if err != nil {
		return common.SendFailure(c, "Invalid paging", err)
	}
	return h.list(c, nil, paging)
}

// GetListByField handles GET /comments/list-by-field?field&value&take&skip
func (h *CommentHandlers) GetListByField(c echo.Context) error {
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
	filter, err := repositories.CommentFilterColumns.Coerce(field, value)
	if err != nil {
		return common.SendFailure(c, "Invalid filter", err)
	}
	return h.list(c, []common.FieldValue{filter}, paging)
}

// GetListByUserAndBook handles GET /comments/list-by-user-book?bookId&userId&take&skip
func (h *CommentHandlers) GetListByUserAndBook(c echo.Context) error {
	bookID, err := common.ParseID(c.QueryParam("bookId"), "bookId")
	if err != nil {
		return common.SendFailure(c, "Invalid book ID", err)
	}
	userID, err := common.ParseID(c.QueryParam("userId"), "userId")
	if err != nil {
		return common.SendFailure(c, "Invalid user ID", err)
	}
	paging, err := common.ParsePaging(c.QueryParam("take"), c.QueryParam("skip"), 0, true)
	if err != nil {
		return common.SendFailure(c, "Invalid paging", err)
	}
	filters := []common.FieldValue{
		{Column: "book_id", Value: bookID},
		{Column: "user_id", Value: userID},
	}
	return h.list(c, filters, paging)
}

func (h *CommentHandlers) list(c echo.Context, filters []common.FieldValue, paging common.Paging) error {
	comments, total, err := h.commentService.List(c.Request().Context(), filters, paging)
	if err != nil {
		return common.SendFailure(c, "Failed to get comments", err)
	}
	return common.SendList(c, "Comments retrieved successfully", comments, total)
}

// CreateComment handles POST /comments/create
func (h *CommentHandlers) CreateComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	comment, err := h.commentService.Create(c.Request().Context(), &req)
	if err != nil {
		return common.SendFailure(c, "Failed to create comment", err)
	}
	return common.SendCreated(c, "Comment created successfully", comment)
}

// UpdateComment handles PUT /comments/update/:id
func (h *CommentHandlers) UpdateComment(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return common.SendFailure(c, "Invalid comment ID", err)
	}
	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := h.commentService.Update(c.Request().Context(), id, &req); err != nil {
		return common.SendFailure(c, "Failed to update comment", err)
	}
	return common.SendSuccess(c, "Comment updated successfully", nil)
}

// DeleteComment handles DELETE /comments/delete/:id
func (h *CommentHandlers) DeleteComment(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return common.SendFailure(c, "Invalid comment ID", err)
	}

	if err := h.commentService.Delete(c.Request().Context(), id); err != nil {
		return common.SendFailure(c, "Failed to delete comment", err)
	}
	return common.SendSuccess(c, "Comment deleted successfully", nil)
}
