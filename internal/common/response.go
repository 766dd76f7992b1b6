package common

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
	Error      string      `json:"error"`
	TotalCount *int64      `json:"totalCount,omitempty"`
}

// SendSuccess sends a 200 envelope carrying data.
func SendSuccess(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusOK, Response{Success: true, Message: message, Data: data})
}

// SendCreated sends a 201 envelope carrying the created resource.
func SendCreated(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

// SendList sends a page of rows together with the total number of matching rows.
func SendList(c echo.Context, message string, data interface{}, total int64) error {
	return c.JSON(http.StatusOK, Response{Success: true, Message: message, Data: data, TotalCount: &total})
}

// SendValidationError sends a validation error response
func SendValidationError(c echo.Context, field, message string) error {
	return SendFailure(c, "Validation failed", NewValidationError(field, message))
}

// SendClientError sends a client error response
func SendClientError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Response{Message: message, Error: message})
}

// SendNotFoundError sends a not found error response
func SendNotFoundError(c echo.Context, resource string) error {
	return c.JSON(http.StatusNotFound, Response{Message: resource + " not found"})
}

// SendUnauthorizedError sends an unauthorized error response
func SendUnauthorizedError(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, Response{Message: "Unauthorized access", Error: "unauthorized"})
}

// SendForbiddenError sends a forbidden error response
func SendForbiddenError(c echo.Context) error {
	return c.JSON(http.StatusForbidden, Response{Message: "Insufficient permissions", Error: "forbidden"})
}

// SendFailure maps err onto a status code and envelope. Not-found answers keep
// the error string empty so clients can tell them apart from system failures.
func SendFailure(c echo.Context, message string, err error) error {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, Response{Message: message, Error: ve.Error(), Data: ve.Fields})
	case errors.Is(err, ErrNotFound):
		return c.JSON(http.StatusNotFound, Response{Message: message})
	case errors.Is(err, ErrConflict):
		return c.JSON(http.StatusConflict, Response{Message: message, Error: err.Error()})
	case errors.Is(err, ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, Response{Message: message, Error: err.Error()})
	case errors.Is(err, ErrForbidden):
		return c.JSON(http.StatusForbidden, Response{Message: message, Error: err.Error()})
	default:
		log.Printf("ERROR: %s %s: %s: %v", c.Request().Method, c.Path(), message, err)
		return c.JSON(http.StatusInternalServerError, Response{Message: message, Error: err.Error()})
	}
}
