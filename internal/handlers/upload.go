package handlers

import (
	"errors"

	"bookstore/internal/common"
	"bookstore/internal/services"

	"github.com/labstack/echo/v4"
)

// formImage reads an image from the multipart field. The returned close func
// must be called once the upload is done.
func formImage(c echo.Context, field string) (*services.ImageUpload, func(), error) {
	file, err := c.FormFile(field)
	if err != nil {
		return nil, nil, common.NewValidationError(field, "image file is required")
	}
	if file.Size > services.MaxImageSize {
		return nil, nil, common.NewValidationError(field, "file size exceeds maximum limit of 5MB")
	}

	src, err := file.Open()
	if err != nil {
		return nil, nil, err
	}
	contentType, err := services.DetectImageType(src)
	if err != nil {
		src.Close()
		if errors.Is(err, services.ErrUnsupportedImage) {
			return nil, nil, common.NewValidationError(field, err.Error())
		}
		return nil, nil, err
	}

	upload := &services.ImageUpload{
		Filename:    file.Filename,
		ContentType: contentType,
		Size:        file.Size,
		Reader:      src,
	}
	return upload, func() { src.Close() }, nil
}
