package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/pckhai-work/blog-system-mern-stack/internal/errors"
)

// MessageResponse is the generic success envelope.
type MessageResponse struct {
	Message string `json:"message"`
}

// domainError converts a service failure into the standardized error payload.
func domainError(err error) *echo.HTTPError {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// readFormPhoto pulls an optional image out of the multipart form. Returns
// nil bytes when the field is absent. The size cap is checked against the
// declared part size before the bytes are read into memory.
func readFormPhoto(c echo.Context, field string, maxBytes int64) ([]byte, string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, "", nil
		}
		return nil, "", apperrors.ErrPhotoUpload
	}

	if fileHeader.Size > maxBytes {
		return nil, "", apperrors.ErrPhotoTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", apperrors.ErrPhotoUpload
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, "", apperrors.ErrPhotoUpload
	}
	if int64(len(data)) > maxBytes {
		return nil, "", apperrors.ErrPhotoTooLarge
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return data, contentType, nil
}
