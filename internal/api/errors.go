package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/naseer2426/clova-ocr/internal/ocrservice"
	"github.com/naseer2426/clova-ocr/internal/record"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, ocrservice.ErrInvalidImageURL), errors.Is(err, ocrservice.ErrInvalidObjectKey):
		return http.StatusBadRequest
	case errors.Is(err, record.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, record.ErrDuplicateKey):
		return http.StatusConflict
	case errors.Is(err, ocrservice.ErrOCRRequest):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}
