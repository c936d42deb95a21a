package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/naseer2426/clova-ocr/internal/ocrservice"
	"github.com/naseer2426/clova-ocr/internal/record"
	"github.com/sirupsen/logrus"
)

type OCRService interface {
	CreateOcrRecord(ctx context.Context, objectKey string) (*record.Record, error)
	GetOcrRecord(ctx context.Context, objectKey string) (*record.Record, error)
	PerformOcrAsync(ctx context.Context, requestID, imageURL, objectKey string) <-chan ocrservice.Outcome
}

type OCRHandler struct {
	Service OCRService
	Log     logrus.FieldLogger
}

type createRecordRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

type performOcrRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
	ImageURL  string `json:"imageUrl" binding:"required"`
}

func (h *OCRHandler) CreateRecord(c *gin.Context) {
	var req createRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.Service.CreateOcrRecord(c.Request.Context(), req.ObjectKey)
	if err != nil {
		h.Log.WithFields(logrus.Fields{
			"request_id": requestid.Get(c),
			"object_key": req.ObjectKey,
		}).WithError(err).Warn("create ocr record failed")
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rec)
}

func (h *OCRHandler) GetRecord(c *gin.Context) {
	// object keys are storage paths and may contain slashes
	objectKey := strings.TrimPrefix(c.Param("objectKey"), "/")
	rec, err := h.Service.GetOcrRecord(c.Request.Context(), objectKey)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *OCRHandler) PerformOcr(c *gin.Context) {
	var req performOcrRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	select {
	case outcome := <-h.Service.PerformOcrAsync(ctx, requestid.Get(c), req.ImageURL, req.ObjectKey):
		if outcome.Err != nil {
			writeError(c, outcome.Err)
			return
		}
		c.JSON(http.StatusOK, outcome.Result)
	case <-ctx.Done():
		c.JSON(http.StatusRequestTimeout, gin.H{"error": ctx.Err().Error()})
	}
}
