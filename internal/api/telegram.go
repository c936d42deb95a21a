package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/naseer2426/clova-ocr/internal/ocrservice"
	"github.com/naseer2426/clova-ocr/internal/record"
	"github.com/naseer2426/clova-ocr/internal/telegram"
	"github.com/sirupsen/logrus"
)

type TelegramClient interface {
	FileURL(ctx context.Context, requestID, fileID string) (string, error)
	SendMessage(ctx context.Context, requestID string, chatID int64, text string) error
}

type TelegramOCR interface {
	CreateOcrRecord(ctx context.Context, objectKey string) (*record.Record, error)
	PerformOcr(ctx context.Context, requestID, imageURL, objectKey string) (ocrservice.Result, error)
}

// TelegramWebhook OCRs photos and documents sent to the bot and replies with
// the recognized text. The file_unique_id is used as the object key.
type TelegramWebhook struct {
	TelegramAPI TelegramClient
	OCR         TelegramOCR
	Log         logrus.FieldLogger
}

func (t *TelegramWebhook) TelegramWebhook(c *gin.Context) {
	requestID := requestid.Get(c)
	ctx := c.Request.Context()

	var update telegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if update.Message == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}
	fileID, objectKey, ok := update.Message.Image()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	log := t.Log.WithFields(logrus.Fields{
		"request_id": requestID,
		"object_key": objectKey,
		"chat_id":    update.Message.Chat.ID,
	})

	imageURL, err := t.TelegramAPI.FileURL(ctx, requestID, fileID)
	if err != nil {
		log.WithError(err).Error("failed to resolve telegram file url")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to get image URL"})
		return
	}

	// the same photo may be forwarded more than once
	if _, err := t.OCR.CreateOcrRecord(ctx, objectKey); err != nil && !errors.Is(err, record.ErrDuplicateKey) {
		log.WithError(err).Error("failed to register ocr record")
		writeError(c, err)
		return
	}

	result, err := t.OCR.PerformOcr(ctx, requestID, imageURL, objectKey)
	if err != nil {
		log.WithError(err).Error("telegram ocr failed")
		writeError(c, err)
		return
	}

	if err := t.TelegramAPI.SendMessage(ctx, requestID, update.Message.Chat.ID, result.Text); err != nil {
		log.WithError(err).Error("failed to send OCR result")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to send OCR result"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
