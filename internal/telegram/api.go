package telegram

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://api.telegram.org"

type TelegramAPI struct {
	token   string
	baseURL string
	client  *resty.Client
}

func NewTelegramAPI(token string) *TelegramAPI {
	return &TelegramAPI{
		token:   token,
		baseURL: defaultBaseURL,
		client:  resty.New(),
	}
}

// WithBaseURL points the client at a different Bot API host.
func (t *TelegramAPI) WithBaseURL(baseURL string) *TelegramAPI {
	t.baseURL = baseURL
	return t
}

// SendMessage sends a message to a Telegram chat
func (t *TelegramAPI) SendMessage(ctx context.Context, requestID string, chatID int64, text string) error {
	if t.token == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is not set")
	}

	reply := SendMessageRequest{
		ChatID: chatID,
		Text:   text,
	}

	resp, err := t.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Request-ID", requestID).
		SetBody(reply).
		Post(fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.token))

	if err != nil {
		return fmt.Errorf("http call to telegram failed: %w", err)
	}

	if resp.IsError() {
		return fmt.Errorf("telegram returned non-2xx status: %d", resp.StatusCode())
	}

	return nil
}

// FileURL resolves a file_id into a URL the OCR vendor can download.
func (t *TelegramAPI) FileURL(ctx context.Context, requestID, fileID string) (string, error) {
	if t.token == "" {
		return "", fmt.Errorf("TELEGRAM_BOT_TOKEN is not set")
	}

	var fileResponse GetFileResponse
	resp, err := t.client.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", requestID).
		SetQueryParam("file_id", fileID).
		SetResult(&fileResponse).
		Get(fmt.Sprintf("%s/bot%s/getFile", t.baseURL, t.token))

	if err != nil {
		return "", fmt.Errorf("failed to get file info: %w", err)
	}

	if resp.IsError() {
		return "", fmt.Errorf("telegram getFile returned non-2xx status: %d", resp.StatusCode())
	}

	if !fileResponse.OK || fileResponse.Result.FilePath == "" {
		return "", fmt.Errorf("telegram API returned error for file_id: %s", fileID)
	}

	return fmt.Sprintf("%s/file/bot%s/%s", t.baseURL, t.token, fileResponse.Result.FilePath), nil
}
