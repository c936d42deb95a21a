package ocr

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

var _ ImageOCR = &ClovaOCR{}

const secretHeader = "X-OCR-SECRET"

// botTokenSegment matches the Telegram bot token embedded in file URLs.
var botTokenSegment = regexp.MustCompile(`/bot[0-9]+:[^/]+`)

type ClovaOCR struct {
	apiURL    string
	secretKey string
	client    *resty.Client
	log       logrus.FieldLogger
}

// NewClovaOCR builds a client for the given endpoint. A zero timeout keeps
// resty's transport defaults.
func NewClovaOCR(apiURL, secretKey string, timeout time.Duration, log logrus.FieldLogger) *ClovaOCR {
	client := resty.New()
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &ClovaOCR{
		apiURL:    apiURL,
		secretKey: secretKey,
		client:    client,
		log:       log,
	}
}

// Send posts the request and returns the raw response body. Status codes
// >= 400 come back as *VendorError, network failures wrap ErrTransport.
func (c *ClovaOCR) Send(ctx context.Context, requestID string, request Request) ([]byte, error) {
	log := c.log.WithFields(logrus.Fields{
		"request_id":     requestID,
		"ocr_request_id": request.RequestID,
		"image_urls":     redactedImageURLs(request),
	})
	log.Info("sending clova ocr request")

	req := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader(secretHeader, c.secretKey).
		SetBody(request)
	if requestID != "" {
		req.SetHeader("X-Request-ID", requestID)
	}

	resp, err := req.Post(c.apiURL)
	if err != nil {
		log.WithError(err).Error("clova ocr transport failed")
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	if resp.IsError() {
		body := string(resp.Body())
		log.WithField("status", resp.StatusCode()).Errorf("clova ocr error body: %s", body)
		return nil, &VendorError{StatusCode: resp.StatusCode(), Body: body}
	}

	return resp.Body(), nil
}

// redactedImageURLs keeps scheme, host and path of each image URL. Query
// strings (pre-signed signatures) are dropped and bot tokens are masked.
func redactedImageURLs(request Request) []string {
	urls := make([]string, 0, len(request.Images))
	for _, img := range request.Images {
		urls = append(urls, redactURL(img.URL))
	}
	return urls
}

func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<unparseable>"
	}
	u.User = nil
	u.RawQuery = ""
	u.Fragment = ""
	u.RawPath = ""
	u.Path = botTokenSegment.ReplaceAllString(u.Path, "/bot-redacted")
	return u.String()
}
