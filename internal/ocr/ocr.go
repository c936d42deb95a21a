package ocr

import (
	"context"
	"errors"
	"fmt"
)

// ImageOCR sends a built OCR request to the vendor and returns the raw
// response body.
type ImageOCR interface {
	Send(ctx context.Context, requestID string, request Request) ([]byte, error)
}

// ErrTransport is wrapped by errors that happen before the vendor answers.
var ErrTransport = errors.New("ocr transport failed")

// VendorError carries the raw body of a vendor response with status >= 400.
type VendorError struct {
	StatusCode int
	Body       string
}

func (e *VendorError) Error() string {
	return fmt.Sprintf("ocr vendor returned status %d: %s", e.StatusCode, e.Body)
}
