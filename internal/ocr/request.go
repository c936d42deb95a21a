package ocr

import (
	"fmt"
	"sync/atomic"
	"time"
)

// requestSeq keeps request ids unique when several calls share a millisecond.
var requestSeq atomic.Uint64

// Request is the body of a CLOVA OCR general recognition call.
type Request struct {
	Version   string         `json:"version"`
	RequestID string         `json:"requestId"`
	Timestamp int64          `json:"timestamp"`
	Images    []RequestImage `json:"images"`
}

type RequestImage struct {
	Format string `json:"format"`
	Name   string `json:"name"`
	URL    string `json:"url"`
}

type RequestBuilder struct {
	Version         string
	ImageFormat     string
	ImageName       string
	RequestIDPrefix string

	now func() time.Time
}

func NewRequestBuilder(version, imageFormat, imageName, requestIDPrefix string) *RequestBuilder {
	return &RequestBuilder{
		Version:         version,
		ImageFormat:     imageFormat,
		ImageName:       imageName,
		RequestIDPrefix: requestIDPrefix,
		now:             time.Now,
	}
}

// Build creates a request for a single image. The timestamp is the current
// time in unix milliseconds; the request id is "<prefix>-<millis>-<seq>".
func (b *RequestBuilder) Build(imageURL string) Request {
	millis := b.now().UnixMilli()
	return Request{
		Version:   b.Version,
		RequestID: fmt.Sprintf("%s-%d-%d", b.RequestIDPrefix, millis, requestSeq.Add(1)),
		Timestamp: millis,
		Images: []RequestImage{
			{
				Format: b.ImageFormat,
				Name:   b.ImageName,
				URL:    imageURL,
			},
		},
	}
}
