package ocrservice

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/naseer2426/clova-ocr/internal/metrics"
	"github.com/naseer2426/clova-ocr/internal/ocr"
	"github.com/naseer2426/clova-ocr/internal/record"
	"github.com/sirupsen/logrus"
)

var (
	// ErrOCRRequest wraps any vendor or transport failure of the OCR call.
	ErrOCRRequest = errors.New("clova ocr request failed")

	ErrInvalidImageURL  = errors.New("image url must be an absolute http(s) url")
	ErrInvalidObjectKey = errors.New("object key must not be empty")
)

type RecordStore interface {
	Create(ctx context.Context, objectKey string) (*record.Record, error)
	Update(ctx context.Context, objectKey, text string) (*record.Record, error)
	Get(ctx context.Context, objectKey string) (*record.Record, error)
}

// Result is the outcome of one successful OCR run.
type Result struct {
	ObjectKey string `json:"objectKey"`
	Text      string `json:"text"`
	Degraded  bool   `json:"degraded"`
	NoData    bool   `json:"noData"`
}

// Outcome is the single value delivered by PerformOcrAsync.
type Outcome struct {
	Result Result
	Err    error
}

type Service struct {
	builder *ocr.RequestBuilder
	ocr     ocr.ImageOCR
	store   RecordStore
	metrics *metrics.Metrics
	log     logrus.FieldLogger
}

func NewService(builder *ocr.RequestBuilder, client ocr.ImageOCR, store RecordStore, m *metrics.Metrics, log logrus.FieldLogger) *Service {
	return &Service{
		builder: builder,
		ocr:     client,
		store:   store,
		metrics: m,
		log:     log,
	}
}

// CreateOcrRecord registers objectKey with an empty OCR result.
func (s *Service) CreateOcrRecord(ctx context.Context, objectKey string) (*record.Record, error) {
	if objectKey == "" {
		return nil, ErrInvalidObjectKey
	}
	return s.store.Create(ctx, objectKey)
}

func (s *Service) GetOcrRecord(ctx context.Context, objectKey string) (*record.Record, error) {
	return s.store.Get(ctx, objectKey)
}

// PerformOcr sends imageURL to the vendor, flattens the recognized text and
// stores it on the record for objectKey. The record is only written once the
// vendor call has succeeded; nothing is rolled back if the write fails.
func (s *Service) PerformOcr(ctx context.Context, requestID, imageURL, objectKey string) (Result, error) {
	log := s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"object_key": objectKey,
	})

	if objectKey == "" {
		return Result{}, ErrInvalidObjectKey
	}
	if err := validateImageURL(imageURL); err != nil {
		return Result{}, err
	}

	body, err := s.ocr.Send(ctx, requestID, s.builder.Build(imageURL))
	if err != nil {
		s.observeSendError(err)
		log.WithError(err).Error("ocr request failed")
		return Result{}, fmt.Errorf("%w: %w", ErrOCRRequest, err)
	}

	extraction := ocr.ExtractText(log, body)
	switch {
	case extraction.Degraded:
		s.metrics.ObserveOCR(metrics.OutcomeDegraded)
	case extraction.NoData:
		s.metrics.ObserveOCR(metrics.OutcomeNoData)
	default:
		s.metrics.ObserveOCR(metrics.OutcomeSuccess)
	}

	rec, err := s.store.Update(ctx, objectKey, extraction.Text)
	if err != nil {
		s.metrics.PersistFailures.Inc()
		log.WithError(err).Error("failed to store ocr result")
		return Result{}, fmt.Errorf("update ocr record: %w", err)
	}

	text := extraction.Text
	if rec.OcrResult != nil {
		text = *rec.OcrResult
	}
	return Result{
		ObjectKey: objectKey,
		Text:      text,
		Degraded:  extraction.Degraded,
		NoData:    extraction.NoData,
	}, nil
}

// PerformOcrAsync runs PerformOcr in its own goroutine. The returned channel
// receives exactly one Outcome and is then closed.
func (s *Service) PerformOcrAsync(ctx context.Context, requestID, imageURL, objectKey string) <-chan Outcome {
	out := make(chan Outcome, 1)
	go func() {
		defer close(out)
		if err := ctx.Err(); err != nil {
			out <- Outcome{Err: err}
			return
		}
		result, err := s.PerformOcr(ctx, requestID, imageURL, objectKey)
		out <- Outcome{Result: result, Err: err}
	}()
	return out
}

func (s *Service) observeSendError(err error) {
	var vendorErr *ocr.VendorError
	if errors.As(err, &vendorErr) {
		s.metrics.ObserveOCR(metrics.OutcomeVendorError)
		return
	}
	s.metrics.ObserveOCR(metrics.OutcomeTransportError)
}

func validateImageURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidImageURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidImageURL
	}
	return nil
}
