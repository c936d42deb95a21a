package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// OCR outcome label values.
const (
	OutcomeSuccess        = "success"
	OutcomeDegraded       = "degraded"
	OutcomeNoData         = "no_data"
	OutcomeVendorError    = "vendor_error"
	OutcomeTransportError = "transport_error"
)

type Metrics struct {
	OCRRequests     *prometheus.CounterVec
	PersistFailures prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		OCRRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clova_ocr_requests_total",
			Help: "OCR requests by outcome.",
		}, []string{"outcome"}),
		PersistFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clova_ocr_persist_failures_total",
			Help: "OCR results that could not be written to the record store.",
		}),
	}
	reg.MustRegister(m.OCRRequests, m.PersistFailures)
	return m
}

func (m *Metrics) ObserveOCR(outcome string) {
	m.OCRRequests.WithLabelValues(outcome).Inc()
}
