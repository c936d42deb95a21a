package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestSendPostsRequestWithHeaders(t *testing.T) {
	var gotReq Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("unexpected content type %q", got)
		}
		if got := r.Header.Get("X-OCR-SECRET"); got != "s3cret" {
			t.Errorf("unexpected secret header %q", got)
		}
		if got := r.Header.Get("X-Request-ID"); got != "req-1" {
			t.Errorf("unexpected request id header %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"images":[{"fields":[{"inferText":"hi"}]}]}`))
	}))
	defer server.Close()

	client := NewClovaOCR(server.URL, "s3cret", 0, discardLogger())
	request := NewRequestBuilder("V2", "jpg", "chart-test", "dbdr").Build("https://img.example.com/x.jpg")

	body, err := client.Send(context.Background(), "req-1", request)
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if string(body) != `{"images":[{"fields":[{"inferText":"hi"}]}]}` {
		t.Fatalf("unexpected body %s", body)
	}
	if gotReq.RequestID != request.RequestID || gotReq.Images[0].URL != "https://img.example.com/x.jpg" {
		t.Fatalf("vendor received unexpected request %+v", gotReq)
	}
}

func TestSendVendorError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":"0011","message":"Request invalid"}`))
	}))
	defer server.Close()

	client := NewClovaOCR(server.URL, "s3cret", 0, discardLogger())
	_, err := client.Send(context.Background(), "", Request{})

	var vendorErr *VendorError
	if !errors.As(err, &vendorErr) {
		t.Fatalf("expected VendorError, got %v", err)
	}
	if vendorErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", vendorErr.StatusCode)
	}
	if vendorErr.Body != `{"code":"0011","message":"Request invalid"}` {
		t.Fatalf("unexpected body %q", vendorErr.Body)
	}
}

func TestSendServerErrorIsVendorError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer server.Close()

	client := NewClovaOCR(server.URL, "s3cret", 0, discardLogger())
	_, err := client.Send(context.Background(), "", Request{})

	var vendorErr *VendorError
	if !errors.As(err, &vendorErr) || vendorErr.Body != "boom" {
		t.Fatalf("expected VendorError with body boom, got %v", err)
	}
}

func TestSendTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClovaOCR(url, "s3cret", 0, discardLogger())
	_, err := client.Send(context.Background(), "", Request{})
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
}

func TestSendLogsNoSecrets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":"0011"}`))
	}))
	defer server.Close()

	var logs bytes.Buffer
	log := logrus.New()
	log.SetOutput(&logs)

	client := NewClovaOCR(server.URL, "s3cret-key", 0, log)
	request := NewRequestBuilder("V2", "jpg", "chart-test", "dbdr").
		Build("https://api.telegram.org/file/bot123456:SECRET-TOKEN/photos/file_1.jpg?X-Amz-Signature=SIGNATURE")
	client.Send(context.Background(), "req-1", request)

	out := logs.String()
	for _, secret := range []string{"SECRET-TOKEN", "123456:", "SIGNATURE", "s3cret-key"} {
		if strings.Contains(out, secret) {
			t.Fatalf("log output leaks %q: %s", secret, out)
		}
	}
	if !strings.Contains(out, "api.telegram.org/file/bot-redacted/photos/file_1.jpg") {
		t.Fatalf("expected redacted image url in logs, got %s", out)
	}
	if !strings.Contains(out, request.RequestID) {
		t.Fatalf("expected ocr request id in logs, got %s", out)
	}
}

func TestRedactURL(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"https://bucket.s3.amazonaws.com/a/b.jpg?X-Amz-Signature=abc", "https://bucket.s3.amazonaws.com/a/b.jpg"},
		{"https://api.telegram.org/file/bot42:xyz/photos/p.jpg", "https://api.telegram.org/file/bot-redacted/photos/p.jpg"},
		{"https://user:pw@host.example.com/x.png", "https://host.example.com/x.png"},
		{"https://cdn.example.com/bottles/x.png", "https://cdn.example.com/bottles/x.png"},
	}
	for _, tt := range tests {
		if got := redactURL(tt.raw); got != tt.want {
			t.Fatalf("redactURL(%q): want %q, got %q", tt.raw, tt.want, got)
		}
	}
}
