package ocr

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestBuildUsesMillisForIDAndTimestamp(t *testing.T) {
	b := NewRequestBuilder("V2", "jpg", "chart-test", "dbdr")
	b.now = func() time.Time { return time.UnixMilli(1700000000123) }

	req := b.Build("https://bucket.example.com/a.jpg")

	if req.Version != "V2" {
		t.Fatalf("unexpected version %q", req.Version)
	}
	if !strings.HasPrefix(req.RequestID, "dbdr-1700000000123-") {
		t.Fatalf("unexpected request id %q", req.RequestID)
	}
	if req.Timestamp != 1700000000123 {
		t.Fatalf("unexpected timestamp %d", req.Timestamp)
	}
	if len(req.Images) != 1 {
		t.Fatalf("expected one image, got %d", len(req.Images))
	}
	img := req.Images[0]
	if img.Format != "jpg" || img.Name != "chart-test" || img.URL != "https://bucket.example.com/a.jpg" {
		t.Fatalf("unexpected image %+v", img)
	}
}

func TestBuildRequestIDUniqueWithinSameMillisecond(t *testing.T) {
	b := NewRequestBuilder("V2", "jpg", "chart-test", "dbdr")
	b.now = func() time.Time { return time.UnixMilli(1700000000123) }

	first := b.Build("u")
	second := b.Build("u")
	if first.RequestID == second.RequestID {
		t.Fatalf("expected distinct request ids, both %q", first.RequestID)
	}
	if first.Timestamp != second.Timestamp {
		t.Fatalf("timestamps should match for a frozen clock")
	}
}

func TestBuildConcurrentRequestIDsAreUnique(t *testing.T) {
	const workers = 200
	b := NewRequestBuilder("V2", "jpg", "chart-test", "dbdr")

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		ids = make(map[string]struct{}, workers)
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := b.Build("https://bucket.example.com/a.jpg").RequestID
			mu.Lock()
			ids[id] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(ids) != workers {
		t.Fatalf("expected %d distinct request ids, got %d", workers, len(ids))
	}
}
