package feed

import (
	"context"
	"io"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/gridkit/infinigrid/pkg/cache"
	"github.com/gridkit/infinigrid/pkg/errors"
)

func TestClientFetch(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	cl, err := NewClient(srv.URL, nil)
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}

	page, err := cl.Fetch(ctx, cache.FeedKeyOpts{}, false)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if page.GroupKey != "page-0" {
		t.Errorf("expected page-0, got %s", page.GroupKey)
	}

	page, err = cl.Fetch(ctx, cache.FeedKeyOpts{After: "page-0"}, false)
	if err != nil {
		t.Fatalf("Fetch after error: %v", err)
	}
	if page.GroupKey != "page-1" {
		t.Errorf("expected page-1, got %s", page.GroupKey)
	}
}

func TestClientNotFound(t *testing.T) {
	srv := newTestServer(t)

	cl, _ := NewClient(srv.URL, nil)
	_, err := cl.Fetch(context.Background(), cache.FeedKeyOpts{Before: "page-0"}, false)
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestClientCaches(t *testing.T) {
	var hits atomic.Int32
	gen := NewGenerator(7, 4)
	inner := NewServer(gen, log.New(io.Discard))
	srv := httptest.NewServer(countingHandler(&hits, inner))
	t.Cleanup(srv.Close)

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	t.Cleanup(func() { fc.Close() })

	cl, err := NewClient(srv.URL, fc)
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}

	ctx := context.Background()
	opts := cache.FeedKeyOpts{After: "page-3"}

	first, err := cl.Fetch(ctx, opts, false)
	if err != nil {
		t.Fatalf("first Fetch error: %v", err)
	}
	second, err := cl.Fetch(ctx, opts, false)
	if err != nil {
		t.Fatalf("second Fetch error: %v", err)
	}

	if hits.Load() != 1 {
		t.Errorf("expected one upstream request, got %d", hits.Load())
	}
	if first.GroupKey != second.GroupKey || len(first.Cards) != len(second.Cards) {
		t.Error("cached page differs from fetched page")
	}

	// refresh bypasses the cache.
	if _, err := cl.Fetch(ctx, opts, true); err != nil {
		t.Fatalf("refresh Fetch error: %v", err)
	}
	if hits.Load() != 2 {
		t.Errorf("expected refresh to hit upstream, got %d requests", hits.Load())
	}
}

func TestClientRejectsBadSource(t *testing.T) {
	if _, err := NewClient("ftp://feed.example.com", nil); err == nil {
		t.Error("expected error for non-http scheme")
	}
	if _, err := NewClient("", nil); err == nil {
		t.Error("expected error for empty source")
	}
}
