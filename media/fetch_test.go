package media

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kumalab/kuma/errors"
	"github.com/kumalab/kuma/resilience"
)

func fastRetryFetcher() *Fetcher {
	f := NewFetcher(time.Second)
	f.retry = resilience.RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
		BackoffFactor:  2.0,
	}
	return f
}

func TestFetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png bytes"))
	}))
	defer srv.Close()

	data, contentType, err := fastRetryFetcher().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "png bytes" {
		t.Errorf("unexpected body: %q", data)
	}
	if contentType != "image/png" {
		t.Errorf("unexpected content type: %q", contentType)
	}
}

func TestFetch_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("recovered"))
	}))
	defer srv.Close()

	data, _, err := fastRetryFetcher().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("expected eventual success, got %v", err)
	}
	if string(data) != "recovered" {
		t.Errorf("unexpected body: %q", data)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestFetch_NoRetryOnNotFound(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, _, err := fastRetryFetcher().Fetch(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if calls.Load() != 1 {
		t.Errorf("expected single attempt for definitive rejection, got %d", calls.Load())
	}
}

func TestResolveAnimated_NoMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><head></head></html>"))
	}))
	defer srv.Close()

	_, err := fastRetryFetcher().ResolveAnimated(context.Background(), srv.URL+"/share")
	if err == nil {
		t.Fatal("expected error for page without media metadata")
	}
}

func TestFetch_MediaFetchCodeOnExhaustion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, _, err := fastRetryFetcher().Fetch(context.Background(), srv.URL)
	if !errors.HasCode(err, errors.ErrCodeMediaFetch) {
		t.Errorf("expected media-fetch error after exhausted retries, got %v", err)
	}
}
